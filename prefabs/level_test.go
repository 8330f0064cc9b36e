package prefabs

import "testing"

func TestParseLevel(t *testing.T) {
	spec := &LevelSpec{
		Name: "test",
		Rows: []string{
			"..o...",
			".P.~!.",
			"##ca##",
		},
	}

	level, err := ParseLevel(spec)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if level.Cols != 6 || level.Rows != 3 {
		t.Fatalf("grid = %dx%d, want 6x3", level.Cols, level.Rows)
	}

	counts := map[PlacementKind]int{}
	for _, p := range level.Placements {
		counts[p.Kind]++
	}
	want := map[PlacementKind]int{
		PlaceSolid:       4,
		PlaceCalmOnly:    1,
		PlaceAlteredOnly: 1,
		PlaceCrumble:     1,
		PlaceCrumbleOnce: 1,
		PlacePickup:      1,
		PlacePlayerSpawn: 1,
	}
	for kind, n := range want {
		if counts[kind] != n {
			t.Fatalf("kind %d count = %d, want %d", kind, counts[kind], n)
		}
	}
}

func TestParseLevelErrors(t *testing.T) {
	tests := []struct {
		name string
		rows []string
	}{
		{name: "no_rows", rows: nil},
		{name: "no_spawn", rows: []string{"####"}},
		{name: "two_spawns", rows: []string{"P..P", "####"}},
		{name: "unknown_cell", rows: []string{"P..z", "####"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseLevel(&LevelSpec{Name: tt.name, Rows: tt.rows}); err == nil {
				t.Fatal("expected an error")
			}
		})
	}
}

func TestEmbeddedSpecsLoad(t *testing.T) {
	cfg, err := LoadShiftConfig()
	if err != nil {
		t.Fatalf("shift config: %v", err)
	}
	if cfg.Duration <= 0 || cfg.ExtendedDuration < cfg.Duration {
		t.Fatalf("bad shift tuning: %+v", cfg)
	}
	if cfg.MaxCharges <= 0 {
		t.Fatalf("max charges = %d, want > 0", cfg.MaxCharges)
	}

	player, err := LoadPlayerSpec()
	if err != nil {
		t.Fatalf("player spec: %v", err)
	}
	if player.MoveSpeed <= 0 || player.JumpSpeed <= 0 {
		t.Fatalf("bad player tuning: %+v", player)
	}

	enemy, err := LoadEnemySpec()
	if err != nil {
		t.Fatalf("enemy spec: %v", err)
	}
	if enemy.PursuitSpeed <= enemy.WalkSpeed {
		t.Fatalf("pursuit speed %.1f not above walk speed %.1f", enemy.PursuitSpeed, enemy.WalkSpeed)
	}

	levelSpec, err := LoadLevelSpec("level1.yaml")
	if err != nil {
		t.Fatalf("level spec: %v", err)
	}
	if _, err := ParseLevel(levelSpec); err != nil {
		t.Fatalf("level1 does not parse: %v", err)
	}

	if _, err := LoadScript("on_altered.tengo"); err != nil {
		t.Fatalf("altered script: %v", err)
	}
	if _, err := LoadScript("on_calm.tengo"); err != nil {
		t.Fatalf("calm script: %v", err)
	}
}
