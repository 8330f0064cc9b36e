package system

import (
	"fmt"
	"testing"

	"github.com/renn8/worldshift/ecs"
	"github.com/renn8/worldshift/shift"
)

func TestScriptHooksRunOnBroadcasts(t *testing.T) {
	authority := shift.NewAuthority(shift.Config{
		Duration: 1, ExtendedDuration: 2, Cooldown: 0.5, Gauge: 1000, MaxCharges: 3,
	})

	scripts := map[string]string{
		"altered.tengo": "ev := __event\nc := __charges",
		"calm.tengo":    `g := __gauge`,
	}
	loader := func(path string) ([]byte, error) {
		src, ok := scripts[path]
		if !ok {
			return nil, fmt.Errorf("no script %s", path)
		}
		return []byte(src), nil
	}

	hooks := NewScriptHookSystem(authority, shift.Config{
		OnAlteredScript: "altered.tengo",
		OnCalmScript:    "calm.tengo",
	}, loader)

	w := ecs.NewWorld()

	if !authority.RequestManualShift() {
		t.Fatal("manual shift rejected")
	}
	if len(hooks.pending) != 1 {
		t.Fatalf("pending events = %d, want 1", len(hooks.pending))
	}

	hooks.Update(w)
	if len(hooks.pending) != 0 {
		t.Fatalf("pending events not drained: %d left", len(hooks.pending))
	}

	// ride the episode out so the returned broadcast fires too
	for i := 0; i < 200; i++ {
		authority.Update(0.05)
	}
	if len(hooks.pending) == 0 {
		t.Fatal("returned broadcast never queued")
	}
	hooks.Update(w)
	if len(hooks.pending) != 0 {
		t.Fatal("pending events not drained after return")
	}
}

func TestScriptHooksMissingScriptIsNonFatal(t *testing.T) {
	authority := shift.NewAuthority(shift.Config{
		Duration: 1, ExtendedDuration: 2, Cooldown: 0.5, Gauge: 1000, MaxCharges: 3,
	})
	loader := func(path string) ([]byte, error) {
		return nil, fmt.Errorf("no script %s", path)
	}

	hooks := NewScriptHookSystem(authority, shift.Config{OnAlteredScript: "missing.tengo"}, loader)

	w := ecs.NewWorld()
	if !authority.RequestManualShift() {
		t.Fatal("manual shift rejected")
	}
	hooks.Update(w)
}
