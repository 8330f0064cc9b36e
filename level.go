package main

import (
	"fmt"
	"image/color"

	"github.com/renn8/worldshift/common"
	"github.com/renn8/worldshift/ecs"
	"github.com/renn8/worldshift/ecs/component"
	"github.com/renn8/worldshift/prefabs"
)

// buildLevel instantiates the parsed grid as entities. Tiles are one cell
// each; actors spawn centered on their cell.
func buildLevel(w *ecs.World, level *prefabs.Level, playerSpec *prefabs.PlayerSpec, enemySpec *prefabs.EnemySpec) error {
	spec := level.Spec
	pal := func(key string, fallback color.NRGBA) color.NRGBA {
		return spec.Palette[key].NRGBA(fallback)
	}

	solidColor := pal("solid", color.NRGBA{R: 0x4a, G: 0x55, B: 0x68, A: 0xff})
	calmColor := pal("calm", color.NRGBA{R: 0x5a, G: 0xa9, B: 0xe6, A: 0xff})
	alteredColor := pal("altered", color.NRGBA{R: 0x9b, G: 0x5d, B: 0xe5, A: 0xff})
	crumbleColor := pal("crumble", color.NRGBA{R: 0xc9, G: 0xa6, B: 0x6b, A: 0xff})
	moverColor := pal("mover", color.NRGBA{R: 0x7b, G: 0xc9, B: 0x6f, A: 0xff})
	pickupColor := pal("pickup", color.NRGBA{R: 0xff, G: 0xd1, B: 0x66, A: 0xff})
	hazardColor := pal("hazard", color.NRGBA{R: 0xd6, G: 0x45, B: 0x50, A: 0xff})

	for _, p := range level.Placements {
		x := float64(p.Col) * common.TileSize
		y := float64(p.Row) * common.TileSize

		switch p.Kind {
		case prefabs.PlaceSolid:
			buildTile(w, x, y, solidColor, component.RoleSolid, false)

		case prefabs.PlaceCalmOnly:
			e := buildTile(w, x, y, calmColor, component.RoleCalmSolid, false)
			addGate(w, e, component.GateCalmOnly, false)

		case prefabs.PlaceAlteredOnly:
			e := buildTile(w, x, y, alteredColor, component.RoleAlteredSolid, false)
			addGate(w, e, component.GateAlteredOnly, false)

		case prefabs.PlaceCrumble, prefabs.PlaceCrumbleOnce:
			e := buildTile(w, x, y, crumbleColor, component.RoleCrumble, false)
			delay := spec.Crumble.Delay
			if delay <= 0 {
				delay = 0.7
			}
			mustAdd(w, e, component.CrumblePlatformComponent, component.CrumblePlatform{
				Delay:     delay,
				SingleUse: p.Kind == prefabs.PlaceCrumbleOnce,
			})
			mustAdd(w, e, component.CrumbleStateComponent, component.CrumbleState{})

		case prefabs.PlaceMover:
			e := buildMover(w, x, y, moverColor, spec.Mover)
			addGate(w, e, component.GateAlteredOnly, true)

		case prefabs.PlacePickup:
			buildPickup(w, x, y, pickupColor, spec.Pickup)

		case prefabs.PlaceHazard:
			buildTile(w, x, y, hazardColor, component.RoleHazard, true)

		case prefabs.PlaceEnemy:
			buildEnemy(w, x, y, enemySpec)

		case prefabs.PlacePlayerSpawn:
			if err := buildPlayer(w, x, y, playerSpec); err != nil {
				return err
			}
		}
	}
	return nil
}

func buildTile(w *ecs.World, x, y float64, c color.NRGBA, role component.CollisionRole, sensor bool) ecs.Entity {
	e := w.CreateEntity()
	mustAdd(w, e, component.TransformComponent, component.Transform{X: x, Y: y})
	mustAdd(w, e, component.SpriteComponent, component.Sprite{Width: common.TileSize, Height: common.TileSize, Color: c})
	mustAdd(w, e, component.PhysicsBodyComponent, component.PhysicsBody{
		Width:  common.TileSize,
		Height: common.TileSize,
		Role:   role,
		Static: true,
		Sensor: sensor,
	})
	return e
}

func addGate(w *ecs.World, e ecs.Entity, category component.GateCategory, preserve bool) {
	mustAdd(w, e, component.ShiftGateComponent, component.ShiftGate{Category: category, PreserveBehavior: preserve})
	mustAdd(w, e, component.ShiftGateRuntimeComponent, component.ShiftGateRuntime{})
}

func buildMover(w *ecs.World, x, y float64, c color.NRGBA, spec prefabs.MoverSpec) ecs.Entity {
	speed := spec.Speed
	if speed <= 0 {
		speed = 90
	}
	rng := spec.Range
	if rng <= 0 {
		rng = 120
	}
	horizontal := true
	if spec.Horizontal != nil {
		horizontal = *spec.Horizontal
	}

	e := w.CreateEntity()
	mustAdd(w, e, component.TransformComponent, component.Transform{X: x, Y: y})
	mustAdd(w, e, component.SpriteComponent, component.Sprite{Width: common.TileSize * 2, Height: common.TileSize / 2, Color: c})
	mustAdd(w, e, component.PhysicsBodyComponent, component.PhysicsBody{
		Width:     common.TileSize * 2,
		Height:    common.TileSize / 2,
		Role:      component.RoleSolid,
		Kinematic: true,
	})
	mustAdd(w, e, component.PatrolMoverComponent, component.PatrolMover{
		OriginX:    x,
		OriginY:    y,
		Horizontal: horizontal,
		Range:      rng,
		Speed:      speed,
		Dir:        1,
	})
	return e
}

func buildPickup(w *ecs.World, x, y float64, c color.NRGBA, spec prefabs.PickupSpec) {
	width := spec.Width
	if width <= 0 {
		width = 18
	}
	height := spec.Height
	if height <= 0 {
		height = 18
	}
	amplitude := spec.BobAmplitude
	if amplitude <= 0 {
		amplitude = 6
	}
	bobSpeed := spec.BobSpeed
	if bobSpeed <= 0 {
		bobSpeed = 3
	}

	e := w.CreateEntity()
	mustAdd(w, e, component.TransformComponent, component.Transform{
		X: x + (common.TileSize-width)/2,
		Y: y + (common.TileSize-height)/2,
	})
	mustAdd(w, e, component.SpriteComponent, component.Sprite{Width: width, Height: height, Color: c})
	mustAdd(w, e, component.PickupComponent, component.Pickup{
		BobAmplitude: amplitude,
		BobSpeed:     bobSpeed,
		Width:        width,
		Height:       height,
	})
}

func buildEnemy(w *ecs.World, x, y float64, spec *prefabs.EnemySpec) {
	e := w.CreateEntity()
	mustAdd(w, e, component.TransformComponent, component.Transform{
		X: x + (common.TileSize-spec.Width)/2,
		Y: y + common.TileSize - spec.Height,
	})
	mustAdd(w, e, component.SpriteComponent, component.Sprite{
		Width:  spec.Width,
		Height: spec.Height,
		Color:  spec.Color.NRGBA(color.NRGBA{R: 0xb8, G: 0x40, B: 0x5e, A: 0xff}),
	})
	mustAdd(w, e, component.PhysicsBodyComponent, component.PhysicsBody{
		Width:    spec.Width,
		Height:   spec.Height,
		Mass:     spec.Mass,
		Friction: 0.4,
		Role:     component.RoleEnemy,
	})
	mustAdd(w, e, component.EnemyComponent, component.Enemy{
		WalkSpeed:    spec.WalkSpeed,
		PursuitSpeed: spec.PursuitSpeed,
		PatrolMinX:   x - spec.PatrolRange,
		PatrolMaxX:   x + common.TileSize + spec.PatrolRange,
		Dir:          1,
	})
}

func buildPlayer(w *ecs.World, x, y float64, spec *prefabs.PlayerSpec) error {
	if spec == nil {
		return fmt.Errorf("level: no player spec")
	}

	e := w.CreateEntity()
	mustAdd(w, e, component.TransformComponent, component.Transform{
		X: x + (common.TileSize-spec.Width)/2,
		Y: y + common.TileSize - spec.Height,
	})
	mustAdd(w, e, component.SpriteComponent, component.Sprite{
		Width:  spec.Width,
		Height: spec.Height,
		Color:  spec.Color.NRGBA(color.NRGBA{R: 0xe8, G: 0xe8, B: 0xf0, A: 0xff}),
	})
	mustAdd(w, e, component.PhysicsBodyComponent, component.PhysicsBody{
		Width:    spec.Width,
		Height:   spec.Height,
		Mass:     spec.Mass,
		Friction: spec.Friction,
		Role:     component.RolePlayer,
	})
	mustAdd(w, e, component.PlayerTagComponent, component.PlayerTag{})
	mustAdd(w, e, component.PlayerComponent, component.Player{MoveSpeed: spec.MoveSpeed, JumpSpeed: spec.JumpSpeed})
	mustAdd(w, e, component.InputComponent, component.InputState{})
	mustAdd(w, e, component.GroundContactComponent, component.GroundContact{})
	mustAdd(w, e, component.SafeRespawnComponent, component.SafeRespawn{})
	return nil
}

func mustAdd[T any](w *ecs.World, e ecs.Entity, h component.ComponentHandle[T], v T) {
	if err := ecs.Add(w, e, h, v); err != nil {
		panic("level: add component: " + err.Error())
	}
}
