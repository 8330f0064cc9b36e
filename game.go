package main

import (
	"fmt"
	"log"
	"path/filepath"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/renn8/worldshift/common"
	"github.com/renn8/worldshift/ecs"
	"github.com/renn8/worldshift/ecs/system"
	"github.com/renn8/worldshift/prefabs"
	"github.com/renn8/worldshift/shift"
)

type Game struct {
	world     *ecs.World
	authority *shift.Authority
	render    *system.RenderSystem
	hud       *HUD
	watcher   *prefabs.Watcher

	levelFile string
	debug     bool
	paused    bool
	pauseUI   *pauseUI
}

// authorityTick adapts the shift authority to the system schedule so its
// per-step timer work runs in order with everything else.
type authorityTick struct {
	authority *shift.Authority
}

func (t *authorityTick) Update(*ecs.World) {
	t.authority.Update(common.Dt)
}

func NewGame(levelName string, watch, debug bool) *Game {
	cfg, err := prefabs.LoadShiftConfig()
	if err != nil {
		log.Printf("game: shift config: %v (using defaults)", err)
		cfg = shift.DefaultConfig()
	}
	authority := shift.NewAuthority(cfg)

	levelFile := levelFileName(levelName)
	levelSpec, err := prefabs.LoadLevelSpec(levelFile)
	if err != nil {
		log.Fatalf("game: level %s: %v", levelFile, err)
	}
	level, err := prefabs.ParseLevel(levelSpec)
	if err != nil {
		log.Fatalf("game: %v", err)
	}

	playerSpec, err := prefabs.LoadPlayerSpec()
	if err != nil {
		log.Fatalf("game: player spec: %v", err)
	}
	enemySpec, err := prefabs.LoadEnemySpec()
	if err != nil {
		log.Fatalf("game: enemy spec: %v", err)
	}

	world := ecs.NewWorld()
	if err := buildLevel(world, level, playerSpec, enemySpec); err != nil {
		log.Fatalf("game: build level: %v", err)
	}

	physics := system.NewPhysicsSystem(system.DefaultFloorRoles(), debug)
	render := system.NewRenderSystem()

	world.AddSystem(system.NewInputSystem())
	world.AddSystem(system.NewPlayerControllerSystem(authority))
	world.AddSystem(system.NewMoverSystem())
	world.AddSystem(physics)
	world.AddSystem(system.NewCrumbleSystem(authority, physics))
	world.AddSystem(&authorityTick{authority: authority})
	world.AddSystem(system.NewShiftGateSystem(authority, physics))
	world.AddSystem(system.NewEnemySystem(authority))
	world.AddSystem(system.NewPickupCollectSystem(authority))
	world.AddSystem(system.NewRespawnSystem(authority))
	world.AddSystem(system.NewScriptHookSystem(authority, cfg, prefabs.LoadScript))
	world.AddSystem(render)

	g := &Game{
		world:     world,
		authority: authority,
		render:    render,
		hud:       NewHUD(authority),
		levelFile: levelFile,
		debug:     debug,
	}
	g.pauseUI = newPauseUI(g)

	if watch {
		watcher, err := prefabs.NewWatcher("prefabs")
		if err != nil {
			log.Printf("game: watch: %v", err)
		} else {
			g.watcher = watcher
		}
	}

	return g
}

func levelFileName(name string) string {
	if name == "" {
		return "level1.yaml"
	}
	if ext := strings.ToLower(filepath.Ext(name)); ext == ".yaml" || ext == ".yml" {
		return name
	}
	return name + ".yaml"
}

func (g *Game) Update() error {
	g.pollWatcher()

	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		g.paused = !g.paused
	}
	if g.paused {
		g.pauseUI.ui.Update()
		return nil
	}

	g.world.Update()
	g.hud.Update()
	return nil
}

// pollWatcher applies shift tuning edits without restarting. Only
// shift.yaml reloads live; level layout changes need a restart.
func (g *Game) pollWatcher() {
	if g.watcher == nil {
		return
	}
	for {
		select {
		case path, ok := <-g.watcher.Events:
			if !ok {
				g.watcher = nil
				return
			}
			if filepath.Base(path) != "shift.yaml" {
				continue
			}
			cfg, err := prefabs.LoadShiftConfig()
			if err != nil {
				log.Printf("game: reload shift config: %v", err)
				continue
			}
			g.authority.Reconfigure(cfg)
			log.Printf("game: reloaded %s", path)
		case err, ok := <-g.watcher.Errors:
			if ok && err != nil {
				log.Printf("game: watch: %v", err)
			}
			return
		default:
			return
		}
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.render.Draw(g.world, screen)
	g.hud.Draw(screen)

	if g.paused {
		g.pauseUI.ui.Draw(screen)
	}
	if g.debug {
		ebitenutil.DebugPrint(screen, fmt.Sprintf("FPS: %.2f  mode: %s", ebiten.ActualFPS(), g.authority.Mode()))
	}
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	return common.BaseWidth, common.BaseHeight
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	panic("shouldn't use Layout")
}
