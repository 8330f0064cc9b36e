package system

import (
	"fmt"
	"log"
	"strings"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/renn8/worldshift/ecs"
	"github.com/renn8/worldshift/shift"
)

// ScriptHookSystem runs level-authored tengo scripts on shift
// transitions. Broadcasts only enqueue the event; the script itself runs
// from Update so scripted work never executes in the middle of the
// authority's state change.
type ScriptHookSystem struct {
	authority *shift.Authority
	loader    func(path string) ([]byte, error)

	alteredHook *scriptHook
	calmHook    *scriptHook
	pending     []string
}

type scriptHook struct {
	path     string
	compiled *tengo.Compiled
}

func NewScriptHookSystem(authority *shift.Authority, cfg shift.Config, loader func(path string) ([]byte, error)) *ScriptHookSystem {
	s := &ScriptHookSystem{
		authority: authority,
		loader:    loader,
	}

	var err error
	if s.alteredHook, err = s.loadHook(cfg.OnAlteredScript); err != nil {
		log.Printf("script hooks: %v", err)
	}
	if s.calmHook, err = s.loadHook(cfg.OnCalmScript); err != nil {
		log.Printf("script hooks: %v", err)
	}

	authority.SubscribeEntered(func() { s.pending = append(s.pending, "entered") })
	authority.SubscribeReturned(func() { s.pending = append(s.pending, "returned") })
	authority.SubscribeForced(func() { s.pending = append(s.pending, "forced") })
	return s
}

func (s *ScriptHookSystem) loadHook(path string) (*scriptHook, error) {
	path = strings.TrimSpace(path)
	if path == "" || s.loader == nil {
		return nil, nil
	}
	src, err := s.loader(path)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}

	script := tengo.NewScript(src)
	_ = script.Add("__event", "")
	_ = script.Add("__manual", false)
	_ = script.Add("__charges", 0)
	_ = script.Add("__gauge", 0.0)
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("compile %s: %w", path, err)
	}
	return &scriptHook{path: path, compiled: compiled}, nil
}

func (s *ScriptHookSystem) Update(*ecs.World) {
	if len(s.pending) == 0 {
		return
	}
	events := s.pending
	s.pending = nil

	for _, event := range events {
		hook := s.calmHook
		if event == "entered" || event == "forced" {
			hook = s.alteredHook
		}
		if hook == nil {
			continue
		}
		if err := s.runHook(hook, event); err != nil {
			log.Printf("script hooks: %s: %v", hook.path, err)
		}
	}
}

func (s *ScriptHookSystem) runHook(hook *scriptHook, event string) error {
	if err := hook.compiled.Set("__event", event); err != nil {
		return err
	}
	if err := hook.compiled.Set("__manual", s.authority.EntryWasManual()); err != nil {
		return err
	}
	if err := hook.compiled.Set("__charges", s.authority.Charges()); err != nil {
		return err
	}
	if err := hook.compiled.Set("__gauge", s.authority.GaugeFraction()); err != nil {
		return err
	}
	return hook.compiled.Run()
}
