package system

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/renn8/worldshift/ecs"
	"github.com/renn8/worldshift/ecs/component"
)

// RenderSystem draws every sprite as a flat-colored rectangle. Dimmed
// sprites render at reduced brightness; that is how a warned platform and
// a passive enemy telegraph their state.
type RenderSystem struct{}

func NewRenderSystem() *RenderSystem {
	return &RenderSystem{}
}

func (r *RenderSystem) Update(*ecs.World) {}

func (r *RenderSystem) Draw(w *ecs.World, screen *ebiten.Image) {
	if r == nil || w == nil {
		return
	}

	for _, e := range w.Query(component.TransformComponent.Kind(), component.SpriteComponent.Kind()) {
		t, ok := ecs.Get(w, e, component.TransformComponent)
		if !ok {
			continue
		}
		s, ok := ecs.Get(w, e, component.SpriteComponent)
		if !ok || s.Hidden {
			continue
		}

		c := s.Color
		if s.Dimmed {
			c = dim(c)
		}
		vector.DrawFilledRect(screen, float32(t.X), float32(t.Y), float32(s.Width), float32(s.Height), c, false)
	}
}

func dim(c color.NRGBA) color.NRGBA {
	return color.NRGBA{R: c.R / 2, G: c.G / 2, B: c.B / 2, A: c.A}
}
