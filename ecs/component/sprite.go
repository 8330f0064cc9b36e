package component

import "image/color"

// Sprite is a flat-colored rectangle; this game renders solid rects only
// (no asset pipeline).
type Sprite struct {
	Width  float64
	Height float64
	Color  color.NRGBA
	// Hidden suppresses drawing without removing the component (the
	// flag-toggle gating strategy).
	Hidden bool
	// Dimmed renders at reduced alpha; used while a perforated platform is
	// warned or collapsed.
	Dimmed bool
}

var SpriteComponent = NewComponent[Sprite]()
