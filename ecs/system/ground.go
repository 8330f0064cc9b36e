package system

import (
	"log"

	"github.com/jakecoffman/cp"
)

const (
	groundGraceFrames = 6

	// reconcileCadence spaces the defensive contact re-enumeration out so
	// it never races the per-step presolve reaffirmation; a per-step check
	// would alternately set and clear the flag within one frame window and
	// intermittently eat jump input. Ten steps bounds the staleness window
	// after an out-of-band collider removal.
	reconcileCadence = 10
)

// GroundTracker keeps a trustworthy grounded flag per tracked foot sensor.
// Chipmunk only reports contact loss on physical separation during a step;
// a shape removed from the space by game logic (a collapsing platform, a
// gated-out floor) never separates, so the flag is reconciled against the
// body's live arbiter set on a reduced cadence.
type GroundTracker struct {
	floorTypes map[cp.CollisionType]bool
	states     map[*cp.Shape]*groundState
	step       int
	debug      bool

	// OnFloorContact fires on every begin contact between a tracked foot
	// and a floor-classified shape; the physics system routes it to
	// perforated platforms.
	OnFloorContact func(foot, floor *cp.Shape)
}

type groundState struct {
	grounded bool
	grace    int
}

func NewGroundTracker(floorTypes []cp.CollisionType, debug bool) *GroundTracker {
	set := make(map[cp.CollisionType]bool, len(floorTypes))
	for _, t := range floorTypes {
		set[t] = true
	}
	return &GroundTracker{
		floorTypes: set,
		states:     make(map[*cp.Shape]*groundState),
		debug:      debug,
	}
}

// InstallHandlers registers begin/presolve/separate handlers for the foot
// collision type against every floor-classified type.
func (t *GroundTracker) InstallHandlers(space *cp.Space, footType cp.CollisionType) {
	for floorType := range t.floorTypes {
		handler := space.NewCollisionHandler(footType, floorType)
		handler.UserData = t
		handler.BeginFunc = func(arb *cp.Arbiter, _ *cp.Space, userData interface{}) bool {
			tracker, ok := userData.(*GroundTracker)
			if ok && tracker != nil {
				tracker.onContact(arb, true)
			}
			return true
		}
		handler.PreSolveFunc = func(arb *cp.Arbiter, _ *cp.Space, userData interface{}) bool {
			tracker, ok := userData.(*GroundTracker)
			if ok && tracker != nil {
				tracker.onContact(arb, false)
			}
			return true
		}
		handler.SeparateFunc = func(arb *cp.Arbiter, _ *cp.Space, userData interface{}) {
			tracker, ok := userData.(*GroundTracker)
			if ok && tracker != nil {
				tracker.onSeparate(arb)
			}
		}
	}
}

// Track starts maintaining a grounded flag for the foot sensor shape.
func (t *GroundTracker) Track(foot *cp.Shape) {
	if foot == nil {
		return
	}
	if _, ok := t.states[foot]; !ok {
		t.states[foot] = &groundState{}
	}
}

func (t *GroundTracker) Untrack(foot *cp.Shape) {
	delete(t.states, foot)
}

func (t *GroundTracker) Grounded(foot *cp.Shape) bool {
	st := t.states[foot]
	return st != nil && st.grounded
}

func (t *GroundTracker) Grace(foot *cp.Shape) int {
	st := t.states[foot]
	if st == nil {
		return 0
	}
	return st.grace
}

// Step runs once per physics step, after the space has stepped: it decays
// grace frames and, on the reconcile cadence, re-enumerates contacts for
// any flag still set.
func (t *GroundTracker) Step() {
	t.step++
	reconcile := t.step%reconcileCadence == 0
	for foot, st := range t.states {
		if st.grace > 0 {
			st.grace--
		}
		if reconcile && st.grounded && !t.supported(foot) {
			if t.debug {
				log.Printf("ground: reconciled stale grounded flag (support removed out-of-band)")
			}
			st.grounded = false
		}
	}
}

func (t *GroundTracker) onContact(arb *cp.Arbiter, begin bool) {
	foot, other, flipped := t.resolve(arb)
	if foot == nil {
		return
	}
	st := t.states[foot]
	if st == nil {
		return
	}
	if !t.floorTypes[shapeType(other)] || other.Sensor() {
		return
	}
	// Only contacts whose normal points from the foot down into the floor
	// count; glancing side overlaps of the sensor box don't ground.
	n := arb.Normal()
	if flipped {
		n = n.Neg()
	}
	if n.Y <= 0.5 {
		return
	}
	st.grounded = true
	st.grace = groundGraceFrames
	if begin && t.OnFloorContact != nil {
		t.OnFloorContact(foot, other)
	}
}

// onSeparate does not clear the flag directly: stepping from one platform
// straight onto an adjacent one delivers a separate for the old support
// while the new one still holds. Only an unsupported re-enumeration clears.
func (t *GroundTracker) onSeparate(arb *cp.Arbiter) {
	foot, _, _ := t.resolve(arb)
	if foot == nil {
		return
	}
	st := t.states[foot]
	if st == nil {
		return
	}
	if st.grounded && !t.supported(foot) {
		st.grounded = false
	}
}

func (t *GroundTracker) resolve(arb *cp.Arbiter) (foot, other *cp.Shape, flipped bool) {
	a, b := arb.Shapes()
	if _, ok := t.states[a]; ok {
		return a, b, false
	}
	if _, ok := t.states[b]; ok {
		return b, a, true
	}
	return nil, nil, false
}

// supported re-enumerates the body's current arbiters and reports whether
// any remaining contact is with a floor-classified solid shape pressing
// up from below. Shapes removed from the space have their arbiters purged,
// so a vanished support cannot count. The body's arbiter list holds the
// main collider's contacts, not the foot sensor's, so matching is by body.
func (t *GroundTracker) supported(foot *cp.Shape) bool {
	body := foot.Body()
	if body == nil {
		return false
	}
	found := false
	body.EachArbiter(func(arb *cp.Arbiter) {
		if found {
			return
		}
		a, b := arb.Shapes()
		other := a
		flipped := true
		if a.Body() == body {
			other = b
			flipped = false
		}
		if !t.floorTypes[shapeType(other)] || other.Sensor() {
			return
		}
		n := arb.Normal()
		if flipped {
			n = n.Neg()
		}
		if n.Y > 0.5 {
			found = true
		}
	})
	return found
}
