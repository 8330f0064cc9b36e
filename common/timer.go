package common

// Timer is a countdown advanced once per fixed simulation step. A timer
// that was never started (or was stopped) is inactive and never reports
// expiry; remaining is clamped at zero so stored state never goes negative.
type Timer struct {
	duration  float64
	remaining float64
	active    bool
}

func NewTimer(duration float64) Timer {
	if duration < 0 {
		duration = 0
	}
	return Timer{duration: duration}
}

// Start resets remaining to the full duration and activates the timer.
func (t *Timer) Start() {
	t.remaining = t.duration
	t.active = true
}

// Stop deactivates the timer without touching remaining.
func (t *Timer) Stop() {
	t.active = false
}

// timerEpsilon absorbs float accumulation: neither 1/60 nor 0.1 is
// exactly representable, so a countdown ticked in fixed steps lands a
// hair above zero and would otherwise expire one step late.
const timerEpsilon = 1e-9

// Tick advances the countdown by dt seconds.
func (t *Timer) Tick(dt float64) {
	if !t.active || dt <= 0 {
		return
	}
	t.remaining -= dt
	if t.remaining < timerEpsilon {
		t.remaining = 0
	}
}

func (t *Timer) Active() bool {
	return t.active
}

// Expired reports whether an active timer has run out. Inactive timers
// never expire.
func (t *Timer) Expired() bool {
	return t.active && t.remaining <= 0
}

func (t *Timer) Remaining() float64 {
	if !t.active {
		return 0
	}
	return t.remaining
}

func (t *Timer) Duration() float64 {
	return t.duration
}

// SetDuration replaces the duration for subsequent Starts. A running
// countdown keeps its current remaining time.
func (t *Timer) SetDuration(duration float64) {
	if duration < 0 {
		duration = 0
	}
	t.duration = duration
}

// SetRemaining overrides the current countdown, clamped to [0, duration].
func (t *Timer) SetRemaining(remaining float64) {
	t.remaining = Clamp(remaining, 0, t.duration)
}

// Fraction returns elapsed progress in [0, 1]: 0 right after Start, 1 at
// expiry. Inactive or zero-duration timers report 1.
func (t *Timer) Fraction() float64 {
	if !t.active || t.duration <= 0 {
		return 1
	}
	return Clamp(1-t.remaining/t.duration, 0, 1)
}
