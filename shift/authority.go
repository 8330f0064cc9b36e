package shift

import (
	"github.com/renn8/worldshift/common"
)

// Authority owns the current Mode and every counter that gates a mode
// change: the manual-trigger cooldown, the episode duration timer, the
// forced-trigger gauge, and the extended-shift charge inventory. It is
// constructed once in NewGame and handed to each system that needs it;
// nothing else may write the mode.
//
// All request operations report expected rejections (cooldown running, no
// charges, inventory full) as a false return, never as an error.
type Authority struct {
	cfg  Config
	mode Mode

	modeTimer     common.Timer
	extendedTimer common.Timer
	cooldown      common.Timer
	gauge         common.Timer

	extendedActive bool
	manualEntry    bool
	charges        int

	nextSubID int
	entered   []subscriber
	returned  []subscriber
	forced    []subscriber
	chargeSub []chargeSubscriber
}

type subscriber struct {
	id int
	fn func()
}

type chargeSubscriber struct {
	id int
	fn func(count int)
}

func NewAuthority(cfg Config) *Authority {
	cfg = cfg.sanitized()
	a := &Authority{
		cfg:           cfg,
		mode:          Calm,
		modeTimer:     common.NewTimer(cfg.Duration),
		extendedTimer: common.NewTimer(cfg.ExtendedDuration),
		cooldown:      common.NewTimer(cfg.Cooldown),
		gauge:         common.NewTimer(cfg.Gauge),
	}
	a.gauge.Start()
	return a
}

// Reconfigure swaps in new tuning. Running countdowns keep their current
// remaining time; the new durations apply from their next Start.
func (a *Authority) Reconfigure(cfg Config) {
	cfg = cfg.sanitized()
	a.cfg = cfg
	a.modeTimer.SetDuration(cfg.Duration)
	a.extendedTimer.SetDuration(cfg.ExtendedDuration)
	a.cooldown.SetDuration(cfg.Cooldown)
	a.gauge.SetDuration(cfg.Gauge)
	if a.charges > cfg.MaxCharges {
		a.charges = cfg.MaxCharges
		a.notifyCharges()
	}
}

func (a *Authority) Config() Config { return a.cfg }

func (a *Authority) Mode() Mode { return a.mode }

func (a *Authority) OnCooldown() bool {
	return a.cooldown.Active() && a.cooldown.Remaining() > 0
}

func (a *Authority) ExtendedActive() bool { return a.extendedActive }

// EntryWasManual reports whether the current (or most recent) Altered
// episode was requested by the player rather than forced by the gauge.
func (a *Authority) EntryWasManual() bool { return a.manualEntry }

func (a *Authority) Charges() int { return a.charges }

func (a *Authority) MaxCharges() int { return a.cfg.MaxCharges }

// GaugeFraction reports forced-trigger progress for UI: 0 right after a
// reset, 1 when a forced shift is imminent. While Altered the gauge is
// parked at 0.
func (a *Authority) GaugeFraction() float64 {
	if !a.gauge.Active() {
		return 0
	}
	return a.gauge.Fraction()
}

// SubscribeEntered registers fn to run synchronously whenever the world
// enters Altered. The returned id can be passed to Unsubscribe.
func (a *Authority) SubscribeEntered(fn func()) int {
	a.nextSubID++
	a.entered = append(a.entered, subscriber{id: a.nextSubID, fn: fn})
	return a.nextSubID
}

// SubscribeReturned registers fn to run synchronously whenever the world
// returns to Calm.
func (a *Authority) SubscribeReturned(fn func()) int {
	a.nextSubID++
	a.returned = append(a.returned, subscriber{id: a.nextSubID, fn: fn})
	return a.nextSubID
}

// SubscribeForced registers fn to run when a shift is forced by the gauge,
// immediately before the entered broadcast, so UI can present the entry
// differently.
func (a *Authority) SubscribeForced(fn func()) int {
	a.nextSubID++
	a.forced = append(a.forced, subscriber{id: a.nextSubID, fn: fn})
	return a.nextSubID
}

// SubscribeCharges registers fn to run whenever the charge count changes.
func (a *Authority) SubscribeCharges(fn func(count int)) int {
	a.nextSubID++
	a.chargeSub = append(a.chargeSub, chargeSubscriber{id: a.nextSubID, fn: fn})
	return a.nextSubID
}

// Unsubscribe removes a previously registered callback from whichever list
// holds it.
func (a *Authority) Unsubscribe(id int) bool {
	for _, list := range []*[]subscriber{&a.entered, &a.returned, &a.forced} {
		for i, sub := range *list {
			if sub.id == id {
				*list = append((*list)[:i], (*list)[i+1:]...)
				return true
			}
		}
	}
	for i, sub := range a.chargeSub {
		if sub.id == id {
			a.chargeSub = append(a.chargeSub[:i], a.chargeSub[i+1:]...)
			return true
		}
	}
	return false
}

// RequestManualShift enters Altered if the world is Calm and not on
// cooldown. Rejection is an expected no-op.
func (a *Authority) RequestManualShift() bool {
	if a.mode == Altered || a.OnCooldown() {
		return false
	}
	a.enterAltered(true)
	return true
}

// RequestExtendedShift spends one charge to enter Altered for the extended
// duration, or to prolong the current episode. While the extension is
// active, hostile behavior is suppressed (consumers key off
// ExtendedActive). Fails when no charges remain or an extension is already
// running.
func (a *Authority) RequestExtendedShift() bool {
	if a.charges <= 0 || a.extendedActive {
		return false
	}
	a.charges--
	a.notifyCharges()
	a.extendedActive = true
	a.extendedTimer.Start()
	if a.mode != Altered {
		a.enterAltered(true)
	}
	return true
}

// AddCharge adds one extended-shift charge. Returns false when the
// inventory is full so pickups can stay in the world.
func (a *Authority) AddCharge() bool {
	if a.charges >= a.cfg.MaxCharges {
		return false
	}
	a.charges++
	a.notifyCharges()
	return true
}

// ResetAll is the respawn hook: force Calm (broadcasting the return if a
// shift was active), drop all charges, and restart the gauge from full.
// The whole reset is one synchronous call.
func (a *Authority) ResetAll() {
	if a.mode == Altered {
		a.mode = Calm
		a.modeTimer.Stop()
		a.broadcast(a.returned)
	}
	a.extendedActive = false
	a.extendedTimer.Stop()
	a.cooldown.Stop()
	if a.charges != 0 {
		a.charges = 0
		a.notifyCharges()
	}
	a.gauge.Start()
}

// Update advances the authority by one fixed step. Expiries are evaluated
// before timers tick so a single frame's expiry is never double-processed,
// and the extended timer is always evaluated before the base duration
// timer.
func (a *Authority) Update(dt float64) {
	switch {
	case a.extendedActive && a.extendedTimer.Expired():
		// Only the no-hostility window ends here; the episode itself ends
		// when the duration timer's expiry is seen on a later step.
		a.extendedActive = false
		a.extendedTimer.Stop()
	case a.mode == Altered && !a.extendedActive && a.modeTimer.Expired():
		a.exitToCalm()
	case a.mode == Calm && !a.OnCooldown() && a.gauge.Expired():
		a.forcedShift()
	}

	a.modeTimer.Tick(dt)
	a.extendedTimer.Tick(dt)
	a.gauge.Tick(dt)
	a.cooldown.Tick(dt)
	if a.cooldown.Expired() {
		a.cooldown.Stop()
	}
}

func (a *Authority) enterAltered(manual bool) {
	a.mode = Altered
	a.manualEntry = manual
	a.modeTimer.Start()
	a.gauge.Stop()
	a.broadcast(a.entered)
}

func (a *Authority) exitToCalm() {
	a.mode = Calm
	a.modeTimer.Stop()
	a.broadcast(a.returned)
	a.cooldown.Start()
	// The gauge restarts after every completed episode, manual or forced,
	// so a forced shift can never immediately re-trigger itself.
	a.gauge.Start()
}

func (a *Authority) forcedShift() {
	a.broadcast(a.forced)
	a.enterAltered(false)
}

func (a *Authority) broadcast(subs []subscriber) {
	for _, sub := range subs {
		if sub.fn != nil {
			sub.fn()
		}
	}
}

func (a *Authority) notifyCharges() {
	for _, sub := range a.chargeSub {
		if sub.fn != nil {
			sub.fn(a.charges)
		}
	}
}
