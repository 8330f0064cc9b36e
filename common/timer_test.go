package common

import "testing"

func TestTimer(t *testing.T) {
	cases := []struct {
		name     string
		duration float64
		ticks    int
		dt       float64
		expired  bool
	}{
		{"not_expired_midway", 1.0, 5, 0.1, false},
		{"expired_exact", 1.0, 10, 0.1, true},
		{"expired_at_step_granularity", 0.5, 30, 1.0 / 60.0, true},
		{"expired_overrun", 1.0, 20, 0.1, true},
		{"zero_duration", 0, 1, 0.1, true},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			tm := NewTimer(c.duration)
			tm.Start()
			for i := 0; i < c.ticks; i++ {
				tm.Tick(c.dt)
			}
			if tm.Expired() != c.expired {
				t.Fatalf("expired=%v, want %v (remaining=%v)", tm.Expired(), c.expired, tm.Remaining())
			}
			if tm.Remaining() < 0 {
				t.Fatalf("remaining went negative: %v", tm.Remaining())
			}
		})
	}
}

func TestTimerInactive(t *testing.T) {
	tm := NewTimer(1)
	if tm.Expired() {
		t.Fatalf("never-started timer reported expiry")
	}
	tm.Tick(5)
	if tm.Expired() || tm.Active() {
		t.Fatalf("ticking an inactive timer should do nothing")
	}

	tm.Start()
	tm.Tick(2)
	if !tm.Expired() {
		t.Fatalf("expected expiry after overrun tick")
	}
	tm.Stop()
	if tm.Expired() {
		t.Fatalf("stopped timer reported expiry")
	}
}

func TestTimerFraction(t *testing.T) {
	tm := NewTimer(2)
	tm.Start()
	if f := tm.Fraction(); f != 0 {
		t.Fatalf("fresh fraction = %v, want 0", f)
	}
	tm.Tick(1)
	if f := tm.Fraction(); f != 0.5 {
		t.Fatalf("half fraction = %v, want 0.5", f)
	}
	tm.Tick(2)
	if f := tm.Fraction(); f != 1 {
		t.Fatalf("expired fraction = %v, want 1", f)
	}
}
