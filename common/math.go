package common

const (
	BaseWidth  = 1280
	BaseHeight = 720

	TileSize = 40

	// Gravity is in pixels/s^2, screen-down coordinates.
	Gravity = 1500.0

	// TickRate is the fixed simulation rate; Dt is one step in seconds.
	TickRate = 60
	Dt       = 1.0 / float64(TickRate)
)

func Lerp(a, b, t float64) float64 {
	return a + t*(b-a)
}

func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
