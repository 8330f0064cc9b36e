package shift

// Config is the shift tuning block, loaded from prefabs/shift.yaml.
// All durations are in seconds.
type Config struct {
	// Duration is how long a normal Altered episode lasts.
	Duration float64 `yaml:"duration"`
	// ExtendedDuration is the longer episode granted by spending a charge.
	ExtendedDuration float64 `yaml:"extended_duration"`
	// Cooldown blocks manual re-triggering after an episode ends.
	Cooldown float64 `yaml:"cooldown"`
	// Gauge is how long the world stays Calm before a shift is forced.
	Gauge float64 `yaml:"gauge"`
	// MaxCharges caps the extended-shift inventory.
	MaxCharges int `yaml:"max_charges"`

	// Optional tengo sources run synchronously on the two broadcasts.
	OnAlteredScript string `yaml:"on_altered_script"`
	OnCalmScript    string `yaml:"on_calm_script"`
}

// DefaultConfig mirrors prefabs/shift.yaml so tests and headless callers
// don't need the prefab loader.
func DefaultConfig() Config {
	return Config{
		Duration:         8,
		ExtendedDuration: 14,
		Cooldown:         1.5,
		Gauge:            45,
		MaxCharges:       3,
	}
}

func (c Config) sanitized() Config {
	if c.Duration <= 0 {
		c.Duration = DefaultConfig().Duration
	}
	if c.ExtendedDuration < c.Duration {
		c.ExtendedDuration = c.Duration
	}
	if c.Cooldown < 0 {
		c.Cooldown = 0
	}
	if c.Gauge <= 0 {
		c.Gauge = DefaultConfig().Gauge
	}
	if c.MaxCharges < 0 {
		c.MaxCharges = 0
	}
	return c
}
