package shift

// Mode is the global two-valued simulation state. It is owned exclusively
// by the Authority; every other component observes it through the
// Authority's broadcasts or accessors.
type Mode int

const (
	Calm Mode = iota
	Altered
)

func (m Mode) String() string {
	switch m {
	case Calm:
		return "calm"
	case Altered:
		return "altered"
	}
	return "unknown"
}
