package component

// EnemyPhase is the mode-driven behavior sub-state. Harm is gated on
// EnemyPursuing (plus the extended no-hostility window), never on the
// global mode directly.
type EnemyPhase int

const (
	EnemyWalking EnemyPhase = iota
	EnemyPursuing
)

type Enemy struct {
	WalkSpeed    float64
	PursuitSpeed float64
	// Patrol bounds in world X; the walker turns around at the edges.
	PatrolMinX float64
	PatrolMaxX float64
	Dir        float64

	Phase EnemyPhase
}

var EnemyComponent = NewComponent[Enemy]()
