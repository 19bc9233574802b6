package entity

// EntityID is a unique identifier for an entity within one session
type EntityID uint32

// LifeState is the player's life state
type LifeState int

const (
	LifeAlive LifeState = iota
	LifeHurt
	LifeDead
)

// String returns the string representation of the life state
func (s LifeState) String() string {
	switch s {
	case LifeAlive:
		return "alive"
	case LifeHurt:
		return "hurt"
	case LifeDead:
		return "dead"
	default:
		return "unknown"
	}
}

// AttackState is the player's attack state. AttackIdle doubles as "no
// request" when used as a requested attack type.
type AttackState int

const (
	AttackIdle AttackState = iota
	AttackMelee
	AttackHoming
)

// String returns the string representation of the attack state
func (s AttackState) String() string {
	switch s {
	case AttackIdle:
		return "idle"
	case AttackMelee:
		return "attack"
	case AttackHoming:
		return "homing"
	default:
		return "unknown"
	}
}

// EnemyState is an enemy's current state
type EnemyState int

const (
	EnemyIdle EnemyState = iota
	EnemyPatrol
	EnemyHurt
	EnemyDead
)

// String returns the string representation of the enemy state
func (s EnemyState) String() string {
	switch s {
	case EnemyIdle:
		return "idle"
	case EnemyPatrol:
		return "patrol"
	case EnemyHurt:
		return "hurt"
	case EnemyDead:
		return "dead"
	default:
		return "unknown"
	}
}

// Behavior defines how an enemy moves when left alone
type Behavior int

const (
	BehaviorIdle Behavior = iota
	BehaviorPatrol
)

// String returns the string representation of the behavior
func (b Behavior) String() string {
	switch b {
	case BehaviorIdle:
		return "idle"
	case BehaviorPatrol:
		return "patrol"
	default:
		return "unknown"
	}
}

// ParseBehavior converts a behavior name. Unknown names fall back to idle.
func ParseBehavior(name string) Behavior {
	if name == "patrol" {
		return BehaviorPatrol
	}
	return BehaviorIdle
}

// Input is one tick's merged input snapshot
type Input struct {
	MoveX         float64 // -1..1
	JumpPressed   bool
	JumpHeld      bool
	AttackPressed bool
	AttackHeld    bool
}

func sign(v float64) int {
	if v < 0 {
		return -1
	}
	return 1
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// damp decays v toward zero at rate per second.
func damp(v, rate, dt float64) float64 {
	return v - v*min(dt*rate, 1)
}
