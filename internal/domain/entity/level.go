package entity

import "github.com/younwookim/pogo/internal/domain/physics"

// Coin is a collectible point in world units
type Coin struct {
	ID  string
	Pos physics.Vec
}

// EnemySpawn describes one enemy placement. X/Y is the top-left of the
// enemy's base box in world units; every other length and speed is in level
// units and is multiplied by the session's world scale.
type EnemySpawn struct {
	Kind           string
	X, Y           float64
	Behavior       Behavior
	PatrolRange    float64
	PatrolSpeed    float64
	IdleDuration   float64
	GravityEnabled bool
	HitboxW        float64
	HitboxH        float64
	Health         int
}

// Level is the static geometry and spawn data for one session, already in
// world units. Spawn is the point under the player's feet, horizontally
// centered.
type Level struct {
	ID      string
	Name    string
	Scale   float64
	Bounds  physics.Rect
	Solids  []physics.Rect
	Spawn   physics.Vec
	Goal    *physics.Rect
	Coins   []Coin
	Enemies []EnemySpawn
}

// WorldScale returns the level's scale, defaulting to 1.
func (l *Level) WorldScale() float64 {
	if l.Scale <= 0 {
		return 1
	}
	return l.Scale
}
