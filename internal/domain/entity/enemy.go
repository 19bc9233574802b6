package entity

import (
	"math"

	"github.com/younwookim/pogo/internal/domain/physics"
)

// Enemy defaults in level units.
const (
	EnemyBaseWidth  = 48.0
	EnemyBaseHeight = 64.0

	DefaultEnemyHealth       = 3
	DefaultPatrolRange       = 96.0
	DefaultPatrolSpeed       = 80.0
	DefaultIdleDuration      = 0.5
	enemyGravity             = 1000.0
	enemyMaxFallSpeed        = 900.0
	enemyHurtDuration        = 0.5
	enemyEdgeTurnCooldown    = 0.18
	enemyStepTolerance       = 4.0
	enemyFallRevertThreshold = 0.5
	enemyBlockedThreshold    = 0.01
)

// Enemy is a hostile entity. It idles or patrols between bounds around its
// spawn point and turns at ledges and walls.
type Enemy struct {
	ID       EntityID
	Kind     string
	Pos      physics.Vec
	Vel      physics.Vec
	W, H     float64
	Grounded bool

	health    int
	maxHealth int
	state     EnemyState
	behavior  Behavior

	patrolMinX   float64
	patrolMaxX   float64
	patrolSpeed  float64
	patrolDir    int
	idleDuration float64
	idleTimer    float64
	hurtTimer    float64

	gravityEnabled bool
	gravity        float64
	maxFallSpeed   float64

	edgeTurnCooldown float64
	stepTolerance    float64
}

// NewEnemy creates an enemy from a spawn descriptor. Zero hitbox, patrol
// range, patrol speed and health take the defaults. A zero IdleDuration means
// a patrolling enemy turns without pausing.
func NewEnemy(id EntityID, spawn EnemySpawn, scale float64) *Enemy {
	if scale <= 0 {
		scale = 1
	}

	hitW := spawn.HitboxW
	if hitW <= 0 {
		hitW = EnemyBaseWidth
	}
	hitH := spawn.HitboxH
	if hitH <= 0 {
		hitH = EnemyBaseHeight
	}
	patrolRange := spawn.PatrolRange
	if patrolRange <= 0 {
		patrolRange = DefaultPatrolRange
	}
	patrolSpeed := spawn.PatrolSpeed
	if patrolSpeed <= 0 {
		patrolSpeed = DefaultPatrolSpeed
	}
	health := spawn.Health
	if health <= 0 {
		health = DefaultEnemyHealth
	}

	w := hitW * scale
	h := hitH * scale
	x := spawn.X + (EnemyBaseWidth*scale-w)*0.5
	y := spawn.Y + (EnemyBaseHeight*scale - h)

	e := &Enemy{
		ID:             id,
		Kind:           spawn.Kind,
		Pos:            physics.Vec{X: x, Y: y},
		W:              w,
		H:              h,
		health:         health,
		maxHealth:      health,
		state:          EnemyIdle,
		behavior:       spawn.Behavior,
		patrolMinX:     x - patrolRange*scale,
		patrolMaxX:     x + patrolRange*scale,
		patrolSpeed:    patrolSpeed * scale,
		patrolDir:      1,
		idleDuration:   spawn.IdleDuration,
		idleTimer:      spawn.IdleDuration,
		gravityEnabled: spawn.GravityEnabled,
		gravity:        enemyGravity * scale,
		maxFallSpeed:   enemyMaxFallSpeed * scale,
		stepTolerance:  enemyStepTolerance * scale,
	}
	if e.behavior == BehaviorPatrol && e.idleDuration <= 0 {
		e.state = EnemyPatrol
	}
	return e
}

// Rect returns the enemy's collision box.
func (e *Enemy) Rect() physics.Rect {
	return physics.Rect{X: e.Pos.X, Y: e.Pos.Y, W: e.W, H: e.H}
}

// Center returns the center of the collision box.
func (e *Enemy) Center() physics.Vec {
	return e.Rect().Center()
}

// Update advances the enemy by one tick. Dead enemies are frozen in place.
func (e *Enemy) Update(dt float64, solids []physics.Rect) {
	if e.state == EnemyDead {
		return
	}
	dt = physics.SafeDelta(dt)
	prev := e.Pos

	if e.edgeTurnCooldown > 0 {
		e.edgeTurnCooldown = max(0, e.edgeTurnCooldown-dt)
	}
	e.updateHurt(dt)
	e.updateBehavior(dt)

	turned := false
	if e.state == EnemyPatrol {
		projectedX := e.Pos.X + e.Vel.X*dt
		if e.shouldTurnAtEdge(solids, projectedX) {
			e.turn(-e.patrolDir)
			turned = true
		}
	}

	if e.gravityEnabled {
		e.Vel.Y = min(e.Vel.Y+e.gravity*dt, e.maxFallSpeed)
	} else {
		e.Vel.Y = 0
	}
	if e.state == EnemyHurt {
		e.Vel.X = damp(e.Vel.X, KnockbackDamping, dt)
	}

	desired := e.Vel.X
	res := physics.Resolve(e.Rect(), e.Vel.X*dt, e.Vel.Y*dt, solids)
	e.Pos.X = res.X
	e.Pos.Y = res.Y
	e.Vel.X = res.VX / dt
	e.Vel.Y = res.VY / dt
	e.Grounded = res.Grounded

	if e.state != EnemyPatrol {
		return
	}

	if !turned && e.Pos.Y > prev.Y+enemyFallRevertThreshold && !e.supportedNear(prev.Y+e.H, solids) {
		e.Pos = prev
		e.Vel = physics.Vec{}
		e.turn(-e.patrolDir)
		return
	}

	switch {
	case e.Pos.X <= e.patrolMinX:
		e.Pos.X = e.patrolMinX
		if e.patrolDir < 0 {
			e.turn(1)
		}
	case e.Pos.X >= e.patrolMaxX:
		e.Pos.X = e.patrolMaxX
		if e.patrolDir > 0 {
			e.turn(-1)
		}
	case !turned && math.Abs(res.VX) <= enemyBlockedThreshold && math.Abs(desired) > enemyBlockedThreshold:
		e.turn(-e.patrolDir)
	}
}

func (e *Enemy) updateHurt(dt float64) {
	if e.state != EnemyHurt {
		return
	}
	e.hurtTimer -= dt
	if e.hurtTimer <= 0 {
		e.hurtTimer = 0
		e.state = EnemyIdle
		e.idleTimer = e.idleDuration
	}
}

func (e *Enemy) updateBehavior(dt float64) {
	if e.state == EnemyDead || e.state == EnemyHurt {
		return
	}
	if e.behavior == BehaviorIdle {
		e.Vel.X = 0
		return
	}

	switch e.state {
	case EnemyIdle:
		e.idleTimer = max(0, e.idleTimer-dt)
		e.Vel.X = 0
		if e.idleTimer == 0 {
			e.state = EnemyPatrol
		}
	case EnemyPatrol:
		e.Vel.X = e.patrolSpeed * float64(e.patrolDir)
	}
}

// shouldTurnAtEdge probes the floor under the leading half of the box at
// projectedX. The floor must be continuous and within step tolerance of the
// floor the enemy stands on.
func (e *Enemy) shouldTurnAtEdge(solids []physics.Rect, projectedX float64) bool {
	if e.edgeTurnCooldown > 0 || !e.Grounded {
		return false
	}

	footY := e.Pos.Y + e.H
	under, ok := physics.FloorBelow(e.Pos.X, e.Pos.X+e.W, footY, e.stepTolerance, solids)
	if !ok {
		return true
	}

	half := e.W * 0.5
	frontStart, frontEnd := projectedX, projectedX+half
	if e.patrolDir > 0 {
		frontStart, frontEnd = projectedX+half, projectedX+e.W
	}
	return !physics.FloorCovers(frontStart, frontEnd, under, e.stepTolerance, solids)
}

// supportedNear reports whether a floor lies under the current x span no
// more than a step below footY.
func (e *Enemy) supportedNear(footY float64, solids []physics.Rect) bool {
	top, ok := physics.FloorBelow(e.Pos.X, e.Pos.X+e.W, footY, 0, solids)
	return ok && top <= footY+e.stepTolerance
}

// turn reverses to dir and pauses in idle for the idle duration.
func (e *Enemy) turn(dir int) {
	if dir >= 0 {
		e.patrolDir = 1
	} else {
		e.patrolDir = -1
	}
	e.edgeTurnCooldown = enemyEdgeTurnCooldown
	e.state = EnemyIdle
	e.idleTimer = e.idleDuration
	e.Vel.X = 0
}

// ApplyHit applies damage and replaces the velocity with knockback. It
// returns false if the enemy was already dead.
func (e *Enemy) ApplyHit(damage int, knockback physics.Vec) bool {
	if e.state == EnemyDead {
		return false
	}
	e.health = max(0, e.health-damage)
	e.Vel = knockback
	if e.health == 0 {
		e.state = EnemyDead
		e.hurtTimer = 0
		return true
	}
	e.state = EnemyHurt
	e.hurtTimer = enemyHurtDuration
	return true
}

// IsDead reports whether the enemy has died. Once true it stays true.
func (e *Enemy) IsDead() bool { return e.state == EnemyDead }

// Health returns the current health.
func (e *Enemy) Health() int { return e.health }

// MaxHealth returns the spawn health.
func (e *Enemy) MaxHealth() int { return e.maxHealth }

// State returns the current state.
func (e *Enemy) State() EnemyState { return e.state }

// Behavior returns the configured behavior.
func (e *Enemy) Behavior() Behavior { return e.behavior }

// Facing returns the patrol direction, -1 or 1.
func (e *Enemy) Facing() int { return e.patrolDir }

// PatrolBounds returns the x range the enemy's left edge patrols within.
func (e *Enemy) PatrolBounds() (minX, maxX float64) {
	return e.patrolMinX, e.patrolMaxX
}
