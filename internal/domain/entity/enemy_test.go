package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/younwookim/pogo/internal/domain/physics"
)

// createPatrolSpawn returns a patrolling enemy whose base box rests on y=500
func createPatrolSpawn(x float64) EnemySpawn {
	return EnemySpawn{
		Kind:           "slime",
		X:              x,
		Y:              500 - EnemyBaseHeight,
		Behavior:       BehaviorPatrol,
		PatrolRange:    1000,
		IdleDuration:   0.1,
		GravityEnabled: true,
	}
}

func tickEnemy(e *Enemy, n int, solids []physics.Rect) {
	for i := 0; i < n; i++ {
		e.Update(testDT, solids)
	}
}

func TestNewEnemy_Defaults(t *testing.T) {
	e := NewEnemy(3, EnemySpawn{X: 100, Y: 200}, 1)

	assert.Equal(t, EntityID(3), e.ID)
	assert.Equal(t, 48.0, e.W)
	assert.Equal(t, 64.0, e.H)
	assert.Equal(t, physics.Vec{X: 100, Y: 200}, e.Pos)
	assert.Equal(t, DefaultEnemyHealth, e.Health())
	assert.Equal(t, EnemyIdle, e.State())
	assert.Equal(t, BehaviorIdle, e.Behavior())

	minX, maxX := e.PatrolBounds()
	assert.Equal(t, 4.0, minX)
	assert.Equal(t, 196.0, maxX)
}

func TestNewEnemy_HitboxCenteredInBaseBox(t *testing.T) {
	e := NewEnemy(1, EnemySpawn{X: 100, Y: 200, HitboxW: 64, HitboxH: 52}, 1)
	assert.Equal(t, physics.Vec{X: 92, Y: 212}, e.Pos)

	scaled := NewEnemy(1, EnemySpawn{X: 100, Y: 200, HitboxW: 64, HitboxH: 52}, 2)
	assert.Equal(t, 128.0, scaled.W)
	assert.Equal(t, 104.0, scaled.H)
	assert.Equal(t, physics.Vec{X: 84, Y: 224}, scaled.Pos)
}

func TestNewEnemy_ZeroIdleStartsPatrolling(t *testing.T) {
	spawn := createPatrolSpawn(100)
	spawn.IdleDuration = 0

	e := NewEnemy(1, spawn, 1)

	assert.Equal(t, EnemyPatrol, e.State())
}

func TestEnemy_ThreeHitsKill(t *testing.T) {
	e := NewEnemy(1, createPatrolSpawn(100), 1)
	floor := createTestFloor()

	for i := 0; i < 3; i++ {
		assert.True(t, e.ApplyHit(1, physics.Vec{X: 20, Y: -10}))
		tickEnemy(e, 40, floor)
	}

	assert.True(t, e.IsDead())
	assert.Equal(t, 0, e.Health())

	assert.False(t, e.ApplyHit(1, physics.Vec{X: 20}), "hits on a dead enemy are rejected")
	assert.Equal(t, 0, e.Health())
	assert.True(t, e.IsDead())
}

func TestEnemy_OverkillFloorsHealth(t *testing.T) {
	e := NewEnemy(1, createPatrolSpawn(100), 1)

	assert.True(t, e.ApplyHit(10, physics.Vec{}))
	assert.Equal(t, 0, e.Health())
	assert.Equal(t, EnemyDead, e.State())
}

func TestEnemy_DeadIsFrozen(t *testing.T) {
	e := NewEnemy(1, createPatrolSpawn(100), 1)
	e.ApplyHit(3, physics.Vec{X: 200, Y: -200})
	pos := e.Pos

	tickEnemy(e, 60, createTestFloor())

	assert.Equal(t, pos, e.Pos)
}

func TestEnemy_HurtDecaysThenIdles(t *testing.T) {
	spawn := createPatrolSpawn(100)
	spawn.IdleDuration = 0.5
	e := NewEnemy(1, spawn, 1)
	floor := createTestFloor()
	tickEnemy(e, 2, floor)

	e.ApplyHit(1, physics.Vec{X: 120})
	assert.Equal(t, EnemyHurt, e.State())

	e.Update(testDT, floor)
	assert.InDelta(t, 100.0, e.Vel.X, 1e-9, "knockback decays at the damping rate")

	tickEnemy(e, 30, floor)
	assert.Equal(t, EnemyIdle, e.State(), "hurt returns to idle, not patrol")
	assert.Equal(t, 0.0, e.Vel.X)
}

func TestEnemy_IdleBehaviorNeverPatrols(t *testing.T) {
	e := NewEnemy(1, EnemySpawn{X: 100, Y: 436, Behavior: BehaviorIdle, IdleDuration: 0.1, GravityEnabled: true}, 1)
	start := e.Pos.X

	tickEnemy(e, 300, createTestFloor())

	assert.Equal(t, EnemyIdle, e.State())
	assert.Equal(t, start, e.Pos.X)
}

func TestEnemy_NoGravityHovers(t *testing.T) {
	e := NewEnemy(1, EnemySpawn{X: 100, Y: 100}, 1)

	tickEnemy(e, 60, nil)

	assert.Equal(t, physics.Vec{X: 100, Y: 100}, e.Pos)
}

func TestEnemy_PatrolStartsAfterIdle(t *testing.T) {
	spawn := createPatrolSpawn(400)
	spawn.IdleDuration = 0.5
	e := NewEnemy(1, spawn, 1)
	floor := createTestFloor()

	tickEnemy(e, 29, floor)
	assert.Equal(t, EnemyIdle, e.State())
	assert.Equal(t, 400.0, e.Pos.X)

	tickEnemy(e, 3, floor)
	assert.Equal(t, EnemyPatrol, e.State())
	assert.Greater(t, e.Pos.X, 400.0)
}

func TestEnemy_StaysWithinPatrolBounds(t *testing.T) {
	spawn := createPatrolSpawn(400)
	spawn.PatrolRange = 50
	e := NewEnemy(1, spawn, 1)
	floor := createTestFloor()
	minX, maxX := e.PatrolBounds()

	sawLeft, sawRight := false, false
	for i := 0; i < 600; i++ {
		e.Update(testDT, floor)
		assert.GreaterOrEqual(t, e.Pos.X, minX)
		assert.LessOrEqual(t, e.Pos.X, maxX)
		sawLeft = sawLeft || e.Pos.X == minX
		sawRight = sawRight || e.Pos.X == maxX
	}

	assert.True(t, sawLeft)
	assert.True(t, sawRight)
}

func TestEnemy_TurnsBeforeGap(t *testing.T) {
	// One 64-unit gap between x=400 and x=464.
	solids := []physics.Rect{
		{X: 0, Y: 500, W: 400, H: 40},
		{X: 464, Y: 500, W: 536, H: 40},
	}
	e := NewEnemy(1, createPatrolSpawn(200), 1)

	turned := false
	for i := 0; i < 600; i++ {
		e.Update(testDT, solids)
		assert.LessOrEqual(t, e.Pos.X+e.W, 400.0+1e-6, "tick %d: enemy stepped over the gap", i)
		assert.GreaterOrEqual(t, e.Pos.X, -1e-6, "tick %d: enemy stepped off the left ledge", i)
		assert.Equal(t, 500.0-e.H, e.Pos.Y, "tick %d: enemy left the floor", i)
		turned = turned || e.Facing() == -1
	}

	assert.True(t, turned)
}

func TestEnemy_StepWithinToleranceIsNotAnEdge(t *testing.T) {
	solids := []physics.Rect{
		{X: 0, Y: 500, W: 400, H: 40},
		{X: 400, Y: 502, W: 600, H: 40},
	}
	e := NewEnemy(1, createPatrolSpawn(300), 1)

	tickEnemy(e, 180, solids)

	assert.Greater(t, e.Pos.X, 400.0, "enemy walks down a small step")
}

func TestEnemy_TurnsAtWall(t *testing.T) {
	solids := []physics.Rect{
		{X: 0, Y: 500, W: 1000, H: 40},
		{X: 300, Y: 300, W: 20, H: 200},
	}
	e := NewEnemy(1, createPatrolSpawn(200), 1)

	turned := false
	for i := 0; i < 300; i++ {
		e.Update(testDT, solids)
		assert.False(t, physics.Overlaps(e.Rect(), solids[1]))
		turned = turned || e.Facing() == -1
	}

	assert.True(t, turned)
}
