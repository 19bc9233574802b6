package playing

import (
	"github.com/younwookim/pogo/internal/application/system"
	"github.com/younwookim/pogo/internal/domain/entity"
	"github.com/younwookim/pogo/internal/domain/physics"
)

const (
	sparkLifetime = 0.25
	shakeDuration = 0.15
	shakeStrength = 4.0
)

// Spark is a short-lived hit effect drawn at a combat impact
type Spark struct {
	Pos    physics.Vec
	Homing bool
	TTL    float64
}

// Feedback turns session events into HUD state and transient effects
type Feedback struct {
	Coins     int
	CoinTotal int
	Health    int
	MaxHealth int
	Deaths    int
	Cleared   bool

	sparks []Spark
	shake  float64
}

// CoinCollected updates the coin counter.
func (f *Feedback) CoinCollected(count, total int) {
	f.Coins = count
	f.CoinTotal = total
}

// HealthChanged updates the health bar and shakes the view on damage.
func (f *Feedback) HealthChanged(health, maxHealth int) {
	if health < f.Health {
		f.shake = shakeDuration
	}
	f.Health = health
	f.MaxHealth = maxHealth
	f.Cleared = false
}

// CombatHit spawns a spark at the impact point.
func (f *Feedback) CombatHit(hit system.CombatHit) {
	f.sparks = append(f.sparks, Spark{
		Pos:    hit.Impact,
		Homing: hit.Attack == entity.AttackHoming,
		TTL:    sparkLifetime,
	})
}

// PlayerDied counts the death and shakes the view.
func (f *Feedback) PlayerDied() {
	f.Deaths++
	f.shake = shakeDuration
}

// LevelCleared marks the level as cleared.
func (f *Feedback) LevelCleared() {
	f.Cleared = true
}

// Update ages effects
func (f *Feedback) Update(dt float64) {
	f.shake = max(0, f.shake-dt)
	alive := f.sparks[:0]
	for _, s := range f.sparks {
		s.TTL -= dt
		if s.TTL > 0 {
			alive = append(alive, s)
		}
	}
	f.sparks = alive
}

// ShakeOffset returns the screen offset for the current shake. The pattern
// alternates by frame so rendering stays deterministic.
func (f *Feedback) ShakeOffset(frame uint64) (float64, float64) {
	if f.shake <= 0 {
		return 0, 0
	}
	amp := shakeStrength * f.shake / shakeDuration
	if frame%2 == 0 {
		return amp, -amp
	}
	return -amp, amp
}

// Sparks returns the live hit effects
func (f *Feedback) Sparks() []Spark {
	return f.sparks
}

// DeathClock stands in for the death animation: once the player has been
// dead for Duration seconds it reports the animation finished.
type DeathClock struct {
	Duration float64
	elapsed  float64
}

// Advance accumulates dead time for p and finishes the animation when due.
// It resets while the player is alive.
func (c *DeathClock) Advance(p *entity.Player, dt float64) {
	if p == nil || !p.IsDead() {
		c.elapsed = 0
		return
	}
	c.elapsed += dt
	if c.elapsed >= c.Duration {
		p.FinishDeathAnimation()
	}
}
