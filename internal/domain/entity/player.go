package entity

import "github.com/younwookim/pogo/internal/domain/physics"

// Player tuning in level units. Lengths and speeds are multiplied by the
// world scale in NewPlayer.
const (
	PlayerWidth     = 48.0
	PlayerHeight    = 96.0
	PlayerMaxHealth = 3

	playerMoveSpeed    = 240.0
	playerJumpSpeed    = 520.0
	playerGravity      = 1100.0
	playerMaxFallSpeed = 800.0
)

// Timings in seconds.
const (
	HitInvincibilityDuration    = 1.0
	HomingInvincibilityDuration = 0.45
	FlickerInterval             = 0.08
	DeathHoldDuration           = 1.5

	// KnockbackDamping is the per-second decay rate of horizontal knockback.
	KnockbackDamping = 10.0

	attackActiveDuration = 0.2
	attackCooldown       = 0.3
	attackVisualDuration = 0.6
	homingActiveDuration = 0.28
	homingCooldown       = 0.4
	homingVisualDuration = 0.5
)

// Player is the controllable character.
//
// Movement fields are exported for the orchestrator and presentation;
// health, life and attack state only change through methods so the state
// machine invariants hold.
type Player struct {
	ID       EntityID
	Pos      physics.Vec
	Vel      physics.Vec
	W, H     float64
	Grounded bool
	Facing   int // -1 or 1

	moveSpeed    float64
	jumpSpeed    float64
	gravity      float64
	maxFallSpeed float64

	health    int
	maxHealth int
	life      LifeState
	hurtTimer float64

	// Attack
	attack          AttackState
	attackTimer     float64
	attackCooldown  float64
	visualTimer     float64
	visualAttack    AttackState
	attackSequence  int
	nextAttack      AttackState
	attackRequested bool

	// Invincibility
	invincibleTimer float64
	flickering      bool
	flickerTimer    float64
	flickerHidden   bool
	homingTimer     float64

	// Death sequence
	deathAnimDone  bool
	deathHoldTimer float64
}

// NewPlayer creates a player whose top-left corner is at (x, y).
func NewPlayer(id EntityID, x, y, scale float64) *Player {
	if scale <= 0 {
		scale = 1
	}
	return &Player{
		ID:           id,
		Pos:          physics.Vec{X: x, Y: y},
		W:            PlayerWidth * scale,
		H:            PlayerHeight * scale,
		Facing:       1,
		moveSpeed:    playerMoveSpeed * scale,
		jumpSpeed:    playerJumpSpeed * scale,
		gravity:      playerGravity * scale,
		maxFallSpeed: playerMaxFallSpeed * scale,
		health:       PlayerMaxHealth,
		maxHealth:    PlayerMaxHealth,
	}
}

// Rect returns the player's collision box.
func (p *Player) Rect() physics.Rect {
	return physics.Rect{X: p.Pos.X, Y: p.Pos.Y, W: p.W, H: p.H}
}

// Center returns the center of the collision box.
func (p *Player) Center() physics.Vec {
	return p.Rect().Center()
}

// Update advances the player by one tick.
func (p *Player) Update(dt float64, in Input, solids []physics.Rect) {
	dt = physics.SafeDelta(dt)
	locked := p.IsControlLocked()

	pressed := in.AttackPressed && !locked
	held := in.AttackHeld && !locked
	p.updateAttack(dt, pressed, held)
	p.updateInvincibility(dt)
	p.updateLife(dt)

	if p.life == LifeDead {
		p.Vel = physics.Vec{}
		return
	}

	if locked {
		p.Vel.X = damp(p.Vel.X, KnockbackDamping, dt)
	} else {
		move := clamp(in.MoveX, -1, 1)
		p.Vel.X = move * p.moveSpeed
		if move > 0.1 {
			p.Facing = 1
		} else if move < -0.1 {
			p.Facing = -1
		}
		if in.JumpPressed && p.Grounded {
			p.Vel.Y = -p.jumpSpeed
			p.Grounded = false
		}
	}

	p.Vel.Y = min(p.Vel.Y+p.gravity*dt, p.maxFallSpeed)

	res := physics.Resolve(p.Rect(), p.Vel.X*dt, p.Vel.Y*dt, solids)
	p.Pos.X = res.X
	p.Pos.Y = res.Y
	p.Vel.X = res.VX / dt
	p.Vel.Y = res.VY / dt
	p.Grounded = res.Grounded
}

func (p *Player) updateAttack(dt float64, pressed, held bool) {
	if !pressed && !held {
		p.attackRequested = false
		p.nextAttack = AttackIdle
	}

	if p.attackTimer > 0 {
		p.attackTimer -= dt
		if p.attackTimer <= 0 {
			p.attackTimer = 0
			p.attack = AttackIdle
		}
	}
	if p.attackCooldown > 0 {
		p.attackCooldown = max(0, p.attackCooldown-dt)
	}
	if p.visualTimer > 0 {
		p.visualTimer = max(0, p.visualTimer-dt)
	}

	if pressed {
		p.attackRequested = true
	}
	if !p.attackRequested || !p.canStartAttack() {
		return
	}

	kind := p.nextAttack
	if kind == AttackIdle {
		if p.Grounded {
			kind = AttackMelee
		} else {
			kind = AttackHoming
		}
	}
	p.startAttack(kind)
}

func (p *Player) canStartAttack() bool {
	return p.life == LifeAlive && p.attack == AttackIdle && p.attackCooldown <= 0
}

func (p *Player) startAttack(kind AttackState) {
	p.attack = kind
	p.visualAttack = kind
	p.attackSequence++
	p.attackRequested = false
	p.nextAttack = AttackIdle

	switch kind {
	case AttackHoming:
		p.attackTimer = homingActiveDuration
		p.attackCooldown = homingCooldown
		p.visualTimer = homingVisualDuration
	default:
		p.attackTimer = attackActiveDuration
		p.attackCooldown = attackCooldown
		p.visualTimer = attackVisualDuration
	}
}

func (p *Player) updateInvincibility(dt float64) {
	if p.homingTimer > 0 {
		p.homingTimer = max(0, p.homingTimer-dt)
	}
	if p.invincibleTimer <= 0 {
		return
	}
	p.invincibleTimer = max(0, p.invincibleTimer-dt)
	if p.invincibleTimer == 0 {
		p.flickering = false
		p.flickerHidden = false
		return
	}
	if !p.flickering {
		return
	}
	p.flickerTimer -= dt
	for p.flickerTimer <= 0 {
		p.flickerTimer += FlickerInterval
		p.flickerHidden = !p.flickerHidden
	}
}

func (p *Player) updateLife(dt float64) {
	switch p.life {
	case LifeHurt:
		p.hurtTimer -= dt
		if p.hurtTimer <= 0 {
			p.hurtTimer = 0
			p.life = LifeAlive
		}
	case LifeDead:
		if p.deathAnimDone && p.deathHoldTimer > 0 {
			p.deathHoldTimer = max(0, p.deathHoldTimer-dt)
		}
	}
}

// AdvanceAttack ticks only the attack cooldown and buffers the attack
// input without starting an attack. It runs during hit-stop while the rest
// of the simulation is frozen.
func (p *Player) AdvanceAttack(dt float64, in Input) {
	locked := p.IsControlLocked()
	pressed := in.AttackPressed && !locked
	held := in.AttackHeld && !locked
	if !pressed && !held {
		p.attackRequested = false
		p.nextAttack = AttackIdle
	}
	if p.attackCooldown > 0 {
		p.attackCooldown = max(0, p.attackCooldown-physics.SafeDelta(dt))
	}
	if pressed {
		p.attackRequested = true
	}
}

// SetNextAttackType sets the type used by the next attack that starts. The
// request is dropped when attack is released.
func (p *Player) SetNextAttackType(kind AttackState) {
	p.nextAttack = kind
}

// TriggerHomingAttack starts a homing attack if none is active and the
// cooldown allows it. It reports whether a homing attack is now active.
func (p *Player) TriggerHomingAttack() bool {
	if p.canStartAttack() {
		p.startAttack(AttackHoming)
	}
	return p.attack == AttackHoming
}

// AttackState returns the gameplay attack state.
func (p *Player) AttackState() AttackState { return p.attack }

// AttackSequence returns the id of the most recent attack.
func (p *Player) AttackSequence() int { return p.attackSequence }

// IsAttackActive reports whether an attack can currently hit.
func (p *Player) IsAttackActive() bool { return p.attack != AttackIdle }

// IsHomingAttackActive reports whether a homing attack is in its active window.
func (p *Player) IsHomingAttackActive() bool { return p.attack == AttackHoming }

// AttackVisual returns the attack type still being displayed, which may
// outlive the active window.
func (p *Player) AttackVisual() (AttackState, bool) {
	if p.visualTimer <= 0 {
		return AttackIdle, false
	}
	return p.visualAttack, true
}

// TriggerInvincibility grants hit invincibility for duration seconds.
func (p *Player) TriggerInvincibility(duration float64, flicker bool) {
	if duration <= 0 {
		return
	}
	p.invincibleTimer = max(p.invincibleTimer, duration)
	p.flickering = flicker
	p.flickerTimer = FlickerInterval
	p.flickerHidden = false
}

// TriggerHomingInvincibility grants the short non-flickering window used by
// the homing maneuver.
func (p *Player) TriggerHomingInvincibility() {
	p.homingTimer = HomingInvincibilityDuration
}

// IsInvincible reports whether either invincibility window is active.
func (p *Player) IsInvincible() bool {
	return p.invincibleTimer > 0 || p.homingTimer > 0
}

// IsVisible reports whether the flicker currently shows the player.
func (p *Player) IsVisible() bool {
	return !p.flickerHidden
}

// Health returns the current health.
func (p *Player) Health() int { return p.health }

// MaxHealth returns the maximum health.
func (p *Player) MaxHealth() int { return p.maxHealth }

// LifeState returns the current life state.
func (p *Player) LifeState() LifeState { return p.life }

// IsDead reports whether the player has died.
func (p *Player) IsDead() bool { return p.life == LifeDead }

// IsControlLocked reports whether input is ignored.
func (p *Player) IsControlLocked() bool { return p.life != LifeAlive }

// ApplyDamage removes health, clamped to [0, max]. Reaching zero starts the
// death sequence. It returns true when the damage killed the player.
func (p *Player) ApplyDamage(amount int) bool {
	if p.life == LifeDead || amount <= 0 {
		return false
	}
	p.health = max(0, p.health-amount)
	if p.health == 0 {
		p.die()
		return true
	}
	return false
}

// Kill drops health to zero and starts the death sequence.
func (p *Player) Kill() {
	if p.life == LifeDead {
		return
	}
	p.health = 0
	p.die()
}

// TriggerHurt locks control for duration seconds.
func (p *Player) TriggerHurt(duration float64) {
	if p.life == LifeDead || duration <= 0 {
		return
	}
	p.life = LifeHurt
	p.hurtTimer = duration
}

func (p *Player) die() {
	p.life = LifeDead
	p.Vel = physics.Vec{}
	p.hurtTimer = 0
	p.attack = AttackIdle
	p.attackTimer = 0
	p.attackRequested = false
	p.nextAttack = AttackIdle
	p.deathAnimDone = false
	p.deathHoldTimer = 0
}

// FinishDeathAnimation is called by the presentation when the death
// animation ends. The death hold starts from here.
func (p *Player) FinishDeathAnimation() {
	if p.life != LifeDead || p.deathAnimDone {
		return
	}
	p.deathAnimDone = true
	p.deathHoldTimer = DeathHoldDuration
}

// IsDeathSequenceComplete reports whether the session may restart.
func (p *Player) IsDeathSequenceComplete() bool {
	return p.life == LifeDead && p.deathAnimDone && p.deathHoldTimer <= 0
}

// Knockback replaces the velocity.
func (p *Player) Knockback(v physics.Vec) {
	if p.life == LifeDead {
		return
	}
	p.Vel = v
	if v.Y < 0 {
		p.Grounded = false
	}
}

// Bounce launches the player upward at speed.
func (p *Player) Bounce(speed float64) {
	if p.life == LifeDead {
		return
	}
	p.Vel.Y = -speed
	p.Grounded = false
}

// JumpSpeed returns the scaled jump speed.
func (p *Player) JumpSpeed() float64 { return p.jumpSpeed }

// HomingBounceSpeed is the upward speed after a homing attack.
func (p *Player) HomingBounceSpeed() float64 { return p.jumpSpeed * 1.05 }

// Face sets the facing direction from the sign of dir.
func (p *Player) Face(dir float64) {
	p.Facing = sign(dir)
}

// ClampToBounds keeps the player inside bounds on the enabled axes and
// zeroes velocity on a clamped axis.
func (p *Player) ClampToBounds(bounds physics.Rect, clampX, clampY bool) {
	if clampX {
		maxX := bounds.Right() - p.W
		if p.Pos.X < bounds.X {
			p.Pos.X = bounds.X
			p.Vel.X = 0
		} else if p.Pos.X > maxX {
			p.Pos.X = maxX
			p.Vel.X = 0
		}
	}
	if clampY {
		maxY := bounds.Bottom() - p.H
		if p.Pos.Y < bounds.Y {
			p.Pos.Y = bounds.Y
			p.Vel.Y = 0
		} else if p.Pos.Y > maxY {
			p.Pos.Y = maxY
			p.Vel.Y = 0
		}
	}
}
