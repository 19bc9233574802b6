package system

import (
	"github.com/younwookim/pogo/internal/domain/entity"
	"github.com/younwookim/pogo/internal/domain/physics"
)

// AttackProfile describes an attack hitbox relative to the attacker's
// center. Forward and Knockback.X are mirrored by facing.
type AttackProfile struct {
	Width     float64
	Height    float64
	Forward   float64
	Vertical  float64
	Damage    int
	Knockback physics.Vec
}

// ProfileFunc returns the profile for an attack type given the attacker's
// width and height.
type ProfileFunc func(kind entity.AttackState, w, h float64) AttackProfile

// DefaultProfile is the built-in profile table.
func DefaultProfile(kind entity.AttackState, w, h float64) AttackProfile {
	if kind == entity.AttackHoming {
		return AttackProfile{
			Width:     w * 0.9,
			Height:    h * 0.7,
			Forward:   0,
			Vertical:  -h * 0.05,
			Damage:    2,
			Knockback: physics.Vec{X: w * 1.2, Y: -h * 0.15},
		}
	}

	width := w * 1.1
	height := h * 0.5
	return AttackProfile{
		Width:     width,
		Height:    height,
		Forward:   w*0.6 + width*0.2,
		Vertical:  -h * 0.1,
		Damage:    1,
		Knockback: physics.Vec{X: w * 1.4, Y: -height * 0.15},
	}
}

// CombatHit is one successful hit produced during a tick.
type CombatHit struct {
	Enemy  *entity.Enemy
	Impact physics.Vec
	Attack entity.AttackState
	Damage int
}

// Combat resolves the player's attacks against enemies. Each attack
// sequence hits a given enemy at most once.
type Combat struct {
	Profile ProfileFunc

	lastSequence int
	struck       map[entity.EntityID]struct{}

	// Event callbacks
	OnHit func(hit CombatHit)
}

// NewCombat creates a combat resolver using DefaultProfile.
func NewCombat() *Combat {
	return &Combat{
		Profile: DefaultProfile,
		struck:  make(map[entity.EntityID]struct{}, 8),
	}
}

// Hitbox returns the world-space hitbox and profile of the player's current
// attack.
func (c *Combat) Hitbox(p *entity.Player) (physics.Rect, AttackProfile) {
	return c.box(p, p.AttackState())
}

// VisualBox returns the area covered by the attack still on display, which
// outlasts the active window. ok is false once the visual timer has run out.
func (c *Combat) VisualBox(p *entity.Player) (box physics.Rect, kind entity.AttackState, ok bool) {
	kind, ok = p.AttackVisual()
	if !ok {
		return physics.Rect{}, entity.AttackIdle, false
	}
	box, _ = c.box(p, kind)
	return box, kind, true
}

func (c *Combat) box(p *entity.Player, kind entity.AttackState) (physics.Rect, AttackProfile) {
	profile := c.profile()(kind, p.W, p.H)
	facing := float64(p.Facing)

	center := p.Center()
	cy := center.Y + profile.Vertical
	box := physics.Rect{
		X: center.X + facing*profile.Forward - profile.Width/2,
		Y: cy - profile.Height/2,
		W: profile.Width,
		H: profile.Height,
	}
	return box, profile
}

// Update resolves the player's active attack. homingTarget, when set, is the
// enemy the homing maneuver just snapped to; it counts as struck during a
// homing attack even if the rects no longer touch.
func (c *Combat) Update(p *entity.Player, enemies []*entity.Enemy, homingTarget *entity.Enemy) []CombatHit {
	if !p.IsAttackActive() {
		c.reset()
		return nil
	}

	if seq := p.AttackSequence(); seq != c.lastSequence {
		c.reset()
		c.lastSequence = seq
	}

	kind := p.AttackState()
	box, profile := c.Hitbox(p)
	impact := box.Center()
	knockback := physics.Vec{X: profile.Knockback.X * float64(p.Facing), Y: profile.Knockback.Y}

	var hits []CombatHit
	for _, e := range enemies {
		if e == nil || e.IsDead() {
			continue
		}
		if _, done := c.struck[e.ID]; done {
			continue
		}
		forced := kind == entity.AttackHoming && e == homingTarget
		if !forced && !physics.Overlaps(box, e.Rect()) {
			continue
		}
		if !e.ApplyHit(profile.Damage, knockback) {
			continue
		}

		c.struck[e.ID] = struct{}{}
		hit := CombatHit{Enemy: e, Impact: impact, Attack: kind, Damage: profile.Damage}
		hits = append(hits, hit)
		if c.OnHit != nil {
			c.OnHit(hit)
		}
	}
	return hits
}

func (c *Combat) reset() {
	clear(c.struck)
}

func (c *Combat) profile() ProfileFunc {
	if c.Profile == nil {
		return DefaultProfile
	}
	return c.Profile
}
