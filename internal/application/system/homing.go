package system

import (
	"github.com/younwookim/pogo/internal/domain/entity"
	"github.com/younwookim/pogo/internal/domain/physics"
)

// Homing tuning in level units.
const (
	HomingRadius = 220.0

	homingLateralOverlap = 0.25 // fraction of player width overlapping the target
	homingNudgeRetries   = 10
)

// FindHomingTarget returns the nearest live enemy whose center lies within
// radius of the player's center, or nil.
func FindHomingTarget(p *entity.Player, enemies []*entity.Enemy, radius float64) *entity.Enemy {
	origin := p.Center()
	var best *entity.Enemy
	bestDist := radius * radius
	for _, e := range enemies {
		if e == nil || e.IsDead() {
			continue
		}
		d := e.Center().Sub(origin)
		dist := d.X*d.X + d.Y*d.Y
		if dist <= bestDist {
			best = e
			bestDist = dist
		}
	}
	return best
}

// ExecuteHoming snaps the player beside target, bounces it upward and grants
// homing invincibility. If no overlap-free spot is found within the retry
// budget the player keeps its position. It returns the position the player
// started from.
func ExecuteHoming(p *entity.Player, target *entity.Enemy, solids []physics.Rect) physics.Vec {
	start := p.Pos
	if p.IsDead() || target == nil {
		return start
	}

	dir := target.Center().X - p.Center().X
	p.Face(dir)

	tr := target.Rect()
	overlap := p.W * homingLateralOverlap
	x := tr.X - p.W + overlap
	if p.Facing < 0 {
		x = tr.Right() - overlap
	}

	feet := tr.Bottom()
	if top, ok := physics.FloorBelow(tr.X, tr.Right(), tr.Bottom(), 0, solids); ok && top-tr.Bottom() <= p.H*0.5 {
		feet = top
	}

	box := physics.Rect{X: x, Y: feet - p.H, W: p.W, H: p.H}
	for i := 0; i < homingNudgeRetries; i++ {
		s, hit := firstOverlap(box, solids)
		if !hit {
			break
		}
		box.Y = s.Y - box.H
	}
	if !physics.OverlapsAny(box, solids) {
		p.Pos = physics.Vec{X: box.X, Y: box.Y}
	}

	p.Vel.X = 0
	p.Bounce(p.HomingBounceSpeed())
	p.TriggerHomingInvincibility()
	p.TriggerHomingAttack()
	return start
}

func firstOverlap(r physics.Rect, solids []physics.Rect) (physics.Rect, bool) {
	for _, s := range solids {
		if physics.Overlaps(r, s) {
			return s, true
		}
	}
	return physics.Rect{}, false
}
