package system

import (
	"math"

	"github.com/younwookim/pogo/internal/domain/entity"
	"github.com/younwookim/pogo/internal/domain/physics"
)

// CoinPickupRadius is the pickup radius in level units.
const CoinPickupRadius = 16.0

// Pickups tracks which coins of a level have been collected.
type Pickups struct {
	coins     []entity.Coin
	radius    float64
	collected map[string]struct{}

	// Event callbacks
	OnCollect func(count, total int)
}

// NewPickups creates a tracker for coins using a world-space pickup radius.
func NewPickups(coins []entity.Coin, radius float64) *Pickups {
	return &Pickups{
		coins:     coins,
		radius:    radius,
		collected: make(map[string]struct{}, len(coins)),
	}
}

// Update collects every coin whose pickup circle overlaps rect. It returns
// the number of coins collected by this call.
func (p *Pickups) Update(rect physics.Rect) int {
	n := 0
	for _, c := range p.coins {
		if p.IsCollected(c.ID) {
			continue
		}
		if physics.OverlapsCircle(rect, c.Pos, p.radius) {
			p.collect(c.ID)
			n++
		}
	}
	return n
}

// CollectAlongSegment collects coins within halfThickness+radius of the
// segment start→end. It covers coins passed over by an instant reposition.
func (p *Pickups) CollectAlongSegment(start, end physics.Vec, halfThickness float64) int {
	d := end.Sub(start)
	length := d.Len()
	if length <= 0.001 {
		return 0
	}

	dir := d.Scale(1 / length)
	perp := physics.Vec{X: -dir.Y, Y: dir.X}
	thickness := halfThickness + p.radius

	n := 0
	for _, c := range p.coins {
		if p.IsCollected(c.ID) {
			continue
		}
		v := c.Pos.Sub(start)
		along := v.X*dir.X + v.Y*dir.Y
		if along < -p.radius || along > length+p.radius {
			continue
		}
		across := v.X*perp.X + v.Y*perp.Y
		if math.Abs(across) > thickness {
			continue
		}
		p.collect(c.ID)
		n++
	}
	return n
}

func (p *Pickups) collect(id string) {
	p.collected[id] = struct{}{}
	if p.OnCollect != nil {
		p.OnCollect(len(p.collected), len(p.coins))
	}
}

// IsCollected reports whether the coin with id has been collected.
func (p *Pickups) IsCollected(id string) bool {
	_, ok := p.collected[id]
	return ok
}

// Count returns the number of collected coins.
func (p *Pickups) Count() int { return len(p.collected) }

// Total returns the number of coins in the level.
func (p *Pickups) Total() int { return len(p.coins) }

// AllCollected reports whether every coin has been collected.
func (p *Pickups) AllCollected() bool {
	return len(p.collected) >= len(p.coins)
}
