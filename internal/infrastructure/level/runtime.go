package level

import (
	"fmt"
	"math"

	"github.com/younwookim/pogo/internal/domain/entity"
	"github.com/younwookim/pogo/internal/domain/physics"
	"github.com/younwookim/pogo/internal/infrastructure/config"
)

// Runtime maps level units to world units. Scaling is anchored at the
// lowest solid bottom so the floor line stays put.
type Runtime struct {
	Scale   float64
	OffsetY float64
	Padding float64
}

// NewRuntime builds the transform for d at the given world scale
func NewRuntime(d *Data, scale, padding float64) Runtime {
	if scale <= 0 {
		scale = 1
	}
	baseFloorY := 0.0
	for _, s := range d.Solids {
		baseFloorY = math.Max(baseFloorY, s.Y+s.H)
	}
	return Runtime{
		Scale:   scale,
		OffsetY: baseFloorY * (scale - 1),
		Padding: padding,
	}
}

// Point maps a level point into world space
func (rt Runtime) Point(x, y float64) physics.Vec {
	return physics.Vec{X: x * rt.Scale, Y: y*rt.Scale - rt.OffsetY}
}

// Rect maps a level rect into world space
func (rt Runtime) Rect(r RectData) physics.Rect {
	p := rt.Point(r.X, r.Y)
	return physics.Rect{X: p.X, Y: p.Y, W: r.W * rt.Scale, H: r.H * rt.Scale}
}

// Build converts d into a simulation level. Enemy kinds resolve through
// catalog; per-entry fields override the catalog.
func (rt Runtime) Build(d *Data, catalog *config.EnemyCatalog) (*entity.Level, error) {
	if catalog == nil {
		catalog = config.DefaultEnemyCatalog()
	}

	lvl := &entity.Level{
		ID:      d.LevelID,
		Name:    d.Name,
		Scale:   rt.Scale,
		Solids:  make([]physics.Rect, len(d.Solids)),
		Spawn:   rt.Point(d.Spawn.X, d.Spawn.Y),
		Coins:   make([]entity.Coin, len(d.Coins)),
		Enemies: make([]entity.EnemySpawn, 0, len(d.Enemies)),
	}
	for i, s := range d.Solids {
		lvl.Solids[i] = rt.Rect(s)
	}
	if d.Goal != nil {
		goal := rt.Rect(*d.Goal)
		lvl.Goal = &goal
	}
	for i, c := range d.Coins {
		lvl.Coins[i] = entity.Coin{ID: c.ID, Pos: rt.Point(c.X, c.Y)}
	}
	for i, e := range d.Enemies {
		kind, err := catalog.Lookup(e.Kind)
		if err != nil {
			return nil, fmt.Errorf("failed to build enemy %d of %s: %w", i, d.LevelID, err)
		}
		pos := rt.Point(e.X, e.Y)
		lvl.Enemies = append(lvl.Enemies, override(kind.Spawn(e.Kind, pos.X, pos.Y), e))
	}
	lvl.Bounds = rt.bounds(d, lvl.Solids)
	return lvl, nil
}

func override(spawn entity.EnemySpawn, e EnemyData) entity.EnemySpawn {
	if e.Behavior != "" {
		spawn.Behavior = entity.ParseBehavior(e.Behavior)
	}
	if e.PatrolRange > 0 {
		spawn.PatrolRange = e.PatrolRange
	}
	if e.PatrolSpeed > 0 {
		spawn.PatrolSpeed = e.PatrolSpeed
	}
	if e.IdleDuration > 0 {
		spawn.IdleDuration = e.IdleDuration
	}
	if e.Gravity != nil {
		spawn.GravityEnabled = *e.Gravity
	}
	if e.Health > 0 {
		spawn.Health = e.Health
	}
	return spawn
}

// bounds uses the authored world rect when present, otherwise the extent
// of the solids.
func (rt Runtime) bounds(d *Data, solids []physics.Rect) physics.Rect {
	var b physics.Rect
	if d.World != nil && d.World.W > 0 && d.World.H > 0 {
		b = rt.Rect(*d.World)
	} else {
		minX, minY := math.Inf(1), math.Inf(1)
		maxX, maxY := math.Inf(-1), math.Inf(-1)
		for _, s := range solids {
			minX = math.Min(minX, s.X)
			minY = math.Min(minY, s.Y)
			maxX = math.Max(maxX, s.Right())
			maxY = math.Max(maxY, s.Bottom())
		}
		b = physics.Rect{X: minX, Y: minY, W: maxX - minX, H: maxY - minY}
	}

	pad := rt.Padding * rt.Scale
	return physics.Rect{X: b.X - pad, Y: b.Y - pad, W: b.W + 2*pad, H: b.H + 2*pad}
}
