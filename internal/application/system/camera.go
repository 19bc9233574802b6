package system

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
	"github.com/younwookim/pogo/internal/domain/physics"
)

const (
	cameraFollowRate    = 8.0  // per second
	cameraEaseDuration  = 0.2  // seconds
	cameraSnapThreshold = 0.35 // fraction of the view width
)

// Camera follows a target point inside the world bounds. Small movements
// use an exponential follow; jumps larger than a fraction of the view ease
// in over a short tween.
type Camera struct {
	Pos    physics.Vec // top-left of the view
	ViewW  float64
	ViewH  float64
	Bounds physics.Rect

	tweenX *gween.Tween
	tweenY *gween.Tween
}

// NewCamera creates a camera with the given view size.
func NewCamera(viewW, viewH float64, bounds physics.Rect) *Camera {
	return &Camera{ViewW: viewW, ViewH: viewH, Bounds: bounds}
}

// Snap centers the view on target immediately.
func (c *Camera) Snap(target physics.Vec) {
	c.tweenX, c.tweenY = nil, nil
	c.Pos = c.desired(target)
}

// Update moves the view toward target.
func (c *Camera) Update(dt float64, target physics.Vec) {
	dt = physics.SafeDelta(dt)
	want := c.desired(target)

	if c.tweenX == nil && want.Sub(c.Pos).Len() > c.ViewW*cameraSnapThreshold {
		c.tweenX = gween.New(float32(c.Pos.X), float32(want.X), cameraEaseDuration, ease.OutQuad)
		c.tweenY = gween.New(float32(c.Pos.Y), float32(want.Y), cameraEaseDuration, ease.OutQuad)
	}

	if c.tweenX != nil {
		x, doneX := c.tweenX.Update(float32(dt))
		y, doneY := c.tweenY.Update(float32(dt))
		c.Pos = physics.Vec{X: float64(x), Y: float64(y)}
		if doneX && doneY {
			c.tweenX, c.tweenY = nil, nil
			c.Pos = want
		}
		return
	}

	k := min(1, dt*cameraFollowRate)
	c.Pos = c.Pos.Add(want.Sub(c.Pos).Scale(k))
}

// IsEasing reports whether a tween is running.
func (c *Camera) IsEasing() bool {
	return c.tweenX != nil
}

func (c *Camera) desired(target physics.Vec) physics.Vec {
	return physics.Vec{
		X: clampAxis(target.X-c.ViewW/2, c.Bounds.X, c.Bounds.Right()-c.ViewW),
		Y: clampAxis(target.Y-c.ViewH/2, c.Bounds.Y, c.Bounds.Bottom()-c.ViewH),
	}
}

// clampAxis clamps v to [lo, hi], centering when the range is inverted.
func clampAxis(v, lo, hi float64) float64 {
	if hi < lo {
		return (lo + hi) / 2
	}
	return max(lo, min(v, hi))
}
