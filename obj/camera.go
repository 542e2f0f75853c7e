package obj

import (
	"math"

	"github.com/jakecoffman/cp"
)

// TrackingMode picks which tick moves the camera.
type TrackingMode int

const (
	TrackFixed TrackingMode = iota
	TrackFrame
)

func ParseTrackingMode(s string) TrackingMode {
	if s == "frame" {
		return TrackFrame
	}
	return TrackFixed
}

// Target is anything the camera can follow.
type Target interface {
	Position() cp.Vector
}

// TargetFunc adapts a function to Target.
type TargetFunc func() cp.Vector

func (f TargetFunc) Position() cp.Vector { return f() }

// Camera centres the view on a target. World space is Y-up; ViewTopLeft and
// WorldToScreen convert to Y-down screen pixels.
type Camera struct {
	Pos  cp.Vector
	Mode TrackingMode

	target Target
	bounds *CameraBounds

	screenW int
	screenH int
	zoom    float64
	// smooth in (0,1] eases toward the target; 0 snaps.
	smooth float64
}

// NewCamera follows target; a nil target is a construction error.
func NewCamera(target Target, screenW, screenH int, zoom float64) (*Camera, error) {
	if target == nil {
		return nil, ErrNoTarget
	}
	if zoom <= 0 {
		zoom = 1
	}
	c := &Camera{target: target, screenW: screenW, screenH: screenH, zoom: zoom}
	c.SnapTo(target.Position())
	return c, nil
}

func (c *Camera) SetTarget(t Target) error {
	if t == nil {
		return ErrNoTarget
	}
	c.target = t
	return nil
}

// SetBounds limits the view to b; nil removes the limit.
func (c *Camera) SetBounds(b *CameraBounds) {
	c.bounds = b
	c.SnapTo(c.Pos)
}

func (c *Camera) Bounds() *CameraBounds { return c.bounds }

func (c *Camera) SetSmooth(f float64) {
	c.smooth = math.Max(0, math.Min(1, f))
}

func (c *Camera) Zoom() float64 { return c.zoom }

// HalfView is half the visible area in world units.
func (c *Camera) HalfView() cp.Vector {
	return cp.Vector{X: float64(c.screenW) / c.zoom / 2, Y: float64(c.screenH) / c.zoom / 2}
}

// FixedUpdate tracks the target when the camera runs on the fixed tick.
func (c *Camera) FixedUpdate() {
	if c.Mode == TrackFixed {
		c.track()
	}
}

// Update tracks the target when the camera runs on the frame tick.
func (c *Camera) Update() {
	if c.Mode == TrackFrame {
		c.track()
	}
}

func (c *Camera) track() {
	want := c.target.Position()
	if c.smooth > 0 {
		want = c.Pos.Add(want.Sub(c.Pos).Mult(c.smooth))
	}
	c.SnapTo(want)
}

// SnapTo moves the view centre to p, rounded to whole screen pixels and
// clamped to the bounds.
func (c *Camera) SnapTo(p cp.Vector) {
	p.X = math.Round(p.X*c.zoom) / c.zoom
	p.Y = math.Round(p.Y*c.zoom) / c.zoom
	if c.bounds != nil {
		p = c.bounds.Clamp(p, c.HalfView())
	}
	c.Pos = p
}

// WorldToScreen maps a world point to screen pixels.
func (c *Camera) WorldToScreen(p cp.Vector) (float64, float64) {
	half := c.HalfView()
	x := (p.X - (c.Pos.X - half.X)) * c.zoom
	y := ((c.Pos.Y + half.Y) - p.Y) * c.zoom
	return x, y
}
