// Package kinematic moves axis-aligned actors through static geometry with
// batches of parallel rays, one axis at a time.
package kinematic

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/featherfall/physics"
)

// Bounds describes a collider: Center is world space, Offset is the collider
// centre relative to the actor position.
type Bounds struct {
	Center  cp.Vector
	Extents cp.Vector
	Offset  cp.Vector
}

// BoundsProvider is read once when a Body is created.
type BoundsProvider interface {
	Bounds() Bounds
}

// StaticBounds is a fixed BoundsProvider.
type StaticBounds Bounds

func (s StaticBounds) Bounds() Bounds { return Bounds(s) }

// RaycastResult is one ray of a batch.
type RaycastResult struct {
	Hit      bool
	Distance float64
	Point    cp.Vector
	Normal   cp.Vector
}

// Body is the kinematic state of one actor.
type Body struct {
	Position cp.Vector
	Velocity cp.Vector

	cfg    Config
	caster physics.RayCaster
	size   cp.Vector
	offset cp.Vector

	previouslyGrounded bool
	// dt of the current Step, read by the upward slope correction.
	dt float64
}

// NewBody caches the collider size and offset from bounds and places the
// actor at Center minus Offset.
func NewBody(cfg Config, caster physics.RayCaster, bounds BoundsProvider) (*Body, error) {
	if caster == nil {
		return nil, configErr("caster", "no ray caster")
	}
	if bounds == nil {
		return nil, configErr("bounds", "no bounds provider")
	}
	b := bounds.Bounds()
	size := b.Extents.Mult(2)
	if err := cfg.Validate(size); err != nil {
		return nil, err
	}
	return &Body{
		Position: b.Center.Sub(b.Offset),
		cfg:      cfg,
		caster:   caster,
		size:     size,
		offset:   b.Offset,
	}, nil
}

func (b *Body) Config() Config { return b.cfg }

func (b *Body) Size() cp.Vector { return b.size }

// BB is the collider box in world space.
func (b *Body) BB() cp.BB {
	c := b.Position.Add(b.offset)
	return cp.NewBBForExtents(c, b.size.X/2, b.size.Y/2)
}

// PreviouslyGrounded is the grounded state recorded at the end of the last Step.
func (b *Body) PreviouslyGrounded() bool { return b.previouslyGrounded }

// Step runs one fixed tick of movement and returns the displacement.
func (b *Body) Step(dt float64) cp.Vector {
	start := b.Position
	b.dt = dt
	b.MoveHorizontal(b.Velocity.X * dt)
	b.MoveVertical(b.Velocity.Y * dt)
	b.DownwardSlope()
	b.previouslyGrounded = b.Grounded()
	return b.Position.Sub(start)
}

func (b *Body) corner(right, top bool) cp.Vector {
	half := b.size.Mult(0.5)
	c := cp.Vector{X: -half.X, Y: -half.Y}
	if right {
		c.X = half.X
	}
	if top {
		c.Y = half.Y
	}
	return b.Position.Add(b.offset).Add(c)
}

// CastHorizontal fires the horizontal fan from the leading edge. A zero
// distance issues no rays and returns an all-miss batch.
func (b *Body) CastHorizontal(distance float64) []RaycastResult {
	out := make([]RaycastResult, b.cfg.HorizontalRays)
	if distance == 0 {
		return out
	}
	dir := 1.0
	if distance < 0 {
		dir = -1
	}
	origin := b.corner(dir > 0, false)
	origin.X -= dir * b.cfg.Skin
	origin.Y += b.cfg.Tolerance / 2
	step := (b.size.Y - b.cfg.Tolerance) / float64(b.cfg.HorizontalRays-1)
	length := abs(distance) + b.cfg.Skin

	for i := range out {
		out[i] = b.cast(origin, cp.Vector{X: dir}, length)
		origin.Y += step
	}
	return out
}

// CastVertical fires the vertical fan from the top or bottom edge.
func (b *Body) CastVertical(distance float64) []RaycastResult {
	out := make([]RaycastResult, b.cfg.VerticalRays)
	if distance == 0 {
		return out
	}
	dir := 1.0
	if distance < 0 {
		dir = -1
	}
	origin := b.corner(false, dir > 0)
	origin.X += b.cfg.Tolerance / 2
	origin.Y -= dir * b.cfg.Skin
	step := (b.size.X - b.cfg.Tolerance) / float64(b.cfg.VerticalRays-1)
	length := abs(distance) + b.cfg.Skin

	for i := range out {
		out[i] = b.cast(origin, cp.Vector{Y: dir}, length)
		origin.X += step
	}
	return out
}

func (b *Body) cast(origin, dir cp.Vector, length float64) RaycastResult {
	hit, ok := b.caster.CastRay(origin, dir, length, b.cfg.Mask)
	if !ok {
		return RaycastResult{}
	}
	return RaycastResult{Hit: true, Distance: hit.Distance, Point: hit.Point, Normal: hit.Normal}
}

// Nearest returns the index of the shortest hit, or -1 when every ray missed.
// Only a strictly shorter distance replaces the current best.
func Nearest(results []RaycastResult) int {
	best := -1
	for i, r := range results {
		if !r.Hit {
			continue
		}
		if best < 0 || r.Distance < results[best].Distance {
			best = i
		}
	}
	return best
}

// MoveHorizontal moves by distance along x, stopping flush against the
// nearest obstacle. A foot ray hit first tries to climb it as a slope.
func (b *Body) MoveHorizontal(distance float64) {
	results := b.CastHorizontal(distance)
	nearest := Nearest(results)
	if nearest == 0 {
		b.UpwardSlope(results[0])
		results = b.CastHorizontal(distance)
		nearest = Nearest(results)
	}
	if nearest < 0 {
		b.Position.X += distance
		return
	}
	dir := sign(distance)
	b.Position.X = results[nearest].Point.X - dir*b.size.X/2 - b.offset.X
}

// MoveVertical moves by distance along y, stopping flush against the nearest
// obstacle.
func (b *Body) MoveVertical(distance float64) {
	results := b.CastVertical(distance)
	nearest := Nearest(results)
	if nearest < 0 {
		b.Position.Y += distance
		return
	}
	dir := sign(distance)
	b.Position.Y = results[nearest].Point.Y - dir*b.size.Y/2 - b.offset.Y
}

// Grounded reports any hit within TestingDistance below. Only meaningful
// while not ascending.
func (b *Body) Grounded() bool {
	return anyHit(b.CastVertical(-b.cfg.TestingDistance))
}

// HitsCeiling reports any hit within TestingDistance above. Only meaningful
// while not descending.
func (b *Body) HitsCeiling() bool {
	return anyHit(b.CastVertical(b.cfg.TestingDistance))
}

func anyHit(results []RaycastResult) bool {
	for _, r := range results {
		if r.Hit {
			return true
		}
	}
	return false
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

func sign(v float64) float64 {
	if v > 0 {
		return 1
	}
	return -1
}
