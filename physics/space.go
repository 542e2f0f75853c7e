// Package physics is the static geometry and query layer: chipmunk shapes for
// the level and a ray caster over them. World space is Y-up.
package physics

import (
	"github.com/jakecoffman/cp"
)

// Hit is a successful ray cast.
type Hit struct {
	// Distance from the ray origin to Point.
	Distance float64
	Point    cp.Vector
	Normal   cp.Vector
	Layer    Layer
}

// RayCaster is the geometry query collaborator used by actors.
type RayCaster interface {
	CastRay(origin, dir cp.Vector, maxDistance float64, mask Layer) (Hit, bool)
}

type Space struct {
	space     *cp.Space
	platforms []*Platform
	bounds    cp.BB
}

func NewSpace() *Space {
	return &Space{space: cp.NewSpace()}
}

// AddSolid adds a static box in the given categories.
func (s *Space) AddSolid(bb cp.BB, categories Layer) *cp.Shape {
	shape := cp.NewBox2(s.space.StaticBody, bb, 0)
	return s.add(shape, categories)
}

// AddTriangle adds a static triangle; vertices must wind counter-clockwise.
func (s *Space) AddTriangle(a, b, c cp.Vector, categories Layer) *cp.Shape {
	shape := cp.NewPolyShapeRaw(s.space.StaticBody, 3, []cp.Vector{a, b, c}, 0)
	return s.add(shape, categories)
}

// AddOneWay adds a platform that starts solid.
func (s *Space) AddOneWay(bb cp.BB) *Platform {
	shape := cp.NewBox2(s.space.StaticBody, bb, 0)
	p := &Platform{shape: shape, bb: bb, solid: true}
	s.add(shape, LayerOneWay)
	s.platforms = append(s.platforms, p)
	return p
}

// AddBounds walls the rectangle [0,w]x[0,h] with segments.
func (s *Space) AddBounds(w, h float64) {
	s.bounds = cp.BB{L: 0, B: 0, R: w, T: h}
	corners := []cp.Vector{{X: 0, Y: 0}, {X: w, Y: 0}, {X: w, Y: h}, {X: 0, Y: h}}
	for i := range corners {
		a, b := corners[i], corners[(i+1)%len(corners)]
		s.add(cp.NewSegment(s.space.StaticBody, a, b, 1), LayerEnvironment)
	}
}

func (s *Space) add(shape *cp.Shape, categories Layer) *cp.Shape {
	shape.SetFilter(shapeFilter(categories))
	shape.UserData = categories
	s.space.AddShape(shape)
	return shape
}

func (s *Space) Platforms() []*Platform {
	return s.platforms
}

// Bounds is the walled level rectangle, zero when AddBounds was not called.
func (s *Space) Bounds() cp.BB {
	return s.bounds
}

// EachShape visits every static shape with its categories.
func (s *Space) EachShape(fn func(shape *cp.Shape, categories Layer)) {
	s.space.EachShape(func(shape *cp.Shape) {
		l, _ := shape.UserData.(Layer)
		fn(shape, l)
	})
}

// DebugDraw hands every shape to a chipmunk drawer.
func (s *Space) DebugDraw(d cp.Drawer) {
	cp.DrawSpace(s.space, d)
}

// CastRay returns the first shape in mask along dir within maxDistance.
func (s *Space) CastRay(origin, dir cp.Vector, maxDistance float64, mask Layer) (Hit, bool) {
	if maxDistance <= 0 || mask == LayerNone {
		return Hit{}, false
	}
	l := dir.Length()
	if l == 0 {
		return Hit{}, false
	}
	end := origin.Add(dir.Mult(maxDistance / l))
	info := s.space.SegmentQueryFirst(origin, end, 0, queryFilter(mask))
	if info.Shape == nil {
		return Hit{}, false
	}
	layer, _ := info.Shape.UserData.(Layer)
	return Hit{
		Distance: info.Alpha * maxDistance,
		Point:    info.Point,
		Normal:   info.Normal,
		Layer:    layer,
	}, true
}

// LineOfSight reports whether nothing in mask lies between a and b.
func (s *Space) LineOfSight(a, b cp.Vector, mask Layer) bool {
	d := b.Sub(a)
	dist := d.Length()
	if dist == 0 {
		return true
	}
	_, hit := s.CastRay(a, d, dist, mask)
	return !hit
}

// Platform is a one-way box whose category flips between LayerOneWay and
// LayerPassThrough.
type Platform struct {
	shape *cp.Shape
	bb    cp.BB
	solid bool
}

func (p *Platform) BB() cp.BB { return p.bb }

// Top is the walkable surface height.
func (p *Platform) Top() float64 { return p.bb.T }

func (p *Platform) Solid() bool { return p.solid }

func (p *Platform) SetSolid(solid bool) {
	if p.solid == solid {
		return
	}
	p.solid = solid
	l := LayerPassThrough
	if solid {
		l = LayerOneWay
	}
	p.shape.SetFilter(shapeFilter(l))
	p.shape.UserData = l
}
