package obj

import "github.com/jakecoffman/cp"

// CameraBounds is the area the view must stay inside.
type CameraBounds struct {
	MinX, MaxX float64
	MinY, MaxY float64
}

// NewCameraBounds orders each range so Min <= Max.
func NewCameraBounds(minX, maxX, minY, maxY float64) *CameraBounds {
	b := &CameraBounds{MinX: minX, MaxX: maxX, MinY: minY, MaxY: maxY}
	b.Normalize()
	return b
}

// Normalize swaps reversed ranges.
func (b *CameraBounds) Normalize() {
	if b.MinX > b.MaxX {
		b.MinX, b.MaxX = b.MaxX, b.MinX
	}
	if b.MinY > b.MaxY {
		b.MinY, b.MaxY = b.MaxY, b.MinY
	}
}

// Clamp keeps a view of the given half extents centred at p inside the
// bounds. An axis narrower than the view is centred.
func (b *CameraBounds) Clamp(p, half cp.Vector) cp.Vector {
	p.X = clampAxis(p.X, b.MinX+half.X, b.MaxX-half.X)
	p.Y = clampAxis(p.Y, b.MinY+half.Y, b.MaxY-half.Y)
	return p
}

func clampAxis(v, lo, hi float64) float64 {
	if hi < lo {
		return (lo + hi) / 2
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// RoughBounds is the union of boxes, or the zero bounds when there are none.
func RoughBounds(boxes []cp.BB) *CameraBounds {
	b := &CameraBounds{}
	if len(boxes) == 0 {
		return b
	}
	b.MinX, b.MaxX = boxes[0].L, boxes[0].R
	b.MinY, b.MaxY = boxes[0].B, boxes[0].T
	for _, bb := range boxes[1:] {
		b.MinX = min(b.MinX, bb.L)
		b.MaxX = max(b.MaxX, bb.R)
		b.MinY = min(b.MinY, bb.B)
		b.MaxY = max(b.MaxY, bb.T)
	}
	return b
}
