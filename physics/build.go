package physics

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/featherfall/levels"
)

// OneWayThickness is the platform height as a fraction of a tile.
const OneWayThickness = 0.25

// BuildLevel creates the static space for lvl. Contiguous solid tiles are
// merged greedily into boxes, slopes become triangles, one-way tiles become
// thin platforms along the top of their cell.
func BuildLevel(lvl *levels.Level) (*Space, error) {
	if err := lvl.Validate(); err != nil {
		return nil, err
	}

	s := NewSpace()
	w, h := lvl.Width(), lvl.Height()
	size := lvl.TileSize

	// Solid terrain blocks movement and sight.
	mergeRects(lvl, levels.TileSolid, func(x, y, rw, rh int) {
		s.AddSolid(cellBB(x, y, rw, rh, size), LayerEnvironment|LayerVisionBlocker)
	})
	mergeRects(lvl, levels.TileVisionBlocker, func(x, y, rw, rh int) {
		s.AddSolid(cellBB(x, y, rw, rh, size), LayerVisionBlocker)
	})

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			x0, y0 := float64(x)*size, float64(y)*size
			switch lvl.At(x, y) {
			case levels.TileSlopeUpRight:
				s.AddTriangle(
					cp.Vector{X: x0, Y: y0},
					cp.Vector{X: x0 + size, Y: y0},
					cp.Vector{X: x0 + size, Y: y0 + size},
					LayerEnvironment|LayerVisionBlocker,
				)
			case levels.TileSlopeUpLeft:
				s.AddTriangle(
					cp.Vector{X: x0, Y: y0},
					cp.Vector{X: x0 + size, Y: y0},
					cp.Vector{X: x0, Y: y0 + size},
					LayerEnvironment|LayerVisionBlocker,
				)
			case levels.TileOneWay:
				// Neighbouring one-way tiles on a row form one platform.
				if x > 0 && lvl.At(x-1, y) == levels.TileOneWay {
					continue
				}
				run := 1
				for x+run < w && lvl.At(x+run, y) == levels.TileOneWay {
					run++
				}
				s.AddOneWay(cp.BB{
					L: x0,
					B: y0 + size*(1-OneWayThickness),
					R: x0 + float64(run)*size,
					T: y0 + size,
				})
			}
		}
	}

	ww, wh := lvl.WorldSize()
	s.AddBounds(ww, wh)
	return s, nil
}

func cellBB(x, y, w, h int, size float64) cp.BB {
	return cp.BB{
		L: float64(x) * size,
		B: float64(y) * size,
		R: float64(x+w) * size,
		T: float64(y+h) * size,
	}
}

// mergeRects covers every tile of kind with as few rectangles as a greedy
// width-then-height expansion finds. Coordinates are in cells, y from the bottom.
func mergeRects(lvl *levels.Level, kind levels.Tile, emit func(x, y, w, h int)) {
	w, h := lvl.Width(), lvl.Height()
	done := make([]bool, w*h)
	open := func(x, y int) bool {
		return !done[y*w+x] && lvl.At(x, y) == kind
	}

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if !open(x, y) {
				continue
			}
			rw := 1
			for x+rw < w && open(x+rw, y) {
				rw++
			}
			rh := 1
		grow:
			for y+rh < h {
				for xi := x; xi < x+rw; xi++ {
					if !open(xi, y+rh) {
						break grow
					}
				}
				rh++
			}
			for yy := y; yy < y+rh; yy++ {
				for xx := x; xx < x+rw; xx++ {
					done[yy*w+xx] = true
				}
			}
			emit(x, y, rw, rh)
		}
	}
}
