package physics

import (
	"github.com/dhconnelly/rtreego"
	"github.com/jakecoffman/cp"
)

// minExtent keeps degenerate boxes indexable; rtreego rejects zero lengths.
const minExtent = 1e-6

// Index is an R-tree of AABBs keyed by entity id, rebuilt every fixed tick
// for hitbox against hurtbox tests.
type Index struct {
	tree  *rtreego.Rtree
	items map[uint64]*indexItem
}

type indexItem struct {
	id   uint64
	bb   cp.BB
	rect rtreego.Rect
}

func (i *indexItem) Bounds() rtreego.Rect {
	return i.rect
}

func NewIndex() *Index {
	return &Index{
		tree:  rtreego.NewTree(2, 8, 32),
		items: map[uint64]*indexItem{},
	}
}

func toRect(bb cp.BB) (rtreego.Rect, error) {
	w := bb.R - bb.L
	h := bb.T - bb.B
	if w < minExtent {
		w = minExtent
	}
	if h < minExtent {
		h = minExtent
	}
	return rtreego.NewRect(rtreego.Point{bb.L, bb.B}, []float64{w, h})
}

// Insert adds or replaces the box for id.
func (ix *Index) Insert(id uint64, bb cp.BB) error {
	r, err := toRect(bb)
	if err != nil {
		return err
	}
	if old, ok := ix.items[id]; ok {
		ix.tree.Delete(old)
	}
	item := &indexItem{id: id, bb: bb, rect: r}
	ix.items[id] = item
	ix.tree.Insert(item)
	return nil
}

func (ix *Index) Remove(id uint64) {
	if old, ok := ix.items[id]; ok {
		ix.tree.Delete(old)
		delete(ix.items, id)
	}
}

// Search returns ids whose boxes overlap bb, excluding skip.
func (ix *Index) Search(bb cp.BB, skip uint64) []uint64 {
	r, err := toRect(bb)
	if err != nil {
		return nil
	}
	found := ix.tree.SearchIntersect(r, func(_ []rtreego.Spatial, obj rtreego.Spatial) (bool, bool) {
		return obj.(*indexItem).id == skip, false
	})
	out := make([]uint64, 0, len(found))
	for _, f := range found {
		item := f.(*indexItem)
		// Touching edges do not count as overlap.
		if Overlaps(item.bb, bb) {
			out = append(out, item.id)
		}
	}
	return out
}

func (ix *Index) Len() int {
	return len(ix.items)
}

func (ix *Index) Reset() {
	ix.tree = rtreego.NewTree(2, 8, 32)
	ix.items = map[uint64]*indexItem{}
}

// Overlaps reports whether a and b share a region of positive area.
func Overlaps(a, b cp.BB) bool {
	return a.L < b.R && b.L < a.R && a.B < b.T && b.B < a.T
}
