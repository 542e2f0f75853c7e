package component

import "github.com/jakecoffman/cp"

// Hurtbox is where an entity can be hit, relative to its transform.
type Hurtbox struct {
	Size   cp.Vector
	Offset cp.Vector
	Tags   []string
}

func (h Hurtbox) BB(center cp.Vector) cp.BB {
	return cp.NewBBForExtents(center.Add(h.Offset), h.Size.X/2, h.Size.Y/2)
}

var HurtboxComponent = NewComponent[Hurtbox]()
