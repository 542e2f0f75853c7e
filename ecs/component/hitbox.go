package component

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/featherfall/obj"
)

// Hitbox is an offensive box centred on the entity transform plus Offset.
type Hitbox struct {
	Box    *obj.Hitbox
	Size   cp.Vector
	Offset cp.Vector
	// Owner is the raw ecs.Entity that spawned the box; it is never hit by it.
	Owner uint64
	// Follow keeps the box at the owner's position plus Offset.
	Follow bool
	// Consumed destroys the entity after its first hit, like a feather.
	Consumed bool
}

var HitboxComponent = NewComponent[Hitbox]()
