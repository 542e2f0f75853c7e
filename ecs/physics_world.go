package ecs

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/featherfall/physics"
)

// MaskVision is what blocks a line of sight.
const MaskVision = physics.LayerEnvironment | physics.LayerVisionBlocker

// PhysicsWorld is the level geometry plus the overlap index the combat
// system rebuilds every fixed step.
type PhysicsWorld struct {
	Space *physics.Space
	Index *physics.Index
}

func NewPhysicsWorld(space *physics.Space) *PhysicsWorld {
	return &PhysicsWorld{Space: space, Index: physics.NewIndex()}
}

// LineOfSight reports whether nothing in MaskVision lies between a and b.
func (pw *PhysicsWorld) LineOfSight(a, b cp.Vector) bool {
	if pw == nil || pw.Space == nil {
		return true
	}
	return pw.Space.LineOfSight(a, b, MaskVision)
}
