package entity

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/featherfall/ecs"
	"github.com/milk9111/featherfall/prefabs"
)

// CrowSenses is the crows' view of the world: where the player is, what
// blocks sight and how to launch feathers. The target is refreshed once per
// fixed step by the crow sense system.
type CrowSenses struct {
	w       *ecs.World
	feather *prefabs.FeatherSpec

	target    cp.Vector
	hasTarget bool
}

func NewCrowSenses(w *ecs.World, feather *prefabs.FeatherSpec) *CrowSenses {
	return &CrowSenses{w: w, feather: feather}
}

func (s *CrowSenses) SetTarget(pos cp.Vector, ok bool) {
	s.target, s.hasTarget = pos, ok
}

func (s *CrowSenses) SetFeather(spec *prefabs.FeatherSpec) {
	s.feather = spec
}

// LastTarget is the most recent player position, even once it is gone.
func (s *CrowSenses) LastTarget() cp.Vector {
	return s.target
}

func (s *CrowSenses) Target() (cp.Vector, bool) {
	return s.target, s.hasTarget
}

func (s *CrowSenses) LineOfSight(a, b cp.Vector) bool {
	return s.w.PhysicsWorld().LineOfSight(a, b)
}

func (s *CrowSenses) SpawnFeather(pos cp.Vector, heading float64) error {
	_, err := NewFeather(s.w, s.feather, pos, heading)
	return err
}
