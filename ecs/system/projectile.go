package system

import (
	"github.com/milk9111/featherfall/common"
	"github.com/milk9111/featherfall/ecs"
	"github.com/milk9111/featherfall/ecs/component"
	"github.com/milk9111/featherfall/obj"
	"github.com/milk9111/featherfall/physics"
)

// ProjectileSystem flies projectiles and removes them when they expire or
// strike level geometry.
type ProjectileSystem struct {
	clock common.Clock
}

func NewProjectileSystem(clock common.Clock) *ProjectileSystem {
	return &ProjectileSystem{clock: clock}
}

func (s *ProjectileSystem) Update(w *ecs.World) {
	dt := s.clock.FixedDelta()
	var space *physics.Space
	if pw := w.PhysicsWorld(); pw != nil {
		space = pw.Space
	}

	ecs.ForEach2(w, component.ProjectileComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, p *obj.Projectile, t *component.Transform) {
		from := p.Position
		alive := p.Step(dt)
		t.Position = p.Position
		t.Rotation = p.Rotation()

		if space != nil {
			d := p.Position.Sub(from)
			if _, hit := space.CastRay(from, d, d.Length(), physics.LayerEnvironment); hit {
				alive = false
			}
		}
		if !alive {
			ecs.DestroyEntity(w, e)
		}
	})
}
