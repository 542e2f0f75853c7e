package system

import (
	"github.com/milk9111/featherfall/ecs"
	"github.com/milk9111/featherfall/ecs/component"
	"github.com/milk9111/featherfall/ecs/entity"
	"github.com/milk9111/featherfall/obj"
)

// CrowSenseSystem runs on the fixed step and tells the crows where the
// player ended up after moving.
type CrowSenseSystem struct {
	senses *entity.CrowSenses
}

func NewCrowSenseSystem(senses *entity.CrowSenses) *CrowSenseSystem {
	return &CrowSenseSystem{senses: senses}
}

func (s *CrowSenseSystem) Update(w *ecs.World) {
	if s.senses == nil {
		return
	}
	e, _, ok := ecs.First(w, component.PlayerTagComponent.Kind())
	if !ok {
		s.senses.SetTarget(s.senses.LastTarget(), false)
		return
	}
	t, ok := ecs.Get(w, e, component.TransformComponent.Kind())
	if !ok {
		s.senses.SetTarget(s.senses.LastTarget(), false)
		return
	}
	s.senses.SetTarget(t.Position, true)
}

// CrowAISystem runs the crow state machines on frame time.
type CrowAISystem struct{}

func NewCrowAISystem() *CrowAISystem {
	return &CrowAISystem{}
}

func (s *CrowAISystem) Update(w *ecs.World) {
	ecs.ForEach2(w, component.CrowComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, c *obj.Crow, t *component.Transform) {
		c.Update()
		t.Position = c.Position
		if sprite, ok := ecs.Get(w, e, component.SpriteComponent.Kind()); ok {
			sprite.FacingLeft = c.FacingLeft
		}
	})
}
