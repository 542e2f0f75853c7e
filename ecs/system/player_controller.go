package system

import (
	"github.com/milk9111/featherfall/ecs"
	"github.com/milk9111/featherfall/ecs/component"
	"github.com/milk9111/featherfall/ecs/entity"
	"github.com/milk9111/featherfall/logging"
	"github.com/milk9111/featherfall/obj"
)

// PlayerControllerSystem steps every player, copies the body into the
// transform and turns attack requests into hitbox entities.
type PlayerControllerSystem struct{}

func NewPlayerControllerSystem() *PlayerControllerSystem {
	return &PlayerControllerSystem{}
}

func (s *PlayerControllerSystem) Update(w *ecs.World) {
	ecs.ForEach2(w, component.PlayerComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, p *obj.Player, t *component.Transform) {
		p.FixedUpdate()
		t.Position = p.Body.Position

		if sprite, ok := ecs.Get(w, e, component.SpriteComponent.Kind()); ok {
			sprite.FacingLeft = p.FacingLeft
		}

		for _, req := range p.TakeAttacks() {
			if _, err := entity.NewAttack(w, e, req); err != nil {
				logging.L().Error("player: attack", "entity", e.ID(), "err", err)
			}
		}
	})
}
