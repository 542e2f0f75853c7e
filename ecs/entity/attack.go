package entity

import (
	"fmt"
	"image/color"

	"github.com/milk9111/featherfall/ecs"
	"github.com/milk9111/featherfall/ecs/component"
	"github.com/milk9111/featherfall/obj"
)

// AttackTags are the hurtbox tags a player attack damages.
var AttackTags = []string{"enemy"}

var attackColor = color.NRGBA{R: 255, G: 255, B: 255, A: 96}

// NewAttack spawns the hitbox of one player swing. It rides along with owner
// until its duration runs out.
func NewAttack(w *ecs.World, owner ecs.Entity, req obj.AttackRequest) (ecs.Entity, error) {
	ownerT, ok := ecs.Get(w, owner, component.TransformComponent.Kind())
	if !ok {
		return 0, fmt.Errorf("attack: owner %s has no transform", owner)
	}

	e := ecs.CreateEntity(w)
	err := addAll(
		func() error { return ecs.Add(w, e, component.AttackTagComponent.Kind(), &component.AttackTag{}) },
		func() error {
			return ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{Position: ownerT.Position.Add(req.Offset)})
		},
		func() error {
			return ecs.Add(w, e, component.HitboxComponent.Kind(), &component.Hitbox{
				Box:    obj.NewHitbox(req.Damage, req.Duration, AttackTags...),
				Size:   req.Size,
				Offset: req.Offset,
				Owner:  uint64(owner),
				Follow: true,
			})
		},
		func() error {
			return ecs.Add(w, e, component.SpriteComponent.Kind(), &component.Sprite{Size: req.Size, Color: attackColor})
		},
		func() error {
			return ecs.Add(w, e, component.RenderLayerComponent.Kind(), &component.RenderLayer{Index: 11})
		},
	)
	if err != nil {
		ecs.DestroyEntity(w, e)
		return 0, fmt.Errorf("attack: %w", err)
	}
	return e, nil
}
