package entity

import (
	"fmt"
	"math/rand/v2"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/featherfall/common"
	"github.com/milk9111/featherfall/ecs"
	"github.com/milk9111/featherfall/ecs/component"
	"github.com/milk9111/featherfall/obj"
	"github.com/milk9111/featherfall/prefabs"
)

func NewCrowAt(w *ecs.World, spec *prefabs.CrowSpec, pos cp.Vector, props prefabs.PlacementProps, senses *CrowSenses, clock common.Clock, rng *rand.Rand) (ecs.Entity, error) {
	c, err := obj.NewCrow(spec.AI, pos, props.Airborne, senses, clock, rng)
	if err != nil {
		return 0, fmt.Errorf("crow: %w", err)
	}
	health := spec.Health
	if props.Health > 0 {
		health = props.Health
	}

	e := ecs.CreateEntity(w)
	err = addAll(
		func() error { return ecs.Add(w, e, component.CrowTagComponent.Kind(), &component.CrowTag{}) },
		func() error { return ecs.Add(w, e, component.CrowComponent.Kind(), c) },
		func() error {
			return ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{Position: pos})
		},
		func() error { return ecs.Add(w, e, component.HealthComponent.Kind(), obj.NewStats(health)) },
		func() error {
			return ecs.Add(w, e, component.HurtboxComponent.Kind(), &component.Hurtbox{
				Size:   spec.Hurtbox.Size,
				Offset: spec.Hurtbox.Offset,
				Tags:   spec.Hurtbox.Tags,
			})
		},
		func() error {
			return ecs.Add(w, e, component.SpriteComponent.Kind(), &component.Sprite{Size: spec.Size, Color: spec.Color.Value()})
		},
		func() error {
			return ecs.Add(w, e, component.RenderLayerComponent.Kind(), &component.RenderLayer{Index: spec.RenderLayer.Index})
		},
	)
	if err != nil {
		ecs.DestroyEntity(w, e)
		return 0, fmt.Errorf("crow: %w", err)
	}
	c.Machine.OnTransition(stateEvents[*obj.Crow](w, e, "crow"))
	return e, nil
}
