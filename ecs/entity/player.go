package entity

import (
	"fmt"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/featherfall/common"
	"github.com/milk9111/featherfall/ecs"
	"github.com/milk9111/featherfall/ecs/component"
	"github.com/milk9111/featherfall/kinematic"
	"github.com/milk9111/featherfall/obj"
	"github.com/milk9111/featherfall/prefabs"
)

// NewPlayerAt builds the player with its collider centred at pos.
func NewPlayerAt(w *ecs.World, spec *prefabs.PlayerSpec, pos cp.Vector, curves obj.CurveEvaluator, clock common.Clock) (ecs.Entity, error) {
	pw := w.PhysicsWorld()
	if pw == nil || pw.Space == nil {
		return 0, fmt.Errorf("player: %w", ErrNoPhysics)
	}

	cfg := spec.Body
	mask, err := spec.Collider.Mask(cfg.Mask)
	if err != nil {
		return 0, fmt.Errorf("player: collider: %w", err)
	}
	cfg.Mask = mask
	body, err := kinematic.NewBody(cfg, pw.Space, kinematic.StaticBounds{
		Center:  pos.Add(spec.Collider.Offset),
		Extents: spec.Collider.Size.Mult(0.5),
		Offset:  spec.Collider.Offset,
	})
	if err != nil {
		return 0, fmt.Errorf("player: body: %w", err)
	}

	in := &component.Input{}
	p, err := obj.NewPlayer(spec.Movement, body, in, curves, clock)
	if err != nil {
		return 0, fmt.Errorf("player: %w", err)
	}

	e := ecs.CreateEntity(w)
	err = addAll(
		func() error { return ecs.Add(w, e, component.PlayerTagComponent.Kind(), &component.PlayerTag{}) },
		func() error { return ecs.Add(w, e, component.InputComponent.Kind(), in) },
		func() error { return ecs.Add(w, e, component.PlayerComponent.Kind(), p) },
		func() error {
			return ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{Position: body.Position})
		},
		func() error { return ecs.Add(w, e, component.HealthComponent.Kind(), obj.NewStats(spec.Health)) },
		func() error {
			return ecs.Add(w, e, component.HurtboxComponent.Kind(), &component.Hurtbox{
				Size:   spec.Hurtbox.Size,
				Offset: spec.Hurtbox.Offset,
				Tags:   spec.Hurtbox.Tags,
			})
		},
		func() error {
			return ecs.Add(w, e, component.SpriteComponent.Kind(), &component.Sprite{Size: spec.Collider.Size, Color: spec.Color.Value()})
		},
		func() error {
			return ecs.Add(w, e, component.RenderLayerComponent.Kind(), &component.RenderLayer{Index: spec.RenderLayer.Index})
		},
	)
	if err != nil {
		ecs.DestroyEntity(w, e)
		return 0, fmt.Errorf("player: %w", err)
	}
	p.Machine.OnTransition(stateEvents[*obj.Player](w, e, "player"))
	return e, nil
}
