package entity

import (
	"fmt"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/featherfall/ecs"
	"github.com/milk9111/featherfall/ecs/component"
	"github.com/milk9111/featherfall/obj"
	"github.com/milk9111/featherfall/prefabs"
)

// NewFeather launches a projectile from pos along heading in degrees.
func NewFeather(w *ecs.World, spec *prefabs.FeatherSpec, pos cp.Vector, heading float64) (ecs.Entity, error) {
	if spec == nil {
		d := prefabs.DefaultFeatherSpec()
		spec = &d
	}
	cfg := spec.Projectile
	p := obj.NewProjectile(cfg, pos, heading)

	e := ecs.CreateEntity(w)
	err := addAll(
		func() error { return ecs.Add(w, e, component.FeatherTagComponent.Kind(), &component.FeatherTag{}) },
		func() error { return ecs.Add(w, e, component.ProjectileComponent.Kind(), p) },
		func() error {
			return ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{Position: pos, Rotation: p.Rotation()})
		},
		func() error {
			return ecs.Add(w, e, component.HitboxComponent.Kind(), &component.Hitbox{
				Box:      obj.NewHitbox(cfg.Damage, cfg.Lifetime, cfg.Tags...),
				Size:     cfg.Size,
				Consumed: true,
			})
		},
		func() error {
			return ecs.Add(w, e, component.SpriteComponent.Kind(), &component.Sprite{Size: cfg.Size, Color: spec.Color.Value()})
		},
		func() error {
			return ecs.Add(w, e, component.RenderLayerComponent.Kind(), &component.RenderLayer{Index: spec.RenderLayer.Index})
		},
	)
	if err != nil {
		ecs.DestroyEntity(w, e)
		return 0, fmt.Errorf("feather: %w", err)
	}
	w.Events().Push(ecs.Event{Kind: ecs.EventSpawned, Entity: e, Data: spec.Name})
	return e, nil
}
