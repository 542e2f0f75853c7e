package entity

import (
	"fmt"

	"github.com/milk9111/featherfall/ecs"
	"github.com/milk9111/featherfall/ecs/component"
	"github.com/milk9111/featherfall/obj"
	"github.com/milk9111/featherfall/physics"
	"golang.org/x/image/colornames"
)

func NewPlatform(w *ecs.World, p *physics.Platform, maxEntryAngle float64) (ecs.Entity, error) {
	bb := p.BB()
	e := ecs.CreateEntity(w)
	err := addAll(
		func() error {
			return ecs.Add(w, e, component.OneWayPlatformComponent.Kind(), &component.OneWayPlatform{
				Shape: p,
				Rule:  obj.OneWayPlatform{Top: p.Top(), MaxEntryAngle: maxEntryAngle},
			})
		},
		func() error {
			return ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{Position: bbCenter(bb)})
		},
		func() error {
			return ecs.Add(w, e, component.SpriteComponent.Kind(), &component.Sprite{
				Size:  bbSize(bb),
				Color: colornames.Burlywood,
			})
		},
		func() error { return ecs.Add(w, e, component.RenderLayerComponent.Kind(), &component.RenderLayer{Index: 1}) },
	)
	if err != nil {
		ecs.DestroyEntity(w, e)
		return 0, fmt.Errorf("platform: %w", err)
	}
	return e, nil
}
