package system

import (
	"github.com/milk9111/featherfall/ecs"
	"github.com/milk9111/featherfall/ecs/component"
	"github.com/milk9111/featherfall/obj"
)

// OneWayPlatformSystem decides, before the player moves, which one-way
// platforms block it this step. Without a player every platform is solid.
type OneWayPlatformSystem struct{}

func NewOneWayPlatformSystem() *OneWayPlatformSystem {
	return &OneWayPlatformSystem{}
}

func (s *OneWayPlatformSystem) Update(w *ecs.World) {
	_, p, ok := ecs.First(w, component.PlayerComponent.Kind())
	ecs.ForEach(w, component.OneWayPlatformComponent.Kind(), func(_ ecs.Entity, pl *component.OneWayPlatform) {
		if pl.Shape == nil {
			return
		}
		if !ok {
			pl.Shape.SetSolid(true)
			return
		}
		pl.Shape.SetSolid(pl.Rule.Solid(obj.PlayerPlatformActor{P: p}))
	})
}
