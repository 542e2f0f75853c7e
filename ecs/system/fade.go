package system

import (
	"github.com/milk9111/featherfall/common"
	"github.com/milk9111/featherfall/ecs"
	"github.com/milk9111/featherfall/ecs/component"
	"github.com/milk9111/featherfall/obj"
)

// FadeSystem resumes every fade once per frame and drops finished ones.
type FadeSystem struct {
	clock common.Clock
}

func NewFadeSystem(clock common.Clock) *FadeSystem {
	return &FadeSystem{clock: clock}
}

func (s *FadeSystem) Update(w *ecs.World) {
	ecs.ForEach(w, component.FadeComponent.Kind(), func(e ecs.Entity, f *obj.Fade) {
		if f.Step(s.clock.FrameDelta()) {
			ecs.DestroyEntity(w, e)
		}
	})
}
