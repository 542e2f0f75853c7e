package system

import (
	"github.com/milk9111/featherfall/ecs"
	"github.com/milk9111/featherfall/ecs/component"
	"github.com/milk9111/featherfall/obj"
)

// CameraSystem moves cameras on the tick their tracking mode asks for. The
// same system is registered twice, once per list.
type CameraSystem struct {
	fixed bool
}

func NewFixedCameraSystem() *CameraSystem {
	return &CameraSystem{fixed: true}
}

func NewFrameCameraSystem() *CameraSystem {
	return &CameraSystem{}
}

func (s *CameraSystem) Update(w *ecs.World) {
	ecs.ForEach(w, component.CameraComponent.Kind(), func(_ ecs.Entity, c *obj.Camera) {
		if s.fixed {
			c.FixedUpdate()
		} else {
			c.Update()
		}
	})
}
