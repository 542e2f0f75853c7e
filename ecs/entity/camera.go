package entity

import (
	"fmt"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/featherfall/ecs"
	"github.com/milk9111/featherfall/ecs/component"
	"github.com/milk9111/featherfall/obj"
	"github.com/milk9111/featherfall/prefabs"
)

// NewCamera follows target's transform. When target goes away the camera
// holds its last known position.
func NewCamera(w *ecs.World, spec *prefabs.CameraSpec, target ecs.Entity, screenW, screenH int, bounds *obj.CameraBounds) (ecs.Entity, error) {
	t, ok := ecs.Get(w, target, component.TransformComponent.Kind())
	if !ok {
		return 0, fmt.Errorf("camera: %w", obj.ErrNoTarget)
	}
	last := t.Position
	follow := obj.TargetFunc(func() cp.Vector {
		if t, ok := ecs.Get(w, target, component.TransformComponent.Kind()); ok {
			last = t.Position
		}
		return last
	})

	cam, err := obj.NewCamera(follow, screenW, screenH, spec.Zoom)
	if err != nil {
		return 0, fmt.Errorf("camera: %w", err)
	}
	cam.Mode = obj.ParseTrackingMode(spec.Tracking)
	cam.SetSmooth(spec.Smoothness)
	cam.SetBounds(bounds)
	cam.SnapTo(last)

	e := ecs.CreateEntity(w)
	if err := ecs.Add(w, e, component.CameraComponent.Kind(), cam); err != nil {
		ecs.DestroyEntity(w, e)
		return 0, fmt.Errorf("camera: %w", err)
	}
	return e, nil
}

// NewFade starts a fade from black that removes itself when done.
func NewFade(w *ecs.World, duration float64) (ecs.Entity, error) {
	e := ecs.CreateEntity(w)
	if err := ecs.Add(w, e, component.FadeComponent.Kind(), obj.NewFade(duration)); err != nil {
		ecs.DestroyEntity(w, e)
		return 0, fmt.Errorf("fade: %w", err)
	}
	return e, nil
}
