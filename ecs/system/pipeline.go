package system

import (
	"github.com/milk9111/featherfall/common"
	"github.com/milk9111/featherfall/ecs"
	"github.com/milk9111/featherfall/ecs/entity"
	"github.com/milk9111/featherfall/input"
)

// Pipeline is the scheduler with every system registered in game order.
type Pipeline struct {
	*ecs.Scheduler

	Input   *InputSystem
	Overlay *DebugOverlaySystem
}

// NewPipeline registers, on the fixed step: input, one-way platforms,
// player, crow senses, projectiles, combat and fixed-mode cameras. On the
// frame tick: crow AI, frame-mode cameras and fades. Drawing is the scene
// followed by the debug overlay.
func NewPipeline(src input.Source, clock common.Clock, senses *entity.CrowSenses) *Pipeline {
	s := ecs.NewScheduler()
	in := NewInputSystem(src)

	s.AddFixed(in)
	s.AddFixed(NewOneWayPlatformSystem())
	s.AddFixed(NewPlayerControllerSystem())
	s.AddFixed(NewCrowSenseSystem(senses))
	s.AddFixed(NewProjectileSystem(clock))
	s.AddFixed(NewCombatSystem(clock))
	s.AddFixed(NewFixedCameraSystem())

	s.AddFrame(NewCrowAISystem())
	s.AddFrame(NewFrameCameraSystem())
	s.AddFrame(NewFadeSystem(clock))

	render := NewRenderSystem()
	overlay := NewDebugOverlaySystem(render)
	s.AddDraw(render)
	s.AddDraw(overlay)

	return &Pipeline{Scheduler: s, Input: in, Overlay: overlay}
}
