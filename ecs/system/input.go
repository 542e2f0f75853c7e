package system

import (
	"github.com/milk9111/featherfall/ecs"
	"github.com/milk9111/featherfall/ecs/component"
	"github.com/milk9111/featherfall/input"
)

// InputSystem polls the device once per fixed step and hands the frame to
// every entity with an Input component.
type InputSystem struct {
	src  input.Source
	last input.Frame
}

func NewInputSystem(src input.Source) *InputSystem {
	return &InputSystem{src: src}
}

func (s *InputSystem) Update(w *ecs.World) {
	if s.src == nil {
		return
	}
	s.last = s.src.Poll()
	ecs.ForEach(w, component.InputComponent.Kind(), func(_ ecs.Entity, in *component.Input) {
		in.Frame = s.last
	})
}

// Last is the frame polled on the latest step.
func (s *InputSystem) Last() input.Frame { return s.last }
