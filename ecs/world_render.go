package ecs

import "github.com/hajimehoshi/ebiten/v2"

// RenderSystem draws ECS entities each frame.
type RenderSystem interface {
	Draw(w *World, screen *ebiten.Image)
}

// AddDraw appends a render system; they draw in registration order.
func (s *Scheduler) AddDraw(r RenderSystem) {
	if r == nil {
		return
	}
	s.draw = append(s.draw, r)
}

// Draw calls all render systems.
func (s *Scheduler) Draw(w *World, screen *ebiten.Image) {
	if w == nil || screen == nil {
		return
	}
	for _, r := range s.draw {
		r.Draw(w, screen)
	}
}
