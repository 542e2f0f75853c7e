package ecs

// System is run once per tick by a Scheduler.
type System interface {
	Update(w *World)
}

// SystemFunc adapts a function to System.
type SystemFunc func(w *World)

func (f SystemFunc) Update(w *World) { f(w) }

// Scheduler keeps the fixed-tick and frame-tick system lists in their
// registration order.
type Scheduler struct {
	fixed []System
	frame []System
	draw  []RenderSystem
}

func NewScheduler() *Scheduler {
	return &Scheduler{}
}

// AddFixed appends a system run on every fixed step.
func (s *Scheduler) AddFixed(system System) {
	if system == nil {
		return
	}
	s.fixed = append(s.fixed, system)
}

// AddFrame appends a system run once per rendered frame.
func (s *Scheduler) AddFrame(system System) {
	if system == nil {
		return
	}
	s.frame = append(s.frame, system)
}

func (s *Scheduler) FixedUpdate(w *World) {
	for _, system := range s.fixed {
		system.Update(w)
	}
}

func (s *Scheduler) Update(w *World) {
	for _, system := range s.frame {
		system.Update(w)
	}
}

func (s *Scheduler) FixedSystems() []System {
	return append([]System(nil), s.fixed...)
}

func (s *Scheduler) FrameSystems() []System {
	return append([]System(nil), s.frame...)
}
