// Package fsm is a small single-threaded state machine shared by the player
// controller and enemy AI. C is the context handed to every hook, normally a
// pointer to the actor that owns the machine.
package fsm

import (
	"errors"
	"fmt"
)

var (
	ErrNilState         = errors.New("fsm: nil state")
	ErrTransitionInExit = errors.New("fsm: transition requested from exit hook")
)

// State is one unit of behaviour.
type State[C any] interface {
	Name() string
	Enter(ctx C)
	Exit(ctx C)
	// Update runs once per rendered frame.
	Update(ctx C)
	// FixedUpdate runs once per fixed physics tick.
	FixedUpdate(ctx C)
}

// Contact describes a collision or trigger overlap delivered to a state.
type Contact struct {
	Other   uint64
	Tags    []string
	Trigger bool
}

// CollisionHandler is implemented by states that react to solid contacts.
type CollisionHandler[C any] interface {
	OnCollision(ctx C, c Contact)
}

// TriggerHandler is implemented by states that react to trigger overlaps.
type TriggerHandler[C any] interface {
	OnTrigger(ctx C, c Contact)
}

// Base can be embedded to get no-op hooks.
type Base[C any] struct{}

func (Base[C]) Enter(C)       {}
func (Base[C]) Exit(C)        {}
func (Base[C]) Update(C)      {}
func (Base[C]) FixedUpdate(C) {}

// Null is the inert placeholder a machine starts in.
type Null[C any] struct{ Base[C] }

func (Null[C]) Name() string { return "null" }

// TransitionHook observes every completed swap.
type TransitionHook[C any] func(ctx C, from, to State[C])

type Machine[C any] struct {
	ctx     C
	current State[C]
	exiting bool
	hook    TransitionHook[C]
}

// New returns a machine parked in the Null state.
func New[C any](ctx C) *Machine[C] {
	return &Machine[C]{ctx: ctx, current: Null[C]{}}
}

// OnTransition installs a hook called after every swap, before Enter.
func (m *Machine[C]) OnTransition(h TransitionHook[C]) {
	m.hook = h
}

func (m *Machine[C]) Current() State[C] {
	return m.current
}

// Is reports whether the active state has the given name.
func (m *Machine[C]) Is(name string) bool {
	return m.current != nil && m.current.Name() == name
}

// Transition exits the current state, swaps and enters next. Enter may itself
// transition; that nested call starts after the swap so the two never overlap.
func (m *Machine[C]) Transition(next State[C]) error {
	if next == nil {
		return ErrNilState
	}
	if m.exiting {
		return fmt.Errorf("%w: %s -> %s", ErrTransitionInExit, m.current.Name(), next.Name())
	}

	prev := m.current
	m.exiting = true
	prev.Exit(m.ctx)
	m.exiting = false

	m.current = next
	if m.hook != nil {
		m.hook(m.ctx, prev, next)
	}
	next.Enter(m.ctx)
	return nil
}

func (m *Machine[C]) Update() {
	m.current.Update(m.ctx)
}

func (m *Machine[C]) FixedUpdate() {
	m.current.FixedUpdate(m.ctx)
}

// Collide forwards a contact to the active state if it handles it.
func (m *Machine[C]) Collide(c Contact) {
	if c.Trigger {
		if h, ok := m.current.(TriggerHandler[C]); ok {
			h.OnTrigger(m.ctx, c)
		}
		return
	}
	if h, ok := m.current.(CollisionHandler[C]); ok {
		h.OnCollision(m.ctx, c)
	}
}
