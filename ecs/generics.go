package ecs

import (
	"fmt"

	"github.com/milk9111/featherfall/ecs/component"
)

// Add attaches value to e, replacing any component of the same kind.
func Add[T any](w *World, e Entity, kind component.ComponentKind[T], value *T) error {
	if !kind.Valid() {
		return component.ErrInvalidComponentKind
	}
	if value == nil {
		return component.ErrNilComponent
	}
	if !IsAlive(w, e) {
		return fmt.Errorf("%w: %s", component.ErrEntityNotAlive, e)
	}
	w.store(kind.ID(), true).set(e, value)
	return nil
}

// Remove detaches the component and reports whether one was present.
func Remove[T any](w *World, e Entity, kind component.ComponentKind[T]) bool {
	return w.store(kind.ID(), false).remove(e)
}

func Has[T any](w *World, e Entity, kind component.ComponentKind[T]) bool {
	return w.store(kind.ID(), false).has(e)
}

// Get returns the stored pointer, so changes through it are visible to
// every system.
func Get[T any](w *World, e Entity, kind component.ComponentKind[T]) (*T, bool) {
	if w == nil {
		return nil, false
	}
	v, ok := w.store(kind.ID(), false).get(e)
	if !ok {
		return nil, false
	}
	cast, ok := v.(*T)
	return cast, ok
}

// First returns any one entity that has the component.
func First[T any](w *World, kind component.ComponentKind[T]) (Entity, *T, bool) {
	s := w.store(kind.ID(), false)
	if s.len() == 0 {
		return 0, nil, false
	}
	e := s.denseEntities[0]
	v, _ := s.denseValues[0].(*T)
	return e, v, v != nil
}

// ForEach visits every entity with the component. fn may add or destroy
// entities; entities destroyed during the walk are skipped.
func ForEach[T any](w *World, kind component.ComponentKind[T], fn func(Entity, *T)) {
	s := w.store(kind.ID(), false)
	for _, e := range s.snapshot() {
		if v, ok := Get(w, e, kind); ok {
			fn(e, v)
		}
	}
}

// Count is the number of entities with the component.
func Count[T any](w *World, kind component.ComponentKind[T]) int {
	return w.store(kind.ID(), false).len()
}
