package ecs

import "github.com/milk9111/featherfall/ecs/component"

// smallest returns the store with the fewest entities, or nil when any of
// the kinds has never been stored.
func smallest(w *World, ids ...component.ComponentID) *sparseSet {
	var best *sparseSet
	for _, id := range ids {
		s := w.store(id, false)
		if s == nil {
			return nil
		}
		if best == nil || s.len() < best.len() {
			best = s
		}
	}
	return best
}

// ForEach2 visits entities that have both components.
func ForEach2[A, B any](w *World, ka component.ComponentKind[A], kb component.ComponentKind[B], fn func(Entity, *A, *B)) {
	for _, e := range smallest(w, ka.ID(), kb.ID()).snapshot() {
		a, ok := Get(w, e, ka)
		if !ok {
			continue
		}
		b, ok := Get(w, e, kb)
		if !ok {
			continue
		}
		fn(e, a, b)
	}
}

// ForEach3 visits entities that have all three components.
func ForEach3[A, B, C any](w *World, ka component.ComponentKind[A], kb component.ComponentKind[B], kc component.ComponentKind[C], fn func(Entity, *A, *B, *C)) {
	for _, e := range smallest(w, ka.ID(), kb.ID(), kc.ID()).snapshot() {
		a, ok := Get(w, e, ka)
		if !ok {
			continue
		}
		b, ok := Get(w, e, kb)
		if !ok {
			continue
		}
		c, ok := Get(w, e, kc)
		if !ok {
			continue
		}
		fn(e, a, b, c)
	}
}
