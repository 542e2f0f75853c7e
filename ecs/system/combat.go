package system

import (
	"slices"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/featherfall/common"
	"github.com/milk9111/featherfall/ecs"
	"github.com/milk9111/featherfall/ecs/component"
	"github.com/milk9111/featherfall/fsm"
	"github.com/milk9111/featherfall/logging"
)

// CombatSystem indexes hurtboxes, ages hitboxes and applies damage. Crows
// that die are removed; a dead player is left for the game to restart.
type CombatSystem struct {
	clock common.Clock
}

func NewCombatSystem(clock common.Clock) *CombatSystem {
	return &CombatSystem{clock: clock}
}

func (s *CombatSystem) Update(w *ecs.World) {
	pw := w.PhysicsWorld()
	if pw == nil || pw.Index == nil {
		return
	}
	dt := s.clock.FixedDelta()
	index := pw.Index
	index.Reset()

	ecs.ForEach2(w, component.HurtboxComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, hb *component.Hurtbox, t *component.Transform) {
		if err := index.Insert(uint64(e), hb.BB(t.Position)); err != nil {
			logging.L().Error("combat: index hurtbox", "entity", e.ID(), "err", err)
		}
	})

	ecs.ForEach2(w, component.HitboxComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, hb *component.Hitbox, t *component.Transform) {
		if hb.Follow {
			owner, ok := ecs.Get(w, ecs.Entity(hb.Owner), component.TransformComponent.Kind())
			if !ok {
				ecs.DestroyEntity(w, e)
				return
			}
			t.Position = owner.Position.Add(hb.Offset)
		}
		if hb.Box == nil || !hb.Box.Tick(dt) {
			ecs.DestroyEntity(w, e)
			return
		}

		bb := cp.NewBBForExtents(t.Position, hb.Size.X/2, hb.Size.Y/2)
		ids := index.Search(bb, hb.Owner)
		slices.Sort(ids)
		for _, id := range ids {
			if s.hit(w, e, hb, ecs.Entity(id)) && hb.Consumed {
				ecs.DestroyEntity(w, e)
				return
			}
		}
	})
}

func (s *CombatSystem) hit(w *ecs.World, src ecs.Entity, hb *component.Hitbox, target ecs.Entity) bool {
	hurt, ok := ecs.Get(w, target, component.HurtboxComponent.Kind())
	if !ok {
		return false
	}
	stats, ok := ecs.Get(w, target, component.HealthComponent.Kind())
	if !ok || stats.Dead() {
		return false
	}
	if !hb.Box.TryHit(uint64(target), hurt.Tags, stats) {
		return false
	}

	logging.L().Debug("combat: hit", "source", src.ID(), "target", target.ID(), "damage", hb.Box.Damage, "health", stats.Health)
	w.Events().Push(ecs.Event{Kind: ecs.EventDamaged, Entity: target, Data: hb.Box.Damage})
	if p, ok := ecs.Get(w, target, component.PlayerComponent.Kind()); ok {
		p.Machine.Collide(fsm.Contact{Other: uint64(src), Tags: hb.Box.Tags, Trigger: true})
	}
	if stats.Dead() {
		s.die(w, target)
	}
	return true
}

func (s *CombatSystem) die(w *ecs.World, e ecs.Entity) {
	w.Events().Push(ecs.Event{Kind: ecs.EventDied, Entity: e})
	if pw := w.PhysicsWorld(); pw != nil && pw.Index != nil {
		pw.Index.Remove(uint64(e))
	}
	if ecs.Has(w, e, component.CrowTagComponent.Kind()) {
		ecs.DestroyEntity(w, e)
	}
}
