package entity

import (
	"errors"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/featherfall/ecs"
	"github.com/milk9111/featherfall/fsm"
	"github.com/milk9111/featherfall/logging"
)

var ErrNoPhysics = errors.New("entity: world has no physics")

// addAll runs component adds in order and stops at the first failure.
func addAll(steps ...func() error) error {
	for _, step := range steps {
		if err := step(); err != nil {
			return err
		}
	}
	return nil
}

func bbCenter(bb cp.BB) cp.Vector {
	return cp.Vector{X: (bb.L + bb.R) / 2, Y: (bb.B + bb.T) / 2}
}

func bbSize(bb cp.BB) cp.Vector {
	return cp.Vector{X: bb.R - bb.L, Y: bb.T - bb.B}
}

// stateEvents reports every swap of e's state machine, including swaps made
// from inside Enter, as a state_changed event.
func stateEvents[C any](w *ecs.World, e ecs.Entity, who string) fsm.TransitionHook[C] {
	return func(_ C, from, to fsm.State[C]) {
		logging.L().Debug(who+": state", "entity", e.ID(), "from", from.Name(), "to", to.Name())
		w.Events().Push(ecs.Event{Kind: ecs.EventStateChanged, Entity: e, Data: to.Name()})
	}
}
