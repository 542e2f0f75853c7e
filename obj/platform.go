package obj

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/featherfall/common"
)

// PlatformActor is the actor a one-way platform decides about.
type PlatformActor interface {
	BB() cp.BB
	Velocity() cp.Vector
	Dropping() bool
}

// topEpsilon absorbs the rounding of a landing clamp.
const topEpsilon = 1e-6

// OneWayPlatform is solid only to actors landing on it from above.
type OneWayPlatform struct {
	Top float64
	// MaxEntryAngle is the widest angle from straight down, in degrees, at
	// which an actor may still land.
	MaxEntryAngle float64
}

// Solid reports whether the platform should block the actor this tick.
func (p OneWayPlatform) Solid(a PlatformActor) bool {
	if a == nil || a.Dropping() {
		return false
	}
	if p.Top > a.BB().B+topEpsilon {
		return false
	}
	v := a.Velocity()
	if v.Y > 0 {
		return false
	}
	if v.Y == 0 {
		return true
	}
	down := common.AngleFromUp(v.Neg())
	return down <= p.MaxEntryAngle
}

// PlayerPlatformActor adapts a Player to PlatformActor.
type PlayerPlatformActor struct{ P *Player }

func (a PlayerPlatformActor) BB() cp.BB           { return a.P.Body.BB() }
func (a PlayerPlatformActor) Velocity() cp.Vector { return a.P.Body.Velocity }
func (a PlayerPlatformActor) Dropping() bool      { return a.P.DropDown }
