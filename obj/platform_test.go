package obj

import (
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/stretchr/testify/require"
)

type stubActor struct {
	bb   cp.BB
	vel  cp.Vector
	drop bool
}

func (a stubActor) BB() cp.BB           { return a.bb }
func (a stubActor) Velocity() cp.Vector { return a.vel }
func (a stubActor) Dropping() bool      { return a.drop }

func TestOneWayPlatformSolid(t *testing.T) {
	p := OneWayPlatform{Top: 32, MaxEntryAngle: 60}
	above := cp.BB{L: 0, B: 40, R: 10, T: 60}
	resting := cp.BB{L: 0, B: 32, R: 10, T: 52}
	below := cp.BB{L: 0, B: 20, R: 10, T: 40}

	cases := []struct {
		name  string
		actor PlatformActor
		want  bool
	}{
		{"falling_onto", stubActor{bb: above, vel: cp.Vector{Y: -100}}, true},
		{"resting", stubActor{bb: resting}, true},
		{"walking", stubActor{bb: resting, vel: cp.Vector{X: 80}}, true},
		{"shallow_diagonal", stubActor{bb: above, vel: cp.Vector{X: 50, Y: -100}}, true},
		{"too_sideways", stubActor{bb: above, vel: cp.Vector{X: 200, Y: -10}}, false},
		{"rising", stubActor{bb: above, vel: cp.Vector{Y: 10}}, false},
		{"from_below", stubActor{bb: below, vel: cp.Vector{Y: -10}}, false},
		{"dropping", stubActor{bb: resting, drop: true}, false},
		{"nil", nil, false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			require.Equal(t, c.want, p.Solid(c.actor))
		})
	}
}
