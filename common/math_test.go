package common

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/jakecoffman/cp"
)

func TestAngleFromUp(t *testing.T) {
	cases := []struct {
		name string
		n    cp.Vector
		want float64
	}{
		{"up", cp.Vector{X: 0, Y: 1}, 0},
		{"wall", cp.Vector{X: -1, Y: 0}, 90},
		{"slope45", cp.Vector{X: -1, Y: 1}, 45},
		{"down", cp.Vector{X: 0, Y: -1}, 180},
		{"zero", cp.Vector{}, 0},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := AngleFromUp(c.n); math.Abs(got-c.want) > 1e-9 {
				t.Fatalf("AngleFromUp(%v) = %v, want %v", c.n, got, c.want)
			}
		})
	}
}

func TestMoveTowardsClampsStep(t *testing.T) {
	got := MoveTowards(cp.Vector{}, cp.Vector{X: 10, Y: 0}, 2)
	if got.X != 2 || got.Y != 0 {
		t.Fatalf("expected (2,0), got %v", got)
	}
	got = MoveTowards(cp.Vector{}, cp.Vector{X: 1, Y: 0}, 2)
	if got.X != 1 {
		t.Fatalf("expected target reached, got %v", got)
	}
}

func TestInsideUnitCircle(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	for i := 0; i < 1000; i++ {
		if p := InsideUnitCircle(rng); p.Length() > 1 {
			t.Fatalf("point %v outside unit circle", p)
		}
	}
}

func TestTickClockAdvance(t *testing.T) {
	c := NewTickClock(0)
	if c.FixedDelta() != 1.0/TicksPerSecond {
		t.Fatalf("unexpected default fixed delta %v", c.FixedDelta())
	}
	c.Advance(0.5)
	c.Advance(-1)
	c.Advance(0.25)
	if c.Now() != 0.75 || c.FrameDelta() != 0.25 {
		t.Fatalf("unexpected clock state now=%v frame=%v", c.Now(), c.FrameDelta())
	}
}
