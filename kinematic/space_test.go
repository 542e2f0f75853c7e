package kinematic

import (
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/featherfall/physics"
	"github.com/stretchr/testify/require"
)

const tick = 1.0 / 60

func floorSpace() *physics.Space {
	s := physics.NewSpace()
	s.AddSolid(cp.BB{L: -100, B: -10, R: 100, T: 0}, physics.LayerEnvironment)
	return s
}

func TestLandsFlushOnFloor(t *testing.T) {
	b := newTestBody(t, floorSpace(), cp.Vector{X: 0, Y: 30})
	b.Velocity.Y = -900

	b.Step(tick)
	require.InDelta(t, 15.0, b.Position.Y, 1e-9)
	require.False(t, b.PreviouslyGrounded())

	b.Step(tick)
	require.InDelta(t, 10.0, b.Position.Y, 1e-9, "bottom edge should rest on y=0")
	require.True(t, b.PreviouslyGrounded())
	require.False(t, b.HitsCeiling())
}

func TestStopsFlushAgainstWall(t *testing.T) {
	s := floorSpace()
	s.AddSolid(cp.BB{L: 20, B: 0, R: 30, T: 100}, physics.LayerEnvironment)
	b := newTestBody(t, s, cp.Vector{X: 0, Y: 10})
	b.Velocity.X = 1200

	b.Step(tick)
	require.InDelta(t, 15.0, b.Position.X, 1e-9)
	require.InDelta(t, 10.0, b.Position.Y, 1e-9, "a wall is not a slope")

	// Moving away is unobstructed.
	b.Velocity.X = -600
	b.Step(tick)
	require.InDelta(t, 5.0, b.Position.X, 1e-9)
}

func slopeSpace() *physics.Space {
	s := floorSpace()
	// 45 degree ramp rising to the right from x=20.
	s.AddTriangle(cp.Vector{X: 20, Y: 0}, cp.Vector{X: 60, Y: 0}, cp.Vector{X: 60, Y: 40}, physics.LayerEnvironment)
	return s
}

func TestClimbsGentleSlope(t *testing.T) {
	b := newTestBody(t, slopeSpace(), cp.Vector{X: 10, Y: 10})
	b.Velocity.X = 300

	b.Step(tick) // reaches the foot of the ramp
	require.InDelta(t, 15.0, b.Position.X, 1e-9)

	b.Step(tick)
	// Lifted by sin(45)*5 and advanced to the new contact point on the ramp.
	require.InDelta(t, 10+3.5355339059, b.Position.Y, 1e-6)
	require.InDelta(t, 19.0355339059, b.Position.X, 1e-6)
	require.True(t, b.PreviouslyGrounded())
}

func TestBlockedBySteepSlope(t *testing.T) {
	cfg := testConfig()
	cfg.MaxSlopeAngle = 40
	b, err := NewBody(cfg, slopeSpace(), box(cp.Vector{X: 10, Y: 10}))
	require.NoError(t, err)
	b.Velocity.X = 300

	b.Step(tick)
	b.Step(tick)
	require.InDelta(t, 10.0, b.Position.Y, 1e-9)
	require.InDelta(t, 15.5, b.Position.X, 1e-6)
}

func TestSnapsDownDescendingSlope(t *testing.T) {
	s := physics.NewSpace()
	s.AddSolid(cp.BB{L: -100, B: -50, R: 0, T: 20}, physics.LayerEnvironment)
	s.AddSolid(cp.BB{L: -100, B: -60, R: 100, T: -20}, physics.LayerEnvironment)
	s.AddTriangle(cp.Vector{X: 0, Y: -20}, cp.Vector{X: 40, Y: -20}, cp.Vector{X: 0, Y: 20}, physics.LayerEnvironment)

	b := newTestBody(t, s, cp.Vector{X: -6, Y: 30})
	b.Step(tick)
	require.True(t, b.PreviouslyGrounded())

	b.Velocity.X = 900
	b.Step(tick)
	require.InDelta(t, 9.0, b.Position.X, 1e-9)
	require.InDelta(t, 25.5, b.Position.Y, 1e-6, "snapped onto the ramp instead of hanging in the air")
	require.True(t, b.Grounded())
}

func TestNoSnapWhileMovingVertically(t *testing.T) {
	s := floorSpace()
	b := newTestBody(t, s, cp.Vector{X: 0, Y: 10})
	b.Step(tick)
	require.True(t, b.PreviouslyGrounded())

	b.Velocity.Y = 60
	b.Step(tick)
	require.InDelta(t, 11.0, b.Position.Y, 1e-9)
	require.False(t, b.DownwardSlope())
}
