package obj

import (
	"errors"
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/featherfall/common"
	"github.com/milk9111/featherfall/curve"
	"github.com/milk9111/featherfall/fsm"
	"github.com/milk9111/featherfall/input"
	"github.com/milk9111/featherfall/kinematic"
	"github.com/milk9111/featherfall/physics"
	"github.com/stretchr/testify/require"
)

func testPlayerConfig() PlayerConfig {
	cfg := DefaultPlayerConfig()
	cfg.Speed = 100
	cfg.Gravity = 600
	cfg.TerminalVelocity = 400
	cfg.JumpHeight = 64
	cfg.DoubleJumpHeight = 32
	cfg.JumpTime = 0.5
	cfg.JumpDecayScale = 0.5
	cfg.JumpCurve = "jump"
	return cfg
}

type playerRig struct {
	p     *Player
	src   *input.Static
	clock *common.TickClock
}

func newPlayerRig(t *testing.T, cfg PlayerConfig) *playerRig {
	t.Helper()
	space := physics.NewSpace()
	space.AddSolid(cp.BB{L: -500, B: -20, R: 500, T: 0}, physics.LayerEnvironment)
	return newPlayerRigIn(t, cfg, space, cp.Vector{X: 0, Y: 10})
}

// newPlayerRigIn places a 10x20 player centred at center in space.
func newPlayerRigIn(t *testing.T, cfg PlayerConfig, space *physics.Space, center cp.Vector) *playerRig {
	t.Helper()
	body, err := kinematic.NewBody(kinematic.DefaultConfig(), space, kinematic.StaticBounds{
		Center:  center,
		Extents: cp.Vector{X: 5, Y: 10},
	})
	require.NoError(t, err)

	lib := curve.NewLibrary()
	lib.Register("jump", curve.Linear{})
	src := &input.Static{}
	clock := common.NewTickClock(1.0 / 60)

	p, err := NewPlayer(cfg, body, src, lib, clock)
	require.NoError(t, err)
	return &playerRig{p: p, src: src, clock: clock}
}

func (r *playerRig) tick(f input.Frame) {
	r.src.Frame = f
	r.clock.Advance(r.clock.FixedDelta())
	r.p.FixedUpdate()
}

var (
	idle    = input.Frame{}
	jump    = input.Frame{Vertical: 1}.With(input.ButtonJump, true)
	holdUp  = input.Frame{Vertical: 1}.With(input.ButtonJump, false)
	holdDn  = input.Frame{Vertical: -1}
	right   = input.Frame{Horizontal: 1}
	attackL = input.Frame{Horizontal: -1}.With(input.ButtonAttack, true)
)

func TestPlayerStartsFallingAndLands(t *testing.T) {
	r := newPlayerRig(t, testPlayerConfig())
	require.Equal(t, StateFalling, r.p.State())

	r.tick(idle)
	require.Equal(t, StateGrounded, r.p.State())
	require.Zero(t, r.p.Body.Velocity.Y)
}

func TestPlayerLandsFlush(t *testing.T) {
	cases := []struct {
		name   string
		center float64
	}{
		{"within_testing_distance", 10.9},
		{"from_height", 57.3},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			space := physics.NewSpace()
			space.AddSolid(cp.BB{L: -500, B: -20, R: 500, T: 0}, physics.LayerEnvironment)
			r := newPlayerRigIn(t, testPlayerConfig(), space, cp.Vector{Y: c.center})

			for i := 0; i < 120; i++ {
				r.tick(idle)
			}
			require.Equal(t, StateGrounded, r.p.State())
			require.InDelta(t, 0.0, r.p.Body.BB().B, 1e-9)
			require.Zero(t, r.p.Body.Velocity.Y)
		})
	}
}

func TestDoubleJumpOncePerGroundContact(t *testing.T) {
	r := newPlayerRig(t, testPlayerConfig())
	r.tick(idle)
	require.Equal(t, StateGrounded, r.p.State())

	// land -> jump
	r.tick(jump)
	require.Equal(t, StateJumping, r.p.State())
	require.False(t, r.p.HasDoubleJumped)
	require.InDelta(t, 128.0, r.p.Body.Velocity.Y, 1e-9)

	r.tick(idle)
	require.Equal(t, StateFalling, r.p.State())
	require.InDelta(t, 64.0, r.p.Body.Velocity.Y, 1e-9, "release keeps half the rise speed")

	// -> jump
	r.tick(jump)
	require.Equal(t, StateJumping, r.p.State())
	require.True(t, r.p.HasDoubleJumped)

	r.tick(idle)
	require.Equal(t, StateFalling, r.p.State())

	// -> jump fails
	r.tick(jump)
	require.Equal(t, StateFalling, r.p.State())

	for i := 0; i < 180 && r.p.State() != StateGrounded; i++ {
		r.tick(idle)
	}
	require.Equal(t, StateGrounded, r.p.State())
	require.False(t, r.p.HasDoubleJumped)
	require.InDelta(t, 10.0, r.p.Body.Position.Y, 1e-6)

	// The flag is available again after landing.
	r.tick(jump)
	r.tick(idle)
	r.tick(jump)
	require.Equal(t, StateJumping, r.p.State())
	require.True(t, r.p.HasDoubleJumped)
}

func TestJumpFollowsCurveToApex(t *testing.T) {
	r := newPlayerRig(t, testPlayerConfig())
	r.tick(idle)

	r.tick(jump)
	for i := 0; i < 60 && r.p.State() == StateJumping; i++ {
		r.tick(holdUp)
	}
	require.Equal(t, StateFalling, r.p.State())
	require.Zero(t, r.p.Body.Velocity.Y, "a finished jump stops rising")
	require.InDelta(t, 10+64.0, r.p.Body.Position.Y, 1e-6)

	// Holding the button does not count as a fresh press.
	r.tick(holdUp)
	require.Equal(t, StateFalling, r.p.State())
	require.False(t, r.p.HasDoubleJumped)
}

func TestDoubleJumpUsesItsOwnHeight(t *testing.T) {
	r := newPlayerRig(t, testPlayerConfig())
	r.tick(idle)
	r.tick(jump)
	r.tick(idle)

	startY := r.p.Body.Position.Y
	r.tick(jump)
	for i := 0; i < 60 && r.p.State() == StateJumping; i++ {
		r.tick(holdUp)
	}
	require.Equal(t, StateFalling, r.p.State())
	require.InDelta(t, startY+32, r.p.Body.Position.Y, 1e-6)
}

func TestDropDownWhileHoldingDown(t *testing.T) {
	r := newPlayerRig(t, testPlayerConfig())
	r.tick(idle)

	r.tick(holdDn)
	require.True(t, r.p.DropDown)
	require.Equal(t, StateGrounded, r.p.State())

	r.tick(idle)
	require.False(t, r.p.DropDown)
}

func TestRunWindupAndDecay(t *testing.T) {
	cfg := testPlayerConfig()
	cfg.RunWindupScale = 0.25
	cfg.RunDecayScale = 0.5
	cfg.DirChangeScale = 1
	r := newPlayerRig(t, cfg)
	r.tick(idle)

	want := []float64{25, 50, 75, 100, 100}
	for i, w := range want {
		r.tick(right)
		require.InDelta(t, w, r.p.Body.Velocity.X, 1e-9, "tick %d", i)
	}
	r.tick(idle)
	require.InDelta(t, 50.0, r.p.Body.Velocity.X, 1e-9, "keeps sliding the last direction")
	r.tick(idle)
	require.Zero(t, r.p.Body.Velocity.X)
}

func TestRunReachesTopSpeedAndTurns(t *testing.T) {
	cfg := testPlayerConfig()
	cfg.RunWindupScale = 0.25
	cfg.RunDecayScale = 0.5
	cfg.DirChangeScale = 0.5
	r := newPlayerRig(t, cfg)
	r.tick(idle)

	for i := 0; i < 120; i++ {
		r.tick(right)
	}
	require.InDelta(t, 100.0, r.p.Body.Velocity.X, 1e-9)

	// Turning keeps half the windup, then builds back up.
	r.tick(input.Frame{Horizontal: -1})
	require.InDelta(t, -75.0, r.p.Body.Velocity.X, 1e-9)
	r.tick(input.Frame{Horizontal: -1})
	require.InDelta(t, -100.0, r.p.Body.Velocity.X, 1e-9)
	require.True(t, r.p.FacingLeft)
}

func TestRunWithoutWindupIsImmediate(t *testing.T) {
	r := newPlayerRig(t, testPlayerConfig())
	r.tick(idle)
	r.tick(right)
	require.InDelta(t, 100.0, r.p.Body.Velocity.X, 1e-9)
	require.False(t, r.p.FacingLeft)
}

func TestAttackMirrorsOffsetAndWaits(t *testing.T) {
	cfg := testPlayerConfig()
	cfg.Attack = AttackConfig{Offset: cp.Vector{X: 12, Y: 2}, Size: cp.Vector{X: 10, Y: 10}, Damage: 2, Duration: 0.5}
	r := newPlayerRig(t, cfg)
	r.tick(idle)

	r.tick(attackL)
	got := r.p.TakeAttacks()
	require.Len(t, got, 1)
	require.True(t, r.p.FacingLeft)
	require.Equal(t, cp.Vector{X: -12, Y: -2}, got[0].Offset)
	require.Equal(t, 2, got[0].Damage)

	r.tick(attackL)
	require.Empty(t, r.p.TakeAttacks(), "still swinging")

	for i := 0; i < 30; i++ {
		r.tick(idle)
	}
	r.tick(attackL)
	require.Len(t, r.p.TakeAttacks(), 1)
}

func TestNewPlayerRejectsMissingCollaborators(t *testing.T) {
	space := physics.NewSpace()
	body, err := kinematic.NewBody(kinematic.DefaultConfig(), space, kinematic.StaticBounds{Extents: cp.Vector{X: 5, Y: 10}})
	require.NoError(t, err)
	lib := curve.NewLibrary()
	lib.Register("jump", curve.Linear{})
	clock := common.NewTickClock(0)

	var ce *kinematic.ConfigurationError
	_, err = NewPlayer(testPlayerConfig(), nil, &input.Static{}, lib, clock)
	require.ErrorAs(t, err, &ce)
	_, err = NewPlayer(testPlayerConfig(), body, &input.Static{}, nil, clock)
	require.ErrorAs(t, err, &ce)

	cfg := testPlayerConfig()
	cfg.JumpCurve = "missing"
	_, err = NewPlayer(cfg, body, &input.Static{}, lib, clock)
	require.True(t, errors.Is(err, curve.ErrUnknownCurve))

	cfg = testPlayerConfig()
	cfg.Gravity = 0
	_, err = NewPlayer(cfg, body, &input.Static{}, lib, clock)
	require.ErrorAs(t, err, &ce)
	require.Equal(t, "gravity", ce.Field)
}

func TestHitCutsJumpShort(t *testing.T) {
	r := newPlayerRig(t, testPlayerConfig())
	r.tick(idle)
	r.tick(jump)
	require.Equal(t, StateJumping, r.p.State())
	require.InDelta(t, 128.0, r.p.Body.Velocity.Y, 1e-9)

	r.p.Machine.Collide(fsm.Contact{Other: 7, Tags: []string{"enemy"}})
	require.Equal(t, StateJumping, r.p.State(), "solid contacts do not cut the jump")

	r.p.Machine.Collide(fsm.Contact{Other: 7, Tags: []string{"enemy"}, Trigger: true})
	require.Equal(t, StateFalling, r.p.State())
	require.InDelta(t, 64.0, r.p.Body.Velocity.Y, 1e-9)

	for i := 0; i < 180 && r.p.State() != StateGrounded; i++ {
		r.tick(idle)
	}
	r.p.Machine.Collide(fsm.Contact{Other: 7, Trigger: true})
	require.Equal(t, StateGrounded, r.p.State(), "grounded ignores hits")
}

func TestPlayerOnOneWayPlatform(t *testing.T) {
	space := physics.NewSpace()
	space.AddSolid(cp.BB{L: -500, B: -20, R: 500, T: 0}, physics.LayerEnvironment)
	plat := space.AddOneWay(cp.BB{L: -50, B: 40, R: 50, T: 44})
	rule := OneWayPlatform{Top: plat.Top(), MaxEntryAngle: 60}
	r := newPlayerRigIn(t, testPlayerConfig(), space, cp.Vector{Y: 10})

	step := func(f input.Frame) {
		plat.SetSolid(rule.Solid(PlayerPlatformActor{P: r.p}))
		r.tick(f)
	}
	settle := func() {
		for i := 0; i < 180 && r.p.State() != StateGrounded; i++ {
			step(idle)
		}
		require.Equal(t, StateGrounded, r.p.State())
	}

	settle()
	require.InDelta(t, 0.0, r.p.Body.BB().B, 1e-9)

	// Jump up through the underside and land on top.
	step(jump)
	require.Equal(t, StateJumping, r.p.State())
	require.False(t, plat.Solid(), "passable from below")
	for i := 0; i < 60 && r.p.State() == StateJumping; i++ {
		step(holdUp)
	}
	require.Greater(t, r.p.Body.BB().B, plat.Top())
	settle()
	require.InDelta(t, plat.Top(), r.p.Body.BB().B, 1e-9)

	for i := 0; i < 30; i++ {
		step(idle)
	}
	require.True(t, plat.Solid())
	require.InDelta(t, plat.Top(), r.p.Body.BB().B, 1e-9, "resting does not sink")

	// Holding down drops through to the floor.
	step(holdDn)
	require.True(t, r.p.DropDown)
	step(holdDn)
	require.False(t, plat.Solid())
	require.Equal(t, StateFalling, r.p.State())
	settle()
	require.InDelta(t, 0.0, r.p.Body.BB().B, 1e-9)
}
