package kinematic

import (
	"errors"
	"math"
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/featherfall/common"
	"github.com/milk9111/featherfall/physics"
	"github.com/stretchr/testify/require"
)

type ray struct {
	origin cp.Vector
	dir    cp.Vector
	length float64
}

// fakeCaster records every ray and answers with fn, or misses when fn is nil.
type fakeCaster struct {
	rays []ray
	fn   func(r ray) (physics.Hit, bool)
}

func (f *fakeCaster) CastRay(origin, dir cp.Vector, maxDistance float64, _ physics.Layer) (physics.Hit, bool) {
	r := ray{origin: origin, dir: dir, length: maxDistance}
	f.rays = append(f.rays, r)
	if f.fn == nil {
		return physics.Hit{}, false
	}
	return f.fn(r)
}

func testConfig() Config {
	cfg := DefaultConfig()
	cfg.HorizontalRays = 3
	cfg.VerticalRays = 3
	cfg.Skin = 0.5
	cfg.Tolerance = 1
	cfg.TestingDistance = 1
	cfg.MaxSlopeAngle = 50
	cfg.MaxSlopeSnapDistance = 6
	cfg.SlopeNormalization = true
	return cfg
}

func box(center cp.Vector) StaticBounds {
	return StaticBounds{Center: center, Extents: cp.Vector{X: 5, Y: 10}}
}

func newTestBody(t *testing.T, caster physics.RayCaster, center cp.Vector) *Body {
	t.Helper()
	b, err := NewBody(testConfig(), caster, box(center))
	require.NoError(t, err)
	return b
}

func TestConfigValidate(t *testing.T) {
	size := cp.Vector{X: 10, Y: 20}
	cases := []struct {
		name  string
		mut   func(c *Config)
		field string
	}{
		{"ok", func(c *Config) {}, ""},
		{"too_few_rays", func(c *Config) { c.HorizontalRays = 1 }, "horizontal_rays"},
		{"too_many_rays", func(c *Config) { c.VerticalRays = 16 }, "vertical_rays"},
		{"negative_skin", func(c *Config) { c.Skin = -1 }, "skin"},
		{"wide_tolerance", func(c *Config) { c.Tolerance = 10 }, "tolerance"},
		{"no_testing", func(c *Config) { c.TestingDistance = 0 }, "testing_distance"},
		{"slope", func(c *Config) { c.MaxSlopeAngle = 91 }, "max_slope_angle"},
		{"mask", func(c *Config) { c.Mask = physics.LayerNone }, "mask"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			cfg := testConfig()
			c.mut(&cfg)
			err := cfg.Validate(size)
			if c.field == "" {
				require.NoError(t, err)
				return
			}
			var ce *ConfigurationError
			require.True(t, errors.As(err, &ce), "expected ConfigurationError, got %v", err)
			require.Equal(t, c.field, ce.Field)
		})
	}
}

func TestNewBodyRequiresCollaborators(t *testing.T) {
	var ce *ConfigurationError
	_, err := NewBody(testConfig(), nil, box(cp.Vector{}))
	require.ErrorAs(t, err, &ce)
	_, err = NewBody(testConfig(), &fakeCaster{}, nil)
	require.ErrorAs(t, err, &ce)
}

func TestZeroDistanceIssuesNoRays(t *testing.T) {
	f := &fakeCaster{fn: func(ray) (physics.Hit, bool) { return physics.Hit{Distance: 1}, true }}
	b := newTestBody(t, f, cp.Vector{})

	h := b.CastHorizontal(0)
	v := b.CastVertical(0)
	require.Len(t, h, 3)
	require.Len(t, v, 3)
	for _, r := range append(h, v...) {
		require.False(t, r.Hit)
	}
	require.Empty(t, f.rays)
}

func TestNearest(t *testing.T) {
	hit := func(d float64) RaycastResult { return RaycastResult{Hit: true, Distance: d} }
	miss := RaycastResult{}
	cases := []struct {
		name string
		in   []RaycastResult
		want int
	}{
		{"all_miss", []RaycastResult{miss, miss, miss}, -1},
		{"single", []RaycastResult{miss, hit(2), miss}, 1},
		{"shortest", []RaycastResult{hit(3), hit(1), hit(2)}, 1},
		{"tie_first_wins", []RaycastResult{hit(2), hit(1), hit(1)}, 1},
		{"miss_never_beats_hit", []RaycastResult{hit(5), miss, miss}, 0},
		{"miss_zero_distance_ignored", []RaycastResult{miss, hit(4)}, 1},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			require.Equal(t, c.want, Nearest(c.in))
		})
	}
}

func TestCastHorizontalFan(t *testing.T) {
	f := &fakeCaster{}
	b := newTestBody(t, f, cp.Vector{X: 0, Y: 10})

	b.CastHorizontal(4)
	require.Len(t, f.rays, 3)
	wantY := []float64{0.5, 10, 19.5}
	for i, r := range f.rays {
		require.InDelta(t, 4.5, r.origin.X, 1e-12)
		require.InDelta(t, wantY[i], r.origin.Y, 1e-12)
		require.Equal(t, cp.Vector{X: 1}, r.dir)
		require.InDelta(t, 4.5, r.length, 1e-12)
	}

	f.rays = nil
	b.CastVertical(-2)
	wantX := []float64{-4.5, 0, 4.5}
	for i, r := range f.rays {
		require.InDelta(t, wantX[i], r.origin.X, 1e-12)
		require.InDelta(t, 0.5, r.origin.Y, 1e-12)
		require.Equal(t, cp.Vector{Y: -1}, r.dir)
		require.InDelta(t, 2.5, r.length, 1e-12)
	}
}

func slopeNormal(deg float64) cp.Vector {
	rad := common.Deg2Rad(deg)
	return cp.Vector{X: -math.Sin(rad), Y: math.Cos(rad)}
}

func TestUpwardSlopeGating(t *testing.T) {
	const vx, dt = 120.0, 0.5
	cases := []struct {
		name      string
		angle     float64
		vy        float64
		normalize bool
		want      float64
	}{
		{"gentle", 30, 0, true, math.Tan(common.Deg2Rad(30)) * vx * dt * math.Cos(common.Deg2Rad(30))},
		{"gentle_raw", 30, 0, false, math.Tan(common.Deg2Rad(30)) * vx * dt},
		{"at_max", 50, 0, true, 0},
		{"too_steep", 60, 0, true, 0},
		{"wall", 90, 0, true, 0},
		{"airborne", 30, -1, true, 0},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			b := newTestBody(t, &fakeCaster{}, cp.Vector{})
			b.cfg.SlopeNormalization = c.normalize
			b.Velocity = cp.Vector{X: vx, Y: c.vy}
			b.dt = dt
			if c.name == "at_max" {
				b.cfg.MaxSlopeAngle = common.AngleFromUp(slopeNormal(c.angle))
			}

			applied := b.UpwardSlope(RaycastResult{Hit: true, Normal: slopeNormal(c.angle)})
			require.Equal(t, c.want != 0, applied)
			require.InDelta(t, c.want, b.Position.Y, 1e-9)
		})
	}
}

func TestMoveVerticalClampsToNearestHit(t *testing.T) {
	// Floor at y=0 under the middle ray only, higher step at y=2 under the last.
	f := &fakeCaster{fn: func(r ray) (physics.Hit, bool) {
		switch {
		case r.origin.X == 0:
			return physics.Hit{Distance: r.origin.Y, Point: cp.Vector{X: 0, Y: 0}}, r.length >= r.origin.Y
		case r.origin.X > 4:
			d := r.origin.Y - 2
			return physics.Hit{Distance: d, Point: cp.Vector{X: r.origin.X, Y: 2}}, r.length >= d
		}
		return physics.Hit{}, false
	}}
	b := newTestBody(t, f, cp.Vector{X: 0, Y: 15})

	b.MoveVertical(-20)
	require.InDelta(t, 12.0, b.Position.Y, 1e-12)
	require.True(t, b.Grounded())
}

func TestStepWithoutGeometryTranslatesFreely(t *testing.T) {
	b := newTestBody(t, &fakeCaster{}, cp.Vector{})
	b.Velocity = cp.Vector{X: 60, Y: -30}
	d := b.Step(0.5)
	require.Equal(t, cp.Vector{X: 30, Y: -15}, d)
	require.False(t, b.PreviouslyGrounded())
}

func TestBodyOffset(t *testing.T) {
	b, err := NewBody(testConfig(), &fakeCaster{}, StaticBounds{
		Center:  cp.Vector{X: 10, Y: 12},
		Extents: cp.Vector{X: 5, Y: 10},
		Offset:  cp.Vector{X: 0, Y: 2},
	})
	require.NoError(t, err)
	require.Equal(t, cp.Vector{X: 10, Y: 10}, b.Position)
	require.Equal(t, cp.BB{L: 5, B: 2, R: 15, T: 22}, b.BB())
}
