package kinematic

import (
	"fmt"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/featherfall/physics"
)

const (
	MinRays = 2
	MaxRays = 15
)

// ConfigurationError reports a tuning value or collaborator that makes the
// resolver unusable. It is returned at construction, never at runtime.
type ConfigurationError struct {
	Field  string
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("kinematic: invalid %s: %s", e.Field, e.Reason)
}

func configErr(field, format string, args ...any) error {
	return &ConfigurationError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

// Config tunes the ray batches and slope handling of a Body.
type Config struct {
	HorizontalRays int `yaml:"horizontal_rays"`
	VerticalRays   int `yaml:"vertical_rays"`

	// Skin is how far inside the box rays start.
	Skin float64 `yaml:"skin"`
	// Tolerance shrinks the ray fan so rays do not graze perpendicular surfaces.
	Tolerance float64 `yaml:"tolerance"`

	// TestingDistance is the reach of Grounded and HitsCeiling.
	TestingDistance float64 `yaml:"testing_distance"`

	// MaxSlopeAngle is in degrees from straight up.
	MaxSlopeAngle        float64 `yaml:"max_slope_angle"`
	MaxSlopeSnapDistance float64 `yaml:"max_slope_snap_distance"`
	// SlopeNormalization slows walking up steep slopes by cos(angle).
	SlopeNormalization bool `yaml:"slope_normalization"`

	Mask physics.Layer `yaml:"-"`
}

func DefaultConfig() Config {
	return Config{
		HorizontalRays:       4,
		VerticalRays:         4,
		Skin:                 0.5,
		Tolerance:            1,
		TestingDistance:      1,
		MaxSlopeAngle:        50,
		MaxSlopeSnapDistance: 6,
		SlopeNormalization:   true,
		Mask:                 physics.MaskMovement,
	}
}

// Validate checks c against a collider of the given full size.
func (c Config) Validate(size cp.Vector) error {
	switch {
	case c.HorizontalRays < MinRays || c.HorizontalRays > MaxRays:
		return configErr("horizontal_rays", "%d outside [%d,%d]", c.HorizontalRays, MinRays, MaxRays)
	case c.VerticalRays < MinRays || c.VerticalRays > MaxRays:
		return configErr("vertical_rays", "%d outside [%d,%d]", c.VerticalRays, MinRays, MaxRays)
	case size.X <= 0 || size.Y <= 0:
		return configErr("bounds", "collider size %v must be positive", size)
	case c.Skin < 0:
		return configErr("skin", "must not be negative")
	case c.Skin*2 >= size.X || c.Skin*2 >= size.Y:
		return configErr("skin", "%v too deep for collider %v", c.Skin, size)
	case c.Tolerance < 0:
		return configErr("tolerance", "must not be negative")
	case c.Tolerance >= size.X || c.Tolerance >= size.Y:
		return configErr("tolerance", "%v leaves no room for rays on collider %v", c.Tolerance, size)
	case c.TestingDistance <= 0:
		return configErr("testing_distance", "must be positive")
	case c.MaxSlopeAngle < 0 || c.MaxSlopeAngle > 90:
		return configErr("max_slope_angle", "%v outside [0,90]", c.MaxSlopeAngle)
	case c.MaxSlopeSnapDistance < 0:
		return configErr("max_slope_snap_distance", "must not be negative")
	case c.Mask == physics.LayerNone:
		return configErr("mask", "empty layer mask")
	}
	return nil
}
