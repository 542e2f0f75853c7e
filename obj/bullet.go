package obj

import (
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/featherfall/common"
)

// ProjectileConfig is the tuning of a straight-flying projectile such as a feather.
type ProjectileConfig struct {
	Speed    float64   `yaml:"speed"`
	Lifetime float64   `yaml:"lifetime"`
	Damage   int       `yaml:"damage"`
	Size     cp.Vector `yaml:"size"`
	Tags     []string  `yaml:"tags"`
}

func DefaultFeatherConfig() ProjectileConfig {
	return ProjectileConfig{
		Speed:    160,
		Lifetime: 3,
		Damage:   1,
		Size:     cp.Vector{X: 6, Y: 6},
		Tags:     []string{"player"},
	}
}

// Projectile flies along Heading (degrees, 0 is +X) until its lifetime ends.
type Projectile struct {
	Position cp.Vector
	Heading  float64
	Speed    float64

	age      float64
	lifetime float64
}

func NewProjectile(cfg ProjectileConfig, pos cp.Vector, heading float64) *Projectile {
	return &Projectile{Position: pos, Heading: heading, Speed: cfg.Speed, lifetime: cfg.Lifetime}
}

// Direction is the unit vector of Heading.
func (p *Projectile) Direction() cp.Vector {
	rad := common.Deg2Rad(p.Heading)
	return cp.Vector{X: math.Cos(rad), Y: math.Sin(rad)}
}

// Rotation is the sprite rotation in degrees; sprites point up at rotation 0.
func (p *Projectile) Rotation() float64 { return p.Heading - 90 }

// Step moves the projectile and reports whether it is still alive.
func (p *Projectile) Step(dt float64) bool {
	p.Position = p.Position.Add(p.Direction().Mult(p.Speed * dt))
	p.age += dt
	return p.age < p.lifetime
}
