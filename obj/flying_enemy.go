package obj

import (
	"math"
	"math/rand/v2"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/featherfall/common"
	"github.com/milk9111/featherfall/fsm"
	"github.com/milk9111/featherfall/kinematic"
	"github.com/milk9111/featherfall/logging"
)

const (
	StateIdleGround     = "idle_ground"
	StateIdleAir        = "idle_air"
	StateAlert          = "alert"
	StateFeatherAttack  = "feather_attack"
	StateSwoopingAttack = "swooping_attack"
)

// retargetDistance is how close the crow gets to a patrol point before picking another.
const retargetDistance = 0.25

// CrowConfig is the tuning of the flying enemy.
type CrowConfig struct {
	Speed          float64   `yaml:"speed"`
	ViewDistance   float64   `yaml:"view_distance"`
	AttackInterval float64   `yaml:"attack_interval"`
	PatrolArea     cp.Vector `yaml:"patrol_area"`

	FeatherAmount int     `yaml:"feather_amount"`
	FeatherSpread float64 `yaml:"feather_spread"`

	SwoopOffset     cp.Vector `yaml:"swoop_offset"`
	SwoopWindupTime float64   `yaml:"swoop_windup_time"`
	// SwoopSpeed is in degrees per second.
	SwoopSpeed float64 `yaml:"swoop_speed"`
}

func DefaultCrowConfig() CrowConfig {
	return CrowConfig{
		Speed:           90,
		ViewDistance:    220,
		AttackInterval:  2.5,
		PatrolArea:      cp.Vector{X: 96, Y: 64},
		FeatherAmount:   3,
		FeatherSpread:   30,
		SwoopOffset:     cp.Vector{X: 24, Y: 16},
		SwoopWindupTime: 0.8,
		SwoopSpeed:      180,
	}
}

func (c CrowConfig) Validate() error {
	switch {
	case c.Speed <= 0:
		return &kinematic.ConfigurationError{Field: "speed", Reason: "must be positive"}
	case c.ViewDistance <= 0:
		return &kinematic.ConfigurationError{Field: "view_distance", Reason: "must be positive"}
	case c.AttackInterval < 0:
		return &kinematic.ConfigurationError{Field: "attack_interval", Reason: "must not be negative"}
	case c.FeatherAmount < 0:
		return &kinematic.ConfigurationError{Field: "feather_amount", Reason: "must not be negative"}
	case c.SwoopSpeed <= 0:
		return &kinematic.ConfigurationError{Field: "swoop_speed", Reason: "must be positive"}
	}
	return nil
}

// CrowWorld is what the crow needs from the level around it.
type CrowWorld interface {
	// Target returns the player position, false when there is none.
	Target() (cp.Vector, bool)
	// LineOfSight reports whether no vision blocker lies between a and b.
	LineOfSight(a, b cp.Vector) bool
	// SpawnFeather launches a projectile from pos along heading (degrees, 0 is +X).
	SpawnFeather(pos cp.Vector, heading float64) error
}

// Crow is the flying enemy.
type Crow struct {
	Position   cp.Vector
	FacingLeft bool
	Machine    *fsm.Machine[*Crow]

	cfg   CrowConfig
	world CrowWorld
	clock common.Clock
	rng   *rand.Rand
}

// NewCrow places a crow at pos, perched (IdleGround) or already airborne (IdleAir).
func NewCrow(cfg CrowConfig, pos cp.Vector, airborne bool, world CrowWorld, clock common.Clock, rng *rand.Rand) (*Crow, error) {
	if world == nil {
		return nil, ErrNoTarget
	}
	if clock == nil {
		return nil, &kinematic.ConfigurationError{Field: "clock", Reason: "no clock"}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if rng == nil {
		rng = rand.New(rand.NewPCG(1, 2))
	}
	c := &Crow{Position: pos, cfg: cfg, world: world, clock: clock, rng: rng}
	c.Machine = fsm.New(c)
	if airborne {
		c.transition(&idleAirState{})
	} else {
		c.transition(&idleGroundState{})
	}
	return c, nil
}

func (c *Crow) Config() CrowConfig { return c.cfg }

func (c *Crow) SetConfig(cfg CrowConfig) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	c.cfg = cfg
	return nil
}

func (c *Crow) State() string { return c.Machine.Current().Name() }

// Update runs the active state on frame time.
func (c *Crow) Update() {
	c.Machine.Update()
}

func (c *Crow) transition(s fsm.State[*Crow]) {
	if err := c.Machine.Transition(s); err != nil {
		logging.L().Error("crow transition", "to", s.Name(), "err", err)
	}
}

// CanSeePlayer is true when the player is within view distance and nothing
// blocks the straight line to it.
func (c *Crow) CanSeePlayer() bool {
	target, ok := c.world.Target()
	if !ok {
		return false
	}
	if c.Position.Distance(target) >= c.cfg.ViewDistance {
		return false
	}
	return c.world.LineOfSight(c.Position, target)
}

// moveTowards steps toward target by at most Speed*dt.
func (c *Crow) moveTowards(target cp.Vector) {
	c.Position = common.MoveTowards(c.Position, target, c.cfg.Speed*c.clock.FrameDelta())
}

func (c *Crow) facePlayer(target cp.Vector) {
	c.FacingLeft = !(c.Position.X < target.X)
}

type idleGroundState struct{ fsm.Base[*Crow] }

func (*idleGroundState) Name() string { return StateIdleGround }

func (*idleGroundState) Update(c *Crow) {
	if c.CanSeePlayer() {
		c.transition(&alertState{})
	}
}

// idleAirState wanders between random points around where it started.
type idleAirState struct {
	fsm.Base[*Crow]
	center cp.Vector
	target cp.Vector
}

func (*idleAirState) Name() string { return StateIdleAir }

func (s *idleAirState) Enter(c *Crow) {
	s.center = c.Position
	s.retarget(c)
}

func (s *idleAirState) retarget(c *Crow) {
	r := c.cfg.PatrolArea.X + c.cfg.PatrolArea.Y
	s.target = s.center.Add(common.InsideUnitCircle(c.rng).Mult(r))
}

func (s *idleAirState) Update(c *Crow) {
	c.FacingLeft = s.target.X-c.Position.X < 0

	dt := c.clock.FrameDelta()
	c.moveTowards(common.LerpVector(c.Position, s.target, c.cfg.Speed/2*dt))
	if c.Position.Distance(s.target) < retargetDistance {
		s.retarget(c)
	}

	if c.CanSeePlayer() {
		c.transition(&alertState{})
	}
}

// alertState hovers above the player inside the patrol box until the next attack.
type alertState struct {
	fsm.Base[*Crow]
	attackAt   float64
	preferredX float64
}

func (*alertState) Name() string { return StateAlert }

func (s *alertState) Enter(c *Crow) {
	s.attackAt = c.clock.Now() + c.cfg.AttackInterval
	half := c.cfg.PatrolArea.X / 2
	s.preferredX = c.Position.X + common.RandRange(c.rng, -half, half)
}

func (s *alertState) Update(c *Crow) {
	if !c.CanSeePlayer() {
		c.transition(&idleAirState{})
		return
	}

	player, _ := c.world.Target()
	c.facePlayer(player)

	half := c.cfg.PatrolArea.X / 2
	target := cp.Vector{
		X: common.Clamp(s.preferredX, player.X-half, player.X+half),
		Y: player.Y + c.cfg.PatrolArea.Y,
	}
	dt := c.clock.FrameDelta()
	c.moveTowards(common.LerpVector(c.Position, target, c.cfg.Speed*dt))
	if math.Abs(player.X-s.preferredX) > half {
		s.preferredX = c.Position.X
	}

	if s.attackAt <= c.clock.Now() {
		if c.rng.IntN(2) == 0 {
			c.transition(&featherAttackState{})
		} else {
			c.transition(&swoopingAttackState{})
		}
	}
}

// FeatherHeadings returns one heading per feather, in degrees, fanned evenly
// across spread around aim. A single feather flies straight at aim.
func FeatherHeadings(aim float64, amount int, spread float64) []float64 {
	out := make([]float64, amount)
	for i := range out {
		out[i] = aim
		if amount > 1 {
			factor := -1 + float64(i)/float64(amount-1)*2
			out[i] += spread / 2 * factor
		}
	}
	return out
}

type featherAttackState struct{ fsm.Base[*Crow] }

func (*featherAttackState) Name() string { return StateFeatherAttack }

func (*featherAttackState) Enter(c *Crow) {
	if player, ok := c.world.Target(); ok {
		dir := player.Sub(c.Position)
		aim := common.Rad2Deg(math.Atan2(dir.Y, dir.X))
		for _, h := range FeatherHeadings(aim, c.cfg.FeatherAmount, c.cfg.FeatherSpread) {
			if err := c.world.SpawnFeather(c.Position, h); err != nil {
				logging.L().Warn("spawn feather", "err", err)
			}
		}
	}
	c.transition(&alertState{})
}

// swoopingAttackState winds up beside the player and then sweeps half an
// ellipse through the player's position.
type swoopingAttackState struct {
	fsm.Base[*Crow]
	windupUntil float64
	windup      cp.Vector

	started   bool
	angle     float64
	direction float64
	size      cp.Vector
	center    cp.Vector
}

func (*swoopingAttackState) Name() string { return StateSwoopingAttack }

func (s *swoopingAttackState) Enter(c *Crow) {
	s.windupUntil = c.clock.Now() + c.cfg.SwoopWindupTime
	x := c.cfg.PatrolArea.X/2 + c.cfg.SwoopOffset.X
	if !c.FacingLeft {
		x = -x
	}
	s.windup = cp.Vector{X: x, Y: c.cfg.PatrolArea.Y + c.cfg.SwoopOffset.Y}
}

func (s *swoopingAttackState) Update(c *Crow) {
	player, ok := c.world.Target()
	if !ok {
		c.transition(&idleAirState{})
		return
	}
	dt := c.clock.FrameDelta()

	if s.windupUntil > c.clock.Now() {
		c.moveTowards(common.LerpVector(c.Position, player.Add(s.windup), c.cfg.Speed*dt))
		return
	}

	if !s.started {
		rel := player.Sub(c.Position)
		s.size = cp.Vector{X: math.Abs(rel.X), Y: math.Abs(rel.Y)}
		s.center = cp.Vector{X: player.X, Y: c.Position.Y}
		if rel.X >= 0 {
			s.angle, s.direction = 180, 1
		} else {
			s.angle, s.direction = 0, -1
		}
		s.started = true
	}

	s.angle += c.cfg.SwoopSpeed * dt * s.direction
	rad := common.Deg2Rad(s.angle)
	c.Position = s.center.Add(cp.Vector{X: math.Cos(rad) * s.size.X, Y: math.Sin(rad) * s.size.Y})

	if c.Position.Y >= s.center.Y {
		c.transition(&alertState{})
	}
}
