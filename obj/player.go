package obj

import (
	"fmt"
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/featherfall/common"
	"github.com/milk9111/featherfall/fsm"
	"github.com/milk9111/featherfall/input"
	"github.com/milk9111/featherfall/kinematic"
	"github.com/milk9111/featherfall/logging"
)

const (
	StateGrounded = "grounded"
	StateJumping  = "jumping"
	StateFalling  = "falling"
)

// CurveEvaluator maps a time fraction to a height fraction for a named curve.
type CurveEvaluator interface {
	Evaluate(id string, t float64) (float64, error)
}

// PlayerConfig is the movement tuning of the player.
type PlayerConfig struct {
	Speed            float64 `yaml:"speed"`
	Gravity          float64 `yaml:"gravity"`
	TerminalVelocity float64 `yaml:"terminal_velocity"`

	JumpHeight       float64 `yaml:"jump_height"`
	DoubleJumpHeight float64 `yaml:"double_jump_height"`
	JumpTime         float64 `yaml:"jump_time"`
	JumpDecayScale   float64 `yaml:"jump_decay_scale"`
	JumpCurve        string  `yaml:"jump_curve"`

	// Run windup is disabled when RunWindupScale is 0.
	RunWindupScale float64 `yaml:"run_windup_scale"`
	RunDecayScale  float64 `yaml:"run_decay_scale"`
	DirChangeScale float64 `yaml:"dir_change_scale"`

	Attack AttackConfig `yaml:"attack"`
}

// AttackConfig describes the light attack hitbox.
type AttackConfig struct {
	Offset   cp.Vector `yaml:"offset"`
	Size     cp.Vector `yaml:"size"`
	Damage   int       `yaml:"damage"`
	Duration float64   `yaml:"duration"`
}

func DefaultPlayerConfig() PlayerConfig {
	return PlayerConfig{
		Speed:            140,
		Gravity:          900,
		TerminalVelocity: 420,
		JumpHeight:       56,
		DoubleJumpHeight: 36,
		JumpTime:         0.4,
		JumpDecayScale:   0.5,
		JumpCurve:        "jump",
		DirChangeScale:   1,
		Attack: AttackConfig{
			Offset:   cp.Vector{X: 14, Y: 0},
			Size:     cp.Vector{X: 18, Y: 16},
			Damage:   1,
			Duration: 0.9,
		},
	}
}

// Validate reports the first field that cannot drive a player.
func (c PlayerConfig) Validate() error {
	switch {
	case c.Speed < 0:
		return &kinematic.ConfigurationError{Field: "speed", Reason: "must not be negative"}
	case c.Gravity <= 0:
		return &kinematic.ConfigurationError{Field: "gravity", Reason: "must be positive"}
	case c.TerminalVelocity <= 0:
		return &kinematic.ConfigurationError{Field: "terminal_velocity", Reason: "must be positive"}
	case c.JumpHeight <= 0:
		return &kinematic.ConfigurationError{Field: "jump_height", Reason: "must be positive"}
	case c.DoubleJumpHeight < 0:
		return &kinematic.ConfigurationError{Field: "double_jump_height", Reason: "must not be negative"}
	case c.JumpTime <= 0:
		return &kinematic.ConfigurationError{Field: "jump_time", Reason: "must be positive"}
	case c.JumpCurve == "":
		return &kinematic.ConfigurationError{Field: "jump_curve", Reason: "no curve id"}
	case c.Attack.Duration < 0:
		return &kinematic.ConfigurationError{Field: "attack.duration", Reason: "must not be negative"}
	}
	return nil
}

// AttackRequest is emitted when the player attacks; the world turns it into a
// hitbox that follows the player.
type AttackRequest struct {
	Offset   cp.Vector
	Size     cp.Vector
	Damage   int
	Duration float64
}

// Player is the kinematic player controller.
type Player struct {
	Body    *kinematic.Body
	Machine *fsm.Machine[*Player]

	cfg    PlayerConfig
	input  input.Source
	curves CurveEvaluator
	clock  common.Clock

	frame input.Frame

	// HasDoubleJumped is set when the air jump is used and cleared on landing.
	HasDoubleJumped bool
	// DropDown is true while the player holds down on the ground.
	DropDown   bool
	FacingLeft bool

	windup float64
	lastX  float64

	attackTimer float64
	attacks     []AttackRequest
}

// NewPlayer wires a player to its collaborators and enters the falling state.
func NewPlayer(cfg PlayerConfig, body *kinematic.Body, src input.Source, curves CurveEvaluator, clock common.Clock) (*Player, error) {
	if body == nil {
		return nil, &kinematic.ConfigurationError{Field: "body", Reason: "no kinematic body"}
	}
	if src == nil {
		return nil, &kinematic.ConfigurationError{Field: "input", Reason: "no input source"}
	}
	if curves == nil {
		return nil, &kinematic.ConfigurationError{Field: "curves", Reason: "no curve evaluator"}
	}
	if clock == nil {
		return nil, &kinematic.ConfigurationError{Field: "clock", Reason: "no clock"}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if _, err := curves.Evaluate(cfg.JumpCurve, 0); err != nil {
		return nil, fmt.Errorf("player: jump curve: %w", err)
	}

	p := &Player{
		Body:   body,
		cfg:    cfg,
		input:  src,
		curves: curves,
		clock:  clock,
	}
	p.Machine = fsm.New(p)
	p.transition(&fallingState{})
	return p, nil
}

func (p *Player) Config() PlayerConfig { return p.cfg }

// SetConfig swaps the tuning, used by prefab hot reload. The active state keeps
// the jump parameters it entered with.
func (p *Player) SetConfig(cfg PlayerConfig) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	if _, err := p.curves.Evaluate(cfg.JumpCurve, 0); err != nil {
		return fmt.Errorf("player: jump curve: %w", err)
	}
	p.cfg = cfg
	return nil
}

// Frame is the input read at the start of the current tick.
func (p *Player) Frame() input.Frame { return p.frame }

func (p *Player) State() string { return p.Machine.Current().Name() }

// FixedUpdate polls input, runs the active state and then resolves movement.
func (p *Player) FixedUpdate() cp.Vector {
	dt := p.clock.FixedDelta()
	p.frame = p.input.Poll()

	if p.frame.Horizontal != 0 {
		p.FacingLeft = p.frame.Horizontal < 0
	}
	p.updateAttack(dt)

	p.Machine.FixedUpdate()
	return p.Body.Step(dt)
}

// TakeAttacks drains attacks requested since the last call.
func (p *Player) TakeAttacks() []AttackRequest {
	out := p.attacks
	p.attacks = nil
	return out
}

func (p *Player) updateAttack(dt float64) {
	if p.attackTimer > 0 {
		p.attackTimer -= dt
	}
	if !p.frame.JustPressed(input.ButtonAttack) || p.attackTimer > 0 {
		return
	}
	a := p.cfg.Attack
	offset := a.Offset
	if p.FacingLeft {
		offset = offset.Neg()
	}
	p.attacks = append(p.attacks, AttackRequest{
		Offset:   offset,
		Size:     a.Size,
		Damage:   a.Damage,
		Duration: a.Duration,
	})
	p.attackTimer = a.Duration
}

func (p *Player) transition(s fsm.State[*Player]) {
	if err := p.Machine.Transition(s); err != nil {
		logging.L().Error("player transition", "to", s.Name(), "err", err)
	}
}

// run sets the horizontal velocity from input, through the windup when enabled.
func (p *Player) run() {
	x := p.frame.Horizontal
	if p.cfg.RunWindupScale == 0 {
		p.Body.Velocity.X = x * p.cfg.Speed
		return
	}

	if x != 0 {
		// Turning around keeps only part of the built-up windup.
		if p.lastX != 0 && common.Sign(x) != common.Sign(p.lastX) {
			p.windup *= p.cfg.DirChangeScale
		}
		p.lastX = x
		p.windup += math.Abs(x) * p.cfg.RunWindupScale
	} else {
		p.windup -= p.cfg.RunDecayScale
	}
	p.windup = common.Clamp01(p.windup)
	if p.windup == 0 {
		p.lastX = 0
	}
	p.Body.Velocity.X = p.lastX * p.windup * p.cfg.Speed
}

// jumpPressed is a rising edge on the vertical axis.
func (p *Player) jumpPressed(previous float64) bool {
	v := p.frame.Vertical
	return v > 0 && v > previous
}

type groundedState struct {
	fsm.Base[*Player]
	previousVertical float64
}

func (*groundedState) Name() string { return StateGrounded }

func (s *groundedState) Enter(p *Player) {
	p.Body.Velocity.Y = 0
	s.previousVertical = p.frame.Vertical
}

func (s *groundedState) FixedUpdate(p *Player) {
	p.run()

	if !p.Body.Grounded() {
		p.transition(&fallingState{})
	}
	if !p.Body.HitsCeiling() && p.jumpPressed(s.previousVertical) {
		p.transition(&jumpingState{})
	}
	p.DropDown = p.frame.Vertical < 0
	s.previousVertical = p.frame.Vertical
}

// jumpingState drives the rise from the jump curve: each tick the velocity is
// the height gained since the last tick divided by dt.
type jumpingState struct {
	fsm.Base[*Player]
	maxHeight float64
	duration  float64
	elapsed   float64
	height    float64
}

func (*jumpingState) Name() string { return StateJumping }

func (s *jumpingState) Enter(p *Player) {
	s.maxHeight = p.cfg.JumpHeight
	s.duration = p.cfg.JumpTime
	if p.HasDoubleJumped {
		s.maxHeight = p.cfg.DoubleJumpHeight
		s.duration = p.cfg.JumpTime * p.cfg.DoubleJumpHeight / p.cfg.JumpHeight
	}
	s.elapsed = 0
	s.height = 0
	s.advance(p)
}

func (s *jumpingState) FixedUpdate(p *Player) {
	p.run()

	if p.Body.HitsCeiling() {
		p.Body.Velocity.Y = 0
		p.transition(&fallingState{})
	}
	if p.frame.Vertical <= 0 || s.elapsed >= s.duration {
		if s.elapsed < s.duration {
			p.Body.Velocity.Y *= p.cfg.JumpDecayScale
		} else {
			p.Body.Velocity.Y = 0
		}
		p.transition(&fallingState{})
	}

	if p.Machine.Current() == fsm.State[*Player](s) {
		s.advance(p)
	}
}

// OnTrigger cuts the rise short when the player is hit mid-jump.
func (s *jumpingState) OnTrigger(p *Player, c fsm.Contact) {
	p.Body.Velocity.Y *= p.cfg.JumpDecayScale
	p.transition(&fallingState{})
}

func (s *jumpingState) advance(p *Player) {
	dt := p.clock.FixedDelta()
	if s.duration <= 0 || dt <= 0 {
		p.Body.Velocity.Y = 0
		return
	}
	s.elapsed += dt
	frac, err := p.curves.Evaluate(p.cfg.JumpCurve, s.elapsed/s.duration)
	if err != nil {
		logging.L().Warn("jump curve", "curve", p.cfg.JumpCurve, "err", err)
		s.elapsed = s.duration
		p.Body.Velocity.Y = 0
		return
	}
	h := frac * s.maxHeight
	p.Body.Velocity.Y = (h - s.height) / dt
	s.height = h
}

type fallingState struct {
	fsm.Base[*Player]
	previousVertical float64
}

func (*fallingState) Name() string { return StateFalling }

func (s *fallingState) Enter(p *Player) {
	s.previousVertical = p.frame.Vertical
}

func (s *fallingState) FixedUpdate(p *Player) {
	p.run()

	p.Body.Velocity.Y -= p.cfg.Gravity * p.clock.FixedDelta()
	if p.Body.HitsCeiling() && p.Body.Velocity.Y > 0 {
		p.Body.Velocity.Y = 0
	}
	if p.Body.Velocity.Y < -p.cfg.TerminalVelocity {
		p.Body.Velocity.Y = -p.cfg.TerminalVelocity
	}

	if !p.HasDoubleJumped && !p.Body.HitsCeiling() && p.DoubleJumpEnabled() {
		if p.jumpPressed(s.previousVertical) {
			p.HasDoubleJumped = true
			p.transition(&jumpingState{})
		}
	}

	if p.Body.Grounded() {
		// Grounded tests ahead of the body; settle onto the floor.
		p.Body.MoveVertical(-p.Body.Config().TestingDistance)
		p.HasDoubleJumped = false
		p.transition(&groundedState{})
	}
	s.previousVertical = p.frame.Vertical
}

// DoubleJumpEnabled is false when the tuning has no air jump height.
func (p *Player) DoubleJumpEnabled() bool { return p.cfg.DoubleJumpHeight > 0 }
