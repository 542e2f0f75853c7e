package common

const (
	BaseWidth  = 640
	BaseHeight = 360

	// TicksPerSecond matches ebiten's default TPS.
	TicksPerSecond = 60
)

// Clock is the timing source read by actors.
type Clock interface {
	// FixedDelta is the duration of one fixed tick in seconds.
	FixedDelta() float64
	// FrameDelta is the duration of the current frame in seconds.
	FrameDelta() float64
	// Now is the monotonic time since start in seconds.
	Now() float64
}

// TickClock is a Clock driven explicitly by the game loop.
type TickClock struct {
	fixed float64
	frame float64
	now   float64
}

func NewTickClock(fixed float64) *TickClock {
	if fixed <= 0 {
		fixed = 1.0 / TicksPerSecond
	}
	return &TickClock{fixed: fixed, frame: fixed}
}

func (c *TickClock) FixedDelta() float64 { return c.fixed }
func (c *TickClock) FrameDelta() float64 { return c.frame }
func (c *TickClock) Now() float64        { return c.now }

// Advance moves time forward by dt and records it as the frame delta.
func (c *TickClock) Advance(dt float64) {
	if dt < 0 {
		return
	}
	c.frame = dt
	c.now += dt
}
