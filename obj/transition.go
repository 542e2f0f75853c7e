package obj

// Fade is a resumable fade from black. It is advanced once per frame by its
// owner and simply stops being resumed when the owner goes away.
type Fade struct {
	alpha    float64
	duration float64
}

// NewFade starts fully opaque. A non-positive duration finishes on the first step.
func NewFade(duration float64) *Fade {
	return &Fade{alpha: 1, duration: duration}
}

func (f *Fade) Alpha() float64 { return f.alpha }

func (f *Fade) Done() bool { return f.alpha <= 0 }

// Step lowers alpha by dt/duration and reports whether the fade has finished.
func (f *Fade) Step(dt float64) bool {
	if f.alpha <= 0 {
		return true
	}
	if f.duration <= 0 {
		f.alpha = 0
		return true
	}
	f.alpha -= dt / f.duration
	if f.alpha < 0 {
		f.alpha = 0
	}
	return f.alpha <= 0
}
