// Package curve evaluates authored easing curves: time fraction in, value out.
package curve

import (
	"errors"
	"fmt"
	"sort"
)

var (
	ErrUnknownCurve  = errors.New("curve: unknown curve")
	ErrNoKeys        = errors.New("curve: no keyframes")
	ErrTooFewSamples = errors.New("curve: need at least two samples")
)

// Evaluator maps t in [0,1] to a value.
type Evaluator interface {
	Evaluate(t float64) float64
}

// Keyframe is one authored key. Tangents are slopes (value per unit time).
type Keyframe struct {
	Time       float64 `yaml:"time"`
	Value      float64 `yaml:"value"`
	InTangent  float64 `yaml:"in"`
	OutTangent float64 `yaml:"out"`
}

// Keyframes interpolates between keys with cubic Hermite segments and holds
// the first/last value outside the key range.
type Keyframes struct {
	keys []Keyframe
}

func NewKeyframes(keys ...Keyframe) (*Keyframes, error) {
	if len(keys) == 0 {
		return nil, ErrNoKeys
	}
	sorted := append([]Keyframe(nil), keys...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Time < sorted[j].Time })
	for i := 1; i < len(sorted); i++ {
		if sorted[i].Time == sorted[i-1].Time {
			return nil, fmt.Errorf("curve: duplicate key time %v", sorted[i].Time)
		}
	}
	return &Keyframes{keys: sorted}, nil
}

func (k *Keyframes) Evaluate(t float64) float64 {
	keys := k.keys
	if t <= keys[0].Time {
		return keys[0].Value
	}
	last := keys[len(keys)-1]
	if t >= last.Time {
		return last.Value
	}
	i := sort.Search(len(keys), func(i int) bool { return keys[i].Time > t }) - 1
	a, b := keys[i], keys[i+1]
	dt := b.Time - a.Time
	s := (t - a.Time) / dt
	s2 := s * s
	s3 := s2 * s
	h00 := 2*s3 - 3*s2 + 1
	h10 := s3 - 2*s2 + s
	h01 := -2*s3 + 3*s2
	h11 := s3 - s2
	return h00*a.Value + h10*dt*a.OutTangent + h01*b.Value + h11*dt*b.InTangent
}

// Sampled holds evenly spaced samples over [0,1] and interpolates linearly.
type Sampled struct {
	samples []float64
}

func NewSampled(samples []float64) (*Sampled, error) {
	if len(samples) < 2 {
		return nil, ErrTooFewSamples
	}
	return &Sampled{samples: append([]float64(nil), samples...)}, nil
}

// Sample bakes any evaluator into n evenly spaced samples.
func Sample(e Evaluator, n int) (*Sampled, error) {
	if n < 2 {
		return nil, ErrTooFewSamples
	}
	out := make([]float64, n)
	for i := range out {
		out[i] = e.Evaluate(float64(i) / float64(n-1))
	}
	return &Sampled{samples: out}, nil
}

func (s *Sampled) Evaluate(t float64) float64 {
	if t <= 0 {
		return s.samples[0]
	}
	n := len(s.samples)
	if t >= 1 {
		return s.samples[n-1]
	}
	pos := t * float64(n-1)
	i := int(pos)
	frac := pos - float64(i)
	return s.samples[i] + (s.samples[i+1]-s.samples[i])*frac
}

// Linear is the identity ramp, used when no curve is authored.
type Linear struct{}

func (Linear) Evaluate(t float64) float64 {
	if t < 0 {
		return 0
	}
	if t > 1 {
		return 1
	}
	return t
}
