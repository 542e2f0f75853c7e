package curve

import (
	"fmt"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
)

// DefaultScriptSamples is used when a scripted curve does not set a count.
const DefaultScriptSamples = 64

// BakeScript compiles a tengo script once and runs it for every sample point.
// The script reads the float `t` and must assign the float `out`, e.g.
//
//	math := import("math")
//	out = math.sin(t * math.pi / 2)
func BakeScript(src string, samples int) (*Sampled, error) {
	if samples <= 0 {
		samples = DefaultScriptSamples
	}
	if samples < 2 {
		return nil, ErrTooFewSamples
	}

	script := tengo.NewScript([]byte(src))
	_ = script.Add("t", 0.0)
	_ = script.Add("out", 0.0)
	script.SetImports(stdlib.GetModuleMap("math"))

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("curve: compile script: %w", err)
	}

	values := make([]float64, samples)
	for i := range values {
		t := float64(i) / float64(samples-1)
		if err := compiled.Set("t", t); err != nil {
			return nil, fmt.Errorf("curve: set t: %w", err)
		}
		if err := compiled.Run(); err != nil {
			return nil, fmt.Errorf("curve: run script at t=%.3f: %w", t, err)
		}
		values[i] = compiled.Get("out").Float()
	}
	return &Sampled{samples: values}, nil
}
