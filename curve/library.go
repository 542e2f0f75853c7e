package curve

import (
	"fmt"
	"io/fs"
	"sort"

	"gopkg.in/yaml.v3"
)

// Library maps curve ids to evaluators.
type Library struct {
	curves map[string]Evaluator
}

func NewLibrary() *Library {
	return &Library{curves: map[string]Evaluator{}}
}

func (l *Library) Register(id string, e Evaluator) {
	l.curves[id] = e
}

// Merge copies every curve of other into l, replacing same ids. Hot reload
// uses it so holders of l see the new curves.
func (l *Library) Merge(other *Library) {
	for id, e := range other.curves {
		l.curves[id] = e
	}
}

func (l *Library) Has(id string) bool {
	_, ok := l.curves[id]
	return ok
}

func (l *Library) IDs() []string {
	ids := make([]string, 0, len(l.curves))
	for id := range l.curves {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Evaluate returns the value of curve id at t, with t clamped to [0,1].
func (l *Library) Evaluate(id string, t float64) (float64, error) {
	e, ok := l.curves[id]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownCurve, id)
	}
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	return e.Evaluate(t), nil
}

// CurveSpec is one entry in curves.yaml. Exactly one of Keys or Script is set.
type CurveSpec struct {
	Keys    []Keyframe `yaml:"keys"`
	Script  string     `yaml:"script"`
	Samples int        `yaml:"samples"`
}

type librarySpec struct {
	Curves map[string]CurveSpec `yaml:"curves"`
}

// LoadLibrary decodes curves.yaml. Script paths are resolved in scripts.
func LoadLibrary(data []byte, scripts fs.FS) (*Library, error) {
	var spec librarySpec
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return nil, fmt.Errorf("curve: decode library: %w", err)
	}

	lib := NewLibrary()
	for id, cs := range spec.Curves {
		e, err := buildCurve(cs, scripts)
		if err != nil {
			return nil, fmt.Errorf("curve %q: %w", id, err)
		}
		lib.Register(id, e)
	}
	return lib, nil
}

func buildCurve(cs CurveSpec, scripts fs.FS) (Evaluator, error) {
	switch {
	case len(cs.Keys) > 0 && cs.Script != "":
		return nil, fmt.Errorf("curve: both keys and script set")
	case len(cs.Keys) > 0:
		return NewKeyframes(cs.Keys...)
	case cs.Script != "":
		if scripts == nil {
			return nil, fmt.Errorf("curve: no script filesystem for %s", cs.Script)
		}
		src, err := fs.ReadFile(scripts, cs.Script)
		if err != nil {
			return nil, err
		}
		return BakeScript(string(src), cs.Samples)
	default:
		return nil, ErrNoKeys
	}
}
