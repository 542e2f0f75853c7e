package prefabs

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// PlacementProps are the per-placement overrides a level may attach to an
// entity in its props map.
type PlacementProps struct {
	Airborne bool `yaml:"airborne"`
	// Health overrides the prefab health when positive.
	Health int `yaml:"health"`
}

// DecodeProps re-encodes a loosely typed props map into T.
func DecodeProps[T any](raw map[string]any) (T, error) {
	var out T
	if len(raw) == 0 {
		return out, nil
	}
	b, err := yaml.Marshal(raw)
	if err != nil {
		return out, fmt.Errorf("prefabs: encode props: %w", err)
	}
	if err := yaml.Unmarshal(b, &out); err != nil {
		return out, fmt.Errorf("prefabs: decode props: %w", err)
	}
	return out, nil
}
