package physics

import (
	"fmt"
	"strings"

	"github.com/jakecoffman/cp"
)

// Layer is a bitmask of physics categories.
type Layer uint

const (
	LayerEnvironment Layer = 1 << iota
	// LayerOneWay is a one-way platform currently accepting the actor.
	LayerOneWay
	// LayerPassThrough is a one-way platform currently letting the actor through.
	LayerPassThrough
	LayerVisionBlocker

	LayerNone Layer = 0
	LayerAll  Layer = ^Layer(0)
)

// MaskMovement is what the kinematic resolver collides with.
const MaskMovement = LayerEnvironment | LayerOneWay

var layerNames = map[string]Layer{
	"environment":    LayerEnvironment,
	"one_way":        LayerOneWay,
	"pass_through":   LayerPassThrough,
	"vision_blocker": LayerVisionBlocker,
}

// ParseLayers combines layer names such as "environment" into a mask.
func ParseLayers(names []string) (Layer, error) {
	var mask Layer
	for _, n := range names {
		l, ok := layerNames[strings.ToLower(strings.TrimSpace(n))]
		if !ok {
			return 0, fmt.Errorf("physics: unknown layer %q", n)
		}
		mask |= l
	}
	return mask, nil
}

// shapeFilter places a static shape in categories, colliding with everything.
func shapeFilter(categories Layer) cp.ShapeFilter {
	return cp.NewShapeFilter(cp.NO_GROUP, uint(categories), cp.ALL_CATEGORIES)
}

// queryFilter accepts shapes in any of the mask categories.
func queryFilter(mask Layer) cp.ShapeFilter {
	return cp.NewShapeFilter(cp.NO_GROUP, cp.ALL_CATEGORIES, uint(mask))
}
