package component

import "github.com/jakecoffman/cp"

// Transform is the world position (Y-up) of an entity's centre.
type Transform struct {
	Position cp.Vector
	// Rotation is in degrees, counter-clockwise.
	Rotation float64
}

var TransformComponent = NewComponent[Transform]()
