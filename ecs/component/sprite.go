package component

import (
	"image/color"

	"github.com/jakecoffman/cp"
)

// Sprite is a flat coloured box; the game has no image assets.
type Sprite struct {
	Size  cp.Vector
	Color color.Color
	// FacingLeft draws a notch on the leading side.
	FacingLeft bool
	Hidden     bool
}

var SpriteComponent = NewComponent[Sprite]()
