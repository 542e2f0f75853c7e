package component

import (
	"github.com/milk9111/featherfall/obj"
	"github.com/milk9111/featherfall/physics"
)

// OneWayPlatform ties the landing rule to the chipmunk shape it toggles.
type OneWayPlatform struct {
	Shape *physics.Platform
	Rule  obj.OneWayPlatform
}

var OneWayPlatformComponent = NewComponent[OneWayPlatform]()
