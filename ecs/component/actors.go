package component

import "github.com/milk9111/featherfall/obj"

// The actor controllers are stored as components directly; systems drive
// them and copy their positions into Transform.

var PlayerComponent = NewComponent[obj.Player]()

var CrowComponent = NewComponent[obj.Crow]()

var ProjectileComponent = NewComponent[obj.Projectile]()

var CameraComponent = NewComponent[obj.Camera]()

var FadeComponent = NewComponent[obj.Fade]()
