package component

import "github.com/milk9111/featherfall/obj"

var HealthComponent = NewComponent[obj.Stats]()
