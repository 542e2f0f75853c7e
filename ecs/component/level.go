package component

import "github.com/milk9111/featherfall/levels"

// Level marks the entity that owns the loaded tile grid.
type Level struct {
	Data *levels.Level
}

var LevelComponent = NewComponent[Level]()
