package obj

import "errors"

var (
	// ErrNoTarget is returned when an actor is built without the thing it tracks.
	ErrNoTarget = errors.New("obj: no target")
	ErrNoPlayer = errors.New("obj: no player")
)
