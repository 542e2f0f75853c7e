package component

import "github.com/milk9111/featherfall/input"

// Input holds the frame polled this fixed step. The player controller reads
// it through the same value, which implements input.Source.
type Input = input.Static

var InputComponent = NewComponent[Input]()
