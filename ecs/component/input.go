package component

// Input stores per-frame input state for an entity. UsePressed is an edge
// and is cleared by the system that consumes it.
type Input struct {
	MoveX      float64
	Climb      float64 // +1 up the rope, -1 down
	UsePressed bool
}

var InputComponent = NewComponent[Input]("input")
