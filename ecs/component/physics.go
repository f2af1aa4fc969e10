package component

import "github.com/jakecoffman/cp"

// PhysicsBody stores the Chipmunk2D body for an actor. The body lives in the
// side-view plane: body X is world X and body Y is world Z.
type PhysicsBody struct {
	Body   *cp.Body
	Shape  *cp.Shape
	Width  float64
	Height float64
	Mass   float64
}

var PhysicsBodyComponent = NewComponent[PhysicsBody]("physics_body")
