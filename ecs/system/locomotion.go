package system

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/ropeclimb/common"
	"github.com/milk9111/ropeclimb/ecs"
	"github.com/milk9111/ropeclimb/ecs/component"
	"github.com/milk9111/ropeclimb/rope"
)

const groundHalfWidth = 1e5

// LocomotionSystem owns the Chipmunk space that moves climbers while they
// are on foot. Bodies live in the side-view plane (x, z). A flying climber
// ignores gravity; the ClimbSystem positions it.
type LocomotionSystem struct {
	space  *cp.Space
	bodies map[ecs.Entity]*component.PhysicsBody
}

// NewLocomotionSystem builds a space with rope gravity and a flat ground
// at groundZ.
func NewLocomotionSystem(groundZ float64) *LocomotionSystem {
	space := cp.NewSpace()
	space.Iterations = 20
	space.SetGravity(cp.Vector{X: 0, Y: rope.Gravity.Z()})

	ground := cp.NewSegment(space.StaticBody, cp.Vector{X: -groundHalfWidth, Y: groundZ}, cp.Vector{X: groundHalfWidth, Y: groundZ}, 0)
	ground.SetFriction(1)
	space.AddShape(ground)

	return &LocomotionSystem{
		space:  space,
		bodies: make(map[ecs.Entity]*component.PhysicsBody),
	}
}

func (ls *LocomotionSystem) Space() *cp.Space {
	if ls == nil {
		return nil
	}
	return ls.space
}

func (ls *LocomotionSystem) Update(w *ecs.World) {
	if ls == nil || w == nil {
		return
	}

	ls.cleanup(w)
	ecs.ForEach2(w, component.PhysicsBodyComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, pb *component.PhysicsBody, t *component.Transform) {
		if pb.Body == nil {
			ls.createBody(e, pb, t)
		}
		ls.drive(w, e, pb)
	})

	if dt := w.FrameTime(); dt > 0 {
		ls.space.Step(dt)
	}

	ecs.ForEach2(w, component.PhysicsBodyComponent.Kind(), component.TransformComponent.Kind(), func(_ ecs.Entity, pb *component.PhysicsBody, t *component.Transform) {
		if pb.Body == nil {
			return
		}
		t.SetVec(common.FromPlane(pb.Body.Position(), t.Y))
	})
}

func (ls *LocomotionSystem) createBody(e ecs.Entity, pb *component.PhysicsBody, t *component.Transform) {
	mass := pb.Mass
	if mass <= 0 {
		mass = 1
	}
	// Infinite moment keeps the climber upright.
	body := cp.NewBody(mass, cp.INFINITY)
	body.SetPosition(common.ToPlane(t.Vec()))

	shape := cp.NewBox(body, pb.Width, pb.Height, 0)
	shape.SetFriction(0.8)

	ls.space.AddBody(body)
	ls.space.AddShape(shape)

	pb.Body = body
	pb.Shape = shape
	ls.bodies[e] = pb
}

// drive swaps the velocity integrator for the climber's move mode and
// applies walking input.
func (ls *LocomotionSystem) drive(w *ecs.World, e ecs.Entity, pb *component.PhysicsBody) {
	c, ok := ecs.Get(w, e, component.ClimberComponent.Kind())
	if !ok {
		return
	}

	if c.Mode == rope.MoveFly {
		pb.Body.SetVelocityUpdateFunc(func(body *cp.Body, _ cp.Vector, damping float64, dt float64) {
			cp.BodyUpdateVelocity(body, cp.Vector{}, damping, dt)
		})
		return
	}
	pb.Body.SetVelocityUpdateFunc(cp.BodyUpdateVelocity)

	in, ok := ecs.Get(w, e, component.InputComponent.Kind())
	if !ok {
		return
	}
	v := pb.Body.Velocity()
	pb.Body.SetVelocity(common.Clamp(in.MoveX, -1, 1)*c.MoveSpeed, v.Y)
}

func (ls *LocomotionSystem) cleanup(w *ecs.World) {
	for e, pb := range ls.bodies {
		if ecs.IsAlive(w, e) && ecs.Has(w, e, component.PhysicsBodyComponent.Kind()) {
			continue
		}
		if pb.Shape != nil {
			ls.space.RemoveShape(pb.Shape)
		}
		if pb.Body != nil {
			ls.space.RemoveBody(pb.Body)
		}
		pb.Body, pb.Shape = nil, nil
		delete(ls.bodies, e)
	}
}
