package system

import (
	"math"

	"github.com/charmbracelet/log"
	"github.com/milk9111/ropeclimb/ecs"
	"github.com/milk9111/ropeclimb/ecs/component"
	"github.com/milk9111/ropeclimb/ecs/entity"
	"github.com/milk9111/ropeclimb/rope"
)

// UseSystem turns the use button into grabbing or letting go of a rope.
type UseSystem struct {
	log *log.Logger
}

func NewUseSystem(logger *log.Logger) *UseSystem {
	if logger == nil {
		logger = log.Default()
	}
	return &UseSystem{log: logger}
}

func (us *UseSystem) Update(w *ecs.World) {
	if us == nil || w == nil {
		return
	}

	ecs.ForEach3(w, component.InputComponent.Kind(), component.ClimberComponent.Kind(), component.TransformComponent.Kind(),
		func(e ecs.Entity, in *component.Input, c *component.Climber, t *component.Transform) {
			if !in.UsePressed {
				return
			}
			in.UsePressed = false

			if c.Rope != nil {
				us.letGo(w, e, c)
				return
			}
			us.grab(w, e, c, t)
		})
}

func (us *UseSystem) letGo(w *ecs.World, e ecs.Entity, c *component.Climber) {
	r := c.Rope
	ropeEnt, _ := entity.RopeEntity(w, r)
	if !r.Detach() {
		// The rope already dropped us; clear the stale reference.
		entity.Occupant(w, e).SetMoveMode(rope.MoveWalk)
	}
	w.Events().Push(ecs.Event{Type: ecs.EventRopeDetached, Data: ecs.RopeEvent{Rope: ropeEnt, Climber: e}})
	us.log.Debug("let go of rope", "climber", e, "rope", ropeEnt)
}

func (us *UseSystem) grab(w *ecs.World, e ecs.Entity, c *component.Climber, t *component.Transform) {
	if ecs.Count(w, component.RopeComponent.Kind()) == 0 {
		us.log.Debug("no ropes to grab", "climber", e)
		return
	}
	p := t.Vec()

	var (
		bestEnt  ecs.Entity
		bestRope *rope.ClimbableRope
		bestNode rope.NodeIndex
		bestDist = math.Inf(1)
	)
	ecs.ForEach(w, component.RopeComponent.Kind(), func(re ecs.Entity, rc *component.Rope) {
		if rc.Rope == nil || rc.Rope.IsBeingClimbed() {
			return
		}
		idx, ok := rc.Rope.FindClosestUsableNode(p)
		if !ok {
			return
		}
		d := rc.Rope.NodePosition(idx).Sub(p).LenSqr()
		if d < bestDist {
			bestEnt, bestRope, bestNode, bestDist = re, rc.Rope, idx, d
		}
	})
	if bestRope == nil {
		return
	}

	if !bestRope.Attach(entity.Occupant(w, e)) {
		return
	}
	c.Rope = bestRope
	c.Grip = bestNode
	c.ResetClimbProgress()
	if ease, ok := ecs.Get(w, e, component.ClimbEaseComponent.Kind()); ok {
		ease.Vel = [3]float64{}
	}
	w.Events().Push(ecs.Event{Type: ecs.EventRopeAttached, Data: ecs.RopeEvent{Rope: bestEnt, Climber: e}})
	us.log.Debug("grabbed rope", "climber", e, "rope", bestEnt, "node", bestNode)
}
