package sim

import (
	"math"

	"github.com/milk9111/ropeclimb/ecs"
	"github.com/milk9111/ropeclimb/ecs/component"
)

type pilotPhase int

const (
	pilotApproach pilotPhase = iota
	pilotGrab
	pilotClimbUp
	pilotClimbDown
	pilotRelease
	pilotWalkAway
	pilotDone
)

const (
	reachX        = 8.0
	climbUpTime   = 1.5
	climbDownTime = 0.5
	walkAwayTime  = 1.0
)

// Autopilot feeds a scripted input sequence to one climber: walk under
// the rope, grab it, climb up, climb back down, let go and walk off.
type Autopilot struct {
	climber ecs.Entity
	rope    ecs.Entity
	phase   pilotPhase
	timer   float64
}

func NewAutopilot(climber, rope ecs.Entity) *Autopilot {
	return &Autopilot{climber: climber, rope: rope}
}

func (a *Autopilot) Done() bool { return a.phase == pilotDone }

func (a *Autopilot) Update(w *ecs.World) {
	if a == nil || w == nil || a.phase == pilotDone {
		return
	}
	in, ok := ecs.Get(w, a.climber, component.InputComponent.Kind())
	if !ok {
		a.phase = pilotDone
		return
	}
	c, _ := ecs.Get(w, a.climber, component.ClimberComponent.Kind())
	t, _ := ecs.Get(w, a.climber, component.TransformComponent.Kind())
	anchor, ok := a.ropeAnchor(w)
	if c == nil || t == nil || !ok {
		a.phase = pilotDone
		return
	}

	dt := w.FrameTime()
	a.timer += dt
	*in = component.Input{}

	switch a.phase {
	case pilotApproach:
		dx := anchor.X - t.X
		if math.Abs(dx) <= reachX {
			a.next(pilotGrab)
			return
		}
		in.MoveX = math.Copysign(1, dx)
	case pilotGrab:
		if c.Rope != nil {
			a.next(pilotClimbUp)
			return
		}
		if a.timer > 1 {
			// never reached the rope
			a.next(pilotDone)
			return
		}
		in.UsePressed = true
	case pilotClimbUp:
		in.Climb = 1
		if a.timer >= climbUpTime {
			a.next(pilotClimbDown)
		}
	case pilotClimbDown:
		in.Climb = -1
		if a.timer >= climbDownTime {
			a.next(pilotRelease)
		}
	case pilotRelease:
		if c.Rope == nil {
			a.next(pilotWalkAway)
			return
		}
		in.UsePressed = true
	case pilotWalkAway:
		in.MoveX = 1
		if a.timer >= walkAwayTime {
			a.next(pilotDone)
		}
	}
}

// ropeAnchor returns the target rope's transform, switching to any other
// rope when the original entity is gone.
func (a *Autopilot) ropeAnchor(w *ecs.World) (*component.Transform, bool) {
	if !ecs.Has(w, a.rope, component.RopeComponent.Kind()) {
		re, ok := ecs.First(w, component.RopeComponent.Kind())
		if !ok {
			return nil, false
		}
		a.rope = re
	}
	return ecs.Get(w, a.rope, component.TransformComponent.Kind())
}

func (a *Autopilot) next(p pilotPhase) {
	a.phase = p
	a.timer = 0
}
