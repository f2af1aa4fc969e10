package entity

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/ropeclimb/ecs"
	"github.com/milk9111/ropeclimb/ecs/component"
	"github.com/milk9111/ropeclimb/prefabs"
	"github.com/milk9111/ropeclimb/rope"
)

const DefaultClimberPrefab = "climber.yaml"

func NewClimber(w *ecs.World) (ecs.Entity, error) {
	return BuildEntity(w, DefaultClimberPrefab)
}

func NewClimberAt(w *ecs.World, prefabPath string, pos mgl64.Vec3) (ecs.Entity, error) {
	if prefabPath == "" {
		prefabPath = DefaultClimberPrefab
	}
	return BuildEntityAt(w, prefabPath, pos)
}

type climberSpec = prefabs.ClimberComponentSpec

func addClimber(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[climberSpec](raw)
	if err != nil {
		return fmt.Errorf("decode climber spec: %w", err)
	}
	if spec.ClimbSpeed <= 0 {
		spec.ClimbSpeed = 4
	}
	return ecs.Add(w, e, component.ClimberComponent.Kind(), &component.Climber{
		Mode:       rope.MoveWalk,
		ClimbSpeed: spec.ClimbSpeed,
		MoveSpeed:  spec.MoveSpeed,
	})
}

type climbEaseSpec = prefabs.ClimbEaseComponentSpec

func addClimbEase(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[climbEaseSpec](raw)
	if err != nil {
		return fmt.Errorf("decode climb_ease spec: %w", err)
	}
	if spec.FPS <= 0 {
		spec.FPS = 60
	}
	if spec.Frequency <= 0 {
		spec.Frequency = 12
	}
	if spec.Damping <= 0 {
		spec.Damping = 1
	}
	return ecs.Add(w, e, component.ClimbEaseComponent.Kind(), component.NewClimbEase(spec.FPS, spec.Frequency, spec.Damping))
}

// climberOccupant lets a rope drive a climber entity without holding it:
// it only flips the movement mode and reports liveness by handle.
type climberOccupant struct {
	w *ecs.World
	e ecs.Entity
}

// Occupant returns the rope-facing view of climber e.
func Occupant(w *ecs.World, e ecs.Entity) rope.Occupant {
	return climberOccupant{w: w, e: e}
}

func (o climberOccupant) Alive() bool {
	return ecs.Has(o.w, o.e, component.ClimberComponent.Kind())
}

func (o climberOccupant) SetMoveMode(mode rope.MoveMode) {
	c, ok := ecs.Get(o.w, o.e, component.ClimberComponent.Kind())
	if !ok {
		return
	}
	c.Mode = mode
	if mode == rope.MoveWalk {
		c.Rope = nil
		c.Grip = 0
		c.ResetClimbProgress()
	}
}

// Climbing reports the rope entity e currently occupies, if any.
func Climbing(w *ecs.World, e ecs.Entity) (*rope.ClimbableRope, bool) {
	c, ok := ecs.Get(w, e, component.ClimberComponent.Kind())
	if !ok || c.Rope == nil {
		return nil, false
	}
	return c.Rope, true
}

// OccupantEntity recovers the climber entity behind an occupant returned
// by Occupant.
func OccupantEntity(o rope.Occupant) (ecs.Entity, bool) {
	co, ok := o.(climberOccupant)
	if !ok {
		return 0, false
	}
	return co.e, true
}
