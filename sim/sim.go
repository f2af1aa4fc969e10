// Package sim wires the rope, climber and systems into a headless world
// that can be stepped frame by frame.
package sim

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/ropeclimb/ecs"
	"github.com/milk9111/ropeclimb/ecs/component"
	"github.com/milk9111/ropeclimb/ecs/entity"
	"github.com/milk9111/ropeclimb/ecs/system"
	"github.com/milk9111/ropeclimb/prefabs"
	"github.com/milk9111/ropeclimb/rope"
)

// groundClearance puts the ground just under the rope's free end so a
// climber standing there can reach the bottom node.
const groundClearance = 40

type Config struct {
	FPS           int
	RopePrefab    string
	ClimberPrefab string
	Anchor        mgl64.Vec3
	// Autopilot drives the climber through a grab, climb and release.
	Autopilot bool
	Logger    *log.Logger
}

func DefaultConfig() Config {
	return Config{
		FPS:           60,
		RopePrefab:    entity.DefaultRopePrefab,
		ClimberPrefab: entity.DefaultClimberPrefab,
		Anchor:        mgl64.Vec3{0, 0, 1024},
		Autopilot:     true,
	}
}

type Sim struct {
	World   *ecs.World
	Rope    ecs.Entity
	Climber ecs.Entity
	GroundZ float64

	sched *ecs.Scheduler
	ropes *system.RopeSystem
	pilot *Autopilot
	dt    float64
	frame int
	log   *log.Logger
}

func New(cfg Config) (*Sim, error) {
	if cfg.FPS <= 0 {
		return nil, fmt.Errorf("sim: fps must be positive, got %d", cfg.FPS)
	}
	logger := cfg.Logger
	if logger == nil {
		logger = log.Default()
	}

	w := ecs.NewWorld()
	ropeEnt, err := entity.NewRopeAt(w, cfg.RopePrefab, cfg.Anchor)
	if err != nil {
		return nil, fmt.Errorf("sim: %w", err)
	}
	rc, ok := ecs.Get(w, ropeEnt, component.RopeComponent.Kind())
	if !ok || rc.Rope == nil {
		return nil, fmt.Errorf("sim: prefab %q has no rope component", cfg.RopePrefab)
	}
	bottom := rc.Rope.NodePosition(rope.NodeIndex(rc.Rope.NumNodes() - 1))
	groundZ := bottom.Z() - groundClearance

	pb := physicsBodySpec(cfg.ClimberPrefab)
	start := mgl64.Vec3{cfg.Anchor.X() - 150, 0, groundZ + pb.Height/2}
	climber, err := entity.NewClimberAt(w, cfg.ClimberPrefab, start)
	if err != nil {
		return nil, fmt.Errorf("sim: %w", err)
	}

	s := &Sim{
		World:   w,
		Rope:    ropeEnt,
		Climber: climber,
		GroundZ: groundZ,
		ropes:   system.NewRopeSystem(logger),
		dt:      1.0 / float64(cfg.FPS),
		log:     logger,
	}

	s.sched = ecs.NewScheduler()
	if cfg.Autopilot {
		s.pilot = NewAutopilot(climber, ropeEnt)
		s.sched.Add(s.pilot)
	}
	s.sched.Add(system.NewUseSystem(logger))
	s.sched.Add(s.ropes)
	s.sched.Add(system.NewLocomotionSystem(groundZ))
	s.sched.Add(system.NewClimbSystem())

	logger.Debug("sim ready", "rope", ropeEnt, "climber", climber, "ground", groundZ)
	return s, nil
}

func physicsBodySpec(prefab string) prefabs.PhysicsBodyComponentSpec {
	spec, err := prefabs.LoadEntityBuildSpec(prefab)
	if err != nil {
		return prefabs.PhysicsBodyComponentSpec{}
	}
	pb, _ := prefabs.DecodeComponentSpec[prefabs.PhysicsBodyComponentSpec](spec.Components["physics_body"])
	return pb
}

// Watch hot reloads ropes from prefab edits.
func (s *Sim) Watch(changes <-chan prefabs.Change) {
	s.ropes.Watch(changes)
}

// Tick advances one frame and returns the events it produced.
func (s *Sim) Tick() []ecs.Event {
	s.frame++
	s.sched.Tick(s.World, s.dt)
	return s.World.Events().Drain()
}

func (s *Sim) Frame() int { return s.frame }

// Done reports whether the autopilot has finished its routine.
func (s *Sim) Done() bool {
	return s.pilot != nil && s.pilot.Done()
}

func (s *Sim) Input() *component.Input {
	in, _ := ecs.Get(s.World, s.Climber, component.InputComponent.Kind())
	return in
}

func (s *Sim) ClimberPosition() mgl64.Vec3 {
	if t, ok := ecs.Get(s.World, s.Climber, component.TransformComponent.Kind()); ok {
		return t.Vec()
	}
	return mgl64.Vec3{}
}

func (s *Sim) ClimbableRope() *rope.ClimbableRope {
	if rc, ok := ecs.Get(s.World, s.Rope, component.RopeComponent.Kind()); ok {
		return rc.Rope
	}
	return nil
}
