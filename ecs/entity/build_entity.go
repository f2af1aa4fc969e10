package entity

import (
	"fmt"
	"sort"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/ropeclimb/ecs"
	"github.com/milk9111/ropeclimb/ecs/component"
	"github.com/milk9111/ropeclimb/prefabs"
)

type entityPrefabSpec = prefabs.EntityBuildSpec

type buildContext struct {
	PrefabPath string
	// Origin overrides the prefab transform when set.
	Origin *mgl64.Vec3
}

type componentBuildFn func(w *ecs.World, e ecs.Entity, raw any, ctx *buildContext) error

var componentRegistry = map[string]componentBuildFn{
	"transform":    addTransform,
	"input":        addInput,
	"physics_body": addPhysicsBody,
	"climber":      addClimber,
	"climb_ease":   addClimbEase,
	"rope":         addRope,
}

// rope must come after transform: the warm-up runs at the anchor.
var componentBuildOrder = []string{
	"transform",
	"input",
	"physics_body",
	"climber",
	"climb_ease",
	"rope",
}

// BuildEntity creates an entity from a prefab file.
func BuildEntity(w *ecs.World, prefabPath string) (ecs.Entity, error) {
	return buildEntity(w, prefabPath, &buildContext{PrefabPath: prefabPath})
}

// BuildEntityAt creates an entity from a prefab placed at origin.
func BuildEntityAt(w *ecs.World, prefabPath string, origin mgl64.Vec3) (ecs.Entity, error) {
	return buildEntity(w, prefabPath, &buildContext{PrefabPath: prefabPath, Origin: &origin})
}

func buildEntity(w *ecs.World, prefabPath string, ctx *buildContext) (ecs.Entity, error) {
	if w == nil {
		return 0, fmt.Errorf("build entity: world is nil")
	}

	spec, err := prefabs.LoadEntityBuildSpec(prefabPath)
	if err != nil {
		return 0, fmt.Errorf("build entity: load %q: %w", prefabPath, err)
	}
	if len(spec.Components) == 0 {
		return 0, fmt.Errorf("build entity: prefab %q does not define components", prefabPath)
	}
	if ctx.Origin != nil {
		if _, ok := spec.Components["transform"]; !ok {
			spec.Components["transform"] = map[string]any{}
		}
	}

	e := ecs.CreateEntity(w)
	if err := applyComponents(w, e, spec, ctx); err != nil {
		ecs.DestroyEntity(w, e)
		return 0, err
	}
	return e, nil
}

func applyComponents(w *ecs.World, e ecs.Entity, spec entityPrefabSpec, ctx *buildContext) error {
	remaining := make(map[string]any, len(spec.Components))
	for k, v := range spec.Components {
		remaining[k] = v
	}

	names := make([]string, 0, len(remaining))
	for _, name := range componentBuildOrder {
		if _, ok := remaining[name]; ok {
			names = append(names, name)
			delete(remaining, name)
		}
	}
	extra := make([]string, 0, len(remaining))
	for name := range remaining {
		extra = append(extra, name)
	}
	sort.Strings(extra)
	names = append(names, extra...)

	for _, name := range names {
		builder, ok := componentRegistry[name]
		if !ok {
			return fmt.Errorf("build entity: %q: no builder for component %q", ctx.PrefabPath, name)
		}
		if err := builder(w, e, spec.Components[name], ctx); err != nil {
			return fmt.Errorf("build entity: %q: add %q: %w", ctx.PrefabPath, name, err)
		}
	}
	return nil
}

// SetEntityTransform moves an entity. A rope entity moved this way swings
// toward its new anchor.
func SetEntityTransform(w *ecs.World, e ecs.Entity, pos mgl64.Vec3) error {
	t, ok := ecs.Get(w, e, component.TransformComponent.Kind())
	if !ok || t == nil {
		t = &component.Transform{}
	}
	t.SetVec(pos)
	return ecs.Add(w, e, component.TransformComponent.Kind(), t)
}

type transformSpec = prefabs.TransformComponentSpec

func addTransform(w *ecs.World, e ecs.Entity, raw any, ctx *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[transformSpec](raw)
	if err != nil {
		return fmt.Errorf("decode transform spec: %w", err)
	}
	t := &component.Transform{X: spec.X, Y: spec.Y, Z: spec.Z}
	if ctx != nil && ctx.Origin != nil {
		t.SetVec(*ctx.Origin)
	}
	return ecs.Add(w, e, component.TransformComponent.Kind(), t)
}

func addInput(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.InputComponent.Kind(), &component.Input{})
}

type physicsBodySpec = prefabs.PhysicsBodyComponentSpec

func addPhysicsBody(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[physicsBodySpec](raw)
	if err != nil {
		return fmt.Errorf("decode physics_body spec: %w", err)
	}
	if spec.Width <= 0 || spec.Height <= 0 {
		return fmt.Errorf("physics_body needs a positive width and height")
	}
	if spec.Mass <= 0 {
		spec.Mass = 1
	}
	// The body itself is created by the LocomotionSystem, which owns the space.
	return ecs.Add(w, e, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{
		Width:  spec.Width,
		Height: spec.Height,
		Mass:   spec.Mass,
	})
}
