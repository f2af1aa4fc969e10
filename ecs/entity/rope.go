package entity

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/ropeclimb/ecs"
	"github.com/milk9111/ropeclimb/ecs/component"
	"github.com/milk9111/ropeclimb/prefabs"
	"github.com/milk9111/ropeclimb/rope"
)

const DefaultRopePrefab = "rope.yaml"

// transformAnchor reads a rope's anchor from its entity's Transform. Once
// the entity is gone the last known position is kept.
type transformAnchor struct {
	w    *ecs.World
	e    ecs.Entity
	last mgl64.Vec3
}

func (a *transformAnchor) AnchorPosition() mgl64.Vec3 {
	if t, ok := ecs.Get(a.w, a.e, component.TransformComponent.Kind()); ok {
		a.last = t.Vec()
	}
	return a.last
}

// RopeAnchor returns a read-only anchor view of e's Transform.
func RopeAnchor(w *ecs.World, e ecs.Entity) rope.AnchorSource {
	a := &transformAnchor{w: w, e: e}
	a.AnchorPosition()
	return a
}

func NewRope(w *ecs.World) (ecs.Entity, error) {
	return BuildEntity(w, DefaultRopePrefab)
}

func NewRopeAt(w *ecs.World, prefabPath string, anchor mgl64.Vec3) (ecs.Entity, error) {
	if prefabPath == "" {
		prefabPath = DefaultRopePrefab
	}
	return BuildEntityAt(w, prefabPath, anchor)
}

type ropeSpec = prefabs.RopeComponentSpec

// ropeConfig fills unset prefab fields with the rope defaults.
func ropeConfig(spec ropeSpec) rope.Config {
	cfg := rope.DefaultConfig()
	if spec.Length != 0 {
		cfg.Length = spec.Length
	}
	if spec.Segments != 0 {
		cfg.Segments = spec.Segments
	}
	if spec.Material != "" {
		cfg.Material = spec.Material
	}
	return cfg
}

func addRope(w *ecs.World, e ecs.Entity, raw any, ctx *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[ropeSpec](raw)
	if err != nil {
		return fmt.Errorf("decode rope spec: %w", err)
	}
	if !ecs.Has(w, e, component.TransformComponent.Kind()) {
		return fmt.Errorf("rope requires a transform on the same entity")
	}

	r, err := newClimbableRope(w, e, spec)
	if err != nil {
		return err
	}
	prefab := ""
	if ctx != nil {
		prefab = ctx.PrefabPath
	}
	return ecs.Add(w, e, component.RopeComponent.Kind(), &component.Rope{Rope: r, Prefab: prefab})
}

func newClimbableRope(w *ecs.World, e ecs.Entity, spec ropeSpec) (*rope.ClimbableRope, error) {
	logger := log.With("rope", e.String())
	opts := []rope.Option{rope.WithLogger(logger)}

	if spec.ForceScript != "" {
		src, err := prefabs.LoadScript(spec.ForceScript)
		if err != nil {
			return nil, fmt.Errorf("load force script %q: %w", spec.ForceScript, err)
		}
		var scriptErr error
		opts = append(opts, rope.WithForces(func(base rope.Helper) rope.Helper {
			s, err := rope.NewScriptedForces(base, src, logger)
			if err != nil {
				scriptErr = err
				return base
			}
			return s
		}))
		r, err := rope.New(ropeConfig(spec), RopeAnchor(w, e), opts...)
		if err != nil {
			return nil, err
		}
		if scriptErr != nil {
			r.Release()
			return nil, fmt.Errorf("force script %q: %w", spec.ForceScript, scriptErr)
		}
		return r, nil
	}

	return rope.New(ropeConfig(spec), RopeAnchor(w, e), opts...)
}

// ReloadRope rebuilds e's rope from its prefab. The old rope drops its
// occupant and is released; the entity keeps its current Transform.
func ReloadRope(w *ecs.World, e ecs.Entity) error {
	rc, ok := ecs.Get(w, e, component.RopeComponent.Kind())
	if !ok || rc == nil {
		return fmt.Errorf("reload rope: entity %s has no rope", e)
	}
	if rc.Prefab == "" {
		return fmt.Errorf("reload rope: entity %s was not built from a prefab", e)
	}

	spec, err := prefabs.LoadEntityBuildSpec(rc.Prefab)
	if err != nil {
		return fmt.Errorf("reload rope: %w", err)
	}
	rs, err := prefabs.DecodeComponentSpec[ropeSpec](spec.Components["rope"])
	if err != nil {
		return fmt.Errorf("reload rope: decode rope spec: %w", err)
	}
	next, err := newClimbableRope(w, e, rs)
	if err != nil {
		return fmt.Errorf("reload rope: %w", err)
	}

	rc.Rope.Release()
	rc.Rope = next
	return nil
}

// RopeEntity finds the entity that owns r.
func RopeEntity(w *ecs.World, r *rope.ClimbableRope) (ecs.Entity, bool) {
	var found ecs.Entity
	ok := false
	ecs.ForEach(w, component.RopeComponent.Kind(), func(e ecs.Entity, rc *component.Rope) {
		if !ok && rc.Rope == r {
			found, ok = e, true
		}
	})
	return found, ok
}
