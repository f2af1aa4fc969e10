package rope

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/go-gl/mathgl/mgl64"
)

// ScriptedForces adds a tengo-computed acceleration on top of a base
// helper. The script sees node, count, x, y and z and assigns ax, ay, az.
// Hard constraints are always the base helper's.
type ScriptedForces struct {
	Base Helper

	compiled *tengo.Compiled
	failed   bool
	log      *log.Logger
}

// scriptVars are the globals shared with a force script, in the order eval
// sets them. node and count are ints, the rest floats.
var scriptVars = [...]string{"node", "count", "x", "y", "z", "ax", "ay", "az"}

// NewScriptedForces compiles src once. Runtime errors later fall back to
// the base acceleration and are logged once.
func NewScriptedForces(base Helper, src []byte, logger *log.Logger) (*ScriptedForces, error) {
	script := tengo.NewScript(src)
	zero := [len(scriptVars)]any{0, 0, 0.0, 0.0, 0.0, 0.0, 0.0, 0.0}
	for k, name := range scriptVars {
		if err := script.Add(name, zero[k]); err != nil {
			return nil, fmt.Errorf("rope script: add %s: %w", name, err)
		}
	}
	script.SetImports(stdlib.GetModuleMap("math"))

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("rope script: compile: %w", err)
	}
	if logger == nil {
		logger = log.Default()
	}
	return &ScriptedForces{Base: base, compiled: compiled, log: logger}, nil
}

func (s *ScriptedForces) AccelerationFor(nodes []Node, i NodeIndex) mgl64.Vec3 {
	accel := s.Base.AccelerationFor(nodes, i)
	if s.failed {
		return accel
	}
	extra, err := s.eval(nodes, i)
	if err != nil {
		s.failed = true
		s.log.Error("rope script failed, using base forces", "node", i, "err", err)
		return accel
	}
	return accel.Add(extra)
}

func (s *ScriptedForces) ApplyHardConstraints(nodes []Node) {
	s.Base.ApplyHardConstraints(nodes)
}

func (s *ScriptedForces) Pinned(i NodeIndex) bool {
	p, ok := s.Base.(Pinner)
	return ok && p.Pinned(i)
}

func (s *ScriptedForces) eval(nodes []Node, i NodeIndex) (mgl64.Vec3, error) {
	pos := nodes[i].Pos
	vals := [len(scriptVars)]any{int(i), len(nodes), pos.X(), pos.Y(), pos.Z(), 0.0, 0.0, 0.0}
	for k, name := range scriptVars {
		if err := s.compiled.Set(name, vals[k]); err != nil {
			return mgl64.Vec3{}, err
		}
	}
	if err := s.compiled.Run(); err != nil {
		return mgl64.Vec3{}, err
	}
	return mgl64.Vec3{
		s.compiled.Get("ax").Float(),
		s.compiled.Get("ay").Float(),
		s.compiled.Get("az").Float(),
	}, nil
}
