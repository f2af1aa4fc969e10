// Package rope simulates a hanging chain of point masses and the single
// occupant climbing interaction built on top of it.
package rope

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

const (
	// TimeStep is the fixed integration step. Leftover time is carried to
	// the next Simulate call.
	TimeStep = 1.0 / 50.0
	// RelaxIterations is the pass budget per spring per step. A step stops
	// relaxing early once no spring is stretched past RelaxTolerance.
	RelaxIterations = 8
	// RelaxTolerance is the relative stretch accepted at the end of a step.
	RelaxTolerance = 2e-3
	// Damping scales the implicit velocity every step.
	Damping = 0.99

	degenerateNudge = 1e-3
)

// degenerateAxis separates coincident spring endpoints: the far endpoint is
// moved along it so the chain unfolds in the direction it hangs.
var degenerateAxis = mgl64.Vec3{0, 0, -1}

// Engine integrates a node chain with position Verlet and relaxes its
// springs. It works on arrays owned by the caller and never resizes them.
type Engine struct {
	nodes   []Node
	springs []Spring
	helper  Helper
	// pinned marks nodes the helper holds in place; springs move only
	// their free endpoint.
	pinned []bool

	restLen   float64
	remainder float64
}

// NewEngine binds an engine to nodes and springs. Spring endpoints must
// index into nodes.
func NewEngine(nodes []Node, springs []Spring) *Engine {
	for i, s := range springs {
		if s.A < 0 || int(s.A) >= len(nodes) || s.B < 0 || int(s.B) >= len(nodes) {
			panic(fmt.Sprintf("rope engine: spring %d endpoints (%d,%d) out of range [0,%d)", i, s.A, s.B, len(nodes)))
		}
	}
	return &Engine{nodes: nodes, springs: springs}
}

// SetupSimulation binds the force and constraint policy. initialElapsed
// seeds the carried time remainder.
func (e *Engine) SetupSimulation(initialElapsed float64, helper Helper) {
	if e == nil {
		return
	}
	e.helper = helper
	e.remainder = math.Max(initialElapsed, 0)

	if e.pinned == nil {
		e.pinned = make([]bool, len(e.nodes))
	}
	p, _ := helper.(Pinner)
	for i := range e.pinned {
		e.pinned[i] = p != nil && p.Pinned(NodeIndex(i))
	}
}

// ResetSpringLength sets the same rest length on every spring.
func (e *Engine) ResetSpringLength(restLength float64) {
	if e == nil {
		return
	}
	e.restLen = restLength
	sqr := restLength * restLength
	for i := range e.springs {
		e.springs[i].RestSqr = sqr
	}
}

// SpringLength returns the rest length set by ResetSpringLength.
func (e *Engine) SpringLength() float64 {
	if e == nil {
		return 0
	}
	return e.restLen
}

// Restart zeroes every node's implicit velocity without moving it.
func (e *Engine) Restart() {
	if e == nil {
		return
	}
	for i := range e.nodes {
		e.nodes[i].Prev = e.nodes[i].Pos
	}
	e.remainder = 0
}

// Simulate advances the chain by elapsed seconds. Non-positive elapsed
// time leaves every node untouched.
func (e *Engine) Simulate(elapsed float64) {
	if e == nil || !(elapsed > 0) {
		return
	}
	if e.helper == nil {
		panic("rope engine: Simulate called before SetupSimulation")
	}

	e.remainder += elapsed
	for e.remainder >= TimeStep {
		e.step(TimeStep)
		e.remainder -= TimeStep
	}

	// Keep the anchor exact even when no whole step fit in elapsed.
	e.helper.ApplyHardConstraints(e.nodes)
}

func (e *Engine) step(dt float64) {
	dtSqr := dt * dt
	for i := range e.nodes {
		n := &e.nodes[i]
		accel := e.helper.AccelerationFor(e.nodes, NodeIndex(i))
		next := n.Pos.Add(n.Pos.Sub(n.Prev).Mul(Damping)).Add(accel.Mul(dtSqr))
		n.Prev = n.Pos
		n.Pos = next
	}
	e.helper.ApplyHardConstraints(e.nodes)

	passes := RelaxIterations * max(len(e.springs), 1)
	for pass := 0; pass < passes; pass++ {
		worst := e.relax()
		e.helper.ApplyHardConstraints(e.nodes)
		if worst < RelaxTolerance {
			break
		}
	}
}

// relax projects every stretched spring back to its rest length and
// returns the largest relative stretch it corrected. Slack springs are
// left alone: a rope pulls but never pushes.
func (e *Engine) relax() float64 {
	worst := 0.0
	for i := range e.springs {
		s := &e.springs[i]
		a := &e.nodes[s.A]
		b := &e.nodes[s.B]
		pinA, pinB := e.pinned[s.A], e.pinned[s.B]

		delta := b.Pos.Sub(a.Pos)
		dSqr := delta.Dot(delta)
		if dSqr <= s.RestSqr {
			if dSqr < degenerateNudge*degenerateNudge {
				switch {
				case !pinB:
					b.Pos = b.Pos.Add(degenerateAxis.Mul(degenerateNudge))
				case !pinA:
					a.Pos = a.Pos.Sub(degenerateAxis.Mul(degenerateNudge))
				}
			}
			continue
		}

		d := math.Sqrt(dSqr)
		rest := math.Sqrt(s.RestSqr)
		worst = max(worst, d/rest-1)

		// Pinned endpoints have infinite mass.
		k := 1 - rest/d
		switch {
		case pinA && pinB:
		case pinA:
			b.Pos = b.Pos.Sub(delta.Mul(k))
		case pinB:
			a.Pos = a.Pos.Add(delta.Mul(k))
		default:
			corr := delta.Mul(k * 0.5)
			a.Pos = a.Pos.Add(corr)
			b.Pos = b.Pos.Sub(corr)
		}
	}
	return worst
}

func (e *Engine) NumNodes() int {
	if e == nil {
		return 0
	}
	return len(e.nodes)
}

// GetNode returns node i. Indexing outside [0, NumNodes) panics.
func (e *Engine) GetNode(i NodeIndex) *Node {
	if i < 0 || int(i) >= e.NumNodes() {
		panic(fmt.Sprintf("rope engine: node index %d out of range [0,%d)", i, e.NumNodes()))
	}
	return &e.nodes[i]
}

func (e *Engine) GetFirstNode() *Node {
	return e.GetNode(0)
}

func (e *Engine) NumSprings() int {
	if e == nil {
		return 0
	}
	return len(e.springs)
}

// GetSpring returns spring i. Indexing outside [0, NumSprings) panics.
func (e *Engine) GetSpring(i int) Spring {
	if i < 0 || i >= e.NumSprings() {
		panic(fmt.Sprintf("rope engine: spring index %d out of range [0,%d)", i, e.NumSprings()))
	}
	return e.springs[i]
}
