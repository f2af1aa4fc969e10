package rope

import (
	"iter"
	"math"

	"github.com/charmbracelet/log"
	"github.com/go-gl/mathgl/mgl64"
)

// MoveMode is the locomotion mode the rope switches its occupant between.
type MoveMode uint8

const (
	MoveWalk MoveMode = iota
	MoveFly
)

func (m MoveMode) String() string {
	switch m {
	case MoveWalk:
		return "walk"
	case MoveFly:
		return "fly"
	default:
		return "unknown"
	}
}

// Occupant is an actor that can climb a rope. Alive must report false once
// the actor is gone; the rope then drops it on the next Think.
type Occupant interface {
	SetMoveMode(mode MoveMode)
	Alive() bool
}

// ClimbPhase is the interaction state of a rope.
type ClimbPhase uint8

const (
	ClimbIdle ClimbPhase = iota
	ClimbClimbing
)

func (p ClimbPhase) String() string {
	if p == ClimbClimbing {
		return "climbing"
	}
	return "idle"
}

// climbState holds an occupant only in ClimbClimbing.
type climbState struct {
	phase    ClimbPhase
	occupant Occupant
}

// Option customises a ClimbableRope at construction.
type Option func(*ClimbableRope)

// WithLogger replaces the default logger.
func WithLogger(l *log.Logger) Option {
	return func(r *ClimbableRope) {
		if l != nil {
			r.log = l
		}
	}
}

// WithForces wraps the anchor helper, for example with ScriptedForces.
func WithForces(wrap func(base Helper) Helper) Option {
	return func(r *ClimbableRope) {
		if wrap != nil {
			r.wrap = wrap
		}
	}
}

// ClimbableRope owns a node chain, the engine simulating it and the single
// occupant state machine.
type ClimbableRope struct {
	cfg    Config
	anchor AnchorSource

	nodes   []Node
	springs []Spring
	engine  *Engine
	helper  Helper
	wrap    func(Helper) Helper

	climb climbState
	log   *log.Logger
}

// New validates cfg, builds the chain at the anchor and warms it up so the
// rope is already hanging when it is first observed.
func New(cfg Config, anchor AnchorSource, opts ...Option) (*ClimbableRope, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	r := &ClimbableRope{
		cfg:    cfg,
		anchor: anchor,
		log:    log.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	r.initPhysics()
	return r, nil
}

func (r *ClimbableRope) initPhysics() {
	r.nodes, r.springs = NewChain(r.cfg.Segments, r.anchor.AnchorPosition())

	r.helper = NewAnchorHelper(r.anchor)
	if r.wrap != nil {
		r.helper = r.wrap(r.helper)
	}

	r.engine = NewEngine(r.nodes, r.springs)
	r.engine.SetupSimulation(0, r.helper)
	r.engine.ResetSpringLength(r.cfg.RestLength())

	r.engine.Restart()
	r.engine.Simulate(WarmupSeconds)

	r.log.Debug("rope initialised", "nodes", len(r.nodes), "rest", r.cfg.RestLength())
}

// Think runs one tick. elapsed is clamped to MaxThinkElapsed so a long
// pause cannot blow up the integrator.
func (r *ClimbableRope) Think(elapsed float64) {
	if r == nil || r.engine == nil {
		return
	}
	if r.climb.phase == ClimbClimbing && !r.climb.occupant.Alive() {
		r.log.Debug("rope occupant disappeared, detaching")
		r.climb = climbState{}
	}
	r.engine.Simulate(math.Min(elapsed, MaxThinkElapsed))
}

// FindClosestUsableNode returns the node nearest to p if it lies within
// MaxUseRadius.
func (r *ClimbableRope) FindClosestUsableNode(p mgl64.Vec3) (NodeIndex, bool) {
	if r == nil || len(r.nodes) == 0 {
		return 0, false
	}
	best := NodeIndex(0)
	bestSqr := math.Inf(1)
	for i := range r.nodes {
		if d := distSqr(r.nodes[i].Pos, p); d < bestSqr {
			best, bestSqr = NodeIndex(i), d
		}
	}
	if bestSqr > MaxUseRadius*MaxUseRadius {
		return 0, false
	}
	return best, true
}

// Attach starts climbing with o. It does nothing while another occupant
// is climbing and reports whether o was attached.
func (r *ClimbableRope) Attach(o Occupant) bool {
	if r == nil || o == nil || r.climb.phase == ClimbClimbing {
		return false
	}
	r.log.Debug("occupant is climbing rope")
	r.climb = climbState{phase: ClimbClimbing, occupant: o}
	o.SetMoveMode(MoveFly)
	return true
}

// Detach lets go of the current occupant and reports whether there was one.
func (r *ClimbableRope) Detach() bool {
	if r == nil || r.climb.phase != ClimbClimbing {
		return false
	}
	r.log.Debug("occupant has detached from rope")
	o := r.climb.occupant
	r.climb = climbState{}
	if o.Alive() {
		o.SetMoveMode(MoveWalk)
	}
	return true
}

// Release detaches any occupant and drops the engine and its arrays. The
// rope is unusable afterwards.
func (r *ClimbableRope) Release() {
	if r == nil {
		return
	}
	r.Detach()
	r.engine = nil
	r.helper = nil
	r.nodes = nil
	r.springs = nil
}

func (r *ClimbableRope) Phase() ClimbPhase {
	if r == nil {
		return ClimbIdle
	}
	return r.climb.phase
}

func (r *ClimbableRope) IsBeingClimbed() bool {
	return r.Phase() == ClimbClimbing
}

// Occupant returns the climbing occupant, if any.
func (r *ClimbableRope) Occupant() (Occupant, bool) {
	if r == nil || r.climb.phase != ClimbClimbing {
		return nil, false
	}
	return r.climb.occupant, true
}

func (r *ClimbableRope) RopeLength() float64 {
	if r == nil {
		return 0
	}
	return r.cfg.Length
}

func (r *ClimbableRope) Config() Config {
	if r == nil {
		return Config{}
	}
	return r.cfg
}

// Engine exposes the underlying simulation for inspection.
func (r *ClimbableRope) Engine() *Engine {
	if r == nil {
		return nil
	}
	return r.engine
}

func (r *ClimbableRope) NumNodes() int {
	if r == nil {
		return 0
	}
	return len(r.nodes)
}

// NodePosition returns the position of node i. It panics out of range.
func (r *ClimbableRope) NodePosition(i NodeIndex) mgl64.Vec3 {
	return r.engine.GetNode(i).Pos
}

// Nodes yields every node position from the anchor down.
func (r *ClimbableRope) Nodes() iter.Seq2[NodeIndex, mgl64.Vec3] {
	return func(yield func(NodeIndex, mgl64.Vec3) bool) {
		if r == nil {
			return
		}
		for i := range r.nodes {
			if !yield(NodeIndex(i), r.nodes[i].Pos) {
				return
			}
		}
	}
}
