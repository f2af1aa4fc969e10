package rope

import "github.com/go-gl/mathgl/mgl64"

// Gravity is the constant acceleration applied to every rope node, in
// world units per second squared. World space is Z-up.
var Gravity = mgl64.Vec3{0, 0, -1500}

// Helper supplies the external forces and hard constraints for an Engine.
type Helper interface {
	// AccelerationFor returns the acceleration applied to node i for the
	// next integration step.
	AccelerationFor(nodes []Node, i NodeIndex) mgl64.Vec3
	// ApplyHardConstraints runs after integration and after every spring
	// relaxation pass.
	ApplyHardConstraints(nodes []Node)
}

// Pinner is implemented by helpers whose hard constraints hold some nodes
// in place. The engine then treats those nodes as immovable when relaxing.
type Pinner interface {
	Pinned(i NodeIndex) bool
}

// AnchorSource reports where the top of a rope is fixed.
type AnchorSource interface {
	AnchorPosition() mgl64.Vec3
}

// AnchorFunc adapts a plain function to AnchorSource.
type AnchorFunc func() mgl64.Vec3

func (f AnchorFunc) AnchorPosition() mgl64.Vec3 { return f() }

// FixedAnchor is an anchor that never moves.
type FixedAnchor mgl64.Vec3

func (a FixedAnchor) AnchorPosition() mgl64.Vec3 { return mgl64.Vec3(a) }

// AnchorHelper pulls every node down with Gravity and pins node 0 to the
// anchor. It only reads from Anchor.
type AnchorHelper struct {
	Anchor  AnchorSource
	Gravity mgl64.Vec3
}

// NewAnchorHelper returns a helper using the default Gravity.
func NewAnchorHelper(anchor AnchorSource) *AnchorHelper {
	return &AnchorHelper{Anchor: anchor, Gravity: Gravity}
}

func (h *AnchorHelper) AccelerationFor(_ []Node, _ NodeIndex) mgl64.Vec3 {
	return h.Gravity
}

func (h *AnchorHelper) ApplyHardConstraints(nodes []Node) {
	if len(nodes) == 0 || h.Anchor == nil {
		return
	}
	nodes[0].Pos = h.Anchor.AnchorPosition()
}

func (h *AnchorHelper) Pinned(i NodeIndex) bool {
	return i == 0
}
