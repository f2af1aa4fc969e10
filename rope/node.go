package rope

import "github.com/go-gl/mathgl/mgl64"

// NodeIndex addresses a node inside a rope's fixed node array.
type NodeIndex int

// Node is a point mass. Velocity is implicit in Pos - Prev.
type Node struct {
	Pos  mgl64.Vec3
	Prev mgl64.Vec3
}

// Init places the node at pos with zero implicit velocity.
func (n *Node) Init(pos mgl64.Vec3) {
	n.Pos = pos
	n.Prev = pos
}

// Velocity returns the per-step displacement carried into the next integration.
func (n *Node) Velocity() mgl64.Vec3 {
	return n.Pos.Sub(n.Prev)
}

// Spring keeps two adjacent nodes at a fixed distance.
type Spring struct {
	A, B    NodeIndex
	RestSqr float64
}

// NewChain allocates the node and spring arrays for a rope of count nodes,
// every node starting at origin. The arrays are never resized afterwards.
func NewChain(count int, origin mgl64.Vec3) ([]Node, []Spring) {
	nodes := make([]Node, count)
	for i := range nodes {
		nodes[i].Init(origin)
	}
	springs := make([]Spring, count-1)
	for i := range springs {
		springs[i] = Spring{A: NodeIndex(i), B: NodeIndex(i + 1)}
	}
	return nodes, springs
}

func distSqr(a, b mgl64.Vec3) float64 {
	d := a.Sub(b)
	return d.Dot(d)
}
