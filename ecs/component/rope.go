package component

import "github.com/milk9111/ropeclimb/rope"

// Rope attaches a climbable rope to an entity. The entity's Transform is
// the rope anchor.
type Rope struct {
	Rope   *rope.ClimbableRope
	Prefab string
}

var RopeComponent = NewComponent[Rope]("rope")

// RopeReloadRequest asks the RopeSystem to rebuild the rope from its prefab.
type RopeReloadRequest struct{}

var RopeReloadRequestComponent = NewComponent[RopeReloadRequest]("rope_reload_request")

// RopePendingDestroy tags a rope entity that the RopeSystem should release
// and destroy on its next update.
type RopePendingDestroy struct{}

var RopePendingDestroyComponent = NewComponent[RopePendingDestroy]("rope_pending_destroy")
