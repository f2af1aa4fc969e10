package system

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/ropeclimb/common"
	"github.com/milk9111/ropeclimb/ecs"
	"github.com/milk9111/ropeclimb/ecs/component"
	"github.com/milk9111/ropeclimb/rope"
)

// ClimbSystem moves climbers along the rope they hold and keeps their
// position on the grip node.
type ClimbSystem struct{}

func NewClimbSystem() *ClimbSystem {
	return &ClimbSystem{}
}

func (cs *ClimbSystem) Update(w *ecs.World) {
	if cs == nil || w == nil {
		return
	}
	dt := w.FrameTime()

	ecs.ForEach2(w, component.ClimberComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, c *component.Climber, t *component.Transform) {
		if c.Rope == nil {
			return
		}
		n := c.Rope.NumNodes()
		if n == 0 {
			return
		}

		if in, ok := ecs.Get(w, e, component.InputComponent.Kind()); ok && in.Climb != 0 {
			// Node 0 is the anchor, so climbing up lowers the index.
			steps := c.AddClimbProgress(common.Clamp(in.Climb, -1, 1) * c.ClimbSpeed * dt)
			c.Grip = rope.NodeIndex(common.ClampInt(int(c.Grip)-steps, 0, n-1))
		}
		c.Grip = rope.NodeIndex(common.ClampInt(int(c.Grip), 0, n-1))

		target := gripTarget(c, n)
		pos := target
		if ease, ok := ecs.Get(w, e, component.ClimbEaseComponent.Kind()); ok {
			pos = ease.Ease(dt, t.Vec(), target)
		}
		t.SetVec(pos)

		if pb, ok := ecs.Get(w, e, component.PhysicsBodyComponent.Kind()); ok && pb.Body != nil {
			pb.Body.SetPosition(common.ToPlane(pos))
			pb.Body.SetVelocity(0, 0)
		}
	})
}

// gripTarget is the grip node position, pulled toward the next node by the
// fraction already climbed.
func gripTarget(c *component.Climber, n int) mgl64.Vec3 {
	grip := c.Rope.NodePosition(c.Grip)
	progress := c.ClimbProgress()
	next := int(c.Grip) + 1
	if progress > 0 {
		next = int(c.Grip) - 1
	}
	if progress == 0 || next < 0 || next >= n {
		return grip
	}
	to := c.Rope.NodePosition(rope.NodeIndex(next))
	f := math.Abs(progress)
	return mgl64.Vec3{
		common.Lerp(grip.X(), to.X(), f),
		common.Lerp(grip.Y(), to.Y(), f),
		common.Lerp(grip.Z(), to.Z(), f),
	}
}
