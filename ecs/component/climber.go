package component

import (
	"github.com/charmbracelet/harmonica"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/ropeclimb/rope"
)

// Climber is an actor that can grab ropes. Rope is set while it is the
// rope's occupant and Grip is the node it holds.
type Climber struct {
	Mode       rope.MoveMode
	Rope       *rope.ClimbableRope
	Grip       rope.NodeIndex
	ClimbSpeed float64 // nodes per second
	MoveSpeed  float64

	climbProgress float64
}

// ClimbProgress returns the fraction of a node travelled toward the next grip.
func (c *Climber) ClimbProgress() float64 { return c.climbProgress }

// AddClimbProgress accumulates travel and returns whole nodes to move.
func (c *Climber) AddClimbProgress(delta float64) int {
	c.climbProgress += delta
	steps := int(c.climbProgress)
	c.climbProgress -= float64(steps)
	return steps
}

func (c *Climber) ResetClimbProgress() { c.climbProgress = 0 }

var ClimberComponent = NewComponent[Climber]("climber")

// ClimbEase smooths the climber toward its grip node. The spring
// coefficients depend on the step, so they are rebuilt whenever the frame
// time changes.
type ClimbEase struct {
	Frequency float64
	Damping   float64
	Vel       [3]float64

	spring harmonica.Spring
	dt     float64
}

// NewClimbEase builds an ease primed for fps. Ease re-tunes it to the real
// frame time on first use.
func NewClimbEase(fps int, frequency, damping float64) *ClimbEase {
	ce := &ClimbEase{Frequency: frequency, Damping: damping}
	if fps > 0 {
		ce.tune(harmonica.FPS(fps))
	}
	return ce
}

func (ce *ClimbEase) tune(dt float64) {
	ce.spring = harmonica.NewSpring(dt, ce.Frequency, ce.Damping)
	ce.dt = dt
}

// FrameTime is the step the spring is currently tuned for.
func (ce *ClimbEase) FrameTime() float64 { return ce.dt }

// Ease advances pos one dt-long step toward target.
func (ce *ClimbEase) Ease(dt float64, pos, target mgl64.Vec3) mgl64.Vec3 {
	if dt <= 0 {
		return pos
	}
	if dt != ce.dt {
		ce.tune(dt)
	}
	for i := 0; i < 3; i++ {
		pos[i], ce.Vel[i] = ce.spring.Update(pos[i], ce.Vel[i], target[i])
	}
	return pos
}

var ClimbEaseComponent = NewComponent[ClimbEase]("climb_ease")
