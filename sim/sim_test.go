package sim

import (
	"io"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/ropeclimb/ecs"
	"github.com/milk9111/ropeclimb/ecs/component"
	"github.com/milk9111/ropeclimb/ecs/entity"
	"github.com/milk9111/ropeclimb/rope"
)

func newTestSim(t *testing.T, autopilot bool) *Sim {
	t.Helper()
	cfg := DefaultConfig()
	cfg.Autopilot = autopilot
	cfg.Logger = log.New(io.Discard)
	s, err := New(cfg)
	if err != nil {
		t.Fatalf("new sim: %v", err)
	}
	return s
}

func TestNewRejectsBadFPS(t *testing.T) {
	cfg := DefaultConfig()
	cfg.FPS = 0
	if _, err := New(cfg); err == nil {
		t.Fatalf("expected error for zero fps")
	}
}

func TestNewPlacesClimberOnGroundUnderRope(t *testing.T) {
	s := newTestSim(t, false)
	p := s.ClimberPosition()
	if p.Z() != s.GroundZ+36 {
		t.Fatalf("climber z = %f, want %f", p.Z(), s.GroundZ+36)
	}
	r := s.ClimbableRope()
	if r == nil || r.NodePosition(0) != DefaultConfig().Anchor {
		t.Fatalf("rope not anchored at the configured point")
	}
}

func TestAutopilotClimbsAndLetsGo(t *testing.T) {
	s := newTestSim(t, true)

	var seen []string
	for i := 0; i < 1200 && !s.Done(); i++ {
		for _, ev := range s.Tick() {
			seen = append(seen, ev.Type)
		}
	}
	if !s.Done() {
		t.Fatalf("autopilot did not finish, events=%v", seen)
	}
	if len(seen) != 2 || seen[0] != ecs.EventRopeAttached || seen[1] != ecs.EventRopeDetached {
		t.Fatalf("events = %v", seen)
	}

	for i := 0; i < 120; i++ {
		s.Tick()
	}
	c, _ := ecs.Get(s.World, s.Climber, component.ClimberComponent.Kind())
	if c.Mode != rope.MoveWalk || c.Rope != nil {
		t.Fatalf("climber should be walking, got %+v", c)
	}
	if s.ClimbableRope().IsBeingClimbed() {
		t.Fatalf("rope should be idle")
	}
	if z := s.ClimberPosition().Z(); z > s.GroundZ+40 {
		t.Fatalf("climber should have landed, z=%f ground=%f", z, s.GroundZ)
	}
}

func TestTickWithoutAutopilotKeepsRopeHanging(t *testing.T) {
	s := newTestSim(t, false)
	for i := 0; i < 120; i++ {
		if evs := s.Tick(); len(evs) != 0 {
			t.Fatalf("unexpected events %v", evs)
		}
	}
	if s.Frame() != 120 || s.Done() {
		t.Fatalf("frame=%d done=%v", s.Frame(), s.Done())
	}
	r := s.ClimbableRope()
	if r.NodePosition(0) != DefaultConfig().Anchor {
		t.Fatalf("anchor drifted")
	}
}

func TestAutopilotRetargetsWhenRopeIsGone(t *testing.T) {
	s := newTestSim(t, false)
	other, err := entity.NewRopeAt(s.World, "", mgl64.Vec3{200, 0, 400})
	if err != nil {
		t.Fatalf("second rope: %v", err)
	}
	ecs.DestroyEntity(s.World, s.Rope)

	p := NewAutopilot(s.Climber, s.Rope)
	s.World.Advance(1.0 / 60.0)
	p.Update(s.World)
	if p.Done() || p.rope != other {
		t.Fatalf("pilot should follow the remaining rope, rope=%v done=%v", p.rope, p.Done())
	}

	ecs.DestroyEntity(s.World, other)
	p.Update(s.World)
	if !p.Done() {
		t.Fatalf("pilot should stop once no rope is left")
	}
}
