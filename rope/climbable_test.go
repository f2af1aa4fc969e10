package rope

import (
	"errors"
	"io"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/go-gl/mathgl/mgl64"
)

type fakeOccupant struct {
	name  string
	mode  MoveMode
	dead  bool
	calls int
}

func (f *fakeOccupant) SetMoveMode(m MoveMode) {
	f.mode = m
	f.calls++
}

func (f *fakeOccupant) Alive() bool { return !f.dead }

func quietLogger() *log.Logger {
	return log.New(io.Discard)
}

func newTestRope(t *testing.T, cfg Config) *ClimbableRope {
	t.Helper()
	r, err := New(cfg, FixedAnchor{0, 0, 0}, WithLogger(quietLogger()))
	if err != nil {
		t.Fatalf("new rope: %v", err)
	}
	return r
}

func TestConfigValidate(t *testing.T) {
	cases := []struct {
		name string
		cfg  Config
		want error
	}{
		{"default", DefaultConfig(), nil},
		{"two_segments", Config{Length: 100, Segments: 2}, nil},
		{"one_segment", Config{Length: 100, Segments: 1}, ErrTooFewSegments},
		{"zero_segments", Config{Length: 100, Segments: 0}, ErrTooFewSegments},
		{"too_short", Config{Length: 10, Segments: 4}, ErrBadLength},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			err := c.cfg.Validate()
			if c.want == nil && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if c.want != nil && !errors.Is(err, c.want) {
				t.Fatalf("got %v, want %v", err, c.want)
			}
		})
	}
}

func TestNewRejectsBadConfig(t *testing.T) {
	r, err := New(Config{Length: 100, Segments: 1}, FixedAnchor{}, WithLogger(quietLogger()))
	if !errors.Is(err, ErrTooFewSegments) {
		t.Fatalf("err = %v, want ErrTooFewSegments", err)
	}
	if r != nil {
		t.Fatalf("expected nil rope on error")
	}
}

func TestDefaultConfigRestLength(t *testing.T) {
	cfg := DefaultConfig()
	want := (1024.0 + 32 - 70) / 7
	if got := cfg.RestLength(); got != want {
		t.Fatalf("rest length = %f, want %f", got, want)
	}
	r := newTestRope(t, cfg)
	if r.NumNodes() != 8 || r.Engine().NumSprings() != 7 {
		t.Fatalf("nodes=%d springs=%d", r.NumNodes(), r.Engine().NumSprings())
	}
	if r.RopeLength() != 1024 {
		t.Fatalf("rope length = %f", r.RopeLength())
	}
}

func TestNewWarmsUpIntoHangingRope(t *testing.T) {
	r := newTestRope(t, DefaultConfig())
	last := r.NodePosition(NodeIndex(r.NumNodes() - 1))
	if last.Z() > -0.9*float64(r.NumNodes()-1)*r.Config().RestLength() {
		t.Fatalf("rope did not hang after warm-up, bottom z=%f", last.Z())
	}
}

func TestAttachIsExclusive(t *testing.T) {
	r := newTestRope(t, DefaultConfig())
	a := &fakeOccupant{name: "a"}
	b := &fakeOccupant{name: "b"}

	if !r.Attach(a) {
		t.Fatalf("first attach should succeed")
	}
	if r.Attach(b) {
		t.Fatalf("second attach should be a no-op")
	}
	occ, ok := r.Occupant()
	if !ok || occ != a {
		t.Fatalf("occupant = %v, want a", occ)
	}
	if a.mode != MoveFly {
		t.Fatalf("a mode = %v, want fly", a.mode)
	}
	if b.calls != 0 {
		t.Fatalf("b should not have been touched, calls=%d", b.calls)
	}
	if r.Phase() != ClimbClimbing || !r.IsBeingClimbed() {
		t.Fatalf("phase = %v", r.Phase())
	}
}

func TestDetachIsIdempotent(t *testing.T) {
	r := newTestRope(t, DefaultConfig())
	a := &fakeOccupant{}
	r.Attach(a)

	if !r.Detach() {
		t.Fatalf("first detach should report an occupant")
	}
	if a.mode != MoveWalk {
		t.Fatalf("mode after detach = %v, want walk", a.mode)
	}
	calls := a.calls
	if r.Detach() {
		t.Fatalf("second detach should be a no-op")
	}
	if a.calls != calls || r.IsBeingClimbed() {
		t.Fatalf("second detach had an effect")
	}
	if _, ok := r.Occupant(); ok {
		t.Fatalf("occupant should be cleared")
	}
}

func TestThinkDropsVanishedOccupant(t *testing.T) {
	r := newTestRope(t, DefaultConfig())
	a := &fakeOccupant{}
	r.Attach(a)

	a.dead = true
	calls := a.calls
	r.Think(1.0 / 60.0)

	if r.IsBeingClimbed() {
		t.Fatalf("rope should be idle after occupant vanished")
	}
	if a.calls != calls {
		t.Fatalf("vanished occupant should not be mutated")
	}
	b := &fakeOccupant{}
	if !r.Attach(b) {
		t.Fatalf("rope should accept a new occupant")
	}
}

func TestFindClosestUsableNode(t *testing.T) {
	r := newTestRope(t, Config{Length: 200, Segments: 3})
	r.nodes[0].Pos = mgl64.Vec3{0, 0, 0}
	r.nodes[1].Pos = mgl64.Vec3{0, 0, -40}
	r.nodes[2].Pos = mgl64.Vec3{0, 0, -80}

	cases := []struct {
		name   string
		p      mgl64.Vec3
		want   NodeIndex
		wantOK bool
	}{
		{"closer_to_middle", mgl64.Vec3{10, 0, -45}, 1, true},
		{"inside_two_radii_picks_nearest", mgl64.Vec3{0, 0, -25}, 1, true},
		{"top", mgl64.Vec3{5, 5, 0}, 0, true},
		{"bottom_edge_of_radius", mgl64.Vec3{0, 0, -80 - MaxUseRadius}, 2, true},
		{"all_far", mgl64.Vec3{100, 100, 100}, 0, false},
		{"just_outside", mgl64.Vec3{MaxUseRadius + 0.5, 0, 0}, 0, false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, ok := r.FindClosestUsableNode(c.p)
			if ok != c.wantOK {
				t.Fatalf("ok = %v, want %v", ok, c.wantOK)
			}
			if ok && got != c.want {
				t.Fatalf("node = %d, want %d", got, c.want)
			}
		})
	}
}

func TestReleaseDetachesAndDropsEngine(t *testing.T) {
	r := newTestRope(t, DefaultConfig())
	a := &fakeOccupant{}
	r.Attach(a)
	r.Release()

	if a.mode != MoveWalk {
		t.Fatalf("release should restore walking")
	}
	if r.Engine() != nil || r.NumNodes() != 0 {
		t.Fatalf("release should drop the engine")
	}
	r.Think(0.1)
	if _, ok := r.FindClosestUsableNode(mgl64.Vec3{}); ok {
		t.Fatalf("released rope should not report usable nodes")
	}
}

func TestNodesIteratesFromAnchor(t *testing.T) {
	r := newTestRope(t, DefaultConfig())
	var count int
	for i, p := range r.Nodes() {
		if i == 0 && p != (mgl64.Vec3{}) {
			t.Fatalf("first node = %v, want anchor", p)
		}
		count++
	}
	if count != r.NumNodes() {
		t.Fatalf("iterated %d nodes, want %d", count, r.NumNodes())
	}
}
