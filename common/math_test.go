package common

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func TestClamp(t *testing.T) {
	cases := []struct {
		v, lo, hi, want float64
	}{
		{5, 0, 10, 5},
		{-1, 0, 10, 0},
		{11, 0, 10, 10},
	}
	for _, c := range cases {
		if got := Clamp(c.v, c.lo, c.hi); got != c.want {
			t.Fatalf("Clamp(%v,%v,%v) = %v, want %v", c.v, c.lo, c.hi, got, c.want)
		}
	}
	if got := ClampInt(9, 1, 7); got != 7 {
		t.Fatalf("ClampInt = %d", got)
	}
}

func TestPlaneRoundTripKeepsDepth(t *testing.T) {
	v := mgl64.Vec3{3, -7, 12}
	p := ToPlane(v)
	if p.X != 3 || p.Y != 12 {
		t.Fatalf("ToPlane = %v", p)
	}
	if got := FromPlane(p, v.Y()); got != v {
		t.Fatalf("FromPlane = %v, want %v", got, v)
	}
}
