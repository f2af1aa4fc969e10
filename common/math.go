package common

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/jakecoffman/cp"
)

func Lerp(a, b, t float64) float64 {
	return a + t*(b-a)
}

func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func ClampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// ToPlane projects a Z-up world position onto the side-view physics plane.
func ToPlane(v mgl64.Vec3) cp.Vector {
	return cp.Vector{X: v.X(), Y: v.Z()}
}

// FromPlane lifts a physics position back into the world, keeping depth y.
func FromPlane(p cp.Vector, y float64) mgl64.Vec3 {
	return mgl64.Vec3{p.X, y, p.Y}
}
