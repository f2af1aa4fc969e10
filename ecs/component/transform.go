package component

import "github.com/go-gl/mathgl/mgl64"

// Transform is a world position. World space is Z-up.
type Transform struct {
	X float64
	Y float64
	Z float64
}

func (t *Transform) Vec() mgl64.Vec3 {
	return mgl64.Vec3{t.X, t.Y, t.Z}
}

func (t *Transform) SetVec(v mgl64.Vec3) {
	t.X, t.Y, t.Z = v[0], v[1], v[2]
}

var TransformComponent = NewComponent[Transform]("transform")
