package component

import "github.com/go-gl/mathgl/mgl64"

// Transform is a node in the scene hierarchy. Position and Rotation are local
// to Parent, which is an entity handle or 0 for the world.
type Transform struct {
	Parent   uint64
	Position mgl64.Vec3
	Rotation mgl64.Quat
}

func NewTransform(parent uint64, pos mgl64.Vec3) *Transform {
	return &Transform{Parent: parent, Position: pos, Rotation: mgl64.QuatIdent()}
}

var TransformComponent = NewComponent[Transform]()
