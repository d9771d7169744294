package turret

import "github.com/go-gl/mathgl/mgl64"

// Node is a transform owned by the host engine. Rotations are unit
// quaternions; local rotations are relative to the node's parent. Setting a
// rotation must be visible to the node's children immediately.
type Node interface {
	Position() mgl64.Vec3
	Forward() mgl64.Vec3
	Up() mgl64.Vec3
	Right() mgl64.Vec3

	Rotation() mgl64.Quat
	SetRotation(q mgl64.Quat)
	LocalRotation() mgl64.Quat
	SetLocalRotation(q mgl64.Quat)
}

// Rig names the transforms a turret drives. Root is the turret's own frame
// and supplies the reference forward, up and resting orientation. Base is
// the traverse pivot and must be a child of Root. Barrels, when present, is
// the elevation pivot and a child of Base.
type Rig struct {
	Root    Node
	Base    Node
	Barrels Node
}
