package ecs

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/gunturrets/common"
	"github.com/milk9111/gunturrets/ecs/component"
)

// maxHierarchyDepth bounds parent walks so a cycle cannot hang a tick.
const maxHierarchyDepth = 64

// Pose is a world-space position and orientation.
type Pose struct {
	Position mgl64.Vec3
	Rotation mgl64.Quat
}

func identityPose() Pose {
	return Pose{Rotation: mgl64.QuatIdent()}
}

// WorldPose composes e's transform with all of its parents. ok is false when
// e has no Transform.
func WorldPose(w *World, e Entity) (Pose, bool) {
	kind := component.TransformComponent.Kind()
	t, ok := Get(w, e, kind)
	if !ok {
		return identityPose(), false
	}

	pose := Pose{Position: t.Position, Rotation: rotation(t.Rotation)}
	parent := Entity(t.Parent)
	for depth := 0; parent.Valid() && depth < maxHierarchyDepth; depth++ {
		pt, ok := Get(w, parent, kind)
		if !ok {
			break
		}
		r := rotation(pt.Rotation)
		pose.Position = pt.Position.Add(r.Rotate(pose.Position))
		pose.Rotation = r.Mul(pose.Rotation).Normalize()
		parent = Entity(pt.Parent)
	}
	return pose, true
}

// rotation treats the zero quaternion of an unset Transform as identity.
func rotation(q mgl64.Quat) mgl64.Quat {
	if q.W == 0 && q.V == (mgl64.Vec3{}) {
		return mgl64.QuatIdent()
	}
	return q
}

// TransformNode exposes an entity's Transform as a scene node. Reads resolve
// the hierarchy on every call, so a rotation written to a parent is seen by
// its children immediately.
type TransformNode struct {
	w *World
	e Entity
}

func NewTransformNode(w *World, e Entity) *TransformNode {
	return &TransformNode{w: w, e: e}
}

func (n *TransformNode) Entity() Entity { return n.e }

func (n *TransformNode) Position() mgl64.Vec3 {
	pose, _ := WorldPose(n.w, n.e)
	return pose.Position
}

func (n *TransformNode) Rotation() mgl64.Quat {
	pose, _ := WorldPose(n.w, n.e)
	return pose.Rotation
}

func (n *TransformNode) Forward() mgl64.Vec3 { return common.Forward(n.Rotation()) }
func (n *TransformNode) Up() mgl64.Vec3      { return common.Up(n.Rotation()) }
func (n *TransformNode) Right() mgl64.Vec3   { return common.Right(n.Rotation()) }

func (n *TransformNode) LocalRotation() mgl64.Quat {
	t, ok := Get(n.w, n.e, component.TransformComponent.Kind())
	if !ok {
		return mgl64.QuatIdent()
	}
	return rotation(t.Rotation)
}

func (n *TransformNode) SetLocalRotation(q mgl64.Quat) {
	if t, ok := Get(n.w, n.e, component.TransformComponent.Kind()); ok {
		t.Rotation = q
	}
}

// SetRotation sets the world rotation by converting it into the parent's
// frame.
func (n *TransformNode) SetRotation(q mgl64.Quat) {
	t, ok := Get(n.w, n.e, component.TransformComponent.Kind())
	if !ok {
		return
	}
	parent := mgl64.QuatIdent()
	if p := Entity(t.Parent); p.Valid() {
		if pose, ok := WorldPose(n.w, p); ok {
			parent = pose.Rotation
		}
	}
	t.Rotation = parent.Conjugate().Mul(q).Normalize()
}

// EntityTarget reports an entity's world position as an aim target. A dead
// entity, or one whose Target is not present, has no position.
type EntityTarget struct {
	World  *World
	Entity Entity
}

func (t EntityTarget) TargetPosition() (mgl64.Vec3, bool) {
	if !t.World.IsAlive(t.Entity) {
		return mgl64.Vec3{}, false
	}
	if target, ok := Get(t.World, t.Entity, component.TargetComponent.Kind()); ok && !target.Present {
		return mgl64.Vec3{}, false
	}
	pose, ok := WorldPose(t.World, t.Entity)
	return pose.Position, ok
}
