package ecs

import (
	"math"

	"github.com/jakecoffman/cp"
)

// maxPhysicsStep keeps large ticks from tunnelling bodies through walls.
// Past maxPhysicsSubsteps the substeps grow instead.
const (
	maxPhysicsStep     = 1.0 / 60.0
	maxPhysicsSubsteps = 600
)

// Bounds is the arena rectangle on the world XZ plane.
type Bounds struct {
	MinX, MinZ float64
	MaxX, MaxZ float64
}

// PhysicsWorld owns a gravity-free Chipmunk space. Chipmunk's X and Y are the
// world's X and Z.
type PhysicsWorld struct {
	space  *cp.Space
	bounds Bounds
	walls  []*cp.Shape
}

// NewPhysicsWorld creates a space enclosed by elastic walls along bounds.
func NewPhysicsWorld(bounds Bounds) *PhysicsWorld {
	space := cp.NewSpace()
	space.Iterations = 10
	space.SetGravity(cp.Vector{})

	pw := &PhysicsWorld{space: space, bounds: bounds}
	pw.buildWalls()
	return pw
}

func (pw *PhysicsWorld) buildWalls() {
	b := pw.bounds
	corners := []cp.Vector{
		{X: b.MinX, Y: b.MinZ},
		{X: b.MaxX, Y: b.MinZ},
		{X: b.MaxX, Y: b.MaxZ},
		{X: b.MinX, Y: b.MaxZ},
	}
	for i := range corners {
		shape := cp.NewSegment(pw.space.StaticBody, corners[i], corners[(i+1)%len(corners)], 0.5)
		shape.SetElasticity(1)
		shape.SetFriction(0)
		pw.space.AddShape(shape)
		pw.walls = append(pw.walls, shape)
	}
}

// Space returns the underlying Chipmunk space.
func (pw *PhysicsWorld) Space() *cp.Space {
	if pw == nil {
		return nil
	}
	return pw.space
}

func (pw *PhysicsWorld) Bounds() Bounds {
	if pw == nil {
		return Bounds{}
	}
	return pw.bounds
}

// AddDisc adds a frictionless, perfectly elastic disc at (x, z) moving with
// velocity (vx, vz).
func (pw *PhysicsWorld) AddDisc(x, z, vx, vz, radius float64) (*cp.Body, *cp.Shape) {
	if pw == nil || pw.space == nil {
		return nil, nil
	}
	if radius <= 0 {
		radius = 0.5
	}
	mass := 1.0
	body := cp.NewBody(mass, cp.MomentForCircle(mass, 0, radius, cp.Vector{}))
	body.SetPosition(cp.Vector{X: x, Y: z})
	body.SetVelocity(vx, vz)

	shape := cp.NewCircle(body, radius, cp.Vector{})
	shape.SetElasticity(1)
	shape.SetFriction(0)

	pw.space.AddBody(body)
	pw.space.AddShape(shape)
	return body, shape
}

// Remove detaches a disc created by AddDisc.
func (pw *PhysicsWorld) Remove(body *cp.Body, shape *cp.Shape) {
	if pw == nil || pw.space == nil {
		return
	}
	if shape != nil {
		pw.space.RemoveShape(shape)
	}
	if body != nil {
		pw.space.RemoveBody(body)
	}
}

// Step advances the simulation by dt seconds in substeps.
func (pw *PhysicsWorld) Step(dt float64) {
	if pw == nil || pw.space == nil || dt <= 0 {
		return
	}
	steps := min(int(math.Ceil(dt/maxPhysicsStep)), maxPhysicsSubsteps)
	sub := dt / float64(steps)
	for i := 0; i < steps; i++ {
		pw.space.Step(sub)
	}
}
