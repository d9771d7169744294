package render

import "github.com/go-gl/mathgl/mgl64"

type Plane int

const (
	// PlaneTop looks down the Y axis: screen right is +X, screen up is +Z.
	PlaneTop Plane = iota
	// PlaneSide looks along -X: screen right is +Z, screen up is +Y.
	PlaneSide
)

// View maps world points onto a screen rectangle centred on (CenterX,
// CenterY) at Scale pixels per world unit.
type View struct {
	Plane   Plane
	CenterX float64
	CenterY float64
	Scale   float64
}

func (v View) Project(p mgl64.Vec3) (float32, float32) {
	var u, w float64
	switch v.Plane {
	case PlaneSide:
		u, w = p.Z(), p.Y()
	default:
		u, w = p.X(), p.Z()
	}
	return float32(v.CenterX + u*v.Scale), float32(v.CenterY - w*v.Scale)
}
