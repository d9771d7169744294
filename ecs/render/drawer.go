package render

import (
	"image/color"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/gunturrets/turret"
	"golang.org/x/image/colornames"
)

// arcStep is the angular spacing, in degrees, of the lines filling an arc.
const arcStep = 4.0

type ray struct {
	origin, dir mgl64.Vec3
}

type arc struct {
	center, normal, from mgl64.Vec3
	angle, radius        float64
	kind                 turret.ArcKind
}

// Drawer collects turret debug geometry during a tick and draws it into any
// number of views. Call Reset at the start of each tick.
type Drawer struct {
	rays []ray
	arcs []arc
}

func NewDrawer() *Drawer {
	return &Drawer{}
}

func (d *Drawer) DrawRay(origin, dir mgl64.Vec3) {
	d.rays = append(d.rays, ray{origin: origin, dir: dir})
}

func (d *Drawer) DrawSolidArc(center, normal, from mgl64.Vec3, angle, radius float64, kind turret.ArcKind) {
	d.arcs = append(d.arcs, arc{center: center, normal: normal, from: from, angle: angle, radius: radius, kind: kind})
}

func (d *Drawer) Reset() {
	d.rays = d.rays[:0]
	d.arcs = d.arcs[:0]
}

func (d *Drawer) Draw(screen *ebiten.Image, v View) {
	if screen == nil {
		return
	}
	for _, a := range d.arcs {
		drawArc(screen, v, a)
	}
	for _, r := range d.rays {
		x0, y0 := v.Project(r.origin)
		x1, y1 := v.Project(r.origin.Add(r.dir))
		vector.StrokeLine(screen, x0, y0, x1, y1, 1, colornames.Yellow, true)
	}
}

func drawArc(screen *ebiten.Image, v View, a arc) {
	from := a.from
	if l := from.Len(); l > 0 {
		from = from.Mul(a.radius / l)
	}
	cx, cy := v.Project(a.center)
	clr := arcColor(a.kind)

	steps := int(math.Ceil(math.Abs(a.angle) / arcStep))
	for i := 0; i <= steps; i++ {
		deg := a.angle
		if steps > 0 {
			deg = a.angle * float64(i) / float64(steps)
		}
		p := a.center.Add(mgl64.QuatRotate(mgl64.DegToRad(deg), a.normal).Rotate(from))
		x, y := v.Project(p)
		vector.StrokeLine(screen, cx, cy, x, y, 1, clr, true)
	}
}

func arcColor(kind turret.ArcKind) color.Color {
	var c color.RGBA
	switch kind {
	case turret.ArcElevation:
		c = colornames.Red
	case turret.ArcDepression:
		c = colornames.Blue
	default:
		c = colornames.Green
	}
	// Premultiplied alpha at a quarter opacity.
	return color.RGBA{R: c.R / 4, G: c.G / 4, B: c.B / 4, A: 64}
}
