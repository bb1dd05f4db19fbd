package diagram

import (
	"math"

	"github.com/paulmach/orb"
)

// minSpan keeps the scale finite for selections that collapse to a line or point.
const minSpan = 1.0

// Projection maps world (x, z) coordinates into a pixel box with one scale
// on both axes. z increases upward.
type Projection struct {
	world  orb.Bound
	scale  float64
	left   float64
	bottom float64
}

// NewProjection fits world into the rectangle [left, left+width] x
// [top, top+height], centering the axis that has room to spare.
func NewProjection(world orb.Bound, left, top, width, height float64) Projection {
	dx := math.Max(world.Max.X()-world.Min.X(), minSpan)
	dz := math.Max(world.Max.Y()-world.Min.Y(), minSpan)
	// Widen degenerate axes around their center.
	cx, cz := world.Center().X(), world.Center().Y()
	world = orb.Bound{
		Min: orb.Point{math.Min(world.Min.X(), cx-dx/2), math.Min(world.Min.Y(), cz-dz/2)},
		Max: orb.Point{math.Max(world.Max.X(), cx+dx/2), math.Max(world.Max.Y(), cz+dz/2)},
	}

	scale := math.Min(width/dx, height/dz)
	padX := (width - dx*scale) / 2
	padZ := (height - dz*scale) / 2
	return Projection{
		world:  world,
		scale:  scale,
		left:   left + padX,
		bottom: top + height - padZ,
	}
}

// Point returns the pixel position of world point (x, z).
func (p Projection) Point(x, z float64) (px, py float64) {
	px = p.left + (x-p.world.Min.X())*p.scale
	py = p.bottom - (z-p.world.Min.Y())*p.scale
	return px, py
}

// Scale returns pixels per world unit.
func (p Projection) Scale() float64 { return p.scale }

// World returns the (possibly widened) world box being projected.
func (p Projection) World() orb.Bound { return p.world }
