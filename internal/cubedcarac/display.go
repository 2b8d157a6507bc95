package cubedcarac

import "math"

// Display holds the normalized forms of Metrics that get rendered.
// 2D maps keep the cell layout; the *Flat slices are row-major copies.
type Display struct {
	N              int
	ExpectedArea   Real
	ExpectedRadius Real

	AreaRatio      *Field // Area / ExpectedArea
	EllipticityDev *Field // |Ellipticity - 1|
	RadiusMaxRatio *Field // RadiusMax / ExpectedRadius
	RadiusMinRatio *Field // RadiusMin / ExpectedRadius

	RminFlat []Real
	RmaxFlat []Real
	RinFlat  []Real // Rmin·Rmax / sqrt(Rmin² + Rmax²)
}

// NewDisplay normalizes m by the reference constants of its resolution.
func NewDisplay(m *Metrics) *Display {
	aExp, rExp := ExpectedArea(m.N), ExpectedRadius(m.N)
	d := &Display{
		N:              m.N,
		ExpectedArea:   aExp,
		ExpectedRadius: rExp,
		AreaRatio:      m.Area.Scaled(1 / aExp),
		EllipticityDev: m.Ellipticity.Map(func(e Real) Real { return math.Abs(e - 1) }),
		RadiusMaxRatio: m.RadiusMax.Scaled(1 / rExp),
		RadiusMinRatio: m.RadiusMin.Scaled(1 / rExp),
	}
	d.RminFlat = d.RadiusMinRatio.Flatten()
	d.RmaxFlat = d.RadiusMaxRatio.Flatten()
	d.RinFlat = make([]Real, len(d.RminFlat))
	for k := range d.RinFlat {
		d.RinFlat[k] = harmonicRadius(d.RminFlat[k], d.RmaxFlat[k])
	}
	return d
}

func harmonicRadius(rmin, rmax Real) Real {
	den := math.Hypot(rmin, rmax)
	if den == 0 {
		return 0
	}
	return rmin * rmax / den
}
