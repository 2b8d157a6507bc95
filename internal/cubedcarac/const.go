package cubedcarac

import "math"

// Display and output defaults.
const (
	MinResolution   = 2
	DefaultN        = 32
	HistBins        = 80
	HistLo          = 0.7
	HistHi          = 1.5
	AreaVMin        = 0.85
	AreaVMax        = 1.15
	EllipticityVMin = 0.0
	EllipticityVMax = 0.8
	RadiusVMin      = 0.85
	RadiusVMax      = 1.35
	PixelScale      = 8 // output pixels per cell edge
	HistWidth       = 640
	HistHeight      = 400
	OutDir          = "out"
	// negative area radicands above -RadicandRelTol*4*p2*q2 are rounding noise
	RadicandRelTol = 1e-12
)

// faceHalf is half the edge of the cube whose circumradius is 1.
var faceHalf = 1 / math.Sqrt(3)
