package cubedcarac

import (
	"math"

	"github.com/golang/geo/r3"
	"github.com/golang/geo/s1"
)

// Grid holds the N×N unit-vector nodes of one equal-angle cube face.
// Nodes are flat, row-major: node(i,j) = Nodes[i*N+j].
type Grid struct {
	N      int
	Angles []s1.Angle // equal-angle lattice over [-π/4, π/4]
	Nodes  []r3.Vector
}

// Lattice returns n angles evenly spaced over the closed interval [-π/4, π/4].
// angle[k] == -angle[n-1-k] holds exactly and both endpoints are exact.
func Lattice(n int) []s1.Angle {
	if n < 1 {
		return nil
	}
	out := make([]s1.Angle, n)
	if n == 1 {
		return out
	}
	m := Real(n - 1)
	for k := 0; k < n; k++ {
		out[k] = s1.Angle(Real(2*k-(n-1)) / m * (math.Pi / 4))
	}
	return out
}

// Generate projects the equal-angle lattice of one cube face (the face plane
// z = 1/√3) onto the unit sphere. Column index j drives x, row index i drives y.
func Generate(n int) (*Grid, error) {
	if err := ValidateResolution(n); err != nil {
		return nil, err
	}
	angles := Lattice(n)
	xx := make([]Real, n)
	for k, a := range angles {
		xx[k] = faceHalf * math.Tan(a.Radians())
	}

	nodes := make([]r3.Vector, 0, n*n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			p := r3.Vector{X: xx[j], Y: xx[i], Z: faceHalf}
			nodes = append(nodes, p.Normalize())
		}
	}
	DebugLog("Generated grid N=%d: %d nodes", n, len(nodes))
	return &Grid{N: n, Angles: angles, Nodes: nodes}, nil
}

// idx is the flat index of node (i,j).
func (g *Grid) idx(i, j int) int { return i*g.N + j }

// At returns node (i,j).
func (g *Grid) At(i, j int) r3.Vector { return g.Nodes[g.idx(i, j)] }

// Cells returns the number of cells per axis.
func (g *Grid) Cells() int { return g.N - 1 }

// ThetaPhi returns the colatitude in [0,π] and the azimuth in (-π,π] of a unit vector.
func ThetaPhi(v r3.Vector) (theta, phi s1.Angle) {
	phi = s1.Angle(math.Atan2(v.Y, v.X))
	theta = s1.Angle(math.Acos(clamp(v.Z, -1, 1)))
	return theta, phi
}
