package cubedcarac

import "github.com/golang/geo/r3"

// dist2 returns the squared Euclidean distance between two points.
func dist2(p, q r3.Vector) Real { return p.Sub(q).Norm2() }

// dist returns the Euclidean distance between two points.
func dist(p, q r3.Vector) Real { return p.Sub(q).Norm() }

// centroid4 is the plain average of four corners (not the spherical centroid).
func centroid4(a, b, c, d r3.Vector) r3.Vector {
	return a.Add(b).Add(c).Add(d).Mul(0.25)
}
