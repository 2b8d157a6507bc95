package cubedcarac

import (
	"math"

	"github.com/golang/geo/r3"
	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
)

// RadiusCorners selects which corners feed RadiusMax/RadiusMin.
type RadiusCorners uint8

const (
	// CornersABCD samples the centroid distance to all four corners.
	CornersABCD RadiusCorners = iota
	// CornersLegacyABCB samples A, B, C and B again, ignoring D.
	// It reproduces radii stored by earlier runs.
	CornersLegacyABCB
)

func (c RadiusCorners) String() string {
	switch c {
	case CornersLegacyABCB:
		return "legacy"
	default:
		return "abcd"
	}
}

// ParseRadiusCorners maps "abcd"/"" and "legacy" to a corner policy.
func ParseRadiusCorners(s string) (RadiusCorners, error) {
	switch s {
	case "", "abcd":
		return CornersABCD, nil
	case "legacy", "abcb":
		return CornersLegacyABCB, nil
	}
	return CornersABCD, errors.Errorf("unknown radius corner policy %q (want abcd or legacy)", s)
}

// Options tune ComputeMetrics.
type Options struct {
	Corners RadiusCorners
	Workers int  // <= 1 runs serially
	Strict  bool // return the collected NumericDomainErrors as an error
}

// Metrics holds the four (N-1)×(N-1) cell fields of one face.
type Metrics struct {
	N           int
	Corners     RadiusCorners
	Area        *Field
	Ellipticity *Field // |AC| / |BD|
	RadiusMax   *Field
	RadiusMin   *Field
	Issues      []*NumericDomainError
}

// Cells returns the number of cells per axis.
func (m *Metrics) Cells() int { return m.N - 1 }

// CellMetrics are the metrics of a single quadrilateral.
type CellMetrics struct {
	Area, Ellipticity, RadiusMax, RadiusMin Real
}

// QuadArea returns the area of the planar quadrilateral ABCD from its diagonals
// and edges, and the raw radicand 4·p²q² − (b²+d²−a²−c²)². A negative radicand
// is clamped to zero before the square root.
func QuadArea(a, b, c, d r3.Vector) (area, radicand Real) {
	p2, q2 := dist2(a, c), dist2(b, d)
	a2, b2, c2, d2 := dist2(a, b), dist2(b, c), dist2(c, d), dist2(d, a)
	return quadArea(p2, q2, a2, b2, c2, d2)
}

func quadArea(p2, q2, a2, b2, c2, d2 Real) (Real, Real) {
	s := b2 + d2 - a2 - c2
	rad := 4*p2*q2 - s*s
	if rad < 0 {
		return 0, rad
	}
	return math.Sqrt(rad) / 4, rad
}

// Cell computes the metrics of the cell with corners A=(i,j), B=(i,j+1),
// C=(i+1,j+1), D=(i+1,j). Issues are empty for a well-formed cell; a cell
// can carry both an area and an ellipticity issue.
func Cell(a, b, c, d r3.Vector, corners RadiusCorners) (CellMetrics, []*NumericDomainError) {
	var out CellMetrics

	p2, q2 := dist2(a, c), dist2(b, d)
	a2, b2, c2, d2 := dist2(a, b), dist2(b, c), dist2(c, d), dist2(d, a)

	area, rad := quadArea(p2, q2, a2, b2, c2, d2)
	out.Area = area
	issues := domainIssues(p2, q2, rad)

	if q2 == 0 {
		out.Ellipticity = math.Inf(1)
	} else {
		out.Ellipticity = math.Sqrt(p2 / q2)
	}

	cen := centroid4(a, b, c, d)
	fourth := d
	if corners == CornersLegacyABCB {
		fourth = b
	}
	ri := [4]Real{dist(cen, a), dist(cen, b), dist(cen, c), dist(cen, fourth)}
	out.RadiusMax, out.RadiusMin = ri[0], ri[0]
	for _, r := range ri[1:] {
		out.RadiusMax = math.Max(out.RadiusMax, r)
		out.RadiusMin = math.Min(out.RadiusMin, r)
	}
	return out, issues
}

// domainIssues flags a radicand below rounding noise and a zero BD diagonal.
func domainIssues(p2, q2, rad Real) []*NumericDomainError {
	var issues []*NumericDomainError
	if rad < -RadicandRelTol*4*p2*q2 {
		issues = append(issues, &NumericDomainError{Kind: KindArea, Value: rad})
	}
	if q2 == 0 {
		issues = append(issues, &NumericDomainError{Kind: KindEllipticity, Value: q2})
	}
	return issues
}

// ComputeMetrics measures every interior cell of g.
func ComputeMetrics(g *Grid, opts Options) (*Metrics, error) {
	if g == nil {
		return nil, errors.New("nil grid")
	}
	return ComputeMetricsNodes(g.Nodes, g.N, opts)
}

// ComputeMetricsNodes measures every interior cell of a flat row-major n×n node
// array. With opts.Strict the metrics are still fully populated and returned
// together with the aggregated per-cell errors.
func ComputeMetricsNodes(nodes []r3.Vector, n int, opts Options) (*Metrics, error) {
	if err := ValidateResolution(n); err != nil {
		return nil, err
	}
	if len(nodes) != n*n {
		return nil, errors.Errorf("node count %d does not match N=%d (want %d)", len(nodes), n, n*n)
	}
	cells := n - 1
	m := &Metrics{
		N:           n,
		Corners:     opts.Corners,
		Area:        NewField(cells, cells),
		Ellipticity: NewField(cells, cells),
		RadiusMax:   NewField(cells, cells),
		RadiusMin:   NewField(cells, cells),
	}

	if opts.Workers > 1 && cells > 1 {
		m.Issues = computeRowsParallel(m, nodes, opts.Workers)
	} else {
		m.Issues = computeRows(m, nodes, 0, cells)
	}
	DebugLog("Computed metrics for %d cells (%s corners), %d issues", cells*cells, opts.Corners, len(m.Issues))

	if opts.Strict && len(m.Issues) > 0 {
		var result *multierror.Error
		for _, issue := range m.Issues {
			result = multierror.Append(result, issue)
		}
		return m, result.ErrorOrNil()
	}
	return m, nil
}

// computeRows fills cell rows [i0, i1) of m and returns their issues.
// It writes only to its own rows, so disjoint ranges may run concurrently.
func computeRows(m *Metrics, nodes []r3.Vector, i0, i1 int) []*NumericDomainError {
	n := m.N
	var issues []*NumericDomainError
	for ip := i0 * n; ip < i1*n; ip++ {
		i, j := ip/n, ip%n
		// last row/column have no forward neighbour
		if (i+1)%n == 0 || (j+1)%n == 0 {
			continue
		}
		A := nodes[ip]
		B := nodes[ip+1]
		C := nodes[ip+n+1]
		D := nodes[ip+n]

		cm, cellIssues := Cell(A, B, C, D, m.Corners)
		m.Area.Set(i, j, cm.Area)
		m.Ellipticity.Set(i, j, cm.Ellipticity)
		m.RadiusMax.Set(i, j, cm.RadiusMax)
		m.RadiusMin.Set(i, j, cm.RadiusMin)
		for _, issue := range cellIssues {
			issue.I, issue.J = i, j
			issues = append(issues, issue)
		}
	}
	return issues
}
