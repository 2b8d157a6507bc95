package cubedcarac

import (
	"testing"

	"github.com/golang/geo/r3"
)

func TestParallelMatchesSerial(t *testing.T) {
	g, err := Generate(37)
	if err != nil {
		t.Fatal(err)
	}
	serial, err := ComputeMetrics(g, Options{})
	if err != nil {
		t.Fatal(err)
	}
	for _, workers := range []int{2, 3, 8, 64} {
		par, err := ComputeMetrics(g, Options{Workers: workers})
		if err != nil {
			t.Fatal(err)
		}
		for k := range serial.Area.Data {
			if serial.Area.Data[k] != par.Area.Data[k] ||
				serial.Ellipticity.Data[k] != par.Ellipticity.Data[k] ||
				serial.RadiusMax.Data[k] != par.RadiusMax.Data[k] ||
				serial.RadiusMin.Data[k] != par.RadiusMin.Data[k] {
				t.Fatalf("workers=%d: cell %d differs", workers, k)
			}
		}
	}
}

func TestParallelIssuesInRowOrder(t *testing.T) {
	n := 6
	nodes := make([]r3.Vector, n*n)
	for k := range nodes {
		nodes[k] = r3.Vector{X: 1}
	}
	m, err := ComputeMetricsNodes(nodes, n, Options{Workers: 4})
	if err != nil {
		t.Fatal(err)
	}
	if len(m.Issues) != (n-1)*(n-1) {
		t.Fatalf("issues: %d", len(m.Issues))
	}
	for k, issue := range m.Issues {
		if issue.I != k/(n-1) || issue.J != k%(n-1) {
			t.Fatalf("issue %d at (%d,%d)", k, issue.I, issue.J)
		}
	}
}

func TestDefaultWorkers(t *testing.T) {
	if DefaultWorkers() < 1 {
		t.Fatal("DefaultWorkers < 1")
	}
}
