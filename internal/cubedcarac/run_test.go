package cubedcarac

import (
	"context"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lukaszgryglicki/cubedcarac/internal/store"
)

func TestRunInMemory(t *testing.T) {
	PNG, Parallel = false, false
	cfg := DefaultConfig()
	cfg.N = 8
	res, err := Run(context.Background(), cfg)
	require.NoError(t, err)
	assert.Equal(t, 7, res.Metrics.Cells())
	assert.Empty(t, res.Files)
	assert.Zero(t, res.RunID)
	assert.Len(t, res.Histograms.Rmin.Counts, HistBins)
	assert.Equal(t, ExpectedArea(8), res.Display.ExpectedArea)
}

func TestRunRejectsBadResolution(t *testing.T) {
	cfg := DefaultConfig()
	cfg.N = 1
	_, err := Run(context.Background(), cfg)
	assert.ErrorIs(t, err, ErrInvalidResolution)
}

func TestRunRendersAndStores(t *testing.T) {
	PNG, Parallel = true, true
	defer func() { PNG, Parallel = false, false }()

	dir := t.TempDir()
	cfg := DefaultConfig()
	cfg.N = 6
	cfg.PixelScale = 2
	cfg.OutDir = filepath.Join(dir, "figs")
	cfg.DB = filepath.Join(dir, "runs.db")
	cfg.Corners = "legacy"

	res, err := Run(context.Background(), cfg)
	require.NoError(t, err)
	require.Len(t, res.Files, 5)
	for _, name := range []string{AreaPNG, EllipticityPNG, RadiusPNG, RadiusHistPNG, RinHistPNG} {
		_, err := os.Stat(filepath.Join(cfg.OutDir, name))
		assert.NoError(t, err, name)
	}
	require.NotZero(t, res.RunID)

	db, err := store.Open(cfg.DB)
	require.NoError(t, err)
	defer db.Close()
	ctx := context.Background()
	run, err := db.LoadRun(ctx, res.RunID)
	require.NoError(t, err)
	assert.Equal(t, 6, run.N)
	assert.Equal(t, "legacy", run.Corners)
	assert.InDelta(t, ExpectedRadius(6), run.ExpectedRadius, 1e-15)

	cells, err := db.LoadCells(ctx, res.RunID)
	require.NoError(t, err)
	require.Len(t, cells, 25)
	assert.Equal(t, res.Metrics.Area.At(4, 3), cells[4*5+3].Area)

	nodes, err := db.LoadNodes(ctx, res.RunID)
	require.NoError(t, err)
	require.Len(t, nodes, 36)
	v := res.Grid.At(0, 0)
	assert.Equal(t, v.Z, nodes[0].Z)
	assert.InDelta(t, math.Acos(v.Z), nodes[0].Theta, 1e-12)
}

func TestStoreRecordsSummaries(t *testing.T) {
	cfg := DefaultConfig()
	cfg.N = 5
	res, err := Run(context.Background(), cfg)
	require.NoError(t, err)
	run, cells, nodes := StoreRecords(res)
	assert.Len(t, cells, 16)
	assert.Len(t, nodes, 25)
	assert.Equal(t, "abcd", run.Corners)
	assert.LessOrEqual(t, run.AreaMin, run.AreaMean)
	assert.LessOrEqual(t, run.AreaMean, run.AreaMax)
	assert.LessOrEqual(t, run.RadiusMinMin, run.RadiusMaxMax)
}

func TestRinHistogramKeepsEveryValue(t *testing.T) {
	PNG, Parallel = false, false
	cfg := DefaultConfig()
	cfg.N = 48
	res, err := Run(context.Background(), cfg)
	require.NoError(t, err)
	h := res.Histograms.Rin
	assert.Equal(t, Real(len(res.Display.RinFlat)), h.Total())
	s := Summarize(res.Display.RinFlat)
	assert.Equal(t, s.Min, h.Lo)
	assert.Equal(t, s.Max, h.Hi)
	// Rmin/Rmax keep the configured display range
	assert.Equal(t, Real(HistLo), res.Histograms.Rmax.Lo)
	assert.Equal(t, Real(HistHi), res.Histograms.Rmax.Hi)
}

func TestAutoRange(t *testing.T) {
	lo, hi := autoRange([]Real{0.7, 0.65, math.Inf(1), 0.8})
	assert.Equal(t, 0.65, lo)
	assert.Equal(t, 0.8, hi)
	lo, hi = autoRange([]Real{2, 2})
	assert.Equal(t, 1.5, lo)
	assert.Equal(t, 2.5, hi)
	lo, hi = autoRange(nil)
	assert.Equal(t, 0.0, lo)
	assert.Equal(t, 1.0, hi)
}

func TestResolveWorkers(t *testing.T) {
	defer func() { Parallel = false }()
	Parallel = false
	assert.Equal(t, 0, resolveWorkers(0))
	assert.Equal(t, 3, resolveWorkers(3))
	Parallel = true
	assert.Equal(t, DefaultWorkers(), resolveWorkers(0))
	assert.Equal(t, 1, resolveWorkers(1), "explicit single worker wins over PARALLEL")
	assert.Equal(t, 5, resolveWorkers(5))
}
