package cubedcarac

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/lukaszgryglicki/cubedcarac/internal/store"
)

// Result is everything one run produced.
type Result struct {
	Grid       *Grid
	Metrics    *Metrics
	Display    *Display
	Histograms Histograms
	Files      []string
	RunID      int64 // 0 unless stored
}

// Run generates the face, measures it, logs a summary and, depending on
// PNG and cfg.DB, renders figures and stores the run.
// In strict mode a non-nil Result is returned alongside the domain errors.
func Run(ctx context.Context, cfg *Config) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	opts := cfg.Options()
	opts.Workers = resolveWorkers(opts.Workers)

	start := time.Now()
	grid, err := Generate(cfg.N)
	if err != nil {
		return nil, err
	}
	m, metricsErr := ComputeMetrics(grid, opts)
	if m == nil {
		return nil, metricsErr
	}
	DebugLog("Metrics N=%d computed in %s", cfg.N, time.Since(start))

	res := &Result{Grid: grid, Metrics: m, Display: NewDisplay(m)}
	res.Histograms = NewHistograms(res.Display, cfg.Hist)
	logSummary(res)
	for _, issue := range m.Issues {
		Logger.WithField("cell", [2]int{issue.I, issue.J}).Warn(issue.Error())
	}

	if PNG {
		files, err := Render(res.Display, res.Histograms, cfg)
		res.Files = files
		if err != nil {
			return res, err
		}
	}

	if cfg.DB != "" {
		id, err := saveRun(ctx, cfg.DB, res)
		if err != nil {
			return res, err
		}
		res.RunID = id
		Logger.WithFields(logrus.Fields{"db": cfg.DB, "run": id}).Info("run stored")
	}
	return res, metricsErr
}

// resolveWorkers applies the Parallel toggle only when no worker count was set.
func resolveWorkers(workers int) int {
	if Parallel && workers == 0 {
		return DefaultWorkers()
	}
	return workers
}

func logSummary(res *Result) {
	d := res.Display
	area := Summarize(d.AreaRatio.Data)
	ellip := Summarize(d.EllipticityDev.Data)
	rmax := Summarize(d.RadiusMaxRatio.Data)
	rmin := Summarize(d.RadiusMinRatio.Data)
	Logger.WithFields(logrus.Fields{
		"N":               d.N,
		"cells":           len(d.AreaRatio.Data),
		"corners":         res.Metrics.Corners.String(),
		"expected_area":   d.ExpectedArea,
		"expected_radius": d.ExpectedRadius,
		"area_ratio":      [2]Real{area.Min, area.Max},
		"area_ratio_std":  area.StdDev,
		"ellipticity_max": ellip.Max,
		"rmax_ratio":      [2]Real{rmax.Min, rmax.Max},
		"rmin_ratio":      [2]Real{rmin.Min, rmin.Max},
		"issues":          len(res.Metrics.Issues),
	}).Info("cubed-sphere face metrics")
}

func finiteOr(v, def Real) Real {
	if isFinite(v) {
		return v
	}
	return def
}

// StoreRecords converts a result into store rows.
func StoreRecords(res *Result) (*store.Run, []store.Cell, []store.Node) {
	m := res.Metrics
	area := Summarize(m.Area.Data)
	ellip := Summarize(m.Ellipticity.Data)
	rmax := Summarize(m.RadiusMax.Data)
	rmin := Summarize(m.RadiusMin.Data)
	run := &store.Run{
		N:              m.N,
		Corners:        m.Corners.String(),
		ExpectedArea:   res.Display.ExpectedArea,
		ExpectedRadius: res.Display.ExpectedRadius,
		AreaMin:        finiteOr(area.Min, 0),
		AreaMax:        finiteOr(area.Max, 0),
		AreaMean:       finiteOr(area.Mean, 0),
		EllipMax:       finiteOr(ellip.Max, 0),
		RadiusMaxMax:   finiteOr(rmax.Max, 0),
		RadiusMinMin:   finiteOr(rmin.Min, 0),
		Issues:         len(m.Issues),
		CreatedAt:      time.Now().UnixNano(),
	}

	cells := make([]store.Cell, 0, len(m.Area.Data))
	for i := 0; i < m.Cells(); i++ {
		for j := 0; j < m.Cells(); j++ {
			cells = append(cells, store.Cell{
				I: i, J: j,
				Area:        m.Area.At(i, j),
				Ellipticity: m.Ellipticity.At(i, j),
				RadiusMax:   m.RadiusMax.At(i, j),
				RadiusMin:   m.RadiusMin.At(i, j),
			})
		}
	}

	g := res.Grid
	nodes := make([]store.Node, 0, len(g.Nodes))
	for i := 0; i < g.N; i++ {
		for j := 0; j < g.N; j++ {
			v := g.At(i, j)
			theta, phi := ThetaPhi(v)
			nodes = append(nodes, store.Node{
				I: i, J: j, X: v.X, Y: v.Y, Z: v.Z,
				Theta: theta.Radians(), Phi: phi.Radians(),
			})
		}
	}
	return run, cells, nodes
}

func saveRun(ctx context.Context, path string, res *Result) (int64, error) {
	db, err := store.Open(path)
	if err != nil {
		return 0, errors.Wrap(err, "open store")
	}
	defer db.Close()
	run, cells, nodes := StoreRecords(res)
	id, err := db.SaveRun(ctx, run, cells, nodes)
	if err != nil {
		return 0, errors.Wrap(err, "save run")
	}
	return id, nil
}
