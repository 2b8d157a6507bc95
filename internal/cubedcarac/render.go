package cubedcarac

import (
	"image/color"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

// Output file names, one per figure.
const (
	AreaPNG        = "area.png"
	EllipticityPNG = "ellipticity.png"
	RadiusPNG      = "radius.png"
	RadiusHistPNG  = "radius_hist.png"
	RinHistPNG     = "rin_hist.png"
)

var (
	rminColor = color.NRGBA{R: 31, G: 119, B: 180, A: 255}
	rmaxColor = color.NRGBA{R: 255, G: 127, B: 14, A: 128} // drawn at half alpha over Rmin
	rinColor  = color.NRGBA{R: 44, G: 160, B: 44, A: 255}
)

// Histograms are the radius histograms drawn by Render.
type Histograms struct {
	Rmin, Rmax, Rin *Histogram
}

// NewHistograms bins the flattened radius ratios of d. Rmin and Rmax share
// the configured range; Rin spans its own finite min..max.
func NewHistograms(d *Display, h HistCfg) Histograms {
	lo, hi := autoRange(d.RinFlat)
	return Histograms{
		Rmin: NewHistogram(d.RminFlat, h.Bins, h.Lo, h.Hi),
		Rmax: NewHistogram(d.RmaxFlat, h.Bins, h.Lo, h.Hi),
		Rin:  NewHistogram(d.RinFlat, h.Bins, lo, hi),
	}
}

// autoRange returns the finite min and max of x, widened to a unit range
// around the value when they coincide.
func autoRange(x []Real) (lo, hi Real) {
	s := Summarize(x)
	if s.Count == 0 {
		return 0, 1
	}
	if s.Max <= s.Min {
		return s.Min - 0.5, s.Min + 0.5
	}
	return s.Min, s.Max
}

// Render writes the three color maps and the two histogram plots into
// cfg.OutDir and returns the written paths.
func Render(d *Display, hists Histograms, cfg *Config) ([]string, error) {
	if err := os.MkdirAll(cfg.OutDir, 0o755); err != nil {
		return nil, errors.Wrap(err, "create output dir")
	}
	maps := []struct {
		name  string
		field *Field
		rng   *RangeCfg
	}{
		{AreaPNG, d.AreaRatio, cfg.Area},
		{EllipticityPNG, d.EllipticityDev, cfg.Ellipticity},
		{RadiusPNG, d.RadiusMaxRatio, cfg.Radius},
	}

	var written []string
	for k, m := range maps {
		path := filepath.Join(cfg.OutDir, m.name)
		if err := SaveFieldPNG16(m.field, path, m.rng.VMin, m.rng.VMax, cfg.PixelScale); err != nil {
			return written, err
		}
		Logger.Infof("[PNG]  %.2f%% %s", Real(k+1)*100/Real(len(maps)+2), path)
		written = append(written, path)
	}

	path := filepath.Join(cfg.OutDir, RadiusHistPNG)
	if err := SaveHistogramPNG(path, HistWidth, HistHeight,
		HistLayer{Hist: hists.Rmin, Color: rminColor},
		HistLayer{Hist: hists.Rmax, Color: rmaxColor},
	); err != nil {
		return written, err
	}
	written = append(written, path)

	path = filepath.Join(cfg.OutDir, RinHistPNG)
	if err := SaveHistogramPNG(path, HistWidth, HistHeight, HistLayer{Hist: hists.Rin, Color: rinColor}); err != nil {
		return written, err
	}
	written = append(written, path)
	Logger.Infof("[PNG]  100.00%% %s", cfg.OutDir)
	return written, nil
}
