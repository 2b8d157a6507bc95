package cubedcarac

import (
	"encoding/json"
	"os"

	"github.com/pkg/errors"
)

// RangeCfg is a display clip range.
type RangeCfg struct {
	VMin Real `json:"vmin"`
	VMax Real `json:"vmax"`
}

type HistCfg struct {
	Bins int  `json:"bins,omitempty"`
	Lo   Real `json:"lo,omitempty"`
	Hi   Real `json:"hi,omitempty"`
}

type Config struct {
	N          int    `json:"n"`
	Corners    string `json:"corners,omitempty"` // "abcd" (default) or "legacy"
	Strict     bool   `json:"strict,omitempty"`
	Workers    int    `json:"workers,omitempty"`
	OutDir     string `json:"outDir,omitempty"`
	DB         string `json:"db,omitempty"`
	PixelScale int    `json:"pixelScale,omitempty"`

	Area        *RangeCfg `json:"area,omitempty"`
	Ellipticity *RangeCfg `json:"ellipticity,omitempty"`
	Radius      *RangeCfg `json:"radius,omitempty"`
	Hist        HistCfg   `json:"hist,omitempty"`
}

// DefaultConfig returns a config with every default filled in.
func DefaultConfig() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

func (cfg *Config) applyDefaults() {
	if cfg.N == 0 {
		cfg.N = DefaultN
	}
	if cfg.Corners == "" {
		cfg.Corners = CornersABCD.String()
	}
	if cfg.OutDir == "" {
		cfg.OutDir = OutDir
	}
	if cfg.PixelScale <= 0 {
		cfg.PixelScale = PixelScale
	}
	if cfg.Area == nil {
		cfg.Area = &RangeCfg{VMin: AreaVMin, VMax: AreaVMax}
	}
	if cfg.Ellipticity == nil {
		cfg.Ellipticity = &RangeCfg{VMin: EllipticityVMin, VMax: EllipticityVMax}
	}
	if cfg.Radius == nil {
		cfg.Radius = &RangeCfg{VMin: RadiusVMin, VMax: RadiusVMax}
	}
	if cfg.Hist.Bins <= 0 {
		cfg.Hist.Bins = HistBins
	}
	if cfg.Hist.Lo == 0 && cfg.Hist.Hi == 0 {
		cfg.Hist.Lo, cfg.Hist.Hi = HistLo, HistHi
	}
}

// Validate checks the resolution, the corner policy and the display ranges.
func (cfg *Config) Validate() error {
	if err := ValidateResolution(cfg.N); err != nil {
		return err
	}
	if _, err := ParseRadiusCorners(cfg.Corners); err != nil {
		return err
	}
	for name, r := range map[string]*RangeCfg{"area": cfg.Area, "ellipticity": cfg.Ellipticity, "radius": cfg.Radius} {
		if r.VMax <= r.VMin {
			return errors.Errorf("%s range is empty: [%g, %g]", name, r.VMin, r.VMax)
		}
	}
	if cfg.Hist.Hi <= cfg.Hist.Lo {
		return errors.Errorf("histogram range is empty: [%g, %g]", cfg.Hist.Lo, cfg.Hist.Hi)
	}
	return nil
}

// Options converts the config into metric options.
func (cfg *Config) Options() Options {
	corners, _ := ParseRadiusCorners(cfg.Corners)
	return Options{Corners: corners, Workers: cfg.Workers, Strict: cfg.Strict}
}

// LoadConfig reads a JSON config and fills defaults. An empty path yields
// DefaultConfig. The result is not validated, callers may still override N.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return DefaultConfig(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read config")
	}
	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, errors.Wrapf(err, "parse config %s", path)
	}
	cfg.applyDefaults()
	DebugLog("Loaded config from %s: N=%d, corners=%s, workers=%d, out=%s", path, cfg.N, cfg.Corners, cfg.Workers, cfg.OutDir)
	return &cfg, nil
}
