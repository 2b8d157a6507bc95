package main

import (
	"context"
	"os"
	"runtime/pprof"

	"github.com/jessevdk/go-flags"

	"github.com/lukaszgryglicki/cubedcarac/internal/cubedcarac"
)

type options struct {
	Config  string `long:"config" short:"c" description:"JSON config file"`
	Out     string `long:"out" short:"o" description:"output directory for PNG figures (implies PNG)"`
	DB      string `long:"db" description:"SQLite file to store the run in"`
	Legacy  bool   `long:"legacy-radius" description:"sample corners A,B,C,B for radii, matching results of earlier runs"`
	Strict  bool   `long:"strict" description:"exit non-zero when any cell leaves the numeric domain"`
	Workers int    `long:"workers" short:"w" description:"shard the cell loop over this many goroutines"`
	Args    struct {
		N string `positional-arg-name:"N" description:"samples per face axis (>= 2)"`
	} `positional-args:"yes"`
}

func main() {
	cubedcarac.SetDebug(os.Getenv("DEBUG") != "")
	cubedcarac.PNG = os.Getenv("PNG") != ""
	cubedcarac.Parallel = os.Getenv("PARALLEL") != ""
	log := cubedcarac.Logger

	var opts options
	if _, err := flags.Parse(&opts); err != nil {
		if flags.WroteHelp(err) {
			return
		}
		os.Exit(2)
	}

	if os.Getenv("PROFILE") != "" {
		f, err := os.Create("cpu.out")
		if err != nil {
			log.Fatal(err)
		}
		if err := pprof.StartCPUProfile(f); err != nil {
			log.Fatal(err)
		}
		defer func() {
			pprof.StopCPUProfile()
			_ = f.Close()
		}()
	}

	cfg, err := cubedcarac.LoadConfig(opts.Config)
	if err != nil {
		log.WithError(err).Error("config")
		os.Exit(1)
	}
	if opts.Args.N != "" || opts.Config == "" {
		n, err := cubedcarac.ParseResolution(opts.Args.N)
		if err != nil {
			log.WithError(err).Error("usage: cubedcarac [options] N")
			os.Exit(2)
		}
		cfg.N = n
	}
	if opts.Out != "" {
		cfg.OutDir = opts.Out
		cubedcarac.PNG = true
	}
	if opts.DB != "" {
		cfg.DB = opts.DB
	}
	if opts.Legacy {
		cfg.Corners = cubedcarac.CornersLegacyABCB.String()
	}
	if opts.Strict {
		cfg.Strict = true
	}
	if opts.Workers > 0 {
		cfg.Workers = opts.Workers
	}

	if _, err := cubedcarac.Run(context.Background(), cfg); err != nil {
		log.WithError(err).Error("run failed")
		os.Exit(1)
	}
}
