package main

import (
	"flag"
	"fmt"
	"io"
	"math"

	"github.com/joshvictor1024/mandelview/pkg/fractal"
	"github.com/joshvictor1024/mandelview/pkg/render"
	"github.com/joshvictor1024/mandelview/pkg/types"
	"github.com/joshvictor1024/mandelview/pkg/viewport"
)

const (
	modeSDL = "sdl"
	modeWeb = "web"
	modePNG = "png"
)

type config struct {
	mode        string
	width       int
	height      int
	maxIter     uint
	zoom        float64
	offsetX     float64
	offsetY     float64
	concurrency int
	minZoom     float64
	maxZoom     float64
	hud         bool
	addr        string
	out         string
	scale       float64
	logLevel    string
}

func parseFlags(args []string, output io.Writer) (config, error) {
	var cfg config
	fs := flag.NewFlagSet("mandelview", flag.ContinueOnError)
	fs.SetOutput(output)
	fs.StringVar(&cfg.mode, "mode", modeSDL, "shell to run: sdl, web or png")
	fs.IntVar(&cfg.width, "width", 800, "frame width in pixels")
	fs.IntVar(&cfg.height, "height", 600, "frame height in pixels")
	fs.UintVar(&cfg.maxIter, "max-iter", 100, "iteration cap")
	fs.Float64Var(&cfg.zoom, "zoom", 200, "initial zoom, pixels per unit")
	fs.Float64Var(&cfg.offsetX, "offset-x", -2, "initial real part at the top-left pixel")
	fs.Float64Var(&cfg.offsetY, "offset-y", -1, "initial imaginary part at the top-left pixel")
	fs.IntVar(&cfg.concurrency, "concurrency", 4, "row bands rendered in parallel")
	fs.Float64Var(&cfg.minZoom, "min-zoom", viewport.DefaultMinZoom, "smallest zoom reachable by scrolling")
	fs.Float64Var(&cfg.maxZoom, "max-zoom", viewport.DefaultMaxZoom, "largest zoom reachable by scrolling")
	fs.BoolVar(&cfg.hud, "hud", true, "overlay position and magnification")
	fs.StringVar(&cfg.addr, "addr", "localhost:8080", "listen address for -mode web")
	fs.StringVar(&cfg.out, "out", "mandel.png", "output file for -mode png")
	fs.Float64Var(&cfg.scale, "scale", 1, "resample factor for -mode png")
	fs.StringVar(&cfg.logLevel, "log-level", "info", "debug, info, warn or error")
	if err := fs.Parse(args); err != nil {
		return config{}, err
	}
	if fs.NArg() > 0 {
		return config{}, fmt.Errorf("unexpected arguments: %v", fs.Args())
	}
	return cfg, cfg.validate()
}

func (c config) validate() error {
	switch c.mode {
	case modeSDL, modeWeb, modePNG:
	default:
		return fmt.Errorf("unknown mode %q", c.mode)
	}
	if c.maxIter > math.MaxUint32 {
		return fmt.Errorf("max-iter %d does not fit in 32 bits", c.maxIter)
	}
	if err := c.renderConfig().Validate(); err != nil {
		return err
	}
	if err := c.initialViewport().Validate(); err != nil {
		return err
	}
	if !(c.minZoom > 0) || c.minZoom > c.zoom || c.zoom > c.maxZoom {
		return fmt.Errorf("%w: zoom %v outside [%v, %v]", fractal.ErrInvalidViewport, c.zoom, c.minZoom, c.maxZoom)
	}
	if _, err := resolveLogLevel(c.logLevel); err != nil {
		return err
	}
	if c.mode == modePNG {
		if c.out == "" {
			return fmt.Errorf("-out is required with -mode png")
		}
		if !(c.scale > 0) || math.IsInf(c.scale, 0) {
			return fmt.Errorf("invalid scale %v", c.scale)
		}
		if w, h := float64(c.width)*c.scale, float64(c.height)*c.scale; w > fractal.MaxDimension || h > fractal.MaxDimension {
			return fmt.Errorf("%w: scaled to %.0fx%.0f", fractal.ErrInvalidSize, w, h)
		}
	}
	return nil
}

func (c config) renderConfig() render.Config {
	return render.Config{
		Width:       c.width,
		Height:      c.height,
		MaxIter:     uint32(c.maxIter),
		Concurrency: c.concurrency,
	}
}

func (c config) initialViewport() fractal.Viewport {
	return fractal.Viewport{
		Zoom:   c.zoom,
		Offset: types.Pointf64{X: c.offsetX, Y: c.offsetY},
	}
}
