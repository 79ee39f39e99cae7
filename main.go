package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/veandco/go-sdl2/sdl"

	"github.com/joshvictor1024/mandelview/pkg/fractal"
	"github.com/joshvictor1024/mandelview/pkg/render"
	"github.com/joshvictor1024/mandelview/pkg/web"
)

// how long the SDL loop waits for input before checking for a finished frame
const eventWaitMs = 15

func init() {
	// SDL video calls must stay on the main thread
	runtime.LockOSThread()
}

func main() {
	if err := run(os.Args[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		log.Fatalf("run: %v", err)
	}
}

func run(args []string) error {
	cfg, err := parseFlags(args, os.Stderr)
	if err != nil {
		return err
	}
	logger, err := newLogger(os.Stderr, cfg.logLevel)
	if err != nil {
		return err
	}
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("starting", "mode", cfg.mode,
		"width", cfg.width, "height", cfg.height,
		"max_iter", cfg.maxIter, "concurrency", cfg.concurrency)
	switch cfg.mode {
	case modeWeb:
		return runWeb(ctx, cfg, logger)
	case modePNG:
		return runPNG(ctx, cfg, logger)
	default:
		return runSDL(ctx, cfg, logger)
	}
}

func sdlInit(windowTitle string, w, h int) (*sdl.Window, *sdl.Renderer, error) {
	if err := sdl.Init(sdl.INIT_VIDEO | sdl.INIT_TIMER); err != nil {
		return nil, nil, err
	}
	sdl.StopTextInput()

	window, err := sdl.CreateWindow(
		windowTitle,
		sdl.WINDOWPOS_UNDEFINED, sdl.WINDOWPOS_UNDEFINED,
		int32(w), int32(h), sdl.WINDOW_OPENGL,
	)
	if err != nil {
		sdl.Quit()
		return nil, nil, err
	}

	renderer, err := sdl.CreateRenderer(window, -1, sdl.RENDERER_ACCELERATED)
	if err != nil {
		window.Destroy()
		sdl.Quit()
		return nil, nil, err
	}

	return window, renderer, nil
}

func sdlClose(window *sdl.Window, renderer *sdl.Renderer) {
	renderer.Destroy()
	window.Destroy()
	sdl.Quit()
}

func runSDL(ctx context.Context, cfg config, logger *slog.Logger) error {
	window, renderer, err := sdlInit("Mandelbrot", cfg.width, cfg.height)
	if err != nil {
		return fmt.Errorf("sdl: %w", err)
	}
	defer sdlClose(window, renderer)

	s, err := newScene(ctx, renderer, cfg, logger)
	if err != nil {
		return err
	}
	defer s.close()

	for ctx.Err() == nil {
		// WaitEventTimeout must be on the same thread that did INIT_VIDEO
		for e := sdl.WaitEventTimeout(eventWaitMs); e != nil; e = sdl.PollEvent() {
			if !s.handleEvent(e) {
				return nil
			}
		}

		renderer.SetDrawColor(0, 0, 0, 255)
		renderer.Clear()
		if err := s.draw(); err != nil {
			return err
		}
		renderer.Present()
	}
	return nil
}

func runWeb(ctx context.Context, cfg config, logger *slog.Logger) error {
	srv, err := web.NewServer(web.Config{
		Render:  cfg.renderConfig(),
		Initial: cfg.initialViewport(),
		MinZoom: cfg.minZoom,
		MaxZoom: cfg.maxZoom,
		HUD:     cfg.hud,
	}, logger)
	if err != nil {
		return err
	}

	httpServer := &http.Server{
		Addr:              cfg.addr,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
		// sessions end with ctx; Shutdown does not wait for hijacked connections
		BaseContext: func(net.Listener) context.Context { return ctx },
	}
	errCh := make(chan error, 1)
	go func() {
		errCh <- httpServer.ListenAndServe()
	}()
	logger.Info("listening", "url", "http://"+cfg.addr)

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return httpServer.Shutdown(shutdownCtx)
}

func runPNG(ctx context.Context, cfg config, logger *slog.Logger) error {
	start := time.Now()
	f, err := fractal.RenderFrame(ctx, cfg.width, cfg.height, cfg.initialViewport(), uint32(cfg.maxIter), cfg.concurrency)
	if err != nil {
		return fmt.Errorf("render: %w", err)
	}
	logger.Info("frame rendered", "elapsed", time.Since(start))

	out, err := os.Create(cfg.out)
	if err != nil {
		return err
	}
	if err := render.WritePNG(out, render.Compose(f, cfg.hud, cfg.zoom), cfg.scale); err != nil {
		out.Close()
		return err
	}
	if err := out.Close(); err != nil {
		return err
	}
	logger.Info("saved", "file", cfg.out, "scale", cfg.scale)
	return nil
}
