package main

import (
	"context"
	"log/slog"

	"github.com/veandco/go-sdl2/sdl"

	"github.com/joshvictor1024/mandelview/pkg/render"
	"github.com/joshvictor1024/mandelview/pkg/viewport"
)

// scene connects SDL input to the viewport controller and finished
// frames to the canvas.
type scene struct {
	canvas   *canvas
	ctrl     *viewport.Controller
	worker   *render.Worker
	hud      bool
	baseZoom float64
	logger   *slog.Logger
	done     chan struct{}
}

func newScene(ctx context.Context, r *sdl.Renderer, cfg config, logger *slog.Logger) (*scene, error) {
	worker, err := render.NewWorker(cfg.renderConfig(), logger)
	if err != nil {
		return nil, err
	}
	ctrl, err := viewport.New(cfg.initialViewport(), worker.Request,
		viewport.WithZoomLimits(cfg.minZoom, cfg.maxZoom),
		viewport.WithLogger(logger),
	)
	if err != nil {
		return nil, err
	}
	c, err := newCanvas(r, cfg.width, cfg.height)
	if err != nil {
		return nil, err
	}

	s := &scene{
		canvas:   c,
		ctrl:     ctrl,
		worker:   worker,
		hud:      cfg.hud,
		baseZoom: cfg.zoom,
		logger:   logger,
		done:     make(chan struct{}),
	}
	go func() {
		defer close(s.done)
		if err := worker.Run(ctx); err != nil {
			logger.Error("render worker", "err", err)
		}
	}()
	ctrl.Redraw()
	return s, nil
}

func (s *scene) close() {
	s.worker.Close()
	<-s.done
	s.canvas.close()
}

// handleEvent returns false when the user asked to quit.
func (s *scene) handleEvent(e sdl.Event) bool {
	var err error
	switch t := e.(type) {
	case *sdl.QuitEvent:
		s.logger.Info("quit event")
		return false
	case *sdl.MouseButtonEvent:
		if t.Button != sdl.BUTTON_LEFT {
			break
		}
		if t.Type == sdl.MOUSEBUTTONDOWN {
			err = s.ctrl.PointerDown(float64(t.X), float64(t.Y))
		} else if t.Type == sdl.MOUSEBUTTONUP {
			s.ctrl.PointerUp()
		}
	case *sdl.MouseMotionEvent:
		err = s.ctrl.PointerMove(float64(t.X), float64(t.Y))
	case *sdl.MouseWheelEvent:
		// SDL reports scrolling away from the user as positive
		dy := -float64(t.Y)
		if t.Direction == sdl.MOUSEWHEEL_FLIPPED {
			dy = -dy
		}
		if dy == 0 {
			break
		}
		x, y, _ := sdl.GetMouseState()
		err = s.ctrl.Scroll(dy, float64(x), float64(y))
	case *sdl.WindowEvent:
		if t.Event == sdl.WINDOWEVENT_LEAVE {
			s.ctrl.PointerUp()
		}
	case *sdl.KeyboardEvent:
		if t.Type != sdl.KEYDOWN {
			break
		}
		switch t.Keysym.Sym {
		case sdl.K_ESCAPE:
			s.logger.Info("esc event")
			return false
		case sdl.K_r:
			s.ctrl.Reset()
		}
	}
	if err != nil {
		s.logger.Debug("event ignored", "err", err)
	}
	return true
}

// draw shows the newest finished frame, or the previous one if none is waiting.
func (s *scene) draw() error {
	if f, ok := s.worker.TryFrame(); ok {
		if err := s.canvas.upload(render.Compose(f, s.hud, s.baseZoom)); err != nil {
			return err
		}
	}
	return s.canvas.draw()
}
