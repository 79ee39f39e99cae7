// Package web serves the explorer to a browser: a page with a canvas,
// and a websocket carrying pointer events in and rendered frames out.
package web

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"golang.org/x/sync/errgroup"

	"github.com/joshvictor1024/mandelview/pkg/fractal"
	"github.com/joshvictor1024/mandelview/pkg/render"
	"github.com/joshvictor1024/mandelview/pkg/viewport"
)

//go:embed assets/*
var assets embed.FS

type Config struct {
	Render  render.Config
	Initial fractal.Viewport
	MinZoom float64
	MaxZoom float64
	HUD     bool
}

// Server gives every websocket connection its own viewport and render worker.
type Server struct {
	cfg    Config
	logger *slog.Logger
	static http.Handler
}

func NewServer(cfg Config, logger *slog.Logger) (*Server, error) {
	if err := cfg.Render.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.Initial.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.Default()
	}
	sub, err := fs.Sub(assets, "assets")
	if err != nil {
		return nil, err
	}
	return &Server{
		cfg:    cfg,
		logger: logger,
		static: http.FileServerFS(sub),
	}, nil
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.serveWS)
	mux.Handle("/", s.static)
	return mux
}

func (s *Server) serveWS(w http.ResponseWriter, r *http.Request) {
	c, err := websocket.Accept(w, r, nil)
	if err != nil {
		s.logger.Warn("websocket accept", "err", err)
		return
	}
	defer c.CloseNow()

	logger := s.logger.With("remote", r.RemoteAddr)
	logger.Info("client connected")
	err = s.session(r.Context(), c, logger)
	switch {
	case err == nil:
		c.Close(websocket.StatusNormalClosure, "")
	case errors.Is(err, ErrBadMessage):
		logger.Warn("closing client", "err", err)
		c.Close(websocket.StatusUnsupportedData, err.Error())
	default:
		logger.Info("client gone", "err", err)
	}
}

func (s *Server) session(ctx context.Context, c *websocket.Conn, logger *slog.Logger) error {
	worker, err := render.NewWorker(s.cfg.Render, logger)
	if err != nil {
		return err
	}
	var opts []viewport.Option
	opts = append(opts, viewport.WithLogger(logger))
	if s.cfg.MinZoom > 0 {
		opts = append(opts, viewport.WithZoomLimits(s.cfg.MinZoom, s.cfg.MaxZoom))
	}
	ctrl, err := viewport.New(s.cfg.Initial, worker.Request, opts...)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return worker.Run(gctx)
	})
	g.Go(func() error {
		return s.sendFrames(gctx, c, worker)
	})
	g.Go(func() error {
		// the client leaving ends the session
		defer cancel()
		return s.readEvents(gctx, c, ctrl, logger)
	})

	ctrl.Redraw()
	return g.Wait()
}

func (s *Server) sendFrames(ctx context.Context, c *websocket.Conn, worker *render.Worker) error {
	for {
		f, ok := worker.NextFrame()
		if !ok {
			return nil
		}
		img := render.Compose(f, s.cfg.HUD, s.cfg.Initial.Zoom)
		if err := c.Write(ctx, websocket.MessageBinary, EncodeFrame(img)); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("write frame: %w", err)
		}
	}
}

func (s *Server) readEvents(ctx context.Context, c *websocket.Conn, ctrl *viewport.Controller, logger *slog.Logger) error {
	for {
		var m message
		if err := wsjson.Read(ctx, c, &m); err != nil {
			switch websocket.CloseStatus(err) {
			case websocket.StatusNormalClosure, websocket.StatusGoingAway:
				return nil
			}
			if ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("read event: %w", err)
		}
		e, err := m.event()
		if err != nil {
			return err
		}
		if err := ctrl.Handle(e); err != nil {
			logger.Debug("event ignored", "type", m.Type, "err", err)
		}
	}
}
