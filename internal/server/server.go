// Package server streams a rotating globe to SSH terminals.
package server

import (
	"context"
	"fmt"
	"io"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gliderlabs/ssh"
	"go.uber.org/zap"

	"github.com/Faultbox/globe/internal/logger"
	"github.com/Faultbox/globe/internal/termview"
	"github.com/Faultbox/globe/pkg/globe"
)

// Config holds server settings.
type Config struct {
	Addr        string
	HostKey     string // PEM file; empty uses a key generated at startup
	FrameRate   int    // frames per second
	SpinDeg     int    // degrees of longitude per frame, 0 disables spin
	StepDeg     int    // degrees per key press
	IdleTimeout time.Duration
	Workers     int
	Home        globe.Rotation
	Background  globe.RGB
}

// Server wraps the SSH listener and renders one globe per session.
type Server struct {
	cfg      Config
	world    globe.Heightmap
	cm       globe.ColorMap
	renderer *globe.Renderer
	log      *zap.Logger

	sessions atomic.Int64
	srv      *ssh.Server
}

// New creates a server for world. Call Start to listen.
func New(cfg Config, world globe.Heightmap, cm globe.ColorMap) *Server {
	if cfg.FrameRate <= 0 {
		cfg.FrameRate = 10
	}
	return &Server{
		cfg:      cfg,
		world:    world,
		cm:       cm,
		renderer: &globe.Renderer{Workers: cfg.Workers},
		log:      logger.Named("server"),
	}
}

// Start begins listening for SSH connections. It blocks until the server
// is shut down.
func (s *Server) Start() error {
	if err := s.world.Validate(); err != nil {
		return err
	}

	s.srv = &ssh.Server{
		Addr:        s.cfg.Addr,
		Handler:     s.handleSession,
		IdleTimeout: s.cfg.IdleTimeout,
	}

	if s.cfg.HostKey != "" {
		if err := s.srv.SetOption(ssh.HostKeyFile(s.cfg.HostKey)); err != nil {
			return fmt.Errorf("set host key: %w", err)
		}
	}

	s.log.Info("SSH server listening",
		zap.String("addr", s.cfg.Addr),
		zap.Int("world_width", s.world.Width),
		zap.Int("world_height", s.world.Height))

	err := s.srv.ListenAndServe()
	if err == ssh.ErrServerClosed {
		return nil
	}
	return err
}

// Shutdown stops accepting connections and waits for sessions to end or
// ctx to expire.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.srv == nil {
		return nil
	}
	return s.srv.Shutdown(ctx)
}

// Sessions returns the number of connected sessions.
func (s *Server) Sessions() int64 {
	return s.sessions.Load()
}

func (s *Server) handleSession(sess ssh.Session) {
	ptyReq, winCh, ok := sess.Pty()
	if !ok {
		fmt.Fprintln(sess, "Error: PTY required. Use: ssh -t ...")
		_ = sess.Exit(1)
		return
	}

	user := sess.User()
	if user == "" {
		user = "anonymous"
	}
	log := s.log.With(zap.String("user", user), zap.String("remote", sess.RemoteAddr().String()))

	n := s.sessions.Add(1)
	log.Info("session started", zap.Int64("sessions", n))
	defer func() {
		n := s.sessions.Add(-1)
		log.Info("session ended", zap.Int64("sessions", n))
	}()

	termW, termH := ptyReq.Window.Width, ptyReq.Window.Height
	var termMu sync.Mutex
	resized := true

	io.WriteString(sess, termview.EnableAltScreen())
	io.WriteString(sess, termview.HideCursor())
	io.WriteString(sess, termview.ClearScreen())
	defer func() {
		io.WriteString(sess, termview.Reset)
		io.WriteString(sess, termview.ShowCursor())
		io.WriteString(sess, termview.DisableAltScreen())
	}()

	actionCh := make(chan Action, 16)
	quitCh := make(chan struct{})

	// Goroutine: read input
	go func() {
		defer close(quitCh)
		buf := make([]byte, 64)
		for {
			n, err := sess.Read(buf)
			if err != nil {
				return
			}
			for _, a := range parseInput(buf[:n]) {
				if a == ActionQuit {
					return
				}
				select {
				case actionCh <- a:
				default:
				}
			}
		}
	}()

	// Goroutine: handle window resizes
	go func() {
		for win := range winCh {
			termMu.Lock()
			termW, termH = win.Width, win.Height
			resized = true
			termMu.Unlock()
		}
	}()

	cam := newCamera(s.cfg.Home, s.cfg.StepDeg, s.cfg.SpinDeg)
	fr := newFrame(s.renderer, s.world, s.cm, s.cfg.Background)

	ticker := time.NewTicker(time.Second / time.Duration(s.cfg.FrameRate))
	defer ticker.Stop()

	for {
		select {
		case <-quitCh:
			return
		case <-sess.Context().Done():
			return
		case a := <-actionCh:
			cam.apply(a)
		case <-ticker.C:
			cam.tick()
		}

		termMu.Lock()
		w, h, changed := termW, termH, resized
		resized = false
		termMu.Unlock()

		if changed {
			fr.resize(w, h)
			io.WriteString(sess, termview.ClearScreen())
			log.Debug("terminal resized", zap.Int("cols", w), zap.Int("rows", h))
		}

		out, err := fr.draw(cam)
		if err != nil {
			log.Error("render failed", zap.Error(err))
			return
		}
		if len(out) > 0 {
			if _, err := io.WriteString(sess, out); err != nil {
				return
			}
		}
	}
}
