// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package wsview

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/gogpu/mandelbrot"
	"github.com/gogpu/mandelbrot/internal/cache"
)

// ErrBadRequest is reported to the browser for requests that cannot be
// applied.
var ErrBadRequest = errors.New("wsview: bad request")

//go:embed index.html
var indexHTML []byte

// DefaultFrameCacheSize is the default budget, in encoded bytes, of the
// frame cache shared by all sessions.
const DefaultFrameCacheSize = 32 << 20

// frameKey identifies a rendered frame. Rendering is deterministic, so equal
// keys give byte-identical frames.
type frameKey struct {
	view mandelbrot.Viewport
	size mandelbrot.Size
}

// Server is an http.Handler source for the websocket viewer.
type Server struct {
	renderer *mandelbrot.Renderer
	buffer   mandelbrot.Size
	start    mandelbrot.Viewport
	log      *slog.Logger
	upgrader websocket.Upgrader
	frames   *cache.Cache[frameKey, []byte] // nil when disabled

	// Upgraded connections are hijacked, so http.Server.Shutdown does not
	// wait for them. The server tracks them itself.
	mu       sync.Mutex
	closed   bool
	conns    map[*websocket.Conn]struct{}
	sessions sync.WaitGroup
}

// Option configures a Server.
type Option func(*Server)

// WithBufferSize sets the size of the rendered frames. Default 960x540.
func WithBufferSize(size mandelbrot.Size) Option {
	return func(s *Server) {
		s.buffer = size
	}
}

// WithViewport sets the view new connections and resets start from.
func WithViewport(v mandelbrot.Viewport) Option {
	return func(s *Server) {
		s.start = v
	}
}

// WithLogger sets the logger. Default mandelbrot.Logger().
func WithLogger(l *slog.Logger) Option {
	return func(s *Server) {
		s.log = l
	}
}

// WithCheckOrigin sets the websocket origin check. The default accepts
// same-origin requests only.
func WithCheckOrigin(fn func(r *http.Request) bool) Option {
	return func(s *Server) {
		s.upgrader.CheckOrigin = fn
	}
}

// WithFrameCache sets the budget in bytes of the cache of encoded frames.
// Views that many sessions share (the start view, landmarks) are then
// rendered once. A budget of 0 or less disables the cache.
func WithFrameCache(budget int) Option {
	return func(s *Server) {
		s.frames = nil
		if budget > 0 {
			s.frames = cache.New[frameKey, []byte](budget, func(b []byte) int { return len(b) })
		}
	}
}

// New creates a Server that renders with r.
func New(r *mandelbrot.Renderer, opts ...Option) *Server {
	s := &Server{
		renderer: r,
		buffer:   mandelbrot.Size{Width: 960, Height: 540},
		start:    mandelbrot.DefaultViewport(),
		log:      mandelbrot.Logger(),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 64 * 1024,
		},
		conns: make(map[*websocket.Conn]struct{}),
	}
	WithFrameCache(DefaultFrameCacheSize)(s)
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Handler returns a mux serving the page at / and the websocket at /ws.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.serveIndex)
	mux.HandleFunc("/ws", s.ServeWS)
	return mux
}

func (s *Server) serveIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(indexHTML)
}

// ServeWS upgrades the request and runs a viewer session until the
// connection closes.
//
// After Shutdown, ServeWS answers 503 Service Unavailable.
func (s *Server) ServeWS(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		http.Error(w, "wsview: server is shutting down", http.StatusServiceUnavailable)
		return
	}
	s.sessions.Add(1)
	s.mu.Unlock()
	defer s.sessions.Done()

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already replied to the client.
		s.log.Warn("wsview: upgrade failed", "remote", r.RemoteAddr, "err", err)
		return
	}
	defer conn.Close()

	if !s.track(conn) {
		return
	}
	defer s.untrack(conn)

	sess := &session{
		server: s,
		conn:   conn,
		view:   s.start,
		buf:    mandelbrot.NewPixelBuffer(s.buffer.Width, s.buffer.Height),
	}
	s.log.Info("wsview: session started", "remote", r.RemoteAddr)
	err = sess.run()
	s.log.Info("wsview: session ended", "remote", r.RemoteAddr, "err", err)
}

func (s *Server) track(conn *websocket.Conn) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return false
	}
	s.conns[conn] = struct{}{}
	return true
}

func (s *Server) untrack(conn *websocket.Conn) {
	s.mu.Lock()
	delete(s.conns, conn)
	s.mu.Unlock()
}

// Shutdown refuses new sessions, closes the open ones and waits until every
// session has returned, or until ctx is done. A session in the middle of a
// render finishes that render first.
//
// Once Shutdown returns nil the renderer is no longer in use and may be
// closed. Shutdown is safe to call more than once.
func (s *Server) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	s.closed = true
	deadline := time.Now().Add(time.Second)
	for conn := range s.conns {
		msg := websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down")
		_ = conn.WriteControl(websocket.CloseMessage, msg, deadline)
		_ = conn.Close()
	}
	s.mu.Unlock()

	done := make(chan struct{})
	go func() {
		s.sessions.Wait()
		close(done)
	}()
	select {
	case <-done:
		s.log.Info("wsview: all sessions closed")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// session is the state of one connection.
type session struct {
	server *Server
	conn   *websocket.Conn
	view   mandelbrot.Viewport
	buf    *mandelbrot.PixelBuffer
}

func (ss *session) run() error {
	if err := ss.sendFrame(); err != nil {
		return err
	}
	for {
		_, msg, err := ss.conn.ReadMessage()
		if err != nil {
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				return nil
			}
			return err
		}

		var req Request
		if err := json.Unmarshal(msg, &req); err != nil {
			err = fmt.Errorf("%w: %v", ErrBadRequest, err)
			if werr := ss.sendError(err); werr != nil {
				return werr
			}
			continue
		}

		if err := ss.apply(req); err != nil {
			ss.server.log.Debug("wsview: request rejected", "type", req.Type, "err", err)
			if werr := ss.sendError(err); werr != nil {
				return werr
			}
			continue
		}
		if err := ss.sendFrame(); err != nil {
			return err
		}
	}
}

// apply updates the session viewport for req.
func (ss *session) apply(req Request) error {
	switch req.Type {
	case TypeClick:
		button, err := parseButton(req.Button)
		if err != nil {
			return err
		}
		window := mandelbrot.Size{Width: req.Width, Height: req.Height}
		if window.Width == 0 && window.Height == 0 {
			window = ss.buf.Size()
		}
		v, err := mandelbrot.OnClick(ss.view, mandelbrot.Point{X: req.X, Y: req.Y},
			window, ss.buf.Size(), button, ss.server.renderer.Orientation())
		if err != nil {
			return fmt.Errorf("%w: %v", ErrBadRequest, err)
		}
		ss.view = v
	case TypeReset:
		ss.view = ss.server.start
	case TypeGoto:
		v, ok := mandelbrot.Landmark(req.Landmark)
		if !ok {
			return fmt.Errorf("%w: unknown landmark %q", ErrBadRequest, req.Landmark)
		}
		ss.view = v
	case TypeRender:
	default:
		return fmt.Errorf("%w: unknown type %q", ErrBadRequest, req.Type)
	}
	return nil
}

// sendFrame sends the state and the PNG of the current view.
func (ss *session) sendFrame() error {
	png, err := ss.frame()
	if err != nil {
		return err
	}
	if err := ss.conn.WriteJSON(stateResponse(ss.view, ss.buf.Size())); err != nil {
		return err
	}
	return ss.conn.WriteMessage(websocket.BinaryMessage, png)
}

// frame returns the encoded current view, from the cache when possible.
func (ss *session) frame() ([]byte, error) {
	key := frameKey{view: ss.view, size: ss.buf.Size()}
	frames := ss.server.frames
	if frames != nil {
		if png, ok := frames.Get(key); ok {
			return png, nil
		}
	}

	if err := ss.server.renderer.Render(ss.view, ss.buf); err != nil {
		return nil, fmt.Errorf("wsview: render: %w", err)
	}
	var png bytes.Buffer
	if err := ss.buf.EncodePNG(&png); err != nil {
		return nil, fmt.Errorf("wsview: encode: %w", err)
	}

	if frames != nil {
		frames.Set(key, png.Bytes())
	}
	return png.Bytes(), nil
}

func (ss *session) sendError(err error) error {
	resp := stateResponse(ss.view, ss.buf.Size())
	resp.Type = TypeError
	resp.Error = err.Error()
	return ss.conn.WriteJSON(resp)
}
