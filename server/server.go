// Package server exposes a level over HTTP: the compiled graph, searches,
// a rendered picture, stored search statistics and a live chase stream
// over a websocket.
package server

import (
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/katalvlaran/mazechase/chase"
	"github.com/katalvlaran/mazechase/level"
	"github.com/katalvlaran/mazechase/render"
	"github.com/katalvlaran/mazechase/stats"
	"github.com/sirupsen/logrus"
)

var (
	// ErrNilLayout is returned when no layout is given.
	ErrNilLayout = errors.New("server: layout is nil")

	// ErrOptionViolation is returned when an invalid Option is supplied.
	ErrOptionViolation = errors.New("server: invalid option supplied")
)

// DefaultTick is the interval between two chase frames on the stream.
const DefaultTick = 50 * time.Millisecond

// SessionFunc starts a chase on a layout.
type SessionFunc func(l *level.Layout) (*chase.Session, error)

// Options configures a Server.
type Options struct {
	Logger  logrus.FieldLogger
	Store   *stats.Store
	Session SessionFunc
	Tick    time.Duration
	Render  []render.Option

	err error
}

// Option mutates Options.
type Option func(*Options)

// DefaultOptions returns the standard logger and DefaultTick.
func DefaultOptions() Options {
	return Options{Logger: logrus.StandardLogger(), Tick: DefaultTick}
}

// WithLogger sets the request and stream logger.
func WithLogger(l logrus.FieldLogger) Option {
	return func(o *Options) {
		if l != nil {
			o.Logger = l
		}
	}
}

// WithStore serves summaries from s on /stats.
func WithStore(s *stats.Store) Option { return func(o *Options) { o.Store = s } }

// WithSession enables /chase/ws with sessions built by fn.
func WithSession(fn SessionFunc) Option { return func(o *Options) { o.Session = fn } }

// WithTick sets the stream interval. Non-positive values are rejected.
func WithTick(d time.Duration) Option {
	return func(o *Options) {
		if d <= 0 {
			o.err = fmt.Errorf("%w: tick must be positive (%v)", ErrOptionViolation, d)
			return
		}
		o.Tick = d
	}
}

// WithRenderOptions is passed to render.Draw for /maze.png.
func WithRenderOptions(opts ...render.Option) Option {
	return func(o *Options) { o.Render = append(o.Render, opts...) }
}

// Server serves one level at a time. The level can be swapped while serving.
type Server struct {
	mu       sync.RWMutex
	layout   *level.Layout
	opts     Options
	upgrader websocket.Upgrader
	router   *gin.Engine
}

// New returns a server for l, which must be built.
func New(l *level.Layout, opts ...Option) (*Server, error) {
	if l == nil {
		return nil, ErrNilLayout
	}
	if _, err := l.Graph(); err != nil {
		return nil, err
	}
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		return nil, o.err
	}
	s := &Server{layout: l, opts: o}
	s.router = s.routes()
	return s, nil
}

func (s *Server) routes() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), s.logRequests())

	router.GET("/healthz", Health())
	router.GET("/maze", s.MazeHandler())
	router.POST("/search", s.SearchHandler())
	router.GET("/maze.png", s.PictureHandler())
	router.GET("/stats", s.StatsHandler())
	router.GET("/chase/ws", s.ChaseHandler())
	return router
}

// Handler returns the router.
func (s *Server) Handler() http.Handler { return s.router }

// Layout returns the level being served.
func (s *Server) Layout() *level.Layout {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.layout
}

// SetLayout replaces the level being served. Running chase streams keep
// their level.
func (s *Server) SetLayout(l *level.Layout) error {
	if l == nil {
		return ErrNilLayout
	}
	if _, err := l.Graph(); err != nil {
		return err
	}
	s.mu.Lock()
	s.layout = l
	s.mu.Unlock()
	s.opts.Logger.WithFields(logrus.Fields{
		"width": l.Width(), "height": l.Height(),
	}).Info("server: level replaced")
	return nil
}

// Run serves on addr until the listener fails.
func (s *Server) Run(addr string) error {
	s.opts.Logger.WithField("addr", addr).Info("server: listening")
	return s.router.Run(addr)
}

func (s *Server) logRequests() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.opts.Logger.WithFields(logrus.Fields{
			"method":  c.Request.Method,
			"path":    c.Request.URL.Path,
			"status":  c.Writer.Status(),
			"elapsed": time.Since(start),
		}).Debug("server: request")
	}
}
