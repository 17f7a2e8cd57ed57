package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/goliatone/go-docform/pkg/composer"
	"github.com/goliatone/go-docform/pkg/formdef"
	"github.com/goliatone/go-docform/pkg/formpage"
)

const (
	defaultAddr          = ":8080"
	defaultReadTimeout   = 15 * time.Second
	defaultWriteTimeout  = 30 * time.Second
	defaultShutdownGrace = 10 * time.Second
	defaultMaxBodyBytes  = 1 << 20
)

// Option customises the server.
type Option func(*Server)

// WithLogger sets the logger used for access and error logs.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithAddr sets the listen address used by Run.
func WithAddr(addr string) Option {
	return func(s *Server) {
		if addr != "" {
			s.addr = addr
		}
	}
}

// WithTimeouts sets the read and write timeouts. Zero keeps the default.
func WithTimeouts(read, write time.Duration) Option {
	return func(s *Server) {
		if read > 0 {
			s.readTimeout = read
		}
		if write > 0 {
			s.writeTimeout = write
		}
	}
}

// WithShutdownGrace bounds how long Run waits for in-flight requests.
func WithShutdownGrace(grace time.Duration) Option {
	return func(s *Server) {
		if grace > 0 {
			s.shutdownGrace = grace
		}
	}
}

// WithMaxBodyBytes limits request bodies.
func WithMaxBodyBytes(n int64) Option {
	return func(s *Server) {
		if n > 0 {
			s.maxBodyBytes = n
		}
	}
}

// WithVariant selects the theme variant used when the request does not ask
// for one.
func WithVariant(variant string) Option {
	return func(s *Server) {
		s.variant = variant
	}
}

// Server serves the report form and turns submissions into documents.
type Server struct {
	form     formdef.Form
	composer *composer.Composer
	pages    *formpage.Renderer
	logger   *zap.Logger

	addr          string
	readTimeout   time.Duration
	writeTimeout  time.Duration
	shutdownGrace time.Duration
	maxBodyBytes  int64
	variant       string

	router chi.Router
}

// New wires the HTTP front end. comp must enforce the same required fields as
// form.
func New(form formdef.Form, comp *composer.Composer, pages *formpage.Renderer, options ...Option) (*Server, error) {
	if comp == nil {
		return nil, errors.New("server: composer is required")
	}
	if pages == nil {
		return nil, errors.New("server: page renderer is required")
	}
	if len(form.Fields) == 0 {
		return nil, errors.New("server: form has no fields")
	}

	s := &Server{
		form:          form,
		composer:      comp,
		pages:         pages,
		logger:        zap.NewNop(),
		addr:          defaultAddr,
		readTimeout:   defaultReadTimeout,
		writeTimeout:  defaultWriteTimeout,
		shutdownGrace: defaultShutdownGrace,
		maxBodyBytes:  defaultMaxBodyBytes,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(s)
	}
	s.router = s.routes()
	return s, nil
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()

	r.Use(requestID)
	r.Use(accessLog(s.logger))
	r.Use(middleware.Recoverer)

	r.Get("/", s.handleIndex)
	r.Post(s.generatePath(), s.handleGenerate)
	r.Get("/healthz", s.handleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Get("/form", s.handleForm)
		r.Post("/documents", s.handleDocuments)
	})

	return r
}

func (s *Server) generatePath() string {
	if s.form.Path != "" && s.form.Path != "/" {
		return s.form.Path
	}
	return "/generate"
}

// Handler exposes the router, mainly for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run listens on the configured address until ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("server: listen %s: %w", s.addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is cancelled, then shuts down
// gracefully. A clean shutdown returns nil.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	httpServer := &http.Server{
		Handler:           s.router,
		ReadTimeout:       s.readTimeout,
		ReadHeaderTimeout: s.readTimeout,
		WriteTimeout:      s.writeTimeout,
		ErrorLog:          zap.NewStdLog(s.logger),
	}

	group, groupCtx := errgroup.WithContext(ctx)

	group.Go(func() error {
		s.logger.Info("listening", zap.String("addr", ln.Addr().String()))
		if err := httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server: serve: %w", err)
		}
		return nil
	})

	group.Go(func() error {
		<-groupCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownGrace)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server: shutdown: %w", err)
		}
		s.logger.Info("stopped")
		return nil
	})

	return group.Wait()
}
