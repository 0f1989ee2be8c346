// Package server exposes the render pipeline over HTTP: a render
// endpoint that accepts source payloads, a preview endpoint serving the
// built sandbox documents, and a websocket relay for the events the
// documents post while running.
package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/glasspane-dev/glasspane/internal/preview"
)

// Server wires the renderer behind a gin router.
type Server struct {
	renderer *preview.Renderer
	store    *documentStore
	events   *hub
	addr     string
}

// Option configures a Server.
type Option func(*Server)

// WithAddr sets the listen address. Default is :7411.
func WithAddr(addr string) Option {
	return func(s *Server) { s.addr = addr }
}

// WithStoreSize caps how many rendered documents stay addressable.
func WithStoreSize(n int) Option {
	return func(s *Server) { s.store = newDocumentStore(n) }
}

// New builds a Server around an existing renderer.
func New(renderer *preview.Renderer, opts ...Option) *Server {
	s := &Server{
		renderer: renderer,
		store:    newDocumentStore(32),
		events:   newHub(),
		addr:     ":7411",
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Router assembles the gin engine. Exposed separately from Run so tests
// can drive it with httptest.
func (s *Server) Router() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/health", s.handleHealth)
	router.POST("/api/render", s.handleRender)
	router.GET("/preview/:id", s.handlePreview)
	router.GET("/api/events", s.handleEvents)

	return router
}

// Run serves until the context is cancelled, then drains connections.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("Preview server listening", "addr", s.addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
