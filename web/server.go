// ABOUTME: HTTP server that serves the rendered school page and its text outlines behind a chi router.
// ABOUTME: Responses are cached render bytes with strong ETags; unknown paths get the embedded 404 page.
package web

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/2389-research/brightpath/render"
	"github.com/2389-research/brightpath/site"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Server serves the page. It holds no mutable state besides the render cache.
type Server struct {
	doc       site.Document
	renderer  *render.Renderer
	cache     *render.RenderCache
	templates *TemplateEngine
	router    chi.Router
	addr      string
	showError bool
}

// ServerConfig holds the configuration for the page server.
type ServerConfig struct {
	Addr          string          // listen address (default: "127.0.0.1:2389")
	RenderOptions []render.Option // applied to the page renderer
	CacheTTL      time.Duration   // 0 keeps rendered bytes for the process lifetime
	ShowErrors    bool            // include error detail in 500 pages
}

// NewServer creates a new Server with the given configuration. It renders
// nothing up front; the first request fills the cache.
func NewServer(cfg ServerConfig) (*Server, error) {
	if cfg.Addr == "" {
		cfg.Addr = "127.0.0.1:2389"
	}

	renderer, err := render.New(cfg.RenderOptions...)
	if err != nil {
		return nil, fmt.Errorf("initializing renderer: %w", err)
	}

	tmpl, err := NewTemplateEngine()
	if err != nil {
		return nil, fmt.Errorf("initializing templates: %w", err)
	}

	s := &Server{
		doc:       site.Render(),
		renderer:  renderer,
		cache:     render.NewRenderCache(renderer.RenderFormat, cfg.CacheTTL),
		templates: tmpl,
		addr:      cfg.Addr,
		showError: cfg.ShowErrors,
	}

	s.router = s.buildRouter()
	return s, nil
}

// ServeHTTP implements http.Handler by delegating to the chi router.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Handler returns the server as an http.Handler.
func (s *Server) Handler() http.Handler {
	return s
}

// Addr returns the configured listen address.
func (s *Server) Addr() string {
	return s.addr
}

// ListenAndServe starts the HTTP server and blocks until ctx is cancelled or
// the listener fails. Cancellation triggers a graceful shutdown.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.addr,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       2 * time.Minute,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutting down: %w", err)
		}
		return nil
	}
}

// buildRouter constructs the chi router with all routes and middleware.
func (s *Server) buildRouter() chi.Router {
	r := chi.NewRouter()

	r.Use(pageRequestLogger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.GetHead)

	r.Get("/", s.handleFormat(render.FormatHTML))
	r.Get("/index.html", s.handleFormat(render.FormatHTML))
	r.Get("/outline.yaml", s.handleFormat(render.FormatYAML))
	r.Get("/outline.md", s.handleFormat(render.FormatMarkdown))
	r.Get("/health", s.handleHealth)

	r.NotFound(s.handleNotFound)
	r.MethodNotAllowed(s.handleMethodNotAllowed)

	return r
}

// handleFormat serves the page in one format with a strong ETag so browsers
// can revalidate without re-downloading identical bytes.
func (s *Server) handleFormat(format render.Format) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		data, err := s.cache.Render(r.Context(), s.doc, format)
		if err != nil {
			log.Printf("component=web action=render format=%s err=%v", format, err)
			s.serveError(w, http.StatusInternalServerError, err)
			return
		}

		etag := contentETag(data)
		annotatePageLog(r.Context(), format, etag)
		w.Header().Set("ETag", etag)
		w.Header().Set("Cache-Control", "no-cache")
		w.Header().Set("X-Content-Type-Options", "nosniff")

		if etagMatches(r.Header.Get("If-None-Match"), etag) {
			w.WriteHeader(http.StatusNotModified)
			return
		}

		w.Header().Set("Content-Type", format.ContentType())
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(data)
	}
}

// handleHealth returns a simple JSON health check response.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

func (s *Server) handleNotFound(w http.ResponseWriter, r *http.Request) {
	s.serveError(w, http.StatusNotFound, nil)
}

func (s *Server) handleMethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Allow", "GET, HEAD")
	s.serveError(w, http.StatusMethodNotAllowed, nil)
}

// serveError renders the embedded error page. When the template itself fails
// it falls back to plain text.
func (s *Server) serveError(w http.ResponseWriter, status int, err error) {
	data := ErrorData{
		Status:     status,
		StatusText: http.StatusText(status),
		HomeHref:   "/",
		SchoolName: site.SchoolName,
	}
	if err != nil && s.showError {
		data.Detail = err.Error()
	}

	if rerr := s.templates.RenderError(w, status, data); rerr != nil {
		log.Printf("component=web action=render_error status=%d err=%v", status, rerr)
		http.Error(w, http.StatusText(status), status)
	}
}

// contentETag returns a strong entity tag for the response body.
func contentETag(data []byte) string {
	sum := sha256.Sum256(data)
	return `"` + hex.EncodeToString(sum[:16]) + `"`
}

// etagMatches reports whether an If-None-Match header value matches etag.
func etagMatches(header, etag string) bool {
	if header == "" {
		return false
	}
	for _, candidate := range strings.Split(header, ",") {
		candidate = strings.TrimSpace(candidate)
		if candidate == "*" || strings.TrimPrefix(candidate, "W/") == etag {
			return true
		}
	}
	return false
}
