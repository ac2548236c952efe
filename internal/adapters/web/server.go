package web

import (
	"compress/gzip"
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/kamal-hamza/assetkit/internal/core/domain"
	"github.com/kamal-hamza/assetkit/pkg/mimetype"
	"github.com/kamal-hamza/assetkit/pkg/site"
)

// Server serves the media directory and renders failures through RenderError
type Server struct {
	site   *site.Site
	router chi.Router
	addr   string
	debug  bool
}

// ServerConfig holds the configuration for the media server
type ServerConfig struct {
	Addr  string // listen address (default: "127.0.0.1:8080")
	Debug bool   // expose error details in responses
}

// NewServer creates a Server for s
func NewServer(s *site.Site, cfg ServerConfig) *Server {
	if cfg.Addr == "" {
		cfg.Addr = "127.0.0.1:8080"
	}

	srv := &Server{
		site:  s,
		addr:  cfg.Addr,
		debug: cfg.Debug,
	}
	srv.router = srv.buildRouter()
	return srv
}

// ServeHTTP delegates to the chi router, satisfying http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Run listens until ctx is cancelled, then shuts down gracefully
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.addr,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      2 * time.Minute,
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
		return srv.Shutdown(shutdownCtx)
	}
}

func (s *Server) buildRouter() chi.Router {
	r := chi.NewRouter()
	r.Use(requestLogger)
	r.Use(s.recoverPanic)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.Write([]byte("ok"))
	})

	mediaRoute := "/" + s.site.MediaDir + "/*"
	r.Get(mediaRoute, s.handleMedia)
	r.Head(mediaRoute, s.handleMedia)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		RenderError(w, r, NewError(http.StatusNotFound, "route not found"), s.debug)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		RenderError(w, r, NewError(http.StatusMethodNotAllowed, "method not allowed"), s.debug)
	})

	return r
}

// recoverPanic turns a panicking handler into a 500 response
func (s *Server) recoverPanic(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if v := recover(); v != nil {
				if v == http.ErrAbortHandler {
					panic(v)
				}
				err, ok := v.(error)
				if !ok {
					err = fmt.Errorf("%v", v)
				}
				RenderError(w, r, WrapError(http.StatusInternalServerError, fmt.Errorf("panic: %w", err)), s.debug)
			}
		}()
		next.ServeHTTP(w, r)
	})
}

func (s *Server) handleMedia(w http.ResponseWriter, r *http.Request) {
	rel := path.Clean("/" + chi.URLParam(r, "*"))
	if rel == "/" {
		RenderError(w, r, NewError(http.StatusNotFound, "file not found"), s.debug)
		return
	}
	full := filepath.Join(s.site.MediaPath, filepath.FromSlash(strings.TrimPrefix(rel, "/")))

	f, err := os.Open(full)
	if err != nil {
		RenderError(w, r, err, s.debug)
		return
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		RenderError(w, r, err, s.debug)
		return
	}
	if info.IsDir() {
		RenderError(w, r, NewError(http.StatusNotFound, "file not found"), s.debug)
		return
	}

	name := info.Name()
	h := w.Header()
	compressed := domain.IsCompressedBundle(name)
	if compressed {
		h.Add("Vary", "Accept-Encoding")
		name = strings.TrimPrefix(name, domain.GzipPrefix)
	}
	h.Set("Content-Type", mimetype.ContentType(name))

	// Bundles are content addressed
	if path.Base(path.Dir(rel)) == site.AutoDir {
		h.Set("Cache-Control", "public, max-age=31536000, immutable")
	}

	if compressed && !acceptsGzip(r) {
		s.serveDecompressed(w, r, f)
		return
	}
	if compressed {
		h.Set("Content-Encoding", "gzip")
	}

	http.ServeContent(w, r, name, info.ModTime(), f)
}

// serveDecompressed streams a gz_ bundle as plain bytes for clients that
// cannot decode gzip. Ranges are not supported on this path.
func (s *Server) serveDecompressed(w http.ResponseWriter, r *http.Request, f *os.File) {
	zr, err := gzip.NewReader(f)
	if err != nil {
		RenderError(w, r, WrapError(http.StatusInternalServerError, fmt.Errorf("corrupt compressed bundle: %w", err)), s.debug)
		return
	}
	defer zr.Close()

	w.WriteHeader(http.StatusOK)
	if r.Method == http.MethodHead {
		return
	}
	if _, err := io.Copy(w, zr); err != nil {
		log.Printf("failed to stream decompressed bundle: %v", err)
	}
}

// acceptsGzip reports whether the Accept-Encoding header allows gzip
func acceptsGzip(r *http.Request) bool {
	for _, part := range strings.Split(r.Header.Get("Accept-Encoding"), ",") {
		coding, params, _ := strings.Cut(strings.TrimSpace(part), ";")
		coding = strings.ToLower(strings.TrimSpace(coding))
		if coding != "gzip" && coding != "x-gzip" && coding != "*" {
			continue
		}
		q := strings.ReplaceAll(strings.ToLower(params), " ", "")
		if q == "q=0" || q == "q=0.0" || q == "q=0.00" || q == "q=0.000" {
			return false
		}
		return true
	}
	return false
}

// LogStartup prints where the server listens
func (s *Server) LogStartup() {
	log.Printf("serving %s at http://%s/%s/", s.site.MediaPath, s.addr, s.site.MediaDir)
}
