// Package proxy is the development reverse proxy: API requests under a path
// prefix go to the API backend with the prefix removed, everything else goes
// to the UI dev server. Both upstreams see their own host in the Host header.
package proxy

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httputil"
	"net/url"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"rhiza/internal/metrics"
)

// Config holds proxy configuration
type Config struct {
	Addr      string
	APIPrefix string
	APITarget string
	UITarget  string
}

// DefaultConfig mirrors the local development layout
func DefaultConfig() Config {
	return Config{
		Addr:      ":3000",
		APIPrefix: "/api",
		APITarget: "http://127.0.0.1:8000",
		UITarget:  "http://127.0.0.1:5173",
	}
}

// Server is the development proxy
type Server struct {
	cfg Config
	api *url.URL
	ui  *url.URL
	log *zap.Logger
}

// New validates the targets and creates a proxy server
func New(cfg Config, logger *zap.Logger) (*Server, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	prefix := "/" + strings.Trim(cfg.APIPrefix, "/")
	if prefix == "/" {
		return nil, fmt.Errorf("api prefix %q must name a path segment", cfg.APIPrefix)
	}
	cfg.APIPrefix = prefix

	api, err := parseTarget(cfg.APITarget)
	if err != nil {
		return nil, fmt.Errorf("api target: %w", err)
	}
	ui, err := parseTarget(cfg.UITarget)
	if err != nil {
		return nil, fmt.Errorf("ui target: %w", err)
	}
	return &Server{cfg: cfg, api: api, ui: ui, log: logger}, nil
}

func parseTarget(raw string) (*url.URL, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return nil, err
	}
	if u.Scheme != "http" && u.Scheme != "https" || u.Host == "" {
		return nil, fmt.Errorf("%q is not an http(s) URL", raw)
	}
	return u, nil
}

// Handler returns the routing handler
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)

	api := s.upstream("api", s.api, s.cfg.APIPrefix)
	ui := s.upstream("ui", s.ui, "")

	r.Handle(s.cfg.APIPrefix, api)
	r.Handle(s.cfg.APIPrefix+"/*", api)
	r.Handle("/*", ui)
	return r
}

// ListenAndServe serves the proxy on the configured address
func (s *Server) ListenAndServe() error {
	return http.ListenAndServe(s.cfg.Addr, s.Handler())
}

// PrintBanner writes the route table
func (s *Server) PrintBanner(w io.Writer) {
	brand := color.New(color.FgHiGreen, color.Bold)
	info := color.New(color.FgCyan)
	subtle := color.New(color.FgHiBlack)

	brand.Fprintf(w, "Proxy server running on http://localhost%s\n", s.cfg.Addr)
	subtle.Fprint(w, "  UI:  ")
	info.Fprintf(w, "/ -> %s\n", s.ui)
	subtle.Fprint(w, "  API: ")
	info.Fprintf(w, "%s -> %s\n", s.cfg.APIPrefix, s.api)
}

// upstream builds a reverse proxy to target that removes strip from the path
func (s *Server) upstream(name string, target *url.URL, strip string) http.Handler {
	rp := &httputil.ReverseProxy{
		Rewrite: func(pr *httputil.ProxyRequest) {
			if strip != "" {
				pr.Out.URL.Path = stripPrefix(pr.In.URL.Path, strip)
				pr.Out.URL.RawPath = stripPrefix(pr.In.URL.RawPath, strip)
			}
			pr.SetURL(target)
			pr.SetXForwarded()
		},
		ErrorHandler: func(w http.ResponseWriter, r *http.Request, err error) {
			s.log.Warn("upstream unavailable",
				zap.String("upstream", name),
				zap.String("path", r.URL.Path),
				zap.Error(err))
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusBadGateway)
			_ = json.NewEncoder(w).Encode(map[string]string{
				"error":   "bad gateway",
				"details": fmt.Sprintf("%s upstream %s: %v", name, target, err),
			})
		},
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
		rp.ServeHTTP(ww, r)
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		metrics.ProxyRequestsTotal.WithLabelValues(name, strconv.Itoa(status)).Inc()
		s.log.Debug("proxied",
			zap.String("upstream", name),
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", status),
			zap.String("requestID", chimiddleware.GetReqID(r.Context())))
	})
}

// stripPrefix removes prefix from an escaped or plain path; the result keeps a leading slash
func stripPrefix(path, prefix string) string {
	if path == "" {
		return ""
	}
	rest := strings.TrimPrefix(path, prefix)
	if !strings.HasPrefix(rest, "/") {
		rest = "/" + rest
	}
	return rest
}
