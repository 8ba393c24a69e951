package proxy

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type echo struct {
	Upstream      string `json:"upstream"`
	Path          string `json:"path"`
	Query         string `json:"query"`
	Host          string `json:"host"`
	ForwardedHost string `json:"forwarded_host"`
}

func echoServer(name string) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(echo{
			Upstream:      name,
			Path:          r.URL.Path,
			Query:         r.URL.RawQuery,
			Host:          r.Host,
			ForwardedHost: r.Header.Get("X-Forwarded-Host"),
		})
	}))
}

func get(t *testing.T, url string) (int, echo) {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()
	var e echo
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	_ = json.Unmarshal(body, &e)
	return resp.StatusCode, e
}

func TestProxy_Routing(t *testing.T) {
	api := echoServer("api")
	defer api.Close()
	ui := echoServer("ui")
	defer ui.Close()

	s, err := New(Config{Addr: ":0", APIPrefix: "/api", APITarget: api.URL, UITarget: ui.URL}, nil)
	require.NoError(t, err)
	front := httptest.NewServer(s.Handler())
	defer front.Close()

	apiHost := mustHost(t, api.URL)
	frontHost := mustHost(t, front.URL)

	tests := []struct {
		name     string
		path     string
		upstream string
		wantPath string
		wantHost string
	}{
		{"api prefix is stripped", "/api/word/telephone", "api", "/word/telephone", apiHost},
		{"api graph with query", "/api/word/telephone/graph?include_related=true", "api", "/word/telephone/graph", apiHost},
		{"bare prefix", "/api", "api", "/", apiHost},
		{"ui root", "/", "ui", "/", mustHost(t, ui.URL)},
		{"ui asset", "/_app/immutable/start.js", "ui", "/_app/immutable/start.js", mustHost(t, ui.URL)},
		{"prefix lookalike goes to ui", "/apiary", "ui", "/apiary", mustHost(t, ui.URL)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, e := get(t, front.URL+tt.path)
			assert.Equal(t, http.StatusOK, status)
			assert.Equal(t, tt.upstream, e.Upstream)
			assert.Equal(t, tt.wantPath, e.Path)
			assert.Equal(t, tt.wantHost, e.Host, "outbound Host is the target's")
			assert.Equal(t, frontHost, e.ForwardedHost)
		})
	}

	_, e := get(t, front.URL+"/api/word/telephone/graph?include_related=true")
	assert.Equal(t, "include_related=true", e.Query)
}

func TestProxy_UpstreamDown(t *testing.T) {
	dead := httptest.NewServer(http.NotFoundHandler())
	deadURL := dead.URL
	dead.Close()

	ui := echoServer("ui")
	defer ui.Close()

	s, err := New(Config{APIPrefix: "api", APITarget: deadURL, UITarget: ui.URL}, nil)
	require.NoError(t, err)
	front := httptest.NewServer(s.Handler())
	defer front.Close()

	resp, err := http.Get(front.URL + "/api/word/x")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadGateway, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))
	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "bad gateway", body["error"])
	assert.Contains(t, body["details"], "api upstream")
}

func TestNew_InvalidConfig(t *testing.T) {
	def := DefaultConfig()

	cfg := def
	cfg.APIPrefix = "/"
	_, err := New(cfg, nil)
	assert.Error(t, err)

	cfg = def
	cfg.APITarget = "localhost:8000"
	_, err = New(cfg, nil)
	assert.Error(t, err)

	cfg = def
	cfg.UITarget = "ftp://example.com"
	_, err = New(cfg, nil)
	assert.Error(t, err)
}

func TestPrintBanner(t *testing.T) {
	color.NoColor = true
	s, err := New(DefaultConfig(), nil)
	require.NoError(t, err)

	var buf bytes.Buffer
	s.PrintBanner(&buf)
	out := buf.String()
	assert.Contains(t, out, "http://localhost:3000")
	assert.Contains(t, out, "/ -> http://127.0.0.1:5173")
	assert.Contains(t, out, "/api -> http://127.0.0.1:8000")
}

func TestStripPrefix(t *testing.T) {
	assert.Equal(t, "/word/x", stripPrefix("/api/word/x", "/api"))
	assert.Equal(t, "/", stripPrefix("/api", "/api"))
	assert.Equal(t, "", stripPrefix("", "/api"))
}

func mustHost(t *testing.T, raw string) string {
	t.Helper()
	u, err := url.Parse(raw)
	require.NoError(t, err)
	return u.Host
}
