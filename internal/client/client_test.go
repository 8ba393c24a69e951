package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rhiza/internal/domain"
	"rhiza/internal/repository/sqlite"
)

func TestNormalizeWord(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    string
		wantErr bool
	}{
		{"plain", "telephone", "telephone", false},
		{"trimmed", "  philosophy \n", "philosophy", false},
		{"apostrophe and hyphen", "o'clock-work", "o'clock-work", false},
		{"inner space", "ice cream", "ice cream", false},
		{"empty", "", "", true},
		{"only spaces", "   ", "", true},
		{"digits", "abc123", "", true},
		{"path chars", "../etc", "", true},
		{"greek letters", "λόγος", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NormalizeWord(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidWord)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAPIError_Message(t *testing.T) {
	assert.Equal(t, "Word not found", (&APIError{Status: 404, Detail: "Word not found"}).Error())
	assert.Equal(t, "Server error (500)", (&APIError{Status: 500}).Error())
}

func TestClient_SearchWord(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		switch r.URL.Path {
		case "/word/telephone":
			_ = json.NewEncoder(w).Encode(map[string]any{
				"name": "telephone",
				"roots": []map[string]any{
					{"name": "τῆλε", "transliteration": "tele", "meaning": "far", "frequency": "high"},
				},
			})
		case "/word/nonexistent":
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"detail":"Word not found"}`))
		default:
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = w.Write([]byte(`not json`))
		}
	}))
	defer srv.Close()

	c := New(srv.URL + "/")
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		res, err := c.SearchWord(ctx, " telephone ")
		require.NoError(t, err)
		assert.Equal(t, "/word/telephone", gotPath)
		assert.Equal(t, "telephone", res.Name)
		require.Len(t, res.Roots, 1)
		assert.Equal(t, "far", res.Roots[0].Meaning)
		assert.Equal(t, domain.FrequencyHigh, res.Roots[0].Frequency)
	})

	t.Run("detail surfaces as message", func(t *testing.T) {
		_, err := c.SearchWord(ctx, "nonexistent")
		var apiErr *APIError
		require.True(t, errors.As(err, &apiErr))
		assert.Equal(t, http.StatusNotFound, apiErr.Status)
		assert.Equal(t, "Word not found", err.Error())
	})

	t.Run("missing detail", func(t *testing.T) {
		_, err := c.SearchWord(ctx, "broken")
		assert.EqualError(t, err, "Server error (500)")
	})

	t.Run("invalid word never reaches the backend", func(t *testing.T) {
		gotPath = ""
		_, err := c.SearchWord(ctx, "rm -rf /")
		assert.ErrorIs(t, err, ErrInvalidWord)
		assert.Empty(t, gotPath)
	})
}

func TestClient_FetchGraphCaches(t *testing.T) {
	var calls atomic.Int32
	var related atomic.Bool
	var path atomic.Value
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		related.Store(r.URL.Query().Get("include_related") == "true")
		path.Store(r.URL.Path)
		_, _ = w.Write([]byte(`{
			"nodes": [
				{"id": "telephone", "label": "telephone", "type": "word"},
				{"id": "tele", "label": "τῆλε", "type": "root", "properties": {"meaning": "far"}}
			],
			"links": [{"source": "telephone", "target": "tele", "type": "DERIVES_FROM"}]
		}`))
	}))
	defer srv.Close()

	cache, err := sqlite.New(":memory:")
	require.NoError(t, err)
	defer cache.Close()

	c := New(srv.URL, WithCache(cache, time.Hour))
	ctx := context.Background()

	p, err := c.FetchGraph(ctx, "telephone", false)
	require.NoError(t, err)
	assert.Len(t, p.Nodes, 2)
	assert.Len(t, p.Links, 1)
	assert.Equal(t, "/word/telephone/graph", path.Load())

	p, err = c.FetchGraph(ctx, "Telephone", false)
	require.NoError(t, err)
	assert.Len(t, p.Nodes, 2)
	assert.Equal(t, int32(1), calls.Load(), "second fetch must be served from the cache")

	_, err = c.FetchGraph(ctx, "telephone", true)
	require.NoError(t, err)
	assert.Equal(t, int32(2), calls.Load())
	assert.True(t, related.Load())
}

func TestClient_FetchGraphWithoutCache(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		_, _ = w.Write([]byte(`{"nodes":[{"id":"w","type":"word"}],"edges":[]}`))
	}))
	defer srv.Close()

	c := New(srv.URL)
	for range 2 {
		_, err := c.FetchGraph(context.Background(), "word", false)
		require.NoError(t, err)
	}
	assert.Equal(t, int32(2), calls.Load())
}
