package hf

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTestImage(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "terrain.png")
	require.NoError(t, os.WriteFile(path, []byte("\x89PNG fake image bytes"), 0o644))
	return path
}

func TestClassifyImage_Success(t *testing.T) {
	t.Parallel()

	image := writeTestImage(t)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		assert.Equal(t, "/models/smp111/terrain_recognition", r.URL.Path)

		body, _ := io.ReadAll(r.Body)
		assert.Contains(t, string(body), "fake image bytes")

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"label":"marshy","score":0.47},{"label":"rocky","score":0.31}]`))
	}))
	defer srv.Close()

	client := NewClient("test-key", "smp111/terrain_recognition", WithBaseURL(srv.URL))
	got, err := client.ClassifyImage(context.Background(), image)

	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "marshy", got[0].Label)
	assert.InDelta(t, 0.47, got[0].Score, 0.001)
}

func TestClassifyImage_RetriesModelLoading(t *testing.T) {
	t.Parallel()

	image := writeTestImage(t)

	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			w.Write([]byte(`{"error":"Model smp111/terrain_recognition is currently loading"}`))
			return
		}
		w.Write([]byte(`[{"label":"grassy","score":0.9}]`))
	}))
	defer srv.Close()

	client := NewClient("test-key", "smp111/terrain_recognition", WithBaseURL(srv.URL))
	got, err := client.ClassifyImage(context.Background(), image)

	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "grassy", got[0].Label)
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestClassifyImage_HTTPError(t *testing.T) {
	t.Parallel()

	image := writeTestImage(t)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":"invalid image"}`))
	}))
	defer srv.Close()

	client := NewClient("test-key", "m", WithBaseURL(srv.URL))
	_, err := client.ClassifyImage(context.Background(), image)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "400")
}

func TestClassifyImage_MalformedResponse(t *testing.T) {
	t.Parallel()

	image := writeTestImage(t)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"not":"an array"}`))
	}))
	defer srv.Close()

	client := NewClient("test-key", "m", WithBaseURL(srv.URL))
	_, err := client.ClassifyImage(context.Background(), image)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "unmarshal")
}

func TestClassifyImage_MissingImage(t *testing.T) {
	t.Parallel()

	client := NewClient("test-key", "m")
	_, err := client.ClassifyImage(context.Background(), filepath.Join(t.TempDir(), "nope.png"))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "read image")
}
