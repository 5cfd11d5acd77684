package fetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetch_DownloadsToDest(t *testing.T) {
	payload := []byte("%PDF-1.4 fake pdf content")
	var gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		w.Write(payload)
	}))
	defer srv.Close()

	dest := filepath.Join(t.TempDir(), "2025-11", "paper.pdf")
	d := NewDownloader("test-agent", 5*time.Second)

	err := d.Fetch(context.Background(), srv.URL, dest)
	require.NoError(t, err)

	data, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Equal(t, payload, data)
	assert.Equal(t, "test-agent", gotUA)
}

func TestFetch_CreatesParentDirectories(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte("x"))
	}))
	defer srv.Close()

	dest := filepath.Join(t.TempDir(), "a", "b", "c", "paper.pdf")
	d := NewDownloader("test-agent", 5*time.Second)

	require.NoError(t, d.Fetch(context.Background(), srv.URL, dest))
	_, err := os.Stat(dest)
	require.NoError(t, err)
}

func TestFetch_NonOKStatusFails(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	dir := t.TempDir()
	dest := filepath.Join(dir, "paper.pdf")
	d := NewDownloader("test-agent", 5*time.Second)

	err := d.Fetch(context.Background(), srv.URL, dest)
	require.Error(t, err)

	// No dest and no leftover temp file.
	_, statErr := os.Stat(dest)
	assert.True(t, os.IsNotExist(statErr))
	entries, readErr := os.ReadDir(dir)
	require.NoError(t, readErr)
	assert.Empty(t, entries)
}

func TestFetch_ConnectionErrorFails(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	srv.Close()

	dest := filepath.Join(t.TempDir(), "paper.pdf")
	d := NewDownloader("test-agent", time.Second)

	err := d.Fetch(context.Background(), srv.URL, dest)
	require.Error(t, err)
}

func TestFetch_OverwritesExistingDest(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte("new content"))
	}))
	defer srv.Close()

	dest := filepath.Join(t.TempDir(), "paper.pdf")
	require.NoError(t, os.WriteFile(dest, []byte("old content"), 0o644))

	d := NewDownloader("test-agent", 5*time.Second)
	require.NoError(t, d.Fetch(context.Background(), srv.URL, dest))

	data, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Equal(t, "new content", string(data))
}
