package utils

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
)

func TestCacheFileName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"https://example.com/data/data416.csv", "example.com_data416.csv"},
		{"http://127.0.0.1:8080/x.csv", "127.0.0.1_8080_x.csv"},
		{"https://example.com/", "example.com_index"},
		{"local/data.csv", "data.csv"},
	}
	for _, tt := range tests {
		if got := CacheFileName(tt.in); got != tt.want {
			t.Errorf("CacheFileName(%q) = %q; want %q", tt.in, got, tt.want)
		}
	}
}

func TestGetCachedReader(t *testing.T) {
	var hits int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		_, _ = w.Write([]byte("Entity\nA\n"))
	}))
	defer ts.Close()

	cacheDir := filepath.Join(t.TempDir(), "cache")
	src := ts.URL + "/data.csv"
	for i := 0; i < 2; i++ {
		r, err := GetCachedReader(context.Background(), src, cacheDir)
		if err != nil {
			t.Fatalf("GetCachedReader() #%d failed: %v", i, err)
		}
		got, _ := io.ReadAll(r)
		_ = r.Close()
		if string(got) != "Entity\nA\n" {
			t.Errorf("GetCachedReader() #%d read %q", i, got)
		}
	}
	if n := atomic.LoadInt32(&hits); n != 1 {
		t.Errorf("server hit %d times; want 1", n)
	}
	if _, err := os.Stat(filepath.Join(cacheDir, CacheFileName(src))); err != nil {
		t.Errorf("cache file missing: %v", err)
	}
}

func TestGetCachedReaderNotFound(t *testing.T) {
	ts := httptest.NewServer(http.NotFoundHandler())
	defer ts.Close()

	cacheDir := t.TempDir()
	_, err := GetCachedReader(context.Background(), ts.URL+"/gone.csv", cacheDir)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("GetCachedReader() = %v; want ErrNotFound", err)
	}
	entries, _ := os.ReadDir(cacheDir)
	if len(entries) != 0 {
		t.Errorf("cache dir has %d entries after a failed download; want 0", len(entries))
	}
}

func TestGetCachedReaderBypass(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.csv")
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	cacheDir := filepath.Join(t.TempDir(), "cache")
	r, err := GetCachedReader(context.Background(), path, cacheDir)
	if err != nil {
		t.Fatalf("GetCachedReader(local) failed: %v", err)
	}
	_ = r.Close()
	if _, err := os.Stat(cacheDir); !os.IsNotExist(err) {
		t.Errorf("cache dir created for a local path")
	}
}
