// Package utils provides resource access and logging helpers shared by the scene binaries.
package utils

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/rs/zerolog/log"
)

var ErrNotFound = errors.New("resource not found")

type progressReader struct {
	io.ReadCloser
	total uint64
	last  uint64
	label string
}

func (pr *progressReader) Read(p []byte) (int, error) {
	n, err := pr.ReadCloser.Read(p)
	pr.total += uint64(n)
	if pr.total-pr.last > 1024*1024 { // Log every 1MB
		log.Debug().Str("src", pr.label).Uint64("kb", pr.total/1024).Msg("Downloading")
		pr.last = pr.total
	}
	return n, err
}

// IsURL reports whether src should be fetched over HTTP rather than opened from disk.
func IsURL(src string) bool {
	return strings.HasPrefix(src, "http://") || strings.HasPrefix(src, "https://")
}

// OpenResource returns a reader for src, which is either a local path or an http(s) URL.
// A missing file or a 404 response is reported as ErrNotFound.
func OpenResource(ctx context.Context, src string) (io.ReadCloser, error) {
	if src == "" {
		return nil, fmt.Errorf("empty resource path: %w", ErrNotFound)
	}
	if !IsURL(src) {
		f, err := os.Open(src)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("%s: %w", src, ErrNotFound)
			}
			return nil, err
		}
		log.Debug().Str("path", src).Msg("Reading local file")
		return f, nil
	}

	log.Info().Str("url", src).Msg("Streaming resource")
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, src, nil)
	if err != nil {
		return nil, err
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		if err := resp.Body.Close(); err != nil {
			log.Warn().Err(err).Msg("Error closing response body")
		}
		if resp.StatusCode == http.StatusNotFound {
			return nil, fmt.Errorf("%s: %w", src, ErrNotFound)
		}
		return nil, fmt.Errorf("bad status: %s", resp.Status)
	}
	return &progressReader{ReadCloser: resp.Body, label: src}, nil
}
