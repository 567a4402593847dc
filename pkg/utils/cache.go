package utils

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"
)

// DownloadFile fetches src into dst. The body is written to a temp file in the same
// directory and renamed into place, so dst is never left half written.
func DownloadFile(ctx context.Context, src, dst string) error {
	r, err := OpenResource(ctx, src)
	if err != nil {
		return err
	}
	defer func() {
		if err := r.Close(); err != nil {
			log.Warn().Err(err).Msg("Error closing response body")
		}
	}()

	tmpFile, err := os.CreateTemp(filepath.Dir(dst), ".tmp-*")
	if err != nil {
		return err
	}
	tmpName := tmpFile.Name()
	defer func() {
		if err := os.Remove(tmpName); err != nil && !os.IsNotExist(err) {
			log.Warn().Err(err).Str("path", tmpName).Msg("Error removing temp file")
		}
	}()

	if _, err := io.Copy(tmpFile, r); err != nil {
		_ = tmpFile.Close()
		return err
	}
	if err := tmpFile.Close(); err != nil {
		return err
	}
	return os.Rename(tmpName, dst)
}

// CacheFileName derives a stable local file name for a URL from its host and path.
func CacheFileName(src string) string {
	u, err := url.Parse(src)
	if err != nil || u.Host == "" {
		return filepath.Base(src)
	}
	name := path.Base(u.Path)
	if name == "/" || name == "." {
		name = "index"
	}
	return strings.ReplaceAll(u.Host, ":", "_") + "_" + name
}

// GetCachedReader opens src, keeping a copy of remote resources in cacheDir. Local paths
// and an empty cacheDir bypass the cache.
func GetCachedReader(ctx context.Context, src, cacheDir string) (io.ReadCloser, error) {
	if cacheDir == "" || !IsURL(src) {
		return OpenResource(ctx, src)
	}
	if err := os.MkdirAll(cacheDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create cache dir: %w", err)
	}
	localPath := filepath.Join(cacheDir, CacheFileName(src))

	if _, err := os.Stat(localPath); os.IsNotExist(err) {
		log.Info().Str("url", src).Str("path", localPath).Msg("Downloading")
		if err := DownloadFile(ctx, src, localPath); err != nil {
			return nil, err
		}
	} else {
		log.Info().Str("path", localPath).Msg("Using cached file")
	}
	f, err := os.Open(localPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open cache: %w", err)
	}
	return f, nil
}
