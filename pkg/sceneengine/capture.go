package sceneengine

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/rs/zerolog/log"
)

func captureName(scene string, timestamp time.Time) string {
	return fmt.Sprintf("scene-%s-%s.png", scene, timestamp.Format("20060102-150405.000"))
}

func (e *Engine) captureFrame(img *ebiten.Image, scene string, timestamp time.Time) {
	if e.FrameCaptureDir == "" {
		log.Warn().Msg("Frame capture requested but no capture directory is set")
		return
	}

	if err := os.MkdirAll(e.FrameCaptureDir, 0o755); err != nil {
		log.Error().Err(err).Str("dir", e.FrameCaptureDir).Msg("Error creating capture directory")
		return
	}
	path := filepath.Join(e.FrameCaptureDir, captureName(scene, timestamp))

	// Copy pixels now; the screen image is reused by the next frame.
	rgba := image.NewRGBA(img.Bounds())
	img.ReadPixels(rgba.Pix)

	go func() {
		if err := writePNG(path, rgba); err != nil {
			log.Error().Err(err).Str("path", path).Msg("Error writing capture")
			return
		}
		log.Info().Str("path", path).Msg("Captured frame")
	}()
}

func writePNG(path string, img image.Image) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return png.Encode(f, img)
}
