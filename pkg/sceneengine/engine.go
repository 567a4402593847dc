// Package sceneengine drives the interactive scatterplot window: it loads the dataset in the
// background, routes pointer and key input to the scene controller and draws each frame.
package sceneengine

import (
	"bytes"
	"context"
	"image/color"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/rs/zerolog/log"
	"github.com/sudorandom/protein-scenes/pkg/chart"
	"github.com/sudorandom/protein-scenes/pkg/config"
	"github.com/sudorandom/protein-scenes/pkg/sources"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"
)

var (
	ColorBackground = color.RGBA{8, 10, 15, 255}
	ColorPlot       = color.RGBA{16, 19, 25, 255}
	ColorOutline    = color.RGBA{36, 42, 53, 255}
	ColorAxis       = color.RGBA{120, 128, 140, 255}
	ColorAccent     = color.RGBA{0, 191, 255, 255}
	ColorError      = color.RGBA{255, 50, 50, 255}
	ColorPanel      = color.RGBA{0, 0, 0, 100}
)

type phase int

const (
	phaseLoading phase = iota
	phaseReady
	phaseFailed
)

func (p phase) String() string {
	switch p {
	case phaseLoading:
		return "loading"
	case phaseReady:
		return "ready"
	}
	return "failed"
}

type loadResult struct {
	ds  *sources.Dataset
	err error
}

// Engine implements ebiten.Game for the scene viewer.
type Engine struct {
	Width, Height   int
	FrameCaptureDir string

	cfg    config.Config
	layout chart.Layout
	now    func() time.Time

	phase   phase
	loadErr error
	results chan loadResult
	ctrl    *chart.Controller

	buttons []Button
	hover   *chart.Mark
	cursorX float64
	cursorY float64

	bgImage    *ebiten.Image
	fontSource *text.GoTextFaceSource
	monoSource *text.GoTextFaceSource

	captureRequested bool
}

func NewEngine(cfg config.Config) *Engine {
	s, _ := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	m, _ := text.NewGoTextFaceSource(bytes.NewReader(gomono.TTF))

	layout := cfg.Layout()
	return &Engine{
		Width:      layout.Width,
		Height:     layout.Height,
		cfg:        cfg,
		layout:     layout,
		now:        time.Now,
		results:    make(chan loadResult, 1),
		buttons:    LayoutButtons(layout),
		fontSource: s,
		monoSource: m,
	}
}

// StartLoading reads the configured dataset in a goroutine. The result is picked up by
// Update, so the window keeps drawing while the load is in flight.
func (e *Engine) StartLoading(ctx context.Context) {
	go func() {
		ctx, cancel := context.WithTimeout(ctx, e.cfg.LoadTimeout)
		defer cancel()
		ds, err := sources.LoadCached(ctx, e.cfg.Dataset, e.cfg.Columns, e.cfg.CacheDir)
		e.results <- loadResult{ds: ds, err: err}
	}()
}

func (e *Engine) pollResult() {
	select {
	case res := <-e.results:
		e.applyResult(res)
	default:
	}
}

func (e *Engine) applyResult(res loadResult) {
	if res.err != nil {
		e.phase = phaseFailed
		e.loadErr = res.err
		log.Error().Err(res.err).Str("dataset", e.cfg.Dataset).Msg("Failed to load dataset")
		return
	}
	e.ctrl = chart.NewController(res.ds, e.layout, e.cfg.ChartOptions(), e.now())
	e.phase = phaseReady
	e.bgImage = nil
	log.Info().
		Int("records", res.ds.Len()).
		Int("plottable", len(res.ds.Plottable())).
		Msg("Dataset ready")
}

// SelectScene switches scenes. It is a no-op until the dataset is ready.
func (e *Engine) SelectScene(s chart.Scene) {
	if e.ctrl == nil {
		return
	}
	e.ctrl.Select(s, e.now())
	e.hover = nil
}

func (e *Engine) Update() error {
	e.pollResult()

	cx, cy := ebiten.CursorPosition()
	e.cursorX, e.cursorY = float64(cx), float64(cy)

	if inpututil.IsKeyJustPressed(ebiten.KeyS) {
		e.captureRequested = true
	}
	if e.ctrl == nil {
		return nil
	}

	switch {
	case inpututil.IsKeyJustPressed(ebiten.Key1):
		e.SelectScene(chart.Overview)
	case inpututil.IsKeyJustPressed(ebiten.Key2):
		e.SelectScene(chart.HighIncome)
	case inpututil.IsKeyJustPressed(ebiten.Key3):
		e.SelectScene(chart.LowIncome)
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		if s, ok := HitButton(e.buttons, e.cursorX, e.cursorY); ok {
			e.SelectScene(s)
		}
	}

	e.ctrl.Tick(e.now())
	e.hover = e.ctrl.HitTest(e.cursorX, e.cursorY)
	return nil
}

func (e *Engine) Draw(screen *ebiten.Image) {
	if e.bgImage == nil {
		e.generateBackground()
	}
	screen.DrawImage(e.bgImage, nil)

	switch e.phase {
	case phaseLoading:
		e.drawBanner(screen, "Loading…", ColorAccent)
	case phaseFailed:
		e.drawBanner(screen, "Failed to load data: "+e.loadErr.Error(), ColorError)
	case phaseReady:
		e.drawMarks(screen)
		e.drawAnnotation(screen)
		e.drawTooltip(screen)
	}
	e.drawButtons(screen)

	if e.captureRequested {
		e.captureRequested = false
		e.captureFrame(screen, e.sceneName(), e.now())
	}
}

func (e *Engine) Layout(w, h int) (int, int) { return e.Width, e.Height }

func (e *Engine) sceneName() string {
	if e.ctrl == nil {
		return e.phase.String()
	}
	return e.ctrl.Scene().String()
}
