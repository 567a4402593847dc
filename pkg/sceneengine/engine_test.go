package sceneengine

import (
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sudorandom/protein-scenes/pkg/chart"
	"github.com/sudorandom/protein-scenes/pkg/config"
	"github.com/sudorandom/protein-scenes/pkg/sources"
)

const testCSV = `Entity,GDP per capita,Share of the daily calorie supply that comes from animal protein,World regions according to OWID
A,1000,0.10,Africa
B,50000,0.60,Europe
`

func testEngine(t *testing.T) *Engine {
	t.Helper()
	e := NewEngine(config.Default())
	e.now = func() time.Time { return time.Unix(1000, 0) }
	return e
}

func TestLayoutButtons(t *testing.T) {
	l := chart.DefaultLayout()
	buttons := LayoutButtons(l)
	if len(buttons) != 3 {
		t.Fatalf("LayoutButtons() returned %d buttons; want 3", len(buttons))
	}
	for i, b := range buttons {
		if b.Scene != chart.Scenes[i] {
			t.Errorf("button %d scene = %v; want %v", i, b.Scene, chart.Scenes[i])
		}
		if want := chart.Scenes[i].ButtonID(); b.ID != want {
			t.Errorf("button %d id = %q; want %q", i, b.ID, want)
		}
		if b.Y+b.H > l.Margin.Top {
			t.Errorf("button %s overlaps the plotting area", b.ID)
		}
		if i > 0 && b.X < buttons[i-1].X+buttons[i-1].W {
			t.Errorf("button %s overlaps %s", b.ID, buttons[i-1].ID)
		}
	}
}

func TestHitButton(t *testing.T) {
	buttons := LayoutButtons(chart.DefaultLayout())
	for _, b := range buttons {
		s, ok := HitButton(buttons, b.X+b.W/2, b.Y+b.H/2)
		if !ok || s != b.Scene {
			t.Errorf("HitButton(center of %s) = (%v, %v); want (%v, true)", b.ID, s, ok, b.Scene)
		}
	}
	if _, ok := HitButton(buttons, 0, 0); ok {
		t.Error("HitButton(0, 0) reported a hit")
	}
	gap := buttons[0].X + buttons[0].W + buttonGap/2
	if _, ok := HitButton(buttons, gap, buttons[0].Y+1); ok {
		t.Error("HitButton() between buttons reported a hit")
	}
}

func TestApplyResultReady(t *testing.T) {
	e := testEngine(t)
	e.SelectScene(chart.HighIncome)
	if e.ctrl != nil {
		t.Fatal("SelectScene before load created a controller")
	}

	ds := &sources.Dataset{Records: []sources.Record{
		{Entity: "A", GDPPerCapita: 1000, AnimalProteinShare: 10},
		{Entity: "B", GDPPerCapita: 50000, AnimalProteinShare: 60},
	}}
	e.applyResult(loadResult{ds: ds})
	if e.phase != phaseReady {
		t.Fatalf("phase = %v; want ready", e.phase)
	}
	if got := e.ctrl.Scene(); got != chart.Overview {
		t.Errorf("initial scene = %v; want overview", got)
	}

	e.SelectScene(chart.LowIncome)
	if got := e.ctrl.Marks().Keys(); len(got) != 1 || got[0] != "A" {
		t.Errorf("low-income marks = %v; want [A]", got)
	}
	if got := e.sceneName(); got != "low-income" {
		t.Errorf("sceneName() = %q; want low-income", got)
	}
}

func TestApplyResultFailed(t *testing.T) {
	e := testEngine(t)
	e.applyResult(loadResult{err: sources.ErrMissingColumn})
	if e.phase != phaseFailed {
		t.Fatalf("phase = %v; want failed", e.phase)
	}
	if !errors.Is(e.loadErr, sources.ErrMissingColumn) {
		t.Errorf("loadErr = %v; want ErrMissingColumn", e.loadErr)
	}
	if e.ctrl != nil {
		t.Error("failed load created a controller")
	}
	if got := e.sceneName(); got != "failed" {
		t.Errorf("sceneName() = %q; want failed", got)
	}
}

func TestStartLoading(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.csv")
	if err := os.WriteFile(path, []byte(testCSV), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg := config.Default()
	cfg.Dataset = path
	e := NewEngine(cfg)

	e.pollResult()
	e.StartLoading(context.Background())

	select {
	case res := <-e.results:
		e.applyResult(res)
	case <-time.After(5 * time.Second):
		t.Fatal("dataset load did not finish")
	}
	if e.phase != phaseReady {
		t.Fatalf("phase = %v (err %v); want ready", e.phase, e.loadErr)
	}
	if got := e.ctrl.Marks().Len(); got != 2 {
		t.Errorf("overview marks = %d; want 2", got)
	}
}

func TestStartLoadingMissingFile(t *testing.T) {
	cfg := config.Default()
	cfg.Dataset = filepath.Join(t.TempDir(), "missing.csv")
	e := NewEngine(cfg)
	e.StartLoading(context.Background())

	res := <-e.results
	e.applyResult(res)
	if e.phase != phaseFailed || e.loadErr == nil {
		t.Errorf("phase = %v, err = %v; want failed with error", e.phase, e.loadErr)
	}
}

func TestWithAlpha(t *testing.T) {
	c := color.RGBA{200, 100, 50, 255}
	tests := []struct {
		a    float64
		want color.RGBA
	}{
		{1, c},
		{0, color.RGBA{}},
		{-1, color.RGBA{}},
		{2, c},
		{0.5, color.RGBA{100, 50, 25, 127}},
	}
	for _, tt := range tests {
		if got := withAlpha(c, tt.a); got != tt.want {
			t.Errorf("withAlpha(%v, %v) = %v; want %v", c, tt.a, got, tt.want)
		}
	}
}

func TestCaptureName(t *testing.T) {
	ts := time.Date(2024, 3, 9, 14, 5, 7, 250*int(time.Millisecond), time.UTC)
	if got, want := captureName("high-income", ts), "scene-high-income-20240309-140507.250.png"; got != want {
		t.Errorf("captureName() = %q; want %q", got, want)
	}
}

func TestWritePNG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "frame.png")
	img := image.NewRGBA(image.Rect(0, 0, 4, 3))
	img.Set(1, 1, color.RGBA{255, 0, 0, 255})
	if err := writePNG(path, img); err != nil {
		t.Fatalf("writePNG() = %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	decoded, err := png.Decode(f)
	if err != nil {
		t.Fatalf("png.Decode() = %v", err)
	}
	if b := decoded.Bounds(); b.Dx() != 4 || b.Dy() != 3 {
		t.Errorf("decoded bounds = %v; want 4x3", b)
	}
}
