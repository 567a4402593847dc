package sceneengine

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/sudorandom/protein-scenes/pkg/chart"
)

const (
	markOpacity    = 0.8
	tooltipPadding = 8.0
	tooltipLineH   = 1.4
)

// withAlpha scales c by a, keeping the premultiplied form ebiten expects.
func withAlpha(c color.RGBA, a float64) color.RGBA {
	if a <= 0 {
		return color.RGBA{}
	}
	if a > 1 {
		a = 1
	}
	return color.RGBA{
		R: uint8(float64(c.R) * a),
		G: uint8(float64(c.G) * a),
		B: uint8(float64(c.B) * a),
		A: uint8(float64(c.A) * a),
	}
}

func (e *Engine) drawMarks(screen *ebiten.Image) {
	left, top := e.layout.Margin.Left, e.layout.Margin.Top
	for _, mk := range e.ctrl.Marks().Marks() {
		if mk.Alpha <= 0 {
			continue
		}
		cx, cy := float32(left+mk.DisplayX), float32(top+mk.DisplayY)
		vector.DrawFilledCircle(screen, cx, cy, float32(mk.DisplayR), withAlpha(mk.Color, mk.Alpha*markOpacity), true)
		if mk == e.hover {
			vector.StrokeCircle(screen, cx, cy, float32(mk.DisplayR)+1, 1.5, color.White, true)
		}
	}
}

func (e *Engine) drawAnnotation(screen *ebiten.Image) {
	a, ok := e.ctrl.Annotation()
	if !ok || e.fontSource == nil {
		return
	}
	x, y := e.layout.AnnotationPoint(a)
	face := &text.GoTextFace{Source: e.fontSource, Size: fontSize + 2}
	op := &text.DrawOptions{}
	op.GeoM.Translate(e.layout.Margin.Left+x, e.layout.Margin.Top+y)
	op.ColorScale.Scale(1, 1, 1, 0.9)
	text.Draw(screen, a.Text, face, op)
}

func (e *Engine) drawTooltip(screen *ebiten.Image) {
	if e.hover == nil || e.fontSource == nil {
		return
	}
	tip := chart.TooltipFor(e.hover.Record)
	titleFace := &text.GoTextFace{Source: e.fontSource, Size: fontSize}
	face := &text.GoTextFace{Source: e.monoSource, Size: tickFontSize}

	boxW, _ := text.Measure(tip.Title, titleFace, 0)
	for _, line := range tip.Lines {
		w, _ := text.Measure(line, face, 0)
		boxW = max(boxW, w)
	}
	boxW += tooltipPadding*2 + 4
	lineH := fontSize * tooltipLineH
	boxH := lineH*float64(len(tip.Lines)+1) + tooltipPadding*2

	x, y := chart.PlaceTooltip(e.cursorX, e.cursorY, boxW, boxH, e.Width, e.Height)

	vector.DrawFilledRect(screen, float32(x), float32(y), float32(boxW), float32(boxH), color.RGBA{0, 0, 0, 200}, false)
	vector.StrokeRect(screen, float32(x), float32(y), float32(boxW), float32(boxH), 1, ColorOutline, false)
	vector.DrawFilledRect(screen, float32(x), float32(y), 4, float32(boxH), e.hover.Color, false)

	op := &text.DrawOptions{}
	op.GeoM.Translate(x+tooltipPadding+4, y+tooltipPadding)
	text.Draw(screen, tip.Title, titleFace, op)
	for i, line := range tip.Lines {
		lop := &text.DrawOptions{}
		lop.GeoM.Translate(x+tooltipPadding+4, y+tooltipPadding+lineH*float64(i+1))
		lop.ColorScale.Scale(1, 1, 1, 0.8)
		text.Draw(screen, line, face, lop)
	}
}

func (e *Engine) drawButtons(screen *ebiten.Image) {
	face := &text.GoTextFace{Source: e.fontSource, Size: fontSize * 0.9}
	for _, b := range e.buttons {
		active := e.ctrl != nil && e.ctrl.Scene() == b.Scene
		hovered := b.Contains(e.cursorX, e.cursorY)

		bg := ColorPanel
		if hovered {
			bg = color.RGBA{20, 24, 31, 200}
		}
		vector.DrawFilledRect(screen, float32(b.X), float32(b.Y), float32(b.W), float32(b.H), bg, false)
		vector.StrokeRect(screen, float32(b.X), float32(b.Y), float32(b.W), float32(b.H), 1, ColorOutline, false)
		if active {
			vector.DrawFilledRect(screen, float32(b.X), float32(b.Y), 4, float32(b.H), ColorAccent, false)
		}

		if e.fontSource == nil {
			continue
		}
		alpha := float32(0.5)
		if active || hovered {
			alpha = 0.9
		}
		op := &text.DrawOptions{}
		op.GeoM.Translate(b.X+b.W/2, b.Y+b.H/2)
		op.PrimaryAlign = text.AlignCenter
		op.SecondaryAlign = text.AlignCenter
		op.ColorScale.Scale(1, 1, 1, alpha)
		text.Draw(screen, b.Label, face, op)
	}
}

// drawBanner writes msg in a full-width strip across the middle of the plot.
func (e *Engine) drawBanner(screen *ebiten.Image, msg string, accent color.RGBA) {
	h := fontSize * 3
	y := e.layout.Margin.Top + e.layout.InnerHeight()/2 - h/2
	vector.DrawFilledRect(screen, 0, float32(y), float32(e.Width), float32(h), color.RGBA{0, 0, 0, 180}, false)
	vector.StrokeRect(screen, 0, float32(y), float32(e.Width), float32(h), 1, ColorOutline, false)
	vector.DrawFilledRect(screen, 0, float32(y), 4, float32(h), accent, false)

	if e.fontSource == nil {
		return
	}
	face := &text.GoTextFace{Source: e.fontSource, Size: fontSize}
	op := &text.DrawOptions{}
	op.GeoM.Translate(float64(e.Width)/2, y+h/2)
	op.PrimaryAlign = text.AlignCenter
	op.SecondaryAlign = text.AlignCenter
	text.Draw(screen, msg, face, op)
}
