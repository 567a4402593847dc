package sceneengine

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/sudorandom/protein-scenes/pkg/chart"
	"github.com/sudorandom/protein-scenes/pkg/sources"
)

const (
	fontSize     = 13.0
	tickLen      = 6.0
	tickFontSize = 11.0
)

// generateBackground renders everything that does not change between scenes: the plot
// frame, both axes and the region legend. Axes need scales, so they appear once the
// dataset is ready.
func (e *Engine) generateBackground() {
	img := ebiten.NewImage(e.Width, e.Height)
	img.Fill(ColorBackground)

	l := e.layout
	left, top := float32(l.Margin.Left), float32(l.Margin.Top)
	innerW, innerH := float32(l.InnerWidth()), float32(l.InnerHeight())
	vector.DrawFilledRect(img, left, top, innerW, innerH, ColorPlot, false)
	vector.StrokeRect(img, left, top, innerW, innerH, 1, ColorOutline, false)

	if e.ctrl != nil {
		e.drawAxes(img)
	}
	e.drawLegend(img)
	e.bgImage = img
}

func (e *Engine) drawAxes(img *ebiten.Image) {
	if e.fontSource == nil {
		return
	}
	l := e.layout
	s := e.ctrl.Scales()
	left, top := l.Margin.Left, l.Margin.Top
	bottom := top + l.InnerHeight()
	tickFace := &text.GoTextFace{Source: e.monoSource, Size: tickFontSize}
	labelFace := &text.GoTextFace{Source: e.fontSource, Size: fontSize}

	vector.StrokeLine(img, float32(left), float32(bottom), float32(left+l.InnerWidth()), float32(bottom), 1, ColorAxis, false)
	for _, tk := range s.XTicks() {
		x := left + tk.Pos
		vector.StrokeLine(img, float32(x), float32(bottom), float32(x), float32(bottom+tickLen), 1, ColorAxis, false)
		if tk.Label == "" {
			continue
		}
		vector.StrokeLine(img, float32(x), float32(top), float32(x), float32(bottom), 1, ColorOutline, false)
		op := &text.DrawOptions{}
		op.GeoM.Translate(x, bottom+tickLen+2)
		op.PrimaryAlign = text.AlignCenter
		op.ColorScale.Scale(1, 1, 1, 0.7)
		text.Draw(img, tk.Label, tickFace, op)
	}

	vector.StrokeLine(img, float32(left), float32(top), float32(left), float32(bottom), 1, ColorAxis, false)
	for _, tk := range s.YTicks() {
		y := top + tk.Pos
		vector.StrokeLine(img, float32(left-tickLen), float32(y), float32(left), float32(y), 1, ColorAxis, false)
		op := &text.DrawOptions{}
		op.GeoM.Translate(left-tickLen-4, y)
		op.PrimaryAlign = text.AlignEnd
		op.SecondaryAlign = text.AlignCenter
		op.ColorScale.Scale(1, 1, 1, 0.7)
		text.Draw(img, tk.Label, tickFace, op)
	}

	xop := &text.DrawOptions{}
	xop.GeoM.Translate(left+l.InnerWidth()/2, bottom+30)
	xop.PrimaryAlign = text.AlignCenter
	xop.ColorScale.Scale(1, 1, 1, 0.8)
	text.Draw(img, chart.XAxisLabel, labelFace, xop)

	yop := &text.DrawOptions{}
	yop.PrimaryAlign = text.AlignCenter
	yop.GeoM.Rotate(-math.Pi / 2)
	yop.GeoM.Translate(left-55, top+l.InnerHeight()/2)
	yop.ColorScale.Scale(1, 1, 1, 0.8)
	text.Draw(img, chart.YAxisLabel, labelFace, yop)
}

func (e *Engine) drawLegend(img *ebiten.Image) {
	lx, ly := e.layout.LegendOrigin()
	face := &text.GoTextFace{Source: e.fontSource, Size: fontSize}
	for i, r := range sources.Regions {
		ty := ly + float64(i)*chart.LegendRow
		vector.DrawFilledRect(img, float32(lx), float32(ty), chart.LegendSwatch, chart.LegendSwatch, chart.RegionColor(r), false)
		if e.fontSource == nil {
			continue
		}
		op := &text.DrawOptions{}
		op.GeoM.Translate(lx+chart.LegendSwatch+6, ty+chart.LegendSwatch/2)
		op.SecondaryAlign = text.AlignCenter
		op.ColorScale.Scale(1, 1, 1, 0.8)
		text.Draw(img, string(r), face, op)
	}
}
