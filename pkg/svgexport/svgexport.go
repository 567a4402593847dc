// Package svgexport renders the controller's current scene as a standalone SVG document.
package svgexport

import (
	"bytes"
	"fmt"
	"io"
	"math"

	svg "github.com/ajstarks/svgo"
	"github.com/sudorandom/protein-scenes/pkg/chart"
	"github.com/sudorandom/protein-scenes/pkg/sources"
)

const (
	axisStyle  = "stroke:#333333;stroke-width:1"
	tickStyle  = "font-family:sans-serif;font-size:11px;fill:#333333"
	labelStyle = "font-family:sans-serif;font-size:13px;fill:#111111"
	noteStyle  = "font-family:sans-serif;font-size:14px;font-style:italic;fill:#444444"
	tickLen    = 6
)

// Write draws the current scene of c. Marks are drawn at their target positions, so a
// scene written straight after Select shows where the transition ends.
func Write(w io.Writer, c *chart.Controller) error {
	var buf bytes.Buffer
	l := c.Layout()
	canvas := svg.New(&buf)
	canvas.Start(l.Width, l.Height)
	canvas.Title(fmt.Sprintf("GDP per capita vs animal protein share: %s", c.Spec().Label))
	canvas.Rect(0, 0, l.Width, l.Height, "fill:#ffffff")

	canvas.Translate(px(l.Margin.Left), px(l.Margin.Top))
	drawAxes(canvas, c)
	drawMarks(canvas, c)
	if a, ok := c.Annotation(); ok {
		x, y := l.AnnotationPoint(a)
		canvas.Text(px(x), px(y), a.Text, noteStyle)
	}
	canvas.Gend()

	drawLegend(canvas, l)
	canvas.End()

	_, err := w.Write(buf.Bytes())
	return err
}

func drawAxes(canvas *svg.SVG, c *chart.Controller) {
	l := c.Layout()
	s := c.Scales()
	innerW, innerH := px(l.InnerWidth()), px(l.InnerHeight())

	canvas.Group("class=\"x-axis\"")
	canvas.Line(0, innerH, innerW, innerH, axisStyle)
	for _, tk := range s.XTicks() {
		x := px(tk.Pos)
		canvas.Line(x, innerH, x, innerH+tickLen, axisStyle)
		if tk.Label == "" {
			continue
		}
		canvas.Text(x, innerH+tickLen+12, tk.Label, tickStyle, "text-anchor=\"middle\"")
	}
	canvas.Text(innerW/2, innerH+45, chart.XAxisLabel, labelStyle, "text-anchor=\"middle\"")
	canvas.Gend()

	canvas.Group("class=\"y-axis\"")
	canvas.Line(0, 0, 0, innerH, axisStyle)
	for _, tk := range s.YTicks() {
		y := px(tk.Pos)
		canvas.Line(-tickLen, y, 0, y, axisStyle)
		canvas.Text(-tickLen-3, y+4, tk.Label, tickStyle, "text-anchor=\"end\"")
	}
	canvas.Text(-innerH/2, -50, chart.YAxisLabel, labelStyle, "text-anchor=\"middle\"", "transform=\"rotate(-90)\"")
	canvas.Gend()
}

func drawMarks(canvas *svg.SVG, c *chart.Controller) {
	canvas.Group("class=\"marks\"")
	for _, mk := range c.Marks().Marks() {
		canvas.Group("class=\"mark\"")
		canvas.Title(chart.TooltipFor(mk.Record).String())
		canvas.Circle(px(mk.TargetX), px(mk.TargetY), px(mk.TargetR),
			fmt.Sprintf("fill:%s;fill-opacity:0.8;stroke:#ffffff;stroke-width:0.5", chart.Hex(mk.Color)))
		canvas.Gend()
	}
	canvas.Gend()
}

func drawLegend(canvas *svg.SVG, l chart.Layout) {
	x, y := l.LegendOrigin()
	canvas.Group("class=\"legend\"")
	for i, r := range sources.Regions {
		rowY := y + float64(i)*chart.LegendRow
		canvas.Rect(px(x), px(rowY), px(chart.LegendSwatch), px(chart.LegendSwatch), "fill:"+chart.Hex(chart.RegionColor(r)))
		canvas.Text(px(x+chart.LegendSwatch+6), px(rowY+chart.LegendSwatch-4), string(r), tickStyle)
	}
	canvas.Gend()
}

func px(v float64) int { return int(math.Round(v)) }
