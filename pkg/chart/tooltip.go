package chart

import (
	"fmt"
	"math"

	"github.com/dustin/go-humanize"
	"github.com/sudorandom/protein-scenes/pkg/sources"
)

// Tooltip is the hover panel content for one record.
type Tooltip struct {
	Title string
	Lines []string
}

// FormatGDP renders a GDP value grouped by thousands with no decimals.
func FormatGDP(v float64) string {
	return "$" + humanize.Comma(int64(math.Round(v)))
}

// FormatShare renders a percentage with two decimals.
func FormatShare(v float64) string {
	return fmt.Sprintf("%.2f%%", v)
}

func TooltipFor(r sources.Record) Tooltip {
	return Tooltip{
		Title: r.Entity,
		Lines: []string{
			"GDP: " + FormatGDP(r.GDPPerCapita),
			"Animal Protein Share: " + FormatShare(r.AnimalProteinShare),
		},
	}
}

// String joins the tooltip into newline separated text.
func (t Tooltip) String() string {
	s := t.Title
	for _, l := range t.Lines {
		s += "\n" + l
	}
	return s
}

// TooltipOffset is where the panel sits relative to the pointer.
const (
	TooltipOffsetX = 15.0
	TooltipOffsetY = -28.0
)

// PlaceTooltip positions a w*h panel near the pointer, kept inside a surface of the given size.
func PlaceTooltip(px, py, w, h float64, surfaceW, surfaceH int) (x, y float64) {
	x, y = px+TooltipOffsetX, py+TooltipOffsetY
	if x+w > float64(surfaceW) {
		x = px - TooltipOffsetX - w
	}
	if y+h > float64(surfaceH) {
		y = float64(surfaceH) - h
	}
	return math.Max(0, x), math.Max(0, y)
}
