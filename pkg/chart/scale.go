// Package chart holds the rendering-independent model of the scatterplot: scales, scenes,
// keyed marks and the controller that owns the active scene.
package chart

import (
	"math"
	"strings"

	"github.com/aclements/go-moremath/scale"
	"github.com/dustin/go-humanize"
	"github.com/sudorandom/protein-scenes/pkg/sources"
)

// Margin is the space between the surface edge and the plotting area.
type Margin struct {
	Top    float64 `yaml:"top"`
	Right  float64 `yaml:"right"`
	Bottom float64 `yaml:"bottom"`
	Left   float64 `yaml:"left"`
}

// Layout fixes the pixel geometry of the drawing surface.
type Layout struct {
	Width, Height int
	Margin        Margin
}

func DefaultLayout() Layout {
	return Layout{
		Width:  960,
		Height: 600,
		Margin: Margin{Top: 60, Right: 100, Bottom: 60, Left: 80},
	}
}

func (l Layout) InnerWidth() float64  { return float64(l.Width) - l.Margin.Left - l.Margin.Right }
func (l Layout) InnerHeight() float64 { return float64(l.Height) - l.Margin.Top - l.Margin.Bottom }

// Tick is an axis tick in inner-area pixel coordinates.
type Tick struct {
	Value float64
	Pos   float64
	Label string
}

// Scales maps GDP (log) and protein share (linear) into inner-area pixels.
// Y is inverted so larger shares plot higher.
type Scales struct {
	xLo    float64
	xHi    float64
	x      scale.Log
	y      scale.Linear
	innerW float64
	innerH float64
}

const (
	fallbackMinGDP = 100.0
	fallbackMaxGDP = 100000.0
	maxTicks       = 10
)

// NewScales computes domains from every plottable record. Non-plottable records never
// contribute, so a GDP of zero cannot poison the log domain.
func NewScales(records []sources.Record, innerW, innerH float64) Scales {
	minGDP, maxGDP := math.Inf(1), math.Inf(-1)
	maxShare := 0.0
	for _, r := range records {
		if !r.Plottable() {
			continue
		}
		minGDP = math.Min(minGDP, r.GDPPerCapita)
		maxGDP = math.Max(maxGDP, r.GDPPerCapita)
		maxShare = math.Max(maxShare, r.AnimalProteinShare)
	}
	if math.IsInf(minGDP, 1) {
		minGDP, maxGDP = fallbackMinGDP, fallbackMaxGDP
	}

	// Log nice: extend outward to whole decades.
	lo := math.Pow(10, math.Floor(math.Log10(minGDP)))
	hi := math.Pow(10, math.Ceil(math.Log10(maxGDP)))
	if hi <= lo {
		hi = lo * 10
	}
	x, err := scale.NewLog(lo, hi, 10)
	if err != nil {
		lo, hi = fallbackMinGDP, fallbackMaxGDP
		x, _ = scale.NewLog(lo, hi, 10)
	}

	if maxShare <= 0 {
		maxShare = 1
	}
	y := scale.Linear{Min: 0, Max: maxShare, Base: 10}
	y.Nice(scale.TickOptions{Max: maxTicks})

	return Scales{xLo: lo, xHi: hi, x: x, y: y, innerW: innerW, innerH: innerH}
}

// XDomain and YDomain return the niced input intervals.
func (s Scales) XDomain() (lo, hi float64) { return s.xLo, s.xHi }
func (s Scales) YDomain() (lo, hi float64) { return s.y.Min, s.y.Max }

// X maps a GDP value to a pixel in [0, innerW]. ok is false for values the log scale
// cannot represent.
func (s Scales) X(gdp float64) (px float64, ok bool) {
	if gdp <= 0 || math.IsNaN(gdp) || math.IsInf(gdp, 0) {
		return 0, false
	}
	px = s.x.Map(gdp) * s.innerW
	if math.IsNaN(px) || math.IsInf(px, 0) {
		return 0, false
	}
	return px, true
}

// Y maps a protein share percentage to a pixel in [innerH, 0].
func (s Scales) Y(share float64) float64 {
	return s.innerH - s.y.Map(share)*s.innerH
}

// Point places r in inner-area pixels.
func (s Scales) Point(r sources.Record) (x, y float64, ok bool) {
	if !r.Plottable() {
		return 0, 0, false
	}
	x, ok = s.X(r.GDPPerCapita)
	if !ok {
		return 0, 0, false
	}
	return x, s.Y(r.AnimalProteinShare), true
}

// XTicks returns decade ticks, plus the 2..9 multiples within each decade when the domain
// spans few enough decades. Multiples whose leading digit is too large for the available
// space get an empty label.
func (s Scales) XTicks() []Tick {
	major, minor := s.x.Ticks(scale.TickOptions{Max: maxTicks})
	values := major
	if len(major) < maxTicks && len(minor) > len(major) {
		values = minor
	}
	labelMax := math.Max(1, 10*maxTicks/float64(len(values)))

	ticks := make([]Tick, 0, len(values))
	for _, v := range values {
		px, ok := s.X(v)
		if !ok {
			continue
		}
		label := ""
		if leadingDigit(v) <= labelMax {
			label = FormatSI(v)
		}
		ticks = append(ticks, Tick{Value: v, Pos: px, Label: label})
	}
	return ticks
}

// leadingDigit returns v divided by the power of ten below it, rounded: 3000 -> 3.
func leadingDigit(v float64) float64 {
	return math.Round(v / math.Pow(10, math.Floor(math.Log10(v)+1e-9)))
}

func (s Scales) YTicks() []Tick {
	major, _ := s.y.Ticks(scale.TickOptions{Max: maxTicks})
	ticks := make([]Tick, 0, len(major))
	for _, v := range major {
		ticks = append(ticks, Tick{Value: v, Pos: s.Y(v), Label: humanize.Ftoa(v)})
	}
	return ticks
}

// FormatSI renders v with an SI suffix and no trailing zeros: 1000 -> "1k", 2500 -> "2.5k".
func FormatSI(v float64) string {
	return strings.ReplaceAll(humanize.SIWithDigits(v, 2, ""), " ", "")
}
