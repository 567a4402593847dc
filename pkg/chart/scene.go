package chart

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/sudorandom/protein-scenes/pkg/sources"
)

type Scene int

const (
	Overview Scene = iota
	HighIncome
	LowIncome
)

// Scenes lists every scene in button order.
var Scenes = []Scene{Overview, HighIncome, LowIncome}

const (
	DefaultHighIncomeThreshold = 30000.0
	DefaultLowIncomeThreshold  = 5000.0
)

func (s Scene) String() string {
	switch s {
	case Overview:
		return "overview"
	case HighIncome:
		return "high-income"
	case LowIncome:
		return "low-income"
	}
	return fmt.Sprintf("scene(%d)", int(s))
}

// ButtonID is the identifier of the host button that selects s.
func (s Scene) ButtonID() string { return fmt.Sprintf("btn%d", int(s)+1) }

// ParseScene accepts scene names, 1-based numbers and button ids.
func ParseScene(v string) (Scene, error) {
	v = strings.ToLower(strings.TrimSpace(v))
	for _, s := range Scenes {
		if v == s.String() || v == s.ButtonID() || v == fmt.Sprint(int(s)+1) {
			return s, nil
		}
	}
	return Overview, fmt.Errorf("unknown scene %q", v)
}

// Thresholds are the GDP cut-offs of the income scenes, in USD.
type Thresholds struct {
	HighIncome float64 `yaml:"high_income"`
	LowIncome  float64 `yaml:"low_income"`
}

func DefaultThresholds() Thresholds {
	return Thresholds{HighIncome: DefaultHighIncomeThreshold, LowIncome: DefaultLowIncomeThreshold}
}

// Annotation is scene text placed at fractions of the inner plotting area.
type Annotation struct {
	Text         string
	FracX, FracY float64
}

// SceneSpec is everything a scene contributes to a draw: which records are visible,
// how they are coloured, how large marks are and what the annotation says.
type SceneSpec struct {
	Scene      Scene
	Label      string
	Annotation Annotation
	MarkRadius float64
	Visible    func(sources.Record) bool
	Fill       func(sources.Record) color.RGBA
}

// Spec returns the data for s under t.
func (t Thresholds) Spec(s Scene) SceneSpec {
	switch s {
	case HighIncome:
		return SceneSpec{
			Scene: s,
			Label: "High income",
			Annotation: Annotation{
				Text:  fmt.Sprintf("Focus on high-income countries with GDP > $%s.", humanize.Commaf(t.HighIncome)),
				FracX: 0.1, FracY: 0.8,
			},
			MarkRadius: 6,
			Visible:    func(r sources.Record) bool { return r.GDPPerCapita > t.HighIncome },
			Fill:       RegionFill,
		}
	case LowIncome:
		return SceneSpec{
			Scene: s,
			Label: "Low income",
			Annotation: Annotation{
				Text:  fmt.Sprintf("Focus on low-income countries with GDP < $%s.", humanize.Commaf(t.LowIncome)),
				FracX: 0.3, FracY: 0.1,
			},
			MarkRadius: 6,
			Visible:    func(r sources.Record) bool { return r.GDPPerCapita < t.LowIncome },
			Fill:       RegionFill,
		}
	}
	return SceneSpec{
		Scene: Overview,
		Label: "Overview",
		Annotation: Annotation{
			Text:  "Higher GDP tends to correlate with higher animal protein share.",
			FracX: 0.3, FracY: 0.2,
		},
		MarkRadius: 5,
		Visible:    func(sources.Record) bool { return true },
		Fill:       RegionFill,
	}
}

// Filter returns the plottable records spec shows, in dataset order. The result is never
// nil so an empty scene still renders as an empty chart.
func (spec SceneSpec) Filter(records []sources.Record) []sources.Record {
	out := make([]sources.Record, 0, len(records))
	for _, r := range records {
		if r.Plottable() && spec.Visible(r) {
			out = append(out, r)
		}
	}
	return out
}
