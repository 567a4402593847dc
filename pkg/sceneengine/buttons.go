package sceneengine

import "github.com/sudorandom/protein-scenes/pkg/chart"

const (
	buttonWidth  = 120.0
	buttonHeight = 28.0
	buttonGap    = 10.0
	buttonTop    = 14.0
)

// Button is an on-surface scene selector.
type Button struct {
	ID    string
	Label string
	Scene chart.Scene
	X, Y  float64
	W, H  float64
}

func (b Button) Contains(x, y float64) bool {
	return x >= b.X && x < b.X+b.W && y >= b.Y && y < b.Y+b.H
}

// LayoutButtons places one button per scene in a row above the plotting area.
func LayoutButtons(l chart.Layout) []Button {
	th := chart.DefaultThresholds()
	buttons := make([]Button, 0, len(chart.Scenes))
	x := l.Margin.Left
	for _, s := range chart.Scenes {
		buttons = append(buttons, Button{
			ID:    s.ButtonID(),
			Label: th.Spec(s).Label,
			Scene: s,
			X:     x,
			Y:     buttonTop,
			W:     buttonWidth,
			H:     buttonHeight,
		})
		x += buttonWidth + buttonGap
	}
	return buttons
}

// HitButton returns the scene of the button under (x, y).
func HitButton(buttons []Button, x, y float64) (chart.Scene, bool) {
	for _, b := range buttons {
		if b.Contains(x, y) {
			return b.Scene, true
		}
	}
	return chart.Overview, false
}
