package chart

import (
	"image/color"
	"math"
	"time"

	"github.com/sudorandom/protein-scenes/pkg/sources"
)

// DefaultTransition is how long an updated mark takes to reach its new position.
const DefaultTransition = 750 * time.Millisecond

// MarkSpec is a mark the current scene wants on screen.
type MarkSpec struct {
	Record sources.Record
	X, Y   float64
	Radius float64
	Color  color.RGBA
}

// Mark is a drawn point keyed by its record's entity. Display fields are what is drawn
// this frame; Target fields are where the running transition ends.
type Mark struct {
	Key    string
	Record sources.Record
	Color  color.RGBA

	DisplayX, DisplayY, DisplayR float64
	TargetX, TargetY, TargetR    float64
	Alpha, TargetAlpha           float64

	fromX, fromY, fromR, fromAlpha float64
	start                          time.Time
	active                         bool
}

// Diff lists the keys a reconcile created, moved and removed.
type Diff struct {
	Entered []string
	Updated []string
	Exited  []string
}

// MarkSet reconciles desired marks against drawn marks by key, keeping the identity of
// marks present in both so they animate instead of being recreated.
type MarkSet struct {
	Duration time.Duration

	marks map[string]*Mark
	order []string
}

func NewMarkSet(d time.Duration) *MarkSet {
	if d <= 0 {
		d = DefaultTransition
	}
	return &MarkSet{Duration: d, marks: make(map[string]*Mark)}
}

// Reconcile makes the set match desired. Exits are removed immediately, enters fade in
// at their target, updates transition from wherever they are drawn now.
func (m *MarkSet) Reconcile(desired []MarkSpec, now time.Time) Diff {
	var diff Diff

	// Mark all current marks as inactive so any not refreshed are removed
	for _, mk := range m.marks {
		mk.active = false
	}

	order := make([]string, 0, len(desired))
	for _, d := range desired {
		key := d.Record.Entity
		if mk, ok := m.marks[key]; ok {
			if mk.active {
				continue
			}
			mk.active = true
			mk.Record = d.Record
			mk.Color = d.Color
			mk.fromX, mk.fromY, mk.fromR, mk.fromAlpha = mk.DisplayX, mk.DisplayY, mk.DisplayR, mk.Alpha
			mk.TargetX, mk.TargetY, mk.TargetR, mk.TargetAlpha = d.X, d.Y, d.Radius, 1
			mk.start = now
			diff.Updated = append(diff.Updated, key)
		} else {
			m.marks[key] = &Mark{
				Key:      key,
				Record:   d.Record,
				Color:    d.Color,
				DisplayX: d.X, DisplayY: d.Y, DisplayR: d.Radius,
				TargetX: d.X, TargetY: d.Y, TargetR: d.Radius,
				Alpha: 0, TargetAlpha: 1,
				fromX: d.X, fromY: d.Y, fromR: d.Radius,
				start:  now,
				active: true,
			}
			diff.Entered = append(diff.Entered, key)
		}
		order = append(order, key)
	}

	for _, key := range m.order {
		if mk := m.marks[key]; mk != nil && !mk.active {
			delete(m.marks, key)
			diff.Exited = append(diff.Exited, key)
		}
	}
	m.order = order
	return diff
}

// Step advances every transition to now.
func (m *MarkSet) Step(now time.Time) {
	for _, key := range m.order {
		mk := m.marks[key]
		t := m.progress(mk, now)
		e := easeCubicInOut(t)
		mk.DisplayX = lerp(mk.fromX, mk.TargetX, e)
		mk.DisplayY = lerp(mk.fromY, mk.TargetY, e)
		mk.DisplayR = lerp(mk.fromR, mk.TargetR, e)
		mk.Alpha = lerp(mk.fromAlpha, mk.TargetAlpha, e)
	}
}

// Animating reports whether any transition is still running at now.
func (m *MarkSet) Animating(now time.Time) bool {
	for _, key := range m.order {
		if m.progress(m.marks[key], now) < 1 {
			return true
		}
	}
	return false
}

func (m *MarkSet) progress(mk *Mark, now time.Time) float64 {
	if m.Duration <= 0 {
		return 1
	}
	t := float64(now.Sub(mk.start)) / float64(m.Duration)
	return math.Max(0, math.Min(1, t))
}

func (m *MarkSet) Len() int { return len(m.order) }

// Keys returns mark keys in draw order.
func (m *MarkSet) Keys() []string {
	return append([]string(nil), m.order...)
}

// Get returns the mark for key, or nil.
func (m *MarkSet) Get(key string) *Mark { return m.marks[key] }

// Marks returns marks in draw order; later marks are drawn on top.
func (m *MarkSet) Marks() []*Mark {
	out := make([]*Mark, 0, len(m.order))
	for _, key := range m.order {
		out = append(out, m.marks[key])
	}
	return out
}

// Hit returns the topmost mark whose drawn circle contains (x, y), or nil.
func (m *MarkSet) Hit(x, y float64) *Mark {
	for i := len(m.order) - 1; i >= 0; i-- {
		mk := m.marks[m.order[i]]
		dx, dy := x-mk.DisplayX, y-mk.DisplayY
		if dx*dx+dy*dy <= mk.DisplayR*mk.DisplayR {
			return mk
		}
	}
	return nil
}

func lerp(a, b, t float64) float64 { return a + (b-a)*t }

func easeCubicInOut(t float64) float64 {
	if t < 0.5 {
		return 4 * t * t * t
	}
	f := 2*t - 2
	return 0.5*f*f*f + 1
}
