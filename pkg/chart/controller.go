package chart

import (
	"time"

	"github.com/rs/zerolog/log"
	"github.com/sudorandom/protein-scenes/pkg/sources"
)

// Controller owns the scene state machine. Scales are fixed at construction from the
// full dataset, so axis positions are comparable across scenes.
type Controller struct {
	layout     Layout
	records    []sources.Record
	scales     Scales
	thresholds Thresholds
	marks      *MarkSet

	current    Scene
	visible    []sources.Record
	annotation *Annotation
}

// Options tune a Controller. Zero values take the defaults.
type Options struct {
	Thresholds Thresholds
	Transition time.Duration
}

// NewController builds scales from ds and enters Overview at now.
func NewController(ds *sources.Dataset, layout Layout, opts Options, now time.Time) *Controller {
	if opts.Thresholds == (Thresholds{}) {
		opts.Thresholds = DefaultThresholds()
	}
	var records []sources.Record
	if ds != nil {
		records = ds.Records
	}
	c := &Controller{
		layout:     layout,
		records:    records,
		scales:     NewScales(records, layout.InnerWidth(), layout.InnerHeight()),
		thresholds: opts.Thresholds,
		marks:      NewMarkSet(opts.Transition),
	}
	c.enter(Overview, now)
	return c
}

// Select transitions to s. Any scene may follow any other; the latest call wins.
func (c *Controller) Select(s Scene, now time.Time) Diff {
	return c.enter(s, now)
}

func (c *Controller) enter(s Scene, now time.Time) Diff {
	c.annotation = nil

	spec := c.thresholds.Spec(s)
	c.current = spec.Scene
	c.visible = spec.Filter(c.records)

	desired := make([]MarkSpec, 0, len(c.visible))
	for _, r := range c.visible {
		x, y, ok := c.scales.Point(r)
		if !ok {
			continue
		}
		desired = append(desired, MarkSpec{Record: r, X: x, Y: y, Radius: spec.MarkRadius, Color: spec.Fill(r)})
	}
	diff := c.marks.Reconcile(desired, now)

	a := spec.Annotation
	c.annotation = &a

	log.Debug().
		Str("scene", spec.Scene.String()).
		Int("visible", len(c.visible)).
		Int("entered", len(diff.Entered)).
		Int("updated", len(diff.Updated)).
		Int("exited", len(diff.Exited)).
		Msg("Scene selected")
	return diff
}

// Tick advances mark transitions.
func (c *Controller) Tick(now time.Time) { c.marks.Step(now) }

func (c *Controller) Scene() Scene              { return c.current }
func (c *Controller) Spec() SceneSpec           { return c.thresholds.Spec(c.current) }
func (c *Controller) Scales() Scales            { return c.scales }
func (c *Controller) Layout() Layout            { return c.layout }
func (c *Controller) Marks() *MarkSet           { return c.marks }
func (c *Controller) Thresholds() Thresholds    { return c.thresholds }
func (c *Controller) Visible() []sources.Record { return c.visible }

// Annotation returns the text drawn for the current scene, if any.
func (c *Controller) Annotation() (Annotation, bool) {
	if c.annotation == nil {
		return Annotation{}, false
	}
	return *c.annotation, true
}

// HitTest finds the mark under a pointer given in surface coordinates.
func (c *Controller) HitTest(x, y float64) *Mark {
	return c.marks.Hit(x-c.layout.Margin.Left, y-c.layout.Margin.Top)
}
