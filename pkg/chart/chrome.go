package chart

const (
	XAxisLabel = "GDP per Capita (USD, log scale)"
	YAxisLabel = "Share of Calories from Animal Protein (%)"

	LegendSwatch = 18.0
	LegendRow    = 25.0
	legendGap    = 20.0
)

// LegendOrigin is the top-left corner of the region legend in surface coordinates.
func (l Layout) LegendOrigin() (x, y float64) {
	return float64(l.Width) - l.Margin.Right + legendGap, l.Margin.Top
}

// AnnotationPoint places a in inner-area pixels.
func (l Layout) AnnotationPoint(a Annotation) (x, y float64) {
	return a.FracX * l.InnerWidth(), a.FracY * l.InnerHeight()
}
