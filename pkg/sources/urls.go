package sources

const (
	// DefaultDatasetPath is the CSV the viewer loads when no dataset is configured.
	DefaultDatasetPath = "data416.csv"

	ColumnEntity = "Entity"
	ColumnGDP    = "GDP per capita"
	ColumnShare  = "Share of the daily calorie supply that comes from animal protein"
	ColumnRegion = "World regions according to OWID"
)

// PercentScale converts the share column, stored as a fraction, into a percentage.
const PercentScale = 100.0
