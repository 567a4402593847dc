package sources

import (
	"strings"

	"github.com/biter777/countries"
)

type Region string

const (
	RegionUnknown      Region = ""
	RegionAsia         Region = "Asia"
	RegionEurope       Region = "Europe"
	RegionAfrica       Region = "Africa"
	RegionNorthAmerica Region = "North America"
	RegionSouthAmerica Region = "South America"
	RegionOceania      Region = "Oceania"
)

// Regions lists the closed set of region labels in legend order.
var Regions = []Region{
	RegionAsia,
	RegionEurope,
	RegionAfrica,
	RegionNorthAmerica,
	RegionSouthAmerica,
	RegionOceania,
}

// ParseRegion matches s against the known labels, ignoring case and surrounding space.
func ParseRegion(s string) (Region, bool) {
	s = strings.TrimSpace(s)
	for _, r := range Regions {
		if strings.EqualFold(s, string(r)) {
			return r, true
		}
	}
	return RegionUnknown, false
}

// RegionForEntity derives a region from a country name. Aggregates such as "World" or
// names the countries database does not know resolve to RegionUnknown.
func RegionForEntity(entity string) Region {
	c := countries.ByName(entity)
	if c == countries.Unknown {
		return RegionUnknown
	}
	r, _ := ParseRegion(c.Region().String())
	return r
}
