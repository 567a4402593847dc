package chart

import (
	"fmt"
	"image/color"

	"github.com/sudorandom/protein-scenes/pkg/sources"
)

var (
	ColorAsia         = color.RGBA{0x1f, 0x77, 0xb4, 255}
	ColorEurope       = color.RGBA{0xff, 0x7f, 0x0e, 255}
	ColorAfrica       = color.RGBA{0x2c, 0xa0, 0x2c, 255}
	ColorNorthAmerica = color.RGBA{0xd6, 0x27, 0x28, 255}
	ColorSouthAmerica = color.RGBA{0x94, 0x67, 0xbd, 255}
	ColorOceania      = color.RGBA{0x8c, 0x56, 0x4b, 255}
	ColorUnknown      = color.RGBA{0x99, 0x99, 0x99, 255}
)

var regionColors = map[sources.Region]color.RGBA{
	sources.RegionAsia:         ColorAsia,
	sources.RegionEurope:       ColorEurope,
	sources.RegionAfrica:       ColorAfrica,
	sources.RegionNorthAmerica: ColorNorthAmerica,
	sources.RegionSouthAmerica: ColorSouthAmerica,
	sources.RegionOceania:      ColorOceania,
}

// RegionColor is the fixed colour for r; unknown regions are grey.
func RegionColor(r sources.Region) color.RGBA {
	if c, ok := regionColors[r]; ok {
		return c
	}
	return ColorUnknown
}

func RegionFill(r sources.Record) color.RGBA { return RegionColor(r.Region) }

// Hex formats c as #rrggbb.
func Hex(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}
