package sources

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleCSV = `Entity,Code,GDP per capita,Share of the daily calorie supply that comes from animal protein,World regions according to OWID
Burundi,BDI,800.5,0.012,Africa
Switzerland,CHE,71000,0.19,Europe
Japan,JPN,41000,0.1234,Asia
World,OWID_WRL,17000,0.09,
Atlantis,,0,0.05,Oceania
`

func TestParse(t *testing.T) {
	ds, err := Parse(strings.NewReader(sampleCSV), DefaultColumns())
	require.NoError(t, err)
	require.Equal(t, 5, ds.Len())

	burundi := ds.Records[0]
	assert.Equal(t, "Burundi", burundi.Entity)
	assert.InDelta(t, 800.5, burundi.GDPPerCapita, 1e-9)
	assert.InDelta(t, 1.2, burundi.AnimalProteinShare, 1e-9)
	assert.Equal(t, RegionAfrica, burundi.Region)

	assert.InDelta(t, 12.34, ds.Records[2].AnimalProteinShare, 1e-9)
}

func TestParsePlottable(t *testing.T) {
	ds, err := Parse(strings.NewReader(sampleCSV), DefaultColumns())
	require.NoError(t, err)

	var names []string
	for _, r := range ds.Plottable() {
		names = append(names, r.Entity)
	}
	assert.Equal(t, []string{"Burundi", "Switzerland", "Japan", "World"}, names)
}

func TestParseMissingColumn(t *testing.T) {
	tests := []struct {
		name   string
		header string
		column string
	}{
		{"no entity", "Country,GDP per capita,Share", ColumnEntity},
		{"renamed gdp", "Entity,GDP,Share of the daily calorie supply that comes from animal protein", ColumnGDP},
		{"no share", "Entity,GDP per capita", ColumnShare},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(tt.header+"\n"), DefaultColumns())
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrMissingColumn), "got %v", err)
			assert.Contains(t, err.Error(), tt.column)
		})
	}
}

func TestParseEmptyInput(t *testing.T) {
	_, err := Parse(strings.NewReader(""), DefaultColumns())
	assert.True(t, errors.Is(err, ErrMissingColumn), "got %v", err)
}

func TestParseMalformedNumber(t *testing.T) {
	in := "Entity,GDP per capita,Share of the daily calorie supply that comes from animal protein\n" +
		"A,1000,0.1\n" +
		"B,lots,0.2\n"
	_, err := Parse(strings.NewReader(in), DefaultColumns())
	var pe *ParseError
	require.True(t, errors.As(err, &pe), "got %v", err)
	assert.Equal(t, 3, pe.Line)
	assert.Equal(t, ColumnGDP, pe.Column)
	assert.Equal(t, "lots", pe.Value)
}

func TestParseRejectsOutOfRange(t *testing.T) {
	const header = "Entity,GDP per capita,Share of the daily calorie supply that comes from animal protein\n"
	tests := []struct {
		name   string
		row    string
		column string
		value  string
	}{
		{"negative share", "A,1000,-0.2", ColumnShare, "-0.2"},
		{"share above one", "A,1000,1.5", ColumnShare, "1.5"},
		{"NaN share", "A,1000,NaN", ColumnShare, "NaN"},
		{"infinite share", "A,1000,+Inf", ColumnShare, "+Inf"},
		{"NaN gdp", "A,NaN,0.3", ColumnGDP, "NaN"},
		{"infinite gdp", "A,Inf,0.3", ColumnGDP, "Inf"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := header + "B,50000,0.3\n" + tt.row + "\n"
			_, err := Parse(strings.NewReader(in), DefaultColumns())
			var pe *ParseError
			require.True(t, errors.As(err, &pe), "got %v", err)
			assert.True(t, errors.Is(err, ErrOutOfRange), "got %v", err)
			assert.Equal(t, 3, pe.Line)
			assert.Equal(t, tt.column, pe.Column)
			assert.Equal(t, tt.value, pe.Value)
		})
	}
}

func TestParseShareBounds(t *testing.T) {
	in := "Entity,GDP per capita,Share of the daily calorie supply that comes from animal protein\n" +
		"A,1000,0\n" +
		"B,50000,1\n"
	ds, err := Parse(strings.NewReader(in), DefaultColumns())
	require.NoError(t, err)
	require.Equal(t, 2, ds.Len())
	assert.Equal(t, 0.0, ds.Records[0].AnimalProteinShare)
	assert.Equal(t, 100.0, ds.Records[1].AnimalProteinShare)
}

func TestParseSkipsEmptyCellsAndDuplicates(t *testing.T) {
	in := "Entity,GDP per capita,Share of the daily calorie supply that comes from animal protein\n" +
		"A,1000,0.1\n" +
		"B,,0.2\n" +
		",5000,0.2\n" +
		"A,2000,0.3\n"
	ds, err := Parse(strings.NewReader(in), DefaultColumns())
	require.NoError(t, err)
	require.Equal(t, 1, ds.Len())
	assert.Equal(t, 2, ds.Skipped)
	assert.Equal(t, 1, ds.Duplicates)
	assert.InDelta(t, 1000, ds.Records[0].GDPPerCapita, 1e-9, "first row for an entity wins")
}

func TestParseCustomColumnsWithoutRegion(t *testing.T) {
	in := "\ufeffname,gdp,share\nFrance,45000,0.2\n"
	cols := Columns{Entity: "name", GDP: "gdp", Share: "share", Region: "region"}
	ds, err := Parse(strings.NewReader(in), cols)
	require.NoError(t, err)
	require.Equal(t, 1, ds.Len())
	assert.Equal(t, "France", ds.Records[0].Entity)
	assert.Equal(t, RegionEurope, ds.Records[0].Region)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data416.csv")
	require.NoError(t, os.WriteFile(path, []byte(sampleCSV), 0o644))

	ds, err := Load(context.Background(), path, DefaultColumns())
	require.NoError(t, err)
	assert.Equal(t, 5, ds.Len())

	_, err = Load(context.Background(), filepath.Join(t.TempDir(), "missing.csv"), DefaultColumns())
	assert.Error(t, err)
}

func TestParseRegion(t *testing.T) {
	tests := []struct {
		in   string
		want Region
		ok   bool
	}{
		{"Asia", RegionAsia, true},
		{" north america ", RegionNorthAmerica, true},
		{"SOUTH AMERICA", RegionSouthAmerica, true},
		{"Antarctica", RegionUnknown, false},
		{"", RegionUnknown, false},
	}
	for _, tt := range tests {
		got, ok := ParseRegion(tt.in)
		if got != tt.want || ok != tt.ok {
			t.Errorf("ParseRegion(%q) = (%q, %v); want (%q, %v)", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

func TestRecordPlottable(t *testing.T) {
	tests := []struct {
		r    Record
		want bool
	}{
		{Record{GDPPerCapita: 1000, AnimalProteinShare: 10}, true},
		{Record{GDPPerCapita: 0, AnimalProteinShare: 10}, false},
		{Record{GDPPerCapita: -5, AnimalProteinShare: 10}, false},
	}
	for _, tt := range tests {
		if got := tt.r.Plottable(); got != tt.want {
			t.Errorf("Plottable(%+v) = %v, want %v", tt.r, got, tt.want)
		}
	}
}
