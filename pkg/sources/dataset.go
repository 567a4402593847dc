// Package sources loads the GDP / animal-protein dataset into typed records.
package sources

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/sudorandom/protein-scenes/pkg/utils"
)

var (
	ErrMissingColumn = errors.New("required column missing")
	ErrOutOfRange    = errors.New("value out of range")
)

// ParseError reports a non-empty numeric cell that could not be parsed.
type ParseError struct {
	Line   int
	Column string
	Value  string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d: column %q: cannot parse %q: %v", e.Line, e.Column, e.Value, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Record is one dataset row. AnimalProteinShare is a percentage in [0,100].
type Record struct {
	Entity             string
	GDPPerCapita       float64
	AnimalProteinShare float64
	Region             Region
}

// Plottable reports whether the record can be placed on a log GDP axis.
func (r Record) Plottable() bool {
	return r.GDPPerCapita > 0 && !math.IsInf(r.GDPPerCapita, 0) &&
		!math.IsNaN(r.AnimalProteinShare) && !math.IsInf(r.AnimalProteinShare, 0)
}

// Columns names the CSV header cells to read. Region is optional.
type Columns struct {
	Entity string `yaml:"entity"`
	GDP    string `yaml:"gdp"`
	Share  string `yaml:"share"`
	Region string `yaml:"region"`
}

func DefaultColumns() Columns {
	return Columns{
		Entity: ColumnEntity,
		GDP:    ColumnGDP,
		Share:  ColumnShare,
		Region: ColumnRegion,
	}
}

// Dataset is the full, immutable set of loaded records.
type Dataset struct {
	Records []Record

	// Skipped counts rows dropped for an empty entity, GDP or share cell.
	Skipped int
	// Duplicates counts rows dropped because their entity was already seen.
	Duplicates int
}

func (d *Dataset) Len() int { return len(d.Records) }

// Plottable returns the records with a positive, finite GDP, in dataset order.
func (d *Dataset) Plottable() []Record {
	out := make([]Record, 0, len(d.Records))
	for _, r := range d.Records {
		if r.Plottable() {
			out = append(out, r)
		}
	}
	return out
}

// Load opens src (a path or http(s) URL) and parses it with cols.
func Load(ctx context.Context, src string, cols Columns) (*Dataset, error) {
	return LoadCached(ctx, src, cols, "")
}

// LoadCached is Load with remote datasets kept in cacheDir between runs.
func LoadCached(ctx context.Context, src string, cols Columns, cacheDir string) (*Dataset, error) {
	log.Info().Str("src", src).Msg("Dataset loading started...")
	r, err := utils.GetCachedReader(ctx, src, cacheDir)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", src, err)
	}
	defer func() {
		if err := r.Close(); err != nil {
			log.Warn().Err(err).Msg("Error closing dataset")
		}
	}()

	ds, err := Parse(r, cols)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", src, err)
	}
	log.Info().
		Int("records", ds.Len()).
		Int("skipped", ds.Skipped).
		Int("duplicates", ds.Duplicates).
		Msg("Dataset loaded")
	return ds, nil
}

// Parse reads CSV from r. A missing required column fails with ErrMissingColumn. A malformed
// number, a non-finite GDP or a share outside [0,100] percent fails with *ParseError.
// Rows with empty numeric cells are skipped.
func Parse(r io.Reader, cols Columns) (*Dataset, error) {
	cr := csv.NewReader(r)
	header, err := cr.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("empty dataset: %w: %q", ErrMissingColumn, cols.Entity)
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	idx := make(map[string]int, len(header))
	for i, h := range header {
		if i == 0 {
			h = strings.TrimPrefix(h, "\ufeff")
		}
		idx[strings.TrimSpace(h)] = i
	}
	col := func(name string) (int, error) {
		i, ok := idx[name]
		if !ok {
			return 0, fmt.Errorf("%w: %q", ErrMissingColumn, name)
		}
		return i, nil
	}
	entityIdx, err := col(cols.Entity)
	if err != nil {
		return nil, err
	}
	gdpIdx, err := col(cols.GDP)
	if err != nil {
		return nil, err
	}
	shareIdx, err := col(cols.Share)
	if err != nil {
		return nil, err
	}
	regionIdx := -1
	if cols.Region != "" {
		if i, ok := idx[cols.Region]; ok {
			regionIdx = i
		} else {
			log.Warn().Str("column", cols.Region).Msg("Region column not found, deriving regions from entity names")
		}
	}

	ds := &Dataset{}
	seen := make(map[string]bool)
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row: %w", err)
		}
		line, _ := cr.FieldPos(0)

		entity := strings.TrimSpace(rec[entityIdx])
		gdpStr := strings.TrimSpace(rec[gdpIdx])
		shareStr := strings.TrimSpace(rec[shareIdx])
		if entity == "" || gdpStr == "" || shareStr == "" {
			ds.Skipped++
			continue
		}

		gdp, err := strconv.ParseFloat(gdpStr, 64)
		if err != nil {
			return nil, &ParseError{Line: line, Column: cols.GDP, Value: gdpStr, Err: err}
		}
		if math.IsNaN(gdp) || math.IsInf(gdp, 0) {
			return nil, &ParseError{Line: line, Column: cols.GDP, Value: gdpStr, Err: ErrOutOfRange}
		}
		share, err := strconv.ParseFloat(shareStr, 64)
		if err != nil {
			return nil, &ParseError{Line: line, Column: cols.Share, Value: shareStr, Err: err}
		}
		share *= PercentScale
		if !(share >= 0 && share <= 100) {
			return nil, &ParseError{Line: line, Column: cols.Share, Value: shareStr, Err: ErrOutOfRange}
		}

		if seen[entity] {
			ds.Duplicates++
			continue
		}
		seen[entity] = true

		region := RegionUnknown
		if regionIdx >= 0 {
			region, _ = ParseRegion(rec[regionIdx])
		}
		if region == RegionUnknown {
			region = RegionForEntity(entity)
		}

		ds.Records = append(ds.Records, Record{
			Entity:             entity,
			GDPPerCapita:       gdp,
			AnimalProteinShare: share,
			Region:             region,
		})
	}
	if ds.Duplicates > 0 {
		log.Warn().Int("count", ds.Duplicates).Msg("Dropped rows with duplicate entities")
	}
	return ds, nil
}
