// Package population produces per-neighborhood population tables. Each city
// uses a different strategy: Cambridge ships a static census table, Boston
// publishes a spreadsheet read by row range, and Somerville has no official
// per-neighborhood figures at all, so its table is apportioned by area.
package population

import (
	"strconv"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/bostonmetro/crimedata/internal/fetcher"
	"github.com/bostonmetro/crimedata/internal/geoio"
	"github.com/bostonmetro/crimedata/internal/model"
)

// Static returns a precomputed table unchanged. The source of truth is
// external reference data.
func Static(table map[string]float64) model.PopulationTable {
	return model.PopulationTable(table)
}

// RangedOptions configures a spreadsheet ranged lookup.
type RangedOptions struct {
	HeaderOffset int    // rows above the header row
	StartLabel   string // first neighborhood of the range, inclusive
	EndLabel     string // last neighborhood of the range, inclusive
	ValueColumn  string // e.g. "Total Population"
}

// Ranged reads a spreadsheet with a fixed header offset and extracts the
// contiguous sub-range of rows between two boundary neighborhood labels,
// keyed by the whitespace-trimmed first column. The extraction depends on
// the sheet's row order; both boundary labels must be present.
func Ranged(path string, opts RangedOptions) (model.PopulationTable, error) {
	table, err := fetcher.ReadXLSX(path, fetcher.XLSXOptions{SkipRows: opts.HeaderOffset})
	if err != nil {
		return nil, eris.Wrap(err, "population: read ranged spreadsheet")
	}

	valueIdx := table.Col(opts.ValueColumn)
	if valueIdx < 0 {
		return nil, eris.Errorf("population: column %q not found", opts.ValueColumn)
	}

	out := model.PopulationTable{}
	inRange := false
	for _, row := range table.Rows {
		if len(row) == 0 {
			continue
		}
		label := strings.TrimSpace(row[0])
		if label == opts.StartLabel {
			inRange = true
		}
		if !inRange {
			continue
		}

		value, err := parseNumber(rowCell(row, valueIdx))
		if err != nil {
			return nil, eris.Wrapf(err, "population: bad %q value for %s", opts.ValueColumn, label)
		}
		out[label] = value

		if label == opts.EndLabel {
			return out, nil
		}
	}

	if !inRange {
		return nil, eris.Errorf("population: start label %q not found", opts.StartLabel)
	}
	return nil, eris.Errorf("population: end label %q not found", opts.EndLabel)
}

// AreaWeighted apportions a scalar total population across regions by their
// share of total geometric area, computed in EPSG:26986 meters. The sum of
// the outputs equals totalPopulation whenever total area is non-zero. When
// total area is zero every region receives the full total — a documented
// fallback that inflates the aggregate; callers needing the sum invariant
// must special-case it.
func AreaWeighted(regions []model.Region, totalPopulation float64) model.PopulationTable {
	areas := make(map[string]float64, len(regions))
	for _, region := range regions {
		if region.Name == "" {
			continue
		}
		areas[region.Name] += geoio.Area(geoio.ProjectToStatePlane(region.Geometry))
	}
	return Apportion(areas, totalPopulation)
}

// Apportion splits totalPopulation across named areas proportionally. Zero
// total area triggers the full-total-per-region fallback described above.
func Apportion(areas map[string]float64, totalPopulation float64) model.PopulationTable {
	var totalArea float64
	for _, area := range areas {
		totalArea += area
	}

	out := make(model.PopulationTable, len(areas))
	if totalArea == 0 {
		zap.L().Warn("population: zero total area, assigning full total to every region",
			zap.Int("regions", len(areas)),
			zap.Float64("total_population", totalPopulation),
		)
		for name := range areas {
			out[name] = totalPopulation
		}
		return out
	}

	for name, area := range areas {
		out[name] = area / totalArea * totalPopulation
	}
	return out
}

func rowCell(row []string, idx int) string {
	if idx >= len(row) {
		return ""
	}
	return row[idx]
}

func parseNumber(s string) (float64, error) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	return strconv.ParseFloat(s, 64)
}
