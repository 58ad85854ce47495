package source

import (
	"io"

	"github.com/rotisserie/eris"

	"github.com/bostonmetro/crimedata/internal/fetcher"
	"github.com/bostonmetro/crimedata/internal/model"
	"github.com/bostonmetro/crimedata/internal/refdata"
)

// Boston crime table columns.
const (
	bosColFromDate     = "From Date"
	bosColCrime        = "Crime"
	bosColNeighborhood = "Neighborhood"
)

// LoadBoston normalizes the Boston crime table. Crime labels are title-cased
// before macro lookup, and neighborhood names pass through the Boston name
// map with identity fallback.
func LoadBoston(r io.Reader, tables refdata.CityTables) ([]model.CrimeRecord, error) {
	table, err := fetcher.ReadCSV(r, fetcher.CSVOptions{TrimSpace: true})
	if err != nil {
		return nil, eris.Wrap(err, "source: read Boston crime table")
	}

	records := make([]model.CrimeRecord, 0, len(table.Rows))
	var skipped int
	for _, row := range table.Rows {
		crime := table.Cell(row, bosColCrime)
		if crime == "" {
			skipped++
			continue
		}
		crime = titleCase(crime)

		neighborhood := table.Cell(row, bosColNeighborhood)
		if mapped, ok := tables.NeighborhoodNames[neighborhood]; ok {
			neighborhood = mapped
		}

		records = append(records, model.CrimeRecord{
			Date:         parseDateToken(table.Cell(row, bosColFromDate)),
			Crime:        crime,
			MacroCrime:   macroFor(tables.MacroCrime, crime),
			Neighborhood: optional(neighborhood),
		})
	}
	logSkippedRows(model.CityBoston, skipped)

	return records, nil
}
