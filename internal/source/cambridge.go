package source

import (
	"io"

	"github.com/rotisserie/eris"

	"github.com/bostonmetro/crimedata/internal/fetcher"
	"github.com/bostonmetro/crimedata/internal/model"
	"github.com/bostonmetro/crimedata/internal/refdata"
)

// Cambridge crime table columns.
const (
	camColDateTime     = "Crime Date Time"
	camColCrime        = "Crime"
	camColNeighborhood = "Neighborhood"
)

// LoadCambridge normalizes the Cambridge crime table. Dates come from the
// calendar portion of the combined date-time column; crime labels are used
// as published.
func LoadCambridge(r io.Reader, tables refdata.CityTables) ([]model.CrimeRecord, error) {
	table, err := fetcher.ReadCSV(r, fetcher.CSVOptions{TrimSpace: true})
	if err != nil {
		return nil, eris.Wrap(err, "source: read Cambridge crime table")
	}

	records := make([]model.CrimeRecord, 0, len(table.Rows))
	var skipped int
	for _, row := range table.Rows {
		crime := table.Cell(row, camColCrime)
		if crime == "" {
			skipped++
			continue
		}
		records = append(records, model.CrimeRecord{
			Date:         parseDateToken(table.Cell(row, camColDateTime)),
			Crime:        crime,
			MacroCrime:   macroFor(tables.MacroCrime, crime),
			Neighborhood: optional(table.Cell(row, camColNeighborhood)),
		})
	}
	logSkippedRows(model.CityCambridge, skipped)

	return records, nil
}
