package source

import (
	"io"

	"github.com/rotisserie/eris"

	"github.com/bostonmetro/crimedata/internal/fetcher"
	"github.com/bostonmetro/crimedata/internal/model"
	"github.com/bostonmetro/crimedata/internal/refdata"
)

// Somerville crime table columns.
const (
	somColDayMonth = "Day and Month Reported"
	somColYear     = "Year Reported"
	somColOffense  = "Offense Type"
	somColBlock    = "Block Code"
)

// BlockRecord pairs a normalized crime record with the raw census-block
// identifier it was reported against. The neighborhood field stays nil
// until the spatial join resolves it.
type BlockRecord struct {
	Record    model.CrimeRecord
	BlockCode string
}

// LoadSomerville normalizes the Somerville crime table. Dates are
// reconstructed from separate day/month and year columns; records carry only
// a census-block code, resolved to a neighborhood downstream.
func LoadSomerville(r io.Reader, tables refdata.CityTables) ([]BlockRecord, error) {
	table, err := fetcher.ReadCSV(r, fetcher.CSVOptions{TrimSpace: true})
	if err != nil {
		return nil, eris.Wrap(err, "source: read Somerville crime table")
	}

	records := make([]BlockRecord, 0, len(table.Rows))
	var skipped int
	for _, row := range table.Rows {
		crime := table.Cell(row, somColOffense)
		if crime == "" {
			skipped++
			continue
		}
		crime = titleCase(crime)

		records = append(records, BlockRecord{
			Record: model.CrimeRecord{
				Date:       parseDayMonthYear(table.Cell(row, somColDayMonth), table.Cell(row, somColYear)),
				Crime:      crime,
				MacroCrime: macroFor(tables.MacroCrime, crime),
			},
			BlockCode: table.Cell(row, somColBlock),
		})
	}
	logSkippedRows(model.CitySomerville, skipped)

	return records, nil
}
