package bundle

import (
	"io"
	"os"

	"github.com/rotisserie/eris"
	"github.com/twpayne/go-geom"

	"github.com/bostonmetro/crimedata/internal/blockjoin"
	"github.com/bostonmetro/crimedata/internal/boundary"
	"github.com/bostonmetro/crimedata/internal/config"
	"github.com/bostonmetro/crimedata/internal/model"
	"github.com/bostonmetro/crimedata/internal/population"
	"github.com/bostonmetro/crimedata/internal/refdata"
	"github.com/bostonmetro/crimedata/internal/source"
)

// Boston population spreadsheet layout: two rows above the header, first
// column is the neighborhood index, and the usable rows run from Allston to
// West Roxbury inclusive.
const (
	bostonPopHeaderOffset = 2
	bostonPopStartLabel   = "Allston"
	bostonPopEndLabel     = "West Roxbury"
	bostonPopValueColumn  = "Total Population"
)

// FromConfig builds the production loaders over the configured source files
// and reference tables.
func FromConfig(cfg config.DataConfig, tables *refdata.Tables) Loaders {
	return Loaders{
		CambridgeCrime: func() ([]model.CrimeRecord, error) {
			return loadCrimeCSV(cfg.CambridgeCrimeCSV, tables.Cambridge, source.LoadCambridge)
		},
		CambridgeGeo: func() ([]model.Region, error) {
			return boundary.LoadRegions(cfg.CambridgeShapefile, boundary.CambridgeNameField, tables.Cambridge.NeighborhoodNames)
		},
		CambridgePop: func() (model.PopulationTable, error) {
			return population.Static(tables.Cambridge.Population), nil
		},

		BostonCrime: func() ([]model.CrimeRecord, error) {
			return loadCrimeCSV(cfg.BostonCrimeCSV, tables.Boston, source.LoadBoston)
		},
		BostonGeo: func() ([]model.Region, error) {
			return boundary.LoadRegions(cfg.BostonShapefile, boundary.BostonNameField, tables.Boston.NeighborhoodNames)
		},
		BostonPop: func() (model.PopulationTable, error) {
			return population.Ranged(cfg.BostonPopXLSX, population.RangedOptions{
				HeaderOffset: bostonPopHeaderOffset,
				StartLabel:   bostonPopStartLabel,
				EndLabel:     bostonPopEndLabel,
				ValueColumn:  bostonPopValueColumn,
			})
		},

		SomervilleCrime: func() ([]source.BlockRecord, error) {
			return loadCrimeCSV(cfg.SomervilleCrimeCSV, tables.Somerville, source.LoadSomerville)
		},
		SomervilleGeo: func() ([]model.Region, error) {
			return boundary.LoadRegions(cfg.SomervilleShapefile, boundary.SomervilleNameField, nil)
		},
		SomervilleBlocks: func() (map[string]*geom.MultiPolygon, error) {
			return blockjoin.LoadBlocks(cfg.CensusBlocks, "SOMERVILLE")
		},
		SomervilleTotalPop: cfg.SomervilleTotalPop,
	}
}

func loadCrimeCSV[T any](path string, tables refdata.CityTables, load func(r io.Reader, t refdata.CityTables) ([]T, error)) ([]T, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, eris.Wrapf(err, "bundle: open crime table %s", path)
	}
	defer func() { _ = f.Close() }()
	return load(f, tables)
}
