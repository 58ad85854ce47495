// Package bundle composes the per-city and combined-metro data bundles from
// the loaders, resolvers, and population strategies. Every loader result is
// memoized, so repeated bundle requests reuse the same underlying data
// without re-reading any source.
package bundle

import (
	"context"

	"github.com/rotisserie/eris"
	"github.com/twpayne/go-geom"

	"github.com/bostonmetro/crimedata/internal/blockjoin"
	"github.com/bostonmetro/crimedata/internal/memo"
	"github.com/bostonmetro/crimedata/internal/model"
	"github.com/bostonmetro/crimedata/internal/population"
	"github.com/bostonmetro/crimedata/internal/source"
)

// Display hints and provenance labels per municipality.
const (
	cambridgeZoom  = 13.0
	bostonZoom     = 12.0
	somervilleZoom = 13.0
	metroZoom      = 11.5

	cambridgePopYear  = "2020"
	bostonPopYear     = "2019"
	somervillePopYear = "2022 (area-weighted)"
	metroPopYear      = "2020, 2019, 2022"
)

// Loaders supplies the raw per-city data producers. Each function is called
// at most once per process; tests substitute fakes to probe that.
type Loaders struct {
	CambridgeCrime func() ([]model.CrimeRecord, error)
	CambridgeGeo   func() ([]model.Region, error)
	CambridgePop   func() (model.PopulationTable, error)

	BostonCrime func() ([]model.CrimeRecord, error)
	BostonGeo   func() ([]model.Region, error)
	BostonPop   func() (model.PopulationTable, error)

	SomervilleCrime  func() ([]source.BlockRecord, error)
	SomervilleGeo    func() ([]model.Region, error)
	SomervilleBlocks func() (map[string]*geom.MultiPolygon, error)

	// SomervilleTotalPop is apportioned across neighborhoods by area.
	SomervilleTotalPop float64
}

// Service answers bundle requests. All loads are lazy and memoized for the
// process lifetime; produced records, geometries, and tables are treated as
// read-only by every consumer.
type Service struct {
	camCrime *memo.Memo[[]model.CrimeRecord]
	camGeo   *memo.Memo[[]model.Region]
	camPop   *memo.Memo[model.PopulationTable]

	bosCrime *memo.Memo[[]model.CrimeRecord]
	bosGeo   *memo.Memo[[]model.Region]
	bosPop   *memo.Memo[model.PopulationTable]

	somCrime *memo.Memo[[]model.CrimeRecord]
	somGeo   *memo.Memo[[]model.Region]
	somPop   *memo.Memo[model.PopulationTable]
}

// NewService wires the loaders into a memoized bundle service.
func NewService(l Loaders) *Service {
	s := &Service{
		camCrime: memo.New(l.CambridgeCrime),
		camGeo:   memo.New(l.CambridgeGeo),
		camPop:   memo.New(l.CambridgePop),
		bosCrime: memo.New(l.BostonCrime),
		bosGeo:   memo.New(l.BostonGeo),
		bosPop:   memo.New(l.BostonPop),
		somGeo:   memo.New(l.SomervilleGeo),
	}

	// Somerville's crime records need the memoized neighborhood geometry for
	// the spatial join, and its population table is derived from that same
	// geometry by area apportionment.
	s.somCrime = memo.New(func() ([]model.CrimeRecord, error) {
		records, err := l.SomervilleCrime()
		if err != nil {
			return nil, err
		}
		blocks, err := l.SomervilleBlocks()
		if err != nil {
			return nil, err
		}
		regions, err := s.somGeo.Get()
		if err != nil {
			return nil, err
		}
		return blockjoin.Resolve(records, blocks, regions), nil
	})
	s.somPop = memo.New(func() (model.PopulationTable, error) {
		regions, err := s.somGeo.Get()
		if err != nil {
			return nil, err
		}
		return population.AreaWeighted(regions, l.SomervilleTotalPop), nil
	})

	return s
}

// Get returns the bundle for one of the three municipalities; any other
// value requests the combined metro bundle.
func (s *Service) Get(ctx context.Context, municipality string) (*model.Bundle, error) {
	switch municipality {
	case model.CityCambridge:
		return s.cityBundle(s.camCrime, s.camGeo, s.camPop, cambridgeZoom, cambridgePopYear)
	case model.CityBoston:
		return s.cityBundle(s.bosCrime, s.bosGeo, s.bosPop, bostonZoom, bostonPopYear)
	case model.CitySomerville:
		return s.cityBundle(s.somCrime, s.somGeo, s.somPop, somervilleZoom, somervillePopYear)
	default:
		return s.metroBundle(ctx)
	}
}

func (s *Service) cityBundle(
	crime *memo.Memo[[]model.CrimeRecord],
	geo *memo.Memo[[]model.Region],
	pop *memo.Memo[model.PopulationTable],
	zoom float64,
	popYear string,
) (*model.Bundle, error) {
	crimeData, err := crime.Get()
	if err != nil {
		return nil, eris.Wrap(err, "bundle: load crime")
	}
	geoData, err := geo.Get()
	if err != nil {
		return nil, eris.Wrap(err, "bundle: load geometry")
	}
	popData, err := pop.Get()
	if err != nil {
		return nil, eris.Wrap(err, "bundle: load population")
	}

	return &model.Bundle{
		Crime:          crimeData,
		Geo:            geoData,
		Population:     popData,
		Zoom:           zoom,
		PopulationYear: popYear,
	}, nil
}
