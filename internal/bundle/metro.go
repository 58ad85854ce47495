package bundle

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/bostonmetro/crimedata/internal/model"
)

// metroBundle composes the combined three-city bundle. The per-city loads
// are independent and memoized, so fanning them out is safe; composition
// itself introduces no drops or duplicates.
func (s *Service) metroBundle(ctx context.Context) (*model.Bundle, error) {
	var cambridge, boston, somerville *model.Bundle

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		b, err := s.Get(ctx, model.CityCambridge)
		cambridge = b
		return err
	})
	g.Go(func() error {
		b, err := s.Get(ctx, model.CityBoston)
		boston = b
		return err
	})
	g.Go(func() error {
		b, err := s.Get(ctx, model.CitySomerville)
		somerville = b
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	// Crime: city-major order, per-record order preserved within each city.
	crime := make([]model.CrimeRecord, 0, len(cambridge.Crime)+len(boston.Crime)+len(somerville.Crime))
	crime = append(crime, cambridge.Crime...)
	crime = append(crime, boston.Crime...)
	crime = append(crime, somerville.Crime...)

	// Geo: union with city tags. Regions are copied so the memoized per-city
	// slices stay untouched.
	geo := make([]model.Region, 0, len(cambridge.Geo)+len(boston.Geo)+len(somerville.Geo))
	geo = appendTagged(geo, cambridge.Geo, model.CityCambridge)
	geo = appendTagged(geo, boston.Geo, model.CityBoston)
	geo = appendTagged(geo, somerville.Geo, model.CitySomerville)

	// Population: merged last-write-wins in city order. The three cities'
	// canonical neighborhood names are disjoint in the shipped reference
	// data, so no key is expected to collide.
	pop := make(model.PopulationTable, len(cambridge.Population)+len(boston.Population)+len(somerville.Population))
	for _, table := range []model.PopulationTable{cambridge.Population, boston.Population, somerville.Population} {
		for name, value := range table {
			pop[name] = value
		}
	}

	return &model.Bundle{
		Crime:          crime,
		Geo:            geo,
		Population:     pop,
		Zoom:           metroZoom,
		PopulationYear: metroPopYear,
	}, nil
}

func appendTagged(dst, src []model.Region, city string) []model.Region {
	for _, region := range src {
		region.City = city
		dst = append(dst, region)
	}
	return dst
}
