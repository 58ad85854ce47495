// Package boundary loads each city's neighborhood geometry: shapefile in,
// coordinate reference reconciled to EPSG:4326, region names canonicalized
// through the city's name map.
package boundary

import (
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/bostonmetro/crimedata/internal/geoio"
	"github.com/bostonmetro/crimedata/internal/model"
)

// Shapefile name fields per city.
const (
	CambridgeNameField  = "NAME"
	BostonNameField     = "blockgr202"
	SomervilleNameField = "NBHD"
)

// LoadRegions reads a boundary shapefile into Regions. nameField selects the
// attribute carrying the raw region name; names maps raw names to canonical
// ones, falling back to the raw name when unmapped (pass nil for identity).
// An unreadable source is fatal; there is no partial geometry.
func LoadRegions(shpPath, nameField string, names map[string]string) ([]model.Region, error) {
	crs, err := geoio.DetectCRS(shpPath)
	if err != nil {
		return nil, eris.Wrapf(err, "boundary: classify CRS for %s", shpPath)
	}

	features, err := geoio.ReadShapefile(shpPath, nameField)
	if err != nil {
		return nil, eris.Wrapf(err, "boundary: read %s", shpPath)
	}
	features = geoio.ReconcileToGeographic(features, crs)

	regions := make([]model.Region, 0, len(features))
	for _, f := range features {
		raw := f.Attr(nameField)
		regions = append(regions, model.Region{
			RawName:  raw,
			Name:     Canonicalize(raw, names),
			Geometry: f.Geometry,
		})
	}

	zap.L().Debug("boundary: regions loaded",
		zap.String("path", shpPath),
		zap.Int("regions", len(regions)),
	)
	return regions, nil
}

// Canonicalize maps a raw region name through the city's name map, keeping
// the raw name when no mapping exists.
func Canonicalize(raw string, names map[string]string) string {
	if mapped, ok := names[raw]; ok {
		return mapped
	}
	return raw
}
