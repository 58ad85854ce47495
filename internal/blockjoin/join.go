// Package blockjoin recovers neighborhood labels for crime records that are
// only identifiable by census-block geometry. Somerville's crime table
// carries a block code instead of a neighborhood; the join looks up the
// block's polygon and finds the neighborhood polygon it intersects.
package blockjoin

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/twpayne/go-geom"
	"go.uber.org/zap"

	"github.com/bostonmetro/crimedata/internal/geoio"
	"github.com/bostonmetro/crimedata/internal/model"
	"github.com/bostonmetro/crimedata/internal/source"
)

// Census-block shapefile fields.
const (
	geoidField = "GEOID20"
	townField  = "TOWN"
)

// NormalizeBlockCode trims a crime record's block code: every trailing '.'
// and '0' is stripped. The rule is lexical, so "1500.0" becomes "15", not
// "1500". The trim applies to the record side only; the block index keeps
// raw GEOID20 keys, so a code whose identifier ends in a genuine zero digit
// never matches and the record keeps a nil neighborhood.
func NormalizeBlockCode(code string) string {
	return strings.TrimRight(code, ".0")
}

// LoadBlocks reads a census-block shapefile, keeps blocks for the given town,
// reconciles coordinates to EPSG:4326, and indexes geometry by raw GEOID20.
func LoadBlocks(shpPath, town string) (map[string]*geom.MultiPolygon, error) {
	crs, err := geoio.DetectCRS(shpPath)
	if err != nil {
		return nil, eris.Wrapf(err, "blockjoin: classify CRS for %s", shpPath)
	}

	features, err := geoio.ReadShapefile(shpPath, geoidField, townField)
	if err != nil {
		return nil, eris.Wrapf(err, "blockjoin: read census blocks %s", shpPath)
	}
	features = geoio.ReconcileToGeographic(features, crs)

	blocks := make(map[string]*geom.MultiPolygon)
	for _, f := range features {
		if f.Attr(townField) != town {
			continue
		}
		blocks[f.Attr(geoidField)] = f.Geometry
	}

	zap.L().Debug("blockjoin: blocks indexed",
		zap.String("town", town),
		zap.Int("blocks", len(blocks)),
	)
	return blocks, nil
}

// Resolve attaches a neighborhood to each block record by geometric
// intersection. A record whose block code has no geometry, or whose block
// intersects no region, keeps a nil neighborhood — records are never
// dropped. When a block straddles more than one region, the first
// intersecting region in load order wins, so every input record yields
// exactly one output record.
func Resolve(records []source.BlockRecord, blocks map[string]*geom.MultiPolygon, regions []model.Region) []model.CrimeRecord {
	out := make([]model.CrimeRecord, 0, len(records))
	var unmatched int

	for _, br := range records {
		rec := br.Record

		block, ok := blocks[NormalizeBlockCode(br.BlockCode)]
		if !ok {
			unmatched++
			out = append(out, rec)
			continue
		}

		matched := false
		for _, region := range regions {
			if geoio.Intersects(block, region.Geometry) {
				name := region.Name
				rec.Neighborhood = &name
				matched = true
				break
			}
		}
		if !matched {
			unmatched++
		}
		out = append(out, rec)
	}

	if unmatched > 0 {
		zap.L().Debug("blockjoin: records left without a neighborhood",
			zap.Int("unmatched", unmatched),
			zap.Int("total", len(records)),
		)
	}
	return out
}
