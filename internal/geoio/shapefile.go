// Package geoio reads boundary shapefiles into go-geom geometries and
// provides the coordinate-reference plumbing the loaders share: .prj
// classification, the Massachusetts state-plane projection used for area
// computation, and a planar intersects predicate.
package geoio

import (
	"strings"

	"github.com/jonas-p/go-shp"
	"github.com/rotisserie/eris"
	"github.com/twpayne/go-geom"
	"go.uber.org/zap"
)

// Feature is one named shapefile record: its requested attribute values and
// its geometry as a MultiPolygon.
type Feature struct {
	Attrs    map[string]string
	Geometry *geom.MultiPolygon
}

// Attr returns the named attribute value, or "".
func (f Feature) Attr(name string) string {
	return f.Attrs[name]
}

// ReadShapefile reads polygon records from a shapefile, keeping the listed
// attribute fields. Records with no usable polygon geometry are skipped;
// anything else is fatal.
func ReadShapefile(path string, fields ...string) ([]Feature, error) {
	reader, err := shp.Open(path)
	if err != nil {
		return nil, eris.Wrapf(err, "geoio: open shapefile %s", path)
	}
	defer func() { _ = reader.Close() }()

	// Build field name → index map.
	fieldIdx := make(map[string]int)
	for i, f := range reader.Fields() {
		name := strings.TrimRight(f.String(), "\x00")
		fieldIdx[strings.ToLower(name)] = i
	}

	var features []Feature
	var skipped int

	for reader.Next() {
		_, shape := reader.Shape()

		poly, ok := shape.(*shp.Polygon)
		if !ok {
			skipped++
			continue
		}
		mp := polygonToMultiPolygon(poly)
		if mp == nil {
			skipped++
			continue
		}

		attrs := make(map[string]string, len(fields))
		for _, field := range fields {
			idx, ok := fieldIdx[strings.ToLower(field)]
			if !ok {
				continue
			}
			val := strings.TrimRight(reader.Attribute(idx), "\x00")
			attrs[field] = strings.TrimSpace(val)
		}

		features = append(features, Feature{Attrs: attrs, Geometry: mp})
	}

	if skipped > 0 {
		zap.L().Debug("geoio: skipped shapefile records",
			zap.String("path", path),
			zap.Int("skipped", skipped),
		)
	}

	return features, nil
}

// polygonToMultiPolygon converts a shapefile Polygon to a geom.MultiPolygon.
// Shapefile part rings are not grouped into outer/hole structure here; each
// part becomes a single-ring polygon, which is sufficient for containment
// and area work on municipal boundaries.
func polygonToMultiPolygon(p *shp.Polygon) *geom.MultiPolygon {
	if p == nil || p.NumParts == 0 || len(p.Points) == 0 {
		return nil
	}

	mp := geom.NewMultiPolygon(geom.XY).SetSRID(4326)

	for i := int32(0); i < p.NumParts; i++ {
		start := p.Parts[i]
		var end int32
		if i+1 < p.NumParts {
			end = p.Parts[i+1]
		} else {
			end = int32(len(p.Points))
		}

		flat := make([]float64, 0, (end-start)*2)
		for j := start; j < end; j++ {
			flat = append(flat, p.Points[j].X, p.Points[j].Y)
		}

		ring := geom.NewLinearRingFlat(geom.XY, flat)
		poly := geom.NewPolygon(geom.XY)
		if err := poly.Push(ring); err != nil {
			zap.L().Debug("geoio: skipping malformed polygon ring", zap.Int32("part", i), zap.Error(err))
			continue
		}
		if err := mp.Push(poly); err != nil {
			zap.L().Debug("geoio: skipping malformed polygon part", zap.Int32("part", i), zap.Error(err))
			continue
		}
	}

	if mp.NumPolygons() == 0 {
		return nil
	}
	return mp
}
