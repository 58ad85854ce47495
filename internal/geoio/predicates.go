package geoio

import (
	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/xy"
)

// Intersects reports whether two MultiPolygons share any point: a vertex of
// one lies inside the other, or an edge of one crosses an edge of the other.
// go-geom carries no overlay predicates, so the test is built from its
// point-in-ring primitive plus a segment crossing check. Holes are not
// modeled; the loaders emit single-ring polygons per shapefile part.
func Intersects(a, b *geom.MultiPolygon) bool {
	if a == nil || b == nil {
		return false
	}
	if anyVertexInside(a, b) || anyVertexInside(b, a) {
		return true
	}
	return anyEdgeCrossing(a, b)
}

func anyVertexInside(of, in *geom.MultiPolygon) bool {
	flat := of.FlatCoords()
	stride := of.Stride()
	for i := 0; i+1 < len(flat); i += stride {
		if pointInMultiPolygon(geom.Coord{flat[i], flat[i+1]}, in) {
			return true
		}
	}
	return false
}

func pointInMultiPolygon(p geom.Coord, mp *geom.MultiPolygon) bool {
	for i := 0; i < mp.NumPolygons(); i++ {
		poly := mp.Polygon(i)
		if poly.NumLinearRings() == 0 {
			continue
		}
		if xy.IsPointInRing(poly.Layout(), p, poly.LinearRing(0).FlatCoords()) {
			return true
		}
	}
	return false
}

func anyEdgeCrossing(a, b *geom.MultiPolygon) bool {
	for _, ea := range ringEdges(a) {
		for _, eb := range ringEdges(b) {
			if segmentsCross(ea, eb) {
				return true
			}
		}
	}
	return false
}

type edge struct {
	x1, y1, x2, y2 float64
}

func ringEdges(mp *geom.MultiPolygon) []edge {
	var edges []edge
	for i := 0; i < mp.NumPolygons(); i++ {
		poly := mp.Polygon(i)
		for j := 0; j < poly.NumLinearRings(); j++ {
			flat := poly.LinearRing(j).FlatCoords()
			stride := poly.Layout().Stride()
			for k := 0; k+stride+1 < len(flat); k += stride {
				edges = append(edges, edge{flat[k], flat[k+1], flat[k+stride], flat[k+stride+1]})
			}
		}
	}
	return edges
}

// segmentsCross reports whether two segments properly intersect or touch,
// by the standard orientation test.
func segmentsCross(a, b edge) bool {
	d1 := orient(b.x1, b.y1, b.x2, b.y2, a.x1, a.y1)
	d2 := orient(b.x1, b.y1, b.x2, b.y2, a.x2, a.y2)
	d3 := orient(a.x1, a.y1, a.x2, a.y2, b.x1, b.y1)
	d4 := orient(a.x1, a.y1, a.x2, a.y2, b.x2, b.y2)

	if ((d1 > 0 && d2 < 0) || (d1 < 0 && d2 > 0)) &&
		((d3 > 0 && d4 < 0) || (d3 < 0 && d4 > 0)) {
		return true
	}

	return (d1 == 0 && onSegment(b, a.x1, a.y1)) ||
		(d2 == 0 && onSegment(b, a.x2, a.y2)) ||
		(d3 == 0 && onSegment(a, b.x1, b.y1)) ||
		(d4 == 0 && onSegment(a, b.x2, b.y2))
}

func orient(px, py, qx, qy, rx, ry float64) float64 {
	return (qx-px)*(ry-py) - (qy-py)*(rx-px)
}

func onSegment(e edge, x, y float64) bool {
	return min(e.x1, e.x2) <= x && x <= max(e.x1, e.x2) &&
		min(e.y1, e.y2) <= y && y <= max(e.y1, e.y2)
}
