package geoio

import (
	"math"

	"github.com/twpayne/go-geom"
)

// EPSG:26986 — NAD83 / Massachusetts Mainland, Lambert conformal conic on
// the GRS80 ellipsoid, meters. Constants per the EPSG registry.
const (
	grs80A  = 6378137.0
	grs80E2 = 0.00669438002290

	maLat1  = 42.0 + 41.0/60.0 // upper standard parallel
	maLat2  = 41.0 + 43.0/60.0 // lower standard parallel
	maLat0  = 41.0             // latitude of origin
	maLon0  = -71.5            // central meridian
	maFalsE = 200000.0
	maFalsN = 750000.0
)

var maProj = newLambertConic()

type lambertConic struct {
	e    float64
	n    float64
	f    float64
	rho0 float64
}

func newLambertConic() lambertConic {
	e := math.Sqrt(grs80E2)

	phi1 := maLat1 * math.Pi / 180
	phi2 := maLat2 * math.Pi / 180
	phi0 := maLat0 * math.Pi / 180

	m1 := lccM(phi1, e)
	m2 := lccM(phi2, e)
	t0 := lccT(phi0, e)
	t1 := lccT(phi1, e)
	t2 := lccT(phi2, e)

	n := (math.Log(m1) - math.Log(m2)) / (math.Log(t1) - math.Log(t2))
	f := m1 / (n * math.Pow(t1, n))

	return lambertConic{
		e:    e,
		n:    n,
		f:    f,
		rho0: grs80A * f * math.Pow(t0, n),
	}
}

func lccM(phi, e float64) float64 {
	s := math.Sin(phi)
	return math.Cos(phi) / math.Sqrt(1-e*e*s*s)
}

func lccT(phi, e float64) float64 {
	s := math.Sin(phi)
	return math.Tan(math.Pi/4-phi/2) / math.Pow((1-e*s)/(1+e*s), e/2)
}

// ForwardStatePlane projects a geographic lon/lat (degrees, EPSG:4326) into
// EPSG:26986 easting/northing meters.
func ForwardStatePlane(lon, lat float64) (x, y float64) {
	p := maProj
	phi := lat * math.Pi / 180
	lam := lon * math.Pi / 180
	lam0 := maLon0 * math.Pi / 180

	rho := grs80A * p.f * math.Pow(lccT(phi, p.e), p.n)
	theta := p.n * (lam - lam0)

	x = maFalsE + rho*math.Sin(theta)
	y = maFalsN + p.rho0 - rho*math.Cos(theta)
	return x, y
}

// InverseStatePlane converts EPSG:26986 easting/northing meters back to
// geographic lon/lat degrees.
func InverseStatePlane(x, y float64) (lon, lat float64) {
	p := maProj
	dx := x - maFalsE
	dy := p.rho0 - (y - maFalsN)

	rho := math.Hypot(dx, dy)
	if p.n < 0 {
		rho = -rho
	}
	theta := math.Atan2(dx, dy)

	t := math.Pow(rho/(grs80A*p.f), 1/p.n)

	// Iterate the conformal latitude inversion; converges in a handful of
	// rounds at double precision.
	phi := math.Pi/2 - 2*math.Atan(t)
	for i := 0; i < 15; i++ {
		s := math.Sin(phi)
		next := math.Pi/2 - 2*math.Atan(t*math.Pow((1-p.e*s)/(1+p.e*s), p.e/2))
		if math.Abs(next-phi) < 1e-12 {
			phi = next
			break
		}
		phi = next
	}

	lam0 := maLon0 * math.Pi / 180
	lon = (theta/p.n + lam0) * 180 / math.Pi
	lat = phi * 180 / math.Pi
	return lon, lat
}

// ProjectToStatePlane returns a copy of mp with every coordinate projected
// into EPSG:26986. Used transiently for area computation; the input is not
// modified.
func ProjectToStatePlane(mp *geom.MultiPolygon) *geom.MultiPolygon {
	return transformMultiPolygon(mp, ForwardStatePlane)
}

// UnprojectFromStatePlane returns a copy of mp with every EPSG:26986
// coordinate converted to geographic lon/lat.
func UnprojectFromStatePlane(mp *geom.MultiPolygon) *geom.MultiPolygon {
	return transformMultiPolygon(mp, InverseStatePlane)
}

func transformMultiPolygon(mp *geom.MultiPolygon, tf func(x, y float64) (float64, float64)) *geom.MultiPolygon {
	if mp == nil {
		return nil
	}
	out := mp.Clone()
	flat := out.FlatCoords()
	stride := out.Stride()
	for i := 0; i+1 < len(flat); i += stride {
		flat[i], flat[i+1] = tf(flat[i], flat[i+1])
	}
	return out
}

// Area returns the planar area of mp in the square units of its coordinate
// system. Shapefile ring orientation is not trusted, so each polygon
// contributes its absolute area. Callers wanting meters must project first.
func Area(mp *geom.MultiPolygon) float64 {
	if mp == nil {
		return 0
	}
	var total float64
	for i := 0; i < mp.NumPolygons(); i++ {
		total += math.Abs(mp.Polygon(i).Area())
	}
	return total
}
