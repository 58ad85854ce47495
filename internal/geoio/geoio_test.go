package geoio

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/jonas-p/go-shp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/twpayne/go-geom"
)

func TestPolygonToMultiPolygon(t *testing.T) {
	poly := &shp.Polygon{
		NumParts: 1,
		Parts:    []int32{0},
		Points: []shp.Point{
			{X: -71.10, Y: 42.38},
			{X: -71.10, Y: 42.40},
			{X: -71.08, Y: 42.40},
			{X: -71.08, Y: 42.38},
			{X: -71.10, Y: 42.38}, // closed ring
		},
	}

	mp := polygonToMultiPolygon(poly)
	require.NotNil(t, mp)
	assert.Equal(t, 1, mp.NumPolygons())
	assert.Equal(t, 4326, mp.SRID())
}

func TestPolygonToMultiPolygon_MultiPart(t *testing.T) {
	poly := &shp.Polygon{
		NumParts: 2,
		Parts:    []int32{0, 5},
		Points: []shp.Point{
			{X: 0, Y: 0}, {X: 0, Y: 1}, {X: 1, Y: 1}, {X: 1, Y: 0}, {X: 0, Y: 0},
			{X: 5, Y: 5}, {X: 5, Y: 6}, {X: 6, Y: 6}, {X: 6, Y: 5}, {X: 5, Y: 5},
		},
	}

	mp := polygonToMultiPolygon(poly)
	require.NotNil(t, mp)
	assert.Equal(t, 2, mp.NumPolygons())
}

func TestPolygonToMultiPolygon_Empty(t *testing.T) {
	assert.Nil(t, polygonToMultiPolygon(nil))
	assert.Nil(t, polygonToMultiPolygon(&shp.Polygon{}))
}

func TestStatePlaneRoundTrip(t *testing.T) {
	tests := []struct {
		name     string
		lon, lat float64
	}{
		{name: "downtown boston", lon: -71.0589, lat: 42.3601},
		{name: "cambridge", lon: -71.1097, lat: 42.3736},
		{name: "somerville", lon: -71.0995, lat: 42.3876},
		{name: "west of central meridian", lon: -72.6, lat: 42.1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x, y := ForwardStatePlane(tt.lon, tt.lat)
			lon, lat := InverseStatePlane(x, y)
			assert.InDelta(t, tt.lon, lon, 1e-9)
			assert.InDelta(t, tt.lat, lat, 1e-9)
		})
	}
}

func TestForwardStatePlane_Orientation(t *testing.T) {
	// East of the -71.5 central meridian and north of the 41.0 origin, so
	// coordinates exceed the false easting/northing.
	x, y := ForwardStatePlane(-71.0589, 42.3601)
	assert.Greater(t, x, 200000.0)
	assert.Greater(t, y, 750000.0)

	// West of the central meridian lands below the false easting.
	x, _ = ForwardStatePlane(-72.6, 42.1)
	assert.Less(t, x, 200000.0)
}

func TestArea_ProjectedSquare(t *testing.T) {
	// A ~0.01 degree square near Boston is roughly 820m x 1110m; the
	// projected area must land in that ballpark.
	sq := square(-71.11, 42.38, 0.01)
	area := Area(ProjectToStatePlane(sq))
	assert.InDelta(t, 910000, area, 100000)
}

func TestArea_Nil(t *testing.T) {
	assert.Zero(t, Area(nil))
}

func TestIntersects(t *testing.T) {
	tests := []struct {
		name     string
		a, b     *geom.MultiPolygon
		expected bool
	}{
		{name: "overlapping", a: square(0, 0, 2), b: square(1, 1, 2), expected: true},
		{name: "contained", a: square(0, 0, 4), b: square(1, 1, 1), expected: true},
		{name: "disjoint", a: square(0, 0, 1), b: square(5, 5, 1), expected: false},
		{name: "edge touching", a: square(0, 0, 1), b: square(1, 0, 1), expected: true},
		{name: "crossing without contained vertices", a: square(0, 1, 3), b: square(1, 0, 1), expected: true},
		{name: "nil geometry", a: nil, b: square(0, 0, 1), expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Intersects(tt.a, tt.b))
			assert.Equal(t, tt.expected, Intersects(tt.b, tt.a))
		})
	}
}

func TestDetectCRS(t *testing.T) {
	dir := t.TempDir()

	writePRJ := func(name, wkt string) string {
		shpPath := filepath.Join(dir, name+".shp")
		require.NoError(t, os.WriteFile(filepath.Join(dir, name+".prj"), []byte(wkt), 0o644))
		return shpPath
	}

	t.Run("geographic", func(t *testing.T) {
		path := writePRJ("geo", `GEOGCS["GCS_WGS_1984",DATUM["D_WGS_1984",SPHEROID["WGS_1984",6378137.0,298.257223563]]]`)
		crs, err := DetectCRS(path)
		require.NoError(t, err)
		assert.Equal(t, CRSGeographic, crs)
	})

	t.Run("mass state plane", func(t *testing.T) {
		path := writePRJ("sp", `PROJCS["NAD_1983_StatePlane_Massachusetts_Mainland_FIPS_2001",GEOGCS["GCS_North_American_1983"],PROJECTION["Lambert_Conformal_Conic"]]`)
		crs, err := DetectCRS(path)
		require.NoError(t, err)
		assert.Equal(t, CRSMassStatePlane, crs)
	})

	t.Run("missing sidecar treated as geographic", func(t *testing.T) {
		crs, err := DetectCRS(filepath.Join(dir, "absent.shp"))
		require.NoError(t, err)
		assert.Equal(t, CRSGeographic, crs)
	})

	t.Run("unsupported projection is fatal", func(t *testing.T) {
		path := writePRJ("utm", `PROJCS["WGS_1984_UTM_Zone_19N",PROJECTION["Transverse_Mercator"]]`)
		_, err := DetectCRS(path)
		require.Error(t, err)
	})
}

func TestReconcileToGeographic(t *testing.T) {
	// A state-plane square near Boston must come back as lon/lat degrees.
	x, y := ForwardStatePlane(-71.06, 42.36)
	projected := square(x, y, 500)

	features := ReconcileToGeographic(
		[]Feature{{Attrs: map[string]string{"NAME": "Downtown"}, Geometry: projected}},
		CRSMassStatePlane,
	)
	require.Len(t, features, 1)

	flat := features[0].Geometry.FlatCoords()
	assert.InDelta(t, -71.06, flat[0], 0.05)
	assert.InDelta(t, 42.36, flat[1], 0.05)

	// Geographic input passes through untouched.
	same := ReconcileToGeographic([]Feature{{Geometry: square(-71, 42, 1)}}, CRSGeographic)
	assert.Equal(t, -71.0, same[0].Geometry.FlatCoords()[0])
}

func square(minX, minY, size float64) *geom.MultiPolygon {
	mp := geom.NewMultiPolygon(geom.XY)
	poly := geom.NewPolygon(geom.XY)
	if err := poly.Push(geom.NewLinearRingFlat(geom.XY, []float64{
		minX, minY,
		minX + size, minY,
		minX + size, minY + size,
		minX, minY + size,
		minX, minY,
	})); err != nil {
		panic(err)
	}
	if err := mp.Push(poly); err != nil {
		panic(err)
	}
	return mp
}
