package geoio

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"
)

// CRS identifies a coordinate reference system the pipeline understands.
type CRS int

const (
	// CRSGeographic is EPSG:4326 (or an equivalent geographic CRS), the
	// canonical system for all composer-facing geometry.
	CRSGeographic CRS = iota
	// CRSMassStatePlane is EPSG:26986, NAD83 Massachusetts Mainland
	// (Lambert conformal conic, meters).
	CRSMassStatePlane
)

// DetectCRS classifies the .prj sidecar of a shapefile. A missing sidecar is
// treated as geographic, matching the convention of the municipal sources.
// An unrecognized projected CRS is fatal: geometry in an unknown system
// cannot be reconciled.
func DetectCRS(shpPath string) (CRS, error) {
	prjPath := strings.TrimSuffix(shpPath, filepath.Ext(shpPath)) + ".prj"
	data, err := os.ReadFile(prjPath)
	if err != nil {
		if os.IsNotExist(err) {
			return CRSGeographic, nil
		}
		return CRSGeographic, eris.Wrapf(err, "geoio: read %s", prjPath)
	}

	wkt := strings.ToUpper(string(data))
	switch {
	case strings.HasPrefix(strings.TrimSpace(wkt), "GEOGCS"):
		return CRSGeographic, nil
	case strings.Contains(wkt, "MASSACHUSETTS") && strings.Contains(wkt, "LAMBERT_CONFORMAL_CONIC"):
		return CRSMassStatePlane, nil
	default:
		return CRSGeographic, eris.Errorf("geoio: unsupported CRS in %s", prjPath)
	}
}

// ReconcileToGeographic converts features to EPSG:4326, reprojecting only
// when the source CRS differs. Features already geographic pass through
// unchanged.
func ReconcileToGeographic(features []Feature, crs CRS) []Feature {
	if crs == CRSGeographic {
		return features
	}
	out := make([]Feature, len(features))
	for i, f := range features {
		out[i] = Feature{Attrs: f.Attrs, Geometry: UnprojectFromStatePlane(f.Geometry)}
	}
	return out
}
