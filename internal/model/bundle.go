// Package model defines the canonical record shapes shared by the loaders,
// resolvers, and bundle composers.
package model

import (
	"encoding/json"
	"time"

	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/geojson"
)

// Municipality names accepted by the bundle service.
const (
	CityCambridge  = "Cambridge"
	CityBoston     = "Boston"
	CitySomerville = "Somerville"

	// MetroAll requests the combined three-city bundle. Any municipality
	// value the service does not recognize resolves to this.
	MetroAll = "all"
)

// CrimeRecord is one normalized crime report. Date, MacroCrime, and
// Neighborhood are nil when the source data could not be resolved; Crime is
// always present. Records are immutable once produced.
type CrimeRecord struct {
	Date         *time.Time `json:"date"`
	Crime        string     `json:"crime"`
	MacroCrime   *string    `json:"macro_crime"`
	Neighborhood *string    `json:"neighborhood"`
}

// Region is one named boundary polygon. Name is the canonical neighborhood
// name (RawName when no mapping exists); Geometry is always EPSG:4326 by the
// time a Region leaves its loader. City is filled by the metro composer.
type Region struct {
	RawName  string
	Name     string
	Geometry *geom.MultiPolygon
	City     string
}

// PopulationTable maps canonical neighborhood name to a population estimate.
type PopulationTable map[string]float64

// Bundle is the complete per-request output for one municipality or the
// combined metro view. It is recomputed per request from memoized parts and
// never persisted.
type Bundle struct {
	Crime          []CrimeRecord   `json:"crime"`
	Geo            []Region        `json:"geo"`
	Population     PopulationTable `json:"population"`
	Zoom           float64         `json:"zoom"`
	PopulationYear string          `json:"population_year"`
}

// regionFeature is the wire form of a Region: a GeoJSON feature with the
// names and city carried as properties.
type regionFeature struct {
	Type       string            `json:"type"`
	Properties map[string]string `json:"properties"`
	Geometry   *geojson.Geometry `json:"geometry"`
}

// MarshalJSON encodes a Region as a GeoJSON feature.
func (r Region) MarshalJSON() ([]byte, error) {
	g, err := geojson.Encode(r.Geometry)
	if err != nil {
		return nil, err
	}
	f := regionFeature{
		Type: "Feature",
		Properties: map[string]string{
			"raw_name": r.RawName,
			"name":     r.Name,
		},
		Geometry: g,
	}
	if r.City != "" {
		f.Properties["city"] = r.City
	}
	return json.Marshal(f)
}
