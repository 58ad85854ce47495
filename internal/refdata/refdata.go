// Package refdata carries the static reference tables the loaders depend on:
// macro-crime classification maps, neighborhood name maps, and the Cambridge
// 2020 census population table. The tables ship embedded in the binary and
// are passed into loaders explicitly so tests can substitute their own.
package refdata

import (
	_ "embed"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"
)

//go:embed tables.yaml
var rawTables []byte

// CityTables holds one city's reference data. Fields a city does not use are
// left empty (Somerville has no name map; only Cambridge carries a static
// population table).
type CityTables struct {
	MacroCrime        map[string]string  `yaml:"macro_crime"`
	NeighborhoodNames map[string]string  `yaml:"neighborhood_names"`
	Population        map[string]float64 `yaml:"population"`
}

// Tables is the full set of reference tables for the three cities.
type Tables struct {
	Cambridge  CityTables `yaml:"cambridge"`
	Boston     CityTables `yaml:"boston"`
	Somerville CityTables `yaml:"somerville"`
}

// Load parses the embedded reference tables.
func Load() (*Tables, error) {
	var t Tables
	if err := yaml.Unmarshal(rawTables, &t); err != nil {
		return nil, eris.Wrap(err, "refdata: parse tables")
	}
	return &t, nil
}
