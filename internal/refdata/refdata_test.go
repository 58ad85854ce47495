package refdata

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	tables, err := Load()
	require.NoError(t, err)

	assert.NotEmpty(t, tables.Cambridge.MacroCrime)
	assert.NotEmpty(t, tables.Boston.MacroCrime)
	assert.NotEmpty(t, tables.Somerville.MacroCrime)

	// Only Cambridge ships a static population table.
	assert.NotEmpty(t, tables.Cambridge.Population)
	assert.Empty(t, tables.Boston.Population)
	assert.Empty(t, tables.Somerville.Population)

	// Somerville needs no name map; its shapefile names are already canonical.
	assert.Empty(t, tables.Somerville.NeighborhoodNames)

	// Spot-check classification and name mapping entries.
	assert.Equal(t, "Violent", tables.Cambridge.MacroCrime["Robbery"])
	assert.Equal(t, "Allston", tables.Boston.NeighborhoodNames["Allston/Brighton"])
	assert.Equal(t, "Property", tables.Somerville.MacroCrime["Motor Vehicle Theft"])
}

func TestLoad_PopulationNonNegative(t *testing.T) {
	tables, err := Load()
	require.NoError(t, err)

	for name, pop := range tables.Cambridge.Population {
		assert.GreaterOrEqual(t, pop, 0.0, "neighborhood %s", name)
	}
}
