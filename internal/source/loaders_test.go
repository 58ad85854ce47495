package source

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bostonmetro/crimedata/internal/refdata"
)

func TestLoadCambridge(t *testing.T) {
	csv := strings.Join([]string{
		"Crime Date Time,Crime,Neighborhood,Reporting Area",
		"2023-05-14 18:30:00,Robbery,Riverside,401",
		"2023-06-02 09:00:00,Jaywalking,MIT,402",
		"bogus,Larceny,,403",
		",,East Cambridge,404",
	}, "\n")

	tables := refdata.CityTables{
		MacroCrime: map[string]string{"Robbery": "Violent", "Larceny": "Property"},
	}

	records, err := LoadCambridge(strings.NewReader(csv), tables)
	require.NoError(t, err)
	require.Len(t, records, 3) // blank-crime row skipped

	for _, rec := range records {
		assert.NotEmpty(t, rec.Crime)
	}

	// Fully resolvable row.
	require.NotNil(t, records[0].Date)
	assert.Equal(t, time.Date(2023, time.May, 14, 0, 0, 0, 0, time.UTC), *records[0].Date)
	require.NotNil(t, records[0].MacroCrime)
	assert.Equal(t, "Violent", *records[0].MacroCrime)
	require.NotNil(t, records[0].Neighborhood)
	assert.Equal(t, "Riverside", *records[0].Neighborhood)

	// Unmapped crime label keeps the record with a nil macro category.
	assert.Nil(t, records[1].MacroCrime)

	// Malformed date and blank neighborhood keep the record with nil fields.
	assert.Nil(t, records[2].Date)
	assert.Nil(t, records[2].Neighborhood)
}

func TestLoadBoston(t *testing.T) {
	csv := strings.Join([]string{
		"From Date,Crime,Neighborhood,BPD District",
		"2023-04-01 10:00:00,AGGRAVATED ASSAULT,Allston/Brighton,D14",
		"2023-04-02 11:00:00,larceny,Roxbury,B2",
	}, "\n")

	tables := refdata.CityTables{
		MacroCrime:        map[string]string{"Aggravated Assault": "Violent", "Larceny": "Property"},
		NeighborhoodNames: map[string]string{"Allston/Brighton": "Allston"},
	}

	records, err := LoadBoston(strings.NewReader(csv), tables)
	require.NoError(t, err)
	require.Len(t, records, 2)

	// Labels are title-cased before macro lookup.
	assert.Equal(t, "Aggravated Assault", records[0].Crime)
	require.NotNil(t, records[0].MacroCrime)
	assert.Equal(t, "Violent", *records[0].MacroCrime)

	// Neighborhood remapped through the name map.
	require.NotNil(t, records[0].Neighborhood)
	assert.Equal(t, "Allston", *records[0].Neighborhood)

	// Unmapped neighborhood falls back to the original name.
	require.NotNil(t, records[1].Neighborhood)
	assert.Equal(t, "Roxbury", *records[1].Neighborhood)
	assert.Equal(t, "Larceny", records[1].Crime)
}

func TestLoadSomerville(t *testing.T) {
	csv := strings.Join([]string{
		"Day and Month Reported,Year Reported,Offense Type,Block Code",
		"14/05,2023,MOTOR VEHICLE THEFT,250173501001000.0",
		",2022,ROBBERY,250173501001001",
	}, "\n")

	tables := refdata.CityTables{
		MacroCrime: map[string]string{"Motor Vehicle Theft": "Property", "Robbery": "Violent"},
	}

	records, err := LoadSomerville(strings.NewReader(csv), tables)
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, "Motor Vehicle Theft", records[0].Record.Crime)
	require.NotNil(t, records[0].Record.Date)
	assert.Equal(t, time.Date(2023, time.May, 14, 0, 0, 0, 0, time.UTC), *records[0].Record.Date)
	assert.Equal(t, "250173501001000.0", records[0].BlockCode)

	// Blank day/month dates the record to January 1st of the given year.
	require.NotNil(t, records[1].Record.Date)
	assert.Equal(t, time.Date(2022, time.January, 1, 0, 0, 0, 0, time.UTC), *records[1].Record.Date)

	// Neighborhood stays unresolved until the spatial join.
	assert.Nil(t, records[0].Record.Neighborhood)
	assert.Nil(t, records[1].Record.Neighborhood)
}
