package report

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"agrisight/entities"
)

func TestWriteSoilHistory(t *testing.T) {
	crop := "beans"
	lat := -1.28
	records := []entities.SoilRecord{
		{
			FarmerType: "crop", HealthScore: 81, MoistureLevel: 30, PHLevel: 6.5, NitrogenLevel: 40, NDVIValue: 0.7,
			SuggestedCrop: &crop, Latitude: &lat, Recommendations: []string{"Add compost", "Rotate"},
			CreatedAt: time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC),
		},
		{FarmerType: "livestock", HealthScore: 20, ShouldRest: true, RotationNeeded: true, Recommendations: []string{"Rest the paddock"}},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteSoilHistory(&buf, records))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(Sheet)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "Date", rows[0][0])
	assert.Equal(t, "Recommendations", rows[0][12])

	assert.Equal(t, "2026-03-01T08:00:00Z", rows[1][0])
	assert.Equal(t, "81", rows[1][2])
	assert.Equal(t, "6.5", rows[1][4])
	assert.Equal(t, "no", rows[1][7])
	assert.Equal(t, "beans", rows[1][9])
	assert.Equal(t, "-1.28", rows[1][10])
	assert.Equal(t, "Add compost; Rotate", rows[1][12])

	assert.Equal(t, "yes", rows[2][7])
	assert.Equal(t, "yes", rows[2][8])
}

func TestWriteSoilHistory_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteSoilHistory(&buf, nil))
	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()
	rows, err := f.GetRows(Sheet)
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}
