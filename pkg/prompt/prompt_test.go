package prompt

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"agrisight/pkg/analysis/types"
)

func TestSoil_SchemaNamesEveryField(t *testing.T) {
	p := Soil(types.SoilAnalysisRequest{Image: "data:image/png;base64,AAAA", FarmerKind: types.FarmerLivestock}, Options{Temperature: 0.4, MaxTokens: 1000})

	for _, key := range []string{"health_score", "moisture_level", "ph_level", "nitrogen_level", "ndvi_value", "should_rest", "rotation_needed", "suggested_crop", "recommendations"} {
		assert.Contains(t, p.System, `"`+key+`"`)
	}
	assert.Contains(t, p.System, "0.0-14.0")
	assert.Contains(t, p.Text, "The farmer type is: livestock")
	assert.NotContains(t, p.Text, "rotation_needed to false")
	assert.Equal(t, "data:image/png;base64,AAAA", p.ImageURL)
	require.NotNil(t, p.Temperature)
	assert.Equal(t, 0.4, *p.Temperature)
	assert.Equal(t, 1000, p.MaxTokens)
}

func TestSoil_CropFarmerGetsNoRotation(t *testing.T) {
	p := Soil(types.SoilAnalysisRequest{Image: "x", FarmerKind: types.FarmerCrop}, Options{})
	assert.Contains(t, p.Text, "rotation_needed to false")
}

func TestInsight_MissingValuesAreNA(t *testing.T) {
	p := Insight(types.CropInsightQuery{Question: "  Should I rotate?  "}, Options{Temperature: 0.7})
	assert.Empty(t, p.ImageURL)

	for _, line := range []string{
		"- pH Level: N/A",
		"- Nitrogen: N/A ppm",
		"- Phosphorus: N/A ppm",
		"- Potassium: N/A ppm",
		"- Organic Matter: N/A%",
		"- Moisture: N/A%",
		"Current Crop: N/A",
		"Location: N/A",
		"- Temperature: N/A°C",
		"- Rainfall: N/Amm",
		"- Humidity: N/A%",
	} {
		assert.Contains(t, p.Text, line)
	}
	assert.True(t, strings.HasSuffix(p.Text, "User Query: Should I rotate?\n"))
}

func TestInsight_RendersSuppliedValues(t *testing.T) {
	q := types.CropInsightQuery{
		Question: "What next?",
		Soil:     &types.SoilContext{PH: types.Known(6.5), Nitrogen: types.Known(0)},
		Crop:     &types.CropContext{CurrentCrop: "maize", Location: "Nakuru"},
		Weather:  &types.WeatherContext{Rainfall: types.Known(12.5)},
	}
	ctx := InsightContext(q)
	assert.Contains(t, ctx, "- pH Level: 6.5\n")
	assert.Contains(t, ctx, "- Nitrogen: 0 ppm\n")
	assert.Contains(t, ctx, "- Potassium: N/A ppm\n")
	assert.Contains(t, ctx, "Current Crop: maize\n")
	assert.Contains(t, ctx, "Location: Nakuru\n")
	assert.Contains(t, ctx, "- Rainfall: 12.5mm\n")
	assert.Less(t, strings.Index(ctx, "Weather Conditions"), strings.Index(ctx, "User Query"))
}
