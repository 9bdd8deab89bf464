package prompt

import (
	"fmt"
	"strings"

	"agrisight/pkg/ai"
	"agrisight/pkg/analysis/types"
)

// NA marks a context value the caller did not supply.
const NA = "N/A"

// Options are the per-path sampling settings taken from config.
type Options struct {
	Temperature float64
	MaxTokens   int
}

// SoilSchema lists every SoilAnalysisResult key with its type and range.
const SoilSchema = `{
  "health_score": integer 0-100,
  "moisture_level": number 0-100 (percent),
  "ph_level": number 0.0-14.0,
  "nitrogen_level": number 0-100 (percent),
  "ndvi_value": number 0.0-1.0,
  "should_rest": boolean,
  "rotation_needed": boolean,
  "suggested_crop": string or null (null when should_rest is true),
  "recommendations": non-empty array of strings
}`

const soilSystem = `You are an expert agricultural soil analyst. Analyze soil images and provide detailed assessments including:
- Overall health score (0-100)
- Moisture level percentage
- pH level (0-14 scale)
- Nitrogen level percentage
- NDVI value estimate (0-1 scale)
- Whether the land should rest
- For livestock farmers, whether animal rotation is needed
- Suggested crops if land doesn't need rest
- Specific recommendations

Return ONLY a JSON object with this exact structure (no markdown, no extra text). Every key is required:
` + SoilSchema

const insightSystem = `You are an agricultural AI assistant specializing in crop rotation, soil health, and sustainable farming practices. Analyze the provided farm data and respond to farmer queries with actionable, scientific insights. Focus on:
- Crop rotation recommendations based on soil nutrient levels
- Risk assessment for diseases, pests, and nutrient deficiencies
- Optimal planting schedules considering weather patterns
- Soil improvement strategies
- Yield optimization techniques

Provide clear, concise answers. State the overall risk as "Risk: N" where N is an integer from 0 to 100, and list each recommendation on its own line starting with "- ".
Values shown as N/A were not provided; do not assume them.`

// Soil builds the image-analysis prompt. The image travels as an inline
// attachment next to a short instruction naming the farmer kind.
func Soil(req types.SoilAnalysisRequest, opt Options) ai.Prompt {
	text := fmt.Sprintf("Analyze this soil image. The farmer type is: %s. Provide detailed soil health metrics and recommendations.", req.FarmerKind)
	if !req.FarmerKind.RaisesAnimals() {
		text += " This farmer keeps no livestock, so set rotation_needed to false."
	}
	return ai.Prompt{
		System:      soilSystem,
		Text:        text,
		ImageURL:    req.Image,
		Temperature: ai.Float(opt.Temperature),
		MaxTokens:   opt.MaxTokens,
	}
}

// Insight builds the crop-insight prompt: one text block with the soil,
// crop and weather sections followed by the question. Every label is
// always present.
func Insight(q types.CropInsightQuery, opt Options) ai.Prompt {
	return ai.Prompt{
		System:      insightSystem,
		Text:        InsightContext(q),
		Temperature: ai.Float(opt.Temperature),
		MaxTokens:   opt.MaxTokens,
	}
}

func InsightContext(q types.CropInsightQuery) string {
	var soil types.SoilContext
	if q.Soil != nil {
		soil = *q.Soil
	}
	var crop types.CropContext
	if q.Crop != nil {
		crop = *q.Crop
	}
	var weather types.WeatherContext
	if q.Weather != nil {
		weather = *q.Weather
	}

	var b strings.Builder
	b.WriteString("Soil Analysis Data:\n")
	fmt.Fprintf(&b, "- pH Level: %s\n", soil.PH)
	fmt.Fprintf(&b, "- Nitrogen: %s ppm\n", soil.Nitrogen)
	fmt.Fprintf(&b, "- Phosphorus: %s ppm\n", soil.Phosphorus)
	fmt.Fprintf(&b, "- Potassium: %s ppm\n", soil.Potassium)
	fmt.Fprintf(&b, "- Organic Matter: %s%%\n", soil.OrganicMatter)
	fmt.Fprintf(&b, "- Moisture: %s%%\n", soil.Moisture)
	b.WriteString("\n")
	fmt.Fprintf(&b, "Current Crop: %s\n", text(crop.CurrentCrop))
	fmt.Fprintf(&b, "Location: %s\n", text(crop.Location))
	b.WriteString("\nWeather Conditions:\n")
	fmt.Fprintf(&b, "- Temperature: %s°C\n", weather.Temperature)
	fmt.Fprintf(&b, "- Rainfall: %smm\n", weather.Rainfall)
	fmt.Fprintf(&b, "- Humidity: %s%%\n", weather.Humidity)
	b.WriteString("\nUser Query: ")
	b.WriteString(strings.TrimSpace(q.Question))
	b.WriteString("\n")
	return b.String()
}

func text(s string) string {
	if s = strings.TrimSpace(s); s == "" {
		return NA
	}
	return s
}
