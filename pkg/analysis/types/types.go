package types

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

var ErrInvalidRequest = errors.New("invalid request")

type FarmerKind string

const (
	FarmerCrop      FarmerKind = "crop"
	FarmerLivestock FarmerKind = "livestock"
	FarmerMixed     FarmerKind = "mixed"
)

func ParseFarmerKind(s string) (FarmerKind, error) {
	switch k := FarmerKind(strings.ToLower(strings.TrimSpace(s))); k {
	case FarmerCrop, FarmerLivestock, FarmerMixed:
		return k, nil
	}
	return "", fmt.Errorf("%w: farmerType must be crop, livestock or mixed", ErrInvalidRequest)
}

// RaisesAnimals reports whether rotation advice applies.
func (k FarmerKind) RaisesAnimals() bool { return k == FarmerLivestock || k == FarmerMixed }

// SoilAnalysisRequest is built per call. Image is a normalized data URL.
type SoilAnalysisRequest struct {
	Image      string
	FarmerKind FarmerKind
}

type SoilAnalysisResult struct {
	HealthScore     int      `json:"health_score"`
	MoistureLevel   float64  `json:"moisture_level"`
	PHLevel         float64  `json:"ph_level"`
	NitrogenLevel   float64  `json:"nitrogen_level"`
	NDVIValue       float64  `json:"ndvi_value"`
	ShouldRest      bool     `json:"should_rest"`
	RotationNeeded  bool     `json:"rotation_needed"`
	SuggestedCrop   *string  `json:"suggested_crop"`
	Recommendations []string `json:"recommendations"`
}

// Reading is an optional numeric value from the client. It accepts a JSON
// number or a numeric string; null, "" and absence all mean not available.
type Reading struct {
	Value float64
	Valid bool
}

func Known(v float64) Reading { return Reading{Value: v, Valid: true} }

func (r *Reading) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*r = Reading{}
		return nil
	}
	raw := string(b)
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		if raw = strings.TrimSpace(s); raw == "" {
			*r = Reading{}
			return nil
		}
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Errorf("%w: %s is not a number", ErrInvalidRequest, raw)
	}
	*r = Known(v)
	return nil
}

func (r Reading) MarshalJSON() ([]byte, error) {
	if !r.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(r.Value)
}

// String renders the value, or "N/A" when missing.
func (r Reading) String() string {
	if !r.Valid {
		return "N/A"
	}
	return strconv.FormatFloat(r.Value, 'f', -1, 64)
}

type SoilContext struct {
	PH            Reading `json:"ph"`
	Nitrogen      Reading `json:"nitrogen"`
	Phosphorus    Reading `json:"phosphorus"`
	Potassium     Reading `json:"potassium"`
	OrganicMatter Reading `json:"organicMatter"`
	Moisture      Reading `json:"moisture"`
}

type CropContext struct {
	CurrentCrop string `json:"currentCrop"`
	Location    string `json:"location"`
}

type WeatherContext struct {
	Temperature Reading `json:"temperature"`
	Rainfall    Reading `json:"rainfall"`
	Humidity    Reading `json:"humidity"`
}

// CropInsightQuery is the wire input of the crop insight operation too.
type CropInsightQuery struct {
	Question string          `json:"query"`
	Soil     *SoilContext    `json:"soilData,omitempty"`
	Crop     *CropContext    `json:"cropData,omitempty"`
	Weather  *WeatherContext `json:"weatherData,omitempty"`
}

func (q CropInsightQuery) Validate() error {
	if strings.TrimSpace(q.Question) == "" {
		return fmt.Errorf("%w: query is required", ErrInvalidRequest)
	}
	return nil
}

type CropInsightResult struct {
	Narrative       string   `json:"analysis"`
	RiskScore       int      `json:"riskScore"`
	Recommendations []string `json:"recommendations"`
}
