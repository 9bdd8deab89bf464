package entities

import "time"

type SoilRecord struct {
	RecordID        string    `gorm:"primaryKey;size:36" json:"record_id"`
	UserID          string    `gorm:"index" json:"user_id"`
	FarmerType      string    `json:"farmer_type"`
	HealthScore     int       `json:"health_score"`
	MoistureLevel   float64   `json:"moisture_level"`
	PHLevel         float64   `json:"ph_level"`
	NitrogenLevel   float64   `json:"nitrogen_level"`
	NDVIValue       float64   `json:"ndvi_value"`
	ShouldRest      bool      `json:"should_rest"`
	RotationNeeded  bool      `json:"rotation_needed"`
	SuggestedCrop   *string   `json:"suggested_crop"`
	Recommendations []string  `gorm:"serializer:json" json:"recommendations"`
	Latitude        *float64  `json:"latitude,omitempty"`
	Longitude       *float64  `json:"longitude,omitempty"`
	CreatedAt       time.Time `gorm:"index" json:"created_at"`
}
