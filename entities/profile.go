package entities

import "time"

type FarmerProfile struct {
	ProfileID        uint      `gorm:"primaryKey" json:"profile_id"`
	UserID           string    `gorm:"uniqueIndex" json:"user_id"`
	FarmerType       string    `json:"farmer_type"` // crop|livestock|mixed
	Crops            []string  `gorm:"serializer:json" json:"crops"`
	Location         string    `json:"location"`
	CurrentCrop      string    `json:"current_crop"`
	HarvestMonth     string    `json:"harvest_month"`
	WaterUsagePerDay *float64  `json:"water_usage_per_day"` // litres
	LivestockCount   *int      `json:"livestock_count"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}
