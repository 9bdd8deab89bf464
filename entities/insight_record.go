package entities

import "time"

type InsightRecord struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    string    `gorm:"index" json:"user_id"`
	Question  string    `json:"question"`
	RiskScore int       `json:"risk_score"`
	RiskLevel string    `json:"risk_level"` // low|medium|high
	CreatedAt time.Time `gorm:"index" json:"created_at"`
}
