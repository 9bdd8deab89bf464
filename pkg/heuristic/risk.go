package heuristic

import (
	"fmt"
	"math"
)

type RiskLevel string

const (
	RiskLow    RiskLevel = "low"
	RiskMedium RiskLevel = "medium"
	RiskHigh   RiskLevel = "high"
)

// ClassifyRisk buckets a score in [0,100]: <30 low, 30-69 medium, >=70 high.
// Scores outside the range are rejected, never clamped.
func ClassifyRisk(score float64) (RiskLevel, error) {
	if math.IsNaN(score) || score < 0 || score > 100 {
		return "", fmt.Errorf("%w: risk score must be within [0,100], got %v", ErrInvalidInput, score)
	}
	switch {
	case score < 30:
		return RiskLow, nil
	case score < 70:
		return RiskMedium, nil
	default:
		return RiskHigh, nil
	}
}

// ClampScore forces a score into [0,100]; it is the caller-side guard
// before ClassifyRisk for scores read out of free text.
func ClampScore(score int) int {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}
