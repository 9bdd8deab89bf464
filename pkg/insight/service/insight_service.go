package service

import (
	"context"

	"agrisight/pkg/analysis/types"
)

// InsightService answers a farmer question with a narrative, a risk score
// and recommendations.
type InsightService interface {
	Analyze(ctx context.Context, q types.CropInsightQuery) (types.CropInsightResult, error)
}
