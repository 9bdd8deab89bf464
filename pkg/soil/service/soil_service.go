package service

import (
	"context"

	"agrisight/pkg/analysis/types"
)

// SoilService turns one soil image into a validated soil health result.
type SoilService interface {
	Analyze(ctx context.Context, req types.SoilAnalysisRequest) (types.SoilAnalysisResult, error)
}
