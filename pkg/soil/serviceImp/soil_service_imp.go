package serviceImp

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"agrisight/pkg/ai"
	"agrisight/pkg/analysis/types"
	"agrisight/pkg/metrics"
	"agrisight/pkg/prompt"
	"agrisight/pkg/response"
	"agrisight/pkg/soil/service"
)

const operation = "soil"

type SoilSvc struct {
	llm ai.Client
	opt prompt.Options
	log *zap.Logger
}

var _ service.SoilService = (*SoilSvc)(nil)

func NewSoilService(llm ai.Client, opt prompt.Options, log *zap.Logger) *SoilSvc {
	if log == nil {
		log = zap.NewNop()
	}
	return &SoilSvc{llm: llm, opt: opt, log: log.Named("soil")}
}

// Analyze builds the prompt, makes the single inference call and validates
// the reply. It keeps no state between calls.
func (s *SoilSvc) Analyze(ctx context.Context, req types.SoilAnalysisRequest) (types.SoilAnalysisResult, error) {
	var zero types.SoilAnalysisResult
	if strings.TrimSpace(req.Image) == "" {
		return zero, fmt.Errorf("%w: imageData is required", types.ErrInvalidRequest)
	}
	if _, err := types.ParseFarmerKind(string(req.FarmerKind)); err != nil {
		return zero, err
	}

	p := prompt.Soil(req, s.opt)
	s.log.Info("analyzing soil", zap.String("farmer_type", string(req.FarmerKind)))

	raw, err := s.llm.Complete(ctx, p)
	if err != nil {
		s.fail(err)
		return zero, err
	}

	res, err := response.ParseSoil(raw)
	if err != nil {
		s.log.Warn("soil reply rejected", zap.Error(err), zap.String("reply", clip(raw, 500)))
		s.fail(err)
		return zero, err
	}
	if !req.FarmerKind.RaisesAnimals() {
		res.RotationNeeded = false
	}

	metrics.ObserveAnalysis(operation, "ok")
	s.log.Info("soil analysis complete",
		zap.Int("health_score", res.HealthScore),
		zap.Bool("should_rest", res.ShouldRest))
	return res, nil
}

func (s *SoilSvc) fail(err error) {
	kind := ai.Kind(err)
	metrics.ObserveAnalysis(operation, kind)
	s.log.Error("soil analysis failed", zap.String("kind", kind), zap.Error(err))
}

func clip(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
