package serviceImp

import (
	"context"

	"go.uber.org/zap"

	"agrisight/pkg/ai"
	"agrisight/pkg/analysis/types"
	"agrisight/pkg/heuristic"
	"agrisight/pkg/insight/service"
	"agrisight/pkg/metrics"
	"agrisight/pkg/prompt"
	"agrisight/pkg/response"
)

const operation = "crop_insight"

type InsightSvc struct {
	llm ai.Client
	opt prompt.Options
	log *zap.Logger
}

var _ service.InsightService = (*InsightSvc)(nil)

func NewInsightService(llm ai.Client, opt prompt.Options, log *zap.Logger) *InsightSvc {
	if log == nil {
		log = zap.NewNop()
	}
	return &InsightSvc{llm: llm, opt: opt, log: log.Named("insight")}
}

func (s *InsightSvc) Analyze(ctx context.Context, q types.CropInsightQuery) (types.CropInsightResult, error) {
	if err := q.Validate(); err != nil {
		return types.CropInsightResult{}, err
	}

	p := prompt.Insight(q, s.opt)
	s.log.Info("processing crop insight query", zap.Int("query_len", len(q.Question)))

	raw, err := s.llm.Complete(ctx, p)
	if err != nil {
		kind := ai.Kind(err)
		metrics.ObserveAnalysis(operation, kind)
		s.log.Error("crop insight failed", zap.String("kind", kind), zap.Error(err))
		return types.CropInsightResult{}, err
	}

	res := response.ParseInsight(raw)
	// ParseInsight clamps, so classification cannot fail here
	level, _ := heuristic.ClassifyRisk(float64(res.RiskScore))
	metrics.ObserveAnalysis(operation, "ok")
	metrics.ObserveRiskLevel(string(level))
	s.log.Info("crop insight complete",
		zap.Int("risk_score", res.RiskScore),
		zap.String("risk_level", string(level)),
		zap.Int("recommendations", len(res.Recommendations)))
	return res, nil
}
