package controllerImp

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"agrisight/entities"
	"agrisight/pkg/analysis"
	"agrisight/pkg/analysis/types"
	"agrisight/pkg/heuristic"
	"agrisight/pkg/insight/repository"
	"agrisight/pkg/insight/service"
	"agrisight/pkg/middleware"
)

const (
	defaultHistory = 30
	maxHistory     = 365
)

type profileFinder interface {
	FindByUser(uid string) (*entities.FarmerProfile, error)
}

type latestSoil interface {
	LatestByUser(uid string) (*entities.SoilRecord, error)
}

type InsightCtrl struct {
	svc      service.InsightService
	history  repository.InsightRepository
	profiles profileFinder
	soil     latestSoil
	log      *zap.Logger
}

func New(svc service.InsightService, history repository.InsightRepository, profiles profileFinder, soil latestSoil, log *zap.Logger) *InsightCtrl {
	if log == nil {
		log = zap.NewNop()
	}
	return &InsightCtrl{svc: svc, history: history, profiles: profiles, soil: soil, log: log}
}

func (h *InsightCtrl) Analyze(c echo.Context) error {
	var q types.CropInsightQuery
	if err := c.Bind(&q); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad json"})
	}
	if err := q.Validate(); err != nil {
		return analysis.Fail(c, err)
	}

	uid := middleware.UserID(c)
	if uid != "" {
		h.fillContext(uid, &q)
	}

	res, err := h.svc.Analyze(c.Request().Context(), q)
	if err != nil {
		return analysis.Fail(c, err)
	}

	if uid != "" && h.history != nil {
		level, _ := heuristic.ClassifyRisk(float64(res.RiskScore))
		rec := &entities.InsightRecord{UserID: uid, Question: q.Question, RiskScore: res.RiskScore, RiskLevel: string(level)}
		if err := h.history.Create(rec); err != nil {
			h.log.Warn("store insight record", zap.String("uid", uid), zap.Error(err))
		}
	}
	return c.JSON(http.StatusOK, res)
}

// fillContext supplies crop and soil context the request left out from the
// caller's profile and latest soil record. Explicit request values win.
func (h *InsightCtrl) fillContext(uid string, q *types.CropInsightQuery) {
	if q.Crop == nil && h.profiles != nil {
		if p, err := h.profiles.FindByUser(uid); err == nil && (p.CurrentCrop != "" || p.Location != "") {
			q.Crop = &types.CropContext{CurrentCrop: p.CurrentCrop, Location: p.Location}
		}
	}
	if q.Soil == nil && h.soil != nil {
		if r, err := h.soil.LatestByUser(uid); err == nil {
			q.Soil = &types.SoilContext{
				PH:       types.Known(r.PHLevel),
				Nitrogen: types.Known(r.NitrogenLevel),
				Moisture: types.Known(r.MoistureLevel),
			}
		}
	}
}

func (h *InsightCtrl) History(c echo.Context) error {
	limit := defaultHistory
	if s := c.QueryParam("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n <= 0 {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "limit must be a positive integer"})
		}
		limit = min(n, maxHistory)
	}
	rs, err := h.history.ListByUser(middleware.UserID(c), limit)
	if err != nil {
		h.log.Error("list insight history", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "could not load history"})
	}
	if rs == nil {
		rs = []entities.InsightRecord{}
	}
	return c.JSON(http.StatusOK, rs)
}

func (h *InsightCtrl) RiskLevel(c echo.Context) error {
	score, err := strconv.ParseFloat(c.QueryParam("score"), 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "score must be a number"})
	}
	level, err := heuristic.ClassifyRisk(score)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, map[string]any{"score": score, "level": level})
}
