package controllerImp

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"agrisight/entities"
	"agrisight/pkg/ai"
	"agrisight/pkg/analysis"
	"agrisight/pkg/analysis/types"
	"agrisight/pkg/middleware"
	"agrisight/pkg/soil/report"
	"agrisight/pkg/soil/repository"
	"agrisight/pkg/soil/service"
)

const (
	defaultListLimit = 50
	maxListLimit     = 500
	xlsxMIME         = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

type SoilCtrl struct {
	svc  service.SoilService
	repo repository.SoilRepository
	log  *zap.Logger
}

func New(svc service.SoilService, repo repository.SoilRepository, log *zap.Logger) *SoilCtrl {
	if log == nil {
		log = zap.NewNop()
	}
	return &SoilCtrl{svc: svc, repo: repo, log: log}
}

type analyzeReq struct {
	ImageData  string   `json:"imageData"`
	FarmerType string   `json:"farmerType"`
	Latitude   *float64 `json:"latitude"`
	Longitude  *float64 `json:"longitude"`
}

func (h *SoilCtrl) Analyze(c echo.Context) error {
	var req analyzeReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad json"})
	}
	kind, err := types.ParseFarmerKind(req.FarmerType)
	if err != nil {
		return analysis.Fail(c, err)
	}
	if err := checkCoords(req.Latitude, req.Longitude); err != nil {
		return analysis.Fail(c, err)
	}
	img, err := ai.ImageDataURL(req.ImageData)
	if err != nil {
		return analysis.Fail(c, err)
	}

	res, err := h.svc.Analyze(c.Request().Context(), types.SoilAnalysisRequest{Image: img, FarmerKind: kind})
	if err != nil {
		return analysis.Fail(c, err)
	}

	if uid := middleware.UserID(c); uid != "" && h.repo != nil {
		rec := &entities.SoilRecord{
			UserID:          uid,
			FarmerType:      string(kind),
			HealthScore:     res.HealthScore,
			MoistureLevel:   res.MoistureLevel,
			PHLevel:         res.PHLevel,
			NitrogenLevel:   res.NitrogenLevel,
			NDVIValue:       res.NDVIValue,
			ShouldRest:      res.ShouldRest,
			RotationNeeded:  res.RotationNeeded,
			SuggestedCrop:   res.SuggestedCrop,
			Recommendations: res.Recommendations,
			Latitude:        req.Latitude,
			Longitude:       req.Longitude,
		}
		// history is best effort; the caller still gets the analysis
		if err := h.repo.Create(rec); err != nil {
			h.log.Warn("store soil record", zap.String("uid", uid), zap.Error(err))
		}
	}
	return c.JSON(http.StatusOK, res)
}

func (h *SoilCtrl) Records(c echo.Context) error {
	uid := middleware.UserID(c)
	limit := defaultListLimit
	if s := c.QueryParam("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n <= 0 {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "limit must be a positive integer"})
		}
		limit = min(n, maxListLimit)
	}
	rs, err := h.repo.ListByUser(uid, limit)
	if err != nil {
		h.log.Error("list soil records", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "could not load soil records"})
	}
	if rs == nil {
		rs = []entities.SoilRecord{}
	}
	return c.JSON(http.StatusOK, rs)
}

func (h *SoilCtrl) Export(c echo.Context) error {
	uid := middleware.UserID(c)
	rs, err := h.repo.ListByUser(uid, 0)
	if err != nil {
		h.log.Error("export soil records", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "could not load soil records"})
	}
	var buf bytes.Buffer
	if err := report.WriteSoilHistory(&buf, rs); err != nil {
		h.log.Error("render soil workbook", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "could not render workbook"})
	}
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="soil-history.xlsx"`)
	return c.Blob(http.StatusOK, xlsxMIME, buf.Bytes())
}

func checkCoords(lat, lon *float64) error {
	if lat != nil && (*lat < -90 || *lat > 90) {
		return fmt.Errorf("%w: latitude must be within [-90,90]", types.ErrInvalidRequest)
	}
	if lon != nil && (*lon < -180 || *lon > 180) {
		return fmt.Errorf("%w: longitude must be within [-180,180]", types.ErrInvalidRequest)
	}
	return nil
}
