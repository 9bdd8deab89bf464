package controllerImp

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"agrisight/entities"
	"agrisight/pkg/analysis/types"
	"agrisight/pkg/middleware"
	"agrisight/pkg/profile/service"
	"agrisight/pkg/profile/serviceImp"
)

type ProfileCtrl struct {
	svc service.ProfileService
	log *zap.Logger
}

func New(svc service.ProfileService, log *zap.Logger) *ProfileCtrl {
	if log == nil {
		log = zap.NewNop()
	}
	return &ProfileCtrl{svc: svc, log: log}
}

type putReq struct {
	FarmerType       string   `json:"farmer_type"`
	Crops            []string `json:"crops"`
	Location         string   `json:"location"`
	CurrentCrop      string   `json:"current_crop"`
	HarvestMonth     string   `json:"harvest_month"`
	WaterUsagePerDay *float64 `json:"water_usage_per_day"`
	LivestockCount   *int     `json:"livestock_count"`
}

func (h *ProfileCtrl) Put(c echo.Context) error {
	var req putReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad json"})
	}
	p := &entities.FarmerProfile{
		UserID:           middleware.UserID(c),
		FarmerType:       req.FarmerType,
		Crops:            req.Crops,
		Location:         req.Location,
		CurrentCrop:      req.CurrentCrop,
		HarvestMonth:     req.HarvestMonth,
		WaterUsagePerDay: req.WaterUsagePerDay,
		LivestockCount:   req.LivestockCount,
	}
	saved, err := h.svc.SaveProfile(p)
	if errors.Is(err, types.ErrInvalidRequest) {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	if err != nil {
		h.log.Error("save profile", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "could not save profile"})
	}
	return c.JSON(http.StatusOK, saved)
}

func (h *ProfileCtrl) Get(c echo.Context) error {
	p, err := h.svc.GetProfile(middleware.UserID(c))
	if errors.Is(err, serviceImp.ErrNotFound) {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "not found"})
	}
	if err != nil {
		h.log.Error("load profile", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "could not load profile"})
	}
	return c.JSON(http.StatusOK, p)
}
