package controllerImp

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"agrisight/pkg/heuristic"
)

type PastureCtrl struct{}

func New() *PastureCtrl { return &PastureCtrl{} }

type restReq struct {
	CurrentNDVI     *float64 `json:"currentNdvi"`
	GrazingPressure *float64 `json:"grazingPressure"`
}

func (h *PastureCtrl) RestDays(c echo.Context) error {
	var req restReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad json"})
	}
	if req.CurrentNDVI == nil || req.GrazingPressure == nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "currentNdvi and grazingPressure are required"})
	}
	out, err := heuristic.PastureRest(heuristic.PastureInput{CurrentNDVI: *req.CurrentNDVI, GrazingPressure: *req.GrazingPressure})
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, out)
}
