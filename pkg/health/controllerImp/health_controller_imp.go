package controllerImp

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

var appStart = time.Now()

// Inference is the part of ai.Client health reports on.
type Inference interface {
	Provider() string
	Model() string
}

type HealthCtrl struct {
	db  *gorm.DB
	llm Inference
}

func NewHealthCtrl(db *gorm.DB, llm Inference) *HealthCtrl { return &HealthCtrl{db: db, llm: llm} }

func (h *HealthCtrl) Health(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 800*time.Millisecond)
	defer cancel()

	type sub struct {
		OK  bool   `json:"ok"`
		Err string `json:"err,omitempty"`
	}

	dbCheck := sub{OK: true}
	if h.db == nil {
		dbCheck = sub{Err: "gorm db is nil"}
	} else if sqlDB, err := h.db.DB(); err != nil {
		dbCheck = sub{Err: "db.DB(): " + err.Error()}
	} else if err := sqlDB.PingContext(ctx); err != nil {
		dbCheck = sub{Err: "ping: " + err.Error()}
	}

	inference := map[string]any{"ok": h.llm != nil}
	if h.llm != nil {
		inference["provider"] = h.llm.Provider()
		inference["model"] = h.llm.Model()
	}

	allOK := dbCheck.OK && h.llm != nil
	status := http.StatusOK
	if !allOK {
		status = http.StatusServiceUnavailable
	}

	return c.JSON(status, map[string]any{
		"status":     map[string]any{"ok": allOK},
		"uptime_sec": int(time.Since(appStart).Seconds()),
		"checks": map[string]any{
			"database":  dbCheck,
			"inference": inference,
		},
		"time": time.Now().Format(time.RFC3339),
	})
}
