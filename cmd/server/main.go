package main

import (
	"context"
	"errors"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"agrisight/config"
	"agrisight/database"
	"agrisight/pkg/ai"
	"agrisight/pkg/logging"
	"agrisight/pkg/prompt"
	"agrisight/router"

	// Auth
	authCtrlImp "agrisight/pkg/auth/controllerImp"

	// Health
	healthCtrlImp "agrisight/pkg/health/controllerImp"

	// Insight
	insightCtrlImp "agrisight/pkg/insight/controllerImp"
	insightRepoImp "agrisight/pkg/insight/repositoryImp"
	insightSvcImp "agrisight/pkg/insight/serviceImp"

	// Pasture
	pastureCtrlImp "agrisight/pkg/pasture/controllerImp"

	// Profile
	profileCtrlImp "agrisight/pkg/profile/controllerImp"
	profileRepoImp "agrisight/pkg/profile/repositoryImp"
	profileSvcImp "agrisight/pkg/profile/serviceImp"

	// Soil
	soilCtrlImp "agrisight/pkg/soil/controllerImp"
	soilRepoImp "agrisight/pkg/soil/repositoryImp"
	soilSvcImp "agrisight/pkg/soil/serviceImp"
)

func main() {
	// 1) Config
	cfg := config.Load()

	// 2) Logger
	logger, err := logging.New(cfg.LogLevel, cfg.LogFile)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	// missing credential is fatal before anything listens
	if err := cfg.Validate(); err != nil {
		logger.Fatal("invalid configuration", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 3) DB (sqlite) + automigrate
	db, err := database.OpenSQLite(cfg.DBPath)
	if err != nil {
		logger.Fatal("database", zap.Error(err))
	}

	// 4) Inference client
	llm, err := ai.New(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("inference client", zap.Error(err))
	}
	if cl, ok := llm.(io.Closer); ok {
		defer cl.Close()
	}
	logger.Info("inference client ready",
		zap.String("provider", llm.Provider()),
		zap.String("model", llm.Model()),
		zap.Duration("timeout", cfg.AITimeout))

	// 5) Repos/Services/Controllers
	soilRepo := soilRepoImp.New(db)
	profileRepo := profileRepoImp.New(db)
	insightRepo := insightRepoImp.New(db)

	soilSvc := soilSvcImp.NewSoilService(llm, prompt.Options{Temperature: cfg.AISoilTemperature, MaxTokens: cfg.AISoilMaxTokens}, logger)
	insightSvc := insightSvcImp.NewInsightService(llm, prompt.Options{Temperature: cfg.AIInsightTemperature}, logger)

	sCtrl := soilCtrlImp.New(soilSvc, soilRepo, logger)
	iCtrl := insightCtrlImp.New(insightSvc, insightRepo, profileRepo, soilRepo, logger)
	prCtrl := profileCtrlImp.New(profileSvcImp.NewProfileService(profileRepo), logger)
	paCtrl := pastureCtrlImp.New()
	hCtrl := healthCtrlImp.NewHealthCtrl(db, llm)
	aCtrl := authCtrlImp.NewAuthController()

	// 6) Echo + router
	e := echo.New()
	e.HideBanner = true
	r := router.New(e, cfg, logger, sCtrl, iCtrl, prCtrl, paCtrl, aCtrl, hCtrl)

	// 7) Start
	go func() {
		logger.Info("listening", zap.String("port", cfg.Port))
		if err := r.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server", zap.Error(err))
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.AITimeout+5*time.Second)
	defer cancel()
	if err := r.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown", zap.Error(err))
	}
}
