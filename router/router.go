package router

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"agrisight/config"
	"agrisight/pkg/middleware"

	authCtrl "agrisight/pkg/auth/controller"
	insightCtrl "agrisight/pkg/insight/controller"
	pastureCtrl "agrisight/pkg/pasture/controller"
	profileCtrl "agrisight/pkg/profile/controller"
	soilCtrl "agrisight/pkg/soil/controller"
)

// CORSAllowHeaders are the headers browser clients send with analyses.
var CORSAllowHeaders = []string{"authorization", "x-client-info", "apikey", "content-type", "x-user-id"}

func New(
	e *echo.Echo,
	cfg config.AppConfig,
	log *zap.Logger,
	soil soilCtrl.SoilController,
	insight insightCtrl.InsightController,
	profile profileCtrl.ProfileController,
	pasture pastureCtrl.PastureController,
	auth authCtrl.AuthController,
	healthCtrl interface{ Health(echo.Context) error },
) *echo.Echo {
	e.Use(echoMiddleware.Recover())
	e.Use(echoMiddleware.RequestIDWithConfig(echoMiddleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(accessLog(log))
	e.Use(echoMiddleware.CORSWithConfig(echoMiddleware.CORSConfig{
		AllowOrigins: cfg.CORSAllowOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodOptions},
		AllowHeaders: CORSAllowHeaders,
	}))
	e.Use(echoMiddleware.BodyLimit(cfg.BodyLimit))
	e.Use(middleware.Identity(middleware.AnonymousAs(cfg.RequireUser)))

	e.GET("/health", healthCtrl.Health)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	e.GET("/login", auth.Login)
	e.GET("/whoami", auth.WhoAmI)

	// analyses never require identity; the function paths keep older clients working
	for _, g := range []*echo.Group{e.Group(""), e.Group("/functions/v1")} {
		g.POST("/analyze-soil", soil.Analyze)
		g.POST("/analyze-crop-insights", insight.Analyze)
	}
	e.POST("/pasture/rest-days", pasture.RestDays)
	e.GET("/risk-level", insight.RiskLevel)

	// per route, so unknown paths stay 404 instead of 401
	user := middleware.RequireUser()
	e.PUT("/profile", profile.Put, user)
	e.GET("/profile", profile.Get, user)
	e.GET("/soil/records", soil.Records, user)
	e.GET("/soil/records/export", soil.Export, user)
	e.GET("/insights/history", insight.History, user)
	return e
}

func accessLog(log *zap.Logger) echo.MiddlewareFunc {
	if log == nil {
		log = zap.NewNop()
	}
	return echoMiddleware.RequestLoggerWithConfig(echoMiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURIPath:   true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		LogValuesFunc: func(c echo.Context, v echoMiddleware.RequestLoggerValues) error {
			fields := []zap.Field{
				zap.String("method", v.Method),
				zap.String("path", v.URIPath),
				zap.Int("status", v.Status),
				zap.Duration("latency", v.Latency),
				zap.String("request_id", v.RequestID),
			}
			if v.Error != nil {
				log.Warn("request", append(fields, zap.Error(v.Error))...)
				return nil
			}
			log.Info("request", fields...)
			return nil
		},
	})
}
