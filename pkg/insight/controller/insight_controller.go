package controller

import "github.com/labstack/echo/v4"

type InsightController interface {
	Analyze(c echo.Context) error
	History(c echo.Context) error
	RiskLevel(c echo.Context) error
}
