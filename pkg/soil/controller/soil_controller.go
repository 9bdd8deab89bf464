package controller

import "github.com/labstack/echo/v4"

type SoilController interface {
	Analyze(c echo.Context) error
	Records(c echo.Context) error
	Export(c echo.Context) error
}
