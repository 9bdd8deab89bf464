package controller

import "github.com/labstack/echo/v4"

type PastureController interface {
	RestDays(c echo.Context) error
}
