package controller

import "github.com/labstack/echo/v4"

type ReportController interface {
	OilReport(c echo.Context) error
	GasReport(c echo.Context) error
	Download(c echo.Context) error
	Topology(c echo.Context) error
}
