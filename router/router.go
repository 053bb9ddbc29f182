package router

import (
	"github.com/labstack/echo/v4"

	"genreport/pkg/middleware"
)

func New(
	e *echo.Echo,
	reportCtrl interface {
		OilReport(echo.Context) error
		GasReport(echo.Context) error
		Download(echo.Context) error
		Topology(echo.Context) error
	},
	fieldCtrl interface {
		List(echo.Context) error
		Get(echo.Context) error
	},
	healthCtrl interface {
		Health(echo.Context) error
		Root(echo.Context) error
	},
	apiKey string,
) *echo.Echo {
	e.GET("/", healthCtrl.Root)
	e.GET("/health", healthCtrl.Health)

	e.GET("/fields", fieldCtrl.List)
	e.GET("/fields/:id/:type", fieldCtrl.Get)

	g := e.Group("/report", middleware.APIKey(apiKey))
	g.POST("/oilreport", reportCtrl.OilReport)
	g.POST("/gasreport", reportCtrl.GasReport)
	g.POST("/:flavor/xlsx", reportCtrl.Download)
	g.GET("/topology/:flavor", reportCtrl.Topology)
	return e
}
