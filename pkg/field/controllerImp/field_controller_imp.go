package controllerImp

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"genreport/entities"
	"genreport/pkg/field/controller"
	"genreport/pkg/field/service"
)

type FieldCtrl struct{ svc service.FieldService }

func New(svc service.FieldService) controller.FieldController { return &FieldCtrl{svc} }

func (h *FieldCtrl) unavailable(c echo.Context) error {
	return c.JSON(http.StatusServiceUnavailable, map[string]string{"error": "no field registry configured"})
}

// List serves GET /fields?type=OIL_PROD.
func (h *FieldCtrl) List(c echo.Context) error {
	if h.svc == nil {
		return h.unavailable(c)
	}
	t := entities.ProdType(c.QueryParam("type"))
	if t != "" && !t.Valid() {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "unknown field type"})
	}
	fields, err := h.svc.List(c.Request().Context(), t)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, fields)
}

// Get serves GET /fields/:id/:type.
func (h *FieldCtrl) Get(c echo.Context) error {
	if h.svc == nil {
		return h.unavailable(c)
	}
	t := entities.ProdType(c.Param("type"))
	if !t.Valid() {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "unknown field type"})
	}
	f, err := h.svc.GetFieldByID(c.Request().Context(), c.Param("id"), t)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "not found"})
	}
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, f)
}
