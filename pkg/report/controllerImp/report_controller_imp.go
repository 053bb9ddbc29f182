package controllerImp

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"genreport/database"
	prodRepoImp "genreport/pkg/production/repositoryImp"
	"genreport/pkg/report"
	"genreport/pkg/report/controller"
	"genreport/pkg/report/export"
	"genreport/pkg/report/service"
)

// Connector opens the store named by a request's connection parameters.
type Connector func(database.Params) (*gorm.DB, error)

// PostgresConnector is the production Connector.
func PostgresConnector(p database.Params) (*gorm.DB, error) {
	return database.OpenPostgres(p.DSN())
}

type ReportCtrl struct {
	svc       service.ReportService
	defaultDB *gorm.DB
	connect   Connector
	log       *zap.Logger
}

// New builds the report controller. Requests without connection parameters
// read from defaultDB.
func New(svc service.ReportService, defaultDB *gorm.DB, connect Connector, log *zap.Logger) controller.ReportController {
	return &ReportCtrl{svc: svc, defaultDB: defaultDB, connect: connect, log: log}
}

// Field names follow the original report API.
type reportReq struct {
	QueryDate string `json:"query_date"`
	DBName    string `json:"POSTGRES_DB"`
	User      string `json:"POSTGRES_USER"`
	Password  string `json:"POSTGRES_PASSWORD"`
	Host      string `json:"HOST"`
	Port      int    `json:"PORT"`
}

func (r reportReq) params() database.Params {
	return database.Params{DBName: r.DBName, User: r.User, Password: r.Password, Host: r.Host, Port: r.Port}
}

type httpError struct {
	status int
	err    error
}

func (e *httpError) Error() string { return e.err.Error() }

func fail(status int, err error) *httpError { return &httpError{status, err} }

func (h *ReportCtrl) OilReport(c echo.Context) error { return h.respondJSON(c, report.Oil.Name) }

func (h *ReportCtrl) GasReport(c echo.Context) error { return h.respondJSON(c, report.Gas.Name) }

func (h *ReportCtrl) respondJSON(c echo.Context, flavor string) error {
	rep, f, herr := h.generate(c, flavor)
	if herr != nil {
		return c.JSON(herr.status, map[string]string{"error": herr.Error()})
	}
	return c.JSON(http.StatusOK, Rows(rep, f))
}

// Download serves POST /report/:flavor/xlsx.
func (h *ReportCtrl) Download(c echo.Context) error {
	rep, _, herr := h.generate(c, c.Param("flavor"))
	if herr != nil {
		return c.JSON(herr.status, map[string]string{"error": herr.Error()})
	}
	var buf bytes.Buffer
	if err := export.WriteXLSX(&buf, rep); err != nil {
		h.log.Error("xlsx export failed", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%s", export.Filename(rep)))
	return c.Blob(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
}

// Topology serves GET /report/topology/:flavor.
func (h *ReportCtrl) Topology(c echo.Context) error {
	t, err := h.svc.Topology(c.Param("flavor"))
	if err != nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, t)
}

// generate validates the request before touching any store, then runs the
// report against the default or the requested database.
func (h *ReportCtrl) generate(c echo.Context, flavor string) (*report.Report, report.Flavor, *httpError) {
	f, err := report.FlavorByName(flavor)
	if err != nil {
		return nil, f, fail(http.StatusNotFound, err)
	}
	var req reportReq
	if err := c.Bind(&req); err != nil {
		return nil, f, fail(http.StatusBadRequest, errors.New("bad json"))
	}
	day, err := report.ParseDate(req.QueryDate)
	if err != nil {
		return nil, f, fail(http.StatusBadRequest, err)
	}

	db := h.defaultDB
	if p := req.params(); !p.Empty() {
		conn, err := h.connect(p)
		if err != nil {
			h.log.Warn("request database unreachable", zap.String("host", p.Host), zap.String("db", p.DBName), zap.Error(err))
			return nil, f, fail(http.StatusBadGateway, fmt.Errorf("%w: %v", report.ErrConnect, err))
		}
		defer database.Close(conn)
		db = conn
	}
	if db == nil {
		return nil, f, fail(http.StatusServiceUnavailable, fmt.Errorf("%w: no database configured", report.ErrConnect))
	}

	rep, err := h.svc.Generate(c.Request().Context(), flavor, day, prodRepoImp.New(db))
	if err != nil {
		return nil, f, fail(http.StatusInternalServerError, err)
	}
	return rep, f, nil
}
