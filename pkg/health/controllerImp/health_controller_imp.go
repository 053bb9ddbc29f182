package controllerImp

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"genreport/pkg/report"
	"genreport/pkg/report/service"
)

var appStart = time.Now()

type HealthCtrl struct {
	db      *gorm.DB
	reports service.ReportService
}

func NewHealthCtrl(db *gorm.DB, reports service.ReportService) *HealthCtrl {
	return &HealthCtrl{db: db, reports: reports}
}

type check struct {
	OK   bool   `json:"ok"`
	Err  string `json:"err,omitempty"`
	Rows int    `json:"rows,omitempty"`
}

func (h *HealthCtrl) pingDB(ctx context.Context) check {
	if h.db == nil {
		return check{Err: "no default database"}
	}
	sqlDB, err := h.db.DB()
	if err != nil {
		return check{Err: "db.DB(): " + err.Error()}
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return check{Err: "ping: " + err.Error()}
	}
	return check{OK: true}
}

// Health reports the default store and every flavor's topology.
func (h *HealthCtrl) Health(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 800*time.Millisecond)
	defer cancel()

	checks := map[string]check{"database": h.pingDB(ctx)}
	allOK := checks["database"].OK
	for _, f := range report.Flavors {
		t, err := h.reports.Topology(f.Name)
		if err != nil {
			checks["topology_"+f.Name] = check{Err: err.Error()}
			allOK = false
			continue
		}
		checks["topology_"+f.Name] = check{OK: true, Rows: len(t.Groups)}
	}

	status := http.StatusOK
	if !allOK {
		status = http.StatusServiceUnavailable
	}
	return c.JSON(status, map[string]any{
		"status":     map[string]any{"ok": allOK},
		"uptime_sec": int(time.Since(appStart).Seconds()),
		"checks":     checks,
		"time":       time.Now().Format(time.RFC3339),
	})
}

// Root mirrors the banner of the original service.
func (h *HealthCtrl) Root(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"message": "Automatic Daily Oil Production Reporting API"})
}
