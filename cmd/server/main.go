package main

import (
	"context"
	"log"
	"time"

	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"genreport/config"
	"genreport/database"
	"genreport/pkg/logging"
	"genreport/pkg/middleware"
	"genreport/pkg/report"
	"genreport/pkg/topology"
	"genreport/router"

	// Field
	fieldCtrlImp "genreport/pkg/field/controllerImp"
	fieldRepoImp "genreport/pkg/field/repositoryImp"
	fieldSvc "genreport/pkg/field/service"
	fieldSvcImp "genreport/pkg/field/serviceImp"

	// Report
	reportCtrlImp "genreport/pkg/report/controllerImp"
	reportSvcImp "genreport/pkg/report/serviceImp"

	// Health
	healthCtrlImp "genreport/pkg/health/controllerImp"
)

func main() {
	// 1) Config + logger
	cfg := config.Load()
	logger, err := logging.New(cfg)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer logger.Sync()
	if loc, err := time.LoadLocation(cfg.Timezone); err != nil {
		logger.Warn("unknown timezone, keeping system default", zap.String("tz", cfg.Timezone), zap.Error(err))
	} else {
		time.Local = loc
	}
	logger.Info("starting", zap.Any("config", cfg.Redacted()))

	// 2) Default store. Requests may still name their own database.
	db, err := database.Open(cfg)
	if err != nil {
		logger.Warn("default database unavailable; only requests with connection params will work", zap.Error(err))
	} else {
		defer database.Close(db)
	}

	// 3) Field registry
	var fSvc fieldSvc.FieldService
	if db != nil {
		fSvc = fieldSvcImp.NewFieldService(fieldRepoImp.New(db))
	}

	// 4) Topologies, one per flavor
	topologies := make(map[string]*topology.Topology, len(report.Flavors))
	for _, f := range report.Flavors {
		t, err := topology.Load(cfg.TopologyDir, f.Name)
		if err != nil {
			logger.Fatal("load topology", zap.String("flavor", f.Name), zap.Error(err))
		}
		checkRegistry(logger, fSvc, f, t)
		topologies[f.Name] = t
	}

	// 5) Services/Controllers
	rSvc := reportSvcImp.NewReportService(topologies, cfg.ReportWorkers, logger)
	rCtrl := reportCtrlImp.New(rSvc, db, reportCtrlImp.PostgresConnector, logger)
	hCtrl := healthCtrlImp.NewHealthCtrl(db, rSvc)
	fCtrl := fieldCtrlImp.New(fSvc)

	// 6) Echo
	e := echo.New()
	e.HideBanner = true
	e.Use(echoMiddleware.Recover())
	e.Use(middleware.RequestLog(logger))

	r := router.New(e, rCtrl, fCtrl, hCtrl, cfg.APIKey)

	// 7) Start
	logger.Info("listening", zap.String("port", cfg.Port))
	if err := r.Start(":" + cfg.Port); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}

// checkRegistry warns about topology leaves the field registry does not know.
// An empty registry is skipped: the store may only hold production rows.
func checkRegistry(logger *zap.Logger, fSvc fieldSvc.FieldService, f report.Flavor, t *topology.Topology) {
	if fSvc == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	known, err := fSvc.KnownIDs(ctx, f.ProdType)
	if err != nil {
		logger.Warn("field registry unreadable", zap.String("flavor", f.Name), zap.Error(err))
		return
	}
	if len(known) == 0 {
		return
	}
	if missing := t.MissingFrom(known); len(missing) > 0 {
		logger.Warn("topology leaves missing from field registry",
			zap.String("flavor", f.Name), zap.Strings("fields", missing))
	}
}
