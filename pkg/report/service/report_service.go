package service

import (
	"context"
	"time"

	"genreport/pkg/production/repository"
	"genreport/pkg/report"
	"genreport/pkg/topology"
)

type ReportService interface {
	// Generate builds the named flavor's report for requested against port.
	Generate(ctx context.Context, flavor string, requested time.Time, port repository.TimeSeriesPort) (*report.Report, error)
	Topology(flavor string) (*topology.Topology, error)
}
