package serviceImp

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"genreport/pkg/production/repository"
	"genreport/pkg/report"
	"genreport/pkg/report/service"
	"genreport/pkg/topology"
)

type reportSvc struct {
	topologies map[string]*topology.Topology
	workers    int
	log        *zap.Logger
}

// NewReportService wires the topologies loaded at startup; one per flavor.
func NewReportService(topologies map[string]*topology.Topology, workers int, log *zap.Logger) service.ReportService {
	return &reportSvc{topologies: topologies, workers: workers, log: log}
}

func (s *reportSvc) Topology(flavor string) (*topology.Topology, error) {
	t, ok := s.topologies[flavor]
	if !ok {
		return nil, fmt.Errorf("%w: %q", report.ErrUnknownFlavor, flavor)
	}
	return t, nil
}

func (s *reportSvc) Generate(ctx context.Context, flavor string, requested time.Time, port repository.TimeSeriesPort) (*report.Report, error) {
	f, err := report.FlavorByName(flavor)
	if err != nil {
		return nil, err
	}
	topo, err := s.Topology(flavor)
	if err != nil {
		return nil, err
	}
	start := time.Now()
	out, err := NewAssembler(port, f, topo, s.workers, s.log).Generate(ctx, requested)
	if err != nil {
		s.log.Error("report failed", zap.String("flavor", flavor), zap.Time("requested", requested), zap.Error(err))
		return nil, err
	}
	s.log.Info("report generated",
		zap.String("flavor", flavor),
		zap.Time("requested", requested),
		zap.Int("rows", len(out.Rows)),
		zap.Duration("took", time.Since(start)))
	return out, nil
}
