package serviceImp

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"genreport/entities"
	"genreport/pkg/production/repository"
	"genreport/pkg/report"
	"genreport/pkg/topology"
)

// Assembler produces a full report: resolve each row's as-of date, compute a
// baseline at the requested date, then swap in rows recomputed at their
// fallback dates.
type Assembler struct {
	flavor   report.Flavor
	topo     *topology.Topology
	resolver *Resolver
	computer *Computer
	workers  int
	log      *zap.Logger
}

func NewAssembler(port repository.TimeSeriesPort, flavor report.Flavor, topo *topology.Topology, workers int, log *zap.Logger) *Assembler {
	if workers <= 0 {
		workers = 1
	}
	return &Assembler{
		flavor:   flavor,
		topo:     topo,
		resolver: NewResolver(port, log),
		computer: NewComputer(port, flavor),
		workers:  workers,
		log:      log,
	}
}

func (a *Assembler) Generate(ctx context.Context, requested time.Time) (*report.Report, error) {
	requested = entities.Day(requested)
	groups := a.topo.Groups

	asOf, err := a.resolveAll(ctx, requested)
	if err != nil {
		return nil, fmt.Errorf("resolve dates: %w", err)
	}

	baseline, err := a.computeAll(ctx, groups, func(int) time.Time { return requested })
	if err != nil {
		return nil, fmt.Errorf("baseline at %s: %w", requested.Format("2006-01-02"), err)
	}

	var lagging []int
	for i := range groups {
		if !asOf[i].Equal(requested) {
			lagging = append(lagging, i)
		}
	}
	replacements := map[int]report.Row{}
	if len(lagging) > 0 {
		sub := make([]topology.Group, len(lagging))
		for j, i := range lagging {
			sub[j] = groups[i]
		}
		rows, err := a.computeAll(ctx, sub, func(j int) time.Time { return asOf[lagging[j]] })
		if err != nil {
			return nil, fmt.Errorf("fallback rows: %w", err)
		}
		for j, i := range lagging {
			replacements[i] = rows[j]
			a.log.Info("row backed by earlier data",
				zap.String("flavor", a.flavor.Name),
				zap.String("group", groups[i].ID),
				zap.Time("requested", requested),
				zap.Time("as_of", asOf[i]))
		}
	}

	return &report.Report{
		Flavor:    a.flavor.Name,
		Requested: requested,
		Rows:      Substitute(baseline, replacements),
	}, nil
}

// resolveAll returns each group's as-of date; groups with no resolvable
// member keep the requested date.
func (a *Assembler) resolveAll(ctx context.Context, requested time.Time) ([]time.Time, error) {
	groups := a.topo.Groups
	out := make([]time.Time, len(groups))
	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(a.workers)
	for i, g := range groups {
		i, g := i, g
		eg.Go(func() error {
			d, ok, err := a.resolver.ResolveGroup(ctx, g, a.flavor.ProdType, requested)
			if err != nil {
				return fmt.Errorf("%s: %w", g.ID, err)
			}
			if !ok {
				d = requested
			}
			out[i] = d
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// computeAll computes groups[i] at dateOf(i). Each goroutine owns one slot.
func (a *Assembler) computeAll(ctx context.Context, groups []topology.Group, dateOf func(int) time.Time) ([]report.Row, error) {
	rows := make([]report.Row, len(groups))
	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(a.workers)
	for i, g := range groups {
		i, g := i, g
		eg.Go(func() error {
			row, err := a.computer.Compute(ctx, g, dateOf(i))
			if err != nil {
				return fmt.Errorf("%s: %w", g.ID, err)
			}
			rows[i] = row
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return rows, nil
}

// Substitute returns a copy of rows with the given indexes replaced.
func Substitute(rows []report.Row, replacements map[int]report.Row) []report.Row {
	out := make([]report.Row, len(rows))
	copy(out, rows)
	for i, r := range replacements {
		if i >= 0 && i < len(out) {
			out[i] = r
		}
	}
	return out
}
