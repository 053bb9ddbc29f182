package serviceImp

import (
	"context"
	"time"

	"genreport/entities"
	"genreport/pkg/production/repository"
	"genreport/pkg/report"
	"genreport/pkg/topology"
)

// Computer derives one report row from stored amounts and plans. It holds no
// state between calls.
type Computer struct {
	port   repository.TimeSeriesPort
	flavor report.Flavor
}

func NewComputer(port repository.TimeSeriesPort, flavor report.Flavor) *Computer {
	return &Computer{port: port, flavor: flavor}
}

type period struct{ from, to time.Time }

func monthOf(year int, m time.Month) period {
	start := time.Date(year, m, 1, 0, 0, 0, 0, time.UTC)
	return period{start, start.AddDate(0, 1, -1)}
}

func yearOf(year int) period {
	return period{
		time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC),
		time.Date(year, time.December, 31, 0, 0, 0, 0, time.UTC),
	}
}

// Compute fills every column of g's row as of asOf. Missing data counts as
// zero; store failures abort the row.
func (c *Computer) Compute(ctx context.Context, g topology.Group, asOf time.Time) (report.Row, error) {
	asOf = entities.Day(asOf)
	f := c.flavor
	year, month := asOf.Year(), asOf.Month()
	yr := yearOf(year)
	mo := monthOf(year, month)
	mtd := period{mo.from, asOf}
	ytd := period{yr.from, asOf}

	row := report.Row{GroupID: g.ID, Name: g.Name, AsOf: asOf}
	var err error

	// Plans are filed under the report-level id, not the leaves.
	if row.PlanCommit, err = c.plan(ctx, g.ID, f.CommitPlan, yr); err != nil {
		return report.Row{}, err
	}
	if row.PlanOperational, err = c.plan(ctx, g.ID, f.OperationalPlan, yr); err != nil {
		return report.Row{}, err
	}

	if row.PriorMonthsAccum, err = c.priorMonths(ctx, g.Included(topology.PriorMonths), year, month); err != nil {
		return report.Row{}, err
	}
	row.PctOfPlanCommitPrior = report.Ratio(row.PriorMonthsAccum*100, f.PlanYearScale*row.PlanCommit)
	row.PctOfPlanOperationalPrior = report.Ratio(row.PriorMonthsAccum*100, f.PlanYearScale*row.PlanOperational)

	monthCommit, err := c.plan(ctx, g.ID, f.CommitPlan, mo)
	if err != nil {
		return report.Row{}, err
	}
	monthOperational, err := c.plan(ctx, g.ID, f.OperationalPlan, mo)
	if err != nil {
		return report.Row{}, err
	}
	row.CurrentMonthPlanCommit = monthCommit * f.PlanMonthScale
	row.CurrentMonthPlanOperational = monthOperational * f.PlanMonthScale

	if row.CurrentMonthActual, err = c.actual(ctx, g.Included(topology.CurrentMonth), f.PrimaryUnit, mtd, f.ActualScale); err != nil {
		return report.Row{}, err
	}
	row.PctCurrentMonthCommit = report.Ratio(row.CurrentMonthActual*100, row.CurrentMonthPlanCommit)
	row.PctCurrentMonthOperational = report.Ratio(row.CurrentMonthActual*100, row.CurrentMonthPlanOperational)

	row.YearToDateAccum = row.PriorMonthsAccum + row.CurrentMonthActual
	if row.YearToDateAccumSecondaryUnit, err = c.actual(ctx, g.Included(topology.YTDSecondary), f.SecondaryUnit, ytd, 1); err != nil {
		return report.Row{}, err
	}
	// Year-to-date is a fraction of plan, not a percentage.
	row.PctYTDCommit = report.Ratio(row.YearToDateAccum, f.PlanYearScale*row.PlanCommit)
	row.PctYTDOperational = report.Ratio(row.YearToDateAccum, f.PlanYearScale*row.PlanOperational)

	days := map[string]*entities.Amounts{}
	if row.DailyPrimaryUnit, err = c.daily(ctx, g.Included(topology.DailyPrimary), f.PrimaryUnit, asOf, days); err != nil {
		return report.Row{}, err
	}
	if row.DailySecondaryUnit, err = c.daily(ctx, g.Included(topology.DailySecondary), f.SecondaryUnit, asOf, days); err != nil {
		return report.Row{}, err
	}
	return row, nil
}

func (c *Computer) plan(ctx context.Context, fieldID, planType string, p period) (float64, error) {
	v, err := c.port.SumPlan(ctx, fieldID, planType, c.flavor.PlanUnit, p.from, p.to)
	if err != nil {
		return 0, err
	}
	return report.Value(v), nil
}

// priorMonths sums each leaf's monthly totals for January up to the month
// before current, scaled per leaf.
func (c *Computer) priorMonths(ctx context.Context, leaves []string, year int, current time.Month) (float64, error) {
	var total float64
	for _, leaf := range leaves {
		var accum float64
		for m := time.January; m < current; m++ {
			mo := monthOf(year, m)
			v, err := c.port.SumProduction(ctx, leaf, c.flavor.ProdType, c.flavor.PrimaryUnit, mo.from, mo.to)
			if err != nil {
				return 0, err
			}
			accum += report.Value(v)
		}
		total += accum / c.flavor.ActualScale
	}
	return total, nil
}

func (c *Computer) actual(ctx context.Context, leaves []string, unit entities.Unit, p period, scale float64) (float64, error) {
	var total float64
	for _, leaf := range leaves {
		v, err := c.port.SumProduction(ctx, leaf, c.flavor.ProdType, unit, p.from, p.to)
		if err != nil {
			return 0, err
		}
		total += report.Value(v) / scale
	}
	return total, nil
}

// daily reads each leaf's record for day once, memoised in seen so both
// daily columns share the lookups.
func (c *Computer) daily(ctx context.Context, leaves []string, unit entities.Unit, day time.Time, seen map[string]*entities.Amounts) (float64, error) {
	var total float64
	for _, leaf := range leaves {
		rec, ok := seen[leaf]
		if !ok {
			var err error
			if rec, err = c.port.SingleDayProduction(ctx, leaf, c.flavor.ProdType, day); err != nil {
				return 0, err
			}
			seen[leaf] = rec
		}
		if rec != nil {
			total += report.Value(rec.Get(unit))
		}
	}
	return total, nil
}
