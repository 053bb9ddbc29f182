package controllerImp

import (
	"encoding/json"
	"math"

	"github.com/shopspring/decimal"

	"genreport/pkg/report"
)

// rowDTO is the wire shape of one report row; N is json.Number for the
// fixed-decimal oil response and float64 for gas.
type rowDTO[N any] struct {
	GroupID                      string `json:"group_id"`
	Field                        string `json:"field"`
	PlanCommit                   N      `json:"plan_commit"`
	PlanOperational              N      `json:"plan_operational"`
	PriorMonthsAccum             N      `json:"prior_months_accum"`
	PctOfPlanCommitPrior         N      `json:"prior_months_pct_commit"`
	PctOfPlanOperationalPrior    N      `json:"prior_months_pct_operational"`
	CurrentMonthPlanCommit       N      `json:"month_plan_commit"`
	CurrentMonthPlanOperational  N      `json:"month_plan_operational"`
	CurrentMonthActual           N      `json:"month_actual"`
	PctCurrentMonthCommit        N      `json:"month_pct_commit"`
	PctCurrentMonthOperational   N      `json:"month_pct_operational"`
	YearToDateAccum              N      `json:"ytd_accum"`
	YearToDateAccumSecondaryUnit N      `json:"ytd_accum_secondary"`
	PctYTDCommit                 N      `json:"ytd_pct_commit"`
	PctYTDOperational            N      `json:"ytd_pct_operational"`
	DailyPrimaryUnit             N      `json:"daily_primary"`
	DailySecondaryUnit           N      `json:"daily_secondary"`
	DataAsOf                     string `json:"data_as_of"`
}

func toDTO[N any](r report.Row, num func(float64) N) rowDTO[N] {
	return rowDTO[N]{
		GroupID:                      r.GroupID,
		Field:                        r.Name,
		PlanCommit:                   num(r.PlanCommit),
		PlanOperational:              num(r.PlanOperational),
		PriorMonthsAccum:             num(r.PriorMonthsAccum),
		PctOfPlanCommitPrior:         num(r.PctOfPlanCommitPrior),
		PctOfPlanOperationalPrior:    num(r.PctOfPlanOperationalPrior),
		CurrentMonthPlanCommit:       num(r.CurrentMonthPlanCommit),
		CurrentMonthPlanOperational:  num(r.CurrentMonthPlanOperational),
		CurrentMonthActual:           num(r.CurrentMonthActual),
		PctCurrentMonthCommit:        num(r.PctCurrentMonthCommit),
		PctCurrentMonthOperational:   num(r.PctCurrentMonthOperational),
		YearToDateAccum:              num(r.YearToDateAccum),
		YearToDateAccumSecondaryUnit: num(r.YearToDateAccumSecondaryUnit),
		PctYTDCommit:                 num(r.PctYTDCommit),
		PctYTDOperational:            num(r.PctYTDOperational),
		DailyPrimaryUnit:             num(r.DailyPrimaryUnit),
		DailySecondaryUnit:           num(r.DailySecondaryUnit),
		DataAsOf:                     report.AsOfLabel(r.AsOf),
	}
}

func fixed2(v float64) json.Number {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		v = 0
	}
	return json.Number(decimal.NewFromFloat(v).StringFixed(2))
}

func raw(v float64) float64 { return v }

// Rows renders rep for the wire according to its flavor.
func Rows(rep *report.Report, f report.Flavor) any {
	if f.FixedDecimals {
		out := make([]rowDTO[json.Number], len(rep.Rows))
		for i, r := range rep.Rows {
			out[i] = toDTO(r, fixed2)
		}
		return out
	}
	out := make([]rowDTO[float64], len(rep.Rows))
	for i, r := range rep.Rows {
		out[i] = toDTO(r, raw)
	}
	return out
}
