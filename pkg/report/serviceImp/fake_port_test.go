package serviceImp

import (
	"context"
	"slices"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"genreport/entities"
)

// memPort is an in-memory TimeSeriesPort with SQL SUM semantics: a sum with
// no non-null contributors is nil.
type memPort struct {
	daily []entities.DailyProd
	plans []entities.PlanProd
	fail  error
	calls atomic.Int64
}

func fp(v float64) *float64 { return &v }

func d(y int, m time.Month, dd int) time.Time { return time.Date(y, m, dd, 0, 0, 0, 0, time.UTC) }

func nopLog() *zap.Logger { return zap.NewNop() }

func within(t, from, to time.Time) bool { return !t.Before(from) && !t.After(to) }

func (p *memPort) oil(field string, day time.Time, ton, bbls *float64) *memPort {
	p.daily = append(p.daily, entities.DailyProd{FieldID: field, ReportDate: day, ProdType: entities.OilProd, Amounts: entities.Amounts{ProdTon: ton, ProdBbls: bbls}})
	return p
}

func (p *memPort) gas(field string, day time.Time, m3, ft3 *float64) *memPort {
	p.daily = append(p.daily, entities.DailyProd{FieldID: field, ReportDate: day, ProdType: entities.GasProd, Amounts: entities.Amounts{ProdM3: m3, ProdFt3: ft3}})
	return p
}

func (p *memPort) plan(field, planType string, day time.Time, a entities.Amounts) *memPort {
	p.plans = append(p.plans, entities.PlanProd{FieldID: field, ReportDate: day, PlanType: planType, Amounts: a})
	return p
}

func (p *memPort) SumProduction(_ context.Context, fieldID string, t entities.ProdType, unit entities.Unit, from, to time.Time) (*float64, error) {
	p.calls.Add(1)
	if p.fail != nil {
		return nil, p.fail
	}
	var sum *float64
	for _, r := range p.daily {
		if r.FieldID != fieldID || r.ProdType != t || !within(r.ReportDate, from, to) {
			continue
		}
		if v := r.Get(unit); v != nil {
			if sum == nil {
				sum = fp(0)
			}
			*sum += *v
		}
	}
	return sum, nil
}

func (p *memPort) SingleDayProduction(_ context.Context, fieldID string, t entities.ProdType, day time.Time) (*entities.Amounts, error) {
	p.calls.Add(1)
	if p.fail != nil {
		return nil, p.fail
	}
	for _, r := range p.daily {
		if r.FieldID == fieldID && r.ProdType == t && r.ReportDate.Equal(day) {
			a := r.Amounts
			return &a, nil
		}
	}
	return nil, nil
}

func (p *memPort) MostRecentDateAtOrBefore(_ context.Context, fieldID string, t entities.ProdType, day time.Time, excluded []time.Time) (*time.Time, error) {
	p.calls.Add(1)
	if p.fail != nil {
		return nil, p.fail
	}
	var best *time.Time
	for _, r := range p.daily {
		if r.FieldID != fieldID || r.ProdType != t || r.ReportDate.After(day) {
			continue
		}
		if slices.ContainsFunc(excluded, r.ReportDate.Equal) {
			continue
		}
		if best == nil || r.ReportDate.After(*best) {
			rd := r.ReportDate
			best = &rd
		}
	}
	return best, nil
}

func (p *memPort) SumPlan(_ context.Context, fieldID, planType string, unit entities.Unit, from, to time.Time) (*float64, error) {
	p.calls.Add(1)
	if p.fail != nil {
		return nil, p.fail
	}
	var sum *float64
	for _, r := range p.plans {
		if r.FieldID != fieldID || r.PlanType != planType || !within(r.ReportDate, from, to) {
			continue
		}
		if v := r.Get(unit); v != nil {
			if sum == nil {
				sum = fp(0)
			}
			*sum += *v
		}
	}
	return sum, nil
}
