package repositoryImp

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"genreport/entities"
	"genreport/pkg/production/repository"
)

type productionRepo struct{ db *gorm.DB }

func New(db *gorm.DB) repository.TimeSeriesPort { return &productionRepo{db} }

func sumColumn(unit entities.Unit) (string, error) {
	if !unit.Valid() {
		return "", fmt.Errorf("unknown unit %q", unit)
	}
	return "SUM(" + string(unit) + ")", nil
}

func scanSum(q *gorm.DB) (*float64, error) {
	var v sql.NullFloat64
	if err := q.Row().Scan(&v); err != nil {
		return nil, err
	}
	if !v.Valid {
		return nil, nil
	}
	return &v.Float64, nil
}

func (r *productionRepo) SumProduction(ctx context.Context, fieldID string, t entities.ProdType, unit entities.Unit, from, to time.Time) (*float64, error) {
	col, err := sumColumn(unit)
	if err != nil {
		return nil, err
	}
	q := r.db.WithContext(ctx).Model(&entities.DailyProd{}).
		Select(col).
		Where("field_id = ? AND prod_type = ? AND report_date BETWEEN ? AND ?", fieldID, t, entities.Day(from), entities.Day(to))
	v, err := scanSum(q)
	if err != nil {
		return nil, fmt.Errorf("sum %s for %s: %w", unit, fieldID, err)
	}
	return v, nil
}

func (r *productionRepo) SingleDayProduction(ctx context.Context, fieldID string, t entities.ProdType, day time.Time) (*entities.Amounts, error) {
	var rec entities.DailyProd
	err := r.db.WithContext(ctx).
		Where("field_id = ? AND prod_type = ? AND report_date = ?", fieldID, t, entities.Day(day)).
		First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("daily %s on %s: %w", fieldID, day.Format("2006-01-02"), err)
	}
	return &rec.Amounts, nil
}

func (r *productionRepo) MostRecentDateAtOrBefore(ctx context.Context, fieldID string, t entities.ProdType, day time.Time, excluded []time.Time) (*time.Time, error) {
	q := r.db.WithContext(ctx).Model(&entities.DailyProd{}).
		Select("report_date").
		Where("field_id = ? AND prod_type = ? AND report_date <= ?", fieldID, t, entities.Day(day))
	if len(excluded) > 0 {
		days := make([]time.Time, len(excluded))
		for i, d := range excluded {
			days[i] = entities.Day(d)
		}
		q = q.Where("report_date NOT IN ?", days)
	}

	var rec entities.DailyProd
	err := q.Order("report_date DESC").Limit(1).Take(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("latest date for %s: %w", fieldID, err)
	}
	d := entities.Day(rec.ReportDate)
	return &d, nil
}

func (r *productionRepo) SumPlan(ctx context.Context, fieldID, planType string, unit entities.Unit, from, to time.Time) (*float64, error) {
	col, err := sumColumn(unit)
	if err != nil {
		return nil, err
	}
	q := r.db.WithContext(ctx).Model(&entities.PlanProd{}).
		Select(col).
		Where("field_id = ? AND plan_type = ? AND report_date BETWEEN ? AND ?", fieldID, planType, entities.Day(from), entities.Day(to))
	v, err := scanSum(q)
	if err != nil {
		return nil, fmt.Errorf("plan %s %s for %s: %w", planType, unit, fieldID, err)
	}
	return v, nil
}
