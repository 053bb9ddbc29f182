package repository

import (
	"context"
	"time"

	"genreport/entities"
)

// TimeSeriesPort is read-only access to daily production and plan values.
// Missing data is reported as nil with a nil error; an error means the store
// itself failed.
type TimeSeriesPort interface {
	// SumProduction sums unit over [from, to] inclusive.
	SumProduction(ctx context.Context, fieldID string, t entities.ProdType, unit entities.Unit, from, to time.Time) (*float64, error)
	SingleDayProduction(ctx context.Context, fieldID string, t entities.ProdType, day time.Time) (*entities.Amounts, error)
	MostRecentDateAtOrBefore(ctx context.Context, fieldID string, t entities.ProdType, day time.Time, excluded []time.Time) (*time.Time, error)
	// SumPlan sums unit over [from, to] inclusive.
	SumPlan(ctx context.Context, fieldID, planType string, unit entities.Unit, from, to time.Time) (*float64, error)
}
