package serviceImp

import (
	"context"
	"fmt"
	"slices"
	"time"

	"go.uber.org/zap"

	"genreport/entities"
	"genreport/pkg/production/repository"
	"genreport/pkg/topology"
)

// Resolver finds, per leaf, the newest date at or before a request whose
// daily record is complete for the production type.
type Resolver struct {
	port repository.TimeSeriesPort
	log  *zap.Logger
}

func NewResolver(port repository.TimeSeriesPort, log *zap.Logger) *Resolver {
	return &Resolver{port: port, log: log}
}

// Resolve walks candidate dates newest first, rejecting partially ingested
// days. ok is false once candidates run out.
func (r *Resolver) Resolve(ctx context.Context, fieldID string, t entities.ProdType, requested time.Time) (time.Time, bool, error) {
	requested = entities.Day(requested)
	var rejected []time.Time
	for {
		d, err := r.port.MostRecentDateAtOrBefore(ctx, fieldID, t, requested, rejected)
		if err != nil {
			return time.Time{}, false, err
		}
		if d == nil {
			return time.Time{}, false, nil
		}
		cand := entities.Day(*d)
		if cand.After(requested) || slices.ContainsFunc(rejected, cand.Equal) {
			return time.Time{}, false, fmt.Errorf("resolve %s: store returned ineligible date %s", fieldID, cand.Format("2006-01-02"))
		}

		rec, err := r.port.SingleDayProduction(ctx, fieldID, t, cand)
		if err != nil {
			return time.Time{}, false, err
		}
		if rec != nil && rec.CompleteFor(t) {
			return cand, true, nil
		}
		r.log.Debug("incomplete daily record skipped",
			zap.String("field_id", fieldID),
			zap.String("prod_type", string(t)),
			zap.Time("date", cand))
		rejected = append(rejected, cand)
	}
}

// ResolveGroup is the latest resolved date over the group's members.
// Unresolvable members are ignored; ok is false when none resolve.
func (r *Resolver) ResolveGroup(ctx context.Context, g topology.Group, t entities.ProdType, requested time.Time) (time.Time, bool, error) {
	var (
		latest time.Time
		found  bool
	)
	for _, leaf := range g.Members {
		d, ok, err := r.Resolve(ctx, leaf, t, requested)
		if err != nil {
			return time.Time{}, false, err
		}
		if !ok {
			continue
		}
		if !found || d.After(latest) {
			latest, found = d, true
		}
	}
	return latest, found, nil
}
