package report

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"genreport/entities"
)

var (
	ErrInvalidDate   = errors.New("invalid report date")
	ErrUnknownFlavor = errors.New("unknown report flavor")
	ErrConnect       = errors.New("cannot connect to production store")
)

// Flavor fixes the production type, plan series, units and scale factors of
// one report kind.
type Flavor struct {
	Name            string
	ProdType        entities.ProdType
	CommitPlan      string // commitment plan type
	OperationalPlan string // operational plan type
	PlanUnit        entities.Unit
	PrimaryUnit     entities.Unit
	SecondaryUnit   entities.Unit

	// ActualScale divides summed daily amounts into report units.
	ActualScale float64
	// PlanYearScale multiplies the annual plan into ActualScale units before
	// the prior-months and year-to-date ratios.
	PlanYearScale float64
	// PlanMonthScale multiplies the monthly plan into report units.
	PlanMonthScale float64

	// FixedDecimals selects 2-decimal formatting on the wire.
	FixedDecimals bool
}

// Oil: daily records are tonnes, plans are million tonnes, report columns
// are thousand tonnes.
var Oil = Flavor{
	Name:            "oil",
	ProdType:        entities.OilProd,
	CommitPlan:      "KHSLCPGiaoOil",
	OperationalPlan: "KHQTOIL",
	PlanUnit:        entities.UnitTon,
	PrimaryUnit:     entities.UnitTon,
	SecondaryUnit:   entities.UnitBbls,
	ActualScale:     1000,
	PlanYearScale:   1000,
	PlanMonthScale:  1000,
	FixedDecimals:   true,
}

// Gas: plans and daily records share units, nothing is rescaled.
var Gas = Flavor{
	Name:            "gas",
	ProdType:        entities.GasProd,
	CommitPlan:      "KHSLCPGiaoGas",
	OperationalPlan: "KHQTGAS",
	PlanUnit:        entities.UnitM3,
	PrimaryUnit:     entities.UnitM3,
	SecondaryUnit:   entities.UnitFt3,
	ActualScale:     1,
	PlanYearScale:   1,
	PlanMonthScale:  1,
}

var Flavors = []Flavor{Oil, Gas}

func FlavorByName(name string) (Flavor, error) {
	for _, f := range Flavors {
		if f.Name == name {
			return f, nil
		}
	}
	return Flavor{}, fmt.Errorf("%w: %q", ErrUnknownFlavor, name)
}

// Row is one report line. Column order follows the printed report.
type Row struct {
	GroupID string
	Name    string

	PlanCommit      float64
	PlanOperational float64

	PriorMonthsAccum          float64
	PctOfPlanCommitPrior      float64
	PctOfPlanOperationalPrior float64

	CurrentMonthPlanCommit      float64
	CurrentMonthPlanOperational float64
	CurrentMonthActual          float64
	PctCurrentMonthCommit       float64
	PctCurrentMonthOperational  float64

	YearToDateAccum              float64
	YearToDateAccumSecondaryUnit float64
	PctYTDCommit                 float64
	PctYTDOperational            float64

	DailyPrimaryUnit   float64
	DailySecondaryUnit float64

	// AsOf is the date whose data backs the row.
	AsOf time.Time
}

type Report struct {
	Flavor    string
	Requested time.Time
	Rows      []Row
}

// Ratio divides, yielding 0 instead of an error, Inf or NaN when den is zero
// or not a number.
func Ratio(num, den float64) float64 {
	if den == 0 || math.IsNaN(den) || math.IsNaN(num) {
		return 0
	}
	return num / den
}

// Value reads a nullable amount, treating nil as zero.
func Value(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}

var dateLayouts = []string{"2006/01/02", "2006-01-02"}

// ParseDate accepts YYYY/MM/DD and YYYY-MM-DD.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return entities.Day(t), nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q, want YYYY/MM/DD", ErrInvalidDate, s)
}

// AsOfLabel formats the data as-of stamp as day/month/year.
func AsOfLabel(t time.Time) string { return t.Format("02/01/2006") }
