package entities

import "time"

// Unit names one of the four amount columns shared by daily and plan tables.
type Unit string

const (
	UnitTon  Unit = "prod_ton"
	UnitBbls Unit = "prod_bbls"
	UnitM3   Unit = "prod_m3"
	UnitFt3  Unit = "prod_ft3"
)

func (u Unit) Valid() bool {
	switch u {
	case UnitTon, UnitBbls, UnitM3, UnitFt3:
		return true
	}
	return false
}

// Amounts holds one record's values. nil means "not yet reported", which is
// not the same as zero.
type Amounts struct {
	ProdTon  *float64 `gorm:"column:prod_ton" json:"prod_ton"`
	ProdBbls *float64 `gorm:"column:prod_bbls" json:"prod_bbls"`
	ProdM3   *float64 `gorm:"column:prod_m3" json:"prod_m3"`
	ProdFt3  *float64 `gorm:"column:prod_ft3" json:"prod_ft3"`
}

func (a Amounts) Get(u Unit) *float64 {
	switch u {
	case UnitTon:
		return a.ProdTon
	case UnitBbls:
		return a.ProdBbls
	case UnitM3:
		return a.ProdM3
	case UnitFt3:
		return a.ProdFt3
	}
	return nil
}

// CompleteFor reports whether the unit pair required by t is present:
// ton+bbls for oil, m3+ft3 for gas.
func (a Amounts) CompleteFor(t ProdType) bool {
	switch t {
	case OilProd, OilPlan:
		return a.ProdTon != nil && a.ProdBbls != nil
	case GasProd, GasPlan:
		return a.ProdM3 != nil && a.ProdFt3 != nil
	}
	return false
}

// DailyProd is one field's production for one day.
type DailyProd struct {
	FieldID    string    `gorm:"primaryKey;column:field_id" json:"field_id"`
	ReportDate time.Time `gorm:"primaryKey;column:report_date;type:date" json:"report_date"`
	ProdType   ProdType  `gorm:"primaryKey;column:prod_type" json:"prod_type"`
	Amounts    `gorm:"embedded"`
}

func (DailyProd) TableName() string { return "daily_prod" }

// PlanProd is a planned target for the period starting at ReportDate.
type PlanProd struct {
	FieldID    string    `gorm:"primaryKey;column:field_id" json:"field_id"`
	ReportDate time.Time `gorm:"primaryKey;column:report_date;type:date" json:"report_date"`
	PlanType   string    `gorm:"primaryKey;column:plan_type;size:20" json:"plan_type"`
	Amounts    `gorm:"embedded"`
}

func (PlanProd) TableName() string { return "plan_prod" }

// Day truncates t to midnight UTC, the form every report date is stored and
// compared in.
func Day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
