package entities

// ProdType is both the production type of a daily record and the field_type
// of a registry entry.
type ProdType string

const (
	OilProd ProdType = "OIL_PROD"
	GasProd ProdType = "GAS_PROD"
	OilPlan ProdType = "OIL_PLAN"
	GasPlan ProdType = "GAS_PLAN"
)

func (t ProdType) Valid() bool {
	switch t {
	case OilProd, GasProd, OilPlan, GasPlan:
		return true
	}
	return false
}

// Field is immutable reference data: one row per (field_id, field_type).
type Field struct {
	FieldID          string   `gorm:"primaryKey;column:field_id" json:"field_id"`
	FieldType        ProdType `gorm:"primaryKey;column:field_type;size:10" json:"field_type"` // OIL_PROD|GAS_PROD|OIL_PLAN|GAS_PLAN
	FieldName        string   `gorm:"column:field_name;not null" json:"field_name"`
	Unit             string   `gorm:"column:unit" json:"unit"`
	ConversionFactor *float64 `gorm:"column:conversion_factor" json:"conversion_factor"`
}

func (Field) TableName() string { return "field" }
