// Package domain contains the regional rate table models and lookup types.
package domain

import "time"

// RateTable is the per-jurisdiction discount configuration.
type RateTable struct {
	Region                string    `json:"region" gorm:"type:text;primaryKey;column:region"`
	CurrencyCode          string    `json:"currency_code" gorm:"type:char(3);not null"`
	RecyclabilityDiscount float64   `json:"recyclability_discount" gorm:"not null"`
	PostconsumerDiscount  float64   `json:"postconsumer_discount" gorm:"not null"`
	ReusabilityDiscount   float64   `json:"reusability_discount" gorm:"not null"`
	CreatedAt             time.Time `json:"created_at,omitempty" gorm:"not null;default:CURRENT_TIMESTAMP"`
}

func (RateTable) TableName() string { return "rate_tables" }

// MaterialRate is one material's base rate within a region, in currency per kg.
type MaterialRate struct {
	Region       string    `json:"region" gorm:"type:text;primaryKey;column:region"`
	MaterialCode string    `json:"material_code" gorm:"type:text;primaryKey;column:material_code"`
	MaterialName string    `json:"material_name" gorm:"type:text;not null"`
	RatePerKg    float64   `json:"rate_per_kg" gorm:"not null"`
	CreatedAt    time.Time `json:"created_at,omitempty" gorm:"not null;default:CURRENT_TIMESTAMP"`
}

func (MaterialRate) TableName() string { return "material_rates" }

// RegionalRates is the immutable in-memory snapshot for one region.
type RegionalRates struct {
	Region                string
	CurrencyCode          string
	RecyclabilityDiscount float64
	PostconsumerDiscount  float64
	ReusabilityDiscount   float64

	// Rates keys are slug-normalized material codes.
	Rates map[string]float64
}

// LookupSource tags how a rate was resolved, so callers and tests can tell
// an exact match from a silent fallback.
type LookupSource string

const (
	LookupFound             LookupSource = "found"
	LookupDefaultedMaterial LookupSource = "defaulted_material"
	LookupDefaultedRegion   LookupSource = "defaulted_region"
)

// Lookup is the tagged result of a rate resolution.
type Lookup struct {
	Rate   float64
	Source LookupSource
	// Region is the region the rate actually came from. Differs from the
	// requested region only when Source is LookupDefaultedRegion.
	Region string
}

// Defaulted reports whether any fallback was applied.
func (l Lookup) Defaulted() bool { return l.Source != LookupFound }

// DefaultMaterialRate is applied when a material code is absent from the
// table, keeping fee computation total for user-defined material types.
const DefaultMaterialRate = 0.50
