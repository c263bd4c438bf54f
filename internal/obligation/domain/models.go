package domain

import "fmt"

// Combinator selects how a jurisdiction's thresholds combine.
type Combinator string

const (
	CombinatorAlways Combinator = "ALWAYS"
	CombinatorOr     Combinator = "OR"
	CombinatorAnd    Combinator = "AND"
)

// JurisdictionObligationRule is one row of the static obligation table.
// The thresholds are nullable: a program may define revenue only,
// tonnage only, both, or neither.
type JurisdictionObligationRule struct {
	JurisdictionCode string     `json:"jurisdiction_code" gorm:"column:jurisdiction_code;primaryKey"`
	RevenueThreshold *float64   `json:"revenue_threshold" gorm:"column:revenue_threshold"`
	TonnageThreshold *float64   `json:"tonnage_threshold" gorm:"column:tonnage_threshold"`
	Combinator       Combinator `json:"combinator" gorm:"column:combinator"`
	ModelType        string     `json:"model_type" gorm:"column:model_type"`
}

func (JurisdictionObligationRule) TableName() string {
	return "obligation_rules"
}

// Determination is the outcome of an obligation evaluation. Reason
// records which condition produced the decision and is part of the
// audit trail, not just display text.
type Determination struct {
	JurisdictionCode string `json:"jurisdiction_code"`
	Obligated        bool   `json:"obligated"`
	Reason           string `json:"reason"`
}

type UnsupportedJurisdictionError struct {
	Code string
}

func (e *UnsupportedJurisdictionError) Error() string {
	return fmt.Sprintf("unsupported jurisdiction %q", e.Code)
}
