package domain

import "context"

// Jurisdiction is the read-only metadata surfaced to UI selectors.
type Jurisdiction struct {
	Code      string `json:"code" gorm:"column:code;primaryKey"`
	Name      string `json:"name" gorm:"column:name"`
	ModelType string `json:"model_type" gorm:"column:model_type"`
}

func (Jurisdiction) TableName() string {
	return "jurisdictions"
}

// DefaultJurisdictions is the hardcoded fallback used when the backing
// source is unavailable.
func DefaultJurisdictions() []Jurisdiction {
	return []Jurisdiction{
		{Code: "california", Name: "California", ModelType: "full EPR"},
		{Code: "colorado", Name: "Colorado", ModelType: "full EPR"},
		{Code: "maine", Name: "Maine", ModelType: "municipal reimbursement"},
		{Code: "maryland", Name: "Maryland", ModelType: "shared responsibility"},
		{Code: "minnesota", Name: "Minnesota", ModelType: "full EPR"},
		{Code: "oregon", Name: "Oregon", ModelType: "shared responsibility"},
		{Code: "quebec", Name: "Quebec", ModelType: "full EPR"},
		{Code: "washington", Name: "Washington", ModelType: "shared responsibility"},
	}
}

type Repository interface {
	List(ctx context.Context) ([]Jurisdiction, error)
}

type Service interface {
	List(ctx context.Context) []Jurisdiction
}
