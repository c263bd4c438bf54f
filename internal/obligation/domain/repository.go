package domain

import "context"

type Repository interface {
	ListRules(ctx context.Context) ([]JurisdictionObligationRule, error)
}

// Service evaluates whether a producer is obligated under a
// jurisdiction's program.
type Service interface {
	Evaluate(ctx context.Context, jurisdictionCode string, annualRevenue, annualTonnage float64) (*Determination, error)
	Rules() []JurisdictionObligationRule
}
