package domain

// DefaultObligationRules mirrors the seeded obligation_rules table so
// the evaluator works without a database. Thresholds are annual gross
// revenue in the program currency and annual packaging tonnage.
func DefaultObligationRules() []JurisdictionObligationRule {
	return []JurisdictionObligationRule{
		{JurisdictionCode: "oregon", RevenueThreshold: f(5_000_000), TonnageThreshold: f(1), Combinator: CombinatorOr, ModelType: "shared responsibility"},
		{JurisdictionCode: "california", RevenueThreshold: f(1_000_000), Combinator: CombinatorOr, ModelType: "full EPR"},
		{JurisdictionCode: "colorado", RevenueThreshold: f(5_000_000), TonnageThreshold: f(1), Combinator: CombinatorOr, ModelType: "full EPR"},
		{JurisdictionCode: "maine", Combinator: CombinatorAlways, ModelType: "municipal reimbursement"},
		{JurisdictionCode: "maryland", RevenueThreshold: f(1_000_000), Combinator: CombinatorOr, ModelType: "shared responsibility"},
		{JurisdictionCode: "minnesota", RevenueThreshold: f(2_000_000), Combinator: CombinatorAnd, ModelType: "full EPR"},
		{JurisdictionCode: "washington", RevenueThreshold: f(5_000_000), TonnageThreshold: f(1), Combinator: CombinatorAnd, ModelType: "shared responsibility"},
		{JurisdictionCode: "quebec", Combinator: CombinatorAlways, ModelType: "full EPR"},
	}
}

func f(v float64) *float64 { return &v }
