package domain

// ComplianceScoreFactors are the five 0-100 inputs to the scorer.
// Out-of-range values are clamped, not rejected.
type ComplianceScoreFactors struct {
	DataCompleteness       float64 `json:"data_completeness"`
	DeadlineAdherence      float64 `json:"deadline_adherence"`
	MaterialClassification float64 `json:"material_classification"`
	DocumentationQuality   float64 `json:"documentation_quality"`
	FeePaymentStatus       float64 `json:"fee_payment_status"`
}

// FactorBreakdown holds the rounded points each factor contributed.
// Each entry is rounded independently, so the entries may not sum to
// Score exactly; clients display them as-is.
type FactorBreakdown struct {
	DataCompleteness       int `json:"data_completeness"`
	DeadlineAdherence      int `json:"deadline_adherence"`
	MaterialClassification int `json:"material_classification"`
	DocumentationQuality   int `json:"documentation_quality"`
	FeePaymentStatus       int `json:"fee_payment_status"`
}

type ComplianceCalculation struct {
	Score     int             `json:"score"`
	Grade     string          `json:"grade"`
	Breakdown FactorBreakdown `json:"breakdown"`
}

// Service aggregates compliance factors into a score and letter grade.
type Service interface {
	Score(factors ComplianceScoreFactors) *ComplianceCalculation
}
