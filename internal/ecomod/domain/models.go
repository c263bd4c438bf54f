package domain

// EcoModulationFactors is the caller-owned sustainability profile of a
// product. CarbonFootprint is on a 0-10 scale with 5 as the neutral
// midpoint; the four fraction fields are 0-1.
type EcoModulationFactors struct {
	CarbonFootprint  float64  `json:"carbon_footprint"`
	RecycledContent  float64  `json:"recycled_content"`
	Biodegradability float64  `json:"biodegradability"`
	Reusability      float64  `json:"reusability"`
	LocalSourcing    float64  `json:"local_sourcing"`
	Certifications   []string `json:"certifications"`
}

// AdjustmentBreakdown carries the six adjustment terms in currency
// units. Negative values reduce the fee.
type AdjustmentBreakdown struct {
	CarbonFootprint  float64 `json:"carbon_footprint"`
	RecycledContent  float64 `json:"recycled_content"`
	Biodegradability float64 `json:"biodegradability"`
	Reusability      float64 `json:"reusability"`
	LocalSourcing    float64 `json:"local_sourcing"`
	Certifications   float64 `json:"certifications"`
}

type EcoModulationResult struct {
	OriginalFee          float64             `json:"original_fee"`
	ModulatedFee         float64             `json:"modulated_fee"`
	TotalAdjustment      float64             `json:"total_adjustment"`
	AdjustmentPercentage float64             `json:"adjustment_percentage"`
	Breakdown            AdjustmentBreakdown `json:"breakdown"`
	SustainabilityScore  int                 `json:"sustainability_score"`
	Recommendations      []string            `json:"recommendations,omitempty"`
}
