package domain

// Service applies sustainability-based adjustments to an already
// computed base fee.
type Service interface {
	Modulate(baseFee float64, factors EcoModulationFactors) *EcoModulationResult
}
