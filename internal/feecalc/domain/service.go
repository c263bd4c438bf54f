package domain

import "context"

type Service interface {
	// CalculateFee computes the per-material fee breakdown for one product
	// in one region. volume <= 0 defaults to 1.
	CalculateFee(ctx context.Context, materials []MaterialComponent, region string, volume float64) (*FeeCalculationResult, error)

	// CalculateSingleFee is the legacy flat-rate path. recyclabilityRate,
	// when non-nil, must be in [0,1] and is applied before the flat volume
	// discount. Weight is in kg here, not grams.
	CalculateSingleFee(ctx context.Context, weightKg, baseRate float64, recyclabilityRate *float64) (*SingleFeeResult, error)
}
