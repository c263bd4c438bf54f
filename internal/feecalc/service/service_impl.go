package service

import (
	"context"
	"fmt"
	"math"

	feecalcdomain "github.com/packlane/packlane/internal/feecalc/domain"
	obsmetrics "github.com/packlane/packlane/internal/observability/metrics"
	ratetabledomain "github.com/packlane/packlane/internal/ratetable/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type Params struct {
	fx.In

	Log     *zap.Logger
	Rates   ratetabledomain.Service
	Metrics *obsmetrics.Metrics `optional:"true"`
}

type Service struct {
	log     *zap.Logger
	rates   ratetabledomain.Service
	metrics *obsmetrics.Metrics
}

func New(p Params) feecalcdomain.Service {
	return &Service{
		log:     p.Log.Named("feecalc.service"),
		rates:   p.Rates,
		metrics: p.Metrics,
	}
}

// CalculateFee applies the discount chain sequentially per material, so
// savings compound instead of summing. The order (recyclability, then
// postconsumer, then reusability) is part of the numeric contract.
func (s *Service) CalculateFee(
	ctx context.Context,
	materials []feecalcdomain.MaterialComponent,
	region string,
	volume float64,
) (*feecalcdomain.FeeCalculationResult, error) {
	if volume == 0 {
		volume = 1
	}

	if err := validateMaterials(materials, volume); err != nil {
		return nil, err
	}

	snapshot, regionDefaulted := s.rates.Region(region)

	result := &feecalcdomain.FeeCalculationResult{
		Region:          snapshot.Region,
		Volume:          volume,
		Breakdown:       make([]feecalcdomain.MaterialFee, 0, len(materials)),
		RegionDefaulted: regionDefaulted,
	}

	for _, m := range materials {
		lookup := s.rates.Resolve(region, m.Type)
		if lookup.Defaulted() {
			s.recordFallback(ctx, lookup.Source)
		}

		adjusted := lookup.Rate
		if m.Recyclable {
			adjusted *= 1 - snapshot.RecyclabilityDiscount
		}
		if m.PostconsumerContent > feecalcdomain.PostconsumerBonusThreshold {
			adjusted *= 1 - snapshot.PostconsumerDiscount
		}
		if m.Reusable {
			adjusted *= 1 - snapshot.ReusabilityDiscount
		}

		weightKg := m.WeightGrams / 1000
		fee := weightKg * adjusted * volume

		result.Breakdown = append(result.Breakdown, feecalcdomain.MaterialFee{
			Type:         m.Type,
			WeightGrams:  m.WeightGrams,
			Recyclable:   m.Recyclable,
			BaseRate:     lookup.Rate,
			AdjustedRate: adjusted,
			Fee:          fee,
			RateSource:   string(lookup.Source),
		})

		result.TotalWeightGrams += m.WeightGrams
		result.BaseFee += weightKg * lookup.Rate * volume
		result.TotalFee += fee
	}

	result.TotalDiscount = result.BaseFee - result.TotalFee

	if s.metrics != nil {
		s.metrics.RecordFeeCalculation(ctx, snapshot.Region)
	}

	return result, nil
}

// CalculateSingleFee is the legacy flat-rate path with its own rounding
// regime: weight 2dp, rate 4dp, fee 2dp, discount rounded separately.
// Do not unify with CalculateFee without re-verifying numeric outputs.
func (s *Service) CalculateSingleFee(
	ctx context.Context,
	weightKg, baseRate float64,
	recyclabilityRate *float64,
) (*feecalcdomain.SingleFeeResult, error) {
	_ = ctx

	var violations []string
	if weightKg < 0 {
		violations = append(violations, fmt.Sprintf("weight must be >= 0, got %v", weightKg))
	}
	if baseRate < 0 {
		violations = append(violations, fmt.Sprintf("base rate must be >= 0, got %v", baseRate))
	}
	if recyclabilityRate != nil && (*recyclabilityRate < 0 || *recyclabilityRate > 1) {
		violations = append(violations, fmt.Sprintf("recyclability rate must be in [0,1], got %v", *recyclabilityRate))
	}
	if err := feecalcdomain.NewInvalidInputError(violations); err != nil {
		return nil, err
	}

	weight := round(weightKg, 2)
	rate := baseRate
	if recyclabilityRate != nil {
		rate = rate * (1 - *recyclabilityRate)
	}
	rate = round(rate, 4)

	baseFee := round(weight*rate, 2)

	result := &feecalcdomain.SingleFeeResult{
		WeightKg: weight,
		BaseRate: rate,
		BaseFee:  baseFee,
		FinalFee: baseFee,
	}

	if weight >= feecalcdomain.VolumeDiscountThresholdKg {
		result.VolumeDiscountApplied = true
		result.VolumeDiscount = round(baseFee*feecalcdomain.VolumeDiscountRate, 2)
		result.FinalFee = baseFee - result.VolumeDiscount
	}

	return result, nil
}

func validateMaterials(materials []feecalcdomain.MaterialComponent, volume float64) error {
	var violations []string
	if volume < 0 {
		violations = append(violations, fmt.Sprintf("volume must be > 0, got %v", volume))
	}
	for i, m := range materials {
		if m.WeightGrams < 0 {
			violations = append(violations, fmt.Sprintf("materials[%d].weight_grams must be >= 0, got %v", i, m.WeightGrams))
		}
		if m.PostconsumerContent < 0 || m.PostconsumerContent > 1 {
			violations = append(violations, fmt.Sprintf("materials[%d].postconsumer_content must be in [0,1], got %v", i, m.PostconsumerContent))
		}
	}
	return feecalcdomain.NewInvalidInputError(violations)
}

func (s *Service) recordFallback(ctx context.Context, source ratetabledomain.LookupSource) {
	if s.metrics == nil {
		return
	}
	s.metrics.RecordRateFallback(ctx, string(source))
}

func round(v float64, decimals int) float64 {
	pow := math.Pow(10, float64(decimals))
	return math.Round(v*pow) / pow
}
