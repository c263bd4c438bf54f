package service

import (
	"context"
	"testing"

	feecalcdomain "github.com/packlane/packlane/internal/feecalc/domain"
	ratetableservice "github.com/packlane/packlane/internal/ratetable/service"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func newService(t *testing.T) feecalcdomain.Service {
	t.Helper()
	rates := ratetableservice.New(ratetableservice.Params{Log: zap.NewNop()})
	return New(Params{Log: zap.NewNop(), Rates: rates})
}

func TestCalculateFee_OregonRecyclablePET(t *testing.T) {
	svc := newService(t)

	result, err := svc.CalculateFee(context.Background(), []feecalcdomain.MaterialComponent{
		{Type: "Plastic (PET)", WeightGrams: 2000, Recyclable: true},
	}, "oregon", 1)
	assert.NoError(t, err)

	// 0.45 base rate, 25% recyclability discount: 2kg * 0.3375 = 0.675.
	assert.Equal(t, "oregon", result.Region)
	assert.False(t, result.RegionDefaulted)
	assert.Len(t, result.Breakdown, 1)
	assert.InDelta(t, 0.45, result.Breakdown[0].BaseRate, 1e-9)
	assert.InDelta(t, 0.3375, result.Breakdown[0].AdjustedRate, 1e-9)
	assert.InDelta(t, 0.675, result.TotalFee, 1e-9)
	assert.InDelta(t, 0.9, result.BaseFee, 1e-9)
	assert.InDelta(t, 0.225, result.TotalDiscount, 1e-9)
}

func TestCalculateFee_Deterministic(t *testing.T) {
	svc := newService(t)
	materials := []feecalcdomain.MaterialComponent{
		{Type: "Glass", WeightGrams: 350.5, Recyclable: true, PostconsumerContent: 0.4},
		{Type: "Cardboard", WeightGrams: 120, Reusable: true},
	}

	first, err := svc.CalculateFee(context.Background(), materials, "california", 12)
	assert.NoError(t, err)
	second, err := svc.CalculateFee(context.Background(), materials, "california", 12)
	assert.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestCalculateFee_DiscountsCompound(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	base, err := svc.CalculateFee(ctx, []feecalcdomain.MaterialComponent{
		{Type: "Plastic (HDPE)", WeightGrams: 1000},
	}, "oregon", 1)
	assert.NoError(t, err)

	all, err := svc.CalculateFee(ctx, []feecalcdomain.MaterialComponent{
		{Type: "Plastic (HDPE)", WeightGrams: 1000, Recyclable: true, Reusable: true, PostconsumerContent: 0.5},
	}, "oregon", 1)
	assert.NoError(t, err)

	// Sequential application: 0.42 * 0.75 * 0.85 * 0.70.
	assert.InDelta(t, 0.42, base.TotalFee, 1e-9)
	assert.InDelta(t, 0.42*0.75*0.85*0.70, all.TotalFee, 1e-9)
	assert.Less(t, all.TotalFee, base.TotalFee)
	assert.InDelta(t, base.TotalFee-all.TotalFee, all.TotalDiscount, 1e-9)
}

func TestCalculateFee_PostconsumerThresholdIsExclusive(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	at, err := svc.CalculateFee(ctx, []feecalcdomain.MaterialComponent{
		{Type: "Paper", WeightGrams: 1000, PostconsumerContent: 0.30},
	}, "oregon", 1)
	assert.NoError(t, err)
	above, err := svc.CalculateFee(ctx, []feecalcdomain.MaterialComponent{
		{Type: "Paper", WeightGrams: 1000, PostconsumerContent: 0.31},
	}, "oregon", 1)
	assert.NoError(t, err)

	// Equal to the threshold earns no bonus; strictly above does.
	assert.InDelta(t, at.BaseFee, at.TotalFee, 1e-9)
	assert.Less(t, above.TotalFee, at.TotalFee)
}

func TestCalculateFee_UnknownRegionAndMaterialDefault(t *testing.T) {
	svc := newService(t)

	result, err := svc.CalculateFee(context.Background(), []feecalcdomain.MaterialComponent{
		{Type: "Unobtainium Wrap", WeightGrams: 1000},
	}, "atlantis", 1)
	assert.NoError(t, err)

	assert.True(t, result.RegionDefaulted)
	assert.Equal(t, "oregon", result.Region)
	assert.Equal(t, "defaulted_material", result.Breakdown[0].RateSource)
	assert.InDelta(t, 0.50, result.Breakdown[0].BaseRate, 1e-9)
	assert.InDelta(t, 0.50, result.TotalFee, 1e-9)
}

func TestCalculateFee_ZeroVolumeDefaultsToOne(t *testing.T) {
	svc := newService(t)

	result, err := svc.CalculateFee(context.Background(), []feecalcdomain.MaterialComponent{
		{Type: "Aluminum", WeightGrams: 500},
	}, "oregon", 0)
	assert.NoError(t, err)
	assert.Equal(t, float64(1), result.Volume)
	assert.InDelta(t, 0.5*0.18, result.TotalFee, 1e-9)
}

func TestCalculateFee_EmptyMaterials(t *testing.T) {
	svc := newService(t)

	result, err := svc.CalculateFee(context.Background(), nil, "oregon", 3)
	assert.NoError(t, err)
	assert.Zero(t, result.TotalFee)
	assert.Zero(t, result.TotalDiscount)
	assert.Empty(t, result.Breakdown)
}

func TestCalculateFee_InvalidInput(t *testing.T) {
	svc := newService(t)

	_, err := svc.CalculateFee(context.Background(), []feecalcdomain.MaterialComponent{
		{Type: "Glass", WeightGrams: -1},
		{Type: "Paper", WeightGrams: 10, PostconsumerContent: 1.3},
	}, "oregon", -2)
	assert.ErrorIs(t, err, feecalcdomain.ErrInvalidInput)

	var detail *feecalcdomain.InvalidInputError
	assert.ErrorAs(t, err, &detail)
	assert.Len(t, detail.Violations, 3)
}

func TestCalculateSingleFee_Rounding(t *testing.T) {
	svc := newService(t)

	result, err := svc.CalculateSingleFee(context.Background(), 10.128, 0.43219, nil)
	assert.NoError(t, err)
	assert.InDelta(t, 10.13, result.WeightKg, 1e-9)
	assert.InDelta(t, 0.4322, result.BaseRate, 1e-9)
	assert.InDelta(t, 4.38, result.BaseFee, 1e-9)
	assert.False(t, result.VolumeDiscountApplied)
	assert.Equal(t, result.BaseFee, result.FinalFee)
}

func TestCalculateSingleFee_RecyclabilityRate(t *testing.T) {
	svc := newService(t)

	rr := 0.25
	result, err := svc.CalculateSingleFee(context.Background(), 100, 0.45, &rr)
	assert.NoError(t, err)
	assert.InDelta(t, 0.3375, result.BaseRate, 1e-9)
	assert.InDelta(t, 33.75, result.FinalFee, 1e-9)
}

func TestCalculateSingleFee_VolumeDiscountBoundary(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	below, err := svc.CalculateSingleFee(ctx, 999.99, 0.50, nil)
	assert.NoError(t, err)
	assert.False(t, below.VolumeDiscountApplied)
	assert.Zero(t, below.VolumeDiscount)

	at, err := svc.CalculateSingleFee(ctx, 1000, 0.50, nil)
	assert.NoError(t, err)
	assert.True(t, at.VolumeDiscountApplied)
	assert.InDelta(t, 500.00, at.BaseFee, 1e-9)
	assert.InDelta(t, 25.00, at.VolumeDiscount, 1e-9)
	assert.InDelta(t, 475.00, at.FinalFee, 1e-9)
}

func TestCalculateSingleFee_InvalidInput(t *testing.T) {
	svc := newService(t)

	rr := 1.5
	_, err := svc.CalculateSingleFee(context.Background(), -1, -0.2, &rr)
	assert.ErrorIs(t, err, feecalcdomain.ErrInvalidInput)

	var detail *feecalcdomain.InvalidInputError
	assert.ErrorAs(t, err, &detail)
	assert.Len(t, detail.Violations, 3)
}
