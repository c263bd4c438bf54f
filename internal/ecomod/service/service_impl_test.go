package service

import (
	"testing"

	"github.com/packlane/packlane/internal/config"
	ecomoddomain "github.com/packlane/packlane/internal/ecomod/domain"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func newService(t *testing.T) ecomoddomain.Service {
	t.Helper()
	holder := config.StaticEcoModulationConfigHolder(config.DefaultEcoModulationConfig())
	return New(Params{Log: zap.NewNop(), Config: holder})
}

func TestModulate_NeutralFactors(t *testing.T) {
	svc := newService(t)

	result := svc.Modulate(100, ecomoddomain.EcoModulationFactors{CarbonFootprint: 5})
	assert.InDelta(t, 100, result.OriginalFee, 1e-9)
	assert.InDelta(t, 0, result.Breakdown.CarbonFootprint, 1e-9)
	assert.InDelta(t, 100, result.ModulatedFee, 1e-9)
	assert.InDelta(t, 0, result.AdjustmentPercentage, 1e-9)
}

func TestModulate_CarbonDirection(t *testing.T) {
	svc := newService(t)

	low := svc.Modulate(100, ecomoddomain.EcoModulationFactors{CarbonFootprint: 0})
	high := svc.Modulate(100, ecomoddomain.EcoModulationFactors{CarbonFootprint: 10})

	// A clean footprint earns up to a 15% reduction, a dirty one up to
	// a 15% surcharge.
	assert.InDelta(t, -15, low.Breakdown.CarbonFootprint, 1e-9)
	assert.InDelta(t, 15, high.Breakdown.CarbonFootprint, 1e-9)
	assert.InDelta(t, 85, low.ModulatedFee, 1e-9)
	assert.InDelta(t, 115, high.ModulatedFee, 1e-9)
}

func TestModulate_LinearTerms(t *testing.T) {
	svc := newService(t)

	result := svc.Modulate(100, ecomoddomain.EcoModulationFactors{
		CarbonFootprint:  5,
		RecycledContent:  1,
		Biodegradability: 1,
		Reusability:      1,
		LocalSourcing:    1,
	})

	assert.InDelta(t, -20, result.Breakdown.RecycledContent, 1e-9)
	assert.InDelta(t, -10, result.Breakdown.Biodegradability, 1e-9)
	assert.InDelta(t, -25, result.Breakdown.Reusability, 1e-9)
	assert.InDelta(t, -8, result.Breakdown.LocalSourcing, 1e-9)
	assert.InDelta(t, -63, result.TotalAdjustment, 1e-9)
	assert.InDelta(t, 37, result.ModulatedFee, 1e-9)
	assert.InDelta(t, -63, result.AdjustmentPercentage, 1e-9)
}

func TestModulate_CertificationCap(t *testing.T) {
	svc := newService(t)

	all := []string{
		"FSC", "CRADLE_TO_CRADLE", "ENERGY_STAR", "EU_ECOLABEL",
		"BLUE_ANGEL", "GREEN_SEAL", "OK_COMPOST", "RECYCLED_CONTENT",
	}
	result := svc.Modulate(100, ecomoddomain.EcoModulationFactors{
		CarbonFootprint: 5,
		Certifications:  all,
	})

	// Bonuses sum to 0.42 but are capped at 15% of the fee.
	assert.InDelta(t, -15, result.Breakdown.Certifications, 1e-9)
	assert.InDelta(t, 85, result.ModulatedFee, 1e-9)
}

func TestModulate_DuplicateAndUnknownCertifications(t *testing.T) {
	svc := newService(t)

	result := svc.Modulate(100, ecomoddomain.EcoModulationFactors{
		CarbonFootprint: 5,
		Certifications:  []string{"FSC", "FSC", "HOUSE_BRAND_GREEN"},
	})
	assert.InDelta(t, -5, result.Breakdown.Certifications, 1e-9)
}

func TestModulate_FeeNeverNegative(t *testing.T) {
	// Default factors sum to at most 93%, so an aggressive override is
	// needed to drive the raw adjustment past the fee itself.
	cfg := config.DefaultEcoModulationConfig()
	cfg.RecycledFactor = 0.9
	cfg.ReusabilityFactor = 0.9
	svc := New(Params{Log: zap.NewNop(), Config: config.StaticEcoModulationConfigHolder(cfg)})

	result := svc.Modulate(1, ecomoddomain.EcoModulationFactors{
		CarbonFootprint:  0,
		RecycledContent:  1,
		Biodegradability: 1,
		Reusability:      1,
		LocalSourcing:    1,
		Certifications:   []string{"CRADLE_TO_CRADLE", "RECYCLED_CONTENT"},
	})
	assert.Zero(t, result.ModulatedFee)
	assert.Less(t, result.TotalAdjustment, -1.0)
}

func TestModulate_ZeroBaseFee(t *testing.T) {
	svc := newService(t)

	result := svc.Modulate(0, ecomoddomain.EcoModulationFactors{CarbonFootprint: 10})
	assert.Zero(t, result.ModulatedFee)
	assert.Zero(t, result.AdjustmentPercentage)
}

func TestSustainabilityScore(t *testing.T) {
	svc := newService(t)

	best := svc.Modulate(100, ecomoddomain.EcoModulationFactors{
		CarbonFootprint:  0,
		RecycledContent:  1,
		Biodegradability: 1,
		Reusability:      1,
		LocalSourcing:    1,
		Certifications:   []string{"FSC", "EU_ECOLABEL", "BLUE_ANGEL", "GREEN_SEAL", "OK_COMPOST"},
	})
	assert.Equal(t, 100, best.SustainabilityScore)

	worst := svc.Modulate(100, ecomoddomain.EcoModulationFactors{CarbonFootprint: 10})
	assert.Equal(t, 0, worst.SustainabilityScore)

	// Carbon 5 contributes (10-5)*10*0.25 = 12.5, recycled 0.5
	// contributes 50*0.20 = 10, one certification 20*0.10 = 2.
	mid := svc.Modulate(100, ecomoddomain.EcoModulationFactors{
		CarbonFootprint: 5,
		RecycledContent: 0.5,
		Certifications:  []string{"FSC"},
	})
	assert.Equal(t, 25, mid.SustainabilityScore)
}

func TestRecommendations(t *testing.T) {
	none := Recommendations(ecomoddomain.EcoModulationFactors{
		CarbonFootprint:  3,
		RecycledContent:  0.5,
		Biodegradability: 0.6,
		Reusability:      0.4,
		LocalSourcing:    0.7,
		Certifications:   []string{"FSC"},
	})
	assert.Empty(t, none)

	all := Recommendations(ecomoddomain.EcoModulationFactors{CarbonFootprint: 8})
	assert.Len(t, all, 6)
}
