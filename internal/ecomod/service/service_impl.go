package service

import (
	"math"

	"github.com/packlane/packlane/internal/config"
	ecomoddomain "github.com/packlane/packlane/internal/ecomod/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// Sustainability score weights. Certifications contribute
// min(count*20, 100) points before weighting.
const (
	scoreWeightCarbon        = 0.25
	scoreWeightRecycled      = 0.20
	scoreWeightBiodegradable = 0.15
	scoreWeightReusability   = 0.20
	scoreWeightLocalSourcing = 0.10
	scoreWeightCertification = 0.10
)

type Params struct {
	fx.In

	Log    *zap.Logger
	Config *config.EcoModulationConfigHolder
}

type Service struct {
	log    *zap.Logger
	config *config.EcoModulationConfigHolder
}

func New(p Params) ecomoddomain.Service {
	return &Service{
		log:    p.Log.Named("ecomod.service"),
		config: p.Config,
	}
}

// Modulate computes six independent adjustment terms, each a fraction
// of baseFee. Negative terms reduce the fee. The modulated fee is
// floored at zero.
func (s *Service) Modulate(baseFee float64, factors ecomoddomain.EcoModulationFactors) *ecomoddomain.EcoModulationResult {
	cfg := s.config.Get()

	breakdown := ecomoddomain.AdjustmentBreakdown{
		CarbonFootprint:  carbonAdjustment(baseFee, factors.CarbonFootprint, cfg.CarbonFactor),
		RecycledContent:  -clampFraction(factors.RecycledContent) * baseFee * cfg.RecycledFactor,
		Biodegradability: -clampFraction(factors.Biodegradability) * baseFee * cfg.BiodegradableFactor,
		Reusability:      -clampFraction(factors.Reusability) * baseFee * cfg.ReusabilityFactor,
		LocalSourcing:    -clampFraction(factors.LocalSourcing) * baseFee * cfg.LocalSourcingFactor,
		Certifications:   -certificationFraction(factors.Certifications, cfg) * baseFee,
	}

	total := breakdown.CarbonFootprint +
		breakdown.RecycledContent +
		breakdown.Biodegradability +
		breakdown.Reusability +
		breakdown.LocalSourcing +
		breakdown.Certifications

	modulated := math.Max(0, baseFee+total)

	result := &ecomoddomain.EcoModulationResult{
		OriginalFee:         baseFee,
		ModulatedFee:        modulated,
		TotalAdjustment:     total,
		Breakdown:           breakdown,
		SustainabilityScore: sustainabilityScore(factors),
		Recommendations:     Recommendations(factors),
	}
	if baseFee != 0 {
		result.AdjustmentPercentage = total / baseFee * 100
	}
	return result
}

// carbonAdjustment rewards footprints below the midpoint of the 0-10
// scale and penalizes those above it, capped at ±factor of the fee.
func carbonAdjustment(baseFee, carbonFootprint, factor float64) float64 {
	normalized := (carbonFootprint - 5) / 5
	if normalized > 1 {
		normalized = 1
	}
	if normalized < -1 {
		normalized = -1
	}
	return normalized * baseFee * factor
}

func certificationFraction(certifications []string, cfg config.EcoModulationConfig) float64 {
	var sum float64
	seen := make(map[string]struct{}, len(certifications))
	for _, cert := range certifications {
		if _, dup := seen[cert]; dup {
			continue
		}
		seen[cert] = struct{}{}
		sum += cfg.CertificationBonuses[cert]
	}
	if sum > cfg.CertificationCap {
		sum = cfg.CertificationCap
	}
	return sum
}

func sustainabilityScore(factors ecomoddomain.EcoModulationFactors) int {
	carbonPoints := (10 - clamp(factors.CarbonFootprint, 0, 10)) * 10
	certPoints := math.Min(float64(len(factors.Certifications))*20, 100)

	score := carbonPoints*scoreWeightCarbon +
		clampFraction(factors.RecycledContent)*100*scoreWeightRecycled +
		clampFraction(factors.Biodegradability)*100*scoreWeightBiodegradable +
		clampFraction(factors.Reusability)*100*scoreWeightReusability +
		clampFraction(factors.LocalSourcing)*100*scoreWeightLocalSourcing +
		certPoints*scoreWeightCertification

	return int(math.Round(clamp(score, 0, 100)))
}

// Recommendations is advisory text only; nothing numeric depends on it.
func Recommendations(factors ecomoddomain.EcoModulationFactors) []string {
	var out []string
	if factors.CarbonFootprint > 7 {
		out = append(out, "reduce carbon footprint through lighter materials or cleaner logistics")
	}
	if factors.RecycledContent < 0.3 {
		out = append(out, "increase recycled content to at least 30%")
	}
	if factors.Biodegradability < 0.5 {
		out = append(out, "consider biodegradable material alternatives")
	}
	if factors.Reusability < 0.3 {
		out = append(out, "design for reuse to unlock the largest fee reduction")
	}
	if factors.LocalSourcing < 0.5 {
		out = append(out, "source more materials locally to cut transport impact")
	}
	if len(factors.Certifications) == 0 {
		out = append(out, "obtain a recognized sustainability certification")
	}
	return out
}

func clampFraction(v float64) float64 {
	return clamp(v, 0, 1)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
