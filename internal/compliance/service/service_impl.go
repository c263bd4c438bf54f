package service

import (
	"math"

	compliancedomain "github.com/packlane/packlane/internal/compliance/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// Factor weights sum to 1.0.
const (
	weightDataCompleteness       = 0.25
	weightDeadlineAdherence      = 0.30
	weightMaterialClassification = 0.20
	weightDocumentationQuality   = 0.15
	weightFeePaymentStatus       = 0.10
)

type Params struct {
	fx.In

	Log *zap.Logger
}

type Service struct {
	log *zap.Logger
}

func New(p Params) compliancedomain.Service {
	return &Service{log: p.Log.Named("compliance.service")}
}

func (s *Service) Score(factors compliancedomain.ComplianceScoreFactors) *compliancedomain.ComplianceCalculation {
	points := func(value, weight float64) float64 {
		return clamp(value) / 100 * weight * 100
	}

	data := points(factors.DataCompleteness, weightDataCompleteness)
	deadline := points(factors.DeadlineAdherence, weightDeadlineAdherence)
	material := points(factors.MaterialClassification, weightMaterialClassification)
	documentation := points(factors.DocumentationQuality, weightDocumentationQuality)
	payment := points(factors.FeePaymentStatus, weightFeePaymentStatus)

	score := int(math.Round(data + deadline + material + documentation + payment))

	return &compliancedomain.ComplianceCalculation{
		Score: score,
		Grade: grade(score),
		Breakdown: compliancedomain.FactorBreakdown{
			DataCompleteness:       int(math.Round(data)),
			DeadlineAdherence:      int(math.Round(deadline)),
			MaterialClassification: int(math.Round(material)),
			DocumentationQuality:   int(math.Round(documentation)),
			FeePaymentStatus:       int(math.Round(payment)),
		},
	}
}

func grade(score int) string {
	switch {
	case score >= 90:
		return "A"
	case score >= 80:
		return "B"
	case score >= 70:
		return "C"
	case score >= 60:
		return "D"
	default:
		return "F"
	}
}

func clamp(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
