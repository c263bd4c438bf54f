package service

import (
	"testing"

	compliancedomain "github.com/packlane/packlane/internal/compliance/domain"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func newService(t *testing.T) compliancedomain.Service {
	t.Helper()
	return New(Params{Log: zap.NewNop()})
}

func TestScore_PerfectAndZero(t *testing.T) {
	svc := newService(t)

	perfect := svc.Score(compliancedomain.ComplianceScoreFactors{
		DataCompleteness:       100,
		DeadlineAdherence:      100,
		MaterialClassification: 100,
		DocumentationQuality:   100,
		FeePaymentStatus:       100,
	})
	assert.Equal(t, 100, perfect.Score)
	assert.Equal(t, "A", perfect.Grade)
	assert.Equal(t, 25, perfect.Breakdown.DataCompleteness)
	assert.Equal(t, 30, perfect.Breakdown.DeadlineAdherence)
	assert.Equal(t, 20, perfect.Breakdown.MaterialClassification)
	assert.Equal(t, 15, perfect.Breakdown.DocumentationQuality)
	assert.Equal(t, 10, perfect.Breakdown.FeePaymentStatus)

	zero := svc.Score(compliancedomain.ComplianceScoreFactors{})
	assert.Equal(t, 0, zero.Score)
	assert.Equal(t, "F", zero.Grade)
}

func TestScore_GradeBands(t *testing.T) {
	svc := newService(t)

	uniform := func(v float64) *compliancedomain.ComplianceCalculation {
		return svc.Score(compliancedomain.ComplianceScoreFactors{
			DataCompleteness:       v,
			DeadlineAdherence:      v,
			MaterialClassification: v,
			DocumentationQuality:   v,
			FeePaymentStatus:       v,
		})
	}

	// Uniform factors collapse to the factor value itself since the
	// weights sum to one.
	assert.Equal(t, "A", uniform(90).Grade)
	assert.Equal(t, "B", uniform(89).Grade)
	assert.Equal(t, "B", uniform(80).Grade)
	assert.Equal(t, "C", uniform(79).Grade)
	assert.Equal(t, "C", uniform(70).Grade)
	assert.Equal(t, "D", uniform(69).Grade)
	assert.Equal(t, "D", uniform(60).Grade)
	assert.Equal(t, "F", uniform(59).Grade)
}

func TestScore_ClampsOutOfRangeInput(t *testing.T) {
	svc := newService(t)

	result := svc.Score(compliancedomain.ComplianceScoreFactors{
		DataCompleteness:       150,
		DeadlineAdherence:      -20,
		MaterialClassification: 100,
		DocumentationQuality:   100,
		FeePaymentStatus:       100,
	})
	assert.Equal(t, 25, result.Breakdown.DataCompleteness)
	assert.Equal(t, 0, result.Breakdown.DeadlineAdherence)
	assert.Equal(t, 70, result.Score)
	assert.Equal(t, "C", result.Grade)
}

func TestScore_BreakdownRoundsIndependently(t *testing.T) {
	svc := newService(t)

	// 55 of each: 13.75 + 16.5 + 11 + 8.25 + 5.5 = 55, but the
	// per-factor rounding yields 14+17+11+8+6 = 56.
	result := svc.Score(compliancedomain.ComplianceScoreFactors{
		DataCompleteness:       55,
		DeadlineAdherence:      55,
		MaterialClassification: 55,
		DocumentationQuality:   55,
		FeePaymentStatus:       55,
	})
	assert.Equal(t, 55, result.Score)

	sum := result.Breakdown.DataCompleteness +
		result.Breakdown.DeadlineAdherence +
		result.Breakdown.MaterialClassification +
		result.Breakdown.DocumentationQuality +
		result.Breakdown.FeePaymentStatus
	assert.Equal(t, 56, sum)
}
