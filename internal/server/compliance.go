package server

import (
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	compliancedomain "github.com/packlane/packlane/internal/compliance/domain"
	feecalcdomain "github.com/packlane/packlane/internal/feecalc/domain"
	obligationdomain "github.com/packlane/packlane/internal/obligation/domain"
	"github.com/packlane/packlane/internal/providers/pdf"
)

type evaluateObligationRequest struct {
	JurisdictionCode string  `json:"jurisdiction_code" binding:"required"`
	AnnualRevenue    float64 `json:"annual_revenue"`
	AnnualTonnage    float64 `json:"annual_tonnage"`
}

func (s *Server) EvaluateObligation(c *gin.Context) {
	var req evaluateObligationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	det, err := s.obligationSvc.Evaluate(c.Request.Context(), req.JurisdictionCode, req.AnnualRevenue, req.AnnualTonnage)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, det)
}

type scoreComplianceRequest struct {
	Factors compliancedomain.ComplianceScoreFactors `json:"factors"`
}

func (s *Server) ScoreCompliance(c *gin.Context) {
	var req scoreComplianceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	c.JSON(http.StatusOK, s.complianceSvc.Score(req.Factors))
}

type complianceDashboardRequest struct {
	JurisdictionCode string                                  `json:"jurisdiction_code" binding:"required"`
	AnnualRevenue    float64                                 `json:"annual_revenue"`
	AnnualTonnage    float64                                 `json:"annual_tonnage"`
	Factors          compliancedomain.ComplianceScoreFactors `json:"factors"`
	Materials        []feecalcdomain.MaterialComponent       `json:"materials"`
	Volume           float64                                 `json:"volume"`
}

type complianceDashboardResponse struct {
	Compliance  *compliancedomain.ComplianceCalculation `json:"compliance"`
	Obligation  *obligationdomain.Determination         `json:"obligation"`
	Fees        *feecalcdomain.FeeCalculationResult     `json:"fees,omitempty"`
	Currency    string                                  `json:"currency_code"`
	GeneratedAt string                                  `json:"generated_at"`
}

// ComplianceDashboard is the single round trip behind the producer
// dashboard: score, obligation status and, when materials are supplied,
// the current fee position.
func (s *Server) ComplianceDashboard(c *gin.Context) {
	var req complianceDashboardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	det, err := s.obligationSvc.Evaluate(c.Request.Context(), req.JurisdictionCode, req.AnnualRevenue, req.AnnualTonnage)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	resp := complianceDashboardResponse{
		Compliance:  s.complianceSvc.Score(req.Factors),
		Obligation:  det,
		GeneratedAt: s.clock.Now().UTC().Format("2006-01-02 15:04 MST"),
	}

	if len(req.Materials) > 0 {
		fees, err := s.feeSvc.CalculateFee(c.Request.Context(), req.Materials, req.JurisdictionCode, req.Volume)
		if err != nil {
			AbortWithError(c, err)
			return
		}
		resp.Fees = fees
	}

	rates, _ := s.rateSvc.Region(req.JurisdictionCode)
	resp.Currency = rates.CurrencyCode

	c.JSON(http.StatusOK, resp)
}

type complianceReportRequest struct {
	ProducerName     string                                  `json:"producer_name" binding:"required"`
	JurisdictionCode string                                  `json:"jurisdiction_code" binding:"required"`
	AnnualRevenue    float64                                 `json:"annual_revenue"`
	AnnualTonnage    float64                                 `json:"annual_tonnage"`
	Factors          compliancedomain.ComplianceScoreFactors `json:"factors"`
	Materials        []feecalcdomain.MaterialComponent       `json:"materials"`
	Volume           float64                                 `json:"volume"`
}

func (s *Server) ComplianceReportPDF(c *gin.Context) {
	var req complianceReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	det, err := s.obligationSvc.Evaluate(c.Request.Context(), req.JurisdictionCode, req.AnnualRevenue, req.AnnualTonnage)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	calc := s.complianceSvc.Score(req.Factors)
	rates, _ := s.rateSvc.Region(req.JurisdictionCode)

	data := pdf.ComplianceReportData{
		ProducerName: req.ProducerName,
		Jurisdiction: det.JurisdictionCode,
		GeneratedAt:  s.clock.Now().UTC().Format("2006-01-02 15:04 MST"),

		Score: calc.Score,
		Grade: calc.Grade,
		Factors: []pdf.ReportFactor{
			{Name: "Data completeness", Value: fmt.Sprintf("%.0f", req.Factors.DataCompleteness), Points: calc.Breakdown.DataCompleteness},
			{Name: "Deadline adherence", Value: fmt.Sprintf("%.0f", req.Factors.DeadlineAdherence), Points: calc.Breakdown.DeadlineAdherence},
			{Name: "Material classification", Value: fmt.Sprintf("%.0f", req.Factors.MaterialClassification), Points: calc.Breakdown.MaterialClassification},
			{Name: "Documentation quality", Value: fmt.Sprintf("%.0f", req.Factors.DocumentationQuality), Points: calc.Breakdown.DocumentationQuality},
			{Name: "Fee payment status", Value: fmt.Sprintf("%.0f", req.Factors.FeePaymentStatus), Points: calc.Breakdown.FeePaymentStatus},
		},

		Obligated:        det.Obligated,
		ObligationReason: det.Reason,
		CurrencyCode:     rates.CurrencyCode,
	}

	if len(req.Materials) > 0 {
		fees, err := s.feeSvc.CalculateFee(c.Request.Context(), req.Materials, req.JurisdictionCode, req.Volume)
		if err != nil {
			AbortWithError(c, err)
			return
		}
		for _, line := range fees.Breakdown {
			data.Fees = append(data.Fees, pdf.ReportFeeLine{
				MaterialType: line.Type,
				WeightGrams:  fmt.Sprintf("%.0f", line.WeightGrams),
				BaseRate:     fmt.Sprintf("%.4f", line.BaseRate),
				AdjustedRate: fmt.Sprintf("%.4f", line.AdjustedRate),
				Fee:          fmt.Sprintf("%.2f", line.Fee),
			})
		}
		data.TotalFee = fmt.Sprintf("%.2f", fees.TotalFee)
		data.TotalDiscount = fmt.Sprintf("%.2f", fees.TotalDiscount)
	}

	reader, err := s.pdfProvider.GenerateComplianceReport(c.Request.Context(), data)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.Header("Content-Type", "application/pdf")
	c.Header("Content-Disposition", `attachment; filename="compliance-report.pdf"`)
	c.Status(http.StatusOK)
	_, _ = io.Copy(c.Writer, reader)
}
