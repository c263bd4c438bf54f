package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	ecomoddomain "github.com/packlane/packlane/internal/ecomod/domain"
	feecalcdomain "github.com/packlane/packlane/internal/feecalc/domain"
)

type calculateFeesRequest struct {
	Materials []feecalcdomain.MaterialComponent  `json:"materials" binding:"required"`
	Region    string                             `json:"region"`
	Volume    float64                            `json:"volume"`
	Eco       *ecomoddomain.EcoModulationFactors `json:"eco_factors"`
}

type calculateFeesResponse struct {
	*feecalcdomain.FeeCalculationResult
	Modulation *ecomoddomain.EcoModulationResult `json:"modulation,omitempty"`
}

// CalculateFees is the multi-material path, with optional
// eco-modulation applied to the discounted total.
func (s *Server) CalculateFees(c *gin.Context) {
	var req calculateFeesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}
	if req.Region == "" {
		req.Region = s.cfg.DefaultRegion
	}

	result, err := s.feeSvc.CalculateFee(c.Request.Context(), req.Materials, req.Region, req.Volume)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	resp := calculateFeesResponse{FeeCalculationResult: result}
	if req.Eco != nil {
		resp.Modulation = s.ecoSvc.Modulate(result.TotalFee, *req.Eco)
	}
	c.JSON(http.StatusOK, resp)
}

type singleFeeRequest struct {
	WeightKg          float64  `json:"weight_kg"`
	BaseRate          float64  `json:"base_rate"`
	RecyclabilityRate *float64 `json:"recyclability_rate"`
}

func (s *Server) CalculateSingleFee(c *gin.Context) {
	var req singleFeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	result, err := s.feeSvc.CalculateSingleFee(c.Request.Context(), req.WeightKg, req.BaseRate, req.RecyclabilityRate)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

type modulateFeeRequest struct {
	BaseFee float64                           `json:"base_fee"`
	Factors ecomoddomain.EcoModulationFactors `json:"factors"`
}

func (s *Server) ModulateFee(c *gin.Context) {
	var req modulateFeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}
	if req.BaseFee < 0 {
		AbortWithError(c, feecalcdomain.NewInvalidInputError([]string{"base_fee must be >= 0"}))
		return
	}

	c.JSON(http.StatusOK, s.ecoSvc.Modulate(req.BaseFee, req.Factors))
}

type remoteFeesRequest struct {
	JurisdictionCode string                            `json:"jurisdiction_code" binding:"required"`
	AnnualRevenue    float64                           `json:"annual_revenue"`
	AnnualTonnage    float64                           `json:"annual_tonnage"`
	Components       []feecalcdomain.MaterialComponent `json:"components"`
	Volume           float64                           `json:"volume"`
}

// CalculateRemoteFees proxies to the legacy V1 calculator. The remote
// and local engines are expected to agree numerically.
func (s *Server) CalculateRemoteFees(c *gin.Context) {
	var req remoteFeesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}
	if !s.remoteFees.Enabled() {
		AbortWithError(c, ErrServiceUnavailable)
		return
	}

	result, err := s.remoteFees.Calculate(c.Request.Context(),
		req.JurisdictionCode, req.AnnualRevenue, req.AnnualTonnage, req.Components, req.Volume)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}
