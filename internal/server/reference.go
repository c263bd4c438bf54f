package server

import (
	"net/http"
	"sort"

	"github.com/gin-gonic/gin"
)

func (s *Server) ListJurisdictions(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"jurisdictions": s.jurisdictionSvc.List(c.Request.Context()),
	})
}

type regionalRatesResponse struct {
	Region                string             `json:"region"`
	CurrencyCode          string             `json:"currency_code"`
	RecyclabilityDiscount float64            `json:"recyclability_discount"`
	PostconsumerDiscount  float64            `json:"postconsumer_discount"`
	ReusabilityDiscount   float64            `json:"reusability_discount"`
	Rates                 map[string]float64 `json:"rates"`
	Materials             []string           `json:"materials"`
	RegionDefaulted       bool               `json:"region_defaulted,omitempty"`
}

// GetRegionalRates returns the rate table snapshot for a region. An
// unknown region serves the reference region's table, flagged.
func (s *Server) GetRegionalRates(c *gin.Context) {
	rates, defaulted := s.rateSvc.Region(c.Param("region"))

	materials := make([]string, 0, len(rates.Rates))
	for code := range rates.Rates {
		materials = append(materials, code)
	}
	sort.Strings(materials)

	c.JSON(http.StatusOK, regionalRatesResponse{
		Region:                rates.Region,
		CurrencyCode:          rates.CurrencyCode,
		RecyclabilityDiscount: rates.RecyclabilityDiscount,
		PostconsumerDiscount:  rates.PostconsumerDiscount,
		ReusabilityDiscount:   rates.ReusabilityDiscount,
		Rates:                 rates.Rates,
		Materials:             materials,
		RegionDefaulted:       defaulted,
	})
}
