// Package domain defines the fee calculation inputs and results.
package domain

// MaterialComponent is one packaging material as supplied by the caller.
// The engine never mutates it.
type MaterialComponent struct {
	Type string `json:"type"`
	// WeightGrams must be >= 0.
	WeightGrams float64 `json:"weight_grams"`
	Recyclable  bool    `json:"recyclable"`
	// PostconsumerContent is a fraction in [0,1]. Values above the
	// PostconsumerBonusThreshold earn the postconsumer discount.
	PostconsumerContent float64 `json:"postconsumer_content,omitempty"`
	Reusable            bool    `json:"reusable,omitempty"`
	Biodegradable       bool    `json:"biodegradable,omitempty"`
}

// PostconsumerBonusThreshold is the minimum postconsumer content fraction
// that qualifies for the postconsumer discount.
const PostconsumerBonusThreshold = 0.30

// MaterialFee is the per-material line of a fee breakdown.
type MaterialFee struct {
	Type         string  `json:"type"`
	WeightGrams  float64 `json:"weight_grams"`
	Recyclable   bool    `json:"recyclable"`
	BaseRate     float64 `json:"base_rate"`
	AdjustedRate float64 `json:"adjusted_rate"`
	Fee          float64 `json:"fee"`
	// RateSource tags whether the base rate was found or defaulted
	// (see ratetable domain lookup sources).
	RateSource string `json:"rate_source"`
}

// FeeCalculationResult is the full multi-material fee output.
type FeeCalculationResult struct {
	Region           string        `json:"region"`
	Volume           float64       `json:"volume"`
	Breakdown        []MaterialFee `json:"breakdown"`
	TotalWeightGrams float64       `json:"total_weight_grams"`
	BaseFee          float64       `json:"base_fee"`
	TotalFee         float64       `json:"total_fee"`
	TotalDiscount    float64       `json:"total_discount"`
	// RegionDefaulted reports that the requested region was unknown and
	// the reference region's table was used.
	RegionDefaulted bool `json:"region_defaulted,omitempty"`
}

// SingleFeeResult is the output of the legacy single-fee path. It keeps
// its own rounding regime; see the service implementation.
type SingleFeeResult struct {
	WeightKg              float64 `json:"weight_kg"`
	BaseRate              float64 `json:"base_rate"`
	BaseFee               float64 `json:"base_fee"`
	VolumeDiscount        float64 `json:"volume_discount"`
	FinalFee              float64 `json:"final_fee"`
	VolumeDiscountApplied bool    `json:"volume_discount_applied"`
}

const (
	// VolumeDiscountThresholdKg is the single-fee weight at which the flat
	// volume discount starts to apply.
	VolumeDiscountThresholdKg = 1000.0
	// VolumeDiscountRate is the flat single-fee volume discount.
	VolumeDiscountRate = 0.05
)
