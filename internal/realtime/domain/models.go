package domain

import (
	"context"
	"time"

	feecalcdomain "github.com/packlane/packlane/internal/feecalc/domain"
)

// CalculationRequest is the cache key material. Everything that can
// change the numeric outcome must be part of it, because the cache
// promises one result per fingerprint.
type CalculationRequest struct {
	ProductID string                            `json:"product_id"`
	Materials []feecalcdomain.MaterialComponent `json:"materials"`
	Volume    float64                           `json:"volume"`
	Region    string                            `json:"region"`
}

// RealTimeCalculationResult is a flattened fee calculation plus cache
// bookkeeping. Values are shared between the cache, subscribers and
// HTTP responses; treat as immutable.
type RealTimeCalculationResult struct {
	ProductID        string                      `json:"product_id"`
	Region           string                      `json:"region"`
	Volume           float64                     `json:"volume"`
	Breakdown        []feecalcdomain.MaterialFee `json:"breakdown"`
	TotalWeightGrams float64                     `json:"total_weight_grams"`
	BaseFee          float64                     `json:"base_fee"`
	TotalFee         float64                     `json:"total_fee"`
	TotalDiscount    float64                     `json:"total_discount"`
	Fingerprint      string                      `json:"fingerprint"`
	LastUpdated      time.Time                   `json:"last_updated"`
}

// Service memoizes fee calculations by fingerprint and fans fresh
// results out to per-product subscribers.
type Service interface {
	// Get returns the cached result for the request's fingerprint, or
	// computes, stores and notifies on a miss.
	Get(ctx context.Context, req CalculationRequest) (*RealTimeCalculationResult, error)

	// GetDebounced schedules the computation after delay of inactivity
	// for the product. A newer call for the same product supersedes the
	// pending schedule; all waiters then observe the newest request's
	// result.
	GetDebounced(ctx context.Context, req CalculationRequest, delay time.Duration) (*RealTimeCalculationResult, error)

	// Subscribe registers the product's callback, replacing any
	// previous one. The returned func removes it.
	Subscribe(productID string, fn func(*RealTimeCalculationResult)) func()

	// ClearCache drops every fingerprint for the product, or the whole
	// cache when productID is empty.
	ClearCache(productID string)
}
