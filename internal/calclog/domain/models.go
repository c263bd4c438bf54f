package domain

import (
	"context"
	"time"
)

// CalculationRecord is one audit row per cached fee computation.
// Fingerprint identifies the inputs; Checksum covers the outputs so a
// replayed calculation can be verified against the stored totals.
type CalculationRecord struct {
	ID            int64     `json:"id" gorm:"column:id;primaryKey"`
	ProductID     string    `json:"product_id" gorm:"column:product_id;index"`
	Fingerprint   string    `json:"fingerprint" gorm:"column:fingerprint;index"`
	Region        string    `json:"region" gorm:"column:region"`
	Volume        float64   `json:"volume" gorm:"column:volume"`
	MaterialCount int       `json:"material_count" gorm:"column:material_count"`
	BaseFee       float64   `json:"base_fee" gorm:"column:base_fee"`
	TotalFee      float64   `json:"total_fee" gorm:"column:total_fee"`
	TotalDiscount float64   `json:"total_discount" gorm:"column:total_discount"`
	Checksum      string    `json:"checksum" gorm:"column:checksum"`
	CreatedAt     time.Time `json:"created_at" gorm:"column:created_at"`
}

func (CalculationRecord) TableName() string {
	return "calculation_records"
}

type Repository interface {
	Insert(ctx context.Context, record *CalculationRecord) error
	ListByProduct(ctx context.Context, productID string, limit int) ([]CalculationRecord, error)
}

// Service persists the audit trail. Recording is best-effort: a
// storage failure is logged, never propagated into the fee path.
type Service interface {
	Record(ctx context.Context, record *CalculationRecord)
	History(ctx context.Context, productID string, limit int) ([]CalculationRecord, error)
}
