package repository

import (
	"context"

	"github.com/packlane/packlane/internal/calclog/domain"
	"gorm.io/gorm"
)

type repository struct {
	db *gorm.DB
}

func Provide(db *gorm.DB) domain.Repository {
	return &repository{db: db}
}

func (r *repository) Insert(ctx context.Context, record *domain.CalculationRecord) error {
	return r.db.WithContext(ctx).Create(record).Error
}

func (r *repository) ListByProduct(ctx context.Context, productID string, limit int) ([]domain.CalculationRecord, error) {
	var rows []domain.CalculationRecord
	err := r.db.WithContext(ctx).
		Raw(`SELECT id, product_id, fingerprint, region, volume, material_count, base_fee, total_fee, total_discount, checksum, created_at
			FROM calculation_records WHERE product_id = ? ORDER BY created_at DESC LIMIT ?`, productID, limit).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
