package repository

import (
	"context"

	"github.com/packlane/packlane/internal/ratetable/domain"
	"gorm.io/gorm"
)

type repository struct {
	db *gorm.DB
}

func Provide(db *gorm.DB) domain.Repository {
	return &repository{db: db}
}

func (r *repository) ListRateTables(ctx context.Context) ([]domain.RateTable, error) {
	var rows []domain.RateTable
	err := r.db.WithContext(ctx).
		Raw(`SELECT region, currency_code, recyclability_discount, postconsumer_discount, reusability_discount FROM rate_tables ORDER BY region`).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *repository) ListMaterialRates(ctx context.Context) ([]domain.MaterialRate, error) {
	var rows []domain.MaterialRate
	err := r.db.WithContext(ctx).
		Raw(`SELECT region, material_code, material_name, rate_per_kg FROM material_rates ORDER BY region, material_code`).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
