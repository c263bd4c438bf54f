package repository

import (
	"context"

	"github.com/packlane/packlane/internal/obligation/domain"
	"gorm.io/gorm"
)

type repository struct {
	db *gorm.DB
}

func Provide(db *gorm.DB) domain.Repository {
	return &repository{db: db}
}

func (r *repository) ListRules(ctx context.Context) ([]domain.JurisdictionObligationRule, error) {
	var rows []domain.JurisdictionObligationRule
	err := r.db.WithContext(ctx).
		Raw(`SELECT jurisdiction_code, revenue_threshold, tonnage_threshold, combinator, model_type FROM obligation_rules ORDER BY jurisdiction_code`).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
