package repository

import (
	"context"

	"github.com/packlane/packlane/internal/jurisdiction/domain"
	"gorm.io/gorm"
)

type repository struct {
	db *gorm.DB
}

func Provide(db *gorm.DB) domain.Repository {
	return &repository{db: db}
}

func (r *repository) List(ctx context.Context) ([]domain.Jurisdiction, error) {
	var rows []domain.Jurisdiction
	err := r.db.WithContext(ctx).
		Raw(`SELECT code, name, model_type FROM jurisdictions ORDER BY code`).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
