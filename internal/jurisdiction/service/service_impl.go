package service

import (
	"context"

	jurisdictiondomain "github.com/packlane/packlane/internal/jurisdiction/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type Params struct {
	fx.In

	Log  *zap.Logger
	Repo jurisdictiondomain.Repository `optional:"true"`
}

type Service struct {
	log  *zap.Logger
	repo jurisdictiondomain.Repository
}

func New(p Params) jurisdictiondomain.Service {
	return &Service{
		log:  p.Log.Named("jurisdiction.service"),
		repo: p.Repo,
	}
}

// List returns the stored jurisdictions, or the hardcoded fallback
// when the backing source is missing, errors or is empty. Selectors
// must keep working regardless of storage state.
func (s *Service) List(ctx context.Context) []jurisdictiondomain.Jurisdiction {
	if s.repo == nil {
		return jurisdictiondomain.DefaultJurisdictions()
	}
	rows, err := s.repo.List(ctx)
	if err != nil {
		s.log.Warn("falling back to compiled-in jurisdictions", zap.Error(err))
		return jurisdictiondomain.DefaultJurisdictions()
	}
	if len(rows) == 0 {
		return jurisdictiondomain.DefaultJurisdictions()
	}
	return rows
}
