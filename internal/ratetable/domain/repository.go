package domain

import "context"

type Repository interface {
	ListRateTables(ctx context.Context) ([]RateTable, error)
	ListMaterialRates(ctx context.Context) ([]MaterialRate, error)
}
