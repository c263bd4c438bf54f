package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"github.com/bwmarrin/snowflake"
	calclogdomain "github.com/packlane/packlane/internal/calclog/domain"
	"github.com/packlane/packlane/internal/clock"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type Params struct {
	fx.In

	Log   *zap.Logger
	Repo  calclogdomain.Repository `optional:"true"`
	GenID *snowflake.Node
	Clock clock.Clock
}

type Service struct {
	log   *zap.Logger
	repo  calclogdomain.Repository
	genID *snowflake.Node
	clock clock.Clock
}

func New(p Params) calclogdomain.Service {
	return &Service{
		log:   p.Log.Named("calclog.service"),
		repo:  p.Repo,
		genID: p.GenID,
		clock: p.Clock,
	}
}

func (s *Service) Record(ctx context.Context, record *calclogdomain.CalculationRecord) {
	if s.repo == nil {
		return
	}
	if record.ID == 0 {
		record.ID = s.genID.Generate().Int64()
	}
	if record.CreatedAt.IsZero() {
		record.CreatedAt = s.clock.Now()
	}
	if record.Checksum == "" {
		record.Checksum = Checksum(record)
	}

	if err := s.repo.Insert(ctx, record); err != nil {
		s.log.Warn("audit record dropped",
			zap.String("product_id", record.ProductID),
			zap.String("fingerprint", record.Fingerprint),
			zap.Error(err),
		)
	}
}

func (s *Service) History(ctx context.Context, productID string, limit int) ([]calclogdomain.CalculationRecord, error) {
	if s.repo == nil {
		return nil, nil
	}
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	return s.repo.ListByProduct(ctx, productID, limit)
}

// Checksum covers the calculation outputs so stored totals can be
// verified against a replay.
func Checksum(record *calclogdomain.CalculationRecord) string {
	sum := sha256.Sum256([]byte(fmt.Sprintf("%s|%s|%.10f|%.10f|%.10f",
		record.Fingerprint, record.Region, record.BaseFee, record.TotalFee, record.TotalDiscount)))
	return hex.EncodeToString(sum[:])
}
