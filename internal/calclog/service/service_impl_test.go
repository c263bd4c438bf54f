package service

import (
	"context"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	calclogdomain "github.com/packlane/packlane/internal/calclog/domain"
	"github.com/packlane/packlane/internal/calclog/repository"
	"github.com/packlane/packlane/internal/clock"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func TestRecordAndHistory(t *testing.T) {
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	assert.NoError(t, err)
	assert.NoError(t, db.AutoMigrate(&calclogdomain.CalculationRecord{}))

	node, err := snowflake.NewNode(1)
	assert.NoError(t, err)
	fake := clock.NewFakeClock(time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC))

	svc := New(Params{
		Log:   zap.NewNop(),
		Repo:  repository.Provide(db),
		GenID: node,
		Clock: fake,
	})

	ctx := context.Background()
	svc.Record(ctx, &calclogdomain.CalculationRecord{
		ProductID:     "prod-1",
		Fingerprint:   "fp-a",
		Region:        "oregon",
		Volume:        1,
		MaterialCount: 2,
		BaseFee:       0.9,
		TotalFee:      0.675,
		TotalDiscount: 0.225,
	})
	fake.Advance(time.Minute)
	svc.Record(ctx, &calclogdomain.CalculationRecord{
		ProductID:   "prod-1",
		Fingerprint: "fp-b",
		Region:      "oregon",
		TotalFee:    1.5,
	})
	svc.Record(ctx, &calclogdomain.CalculationRecord{
		ProductID:   "prod-2",
		Fingerprint: "fp-c",
		Region:      "california",
	})

	rows, err := svc.History(ctx, "prod-1", 10)
	assert.NoError(t, err)
	assert.Len(t, rows, 2)
	assert.Equal(t, "fp-b", rows[0].Fingerprint)
	assert.Equal(t, "fp-a", rows[1].Fingerprint)
	assert.NotZero(t, rows[0].ID)
	assert.Equal(t, Checksum(&rows[1]), rows[1].Checksum)
}

func TestRecordWithoutRepositoryIsNoop(t *testing.T) {
	node, _ := snowflake.NewNode(1)
	svc := New(Params{
		Log:   zap.NewNop(),
		GenID: node,
		Clock: clock.NewSystemClock(),
	})

	svc.Record(context.Background(), &calclogdomain.CalculationRecord{ProductID: "prod-1"})
	rows, err := svc.History(context.Background(), "prod-1", 10)
	assert.NoError(t, err)
	assert.Nil(t, rows)
}
