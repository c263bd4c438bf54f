package migration

import (
	"context"

	calclogdomain "github.com/packlane/packlane/internal/calclog/domain"
	"github.com/packlane/packlane/internal/config"
	jurisdictiondomain "github.com/packlane/packlane/internal/jurisdiction/domain"
	obligationdomain "github.com/packlane/packlane/internal/obligation/domain"
	"github.com/packlane/packlane/internal/ratelimit"
	ratetabledomain "github.com/packlane/packlane/internal/ratetable/domain"
	"github.com/packlane/packlane/internal/seed"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var Module = fx.Module("migrations",
	fx.Invoke(func(conn *gorm.DB, cfg config.Config, limiter *ratelimit.CalcAPILimiter, log *zap.Logger) error {
		if cfg.DBType == "postgres" {
			sqlDB, err := conn.DB()
			if err != nil {
				return err
			}
			if err := RunMigrations(sqlDB); err != nil {
				return err
			}
		} else {
			// sqlite and mysql development setups skip versioned
			// migrations and let gorm create the schema.
			if err := conn.AutoMigrate(
				&ratetabledomain.RateTable{},
				&ratetabledomain.MaterialRate{},
				&obligationdomain.JurisdictionObligationRule{},
				&jurisdictiondomain.Jurisdiction{},
				&calclogdomain.CalculationRecord{},
			); err != nil {
				return err
			}
		}

		ctx := context.Background()
		token, acquired, err := limiter.TryLockSeed(ctx, "reference")
		if err != nil {
			log.Warn("seed lock unavailable, seeding anyway", zap.Error(err))
		} else if !acquired {
			log.Info("another instance is seeding reference data")
			return nil
		}
		defer func() {
			_ = limiter.ReleaseSeed(ctx, "reference", token)
		}()

		return seed.EnsureReferenceData(conn)
	}),
)
