package seed

import (
	"context"
	"errors"

	jurisdictiondomain "github.com/packlane/packlane/internal/jurisdiction/domain"
	obligationdomain "github.com/packlane/packlane/internal/obligation/domain"
	ratetabledomain "github.com/packlane/packlane/internal/ratetable/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// EnsureReferenceData inserts the compiled-in rate tables, obligation
// rules and jurisdiction metadata. Existing rows win so operator edits
// survive restarts.
func EnsureReferenceData(db *gorm.DB) error {
	if db == nil {
		return errors.New("seed database handle is required")
	}

	ctx := context.Background()
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		keepExisting := clause.OnConflict{DoNothing: true}

		if err := tx.Clauses(keepExisting).Create(ratetabledomain.DefaultRateTables()).Error; err != nil {
			return err
		}
		if err := tx.Clauses(keepExisting).Create(ratetabledomain.DefaultMaterialRates()).Error; err != nil {
			return err
		}
		if err := tx.Clauses(keepExisting).Create(obligationdomain.DefaultObligationRules()).Error; err != nil {
			return err
		}
		return tx.Clauses(keepExisting).Create(jurisdictiondomain.DefaultJurisdictions()).Error
	})
}
