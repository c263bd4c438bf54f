package service

import (
	"context"
	"sort"
	"strings"

	ratetabledomain "github.com/packlane/packlane/internal/ratetable/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type Params struct {
	fx.In

	Log  *zap.Logger
	Repo ratetabledomain.Repository `optional:"true"`
}

type Service struct {
	log     *zap.Logger
	regions map[string]ratetabledomain.RegionalRates
}

// New loads the rate snapshot from the repository. When the backing store
// is unavailable the compiled-in reference tables are used instead, so the
// engine stays usable without a database.
func New(p Params) ratetabledomain.Service {
	log := p.Log.Named("ratetable.service")

	tables, rates, err := load(p.Repo)
	if err != nil {
		log.Warn("falling back to compiled-in rate tables", zap.Error(err))
		tables = ratetabledomain.DefaultRateTables()
		rates = ratetabledomain.DefaultMaterialRates()
	}
	if len(tables) == 0 {
		tables = ratetabledomain.DefaultRateTables()
		rates = ratetabledomain.DefaultMaterialRates()
	}

	regions := make(map[string]ratetabledomain.RegionalRates, len(tables))
	for _, t := range tables {
		regions[t.Region] = ratetabledomain.RegionalRates{
			Region:                t.Region,
			CurrencyCode:          t.CurrencyCode,
			RecyclabilityDiscount: t.RecyclabilityDiscount,
			PostconsumerDiscount:  t.PostconsumerDiscount,
			ReusabilityDiscount:   t.ReusabilityDiscount,
			Rates:                 make(map[string]float64),
		}
	}
	for _, mr := range rates {
		region, ok := regions[mr.Region]
		if !ok {
			log.Warn("material rate for unknown region skipped", zap.String("region", mr.Region))
			continue
		}
		region.Rates[mr.MaterialCode] = mr.RatePerKg
	}

	log.Info("rate tables loaded",
		zap.Int("regions", len(regions)),
		zap.Int("material_rates", len(rates)),
	)

	return &Service{log: log, regions: regions}
}

func load(repo ratetabledomain.Repository) ([]ratetabledomain.RateTable, []ratetabledomain.MaterialRate, error) {
	if repo == nil {
		return nil, nil, nil
	}
	ctx := context.Background()
	tables, err := repo.ListRateTables(ctx)
	if err != nil {
		return nil, nil, err
	}
	rates, err := repo.ListMaterialRates(ctx)
	if err != nil {
		return nil, nil, err
	}
	return tables, rates, nil
}

func (s *Service) Resolve(region, materialType string) ratetabledomain.Lookup {
	snapshot, regionDefaulted := s.Region(region)

	code := ratetabledomain.NormalizeMaterialCode(materialType)
	if rate, ok := snapshot.Rates[code]; ok {
		source := ratetabledomain.LookupFound
		if regionDefaulted {
			source = ratetabledomain.LookupDefaultedRegion
		}
		return ratetabledomain.Lookup{Rate: rate, Source: source, Region: snapshot.Region}
	}

	return ratetabledomain.Lookup{
		Rate:   ratetabledomain.DefaultMaterialRate,
		Source: ratetabledomain.LookupDefaultedMaterial,
		Region: snapshot.Region,
	}
}

func (s *Service) Region(region string) (ratetabledomain.RegionalRates, bool) {
	key := strings.ToLower(strings.TrimSpace(region))
	if snapshot, ok := s.regions[key]; ok {
		return snapshot, false
	}
	return s.regions[ratetabledomain.DefaultRegion], true
}

func (s *Service) Regions() []string {
	out := make([]string, 0, len(s.regions))
	for region := range s.regions {
		out = append(out, region)
	}
	sort.Strings(out)
	return out
}
