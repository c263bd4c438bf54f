package service

import (
	"context"
	"errors"
	"testing"

	ratetabledomain "github.com/packlane/packlane/internal/ratetable/domain"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type repoStub struct {
	tables []ratetabledomain.RateTable
	rates  []ratetabledomain.MaterialRate
	err    error
}

func (r *repoStub) ListRateTables(ctx context.Context) ([]ratetabledomain.RateTable, error) {
	_ = ctx
	return r.tables, r.err
}

func (r *repoStub) ListMaterialRates(ctx context.Context) ([]ratetabledomain.MaterialRate, error) {
	_ = ctx
	return r.rates, r.err
}

func newDefaultService(t *testing.T) ratetabledomain.Service {
	t.Helper()
	return New(Params{Log: zap.NewNop()})
}

func TestResolveFoundRate(t *testing.T) {
	svc := newDefaultService(t)

	lookup := svc.Resolve("oregon", "Plastic (PET)")

	assert.Equal(t, ratetabledomain.LookupFound, lookup.Source)
	assert.Equal(t, "oregon", lookup.Region)
	assert.InDelta(t, 0.45, lookup.Rate, 1e-9)
	assert.False(t, lookup.Defaulted())
}

func TestResolveNormalizesMaterialSpellings(t *testing.T) {
	svc := newDefaultService(t)

	expected := svc.Resolve("oregon", "Plastic (PET)")
	for _, spelling := range []string{"plastic pet", "PLASTIC_PET", "plastic-pet"} {
		lookup := svc.Resolve("oregon", spelling)
		assert.Equal(t, expected, lookup, "spelling %q", spelling)
	}
}

func TestResolveUnknownMaterialDefaults(t *testing.T) {
	svc := newDefaultService(t)

	lookup := svc.Resolve("oregon", "unobtainium")

	assert.Equal(t, ratetabledomain.LookupDefaultedMaterial, lookup.Source)
	assert.InDelta(t, ratetabledomain.DefaultMaterialRate, lookup.Rate, 1e-9)
	assert.True(t, lookup.Defaulted())
}

func TestResolveUnknownRegionUsesReferenceTable(t *testing.T) {
	svc := newDefaultService(t)

	lookup := svc.Resolve("narnia", "Plastic (PET)")

	assert.Equal(t, ratetabledomain.LookupDefaultedRegion, lookup.Source)
	assert.Equal(t, ratetabledomain.DefaultRegion, lookup.Region)
	assert.InDelta(t, 0.45, lookup.Rate, 1e-9)
}

func TestRegionNormalizesKey(t *testing.T) {
	svc := newDefaultService(t)

	snapshot, defaulted := svc.Region("  Oregon ")

	assert.False(t, defaulted)
	assert.Equal(t, "oregon", snapshot.Region)
	assert.Equal(t, "USD", snapshot.CurrencyCode)
	assert.InDelta(t, 0.25, snapshot.RecyclabilityDiscount, 1e-9)
}

func TestRegionsSorted(t *testing.T) {
	svc := newDefaultService(t)

	regions := svc.Regions()

	assert.Len(t, regions, 8)
	assert.Equal(t, "california", regions[0])
	assert.Equal(t, "washington", regions[7])
}

func TestRepositoryRowsPreferredOverDefaults(t *testing.T) {
	repo := &repoStub{
		tables: []ratetabledomain.RateTable{
			{Region: "testland", CurrencyCode: "EUR", RecyclabilityDiscount: 0.5},
		},
		rates: []ratetabledomain.MaterialRate{
			{Region: "testland", MaterialCode: "glass", RatePerKg: 0.99},
		},
	}
	svc := New(Params{Log: zap.NewNop(), Repo: repo})

	lookup := svc.Resolve("testland", "glass")
	assert.Equal(t, ratetabledomain.LookupFound, lookup.Source)
	assert.InDelta(t, 0.99, lookup.Rate, 1e-9)

	assert.Equal(t, []string{"testland"}, svc.Regions())
}

func TestRepositoryErrorFallsBackToDefaults(t *testing.T) {
	repo := &repoStub{err: errors.New("connection refused")}
	svc := New(Params{Log: zap.NewNop(), Repo: repo})

	lookup := svc.Resolve("oregon", "Plastic (PET)")
	assert.Equal(t, ratetabledomain.LookupFound, lookup.Source)
	assert.InDelta(t, 0.45, lookup.Rate, 1e-9)
	assert.Len(t, svc.Regions(), 8)
}
