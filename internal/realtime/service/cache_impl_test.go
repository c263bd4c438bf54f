package service

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/packlane/packlane/internal/clock"
	feecalcdomain "github.com/packlane/packlane/internal/feecalc/domain"
	realtimedomain "github.com/packlane/packlane/internal/realtime/domain"
	"github.com/packlane/packlane/internal/realtime/liveevents"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

// countingFees is a minimal calculator that tracks invocations so the
// tests can observe whether the cache actually recomputed.
type countingFees struct {
	calls atomic.Int64
}

func (c *countingFees) CalculateFee(_ context.Context, materials []feecalcdomain.MaterialComponent, region string, volume float64) (*feecalcdomain.FeeCalculationResult, error) {
	c.calls.Add(1)
	result := &feecalcdomain.FeeCalculationResult{Region: region, Volume: volume}
	for _, m := range materials {
		fee := m.WeightGrams / 1000 * volume
		result.TotalWeightGrams += m.WeightGrams
		result.BaseFee += fee
		result.TotalFee += fee
		result.Breakdown = append(result.Breakdown, feecalcdomain.MaterialFee{
			Type: m.Type, WeightGrams: m.WeightGrams, Fee: fee,
		})
	}
	return result, nil
}

func (c *countingFees) CalculateSingleFee(context.Context, float64, float64, *float64) (*feecalcdomain.SingleFeeResult, error) {
	return &feecalcdomain.SingleFeeResult{}, nil
}

func newCache(t *testing.T) (*Service, *countingFees) {
	t.Helper()
	fees := &countingFees{}
	svc := New(Params{
		Log:   zap.NewNop(),
		Fees:  fees,
		Clock: clock.NewFakeClock(time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)),
		Hub:   liveevents.NewHub(),
	})
	return svc.(*Service), fees
}

func request(weight float64) realtimedomain.CalculationRequest {
	return realtimedomain.CalculationRequest{
		ProductID: "prod-1",
		Materials: []feecalcdomain.MaterialComponent{{Type: "Glass", WeightGrams: weight}},
		Volume:    1,
		Region:    "oregon",
	}
}

func TestGet_Idempotent(t *testing.T) {
	svc, fees := newCache(t)
	ctx := context.Background()

	first, err := svc.Get(ctx, request(100))
	assert.NoError(t, err)
	second, err := svc.Get(ctx, request(100))
	assert.NoError(t, err)

	assert.Same(t, first, second)
	assert.Equal(t, int64(1), fees.calls.Load())
}

func TestGet_DifferentInputsRecompute(t *testing.T) {
	svc, fees := newCache(t)
	ctx := context.Background()

	a, err := svc.Get(ctx, request(100))
	assert.NoError(t, err)
	b, err := svc.Get(ctx, request(200))
	assert.NoError(t, err)

	assert.NotEqual(t, a.Fingerprint, b.Fingerprint)
	assert.Equal(t, int64(2), fees.calls.Load())
}

func TestClearCache_ByProduct(t *testing.T) {
	svc, fees := newCache(t)
	ctx := context.Background()

	other := request(100)
	other.ProductID = "prod-2"

	_, err := svc.Get(ctx, request(100))
	assert.NoError(t, err)
	_, err = svc.Get(ctx, other)
	assert.NoError(t, err)

	svc.ClearCache("prod-1")

	_, err = svc.Get(ctx, request(100))
	assert.NoError(t, err)
	_, err = svc.Get(ctx, other)
	assert.NoError(t, err)
	// prod-1 recomputed, prod-2 still cached.
	assert.Equal(t, int64(3), fees.calls.Load())
}

func TestClearCache_All(t *testing.T) {
	svc, fees := newCache(t)
	ctx := context.Background()

	_, err := svc.Get(ctx, request(100))
	assert.NoError(t, err)
	svc.ClearCache("")
	_, err = svc.Get(ctx, request(100))
	assert.NoError(t, err)
	assert.Equal(t, int64(2), fees.calls.Load())
}

func TestSubscribe_NotifiedOnFreshComputeOnly(t *testing.T) {
	svc, _ := newCache(t)
	ctx := context.Background()

	var notified []*realtimedomain.RealTimeCalculationResult
	unsubscribe := svc.Subscribe("prod-1", func(r *realtimedomain.RealTimeCalculationResult) {
		notified = append(notified, r)
	})

	_, err := svc.Get(ctx, request(100))
	assert.NoError(t, err)
	_, err = svc.Get(ctx, request(100))
	assert.NoError(t, err)
	assert.Len(t, notified, 1)

	unsubscribe()
	_, err = svc.Get(ctx, request(200))
	assert.NoError(t, err)
	assert.Len(t, notified, 1)
}

func TestSubscribe_LastRegistrationWins(t *testing.T) {
	svc, _ := newCache(t)
	ctx := context.Background()

	var firstCalls, secondCalls int
	unsubscribeFirst := svc.Subscribe("prod-1", func(*realtimedomain.RealTimeCalculationResult) { firstCalls++ })
	svc.Subscribe("prod-1", func(*realtimedomain.RealTimeCalculationResult) { secondCalls++ })

	_, err := svc.Get(ctx, request(100))
	assert.NoError(t, err)
	assert.Zero(t, firstCalls)
	assert.Equal(t, 1, secondCalls)

	// A stale unsubscribe must not remove the newer registration.
	unsubscribeFirst()
	_, err = svc.Get(ctx, request(200))
	assert.NoError(t, err)
	assert.Equal(t, 2, secondCalls)
}

func TestGetDebounced_CoalescesToLastRequest(t *testing.T) {
	svc, fees := newCache(t)
	ctx := context.Background()

	var wg sync.WaitGroup
	results := make([]*realtimedomain.RealTimeCalculationResult, 3)
	weights := []float64{100, 200, 300}
	for i := range weights {
		wg.Add(1)
		go func(slot int, weight float64) {
			defer wg.Done()
			r, err := svc.GetDebounced(ctx, request(weight), 150*time.Millisecond)
			assert.NoError(t, err)
			results[slot] = r
		}(i, weights[i])
		time.Sleep(20 * time.Millisecond)
	}
	wg.Wait()

	assert.Equal(t, int64(1), fees.calls.Load())
	for _, r := range results {
		assert.Equal(t, float64(300), r.TotalWeightGrams)
	}
}

func TestGetDebounced_SeparateProductsDoNotCoalesce(t *testing.T) {
	svc, fees := newCache(t)
	ctx := context.Background()

	other := request(100)
	other.ProductID = "prod-2"

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		_, err := svc.GetDebounced(ctx, request(100), 50*time.Millisecond)
		assert.NoError(t, err)
	}()
	go func() {
		defer wg.Done()
		_, err := svc.GetDebounced(ctx, other, 50*time.Millisecond)
		assert.NoError(t, err)
	}()
	wg.Wait()

	assert.Equal(t, int64(2), fees.calls.Load())
}

func TestGetDebounced_ContextCancellation(t *testing.T) {
	svc, _ := newCache(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := svc.GetDebounced(ctx, request(100), time.Minute)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestGetDebounced_ZeroDelayComputesImmediately(t *testing.T) {
	svc, fees := newCache(t)

	r, err := svc.GetDebounced(context.Background(), request(100), 0)
	assert.NoError(t, err)
	assert.Equal(t, float64(100), r.TotalWeightGrams)
	assert.Equal(t, int64(1), fees.calls.Load())
}

func TestFingerprint_StableAndSensitive(t *testing.T) {
	a := Fingerprint(request(100))
	b := Fingerprint(request(100))
	assert.Equal(t, a, b)

	flipped := request(100)
	flipped.Materials[0].Recyclable = true
	assert.NotEqual(t, a, Fingerprint(flipped))

	regionCase := request(100)
	regionCase.Region = "  OREGON "
	assert.Equal(t, a, Fingerprint(regionCase))
}
