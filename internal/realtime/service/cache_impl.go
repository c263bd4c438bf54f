package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"sync"
	"time"

	calclogdomain "github.com/packlane/packlane/internal/calclog/domain"
	"github.com/packlane/packlane/internal/clock"
	feecalcdomain "github.com/packlane/packlane/internal/feecalc/domain"
	obsmetrics "github.com/packlane/packlane/internal/observability/metrics"
	realtimedomain "github.com/packlane/packlane/internal/realtime/domain"
	"github.com/packlane/packlane/internal/realtime/liveevents"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type Params struct {
	fx.In

	Log     *zap.Logger
	Fees    feecalcdomain.Service
	Audit   calclogdomain.Service `optional:"true"`
	Metrics *obsmetrics.Metrics   `optional:"true"`
	Clock   clock.Clock
	Hub     *liveevents.Hub
}

type subscriber struct {
	id uint64
	fn func(*realtimedomain.RealTimeCalculationResult)
}

type pendingCalc struct {
	timer *time.Timer
	req   realtimedomain.CalculationRequest
	done  chan struct{}

	// set before done is closed
	result *realtimedomain.RealTimeCalculationResult
	err    error
}

type Service struct {
	log     *zap.Logger
	fees    feecalcdomain.Service
	audit   calclogdomain.Service
	metrics *obsmetrics.Metrics
	clock   clock.Clock
	hub     *liveevents.Hub

	mu          sync.Mutex
	cache       map[string]*realtimedomain.RealTimeCalculationResult
	byProduct   map[string]map[string]struct{}
	subscribers map[string]*subscriber
	pending     map[string]*pendingCalc
	nextSubID   uint64
}

func New(p Params) realtimedomain.Service {
	return &Service{
		log:         p.Log.Named("realtime.cache"),
		fees:        p.Fees,
		audit:       p.Audit,
		metrics:     p.Metrics,
		clock:       p.Clock,
		hub:         p.Hub,
		cache:       make(map[string]*realtimedomain.RealTimeCalculationResult),
		byProduct:   make(map[string]map[string]struct{}),
		subscribers: make(map[string]*subscriber),
		pending:     make(map[string]*pendingCalc),
	}
}

// Fingerprint is a stable digest of every fee-affecting input. Two
// requests share a fingerprint exactly when the cached result is valid
// for both.
func Fingerprint(req realtimedomain.CalculationRequest) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s|%s|%g|", req.ProductID, strings.ToLower(strings.TrimSpace(req.Region)), req.Volume)
	for _, m := range req.Materials {
		fmt.Fprintf(&b, "%s:%g:%t:%g:%t:%t;",
			m.Type, m.WeightGrams, m.Recyclable, m.PostconsumerContent, m.Reusable, m.Biodegradable)
	}
	sum := sha256.Sum256([]byte(b.String()))
	return hex.EncodeToString(sum[:])
}

func (s *Service) Get(ctx context.Context, req realtimedomain.CalculationRequest) (*realtimedomain.RealTimeCalculationResult, error) {
	fingerprint := Fingerprint(req)

	s.mu.Lock()
	if cached, ok := s.cache[fingerprint]; ok {
		s.mu.Unlock()
		if s.metrics != nil {
			s.metrics.RecordCacheHit(ctx)
		}
		return cached, nil
	}

	// The calculation is pure and bounded, so it runs under the lock;
	// that is what makes the at-most-once guarantee hold under
	// concurrent callers.
	feeResult, err := s.fees.CalculateFee(ctx, req.Materials, req.Region, req.Volume)
	if err != nil {
		s.mu.Unlock()
		return nil, err
	}

	result := &realtimedomain.RealTimeCalculationResult{
		ProductID:        req.ProductID,
		Region:           feeResult.Region,
		Volume:           feeResult.Volume,
		Breakdown:        feeResult.Breakdown,
		TotalWeightGrams: feeResult.TotalWeightGrams,
		BaseFee:          feeResult.BaseFee,
		TotalFee:         feeResult.TotalFee,
		TotalDiscount:    feeResult.TotalDiscount,
		Fingerprint:      fingerprint,
		LastUpdated:      s.clock.Now(),
	}

	s.cache[fingerprint] = result
	fingerprints := s.byProduct[req.ProductID]
	if fingerprints == nil {
		fingerprints = make(map[string]struct{})
		s.byProduct[req.ProductID] = fingerprints
	}
	fingerprints[fingerprint] = struct{}{}
	sub := s.subscribers[req.ProductID]
	s.mu.Unlock()

	if s.metrics != nil {
		s.metrics.RecordCacheMiss(ctx)
	}
	if s.audit != nil {
		s.audit.Record(ctx, &calclogdomain.CalculationRecord{
			ProductID:     req.ProductID,
			Fingerprint:   fingerprint,
			Region:        result.Region,
			Volume:        result.Volume,
			MaterialCount: len(req.Materials),
			BaseFee:       result.BaseFee,
			TotalFee:      result.TotalFee,
			TotalDiscount: result.TotalDiscount,
		})
	}
	if sub != nil {
		sub.fn(result)
	}
	s.hub.Publish(req.ProductID, liveevents.FromResult(result))

	return result, nil
}

func (s *Service) GetDebounced(ctx context.Context, req realtimedomain.CalculationRequest, delay time.Duration) (*realtimedomain.RealTimeCalculationResult, error) {
	if delay <= 0 {
		return s.Get(ctx, req)
	}

	s.mu.Lock()
	p := s.pending[req.ProductID]
	if p != nil {
		// Supersede: the newer request wins; everyone already waiting
		// observes the newest request's result.
		p.timer.Stop()
		p.req = req
		p.timer = time.AfterFunc(delay, func() { s.fire(req.ProductID) })
		if s.metrics != nil {
			s.metrics.RecordDebounceCoalesced(ctx)
		}
	} else {
		p = &pendingCalc{req: req, done: make(chan struct{})}
		p.timer = time.AfterFunc(delay, func() { s.fire(req.ProductID) })
		s.pending[req.ProductID] = p
	}
	done := p.done
	s.mu.Unlock()

	select {
	case <-done:
		return p.result, p.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (s *Service) fire(productID string) {
	s.mu.Lock()
	p := s.pending[productID]
	if p == nil {
		s.mu.Unlock()
		return
	}
	delete(s.pending, productID)
	req := p.req
	s.mu.Unlock()

	p.result, p.err = s.Get(context.Background(), req)
	close(p.done)
}

func (s *Service) Subscribe(productID string, fn func(*realtimedomain.RealTimeCalculationResult)) func() {
	s.mu.Lock()
	s.nextSubID++
	id := s.nextSubID
	s.subscribers[productID] = &subscriber{id: id, fn: fn}
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		if current := s.subscribers[productID]; current != nil && current.id == id {
			delete(s.subscribers, productID)
		}
		s.mu.Unlock()
	}
}

func (s *Service) ClearCache(productID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if productID == "" {
		s.cache = make(map[string]*realtimedomain.RealTimeCalculationResult)
		s.byProduct = make(map[string]map[string]struct{})
		return
	}
	for fingerprint := range s.byProduct[productID] {
		delete(s.cache, fingerprint)
	}
	delete(s.byProduct, productID)
}
