package liveevents

import (
	"errors"
	"strings"
	"sync"

	realtimedomain "github.com/packlane/packlane/internal/realtime/domain"
)

const (
	DefaultBufferSize       = 50
	DefaultSubscriberBuffer = 16
)

// CalculationEvent is one recalculation notice on a product stream.
type CalculationEvent struct {
	ProductID     string  `json:"product_id"`
	Fingerprint   string  `json:"fingerprint"`
	Region        string  `json:"region"`
	TotalFee      float64 `json:"total_fee"`
	TotalDiscount float64 `json:"total_discount"`
	UpdatedAt     string  `json:"updated_at"`
}

func FromResult(result *realtimedomain.RealTimeCalculationResult) CalculationEvent {
	return CalculationEvent{
		ProductID:     result.ProductID,
		Fingerprint:   result.Fingerprint,
		Region:        result.Region,
		TotalFee:      result.TotalFee,
		TotalDiscount: result.TotalDiscount,
		UpdatedAt:     result.LastUpdated.Format("2006-01-02T15:04:05.000Z07:00"),
	}
}

// Hub fans recalculation events out to any number of stream listeners
// per product. Slow listeners drop events rather than block the
// calculation path.
type Hub struct {
	mu               sync.RWMutex
	streams          map[string]*stream
	bufferSize       int
	subscriberBuffer int
}

type stream struct {
	mu     sync.Mutex
	buffer []CalculationEvent
	subs   map[uint64]chan CalculationEvent
	nextID uint64
}

type Subscription struct {
	hub       *Hub
	productID string
	id        uint64
	ch        chan CalculationEvent
	once      sync.Once
}

func NewHub() *Hub {
	return &Hub{
		streams:          make(map[string]*stream),
		bufferSize:       DefaultBufferSize,
		subscriberBuffer: DefaultSubscriberBuffer,
	}
}

func (h *Hub) Publish(productID string, event CalculationEvent) {
	if h == nil {
		return
	}
	id := strings.TrimSpace(productID)
	if id == "" {
		return
	}
	h.mu.RLock()
	stream := h.streams[id]
	h.mu.RUnlock()
	if stream == nil {
		return
	}

	stream.mu.Lock()
	stream.buffer = append(stream.buffer, event)
	if len(stream.buffer) > h.bufferSize {
		stream.buffer = stream.buffer[len(stream.buffer)-h.bufferSize:]
	}
	subs := make([]chan CalculationEvent, 0, len(stream.subs))
	for _, ch := range stream.subs {
		subs = append(subs, ch)
	}
	stream.mu.Unlock()

	for _, ch := range subs {
		select {
		case ch <- event:
		default:
		}
	}
}

func (h *Hub) Subscribe(productID string) (*Subscription, []CalculationEvent, error) {
	if h == nil {
		return nil, nil, errors.New("hub_unavailable")
	}
	id := strings.TrimSpace(productID)
	if id == "" {
		return nil, nil, errors.New("invalid_product_id")
	}

	stream := h.ensureStream(id)
	stream.mu.Lock()
	if stream.subs == nil {
		stream.subs = make(map[uint64]chan CalculationEvent)
	}
	subID := stream.nextID
	stream.nextID++
	ch := make(chan CalculationEvent, h.subscriberBuffer)
	stream.subs[subID] = ch
	buffer := append([]CalculationEvent(nil), stream.buffer...)
	stream.mu.Unlock()

	return &Subscription{
		hub:       h,
		productID: id,
		id:        subID,
		ch:        ch,
	}, buffer, nil
}

func (h *Hub) ensureStream(productID string) *stream {
	h.mu.RLock()
	current := h.streams[productID]
	h.mu.RUnlock()
	if current != nil {
		return current
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	current = h.streams[productID]
	if current == nil {
		current = &stream{subs: make(map[uint64]chan CalculationEvent)}
		h.streams[productID] = current
	}
	return current
}

func (h *Hub) unsubscribe(productID string, id uint64) {
	if h == nil {
		return
	}
	code := strings.TrimSpace(productID)
	if code == "" {
		return
	}

	h.mu.RLock()
	stream := h.streams[code]
	h.mu.RUnlock()
	if stream == nil {
		return
	}

	stream.mu.Lock()
	delete(stream.subs, id)
	remaining := len(stream.subs)
	stream.mu.Unlock()
	if remaining != 0 {
		return
	}

	h.mu.Lock()
	current := h.streams[code]
	if current != stream {
		h.mu.Unlock()
		return
	}
	stream.mu.Lock()
	empty := len(stream.subs) == 0
	stream.mu.Unlock()
	if empty {
		delete(h.streams, code)
	}
	h.mu.Unlock()
}

func (s *Subscription) Events() <-chan CalculationEvent {
	if s == nil {
		return nil
	}
	return s.ch
}

func (s *Subscription) Close() {
	if s == nil || s.hub == nil {
		return
	}
	s.once.Do(func() {
		s.hub.unsubscribe(s.productID, s.id)
	})
}
