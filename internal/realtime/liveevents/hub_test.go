package liveevents

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHub_PublishReachesSubscribers(t *testing.T) {
	hub := NewHub()

	sub, backlog, err := hub.Subscribe("prod-1")
	assert.NoError(t, err)
	assert.Empty(t, backlog)
	defer sub.Close()

	hub.Publish("prod-1", CalculationEvent{ProductID: "prod-1", TotalFee: 1.5})
	hub.Publish("prod-2", CalculationEvent{ProductID: "prod-2", TotalFee: 9})

	event := <-sub.Events()
	assert.Equal(t, "prod-1", event.ProductID)
	assert.Equal(t, 1.5, event.TotalFee)
	select {
	case extra := <-sub.Events():
		t.Fatalf("unexpected event for %s", extra.ProductID)
	default:
	}
}

func TestHub_BacklogReplayedToLateSubscriber(t *testing.T) {
	hub := NewHub()

	warm, _, err := hub.Subscribe("prod-1")
	assert.NoError(t, err)
	hub.Publish("prod-1", CalculationEvent{Fingerprint: "fp-1"})
	hub.Publish("prod-1", CalculationEvent{Fingerprint: "fp-2"})

	late, backlog, err := hub.Subscribe("prod-1")
	assert.NoError(t, err)
	assert.Len(t, backlog, 2)
	assert.Equal(t, "fp-1", backlog[0].Fingerprint)

	warm.Close()
	late.Close()
}

func TestHub_CloseIsIdempotent(t *testing.T) {
	hub := NewHub()

	sub, _, err := hub.Subscribe("prod-1")
	assert.NoError(t, err)
	sub.Close()
	sub.Close()

	_, _, err = hub.Subscribe("")
	assert.Error(t, err)
}
