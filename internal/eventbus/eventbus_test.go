package eventbus

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublishDeliversToSubscribers(t *testing.T) {
	b := New()
	defer b.Close()

	got := make(chan OrderPlacedEvent, 1)
	b.Subscribe(EventOrderPlaced, func(e DomainEvent) {
		got <- e.(OrderPlacedEvent)
	})

	b.Publish(OrderPlacedEvent{GigID: 7})

	select {
	case e := <-got:
		assert.Equal(t, 7, e.GigID)
	case <-time.After(time.Second):
		t.Fatal("event was not delivered")
	}
}

func TestUnsubscribeStopsDelivery(t *testing.T) {
	b := New()
	defer b.Close()

	var first, second atomic.Int32
	unsubscribe := b.Subscribe(EventRefreshRequested, func(DomainEvent) { first.Add(1) })
	done := make(chan struct{}, 2)
	b.Subscribe(EventRefreshRequested, func(DomainEvent) {
		second.Add(1)
		done <- struct{}{}
	})

	unsubscribe()
	b.Publish(RefreshRequestedEvent{})

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("remaining subscriber not called")
	}
	// give a stray handler goroutine a chance to run
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, int32(0), first.Load())
	assert.Equal(t, int32(1), second.Load())
}

func TestHandlerPanicDoesNotStopBus(t *testing.T) {
	b := New()
	defer b.Close()

	ok := make(chan struct{}, 1)
	b.Subscribe(EventError, func(DomainEvent) { panic("boom") })
	b.Subscribe(EventConfigSaved, func(DomainEvent) { ok <- struct{}{} })

	b.Publish(ErrorEvent{Message: "x"})
	b.Publish(ConfigSavedEvent{})

	select {
	case <-ok:
	case <-time.After(time.Second):
		require.Fail(t, "bus stopped dispatching after a handler panic")
	}
}
