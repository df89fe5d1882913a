package eventbus

import (
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestPublishDeliversToSubscribers(t *testing.T) {
	defer goleak.VerifyNone(t)

	b := New(nil)
	defer b.Close()

	got := make(chan SelectionSavedEvent, 1)
	b.Subscribe(EventSelectionSaved, func(e DomainEvent) {
		if ev, ok := e.(SelectionSavedEvent); ok {
			got <- ev
		}
	})

	b.Publish(SelectionSavedEvent{Revision: 7})

	select {
	case ev := <-got:
		assert.Equal(t, uint64(7), ev.Revision)
	case <-time.After(time.Second):
		t.Fatal("event was not delivered")
	}
}

func TestUnsubscribeStopsDelivery(t *testing.T) {
	defer goleak.VerifyNone(t)

	b := New(nil)

	var calls atomic.Int32
	unsubscribe := b.Subscribe(EventError, func(DomainEvent) { calls.Add(1) })
	unsubscribe()

	b.Publish(ErrorEvent{Message: "boom", Err: errors.New("boom")})
	b.Close()

	assert.Equal(t, int32(0), calls.Load())
}

func TestHandlerPanicIsRecovered(t *testing.T) {
	defer goleak.VerifyNone(t)

	b := New(nil)

	delivered := make(chan struct{})
	b.Subscribe(EventCatalogLoaded, func(DomainEvent) { panic("handler exploded") })
	b.Subscribe(EventCatalogLoaded, func(DomainEvent) { close(delivered) })

	b.Publish(CatalogLoadedEvent{Count: 3})

	select {
	case <-delivered:
	case <-time.After(time.Second):
		t.Fatal("second handler did not run")
	}
	b.Close()
}

func TestPublishAfterCloseIsIgnored(t *testing.T) {
	defer goleak.VerifyNone(t)

	b := New(nil)
	b.Close()

	require.NotPanics(t, func() {
		b.Publish(SelectionLoadedEvent{Count: 1})
	})
	b.Close()
}

func TestCloseDeliversQueuedEvents(t *testing.T) {
	defer goleak.VerifyNone(t)

	b := New(nil)

	var calls atomic.Int32
	b.Subscribe(EventSelectionChanged, func(DomainEvent) { calls.Add(1) })

	for i := 1; i <= 20; i++ {
		b.Publish(SelectionChangedEvent{Revision: uint64(i)})
	}
	b.Close()

	assert.Equal(t, int32(20), calls.Load())

	b.Publish(SelectionChangedEvent{Revision: 21})
	assert.Equal(t, int32(20), calls.Load())
}
