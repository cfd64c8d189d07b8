package events

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	helpersAuth "zakatconnect_backend/internals/helpers/auth"
)

func receive(t *testing.T, ch <-chan Event) Event {
	t.Helper()
	select {
	case ev, ok := <-ch:
		require.True(t, ok, "channel closed")
		return ev
	case <-time.After(time.Second):
		t.Fatal("no event received")
	}
	return Event{}
}

func TestBroker_PublishSubscribe(t *testing.T) {
	b := NewBroker(4, nil)
	m1 := uuid.New()

	ch, cancel := b.Subscribe(nil)
	defer cancel()

	b.Publish(context.Background(), NewEvent(TopicCollections, m1, uuid.New()))

	ev := receive(t, ch)
	assert.Equal(t, TopicCollections, ev.Type)
	assert.Equal(t, m1, ev.MosqueID)
}

func TestBroker_ScopeFilter(t *testing.T) {
	b := NewBroker(4, nil)
	mine, other := uuid.New(), uuid.New()

	ch, cancel := b.Subscribe(ScopeFilter(helpersAuth.Scope{MosqueIDs: []uuid.UUID{mine}}))
	defer cancel()

	b.Publish(context.Background(),
		NewEvent(TopicDistributions, other, uuid.Nil),
		NewEvent(TopicDistributions, mine, uuid.Nil),
	)

	ev := receive(t, ch)
	assert.Equal(t, mine, ev.MosqueID)
	assert.Len(t, ch, 0)
}

func TestBroker_FullBufferDoesNotBlock(t *testing.T) {
	b := NewBroker(1, nil)
	ch, cancel := b.Subscribe(nil)
	defer cancel()

	done := make(chan struct{})
	go func() {
		for i := 0; i < 10; i++ {
			b.Publish(context.Background(), NewEvent(TopicCollections, uuid.New(), uuid.Nil))
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("publish blocked on a slow subscriber")
	}
	assert.Len(t, ch, 1)
}

func TestBroker_CancelAndClose(t *testing.T) {
	b := NewBroker(1, nil)

	ch, cancel := b.Subscribe(nil)
	assert.Equal(t, 1, b.Subscribers())
	cancel()
	cancel() // idempotent
	assert.Equal(t, 0, b.Subscribers())
	_, ok := <-ch
	assert.False(t, ok)

	ch2, _ := b.Subscribe(nil)
	b.Close()
	_, ok = <-ch2
	assert.False(t, ok)

	ch3, cancel3 := b.Subscribe(nil)
	defer cancel3()
	_, ok = <-ch3
	assert.False(t, ok, "subscribe after close returns closed channel")
}
