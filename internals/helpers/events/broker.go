package events

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Topik perubahan data; subscriber cukup tahu "ada yang berubah" lalu refetch.
const (
	TopicCollections   = "collections.changed"
	TopicDistributions = "distributions.changed"
	TopicBeneficiaries = "beneficiaries.changed"
	TopicPayments      = "payments.changed"
)

type Event struct {
	Type     string    `json:"type"`
	MosqueID uuid.UUID `json:"mosque_id"`
	EntityID uuid.UUID `json:"entity_id,omitempty"`
	At       time.Time `json:"at"`
}

func NewEvent(topic string, mosqueID, entityID uuid.UUID) Event {
	return Event{Type: topic, MosqueID: mosqueID, EntityID: entityID, At: time.Now().UTC()}
}

type Publisher interface {
	Publish(ctx context.Context, events ...Event)
}

type Subscriber interface {
	// Subscribe mengembalikan channel event + fungsi cancel (wajib dipanggil).
	Subscribe(filter func(Event) bool) (<-chan Event, func())
}

type subscription struct {
	ch     chan Event
	filter func(Event) bool
}

// Broker: pub/sub in-process. Publish tidak pernah blocking;
// event ke subscriber yang buffer-nya penuh dibuang.
type Broker struct {
	mu     sync.RWMutex
	subs   map[uint64]*subscription
	nextID uint64
	buffer int
	closed bool
	log    *zap.Logger
}

func NewBroker(buffer int, log *zap.Logger) *Broker {
	if buffer <= 0 {
		buffer = 16
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Broker{subs: map[uint64]*subscription{}, buffer: buffer, log: log.Named("events")}
}

func (b *Broker) Subscribe(filter func(Event) bool) (<-chan Event, func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	ch := make(chan Event, b.buffer)
	if b.closed {
		close(ch)
		return ch, func() {}
	}
	id := b.nextID
	b.nextID++
	b.subs[id] = &subscription{ch: ch, filter: filter}

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			b.mu.Lock()
			defer b.mu.Unlock()
			if s, ok := b.subs[id]; ok {
				delete(b.subs, id)
				close(s.ch)
			}
		})
	}
	return ch, cancel
}

func (b *Broker) Publish(_ context.Context, events ...Event) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	for _, ev := range events {
		for _, s := range b.subs {
			if s.filter != nil && !s.filter(ev) {
				continue
			}
			select {
			case s.ch <- ev:
			default:
				b.log.Debug("subscriber lambat, event dibuang", zap.String("type", ev.Type))
			}
		}
	}
}

func (b *Broker) Subscribers() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs)
}

// Close menutup semua subscriber (dipanggil saat shutdown).
func (b *Broker) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	for id, s := range b.subs {
		close(s.ch)
		delete(b.subs, id)
	}
	b.closed = true
}

// Nop publisher untuk handler/test yang tidak butuh notifikasi.
type nopPublisher struct{}

func (nopPublisher) Publish(context.Context, ...Event) {}

func NopPublisher() Publisher { return nopPublisher{} }

func OrNop(p Publisher) Publisher {
	if p == nil {
		return NopPublisher()
	}
	return p
}
