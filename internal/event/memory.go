package event

import (
	"context"
	"sync"
)

// MemoryPublisher records events instead of shipping them. Used by tests and
// by local runs without a broker.
type MemoryPublisher struct {
	mu     sync.Mutex
	events []Recorded
}

type Recorded struct {
	Topic string
	Key   string
	Event any
}

func NewMemoryPublisher() *MemoryPublisher {
	return &MemoryPublisher{}
}

func (p *MemoryPublisher) PublishEvent(_ context.Context, topic, key string, event any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, Recorded{Topic: topic, Key: key, Event: event})
	return nil
}

func (p *MemoryPublisher) Events() []Recorded {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]Recorded, len(p.events))
	copy(out, p.events)
	return out
}

func (p *MemoryPublisher) Close() error { return nil }
