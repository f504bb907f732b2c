// Package state holds the small pieces of client-side shared state: an
// in-process event bus and a file-backed expiring cache.
package state

import "sync"

// TopicTaskCreated is published whenever a task is created anywhere in the
// client, so unrelated views can prepend it without a refetch.
const TopicTaskCreated = "task_created"

// subscriberBuffer is the per-subscriber channel depth; publishes to a
// full subscriber are dropped rather than blocking the publisher.
const subscriberBuffer = 16

// Bus is a minimal publish/subscribe hub. It replaces the ambient
// window-level broadcast event of the web client with an explicit value
// handed to the components that need it.
type Bus struct {
	mu   sync.Mutex
	subs map[string]map[int]chan any
	next int
}

// NewBus creates an empty bus.
func NewBus() *Bus {
	return &Bus{subs: make(map[string]map[int]chan any)}
}

// Subscribe returns a channel receiving all future payloads published to
// topic, and a cancel function that closes it.
func (b *Bus) Subscribe(topic string) (<-chan any, func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	ch := make(chan any, subscriberBuffer)
	if b.subs[topic] == nil {
		b.subs[topic] = make(map[int]chan any)
	}
	id := b.next
	b.next++
	b.subs[topic][id] = ch

	cancel := func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		if sub, ok := b.subs[topic][id]; ok {
			delete(b.subs[topic], id)
			close(sub)
		}
	}
	return ch, cancel
}

// Publish delivers payload to every subscriber of topic. Never blocks.
func (b *Bus) Publish(topic string, payload any) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for _, ch := range b.subs[topic] {
		select {
		case ch <- payload:
		default:
		}
	}
}
