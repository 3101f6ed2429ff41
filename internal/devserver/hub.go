// SPDX-License-Identifier: MPL-2.0

package devserver

import (
	"sync"

	"github.com/invowk/iconsprite/internal/plugin"
)

// subscriberBuffer is the number of messages a slow client may lag behind
// before further messages to it are dropped.
const subscriberBuffer = 8

// Hub fans reload messages out to SSE subscribers. Send never blocks: a
// subscriber whose buffer is full misses the message.
type Hub struct {
	mu      sync.Mutex
	subs    map[chan plugin.ReloadMessage]struct{}
	closed  bool
	metrics *Metrics
}

// NewHub creates a Hub reporting to m; m may be nil.
func NewHub(m *Metrics) *Hub {
	return &Hub{
		subs:    make(map[chan plugin.ReloadMessage]struct{}),
		metrics: m,
	}
}

// Subscribe registers a subscriber. The returned cancel function
// unregisters it and is safe to call more than once. On a closed Hub the
// channel is already closed.
func (h *Hub) Subscribe() (<-chan plugin.ReloadMessage, func()) {
	ch := make(chan plugin.ReloadMessage, subscriberBuffer)

	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		close(ch)
		return ch, func() {}
	}
	h.subs[ch] = struct{}{}
	h.metrics.clientConnected()

	return ch, func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		if _, ok := h.subs[ch]; !ok {
			return
		}
		delete(h.subs, ch)
		close(ch)
		h.metrics.clientDisconnected()
	}
}

// Send implements plugin.Reloader.
func (h *Hub) Send(msg plugin.ReloadMessage) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return
	}
	h.metrics.reloadSent()
	for ch := range h.subs {
		select {
		case ch <- msg:
		default:
			h.metrics.reloadDropped()
		}
	}
}

// Len returns the number of subscribers.
func (h *Hub) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs)
}

// Close closes every subscriber channel; later Sends are ignored.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return
	}
	h.closed = true
	for ch := range h.subs {
		delete(h.subs, ch)
		close(ch)
		h.metrics.clientDisconnected()
	}
}
