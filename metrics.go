package main

import "sync/atomic"

// sessionMetrics tracks running counters for the debug endpoint and HUD.
// Counters are atomic because the debug HTTP server reads them from its own
// goroutine.
type sessionMetrics struct {
	MessagesHandled int64
	MessagesDropped int64
	UnknownActions  int64
	IntentsSent     int64
	IntentsLimited  int64
}

func (m *sessionMetrics) incHandled() { atomic.AddInt64(&m.MessagesHandled, 1) }
func (m *sessionMetrics) incDropped() { atomic.AddInt64(&m.MessagesDropped, 1) }
func (m *sessionMetrics) incUnknown() { atomic.AddInt64(&m.UnknownActions, 1) }
func (m *sessionMetrics) incSent()    { atomic.AddInt64(&m.IntentsSent, 1) }
func (m *sessionMetrics) incLimited() { atomic.AddInt64(&m.IntentsLimited, 1) }

// snapshot returns a read-only copy for JSON output.
func (m *sessionMetrics) snapshot() map[string]any {
	return map[string]any{
		"messages_handled": atomic.LoadInt64(&m.MessagesHandled),
		"messages_dropped": atomic.LoadInt64(&m.MessagesDropped),
		"unknown_actions":  atomic.LoadInt64(&m.UnknownActions),
		"intents_sent":     atomic.LoadInt64(&m.IntentsSent),
		"intents_limited":  atomic.LoadInt64(&m.IntentsLimited),
	}
}
