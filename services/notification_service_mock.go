package services

import (
	"context"
	"sync"
)

// RecordedEvent captures one published notification for assertions
type RecordedEvent struct {
	Channel string
	Event   string
	Payload interface{}
}

// RecorderSink is an in-memory NotificationSink for testing
type RecorderSink struct {
	mu     sync.Mutex
	events []RecordedEvent
}

// NewRecorderSink creates a new recorder sink
func NewRecorderSink() *RecorderSink {
	return &RecorderSink{}
}

// SetAsSinkForTesting installs this recorder as the global sink
func (r *RecorderSink) SetAsSinkForTesting() {
	SetNotificationSink(r)
}

// Publish records the event
func (r *RecorderSink) Publish(ctx context.Context, channel, event string, payload interface{}) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, RecordedEvent{Channel: channel, Event: event, Payload: payload})
	return nil
}

// Close is a no-op
func (r *RecorderSink) Close() {}

// Events returns a copy of everything published so far
func (r *RecorderSink) Events() []RecordedEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]RecordedEvent, len(r.events))
	copy(out, r.events)
	return out
}

// EventsFor returns the events published to a single channel
func (r *RecorderSink) EventsFor(channel string) []RecordedEvent {
	var out []RecordedEvent
	for _, e := range r.Events() {
		if e.Channel == channel {
			out = append(out, e)
		}
	}
	return out
}

// Reset clears recorded events
func (r *RecorderSink) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = nil
}
