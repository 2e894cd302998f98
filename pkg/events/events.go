package events

import (
	"context"
	"log/slog"
	"slices"
	"sync"
	"time"
)

// Type is the kind of change an event reports.
type Type string

const (
	// Added reports a path that was newly written to the store.
	Added Type = "ADDED"
	// Changed reports a path whose existing store entry was overwritten.
	Changed Type = "CHANGED"
	// Removed reports a path that was removed from the store.
	Removed Type = "REMOVED"
)

// Topic returns the topic name for the event type, e.g. "resource/ADDED".
func (t Type) Topic() string {
	return "resource/" + string(t)
}

// Event describes one committed change.
type Event struct {
	// ID is a time-ordered unique identifier.
	ID string `json:"id" yaml:"id"`
	// Type is the kind of change.
	Type Type `json:"type" yaml:"type"`
	// Path is the affected resource path.
	Path string `json:"path" yaml:"path"`
	// ResourceType is the sling:resourceType of the written properties, if set.
	// Always empty for Removed.
	ResourceType string `json:"resourceType,omitempty" yaml:"resourceType,omitempty"`
	// Session is the ID of the committing session.
	Session string `json:"session,omitempty" yaml:"session,omitempty"`
	// Time is when the change was applied.
	Time time.Time `json:"time" yaml:"time"`
}

// Emitter receives committed change events.
type Emitter interface {
	Emit(Event)
}

// EmitterFunc adapts a function to the Emitter interface.
type EmitterFunc func(Event)

// Emit calls f(e).
func (f EmitterFunc) Emit(e Event) { f(e) }

// Multi fans an event out to every emitter in order. Nil entries are skipped.
type Multi []Emitter

// Emit forwards e to every emitter.
func (m Multi) Emit(e Event) {
	for _, em := range m {
		if em != nil {
			em.Emit(e)
		}
	}
}

// Filter returns an emitter that forwards only events of the given types.
func Filter(next Emitter, types ...Type) Emitter {
	return EmitterFunc(func(e Event) {
		if slices.Contains(types, e.Type) {
			next.Emit(e)
		}
	})
}

// Channel returns an emitter that sends each event on ch.
// The send blocks, so ch must be drained or buffered by the caller.
func Channel(ch chan<- Event) Emitter {
	return EmitterFunc(func(e Event) { ch <- e })
}

// Log returns an emitter that writes each event to logger at the given level.
func Log(logger *slog.Logger, level slog.Level) Emitter {
	return EmitterFunc(func(e Event) {
		attrs := []slog.Attr{
			slog.String("topic", e.Type.Topic()),
			slog.String("path", e.Path),
		}
		if e.ResourceType != "" {
			attrs = append(attrs, slog.String("resourceType", e.ResourceType))
		}
		if e.Session != "" {
			attrs = append(attrs, slog.String("session", e.Session))
		}
		logger.LogAttrs(context.Background(), level, "resource event", attrs...)
	})
}

// Recorder keeps every emitted event in memory. It is safe for concurrent use.
type Recorder struct {
	mu     sync.Mutex
	events []Event
}

// NewRecorder creates an empty Recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// Emit records e.
func (r *Recorder) Emit(e Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

// Events returns a copy of the recorded events in emission order.
func (r *Recorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.events)
}

// Paths returns the paths of recorded events of type t, in emission order.
func (r *Recorder) Paths(t Type) []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	var paths []string
	for _, e := range r.events {
		if e.Type == t {
			paths = append(paths, e.Path)
		}
	}
	return paths
}

// Len returns the number of recorded events.
func (r *Recorder) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.events)
}

// Reset discards all recorded events.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = nil
}
