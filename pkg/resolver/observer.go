package resolver

import (
	"sync/atomic"
	"time"
)

// Observer receives hooks for session operations. Implementations can count
// operations, log them, or feed them to a metrics system. Hooks run on the
// calling goroutine and must not call back into the session.
type Observer interface {
	// OnGet is called after every path lookup.
	OnGet(path string, found bool, duration time.Duration)

	// OnCreate is called after a resource is staged by Create or Copy.
	OnCreate(path string, duration time.Duration)

	// OnDelete is called after Delete; tombstoned counts the path and its descendants.
	OnDelete(path string, tombstoned int, duration time.Duration)

	// OnCommit is called after a commit has been applied to the store.
	OnCommit(added, changed, removed int, duration time.Duration)

	// OnRevert is called after pending changes are discarded.
	OnRevert(discarded int)

	// OnError is called when an operation fails.
	OnError(op string, path string, err error)
}

// NoopObserver is the Observer used when none is configured.
type NoopObserver struct{}

func (NoopObserver) OnGet(string, bool, time.Duration)     {}
func (NoopObserver) OnCreate(string, time.Duration)        {}
func (NoopObserver) OnDelete(string, int, time.Duration)   {}
func (NoopObserver) OnCommit(int, int, int, time.Duration) {}
func (NoopObserver) OnRevert(int)                          {}
func (NoopObserver) OnError(string, string, error)         {}

// MetricsObserver counts session operations. All counters are atomic, so one
// observer can be shared by every session of a factory.
type MetricsObserver struct {
	gets           atomic.Int64
	misses         atomic.Int64
	creates        atomic.Int64
	deletes        atomic.Int64
	commits        atomic.Int64
	added          atomic.Int64
	changed        atomic.Int64
	removed        atomic.Int64
	reverts        atomic.Int64
	errors         atomic.Int64
	totalLatencyNs atomic.Int64
}

// NewMetricsObserver creates a MetricsObserver with all counters at zero.
func NewMetricsObserver() *MetricsObserver {
	return &MetricsObserver{}
}

func (m *MetricsObserver) OnGet(_ string, found bool, d time.Duration) {
	m.gets.Add(1)
	if !found {
		m.misses.Add(1)
	}
	m.totalLatencyNs.Add(int64(d))
}

func (m *MetricsObserver) OnCreate(_ string, d time.Duration) {
	m.creates.Add(1)
	m.totalLatencyNs.Add(int64(d))
}

func (m *MetricsObserver) OnDelete(_ string, _ int, d time.Duration) {
	m.deletes.Add(1)
	m.totalLatencyNs.Add(int64(d))
}

func (m *MetricsObserver) OnCommit(added, changed, removed int, d time.Duration) {
	m.commits.Add(1)
	m.added.Add(int64(added))
	m.changed.Add(int64(changed))
	m.removed.Add(int64(removed))
	m.totalLatencyNs.Add(int64(d))
}

func (m *MetricsObserver) OnRevert(int) {
	m.reverts.Add(1)
}

func (m *MetricsObserver) OnError(string, string, error) {
	m.errors.Add(1)
}

// Snapshot returns a point-in-time copy of the counters.
func (m *MetricsObserver) Snapshot() MetricsSnapshot {
	return MetricsSnapshot{
		Gets:         m.gets.Load(),
		Misses:       m.misses.Load(),
		Creates:      m.creates.Load(),
		Deletes:      m.deletes.Load(),
		Commits:      m.commits.Load(),
		Added:        m.added.Load(),
		Changed:      m.changed.Load(),
		Removed:      m.removed.Load(),
		Reverts:      m.reverts.Load(),
		Errors:       m.errors.Load(),
		TotalLatency: time.Duration(m.totalLatencyNs.Load()),
	}
}

// Reset sets every counter back to zero.
func (m *MetricsObserver) Reset() {
	for _, c := range []*atomic.Int64{
		&m.gets, &m.misses, &m.creates, &m.deletes, &m.commits,
		&m.added, &m.changed, &m.removed, &m.reverts, &m.errors, &m.totalLatencyNs,
	} {
		c.Store(0)
	}
}

// MetricsSnapshot is a point-in-time copy of MetricsObserver counters.
type MetricsSnapshot struct {
	Gets         int64         `json:"gets" yaml:"gets"`
	Misses       int64         `json:"misses" yaml:"misses"`
	Creates      int64         `json:"creates" yaml:"creates"`
	Deletes      int64         `json:"deletes" yaml:"deletes"`
	Commits      int64         `json:"commits" yaml:"commits"`
	Added        int64         `json:"added" yaml:"added"`
	Changed      int64         `json:"changed" yaml:"changed"`
	Removed      int64         `json:"removed" yaml:"removed"`
	Reverts      int64         `json:"reverts" yaml:"reverts"`
	Errors       int64         `json:"errors" yaml:"errors"`
	TotalLatency time.Duration `json:"totalLatencyNs" yaml:"totalLatencyNs"`
}

// Operations returns the number of successful reads and writes.
func (s MetricsSnapshot) Operations() int64 {
	return s.Gets + s.Creates + s.Deletes + s.Commits
}
