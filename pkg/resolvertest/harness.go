package resolvertest

import (
	"strings"
	"testing"

	"github.com/getmockd/resolvermock/pkg/events"
	"github.com/getmockd/resolvermock/pkg/fixture"
	"github.com/getmockd/resolvermock/pkg/logging"
	"github.com/getmockd/resolvermock/pkg/resolver"
)

// Harness bundles a factory, an admin session on it and recorders for the
// events and operations it sees.
type Harness struct {
	t       testing.TB
	Factory *resolver.Factory
	Session *resolver.Session
	Events  *events.Recorder
	Metrics *resolver.MetricsObserver
}

// New creates a harness. opts are applied after the harness's own emitter,
// observer and logger, so passing WithEmitter or WithObserver disables the
// matching recorder.
func New(t testing.TB, opts ...resolver.Option) *Harness {
	t.Helper()

	rec := events.NewRecorder()
	metrics := resolver.NewMetricsObserver()
	logger := logging.New(logging.Config{
		Level:  logging.LevelWarn,
		Format: logging.FormatText,
		Output: t.Output(),
	})

	base := []resolver.Option{
		resolver.WithEmitter(rec),
		resolver.WithObserver(metrics),
		resolver.WithLogger(logger),
	}
	f := resolver.New(append(base, opts...)...)
	s := f.OpenAdminSession()
	t.Cleanup(s.Close)

	return &Harness{
		t:       t,
		Factory: f,
		Session: s,
		Events:  rec,
		Metrics: metrics,
	}
}

// Resource starts building a resource at path. Nothing is staged until
// Stage or Commit is called.
func (h *Harness) Resource(path string) *ResourceBuilder {
	return &ResourceBuilder{h: h, path: path, props: resolver.Properties{}}
}

// LoadYAML loads a YAML fixture below target and commits it.
func (h *Harness) LoadYAML(target, doc string) {
	h.t.Helper()
	h.load(target, doc, fixture.FormatYAML)
}

// LoadJSON loads a JSON fixture below target and commits it.
func (h *Harness) LoadJSON(target, doc string) {
	h.t.Helper()
	h.load(target, doc, fixture.FormatJSON)
}

func (h *Harness) load(target, doc string, format fixture.Format) {
	h.t.Helper()
	if err := fixture.Load(h.Session, target, strings.NewReader(doc), format); err != nil {
		h.t.Fatalf("failed to load fixture at %s: %v", target, err)
	}
	h.Commit()
}

// Commit commits the harness session and fails the test on error.
func (h *Harness) Commit() {
	h.t.Helper()
	if err := h.Session.Commit(); err != nil {
		h.t.Fatalf("commit failed: %v", err)
	}
}

// Get returns the resource at path and fails the test if there is none.
func (h *Harness) Get(path string) resolver.Resource {
	h.t.Helper()
	r, ok := h.Session.Get(path)
	if !ok {
		h.t.Fatalf("no resource at %s", path)
	}
	return r
}

// Dump renders the subtree at path as nested maps. See fixture.Dump.
func (h *Harness) Dump(path string, depth int) map[string]any {
	h.t.Helper()
	out, err := fixture.Dump(h.Session, path, depth)
	if err != nil {
		h.t.Fatalf("dump %s: %v", path, err)
	}
	return out
}
