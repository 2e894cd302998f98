package resolvertest

import (
	"reflect"
	"slices"
	"testing"

	"github.com/getmockd/resolvermock/pkg/events"
)

// AssertExists asserts that path resolves in the harness session.
func (h *Harness) AssertExists(t testing.TB, path string) {
	t.Helper()

	if _, ok := h.Session.Get(path); !ok {
		t.Errorf("expected resource at %s, found none", path)
	}
}

// AssertMissing asserts that path does not resolve in the harness session.
func (h *Harness) AssertMissing(t testing.TB, path string) {
	t.Helper()

	if r, ok := h.Session.Get(path); ok {
		t.Errorf("expected no resource at %s, found %s", path, r.ResourceType())
	}
}

// AssertChildren asserts the names of the children of path, in order.
func (h *Harness) AssertChildren(t testing.TB, path string, names ...string) {
	t.Helper()

	r, ok := h.Session.Get(path)
	if !ok {
		t.Errorf("expected resource at %s, found none", path)
		return
	}

	actual := []string{}
	for c := range h.Session.Children(r) {
		actual = append(actual, c.Name())
	}
	if names == nil {
		names = []string{}
	}
	if !slices.Equal(actual, names) {
		t.Errorf("children of %s mismatch\nexpected: %q\nactual: %q", path, names, actual)
	}
}

// AssertProperty asserts that the resource at path has key set to expected.
func (h *Harness) AssertProperty(t testing.TB, path, key string, expected any) {
	t.Helper()

	r, ok := h.Session.Get(path)
	if !ok {
		t.Errorf("expected resource at %s, found none", path)
		return
	}

	actual, ok := r.Properties()[key]
	if !ok {
		t.Errorf("resource %s does not have property %q", path, key)
		return
	}
	if !reflect.DeepEqual(actual, expected) {
		t.Errorf("property %q of %s mismatch\nexpected: %#v\nactual: %#v", key, path, expected, actual)
	}
}

// AssertResourceType asserts the resource type of path.
func (h *Harness) AssertResourceType(t testing.TB, path, expected string) {
	t.Helper()

	r, ok := h.Session.Get(path)
	if !ok {
		t.Errorf("expected resource at %s, found none", path)
		return
	}
	if actual := r.ResourceType(); actual != expected {
		t.Errorf("resource type of %s mismatch\nexpected: %q\nactual: %q", path, expected, actual)
	}
}

// AssertIsResourceType asserts that path is of resourceType, directly or
// through its super types.
func (h *Harness) AssertIsResourceType(t testing.TB, path, resourceType string) {
	t.Helper()

	r, ok := h.Session.Get(path)
	if !ok {
		t.Errorf("expected resource at %s, found none", path)
		return
	}
	is, err := h.Session.IsResourceType(r, resourceType)
	if err != nil {
		t.Errorf("resource type check for %s failed: %v", path, err)
		return
	}
	if !is {
		t.Errorf("resource %s (%s) is not of type %q", path, r.ResourceType(), resourceType)
	}
}

// AssertEvents asserts the paths of the recorded events of type typ, in
// emission order.
func (h *Harness) AssertEvents(t testing.TB, typ events.Type, paths ...string) {
	t.Helper()

	actual := h.Events.Paths(typ)
	if actual == nil {
		actual = []string{}
	}
	if paths == nil {
		paths = []string{}
	}
	if !slices.Equal(actual, paths) {
		t.Errorf("%s events mismatch\nexpected: %q\nactual: %q", typ, paths, actual)
	}
}

// AssertNoChanges asserts that the harness session has nothing pending.
func (h *Harness) AssertNoChanges(t testing.TB) {
	t.Helper()

	if h.Session.HasChanges() {
		t.Error("session has uncommitted changes")
	}
}

// AssertOperations asserts the number of operations the session reported to
// the metrics observer since the harness was created or last reset.
func (h *Harness) AssertOperations(t testing.TB, expected int64) {
	t.Helper()

	if actual := h.Metrics.Snapshot().Operations(); actual != expected {
		t.Errorf("operation count mismatch\nexpected: %d\nactual: %d", expected, actual)
	}
}

// Reset clears recorded events and metrics.
func (h *Harness) Reset() {
	h.Events.Reset()
	h.Metrics.Reset()
}
