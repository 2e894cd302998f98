package resolvertest

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/getmockd/resolvermock/pkg/events"
)

// recordingTB captures assertion failures instead of failing the test.
type recordingTB struct {
	testing.TB
	failures []string
}

func (r *recordingTB) Error(args ...any) { r.failures = append(r.failures, fmt.Sprint(args...)) }

func (r *recordingTB) Errorf(format string, args ...any) {
	r.failures = append(r.failures, fmt.Sprintf(format, args...))
}

func TestNew(t *testing.T) {
	h := New(t)
	require.NotNil(t, h.Factory)
	require.NotNil(t, h.Session)
	assert.True(t, h.Session.IsAdmin())
	assert.Zero(t, h.Events.Len())
}

func TestResourceBuilder_Commit(t *testing.T) {
	h := New(t)

	r := h.Resource("/content/home").
		WithType("app/page").
		WithProperty("title", "Home").
		WithProperties(map[string]any{"rank": int64(1)}).
		Commit()

	assert.Equal(t, "/content/home", r.Path())
	h.AssertExists(t, "/content/home")
	h.AssertResourceType(t, "/content/home", "app/page")
	h.AssertProperty(t, "/content/home", "title", "Home")
	h.AssertProperty(t, "/content/home", "rank", int64(1))
	h.AssertChildren(t, "/content", "home")
	h.AssertChildren(t, "/content/home")
	h.AssertEvents(t, events.Added, "/content", "/content/home")
	h.AssertEvents(t, events.Removed)
	h.AssertNoChanges(t)
}

func TestResourceBuilder_Stage(t *testing.T) {
	h := New(t)

	h.Resource("/a/b").WithPrimaryType("nt:folder").Stage()

	h.AssertExists(t, "/a/b")
	h.AssertProperty(t, "/a/b", "jcr:primaryType", "nt:folder")
	h.AssertProperty(t, "/a", "jcr:primaryType", "nt:unstructured")
	assert.True(t, h.Session.HasChanges())
	assert.Zero(t, h.Events.Len())
}

func TestResourceBuilder_MergesExisting(t *testing.T) {
	h := New(t)
	h.Resource("/a").WithProperty("x", "1").Commit()
	h.Resource("/a").WithProperty("y", "2").Commit()

	h.AssertProperty(t, "/a", "x", "1")
	h.AssertProperty(t, "/a", "y", "2")
	h.AssertEvents(t, events.Changed, "/a")
}

func TestResourceBuilder_Err(t *testing.T) {
	h := New(t)
	b := h.Resource("/a").WithProperty("", "x")
	assert.Error(t, b.Err())
}

func TestLoadYAML(t *testing.T) {
	h := New(t)
	h.LoadYAML("/content", `
home:
  sling:resourceType: app/page
  about:
    title: About
  contact:
    title: Contact
`)

	h.AssertChildren(t, "/content/home", "about", "contact")
	h.AssertProperty(t, "/content/home/about", "title", "About")
	h.AssertResourceType(t, "/content/home", "app/page")
	h.AssertNoChanges(t)
}

func TestLoadJSON(t *testing.T) {
	h := New(t)
	h.LoadJSON("/data", `{"item": {"count": 3}}`)

	h.AssertProperty(t, "/data/item", "count", int64(3))
	assert.Equal(t, map[string]any{"count": int64(3)}, h.Dump("/data/item", 0))
}

func TestAssertIsResourceType(t *testing.T) {
	h := New(t)
	h.Resource("/libs/app/page").WithSuperType("app/base").Commit()
	h.Resource("/content/x").WithType("app/page").Commit()

	h.AssertIsResourceType(t, "/content/x", "app/page")
	h.AssertIsResourceType(t, "/content/x", "app/base")

	rec := &recordingTB{TB: t}
	h.AssertIsResourceType(rec, "/content/x", "app/other")
	assert.Len(t, rec.failures, 1)
}

func TestAssertions_Fail(t *testing.T) {
	h := New(t)
	h.Resource("/a").WithProperty("x", "1").Commit()

	tests := []struct {
		name   string
		assert func(tb testing.TB)
	}{
		{"exists", func(tb testing.TB) { h.AssertExists(tb, "/missing") }},
		{"missing", func(tb testing.TB) { h.AssertMissing(tb, "/a") }},
		{"children", func(tb testing.TB) { h.AssertChildren(tb, "/", "b") }},
		{"property value", func(tb testing.TB) { h.AssertProperty(tb, "/a", "x", "2") }},
		{"property absent", func(tb testing.TB) { h.AssertProperty(tb, "/a", "y", "1") }},
		{"resource type", func(tb testing.TB) { h.AssertResourceType(tb, "/a", "app/page") }},
		{"events", func(tb testing.TB) { h.AssertEvents(tb, events.Removed, "/a") }},
		{"operations", func(tb testing.TB) { h.AssertOperations(tb, -1) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := &recordingTB{TB: t}
			tt.assert(rec)
			assert.Len(t, rec.failures, 1)
		})
	}
}

func TestAssertNoChanges_Fail(t *testing.T) {
	h := New(t)
	h.Resource("/a").Stage()

	rec := &recordingTB{TB: t}
	h.AssertNoChanges(rec)
	assert.Len(t, rec.failures, 1)
}

func TestAssertOperations(t *testing.T) {
	h := New(t)
	h.Resource("/a").Commit()
	h.Reset()

	h.Session.Get("/a")
	h.Session.Get("/b")
	h.AssertOperations(t, 2)
	assert.Zero(t, h.Events.Len())
}
