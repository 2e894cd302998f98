package resolver

import (
	"iter"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func findFor(query string, rs ...Resource) FindHandler {
	return func(q, _ string) iter.Seq[Resource] {
		if q != query {
			return nil
		}
		return slices.Values(rs)
	}
}

func queryFor(query string, ps ...Properties) QueryHandler {
	return func(q, _ string) iter.Seq[Properties] {
		if q != query {
			return nil
		}
		return slices.Values(ps)
	}
}

func TestSession_FindResourcesChain(t *testing.T) {
	_, s := newTestSession(t)
	r1 := mustCreate(t, s, "/", "r1", nil)
	r2 := mustCreate(t, s, "/", "r2", nil)

	s.AddFindHandler(findFor("q1", r1))
	s.AddFindHandler(findFor("q2", r2))

	got := slices.Collect(s.FindResources("q1", "lang"))
	assert.Equal(t, []string{"/r1"}, paths(got))

	got = slices.Collect(s.FindResources("q2", "lang"))
	assert.Equal(t, []string{"/r2"}, paths(got))

	seq := s.FindResources("q3", "lang")
	require.NotNil(t, seq)
	assert.Empty(t, slices.Collect(seq))
}

func TestSession_FindResourcesShortCircuits(t *testing.T) {
	_, s := newTestSession(t)
	r := mustCreate(t, s, "/", "r", nil)

	calls := 0
	s.AddFindHandler(findFor("q", r))
	s.AddFindHandler(func(string, string) iter.Seq[Resource] {
		calls++
		return slices.Values([]Resource{r})
	})

	assert.Len(t, slices.Collect(s.FindResources("q", "")), 1)
	assert.Zero(t, calls)
}

func TestSession_FindResourcesEmptyResultWins(t *testing.T) {
	_, s := newTestSession(t)
	r := mustCreate(t, s, "/", "r", nil)

	s.AddFindHandler(func(string, string) iter.Seq[Resource] { return slices.Values([]Resource{}) })
	s.AddFindHandler(findFor("q", r))

	assert.Empty(t, slices.Collect(s.FindResources("q", "")))
}

func TestSession_FindResourcesCopiesMetadata(t *testing.T) {
	_, s := newTestSession(t)
	r := mustCreate(t, s, "/", "r", nil)
	s.AddFindHandler(findFor("q", r))

	first := slices.Collect(s.FindResources("q", ""))
	require.Len(t, first, 1)
	first[0].Metadata()["mutated"] = true

	assert.NotContains(t, r.Metadata(), "mutated")
	second := slices.Collect(s.FindResources("q", ""))
	assert.NotContains(t, second[0].Metadata(), "mutated")
	assert.Equal(t, "/r", second[0].Metadata()[MetaResolutionPath])
}

func TestSession_QueryResourcesChain(t *testing.T) {
	_, s := newTestSession(t)
	row := Properties{"col": "v"}

	s.AddQueryHandler(queryFor("q1", row))

	got := slices.Collect(s.QueryResources("q1", "sql"))
	require.Len(t, got, 1)
	assert.Equal(t, row, got[0])

	got[0]["col"] = "changed"
	assert.Equal(t, "v", row["col"])

	assert.Empty(t, slices.Collect(s.QueryResources("q2", "sql")))
}

func TestFactory_HandlersCopiedAheadOfSessionHandlers(t *testing.T) {
	f := New()
	seed := f.OpenAdminSession()
	defer seed.Close()
	fromFactory := mustCreate(t, seed, "/", "factory", nil)
	fromSession := mustCreate(t, seed, "/", "session", nil)

	f.AddFindHandler(findFor("q", fromFactory))
	f.AddQueryHandler(queryFor("q", Properties{"from": "factory"}))

	s := f.OpenSession(nil)
	defer s.Close()
	s.AddFindHandler(findFor("q", fromSession))
	s.AddQueryHandler(queryFor("q", Properties{"from": "session"}))

	assert.Equal(t, []string{"/factory"}, paths(slices.Collect(s.FindResources("q", ""))))
	rows := slices.Collect(s.QueryResources("q", ""))
	require.Len(t, rows, 1)
	assert.Equal(t, "factory", rows[0]["from"])

	// Handlers added to the factory later do not reach existing sessions.
	f.AddFindHandler(findFor("late", fromFactory))
	assert.Empty(t, slices.Collect(s.FindResources("late", "")))

	other := f.OpenSession(nil)
	defer other.Close()
	assert.Len(t, slices.Collect(other.FindResources("late", "")), 1)
	assert.Empty(t, slices.Collect(other.QueryResources("nothing", "")))
}

func TestFactory_WithFindHandlerOption(t *testing.T) {
	calls := 0
	f := New(WithFindHandler(func(string, string) iter.Seq[Resource] {
		calls++
		return nil
	}), WithFindHandler(nil))
	s := f.OpenSession(nil)
	defer s.Close()

	assert.Empty(t, slices.Collect(s.FindResources("q", "")))
	assert.Equal(t, 1, calls)
}
