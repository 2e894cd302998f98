package resolver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSession_ListChildrenExcludesTombstones(t *testing.T) {
	_, s := newTestSession(t)
	mustCreate(t, s, "/", "x", nil)
	mustCreate(t, s, "/x", "1", nil)
	mustCreate(t, s, "/x", "2", nil)

	require.NoError(t, s.Delete("/x/1"))
	assert.Equal(t, []string{"/x/2"}, paths(s.ListChildren("/x")))

	require.NoError(t, s.Commit())
	assert.Equal(t, []string{"/x/2"}, paths(s.ListChildren("/x")))
}

func TestSession_ListChildrenDirectOnly(t *testing.T) {
	_, s := newTestSession(t)
	mustCreate(t, s, "/", "a", nil)
	mustCreate(t, s, "/a", "b", nil)
	mustCreate(t, s, "/a/b", "c", nil)
	mustCreate(t, s, "/", "d", nil)

	assert.Equal(t, []string{"/a", "/d"}, paths(s.ListChildren("/")))
	assert.Equal(t, []string{"/a/b"}, paths(s.ListChildren("/a")))
	assert.Empty(t, s.ListChildren("/a/b/c"))
	assert.Empty(t, s.ListChildren("/missing"))
}

func TestSession_ListChildrenOrder(t *testing.T) {
	f, s := newTestSession(t)
	mustCreate(t, s, "/", "p", nil)
	mustCreate(t, s, "/p", "one", Properties{"v": "committed"})
	mustCreate(t, s, "/p", "two", nil)
	require.NoError(t, s.Commit())

	s2 := f.OpenSession(nil)
	defer s2.Close()
	mustCreate(t, s2, "/p", "three", nil)
	require.NoError(t, s2.Modify("/p/one", func(p Properties) error {
		p["v"] = "staged"
		return nil
	}))

	children := s2.ListChildren("/p")
	assert.Equal(t, []string{"/p/one", "/p/two", "/p/three"}, paths(children))
	assert.Equal(t, "staged", children[0].Properties()["v"])
}

func TestSession_ChildrenAndHasChildren(t *testing.T) {
	_, s := newTestSession(t)
	a := mustCreate(t, s, "/", "a", nil)
	mustCreate(t, s, "/a", "b", nil)
	mustCreate(t, s, "/a", "c", nil)

	var names []string
	for c := range a.Children() {
		names = append(names, c.Name())
		break
	}
	assert.Equal(t, []string{"b"}, names)

	assert.True(t, s.HasChildren(a))
	assert.False(t, s.HasChildren(mustGet(t, s, "/a/b")))

	child, ok := a.Child("c")
	require.True(t, ok)
	assert.Equal(t, "/a/c", child.Path())

	parent, ok := child.Parent()
	require.True(t, ok)
	assert.Equal(t, "/a", parent.Path())
}

func TestSession_ListChildrenRelative(t *testing.T) {
	f := New(WithResource("/libs/comp/a", nil), WithResource("/libs/comp/b", nil))
	s := f.OpenSession(nil)
	defer s.Close()

	assert.Equal(t, []string{"/libs/comp/a", "/libs/comp/b"}, paths(s.ListChildren("comp")))
}

func TestSession_Walk(t *testing.T) {
	_, s := newTestSession(t)
	mustCreate(t, s, "/", "a", nil)
	mustCreate(t, s, "/a", "b", nil)
	mustCreate(t, s, "/a/b", "c", nil)
	mustCreate(t, s, "/a", "d", nil)
	mustCreate(t, s, "/", "e", nil)

	var got []string
	for r := range s.Walk("/a") {
		got = append(got, r.Path())
	}
	assert.Equal(t, []string{"/a", "/a/b", "/a/b/c", "/a/d"}, got)

	got = nil
	for r := range s.Walk("/") {
		got = append(got, r.Path())
		if len(got) == 3 {
			break
		}
	}
	assert.Equal(t, []string{"/", "/a", "/a/b"}, got)

	for range s.Walk("/missing") {
		t.Fatal("walk over a missing root must be empty")
	}
}
