package resolver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSession_GetNormalizes(t *testing.T) {
	_, s := newTestSession(t)
	mustCreate(t, s, "/", "a", nil)
	mustCreate(t, s, "/a", "b", nil)

	for _, p := range []string{"/a/b", "/a//b", "/a/./b/", "/a/x/../b"} {
		r, ok := s.Get(p)
		require.True(t, ok, p)
		assert.Equal(t, "/a/b", r.Path(), p)
	}

	_, ok := s.Get("/..")
	assert.False(t, ok)
	_, ok = s.Get("")
	assert.False(t, ok)
}

func TestSession_GetRoot(t *testing.T) {
	_, s := newTestSession(t)

	r := mustGet(t, s, "/")
	assert.Equal(t, "/", r.Path())
	assert.Equal(t, "", r.Name())
	assert.Equal(t, RootPrimaryType, r.ResourceType())
	_, ok := r.Parent()
	assert.False(t, ok)
}

func TestSession_GetRelativeUsesSearchPaths(t *testing.T) {
	f := New(
		WithResource("/apps/app/page", Properties{"from": "apps"}),
		WithResource("/libs/app/page", Properties{"from": "libs"}),
		WithResource("/libs/app/only", Properties{"from": "libs"}),
	)
	s := f.OpenSession(nil)
	defer s.Close()

	r := mustGet(t, s, "app/page")
	assert.Equal(t, "/apps/app/page", r.Path())

	r = mustGet(t, s, "app/only")
	assert.Equal(t, "/libs/app/only", r.Path())

	_, ok := s.Get("app/missing")
	assert.False(t, ok)
}

func TestSession_GetRelativeWithoutSearchPaths(t *testing.T) {
	f := New(WithSearchPaths(), WithResource("/apps/x", nil))
	s := f.OpenSession(nil)
	defer s.Close()

	_, ok := s.Get("x")
	assert.False(t, ok)
	assert.Empty(t, s.SearchPath())
}

func TestSession_GetPropertyFallback(t *testing.T) {
	_, s := newTestSession(t)
	mustCreate(t, s, "/", "page", Properties{"title": "Hello", "count": int64(2)})

	r := mustGet(t, s, "/page/title")
	prop, ok := r.(*PropertyResource)
	require.True(t, ok)
	assert.Equal(t, "/page/title", prop.Path())
	assert.Equal(t, "title", prop.Key())
	assert.Equal(t, "Hello", prop.Value())
	assert.Empty(t, prop.ResourceType())

	parent, ok := prop.Parent()
	require.True(t, ok)
	assert.Equal(t, "/page", parent.Path())

	n, ok := PropertyAs[int64](mustGet(t, s, "/page/count"), "count")
	assert.True(t, ok)
	assert.Equal(t, int64(2), n)

	_, ok = s.Get("/page/missing")
	assert.False(t, ok)
}

func TestSession_ChildWinsOverProperty(t *testing.T) {
	_, s := newTestSession(t)
	mustCreate(t, s, "/", "page", Properties{"child": "prop"})
	mustCreate(t, s, "/page", "child", nil)

	_, isNode := mustGet(t, s, "/page/child").(*Node)
	assert.True(t, isNode)
}

func TestSession_GetFrom(t *testing.T) {
	_, s := newTestSession(t)
	mustCreate(t, s, "/", "a", nil)
	mustCreate(t, s, "/a", "b", nil)
	root := mustGet(t, s, "/")
	a := mustGet(t, s, "/a")

	r, ok := s.GetFrom(a, "b")
	require.True(t, ok)
	assert.Equal(t, "/a/b", r.Path())

	r, ok = s.GetFrom(root, "a")
	require.True(t, ok)
	assert.Equal(t, "/a", r.Path())

	r, ok = s.GetFrom(a, "/a/b")
	require.True(t, ok)
	assert.Equal(t, "/a/b", r.Path())

	r, ok = s.GetFrom(a, "")
	require.True(t, ok)
	assert.Equal(t, "/", r.Path())
}

func TestSession_Resolve(t *testing.T) {
	_, s := newTestSession(t)
	mustCreate(t, s, "/", "page", nil)

	tests := []struct {
		name        string
		path        string
		wantPath    string
		wantMissing bool
		wantInfo    string
	}{
		{"existing", "/page", "/page", false, ""},
		{"empty is root", "", "/", false, ""},
		{"query suffix", "/page?x=1", "/page", false, "?x=1"},
		{"fragment suffix", "/page#top", "/page", false, "#top"},
		{"fragment before query", "/page#a?b", "/page", false, "#a?b"},
		{"missing", "/nope?x=1", "/nope?x=1", true, "?x=1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := s.Resolve(tt.path)
			require.NotNil(t, r)
			assert.Equal(t, tt.wantPath, r.Path())
			assert.Equal(t, tt.wantMissing, IsNonExisting(r))
			if tt.wantMissing {
				assert.Equal(t, TypeNonExisting, r.ResourceType())
			}
			if tt.wantInfo != "" {
				assert.Equal(t, tt.wantInfo, r.Metadata()[MetaResolutionPathInfo])
			} else {
				assert.NotContains(t, r.Metadata(), MetaResolutionPathInfo)
			}
		})
	}
}

func TestSession_GetHidesTombstoned(t *testing.T) {
	_, s := newTestSession(t)
	mustCreate(t, s, "/", "a", Properties{"p": 1})
	require.NoError(t, s.Commit())
	require.NoError(t, s.Delete("/a"))

	_, ok := s.Get("/a")
	assert.False(t, ok)
	_, ok = s.Get("/a/p")
	assert.False(t, ok)
}

func TestSession_GetRelativePropertyFallbackPerSearchPath(t *testing.T) {
	tests := []struct {
		name     string
		opts     []Option
		path     string
		wantPath string
		property bool
	}{
		{
			name: "property below a later search path",
			opts: []Option{
				WithResource("/apps/a", Properties{"x": int64(1)}),
				WithResource("/libs/a", Properties{"prop": "v"}),
			},
			path:     "a/prop",
			wantPath: "/libs/a/prop",
			property: true,
		},
		{
			name: "earlier property wins over later node",
			opts: []Option{
				WithResource("/apps/a", Properties{"b": "prop"}),
				WithResource("/libs/a/b", nil),
			},
			path:     "a/b",
			wantPath: "/apps/a/b",
			property: true,
		},
		{
			name: "earlier node wins over later property",
			opts: []Option{
				WithResource("/apps/a/b", nil),
				WithResource("/libs/a", Properties{"b": "prop"}),
			},
			path:     "a/b",
			wantPath: "/apps/a/b",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New(tt.opts...).OpenSession(nil)
			defer s.Close()

			r := mustGet(t, s, tt.path)
			assert.Equal(t, tt.wantPath, r.Path())
			_, isProperty := r.(*PropertyResource)
			assert.Equal(t, tt.property, isProperty)
		})
	}
}

func TestSession_GetHidesDeletedProperty(t *testing.T) {
	_, s := newTestSession(t)
	mustCreate(t, s, "/", "a", Properties{"prop": "v"})
	require.NoError(t, s.Commit())

	mustGet(t, s, "/a/prop")
	require.NoError(t, s.Delete("/a/prop"))

	_, ok := s.Get("/a/prop")
	assert.False(t, ok)
	mustGet(t, s, "/a")

	s.Revert()
	mustGet(t, s, "/a/prop")
}
