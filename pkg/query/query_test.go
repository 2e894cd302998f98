package query

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/getmockd/resolvermock/pkg/resolver"
)

func newSession(t *testing.T) *resolver.Session {
	t.Helper()
	f := resolver.New(
		resolver.WithResource("/content/home", resolver.Properties{
			resolver.PropResourceType: "app/page",
			"title":                   "Home",
		}),
		resolver.WithResource("/content/home/jcr:content", resolver.Properties{"rank": int64(1)}),
		resolver.WithResource("/content/about", resolver.Properties{
			resolver.PropResourceType: "app/page",
			"title":                   "About us",
		}),
		resolver.WithResource("/content/about/jcr:content", resolver.Properties{"rank": int64(2)}),
		resolver.WithResource("/content/news", resolver.Properties{
			resolver.PropResourceType: "app/folder",
		}),
	)
	s := f.OpenAdminSession()
	t.Cleanup(s.Close)
	return s
}

func pathsOf(rs []resolver.Resource) []string {
	out := make([]string, 0, len(rs))
	for _, r := range rs {
		out = append(out, r.Path())
	}
	return out
}

func TestStatic(t *testing.T) {
	s := newSession(t)
	home, ok := s.Get("/content/home")
	require.True(t, ok)

	s.AddFindHandler(Static(map[Key][]resolver.Resource{
		{Query: "home", Language: "test"}: {home},
	}))

	assert.Equal(t, []string{"/content/home"}, pathsOf(slices.Collect(s.FindResources("home", "test"))))
	assert.Empty(t, slices.Collect(s.FindResources("home", "other")))
	assert.Empty(t, slices.Collect(s.FindResources("missing", "test")))
}

func TestStaticQuery(t *testing.T) {
	s := newSession(t)
	s.AddQueryHandler(StaticQuery(map[Key][]resolver.Properties{
		{Query: "count", Language: "sql"}: {{"n": int64(3)}},
	}))

	rows := slices.Collect(s.QueryResources("count", "sql"))
	require.Len(t, rows, 1)
	assert.Equal(t, int64(3), rows[0]["n"])
	assert.Empty(t, slices.Collect(s.QueryResources("count", "xpath")))
}

func TestGlob(t *testing.T) {
	tests := []struct {
		name    string
		pattern string
		lang    string
		want    []string
	}{
		{"descendant names", "/content/**/jcr:content", LanguageGlob, []string{"/content/home/jcr:content", "/content/about/jcr:content"}},
		{"single level", "/content/*", LanguageGlob, []string{"/content/home", "/content/about", "/content/news"}},
		{"alternatives", "/content/{home,news}", LanguageGlob, []string{"/content/home", "/content/news"}},
		{"no match", "/apps/**", LanguageGlob, []string{}},
		{"invalid pattern", "/content/[", LanguageGlob, []string{}},
		{"other language", "/content/*", "xpath", []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newSession(t)
			s.AddFindHandler(Glob(s))
			assert.Equal(t, tt.want, pathsOf(slices.Collect(s.FindResources(tt.pattern, tt.lang))))
		})
	}
}

func TestGlob_SeesStagedChanges(t *testing.T) {
	s := newSession(t)
	s.AddFindHandler(Glob(s))

	_, err := s.Create("/content/news", "today", nil)
	require.NoError(t, err)
	require.NoError(t, s.Delete("/content/about"))

	got := pathsOf(slices.Collect(s.FindResources("/content/*", LanguageGlob)))
	assert.Equal(t, []string{"/content/home", "/content/news"}, got)

	got = pathsOf(slices.Collect(s.FindResources("/content/*/*", LanguageGlob)))
	assert.Equal(t, []string{"/content/home/jcr:content", "/content/news/today"}, got)
}

func TestExpr(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{"by type", `resourceType == "app/page"`, []string{"/content/home", "/content/about"}},
		{"by property", `props.title startsWith "About"`, []string{"/content/about"}},
		{"by name", `name == "jcr:content" && props.rank > 1`, []string{"/content/about/jcr:content"}},
		{"by path", `path matches "^/content/[a-z]+$" && resourceType != "app/page"`, []string{"/content/news"}},
		{"not boolean", `path + "x"`, []string{}},
		{"syntax error", `resourceType ==`, []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newSession(t)
			s.AddFindHandler(Expr(s))
			assert.Equal(t, tt.want, pathsOf(slices.Collect(s.FindResources(tt.query, LanguageExpr))))
		})
	}
}

func TestExpr_IgnoresOtherLanguages(t *testing.T) {
	s := newSession(t)
	h := Expr(s)
	assert.Nil(t, h("true", LanguageGlob))
	assert.NotNil(t, h("true", LanguageExpr))
}

func TestJSONPath(t *testing.T) {
	s := newSession(t)
	s.AddQueryHandler(JSONPath(s))

	rows := slices.Collect(s.QueryResources("/content|$.home", LanguageJSONPath))
	require.Len(t, rows, 1)
	assert.Equal(t, "Home", rows[0]["title"])
	assert.Contains(t, rows[0], "jcr:content")

	rows = slices.Collect(s.QueryResources("/content | $..rank", LanguageJSONPath))
	var ranks []any
	for _, r := range rows {
		ranks = append(ranks, r["value"])
	}
	assert.ElementsMatch(t, []any{int64(1), int64(2)}, ranks)
}

func TestJSONPath_Unanswered(t *testing.T) {
	s := newSession(t)
	h := JSONPath(s)

	tests := []struct {
		name  string
		query string
		lang  string
	}{
		{"other language", "/content|$.home", "sql"},
		{"no separator", "$.home", LanguageJSONPath},
		{"bad expression", "/content|$[", LanguageJSONPath},
		{"missing root", "/nope|$.home", LanguageJSONPath},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Nil(t, h(tt.query, tt.lang))
		})
	}
}

func TestHandlersChain(t *testing.T) {
	s := newSession(t)
	s.AddFindHandler(Glob(s))
	s.AddFindHandler(Expr(s))

	assert.Len(t, slices.Collect(s.FindResources("/content/*", LanguageGlob)), 3)
	assert.Len(t, slices.Collect(s.FindResources(`resourceType == "app/folder"`, LanguageExpr)), 1)
}
