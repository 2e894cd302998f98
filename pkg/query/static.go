package query

import (
	"iter"
	"slices"

	"github.com/getmockd/resolvermock/pkg/resolver"
)

// Key identifies a canned result.
type Key struct {
	Query    string
	Language string
}

// Static returns a find handler serving fixed results. Queries without an
// entry get nil, so later handlers are asked. The map is read on every call;
// callers must not modify it concurrently.
func Static(results map[Key][]resolver.Resource) resolver.FindHandler {
	return func(q, lang string) iter.Seq[resolver.Resource] {
		rs, ok := results[Key{Query: q, Language: lang}]
		if !ok {
			return nil
		}
		return slices.Values(rs)
	}
}

// StaticQuery is Static for query handlers.
func StaticQuery(results map[Key][]resolver.Properties) resolver.QueryHandler {
	return func(q, lang string) iter.Seq[resolver.Properties] {
		rows, ok := results[Key{Query: q, Language: lang}]
		if !ok {
			return nil
		}
		return slices.Values(rows)
	}
}
