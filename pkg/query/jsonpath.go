package query

import (
	"iter"
	"strings"

	"github.com/ohler55/ojg/jp"

	"github.com/getmockd/resolvermock/pkg/resolver"
)

// LanguageJSONPath is the language tag answered by JSONPath.
const LanguageJSONPath = "jsonpath"

// JSONPath returns a query handler for "<root path>|<jsonpath>" queries, for
// example "/content|$..[?(@.title)]". The subtree at root is rendered as
// nested maps (children under their names, properties as values) and every
// JSONPath match is yielded: maps as rows, other values as {"value": v}.
// Malformed queries and missing roots get nil.
func JSONPath(s *resolver.Session) resolver.QueryHandler {
	return func(q, lang string) iter.Seq[resolver.Properties] {
		if lang != LanguageJSONPath {
			return nil
		}
		root, path, ok := strings.Cut(q, "|")
		if !ok {
			return nil
		}
		x, err := jp.ParseString(strings.TrimSpace(path))
		if err != nil {
			return nil
		}
		r, ok := s.Get(strings.TrimSpace(root))
		if !ok {
			return nil
		}
		doc := render(s, r)

		return func(yield func(resolver.Properties) bool) {
			for _, v := range x.Get(doc) {
				row, ok := v.(map[string]any)
				if !ok {
					row = map[string]any{"value": v}
				}
				if !yield(resolver.Properties(row)) {
					return
				}
			}
		}
	}
}

func render(s *resolver.Session, r resolver.Resource) map[string]any {
	out := map[string]any(r.Properties())
	for c := range s.Children(r) {
		out[c.Name()] = render(s, c)
	}
	return out
}
