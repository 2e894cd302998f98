package query

import (
	"iter"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/getmockd/resolvermock/pkg/resolver"
)

// LanguageGlob is the language tag answered by Glob.
const LanguageGlob = "glob"

// Glob returns a find handler for doublestar path patterns such as
// "/content/**/jcr:content". It walks the tree visible to s from root and
// yields matching resources in walk order. Invalid patterns get nil.
func Glob(s *resolver.Session) resolver.FindHandler {
	return func(pattern, lang string) iter.Seq[resolver.Resource] {
		if lang != LanguageGlob || !doublestar.ValidatePattern(pattern) {
			return nil
		}
		return func(yield func(resolver.Resource) bool) {
			for r := range s.Walk("/") {
				ok, err := doublestar.Match(pattern, r.Path())
				if err != nil {
					return
				}
				if ok && !yield(r) {
					return
				}
			}
		}
	}
}
