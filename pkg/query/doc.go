// Package query provides ready-made find and query handlers for resolver
// sessions. None of them is a query engine: each answers only queries in its
// own language tag and returns nil for anything else, so they can be chained
// with hand-written handlers.
//
//	s.AddFindHandler(query.Glob(s))
//	for r := range s.FindResources("/content/**/jcr:content", query.LanguageGlob) {
//	    ...
//	}
package query
