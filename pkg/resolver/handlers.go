package resolver

import "iter"

// FindHandler supplies canned results for FindResources. It returns nil when
// it has no answer for the query, letting the next handler try.
type FindHandler func(query, language string) iter.Seq[Resource]

// QueryHandler supplies canned results for QueryResources. It returns nil
// when it has no answer for the query.
type QueryHandler func(query, language string) iter.Seq[Properties]

// AddFindHandler registers h for this session only. It runs after the
// handlers inherited from the factory.
func (s *Session) AddFindHandler(h FindHandler) {
	if h != nil {
		s.findHandlers = append(s.findHandlers, h)
	}
}

// AddQueryHandler registers h for this session only. It runs after the
// handlers inherited from the factory.
func (s *Session) AddQueryHandler(h QueryHandler) {
	if h != nil {
		s.queryHandlers = append(s.queryHandlers, h)
	}
}

// FindResources asks the find handlers in registration order and returns the
// first non-nil result. Later handlers are not called. Without a result the
// sequence is empty, never nil. Each yielded resource carries its own
// Metadata copy.
func (s *Session) FindResources(query, language string) iter.Seq[Resource] {
	seq := firstResult(s.findHandlers, query, language)
	return func(yield func(Resource) bool) {
		for r := range seq {
			if r == nil {
				continue
			}
			if !yield(&resultView{Resource: r, md: r.Metadata().Clone()}) {
				return
			}
		}
	}
}

// QueryResources asks the query handlers like FindResources does. Each
// yielded map is a copy.
func (s *Session) QueryResources(query, language string) iter.Seq[Properties] {
	seq := firstResult(s.queryHandlers, query, language)
	return func(yield func(Properties) bool) {
		for p := range seq {
			if !yield(p.Clone()) {
				return
			}
		}
	}
}

func firstResult[T any, H ~func(string, string) iter.Seq[T]](handlers []H, query, language string) iter.Seq[T] {
	for _, h := range handlers {
		if seq := h(query, language); seq != nil {
			return seq
		}
	}
	return func(func(T) bool) {}
}
