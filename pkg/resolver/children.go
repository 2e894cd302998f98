package resolver

import "iter"

// ListChildren returns the direct children of parentPath visible to the
// session. Committed children come first in store order; staged children
// replace committed ones in place and new staged children follow in staging
// order. Relative parent paths are resolved through the search paths.
func (s *Session) ListChildren(parentPath string) []Resource {
	if s.Closed() {
		return nil
	}
	norm, ok := NormalizePath(parentPath)
	if !ok {
		return nil
	}
	if !IsAbsolute(norm) {
		n, ok := s.node(norm)
		if !ok {
			return nil
		}
		norm = n.path
	}

	candidates := newOrderedMap[Properties]()
	s.store.view(func(entries iter.Seq2[string, Properties]) {
		for p, props := range entries {
			if IsDirectChild(norm, p) && !s.tombstones.Has(p) {
				candidates.Set(p, props)
			}
		}
	})
	for p, props := range s.staged.All() {
		if IsDirectChild(norm, p) && !s.tombstones.Has(p) {
			candidates.Set(p, props)
		}
	}

	out := make([]Resource, 0, candidates.Len())
	for p, props := range candidates.All() {
		out = append(out, newNode(s, p, props))
	}
	return out
}

// Children iterates over the direct children of r. The listing is taken when
// iteration starts.
func (s *Session) Children(r Resource) iter.Seq[Resource] {
	return func(yield func(Resource) bool) {
		if r == nil {
			return
		}
		for _, c := range s.ListChildren(r.Path()) {
			if !yield(c) {
				return
			}
		}
	}
}

// HasChildren reports whether r has at least one visible child.
func (s *Session) HasChildren(r Resource) bool {
	for range s.Children(r) {
		return true
	}
	return false
}

// Parent returns the parent of r. Root has no parent.
func (s *Session) Parent(r Resource) (Resource, bool) {
	p, ok := ParentPath(r.Path())
	if !ok {
		return nil, false
	}
	return s.Get(p)
}

// Walk iterates depth first over the resource at root and its descendants,
// parents before children.
func (s *Session) Walk(root string) iter.Seq[Resource] {
	return func(yield func(Resource) bool) {
		r, ok := s.Get(root)
		if !ok {
			return
		}
		s.walk(r, yield)
	}
}

func (s *Session) walk(r Resource, yield func(Resource) bool) bool {
	if !yield(r) {
		return false
	}
	for _, c := range s.ListChildren(r.Path()) {
		if !s.walk(c, yield) {
			return false
		}
	}
	return true
}
