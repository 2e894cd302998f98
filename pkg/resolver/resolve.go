package resolver

import (
	"strings"
	"time"
)

// Get returns the resource at path. Absolute paths are looked up directly;
// relative paths are tried below each search path in order and the first
// hit wins. When no resource exists but the parent does and has a property
// named like the last segment, a *PropertyResource for that property is
// returned. The property fallback is part of each search path attempt.
func (s *Session) Get(path string) (Resource, bool) {
	start := time.Now()
	r, ok := s.get(path)
	s.observer.OnGet(path, ok, time.Since(start))
	return r, ok
}

func (s *Session) get(path string) (Resource, bool) {
	if s.Closed() {
		return nil, false
	}
	norm, ok := NormalizePath(path)
	if !ok {
		return nil, false
	}
	if IsAbsolute(norm) {
		return s.getAbsolute(norm)
	}
	for _, sp := range s.factory.searchPaths {
		abs, ok := NormalizePath(sp + "/" + norm)
		if !ok || !IsAbsolute(abs) {
			continue
		}
		if r, ok := s.getAbsolute(abs); ok {
			return r, true
		}
	}
	return nil, false
}

// getAbsolute looks up a node at norm and falls back to a property of its
// parent. A tombstoned path hides the property too.
func (s *Session) getAbsolute(norm string) (Resource, bool) {
	if n, ok := s.node(norm); ok {
		return n, true
	}
	if s.tombstones.Has(norm) {
		return nil, false
	}
	parentPath, ok := ParentPath(norm)
	if !ok {
		return nil, false
	}
	parent, ok := s.node(parentPath)
	if !ok {
		return nil, false
	}
	key := Name(norm)
	if _, ok := parent.props[key]; !ok {
		return nil, false
	}
	p := ChildPath(parent.path, key)
	return &PropertyResource{
		path:    p,
		key:     key,
		owner:   parent.props,
		md:      Metadata{MetaResolutionPath: p},
		session: s,
	}, true
}

// node resolves a normalized path to a node, trying search paths for
// relative input. Property fallback does not apply.
func (s *Session) node(norm string) (*Node, bool) {
	if IsAbsolute(norm) {
		props, ok := s.visible(norm)
		if !ok {
			return nil, false
		}
		return newNode(s, norm, props), true
	}
	for _, sp := range s.factory.searchPaths {
		abs, ok := NormalizePath(sp + "/" + norm)
		if !ok || !IsAbsolute(abs) {
			continue
		}
		if n, ok := s.node(abs); ok {
			return n, true
		}
	}
	return nil, false
}

// GetFrom resolves path relative to base. Absolute paths ignore base; an
// empty path means root.
func (s *Session) GetFrom(base Resource, path string) (Resource, bool) {
	switch {
	case path == "":
		return s.Get("/")
	case IsAbsolute(path):
		return s.Get(path)
	default:
		return s.Get(ChildPath(base.Path(), path))
	}
}

// Resolve is like Get for absolute paths but never fails: a missing
// resource yields a *NonExisting carrying the requested path. A "?query" or
// "#fragment" suffix is ignored for the lookup and recorded in the
// resource metadata under MetaResolutionPathInfo. An empty path means root.
func (s *Session) Resolve(absPath string) Resource {
	path := absPath
	if path == "" {
		path = "/"
	}
	var remainder string
	if i := strings.IndexAny(path, "?#"); i >= 0 {
		path, remainder = path[:i], path[i:]
	}

	r, ok := s.Get(path)
	if !ok {
		md := Metadata{MetaResolutionPath: absPath}
		if remainder != "" {
			md[MetaResolutionPathInfo] = remainder
		}
		return &NonExisting{path: absPath, md: md, session: s}
	}
	if remainder != "" {
		r.Metadata()[MetaResolutionPathInfo] = remainder
	}
	return r
}
