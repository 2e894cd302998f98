package resolver

import "strings"

// IsResourceType reports whether r has resourceType as its type or anywhere in
// its super type chain. Types under a search path compare equal to their
// relative form, so "/apps/app/page" matches "app/page". A chain that revisits
// a type returns ErrCyclicTypeHierarchy.
func (s *Session) IsResourceType(r Resource, resourceType string) (bool, error) {
	if r == nil || resourceType == "" {
		return false, nil
	}
	if s.typesEqual(resourceType, r.ResourceType()) {
		return true, nil
	}

	seen := map[string]bool{}
	for super := s.ParentResourceType(r); super != ""; {
		if s.typesEqual(resourceType, super) {
			return true, nil
		}
		seen[super] = true
		super = s.ParentResourceTypeOf(super)
		if seen[super] {
			return false, pathErr("isResourceType", r.Path(), ErrCyclicTypeHierarchy)
		}
	}
	return false, nil
}

// ParentResourceType returns the super type of r: its own
// sling:resourceSuperType, else the super type declared by the resource that
// defines r's type.
func (s *Session) ParentResourceType(r Resource) string {
	if r == nil {
		return ""
	}
	if st := r.ResourceSuperType(); st != "" {
		return st
	}
	return s.ParentResourceTypeOf(r.ResourceType())
}

// ParentResourceTypeOf returns the sling:resourceSuperType of the resource
// defining resourceType, or "" when there is none.
func (s *Session) ParentResourceTypeOf(resourceType string) string {
	if resourceType == "" {
		return ""
	}
	r, ok := s.Get(resourceTypeToPath(resourceType))
	if !ok {
		return ""
	}
	return r.ResourceSuperType()
}

func (s *Session) typesEqual(a, b string) bool {
	return s.relativizeType(a) == s.relativizeType(b)
}

// relativizeType strips the first matching search path prefix from an
// absolute resource type.
func (s *Session) relativizeType(rt string) string {
	if !IsAbsolute(rt) {
		return rt
	}
	for _, sp := range s.factory.searchPaths {
		if rest, ok := strings.CutPrefix(rt, sp); ok {
			return rest
		}
	}
	return rt
}

// resourceTypeToPath maps a resource type such as "nt:file" to the path of
// its defining resource, "nt/file".
func resourceTypeToPath(rt string) string {
	return strings.ReplaceAll(rt, ":", "/")
}
