package resolver

import (
	"iter"
	"slices"
	"sync"
)

// RootPrimaryType is the jcr:primaryType of the root resource every store starts with.
const RootPrimaryType = "rep:root"

// Store is the committed path to property map shared by all sessions of one
// factory. Iteration follows insertion order. All access goes through the
// store's lock; sessions only mutate it during Commit.
type Store struct {
	mu      sync.RWMutex
	entries *orderedMap[Properties]
}

func newStore() *Store {
	s := &Store{entries: newOrderedMap[Properties]()}
	s.entries.Set("/", Properties{PropPrimaryType: RootPrimaryType})
	return s
}

// Get returns a read-only copy of the properties committed at path.
func (s *Store) Get(path string) (Properties, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	props, ok := s.entries.Get(path)
	if !ok {
		return nil, false
	}
	return props.Clone(), true
}

// Has reports whether path is committed.
func (s *Store) Has(path string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.entries.Has(path)
}

// Len returns the number of committed paths, root included.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.entries.Len()
}

// Paths returns the committed paths in insertion order.
func (s *Store) Paths() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.entries.Keys()
}

// view runs fn with the read lock held. fn must not retain the iterator or
// call back into the store.
func (s *Store) view(fn func(entries iter.Seq2[string, Properties])) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	fn(s.entries.All())
}

// lookup returns the committed properties without copying. Callers must treat
// the map as immutable: committed maps are replaced, never edited in place.
func (s *Store) lookup(path string) (Properties, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.entries.Get(path)
}

// update runs fn with the write lock held.
func (s *Store) update(fn func(entries *orderedMap[Properties])) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.entries)
}

// put commits props at path directly, creating missing ancestors as
// nt:unstructured. It bypasses sessions and emits no events; it is used to
// seed a factory before any session exists.
func (s *Store) put(path string, props Properties) error {
	norm, ok := NormalizePath(path)
	if !ok || !IsAbsolute(norm) {
		return pathErr("seed", path, ErrInvalidPath)
	}
	clean, err := normalizeProps(props)
	if err != nil {
		return pathErr("seed", path, err)
	}

	s.update(func(entries *orderedMap[Properties]) {
		var missing []string
		for p, ok := ParentPath(norm); ok && !entries.Has(p); p, ok = ParentPath(p) {
			missing = append(missing, p)
		}
		for _, p := range slices.Backward(missing) {
			entries.Set(p, Properties{PropPrimaryType: TypeUnstructured})
		}
		entries.Set(norm, clean)
	})
	return nil
}
