package resolver

import (
	"fmt"
	"io"
	"iter"
	"log/slog"
	"maps"
	"slices"
	"strings"
	"sync/atomic"
	"time"

	"github.com/getmockd/resolvermock/internal/id"
	"github.com/getmockd/resolvermock/pkg/events"
)

// Session is one unit of work over a factory's Store. Creates, edits and
// deletes are staged privately and reach the Store only on Commit.
//
// A Session is not safe for concurrent use. Open one session per goroutine.
type Session struct {
	id      string
	kind    sessionKind
	factory *Factory
	store   *Store
	attrs   map[string]any

	staged     *orderedMap[Properties]
	tombstones *orderedMap[struct{}]

	findHandlers  []FindHandler
	queryHandlers []QueryHandler

	bag    map[string]any
	closed atomic.Bool

	logger   *slog.Logger
	observer Observer
	emitter  events.Emitter
}

// ID returns the unique session ID.
func (s *Session) ID() string { return s.id }

// Factory returns the factory that opened s.
func (s *Session) Factory() *Factory { return s.factory }

// UserID returns the AuthUser attribute, or "" when it is not a string.
func (s *Session) UserID() string {
	u, _ := s.attrs[AuthUser].(string)
	return u
}

// IsAdmin reports whether s was opened with OpenAdminSession.
func (s *Session) IsAdmin() bool { return s.kind == kindAdmin }

// Attribute returns a session attribute.
func (s *Session) Attribute(name string) (any, bool) {
	v, ok := s.attrs[name]
	return v, ok
}

// AttributeNames returns the attribute names in sorted order.
func (s *Session) AttributeNames() []string {
	return slices.Sorted(maps.Keys(s.attrs))
}

// PropertyBag returns a map for per-session values. Values implementing
// io.Closer are closed by Close.
func (s *Session) PropertyBag() map[string]any {
	if s.bag == nil {
		s.bag = map[string]any{}
	}
	return s.bag
}

// SearchPath returns a copy of the search paths used for relative paths.
func (s *Session) SearchPath() []string {
	return slices.Clone(s.factory.searchPaths)
}

// IsLive reports whether the session is still open.
func (s *Session) IsLive() bool { return !s.Closed() }

// Closed reports whether Close has been called.
func (s *Session) Closed() bool { return s.closed.Load() }

// Refresh is a no-op: sessions always read the latest committed state.
func (s *Session) Refresh() {}

// Clone is not supported.
func (s *Session) Clone(Auth) (*Session, error) {
	return nil, pathErr("clone", "", ErrUnsupported)
}

// OrderBefore is not supported; child order is insertion order.
func (s *Session) OrderBefore(parentPath, name, before string) error {
	return pathErr("orderBefore", ChildPath(parentPath, name), ErrUnsupported)
}

// Close releases the session. Every io.Closer in the property bag is closed;
// close failures are logged and otherwise ignored. Pending changes are
// discarded. Close is idempotent.
func (s *Session) Close() {
	if !s.closed.CompareAndSwap(false, true) {
		return
	}
	for _, key := range slices.Sorted(maps.Keys(s.bag)) {
		c, ok := s.bag[key].(io.Closer)
		if !ok {
			continue
		}
		if err := c.Close(); err != nil {
			s.logger.Debug("closing property bag value failed", "key", key, "error", err)
		}
	}
	clear(s.bag)
	s.clear()
	s.logger.Debug("session closed")
}

// HasChanges reports whether there are staged writes or deletes.
func (s *Session) HasChanges() bool {
	return s.staged.Len() > 0 || s.tombstones.Len() > 0
}

// Create stages a new resource named name below parentPath. A nil props
// creates a resource without properties. io.Reader values are read fully and
// stored as []byte.
func (s *Session) Create(parentPath, name string, props Properties) (*Node, error) {
	const op = "create"
	start := time.Now()
	n, err := s.create(parentPath, name, props)
	if err != nil {
		s.observer.OnError(op, ChildPath(parentPath, name), err)
		return nil, err
	}
	s.observer.OnCreate(n.path, time.Since(start))
	s.logger.Debug("resource staged", "op", op, "path", n.path)
	return n, nil
}

func (s *Session) create(parentPath, name string, props Properties) (*Node, error) {
	const op = "create"
	if s.Closed() {
		return nil, pathErr(op, parentPath, ErrSessionClosed)
	}
	if !validName(name) {
		return nil, pathErr(op, parentPath+"/"+name, ErrInvalidPath)
	}
	norm, ok := NormalizePath(parentPath)
	if !ok {
		return nil, pathErr(op, parentPath, ErrInvalidPath)
	}
	parent, ok := s.node(norm)
	if !ok {
		return nil, pathErr(op, norm, ErrParentMissing)
	}

	path := ChildPath(parent.path, name)
	if s.staged.Has(path) || (s.store.Has(path) && !s.tombstones.Has(path)) {
		return nil, pathErr(op, path, ErrAlreadyExists)
	}
	clean, err := normalizeProps(props)
	if err != nil {
		return nil, pathErr(op, path, err)
	}

	s.tombstones.Delete(path)
	s.staged.Set(path, clean)
	return newNode(s, path, clean), nil
}

// Modify stages an edit of the resource at path. fn receives a copy of the
// visible properties; the copy is staged if fn returns nil.
func (s *Session) Modify(path string, fn func(Properties) error) error {
	const op = "modify"
	if s.Closed() {
		return pathErr(op, path, ErrSessionClosed)
	}
	norm, ok := NormalizePath(path)
	if !ok {
		return pathErr(op, path, ErrInvalidPath)
	}
	n, ok := s.node(norm)
	if !ok {
		err := pathErr(op, norm, ErrNotFound)
		s.observer.OnError(op, norm, err)
		return err
	}
	next := n.props.Clone()
	if err := fn(next); err != nil {
		return pathErr(op, n.path, err)
	}
	s.staged.Set(n.path, next)
	return nil
}

// Delete stages the removal of path and everything below it. Relative paths
// are resolved through the search paths first. Deleting root is an error.
func (s *Session) Delete(path string) error {
	const op = "delete"
	start := time.Now()
	if s.Closed() {
		return pathErr(op, path, ErrSessionClosed)
	}
	norm, ok := NormalizePath(path)
	if !ok {
		return pathErr(op, path, ErrInvalidPath)
	}
	if !IsAbsolute(norm) {
		r, ok := s.get(norm)
		if !ok {
			err := pathErr(op, norm, ErrNotFound)
			s.observer.OnError(op, norm, err)
			return err
		}
		norm = r.Path()
	}
	if norm == "/" {
		err := pathErr(op, norm, ErrInvalidPath)
		s.observer.OnError(op, norm, err)
		return err
	}

	n := s.tombstone(norm)
	s.observer.OnDelete(norm, n, time.Since(start))
	s.logger.Debug("resource deleted", "op", op, "path", norm, "tombstoned", n)
	return nil
}

// tombstone marks path and its committed descendants deleted and drops
// staged descendants. It returns the number of paths tombstoned.
func (s *Session) tombstone(path string) int {
	s.tombstones.Set(path, struct{}{})
	s.staged.Delete(path)
	count := 1

	prefix := path + "/"
	s.store.view(func(entries iter.Seq2[string, Properties]) {
		for p := range entries {
			if strings.HasPrefix(p, prefix) && !s.tombstones.Has(p) {
				s.tombstones.Set(p, struct{}{})
				count++
			}
		}
	})
	for _, p := range s.staged.Keys() {
		if strings.HasPrefix(p, prefix) {
			s.staged.Delete(p)
		}
	}
	return count
}

// Revert discards all staged writes and deletes.
func (s *Session) Revert() {
	n := s.staged.Len() + s.tombstones.Len()
	s.clear()
	s.observer.OnRevert(n)
	s.logger.Debug("changes reverted", "discarded", n)
}

func (s *Session) clear() {
	s.staged.Clear()
	s.tombstones.Clear()
}

// Commit applies staged changes to the store: deletions first, then writes
// in staging order. One event per store change is emitted in the order the
// changes were applied, but none is emitted until every path has been
// written and the store lock is released. The session is clean afterwards.
func (s *Session) Commit() error {
	const op = "commit"
	if s.Closed() {
		return pathErr(op, "", ErrSessionClosed)
	}
	start := time.Now()

	var (
		pending                 []events.Event
		added, changed, removed int
	)
	s.store.update(func(entries *orderedMap[Properties]) {
		for path := range s.tombstones.All() {
			if entries.Delete(path) {
				removed++
				pending = append(pending, s.newEvent(events.Removed, path, nil))
			}
			s.staged.Delete(path)
		}
		for path, props := range s.staged.All() {
			typ := events.Added
			if entries.Has(path) {
				typ = events.Changed
				changed++
			} else {
				added++
			}
			entries.Set(path, props)
			pending = append(pending, s.newEvent(typ, path, props))
		}
	})
	s.clear()

	for _, e := range pending {
		s.emit(e)
	}
	s.observer.OnCommit(added, changed, removed, time.Since(start))
	s.logger.Debug("changes committed", "added", added, "changed", changed, "removed", removed)
	return nil
}

func (s *Session) newEvent(typ events.Type, path string, props Properties) events.Event {
	e := events.Event{
		ID:      id.Event(),
		Type:    typ,
		Path:    path,
		Session: s.id,
		Time:    time.Now(),
	}
	if v, ok := props[PropResourceType]; ok && v != nil {
		e.ResourceType = fmt.Sprint(v)
	}
	return e
}

// emit delivers e to the configured emitter. A panicking emitter is logged
// and does not stop delivery of later events.
func (s *Session) emit(e events.Event) {
	if s.emitter == nil {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("event emitter panicked", "type", e.Type, "path", e.Path, "panic", r)
		}
	}()
	s.emitter.Emit(e)
}

// visible returns the properties at an absolute path as this session sees
// them. The returned map must not be modified.
func (s *Session) visible(path string) (Properties, bool) {
	if s.tombstones.Has(path) {
		return nil, false
	}
	if props, ok := s.staged.Get(path); ok {
		return props, true
	}
	return s.store.lookup(path)
}

func normalizeProps(props Properties) (Properties, error) {
	out := make(Properties, len(props))
	for k, v := range props {
		nv, err := normalizeValue(v)
		if err != nil {
			return nil, fmt.Errorf("property %s: %w", k, err)
		}
		out[k] = nv
	}
	return out, nil
}

func normalizeValue(v any) (any, error) {
	if r, ok := v.(io.Reader); ok {
		return io.ReadAll(r)
	}
	return cloneValue(v), nil
}
