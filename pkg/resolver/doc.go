// Package resolver provides an in-memory, path-addressed resource tree for
// tests that need a content repository without running one.
//
// Resources are property sets addressed by slash-separated paths. A Factory
// owns the committed Store, which always contains the root "/". Sessions
// opened from the factory stage creates, edits and deletes privately and
// apply them to the Store on Commit, or drop them on Revert.
//
// Core Types:
//
//   - Factory: owns the Store, the search paths and factory-level handlers
//   - Session: one unit of work with staged changes over the Store
//   - Resource: a resolved record; *Node, *PropertyResource or *NonExisting
//   - Store: the committed path to Properties map, in insertion order
//
// Reads:
//
// Absolute paths are looked up in the session's view: tombstones hide a
// path, staged properties win over committed ones. Relative paths are tried
// below each search path ("/apps/", "/libs/" by default). A path that names a
// property of an existing node resolves to a *PropertyResource.
//
// Find and Query:
//
// FindResources and QueryResources have no query engine. They ask the
// registered handlers in order and return the first non-nil answer, or an
// empty sequence.
//
// Thread Safety:
//
// A Factory and its Store are safe for concurrent use. A Session is not;
// open one per goroutine. Events are emitted after Commit releases the store
// lock, so an emitter may read the store.
//
// Usage:
//
//	f := resolver.New(resolver.WithEmitter(recorder))
//	s := f.OpenSession(nil)
//	defer s.Close()
//
//	if _, err := s.Create("/", "content", resolver.Properties{"title": "Home"}); err != nil {
//	    return err
//	}
//	if err := s.Commit(); err != nil {
//	    return err
//	}
//	r, ok := s.Get("/content/title") // *PropertyResource
package resolver
