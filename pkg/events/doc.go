// Package events defines the change events a resolver session emits on commit
// and a few ready-made sinks for them.
//
// A commit produces one Event per affected path:
//
//   - Added: a staged path that did not exist in the store
//   - Changed: a staged path that overwrote an existing store entry
//   - Removed: a deleted path that existed in the store
//
// Sinks implement Emitter. The package ships:
//
//   - EmitterFunc: adapts a plain function
//   - Multi: fans out to several emitters in order
//   - Recorder: keeps events in memory for test assertions
//   - Log: writes one structured log record per event
//   - Filter: forwards only selected event types
//   - Channel: sends events to a channel
//
// Emitters are called synchronously, after the store lock is released, in the
// order the commit applied the changes.
package events
