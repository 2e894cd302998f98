package resolver

import (
	"context"
	"iter"
)

type sessionKey struct{}

// sessionFrame is one entry of the session stack carried by a context.
// Frames are immutable; pushing creates a new head.
type sessionFrame struct {
	session *Session
	next    *sessionFrame
}

func withSession(ctx context.Context, s *Session) context.Context {
	next, _ := ctx.Value(sessionKey{}).(*sessionFrame)
	return context.WithValue(ctx, sessionKey{}, &sessionFrame{session: s, next: next})
}

// sessionsFrom yields the sessions carried by ctx, most recent first.
func sessionsFrom(ctx context.Context) iter.Seq[*Session] {
	return func(yield func(*Session) bool) {
		f, _ := ctx.Value(sessionKey{}).(*sessionFrame)
		for ; f != nil; f = f.next {
			if !yield(f.session) {
				return
			}
		}
	}
}

// FromContext returns the most recently opened session carried by ctx that
// is still open, regardless of factory, or nil.
func FromContext(ctx context.Context) *Session {
	for s := range sessionsFrom(ctx) {
		if !s.Closed() {
			return s
		}
	}
	return nil
}
