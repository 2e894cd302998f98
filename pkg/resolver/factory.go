package resolver

import (
	"context"
	"log/slog"
	"maps"
	"slices"
	"sync"

	"github.com/getmockd/resolvermock/internal/id"
	"github.com/getmockd/resolvermock/pkg/events"
)

// AuthUser is the Auth key holding the user name.
const AuthUser = "user.name"

// Auth carries authentication details passed to OpenSession.
type Auth map[string]any

type sessionKind int

const (
	kindUser sessionKind = iota
	kindAdmin
	kindService
)

func (k sessionKind) String() string {
	switch k {
	case kindAdmin:
		return "admin"
	case kindService:
		return "service"
	default:
		return "user"
	}
}

// Factory owns a Store and opens sessions over it. A Factory is safe for
// concurrent use; the sessions it opens are not.
type Factory struct {
	store       *Store
	searchPaths []string
	emitter     events.Emitter
	logger      *slog.Logger
	observer    Observer
	adapters    map[Capability]AdapterFunc

	mu            sync.RWMutex
	findHandlers  []FindHandler
	queryHandlers []QueryHandler
}

// New creates a factory with an empty store holding only the root resource.
func New(opts ...Option) *Factory {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	f := &Factory{
		store:         newStore(),
		searchPaths:   o.searchPaths,
		emitter:       o.emitter,
		logger:        o.logger,
		observer:      o.observer,
		adapters:      maps.Clone(o.adapters),
		findHandlers:  o.findHandlers,
		queryHandlers: o.queryHandlers,
	}
	for _, e := range o.seed {
		if err := f.store.put(e.path, e.props); err != nil {
			f.logger.Warn("skipping seed resource", "path", e.path, "error", err)
		}
	}
	return f
}

// Store returns the committed store shared by all sessions of f.
func (f *Factory) Store() *Store {
	return f.store
}

// SearchPath returns a copy of the configured search paths.
func (f *Factory) SearchPath() []string {
	return slices.Clone(f.searchPaths)
}

// AddFindHandler registers h for every session opened after the call.
func (f *Factory) AddFindHandler(h FindHandler) {
	if h == nil {
		return
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.findHandlers = append(f.findHandlers, h)
}

// AddQueryHandler registers h for every session opened after the call.
func (f *Factory) AddQueryHandler(h QueryHandler) {
	if h == nil {
		return
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.queryHandlers = append(f.queryHandlers, h)
}

// OpenSession opens a session for the user named in auth. The user name, if
// any, is available as the AuthUser attribute.
func (f *Factory) OpenSession(auth Auth) *Session {
	attrs := map[string]any{}
	if auth != nil {
		attrs[AuthUser] = auth[AuthUser]
	}
	return f.newSession(kindUser, attrs)
}

// OpenAdminSession opens a session without attributes. Admin sessions are
// never current sessions.
func (f *Factory) OpenAdminSession() *Session {
	return f.newSession(kindAdmin, map[string]any{})
}

// OpenServiceSession opens a session for a service user. Like admin sessions
// it is never a current session and carries no attributes.
func (f *Factory) OpenServiceSession(Auth) *Session {
	return f.newSession(kindService, map[string]any{})
}

// OpenSessionContext opens a user session and returns a context carrying it
// as the current session.
func (f *Factory) OpenSessionContext(ctx context.Context, auth Auth) (context.Context, *Session) {
	s := f.OpenSession(auth)
	return withSession(ctx, s), s
}

// CurrentSession returns the most recently opened session of f carried by
// ctx that is still open, or nil.
func (f *Factory) CurrentSession(ctx context.Context) *Session {
	for s := range sessionsFrom(ctx) {
		if s.factory == f && !s.Closed() {
			return s
		}
	}
	return nil
}

func (f *Factory) newSession(kind sessionKind, attrs map[string]any) *Session {
	f.mu.RLock()
	find := slices.Clone(f.findHandlers)
	query := slices.Clone(f.queryHandlers)
	f.mu.RUnlock()

	sid := id.Session()
	s := &Session{
		id:            sid,
		kind:          kind,
		factory:       f,
		store:         f.store,
		attrs:         attrs,
		staged:        newOrderedMap[Properties](),
		tombstones:    newOrderedMap[struct{}](),
		findHandlers:  find,
		queryHandlers: query,
		logger:        f.logger.With("session", sid),
		observer:      f.observer,
		emitter:       f.emitter,
	}
	s.logger.Debug("session opened", "kind", kind.String())
	return s
}
