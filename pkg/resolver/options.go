package resolver

import (
	"log/slog"
	"slices"

	"github.com/getmockd/resolvermock/pkg/events"
	"github.com/getmockd/resolvermock/pkg/logging"
)

// DefaultSearchPaths are the prefixes tried, in order, for relative paths.
var DefaultSearchPaths = []string{"/apps/", "/libs/"}

type options struct {
	searchPaths   []string
	emitter       events.Emitter
	logger        *slog.Logger
	observer      Observer
	findHandlers  []FindHandler
	queryHandlers []QueryHandler
	adapters      map[Capability]AdapterFunc
	seed          []seedEntry
}

type seedEntry struct {
	path  string
	props Properties
}

func defaultOptions() options {
	return options{
		searchPaths: slices.Clone(DefaultSearchPaths),
		logger:      logging.Nop(),
		observer:    NoopObserver{},
		adapters:    map[Capability]AdapterFunc{},
	}
}

// Option configures a Factory.
type Option func(*options)

// WithSearchPaths replaces the search path list. Passing no paths leaves
// relative paths unresolvable.
func WithSearchPaths(paths ...string) Option {
	return func(o *options) {
		o.searchPaths = slices.Clone(paths)
		if o.searchPaths == nil {
			o.searchPaths = []string{}
		}
	}
}

// WithEmitter sets the sink for committed change events.
func WithEmitter(e events.Emitter) Option {
	return func(o *options) {
		o.emitter = e
	}
}

// WithLogger sets the logger. A nil logger discards output.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		o.logger = logging.OrNop(l)
	}
}

// WithObserver sets the operation observer.
func WithObserver(obs Observer) Option {
	return func(o *options) {
		if obs == nil {
			obs = NoopObserver{}
		}
		o.observer = obs
	}
}

// WithFindHandler registers a factory-level find handler.
func WithFindHandler(h FindHandler) Option {
	return func(o *options) {
		if h != nil {
			o.findHandlers = append(o.findHandlers, h)
		}
	}
}

// WithQueryHandler registers a factory-level query handler.
func WithQueryHandler(h QueryHandler) Option {
	return func(o *options) {
		if h != nil {
			o.queryHandlers = append(o.queryHandlers, h)
		}
	}
}

// WithAdapter registers fn as the provider of capability c for resources
// whose own variant does not provide it.
func WithAdapter(c Capability, fn AdapterFunc) Option {
	return func(o *options) {
		if fn != nil {
			o.adapters[c] = fn
		}
	}
}

// WithResource commits a resource at path when the factory is built. Missing
// ancestors are created as nt:unstructured. Later entries for the same path
// replace earlier ones.
func WithResource(path string, props Properties) Option {
	return func(o *options) {
		o.seed = append(o.seed, seedEntry{path: path, props: props})
	}
}
