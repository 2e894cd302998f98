// Package logging provides structured logging configuration for the resolver.
//
// This package wraps log/slog so that the factory, sessions and the CLI share
// one way of building loggers.
//
// # Usage
//
//	logger := logging.New(logging.Config{
//	    Level:  logging.LevelDebug,
//	    Format: logging.FormatJSON,
//	})
//
//	factory := resolver.New(resolver.WithLogger(logger))
//
// Components accept a *slog.Logger through an option. When none is given they
// use Nop(), which discards everything.
package logging
