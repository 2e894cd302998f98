package resolver

import (
	"errors"
	"fmt"
)

// Sentinel errors. Operations wrap them in a *PathError; test with errors.Is.
var (
	// ErrAlreadyExists is returned by Create, Copy and Move when the target path is visible.
	ErrAlreadyExists = errors.New("path already exists")
	// ErrInvalidPath is returned when a path cannot be normalized, a name is not a
	// single segment, or an operation targets root where it needs a parent.
	ErrInvalidPath = errors.New("invalid path")
	// ErrParentMissing is returned when the parent of a new resource does not exist.
	ErrParentMissing = errors.New("parent does not exist")
	// ErrNotFound is returned when an operation needs an existing resource.
	ErrNotFound = errors.New("resource not found")
	// ErrCyclicTypeHierarchy is returned when a resource super type chain loops.
	ErrCyclicTypeHierarchy = errors.New("cyclic resource super type hierarchy")
	// ErrUnsupported is returned by operations this in-memory resolver does not implement.
	ErrUnsupported = errors.New("operation not supported")
	// ErrSessionClosed is returned by operations on a closed session.
	ErrSessionClosed = errors.New("session is closed")
)

// PathError records the operation and path that failed.
type PathError struct {
	Op   string
	Path string
	Err  error
}

func (e *PathError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

// Unwrap returns the underlying sentinel.
func (e *PathError) Unwrap() error {
	return e.Err
}

// Hint returns a suggestion for resolving the error.
func (e *PathError) Hint() string {
	switch {
	case errors.Is(e.Err, ErrAlreadyExists):
		return fmt.Sprintf("Delete %q first or pick a different name.", e.Path)
	case errors.Is(e.Err, ErrParentMissing):
		return fmt.Sprintf("Create the parent of %q before its children.", e.Path)
	case errors.Is(e.Err, ErrInvalidPath):
		return "Paths are slash separated, names are a single non-empty segment, and '..' may not climb above root."
	case errors.Is(e.Err, ErrNotFound):
		return fmt.Sprintf("Check that %q exists and is not deleted in this session.", e.Path)
	case errors.Is(e.Err, ErrCyclicTypeHierarchy):
		return "Fix the sling:resourceSuperType chain in the fixture so it ends."
	case errors.Is(e.Err, ErrSessionClosed):
		return "Open a new session from the factory."
	default:
		return ""
	}
}

// HintError is implemented by errors that carry a resolution hint.
type HintError interface {
	error
	Hint() string
}

func pathErr(op, path string, err error) error {
	return &PathError{Op: op, Path: path, Err: err}
}
