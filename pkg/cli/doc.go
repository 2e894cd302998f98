// Package cli provides the command-line interface for resolverctl.
//
// Every command builds a fresh in-memory resource tree from the configuration
// file and fixture flags, runs against an admin session on it and exits:
//   - tree: Print a subtree as YAML or JSON
//   - get: Show a single resource or property
//   - resolve: Resolve a request path, including non-existing resources
//   - ls: List the children of a resource
//   - find: Find resources with glob patterns or expressions
//   - query: Run JSONPath queries over a subtree
//   - types: Show the resource type hierarchy of a resource
//   - config: Write a starter configuration or show the effective one
//   - version: Show version information
//
// Fixtures are given with -f (repeatable) as files, directories or doublestar
// patterns, or listed under "fixtures" in the configuration file.
package cli
