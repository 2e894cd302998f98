package fixture

import (
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/getmockd/resolvermock/pkg/resolver"
)

// Load reads a fixture document from r and stages it as the resource at
// target. An existing resource keeps its properties and receives the
// document's properties on top; a missing one is created together with any
// missing ancestors. Children are handled the same way, recursively.
func Load(s *resolver.Session, target string, r io.Reader, format Format) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("failed to read fixture: %w", err)
	}
	t, err := parse(data, format)
	if err != nil {
		return err
	}
	norm, ok := resolver.NormalizePath(target)
	if !ok || !resolver.IsAbsolute(norm) {
		return &resolver.PathError{Op: "load", Path: target, Err: resolver.ErrInvalidPath}
	}
	return apply(s, norm, t)
}

// LoadFile loads a fixture file as the resource at target. The format
// follows the file extension.
func LoadFile(s *resolver.Session, target, file string) error {
	f, err := os.Open(file)
	if err != nil {
		return fmt.Errorf("failed to open fixture: %w", err)
	}
	defer func() { _ = f.Close() }()

	if err := Load(s, target, f, FormatOf(file)); err != nil {
		return fmt.Errorf("%s: %w", file, err)
	}
	return nil
}

// LoadGlob loads every file below dir matching the doublestar pattern. Each
// file becomes the resource at root joined with its path relative to dir,
// minus the extension: "site/en.yaml" loads as root + "/site/en". Files are
// loaded in lexical order, so parent documents load before nested ones. It
// returns the loaded file names relative to dir.
func LoadGlob(s *resolver.Session, root, dir, pattern string) ([]string, error) {
	if !doublestar.ValidatePattern(pattern) {
		return nil, fmt.Errorf("invalid glob pattern: %s", pattern)
	}
	matches, err := doublestar.Glob(os.DirFS(dir), pattern, doublestar.WithFilesOnly())
	if err != nil {
		return nil, fmt.Errorf("expanding glob pattern: %w", err)
	}
	slices.SortFunc(matches, func(a, b string) int {
		return strings.Compare(trimExt(a), trimExt(b))
	})

	for _, m := range matches {
		target := path.Join(root, trimExt(m))
		if err := LoadFile(s, target, filepath.Join(dir, filepath.FromSlash(m))); err != nil {
			return nil, err
		}
	}
	return matches, nil
}

// DefaultPattern selects every fixture file below a directory.
const DefaultPattern = "**/*.{json,yaml,yml,xml}"

// LoadPath loads p below root. p may be a single file, a directory (loaded
// with DefaultPattern) or a doublestar pattern such as "content/**/*.json",
// whose static prefix is the directory the pattern is matched in. File names
// map to resources as in LoadGlob. It returns the loaded files.
func LoadPath(s *resolver.Session, root, p string) ([]string, error) {
	slashed := filepath.ToSlash(p)
	if strings.ContainsAny(slashed, "*?[{") {
		base, pattern := doublestar.SplitPattern(slashed)
		return prefixed(base, LoadGlob(s, root, filepath.FromSlash(base), pattern))
	}

	info, err := os.Stat(p)
	if err != nil {
		return nil, fmt.Errorf("failed to stat fixture: %w", err)
	}
	if info.IsDir() {
		return prefixed(slashed, LoadGlob(s, root, p, DefaultPattern))
	}
	dir, file := filepath.Split(p)
	if dir == "" {
		dir = "."
	}
	return prefixed(path.Dir(slashed), LoadGlob(s, root, dir, file))
}

func prefixed(base string, files []string, err error) ([]string, error) {
	if err != nil {
		return nil, err
	}
	for i, f := range files {
		files[i] = path.Join(base, f)
	}
	return files, nil
}

// EnsurePath returns the node at p, creating it and any missing ancestors
// with the given jcr:primaryType. An empty primaryType creates nodes without
// properties.
func EnsurePath(s *resolver.Session, p, primaryType string) (*resolver.Node, error) {
	norm, ok := resolver.NormalizePath(p)
	if !ok || !resolver.IsAbsolute(norm) {
		return nil, &resolver.PathError{Op: "ensure", Path: p, Err: resolver.ErrInvalidPath}
	}
	if n, ok := node(s, norm); ok {
		return n, nil
	}

	parent, _ := resolver.ParentPath(norm)
	if _, err := EnsurePath(s, parent, primaryType); err != nil {
		return nil, err
	}
	var props resolver.Properties
	if primaryType != "" {
		props = resolver.Properties{resolver.PropPrimaryType: primaryType}
	}
	return s.Create(parent, resolver.Name(norm), props)
}

func apply(s *resolver.Session, target string, t *tree) error {
	if n, ok := node(s, target); ok {
		if len(t.props) > 0 {
			mvm, ok := resolver.AdaptTo[*resolver.ModifiableValueMap](n, resolver.CapModifiableValueMap)
			if !ok {
				return &resolver.PathError{Op: "load", Path: target, Err: resolver.ErrUnsupported}
			}
			if err := mvm.SetAll(t.props); err != nil {
				return err
			}
		}
	} else {
		parent, _ := resolver.ParentPath(target)
		if _, err := EnsurePath(s, parent, resolver.TypeUnstructured); err != nil {
			return err
		}
		if _, err := s.Create(parent, resolver.Name(target), t.props); err != nil {
			return err
		}
	}

	for _, c := range t.children {
		if err := apply(s, resolver.ChildPath(target, c.name), c.tree); err != nil {
			return err
		}
	}
	return nil
}

func node(s *resolver.Session, p string) (*resolver.Node, bool) {
	r, ok := s.Get(p)
	if !ok {
		return nil, false
	}
	n, ok := r.(*resolver.Node)
	return n, ok
}

func trimExt(name string) string {
	return strings.TrimSuffix(name, path.Ext(name))
}
