package resolver

import "strings"

// NormalizePath resolves "." and ".." segments and removes redundant and
// trailing separators. Absolute input stays absolute. It reports false when
// the path is empty or ".." would climb above the first segment.
func NormalizePath(p string) (string, bool) {
	if p == "" {
		return "", false
	}
	abs := strings.HasPrefix(p, "/")

	segs := make([]string, 0, strings.Count(p, "/")+1)
	for seg := range strings.SplitSeq(p, "/") {
		switch seg {
		case "", ".":
		case "..":
			if len(segs) == 0 {
				return "", false
			}
			segs = segs[:len(segs)-1]
		default:
			segs = append(segs, seg)
		}
	}

	if abs {
		return "/" + strings.Join(segs, "/"), true
	}
	if len(segs) == 0 {
		return "", false
	}
	return strings.Join(segs, "/"), true
}

// IsAbsolute reports whether p starts at root.
func IsAbsolute(p string) bool {
	return strings.HasPrefix(p, "/")
}

// ParentPath returns the parent of a normalized path.
// Root and single-segment relative paths have no parent.
func ParentPath(p string) (string, bool) {
	if p == "/" || p == "" {
		return "", false
	}
	i := strings.LastIndexByte(p, '/')
	switch {
	case i < 0:
		return "", false
	case i == 0:
		return "/", true
	default:
		return p[:i], true
	}
}

// Name returns the last segment of a normalized path. Root has an empty name.
func Name(p string) string {
	return p[strings.LastIndexByte(p, '/')+1:]
}

// ChildPath joins a parent path and a single-segment name.
func ChildPath(parent, name string) string {
	if parent == "/" {
		return "/" + name
	}
	return parent + "/" + name
}

// IsDirectChild reports whether p is exactly one segment below parent.
func IsDirectChild(parent, p string) bool {
	prefix := parent
	if parent == "/" {
		prefix = ""
	}
	rest, ok := strings.CutPrefix(p, prefix+"/")
	return ok && rest != "" && !strings.Contains(rest, "/")
}

// IsDescendant reports whether p lies strictly below ancestor.
func IsDescendant(ancestor, p string) bool {
	if ancestor == "/" {
		return p != "/" && strings.HasPrefix(p, "/")
	}
	return strings.HasPrefix(p, ancestor+"/")
}

// validName reports whether name can be used as a single path segment.
func validName(name string) bool {
	return name != "" && name != "." && name != ".." && !strings.Contains(name, "/")
}
