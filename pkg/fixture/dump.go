package fixture

import (
	"encoding/base64"
	"time"

	"github.com/getmockd/resolvermock/pkg/resolver"
)

// Dump renders the subtree at p as a fixture document: properties as plain
// values, children as nested objects. []byte values are base64 encoded and
// times formatted as RFC 3339. depth limits the number of child levels; a
// negative depth dumps everything.
func Dump(s *resolver.Session, p string, depth int) (map[string]any, error) {
	r, ok := s.Get(p)
	if !ok {
		return nil, &resolver.PathError{Op: "dump", Path: p, Err: resolver.ErrNotFound}
	}
	if prop, ok := r.(*resolver.PropertyResource); ok {
		return map[string]any{prop.Key(): dumpValue(prop.Value())}, nil
	}
	return dumpResource(s, r, depth), nil
}

func dumpResource(s *resolver.Session, r resolver.Resource, depth int) map[string]any {
	out := map[string]any{}
	for k, v := range r.Properties() {
		out[k] = dumpValue(v)
	}
	if depth == 0 {
		return out
	}
	for c := range s.Children(r) {
		out[c.Name()] = dumpResource(s, c, depth-1)
	}
	return out
}

func dumpValue(v any) any {
	switch x := v.(type) {
	case []byte:
		return base64.StdEncoding.EncodeToString(x)
	case time.Time:
		return x.Format(time.RFC3339Nano)
	default:
		return v
	}
}
