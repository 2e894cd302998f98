package resolver

import (
	"iter"
	"maps"
	"slices"
)

// Well-known property names and node types.
const (
	PropResourceType      = "sling:resourceType"
	PropResourceSuperType = "sling:resourceSuperType"
	PropPrimaryType       = "jcr:primaryType"
	PropData              = "jcr:data"

	NodeContent = "jcr:content"

	TypeUnstructured = "nt:unstructured"
	TypeFile         = "nt:file"
	TypeResource     = "nt:resource"
	TypeNonExisting  = "sling:nonexisting"
)

// Metadata keys set on resolved resources.
const (
	MetaResolutionPath     = "sling.resolutionPath"
	MetaResolutionPathInfo = "sling.resolutionPathInfo"
)

// Properties is the named property set of a resource. Values are scalars,
// slices, []byte for binary data, or arbitrary objects.
type Properties map[string]any

// Clone returns a copy of p. Slices, []byte and nested maps are copied too;
// other values are shared.
func (p Properties) Clone() Properties {
	if p == nil {
		return Properties{}
	}
	out := make(Properties, len(p))
	for k, v := range p {
		out[k] = cloneValue(v)
	}
	return out
}

func cloneValue(v any) any {
	switch x := v.(type) {
	case []byte:
		return slices.Clone(x)
	case []string:
		return slices.Clone(x)
	case []int64:
		return slices.Clone(x)
	case []any:
		out := make([]any, len(x))
		for i, e := range x {
			out[i] = cloneValue(e)
		}
		return out
	case map[string]any:
		return map[string]any(Properties(x).Clone())
	case Properties:
		return x.Clone()
	default:
		return v
	}
}

// Metadata holds resolution details attached to a resource instance. Every
// resource handed out gets its own Metadata.
type Metadata map[string]any

// Clone returns a shallow copy of m.
func (m Metadata) Clone() Metadata {
	if m == nil {
		return Metadata{}
	}
	return maps.Clone(m)
}

// Resource is a record in the tree, addressed by path.
type Resource interface {
	// Path is the absolute, normalized path.
	Path() string
	// Name is the last path segment; empty for root.
	Name() string
	// ResourceType is sling:resourceType, else jcr:primaryType, else nt:unstructured.
	ResourceType() string
	// ResourceSuperType is sling:resourceSuperType, or empty.
	ResourceSuperType() string
	// Properties returns a copy of the property set.
	Properties() Properties
	// Metadata returns this instance's metadata.
	Metadata() Metadata
	// Session is the session that resolved the resource.
	Session() *Session
	// Parent resolves the parent resource through the session.
	Parent() (Resource, bool)
	// Child resolves a direct child by name through the session.
	Child(name string) (Resource, bool)
	// Children lists direct children through the session.
	Children() iter.Seq[Resource]
}

// propertySource is implemented by resources that can expose their property
// set without copying.
type propertySource interface {
	rawProperties() Properties
}

// unwrapper is implemented by resource views that wrap another resource.
type unwrapper interface {
	Unwrap() Resource
}

// Node is a resource backed by a stored property set.
type Node struct {
	path    string
	props   Properties
	md      Metadata
	session *Session
}

func newNode(s *Session, path string, props Properties) *Node {
	return &Node{
		path:    path,
		props:   props,
		md:      Metadata{MetaResolutionPath: path},
		session: s,
	}
}

func (n *Node) Path() string { return n.path }

func (n *Node) Name() string { return Name(n.path) }

func (n *Node) ResourceType() string {
	if rt, ok := n.props[PropResourceType].(string); ok && rt != "" {
		return rt
	}
	if pt, ok := n.props[PropPrimaryType].(string); ok && pt != "" {
		return pt
	}
	return TypeUnstructured
}

func (n *Node) ResourceSuperType() string {
	st, _ := n.props[PropResourceSuperType].(string)
	return st
}

func (n *Node) Properties() Properties { return n.props.Clone() }

func (n *Node) rawProperties() Properties { return n.props }

func (n *Node) Metadata() Metadata { return n.md }

func (n *Node) Session() *Session { return n.session }

func (n *Node) Parent() (Resource, bool) { return n.session.Parent(n) }

func (n *Node) Child(name string) (Resource, bool) {
	return n.session.Get(ChildPath(n.path, name))
}

func (n *Node) Children() iter.Seq[Resource] { return n.session.Children(n) }

// Get returns a single property value.
func (n *Node) Get(key string) (any, bool) {
	v, ok := n.props[key]
	return v, ok
}

func (n *Node) String() string {
	return "Node[" + n.path + "]"
}

// PropertyResource exposes a single property of a node as a resource. It is
// what Get returns for a path whose last segment names a property of the
// parent node rather than a child.
type PropertyResource struct {
	path    string
	key     string
	owner   Properties
	md      Metadata
	session *Session
}

func (p *PropertyResource) Path() string { return p.path }

func (p *PropertyResource) Name() string { return p.key }

// ResourceType is empty: a property has no type of its own.
func (p *PropertyResource) ResourceType() string { return "" }

func (p *PropertyResource) ResourceSuperType() string { return "" }

// Properties is empty for a property resource; use Value.
func (p *PropertyResource) Properties() Properties { return Properties{} }

func (p *PropertyResource) Metadata() Metadata { return p.md }

func (p *PropertyResource) Session() *Session { return p.session }

func (p *PropertyResource) Parent() (Resource, bool) { return p.session.Parent(p) }

func (p *PropertyResource) Child(string) (Resource, bool) { return nil, false }

func (p *PropertyResource) Children() iter.Seq[Resource] { return func(func(Resource) bool) {} }

// Key is the property name in the owning node.
func (p *PropertyResource) Key() string { return p.key }

// Value returns a copy of the wrapped property value.
func (p *PropertyResource) Value() any { return cloneValue(p.owner[p.key]) }

func (p *PropertyResource) String() string {
	return "PropertyResource[" + p.path + "]"
}

// NonExisting stands in for a path that Resolve could not find.
type NonExisting struct {
	path    string
	md      Metadata
	session *Session
}

func (n *NonExisting) Path() string { return n.path }

func (n *NonExisting) Name() string { return Name(n.path) }

func (n *NonExisting) ResourceType() string { return TypeNonExisting }

func (n *NonExisting) ResourceSuperType() string { return "" }

func (n *NonExisting) Properties() Properties { return Properties{} }

func (n *NonExisting) Metadata() Metadata { return n.md }

func (n *NonExisting) Session() *Session { return n.session }

func (n *NonExisting) Parent() (Resource, bool) { return n.session.Parent(n) }

func (n *NonExisting) Child(string) (Resource, bool) { return nil, false }

func (n *NonExisting) Children() iter.Seq[Resource] { return func(func(Resource) bool) {} }

// IsNonExisting reports whether r is a placeholder returned by Resolve.
func IsNonExisting(r Resource) bool {
	_, ok := unwrap(r).(*NonExisting)
	return ok
}

// resultView wraps a resource handed out by a find handler with its own
// metadata copy.
type resultView struct {
	Resource
	md Metadata
}

func (v *resultView) Metadata() Metadata { return v.md }

func (v *resultView) Unwrap() Resource { return v.Resource }

func unwrap(r Resource) Resource {
	for {
		u, ok := r.(unwrapper)
		if !ok {
			return r
		}
		r = u.Unwrap()
	}
}
