package resolver

import (
	"bytes"
	"io"
	"strings"
)

// Capability names a view a resource can be adapted to.
type Capability string

// Built-in capabilities.
const (
	// CapValueMap yields a read-only Properties copy.
	CapValueMap Capability = "valuemap"
	// CapModifiableValueMap yields a *ModifiableValueMap that stages edits in the session.
	CapModifiableValueMap Capability = "modifiable-valuemap"
	// CapReader yields an io.Reader over binary content.
	CapReader Capability = "reader"
	// CapValue yields the raw value of a property resource.
	CapValue Capability = "value"
)

// AdapterFunc provides a capability for a resource. It reports false when the
// resource cannot provide it.
type AdapterFunc func(r Resource) (any, bool)

var (
	nodeAdapters = map[Capability]AdapterFunc{
		CapValueMap:           func(r Resource) (any, bool) { return r.Properties(), true },
		CapModifiableValueMap: adaptModifiable,
		CapReader:             adaptFileReader,
	}
	propertyAdapters = map[Capability]AdapterFunc{
		CapValue:  func(r Resource) (any, bool) { return r.(*PropertyResource).Value(), true },
		CapReader: func(r Resource) (any, bool) { return newReader(r.(*PropertyResource).Value()) },
	}
	nonExistingAdapters = map[Capability]AdapterFunc{}
)

// Adapt looks up capability c for r. The resource variant's own table is
// consulted first, then adapters registered on the factory with WithAdapter,
// and finally the generic default, which only knows CapValueMap.
func Adapt(r Resource, c Capability) (any, bool) {
	if r == nil {
		return nil, false
	}
	base := unwrap(r)

	var table map[Capability]AdapterFunc
	switch base.(type) {
	case *Node:
		table = nodeAdapters
	case *PropertyResource:
		table = propertyAdapters
	case *NonExisting:
		table = nonExistingAdapters
	}
	if fn, ok := table[c]; ok {
		if v, ok := fn(base); ok {
			return v, true
		}
	}

	if s := r.Session(); s != nil && s.factory != nil {
		if fn, ok := s.factory.adapters[c]; ok {
			if v, ok := fn(r); ok {
				return v, true
			}
		}
	}

	if c == CapValueMap {
		return r.Properties(), true
	}
	return nil, false
}

// AdaptTo is Adapt with a type assertion on the result.
func AdaptTo[T any](r Resource, c Capability) (T, bool) {
	var zero T
	v, ok := Adapt(r, c)
	if !ok {
		return zero, false
	}
	t, ok := v.(T)
	return t, ok
}

func adaptModifiable(r Resource) (any, bool) {
	if r.Session() == nil {
		return nil, false
	}
	return &ModifiableValueMap{session: r.Session(), path: r.Path()}, true
}

// adaptFileReader exposes jcr:data of an nt:resource, or of the jcr:content
// child of an nt:file.
func adaptFileReader(r Resource) (any, bool) {
	switch r.ResourceType() {
	case TypeResource:
		v, ok := r.(*Node).Get(PropData)
		if !ok {
			return nil, false
		}
		return newReader(v)
	case TypeFile:
		content, ok := r.Child(NodeContent)
		if !ok {
			return nil, false
		}
		n, ok := unwrap(content).(*Node)
		if !ok {
			return nil, false
		}
		v, ok := n.Get(PropData)
		if !ok {
			return nil, false
		}
		return newReader(v)
	default:
		return nil, false
	}
}

func newReader(v any) (io.Reader, bool) {
	switch x := v.(type) {
	case []byte:
		return bytes.NewReader(x), true
	case string:
		return strings.NewReader(x), true
	default:
		return nil, false
	}
}

// ModifiableValueMap edits the properties of one resource. Every change is
// staged in the owning session and becomes visible to the store on Commit.
type ModifiableValueMap struct {
	session *Session
	path    string
}

// Path is the resource the map edits.
func (m *ModifiableValueMap) Path() string { return m.path }

// Get returns the currently visible value of key.
func (m *ModifiableValueMap) Get(key string) (any, bool) {
	props, ok := m.session.visible(m.path)
	if !ok {
		return nil, false
	}
	v, ok := props[key]
	return cloneValue(v), ok
}

// Properties returns a copy of the currently visible properties.
func (m *ModifiableValueMap) Properties() Properties {
	props, _ := m.session.visible(m.path)
	return props.Clone()
}

// Set stages key = value.
func (m *ModifiableValueMap) Set(key string, value any) error {
	return m.session.Modify(m.path, func(p Properties) error {
		v, err := normalizeValue(value)
		if err != nil {
			return err
		}
		p[key] = v
		return nil
	})
}

// SetAll stages every entry of props.
func (m *ModifiableValueMap) SetAll(props Properties) error {
	return m.session.Modify(m.path, func(p Properties) error {
		for k, value := range props {
			v, err := normalizeValue(value)
			if err != nil {
				return err
			}
			p[k] = v
		}
		return nil
	})
}

// Delete stages the removal of key.
func (m *ModifiableValueMap) Delete(key string) error {
	return m.session.Modify(m.path, func(p Properties) error {
		delete(p, key)
		return nil
	})
}
