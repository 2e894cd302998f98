package resolvertest

import (
	"fmt"
	"maps"

	"github.com/getmockd/resolvermock/pkg/fixture"
	"github.com/getmockd/resolvermock/pkg/resolver"
)

// ResourceBuilder builds a resource using a fluent API.
type ResourceBuilder struct {
	h     *Harness
	path  string
	props resolver.Properties
	err   error
}

func (b *ResourceBuilder) setError(err error) {
	if b.err == nil {
		b.err = err
	}
}

// Err returns the first error encountered while building.
func (b *ResourceBuilder) Err() error {
	return b.err
}

// WithType sets sling:resourceType.
func (b *ResourceBuilder) WithType(resourceType string) *ResourceBuilder {
	b.props[resolver.PropResourceType] = resourceType
	return b
}

// WithSuperType sets sling:resourceSuperType.
func (b *ResourceBuilder) WithSuperType(superType string) *ResourceBuilder {
	b.props[resolver.PropResourceSuperType] = superType
	return b
}

// WithPrimaryType sets jcr:primaryType on the resource. Missing ancestors
// are always created as nt:unstructured.
func (b *ResourceBuilder) WithPrimaryType(primaryType string) *ResourceBuilder {
	b.props[resolver.PropPrimaryType] = primaryType
	return b
}

// WithProperty sets a single property.
func (b *ResourceBuilder) WithProperty(key string, value any) *ResourceBuilder {
	if key == "" {
		b.setError(fmt.Errorf("WithProperty: empty key"))
		return b
	}
	b.props[key] = value
	return b
}

// WithProperties merges props into the resource's properties.
func (b *ResourceBuilder) WithProperties(props map[string]any) *ResourceBuilder {
	maps.Copy(b.props, props)
	return b
}

// Stage creates the resource and any missing ancestors in the harness
// session without committing. An existing resource has its properties
// merged. It fails the test on error.
func (b *ResourceBuilder) Stage() resolver.Resource {
	b.h.t.Helper()
	if b.err != nil {
		b.h.t.Fatalf("resource %s: %v", b.path, b.err)
	}

	n, err := fixture.EnsurePath(b.h.Session, b.path, resolver.TypeUnstructured)
	if err != nil {
		b.h.t.Fatalf("resource %s: %v", b.path, err)
	}
	vm, ok := resolver.AdaptTo[*resolver.ModifiableValueMap](n, resolver.CapModifiableValueMap)
	if !ok {
		b.h.t.Fatalf("resource %s is not modifiable", b.path)
	}
	if err := vm.SetAll(b.props); err != nil {
		b.h.t.Fatalf("resource %s: %v", b.path, err)
	}
	return b.h.Get(b.path)
}

// Commit stages the resource and commits the harness session.
func (b *ResourceBuilder) Commit() resolver.Resource {
	b.h.t.Helper()
	b.Stage()
	b.h.Commit()
	return b.h.Get(b.path)
}
