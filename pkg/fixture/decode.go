package fixture

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/getmockd/resolvermock/pkg/resolver"
)

// Errors returned while reading fixtures.
var (
	ErrInvalidSyntax  = errors.New("invalid fixture syntax")
	ErrInvalidFixture = errors.New("invalid fixture")
)

// Format is a fixture encoding.
type Format string

// Supported formats.
const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	// FormatXML is the JCR document view: elements are resources,
	// attributes are properties.
	FormatXML Format = "xml"
)

// FormatOf detects the format from a file extension: .yaml and .yml are
// YAML, .xml is document view XML, everything else is JSON.
func FormatOf(path string) Format {
	lower := strings.ToLower(path)
	switch {
	case strings.HasSuffix(lower, ".yaml"), strings.HasSuffix(lower, ".yml"):
		return FormatYAML
	case strings.HasSuffix(lower, ".xml"):
		return FormatXML
	default:
		return FormatJSON
	}
}

// tree is a decoded fixture node. Children keep document order.
type tree struct {
	props    resolver.Properties
	children []child
}

type child struct {
	name string
	tree *tree
}

// parse decodes and validates a fixture document.
func parse(data []byte, format Format) (*tree, error) {
	if format == FormatXML {
		return parseDocView(data)
	}
	if format == FormatJSON && !json.Valid(data) {
		return nil, fmt.Errorf("%w: malformed JSON", ErrInvalidSyntax)
	}

	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSyntax, err)
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return nil, fmt.Errorf("%w: empty document", ErrInvalidFixture)
	}
	root := resolveAlias(doc.Content[0])

	var generic any
	if err := root.Decode(&generic); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSyntax, err)
	}
	if err := Validate(generic); err != nil {
		return nil, err
	}
	return decodeTree(root)
}

func decodeTree(n *yaml.Node) (*tree, error) {
	if n.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("%w: line %d: expected an object", ErrInvalidFixture, n.Line)
	}
	t := &tree{props: resolver.Properties{}}
	var merged []*yaml.Node
	for i := 0; i+1 < len(n.Content); i += 2 {
		key := n.Content[i].Value
		val := resolveAlias(n.Content[i+1])

		if n.Content[i].ShortTag() == "!!merge" {
			merged = append(merged, mergeSources(val)...)
			continue
		}

		switch val.Kind {
		case yaml.MappingNode:
			sub, err := decodeTree(val)
			if err != nil {
				return nil, err
			}
			t.children = append(t.children, child{name: key, tree: sub})
		case yaml.SequenceNode:
			v, err := decodeSequence(val)
			if err != nil {
				return nil, fmt.Errorf("property %s: %w", key, err)
			}
			t.props[key] = v
		default:
			v, err := decodeScalar(val)
			if err != nil {
				return nil, fmt.Errorf("property %s: %w", key, err)
			}
			t.props[key] = v
		}
	}

	for _, src := range merged {
		sub, err := decodeTree(src)
		if err != nil {
			return nil, err
		}
		t.merge(sub)
	}
	return t, nil
}

// mergeSources returns the mappings named by a YAML merge key value.
func mergeSources(n *yaml.Node) []*yaml.Node {
	if n.Kind != yaml.SequenceNode {
		return []*yaml.Node{n}
	}
	out := make([]*yaml.Node, 0, len(n.Content))
	for _, item := range n.Content {
		out = append(out, resolveAlias(item))
	}
	return out
}

// merge adds properties and children of other that t does not define.
func (t *tree) merge(other *tree) {
	for k, v := range other.props {
		if _, ok := t.props[k]; !ok {
			t.props[k] = v
		}
	}
	for _, c := range other.children {
		if !slices.ContainsFunc(t.children, func(e child) bool { return e.name == c.name }) {
			t.children = append(t.children, c)
		}
	}
}

// decodeSequence returns []string or []int64 for homogeneous arrays and
// []any otherwise.
func decodeSequence(n *yaml.Node) (any, error) {
	values := make([]any, 0, len(n.Content))
	allStrings, allInts := true, true
	for _, item := range n.Content {
		v, err := decodeScalar(resolveAlias(item))
		if err != nil {
			return nil, err
		}
		_, isStr := v.(string)
		_, isInt := v.(int64)
		allStrings = allStrings && isStr
		allInts = allInts && isInt
		values = append(values, v)
	}

	switch {
	case len(values) == 0:
		return []string{}, nil
	case allStrings:
		out := make([]string, len(values))
		for i, v := range values {
			out[i] = v.(string)
		}
		return out, nil
	case allInts:
		out := make([]int64, len(values))
		for i, v := range values {
			out[i] = v.(int64)
		}
		return out, nil
	default:
		return values, nil
	}
}

func decodeScalar(n *yaml.Node) (any, error) {
	if n.Kind != yaml.ScalarNode {
		return nil, fmt.Errorf("%w: line %d: expected a scalar", ErrInvalidFixture, n.Line)
	}
	switch n.ShortTag() {
	case "!!int":
		var v int64
		if err := n.Decode(&v); err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", ErrInvalidFixture, n.Line, err)
		}
		return v, nil
	case "!!float":
		var v float64
		if err := n.Decode(&v); err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", ErrInvalidFixture, n.Line, err)
		}
		return v, nil
	case "!!bool":
		var v bool
		if err := n.Decode(&v); err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", ErrInvalidFixture, n.Line, err)
		}
		return v, nil
	case "!!timestamp":
		var v time.Time
		if err := n.Decode(&v); err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", ErrInvalidFixture, n.Line, err)
		}
		return v, nil
	case "!!binary":
		b, err := base64.StdEncoding.DecodeString(strings.Join(strings.Fields(n.Value), ""))
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", ErrInvalidFixture, n.Line, err)
		}
		return b, nil
	case "!!null":
		return nil, fmt.Errorf("%w: line %d: null values are not allowed", ErrInvalidFixture, n.Line)
	default:
		return n.Value, nil
	}
}

func resolveAlias(n *yaml.Node) *yaml.Node {
	for n.Kind == yaml.AliasNode && n.Alias != nil {
		n = n.Alias
	}
	return n
}
