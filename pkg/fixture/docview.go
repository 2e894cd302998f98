package fixture

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/beevik/etree"

	"github.com/getmockd/resolvermock/pkg/resolver"
)

// escapedChar matches the _xHHHH_ escapes document view uses for characters
// that are not valid in XML names.
var escapedChar = regexp.MustCompile(`_x([0-9A-Fa-f]{4})_`)

// parseDocView decodes a JCR document view document. The root element's own
// name is ignored; its attributes and child elements become the fixture.
// Attribute values may carry a type prefix such as "{Long}42" and a
// multi-value list such as "[a,b]".
func parseDocView(data []byte) (*tree, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, fmt.Errorf("%w: empty document", ErrInvalidFixture)
	}
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSyntax, err)
	}
	root := doc.Root()
	if root == nil {
		return nil, fmt.Errorf("%w: empty document", ErrInvalidFixture)
	}
	return decodeElement(root)
}

func decodeElement(el *etree.Element) (*tree, error) {
	t := &tree{props: resolver.Properties{}}
	for _, a := range el.Attr {
		if a.Space == "xmlns" || (a.Space == "" && a.Key == "xmlns") {
			continue
		}
		name := qualified(a.Space, a.Key)
		v, err := docViewValue(a.Value)
		if err != nil {
			return nil, fmt.Errorf("%w: %s@%s: %v", ErrInvalidFixture, el.GetPath(), name, err)
		}
		t.props[name] = v
	}

	for _, c := range el.ChildElements() {
		name := qualified(c.Space, c.Tag)
		if strings.Contains(name, "/") || name == "." || name == ".." {
			return nil, fmt.Errorf("%w: %s: invalid resource name %q", ErrInvalidFixture, c.GetPath(), name)
		}
		sub, err := decodeElement(c)
		if err != nil {
			return nil, err
		}
		t.children = append(t.children, child{name: name, tree: sub})
	}
	return t, nil
}

func qualified(space, local string) string {
	name := unescapeName(local)
	if space != "" {
		return unescapeName(space) + ":" + name
	}
	return name
}

func unescapeName(s string) string {
	return escapedChar.ReplaceAllStringFunc(s, func(m string) string {
		r, _ := strconv.ParseUint(m[2:6], 16, 32)
		return string(rune(r))
	})
}

func docViewValue(raw string) (any, error) {
	typ := "String"
	if strings.HasPrefix(raw, "{") {
		if i := strings.IndexByte(raw, '}'); i > 0 {
			typ, raw = raw[1:i], raw[i+1:]
		}
	}

	if strings.HasPrefix(raw, "[") && strings.HasSuffix(raw, "]") {
		return docViewList(typ, splitValues(raw[1:len(raw)-1]))
	}
	if strings.HasPrefix(raw, `\`) {
		raw = raw[1:]
	}
	return docViewScalar(typ, raw)
}

// splitValues splits on commas not escaped with a backslash.
func splitValues(s string) []string {
	if s == "" {
		return nil
	}
	var (
		out []string
		cur strings.Builder
	)
	for i := 0; i < len(s); i++ {
		switch {
		case s[i] == '\\' && i+1 < len(s):
			i++
			cur.WriteByte(s[i])
		case s[i] == ',':
			out = append(out, cur.String())
			cur.Reset()
		default:
			cur.WriteByte(s[i])
		}
	}
	return append(out, cur.String())
}

func docViewList(typ string, items []string) (any, error) {
	switch typ {
	case "Long":
		out := make([]int64, 0, len(items))
		for _, it := range items {
			n, err := strconv.ParseInt(it, 10, 64)
			if err != nil {
				return nil, err
			}
			out = append(out, n)
		}
		return out, nil
	case "Double", "Decimal", "Boolean", "Date", "Binary":
		out := make([]any, 0, len(items))
		for _, it := range items {
			v, err := docViewScalar(typ, it)
			if err != nil {
				return nil, err
			}
			out = append(out, v)
		}
		return out, nil
	default:
		return append([]string{}, items...), nil
	}
}

func docViewScalar(typ, raw string) (any, error) {
	switch typ {
	case "Long":
		return strconv.ParseInt(raw, 10, 64)
	case "Double", "Decimal":
		return strconv.ParseFloat(raw, 64)
	case "Boolean":
		return strconv.ParseBool(raw)
	case "Date":
		return time.Parse(time.RFC3339Nano, raw)
	case "Binary":
		return base64.StdEncoding.DecodeString(raw)
	default:
		return raw, nil
	}
}
