package filter

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"strings"

	"gopkg.in/yaml.v3"
)

// maxParseDepth bounds the nesting of arrays and objects accepted by Parse
// and ParseYAML, the same limit encoding/json.Unmarshal applies.
const maxParseDepth = 10000

var errParseDepth = fmt.Errorf("exceeded max depth of %d", maxParseDepth)

// setField sets key on the document being decoded. A repeated key keeps the
// position of its first occurrence and takes the last value.
func setField(doc Document, seen map[string]int, key string, v Value) Document {
	if i, ok := seen[key]; ok {
		doc[i].Value = v
		return doc
	}
	seen[key] = len(doc)
	return append(doc, E(key, v))
}

// Parse decodes a JSON filter document. Object keys keep their order, which
// decides the order field conditions are rendered in. A key given twice stays
// at its first position with its last value.
func Parse(data []byte) (Value, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	v, err := decodeJSON(dec, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to parse filter: %w", err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse filter: unexpected data after top-level value")
	}
	return v, nil
}

func decodeJSON(dec *json.Decoder, depth int) (Value, error) {
	tok, err := dec.Token()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, io.ErrUnexpectedEOF
		}
		return nil, err
	}

	switch t := tok.(type) {
	case nil:
		return Null{}, nil
	case bool:
		return Bool(t), nil
	case string:
		return String(t), nil
	case json.Number:
		return numberFromLiteral(t.String())
	case json.Delim:
		if depth >= maxParseDepth {
			return nil, errParseDepth
		}
		switch t {
		case '[':
			arr := Array{}
			for dec.More() {
				e, err := decodeJSON(dec, depth+1)
				if err != nil {
					return nil, err
				}
				arr = append(arr, e)
			}
			if _, err := dec.Token(); err != nil {
				return nil, err
			}
			return arr, nil
		case '{':
			doc := Document{}
			seen := map[string]int{}
			for dec.More() {
				keyTok, err := dec.Token()
				if err != nil {
					return nil, err
				}
				key, ok := keyTok.(string)
				if !ok {
					return nil, fmt.Errorf("invalid object key: %v", keyTok)
				}
				e, err := decodeJSON(dec, depth+1)
				if err != nil {
					return nil, err
				}
				doc = setField(doc, seen, key, e)
			}
			if _, err := dec.Token(); err != nil {
				return nil, err
			}
			return doc, nil
		}
	}
	return nil, fmt.Errorf("unexpected token: %v", tok)
}

// ParseYAML decodes a YAML filter document. Mapping order is kept the same
// way Parse keeps JSON object order. Since JSON is valid YAML flow syntax,
// ParseYAML also accepts JSON input.
func ParseYAML(data []byte) (Value, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("failed to parse filter: %w", err)
	}
	if root.Kind == 0 {
		return nil, fmt.Errorf("failed to parse filter: empty document")
	}
	v, err := fromYAMLNode(&root, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to parse filter: %w", err)
	}
	return v, nil
}

func fromYAMLNode(n *yaml.Node, depth int) (Value, error) {
	if depth >= maxParseDepth {
		return nil, errParseDepth
	}
	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return Null{}, nil
		}
		return fromYAMLNode(n.Content[0], depth)
	case yaml.AliasNode:
		return fromYAMLNode(n.Alias, depth+1)
	case yaml.SequenceNode:
		arr := make(Array, 0, len(n.Content))
		for _, c := range n.Content {
			e, err := fromYAMLNode(c, depth+1)
			if err != nil {
				return nil, err
			}
			arr = append(arr, e)
		}
		return arr, nil
	case yaml.MappingNode:
		doc := make(Document, 0, len(n.Content)/2)
		seen := map[string]int{}
		for i := 0; i+1 < len(n.Content); i += 2 {
			k := n.Content[i]
			if k.Kind != yaml.ScalarNode {
				return nil, fmt.Errorf("line %d: mapping key must be a scalar", k.Line)
			}
			e, err := fromYAMLNode(n.Content[i+1], depth+1)
			if err != nil {
				return nil, err
			}
			doc = setField(doc, seen, k.Value, e)
		}
		return doc, nil
	case yaml.ScalarNode:
		return fromYAMLScalar(n)
	default:
		return nil, fmt.Errorf("line %d: unsupported node kind %d", n.Line, n.Kind)
	}
}

func fromYAMLScalar(n *yaml.Node) (Value, error) {
	switch n.ShortTag() {
	case "!!null":
		return Null{}, nil
	case "!!bool":
		var b bool
		if err := n.Decode(&b); err != nil {
			return nil, err
		}
		return Bool(b), nil
	case "!!int":
		var i int64
		if err := n.Decode(&i); err == nil {
			if i == 0 && strings.HasPrefix(n.Value, "-") {
				return Float(math.Copysign(0, -1)), nil
			}
			return Int(i), nil
		}
		var f float64
		if err := n.Decode(&f); err != nil {
			return nil, err
		}
		return Float(f), nil
	case "!!float":
		var f float64
		if err := n.Decode(&f); err != nil {
			return nil, err
		}
		return floatLiteral(f, n)
	default:
		return String(n.Value), nil
	}
}

func floatLiteral(f float64, n *yaml.Node) (Value, error) {
	v, err := numberFromLiteral(formatFloat(f))
	if err != nil {
		return nil, fmt.Errorf("line %d: %w", n.Line, err)
	}
	return v, nil
}
