package toon

import (
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// ============================================================
// YAML Bridge
// ============================================================
//
// Converts YAML documents into the Value model for re-encoding as
// TOON. The node tree is walked directly so mapping key order
// survives into Objects (a plain map decode would lose it).

// FromYAML converts YAML bytes to a Value using default options.
func FromYAML(data []byte) (*Value, error) {
	return FromYAMLWithOptions(data, DefaultEncodeOptions())
}

// FromYAMLWithOptions converts YAML bytes to a Value using the
// options' depth bound.
func FromYAMLWithOptions(data []byte, opts EncodeOptions) (*Value, error) {
	opts = opts.withDefaults()
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("toon: invalid YAML: %w", err)
	}
	if doc.Kind == 0 {
		// Empty document.
		return Null(), nil
	}
	return fromYAMLNode(&doc, 0, opts.MaxDepth)
}

// EncodeYAML converts a YAML document directly to TOON text.
func EncodeYAML(data []byte, opts EncodeOptions) (string, error) {
	opts = opts.withDefaults()
	v, err := FromYAMLWithOptions(data, opts)
	if err != nil {
		return "", err
	}
	return EncodeValue(v, opts)
}

func fromYAMLNode(n *yaml.Node, depth, limit int) (*Value, error) {
	if depth > limit {
		return nil, &MaxDepthError{Depth: depth, Limit: limit}
	}

	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return Null(), nil
		}
		return fromYAMLNode(n.Content[0], depth, limit)

	case yaml.AliasNode:
		return fromYAMLNode(n.Alias, depth+1, limit)

	case yaml.MappingNode:
		obj := Object()
		for i := 0; i+1 < len(n.Content); i += 2 {
			kn, vn := n.Content[i], n.Content[i+1]
			key := kn.Value
			if kn.Kind != yaml.ScalarNode {
				kv, err := fromYAMLNode(kn, depth+1, limit)
				if err != nil {
					return nil, err
				}
				key = sortKey(kv)
			}
			vv, err := fromYAMLNode(vn, depth+1, limit)
			if err != nil {
				return nil, err
			}
			obj.Set(key, vv)
		}
		return obj, nil

	case yaml.SequenceNode:
		elems := make([]*Value, len(n.Content))
		for i, cn := range n.Content {
			ev, err := fromYAMLNode(cn, depth+1, limit)
			if err != nil {
				return nil, err
			}
			elems[i] = ev
		}
		return Array(elems...), nil

	case yaml.ScalarNode:
		return fromYAMLScalar(n), nil

	default:
		return Null(), nil
	}
}

func fromYAMLScalar(n *yaml.Node) *Value {
	switch n.Tag {
	case "!!null":
		return Null()
	case "!!bool":
		if b, err := strconv.ParseBool(n.Value); err == nil {
			return Bool(b)
		}
		return String(n.Value)
	case "!!int":
		if i, err := strconv.ParseInt(n.Value, 10, 64); err == nil {
			return normInt(i)
		}
		// Hex, octal, or wider than int64: keep the text.
		return String(n.Value)
	case "!!float":
		if f, err := strconv.ParseFloat(n.Value, 64); err == nil {
			return normFloat(f)
		}
		switch strings.ToLower(n.Value) {
		case ".inf", "+.inf", "-.inf", ".nan":
			return Null()
		}
		return String(n.Value)
	default:
		return String(n.Value)
	}
}
