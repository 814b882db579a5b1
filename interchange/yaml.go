package interchange

import (
	"bytes"
	"fmt"
	"math"
	"strconv"

	"gopkg.in/yaml.v3"
)

// ============================================================
// YAML
// ============================================================
//
// Encoding and decoding go through yaml.Node rather than Go maps so
// mapping order survives in both directions.

// Alias limits on decode. maxAliasDepth bounds how deeply aliases
// nest. The expansion budget bounds how many nodes the decoded value
// may have in total: minExpansionBudget, or expansionRatio times the
// node count of the document as written, whichever is larger.
const (
	maxAliasDepth      = 64
	minExpansionBudget = 10000
	expansionRatio     = 100
)

type yamlCodec struct{}

func (yamlCodec) Name() string { return "yaml" }

func (yamlCodec) Encode(v *Value) ([]byte, error) {
	if err := checkValue(v); err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(toYAMLNode(v)); err != nil {
		return nil, &SerializationError{Kind: ErrUnrepresentable, Reason: err.Error()}
	}
	if err := enc.Close(); err != nil {
		return nil, &SerializationError{Kind: ErrUnrepresentable, Reason: err.Error()}
	}
	return buf.Bytes(), nil
}

func toYAMLNode(v *Value) *yaml.Node {
	switch v.Kind() {
	case KindBool:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!bool", Value: canonBool(v.boolVal)}
	case KindNumber:
		if v.numVal == math.Trunc(v.numVal) && math.Abs(v.numVal) <= maxSafeInteger {
			return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!int", Value: strconv.FormatInt(int64(v.numVal), 10)}
		}
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!float", Value: canonNumber(v.numVal)}
	case KindString:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: v.strVal}
	case KindList:
		node := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		for _, elem := range v.listVal {
			node.Content = append(node.Content, toYAMLNode(elem))
		}
		return node
	case KindMap:
		node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		for _, e := range v.mapVal {
			node.Content = append(node.Content,
				&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: e.Key},
				toYAMLNode(e.Value))
		}
		return node
	default:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}
	}
}

func (yamlCodec) Decode(data []byte) (*Value, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, &ParseError{Message: err.Error()}
	}
	if doc.Kind == 0 {
		return Null(), nil
	}
	d := &yamlDecoder{budget: max(minExpansionBudget, expansionRatio*countYAMLNodes(&doc))}
	return d.decode(&doc, 0)
}

// yamlDecoder converts a node tree to a Value, expanding aliases into
// copies of their anchors within a node budget.
type yamlDecoder struct {
	expanded int
	budget   int
}

// countYAMLNodes counts the nodes as written, without following aliases.
func countYAMLNodes(n *yaml.Node) int {
	count := 1
	for _, child := range n.Content {
		count += countYAMLNodes(child)
	}
	return count
}

func (d *yamlDecoder) decode(n *yaml.Node, aliasDepth int) (*Value, error) {
	d.expanded++
	if d.expanded > d.budget {
		return nil, yamlError(n, fmt.Sprintf("alias expansion exceeds %d nodes", d.budget))
	}

	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return Null(), nil
		}
		return d.decode(n.Content[0], aliasDepth)

	case yaml.AliasNode:
		if aliasDepth >= maxAliasDepth {
			return nil, yamlError(n, "alias nesting too deep")
		}
		return d.decode(n.Alias, aliasDepth+1)

	case yaml.SequenceNode:
		list := List()
		for _, child := range n.Content {
			item, err := d.decode(child, aliasDepth)
			if err != nil {
				return nil, err
			}
			list.listVal = append(list.listVal, item)
		}
		return list, nil

	case yaml.MappingNode:
		m := Map()
		for i := 0; i+1 < len(n.Content); i += 2 {
			key := n.Content[i]
			if key.Kind != yaml.ScalarNode {
				return nil, yamlError(key, "mapping key must be a scalar")
			}
			item, err := d.decode(n.Content[i+1], aliasDepth)
			if err != nil {
				return nil, err
			}
			m.Set(key.Value, item)
		}
		return m, nil

	case yaml.ScalarNode:
		return fromYAMLScalar(n)

	default:
		return nil, yamlError(n, "unsupported node")
	}
}

func fromYAMLScalar(n *yaml.Node) (*Value, error) {
	switch n.ShortTag() {
	case "!!null":
		return Null(), nil
	case "!!bool":
		var b bool
		if err := n.Decode(&b); err != nil {
			return nil, yamlError(n, err.Error())
		}
		return Bool(b), nil
	case "!!int", "!!float":
		var f float64
		if err := n.Decode(&f); err != nil {
			return nil, yamlError(n, err.Error())
		}
		if !isFinite(f) {
			return nil, yamlError(n, "non-finite number "+n.Value)
		}
		return Number(f), nil
	default:
		// !!str, !!timestamp, !!binary and custom tags keep their text.
		return String(n.Value), nil
	}
}

func yamlError(n *yaml.Node, msg string) error {
	return &ParseError{Message: msg, Pos: Position{Line: n.Line, Column: n.Column}}
}
