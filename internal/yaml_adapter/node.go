package yaml_adapter

import (
	"fmt"
	"math"

	"github.com/zclconf/go-cty/cty"
	"gopkg.in/yaml.v3"
)

const mergeKey = "<<"

// nodeToValue translates one YAML node into a value.
func nodeToValue(n *yaml.Node) (cty.Value, error) {
	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return cty.EmptyObjectVal, nil
		}
		return nodeToValue(n.Content[0])
	case yaml.AliasNode:
		return nodeToValue(n.Alias)
	case yaml.MappingNode:
		attrs, err := mappingAttributes(n)
		if err != nil {
			return cty.NilVal, err
		}
		return cty.ObjectVal(attrs), nil
	case yaml.SequenceNode:
		if len(n.Content) == 0 {
			return cty.EmptyTupleVal, nil
		}
		items := make([]cty.Value, len(n.Content))
		for i, c := range n.Content {
			v, err := nodeToValue(c)
			if err != nil {
				return cty.NilVal, err
			}
			items[i] = v
		}
		return cty.TupleVal(items), nil
	case yaml.ScalarNode:
		return scalarToValue(n)
	}
	return cty.NilVal, fmt.Errorf("line %d: unsupported YAML node kind %d", n.Line, n.Kind)
}

// mappingAttributes reads a mapping, resolving merge keys. Keys set
// explicitly win over merged ones.
func mappingAttributes(n *yaml.Node) (map[string]cty.Value, error) {
	attrs := make(map[string]cty.Value, len(n.Content)/2)
	var merged []map[string]cty.Value

	for i := 0; i+1 < len(n.Content); i += 2 {
		k, v := n.Content[i], n.Content[i+1]
		if k.Kind != yaml.ScalarNode {
			return nil, fmt.Errorf("line %d: mapping keys must be scalars", k.Line)
		}
		if k.Value == mergeKey && k.ShortTag() == "!!merge" {
			m, err := mergeSources(v)
			if err != nil {
				return nil, err
			}
			merged = append(merged, m...)
			continue
		}
		if _, dup := attrs[k.Value]; dup {
			return nil, fmt.Errorf("line %d: duplicate key %q", k.Line, k.Value)
		}
		val, err := nodeToValue(v)
		if err != nil {
			return nil, err
		}
		attrs[k.Value] = val
	}

	for _, m := range merged {
		for key, val := range m {
			if _, set := attrs[key]; !set {
				attrs[key] = val
			}
		}
	}
	return attrs, nil
}

func mergeSources(v *yaml.Node) ([]map[string]cty.Value, error) {
	if v.Kind == yaml.AliasNode {
		v = v.Alias
	}
	switch v.Kind {
	case yaml.MappingNode:
		m, err := mappingAttributes(v)
		if err != nil {
			return nil, err
		}
		return []map[string]cty.Value{m}, nil
	case yaml.SequenceNode:
		var out []map[string]cty.Value
		for _, c := range v.Content {
			m, err := mergeSources(c)
			if err != nil {
				return nil, err
			}
			out = append(out, m...)
		}
		return out, nil
	}
	return nil, fmt.Errorf("line %d: merge value must be a mapping", v.Line)
}

func scalarToValue(n *yaml.Node) (cty.Value, error) {
	switch n.ShortTag() {
	case "!!null":
		return cty.NullVal(cty.DynamicPseudoType), nil
	case "!!bool":
		var b bool
		if err := n.Decode(&b); err != nil {
			return cty.NilVal, fmt.Errorf("line %d: %w", n.Line, err)
		}
		return cty.BoolVal(b), nil
	case "!!int":
		var i int64
		if err := n.Decode(&i); err != nil {
			return cty.NilVal, fmt.Errorf("line %d: %w", n.Line, err)
		}
		return cty.NumberIntVal(i), nil
	case "!!float":
		var f float64
		if err := n.Decode(&f); err != nil {
			return cty.NilVal, fmt.Errorf("line %d: %w", n.Line, err)
		}
		if math.IsNaN(f) {
			return cty.NilVal, fmt.Errorf("line %d: NaN is not a valid number", n.Line)
		}
		if v, err := cty.ParseNumberVal(n.Value); err == nil {
			return v, nil
		}
		return cty.NumberFloatVal(f), nil
	}
	// Strings and timestamps keep their source text; time fields parse it.
	return cty.StringVal(n.Value), nil
}
