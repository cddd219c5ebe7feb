package schema_test

import (
	"testing"

	"github.com/specialistvlad/swangridgo/internal/schema"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"
)

type shape interface{ kind() string }

type circle struct {
	R float64 `cty:"r,required"`
}

func (circle) kind() string { return "circle" }

type square struct {
	Side float64 `cty:"side,required"`
}

func (square) kind() string { return "square" }

func decodeAs[T shape](v cty.Value) (shape, error) {
	var out T
	if err := schema.DecodeClosed("shape", v, &out); err != nil {
		return nil, err
	}
	return out, nil
}

var shapes = schema.Variants[shape]{
	Set:     "shape",
	Default: "circle",
	Infer: func(attrs map[string]cty.Value) string {
		if _, ok := attrs["side"]; ok {
			return "square"
		}
		return ""
	},
	Decoders: map[string]schema.Decoder[shape]{
		"circle": decodeAs[circle],
		"square": decodeAs[square],
	},
	Abstract: []string{"base"},
}

func obj(attrs map[string]cty.Value) cty.Value { return cty.ObjectVal(attrs) }

func TestVariantsDecode(t *testing.T) {
	tests := []struct {
		name string
		val  cty.Value
		want shape
	}{
		{"explicit", obj(map[string]cty.Value{"model_type": cty.StringVal("square"), "side": cty.NumberIntVal(2)}), square{Side: 2}},
		{"inferred", obj(map[string]cty.Value{"side": cty.NumberIntVal(3)}), square{Side: 3}},
		{"default", obj(map[string]cty.Value{"r": cty.NumberIntVal(1)}), circle{R: 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := shapes.Decode(tt.val)
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestVariantsDecodeErrors(t *testing.T) {
	tests := []struct {
		name string
		val  cty.Value
		want string
	}{
		{
			name: "abstract",
			val:  obj(map[string]cty.Value{"model_type": cty.StringVal("base")}),
			want: `shape: model_type: abstract component cannot be constructed: "base"`,
		},
		{
			name: "unknown tag",
			val:  obj(map[string]cty.Value{"model_type": cty.StringVal("hexagon")}),
			want: `shape: model_type: unknown model_type "hexagon", expected one of [circle square]`,
		},
		{
			name: "unknown field on variant",
			val:  obj(map[string]cty.Value{"model_type": cty.StringVal("circle"), "r": cty.NumberIntVal(1), "side": cty.NumberIntVal(1)}),
			want: "shape: side: unknown field",
		},
		{
			name: "non-string tag",
			val:  obj(map[string]cty.Value{"model_type": cty.NumberIntVal(1)}),
			want: "shape: model_type: expected string, got number",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := shapes.Decode(tt.val)
			require.ErrorIs(t, err, schema.ErrSchema)
			require.EqualError(t, err, tt.want)
		})
	}
}

func TestVariantsStripTag(t *testing.T) {
	var seen map[string]cty.Value
	spy := shapes
	spy.Decoders = map[string]schema.Decoder[shape]{
		"circle": func(v cty.Value) (shape, error) {
			seen = v.AsValueMap()
			return decodeAs[circle](v)
		},
	}
	got, err := spy.Decode(obj(map[string]cty.Value{"model_type": cty.StringVal("circle"), "r": cty.NumberIntVal(4)}))
	require.NoError(t, err)
	require.Equal(t, circle{R: 4}, got)
	require.NotContains(t, seen, "model_type")

	// Outside a variant set the tag is just another undeclared key.
	var c circle
	err = schema.DecodeClosed("shape", obj(map[string]cty.Value{"model_type": cty.StringVal("circle"), "r": cty.NumberIntVal(4)}), &c)
	require.EqualError(t, err, "shape: model_type: unknown field")
}

func TestVariantsRequireTag(t *testing.T) {
	strict := shapes
	strict.Default = ""
	strict.Infer = nil
	_, err := strict.Decode(obj(map[string]cty.Value{"r": cty.NumberIntVal(1)}))
	require.EqualError(t, err, "shape: model_type: missing required field")
}

func TestDecodeList(t *testing.T) {
	list := cty.TupleVal([]cty.Value{
		obj(map[string]cty.Value{"r": cty.NumberIntVal(1)}),
		obj(map[string]cty.Value{"model_type": cty.StringVal("square")}),
	})
	_, err := schema.DecodeList("group", "members", list, shapes.Decode)
	require.EqualError(t, err, "group: members[1].side: missing required field")

	got, err := schema.DecodeList("group", "members", obj(map[string]cty.Value{"side": cty.NumberIntVal(5)}), shapes.Decode)
	require.NoError(t, err)
	require.Equal(t, []shape{square{Side: 5}}, got)
}

func TestDiscriminator(t *testing.T) {
	require.Equal(t, "square", schema.Discriminator(obj(map[string]cty.Value{"model_type": cty.StringVal("square")})))
	require.Empty(t, schema.Discriminator(obj(map[string]cty.Value{"side": cty.NumberIntVal(1)})))
	require.Empty(t, schema.Discriminator(cty.StringVal("x")))
}

func TestHas(t *testing.T) {
	attrs := map[string]cty.Value{
		"a": cty.NullVal(cty.Number),
		"b": cty.NumberIntVal(1),
	}
	require.False(t, schema.Has(attrs, "a"))
	require.False(t, schema.Has(attrs, "c"))
	require.True(t, schema.Has(attrs, "a", "b"))
}
