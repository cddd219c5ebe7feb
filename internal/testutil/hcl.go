package testutil

import (
	"testing"

	"github.com/specialistvlad/swangridgo/internal/hcl_adapter"
	"github.com/specialistvlad/swangridgo/internal/yaml_adapter"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"
)

// HCL parses an HCL snippet into the value tree decoders consume.
func HCL(t *testing.T, src string) cty.Value {
	t.Helper()
	attrs, err := hcl_adapter.NewLoader().Parse([]byte(Unindent(src)), "test.hcl")
	require.NoError(t, err)
	return cty.ObjectVal(attrs)
}

// HCLBlock parses an HCL snippet and returns its top-level key.
func HCLBlock(t *testing.T, src, key string) cty.Value {
	t.Helper()
	v := HCL(t, src)
	require.True(t, v.Type().HasAttribute(key), "snippet has no top-level %q", key)
	return v.GetAttr(key)
}

// YAML parses a YAML snippet into the value tree decoders consume.
func YAML(t *testing.T, src string) cty.Value {
	t.Helper()
	attrs, err := yaml_adapter.NewLoader().Parse([]byte(Unindent(src)), "test.yaml")
	require.NoError(t, err)
	return cty.ObjectVal(attrs)
}
