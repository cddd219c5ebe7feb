package hcl_adapter

import (
	"fmt"
	"sort"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/function"
	"github.com/zclconf/go-cty/cty/function/stdlib"
)

// discriminatorKey is the attribute a block label is stored under.
const discriminatorKey = "model_type"

// evalContext offers pure helper functions and no variables.
var evalContext = &hcl.EvalContext{
	Functions: map[string]function.Function{
		"abs":    stdlib.AbsoluteFunc,
		"ceil":   stdlib.CeilFunc,
		"concat": stdlib.ConcatFunc,
		"floor":  stdlib.FloorFunc,
		"format": stdlib.FormatFunc,
		"length": stdlib.LengthFunc,
		"lower":  stdlib.LowerFunc,
		"max":    stdlib.MaxFunc,
		"min":    stdlib.MinFunc,
		"range":  stdlib.RangeFunc,
		"upper":  stdlib.UpperFunc,
	},
}

// bodyAttributes evaluates the attributes and blocks of body.
func bodyAttributes(body *hclsyntax.Body) (map[string]cty.Value, hcl.Diagnostics) {
	var diags hcl.Diagnostics
	out := make(map[string]cty.Value, len(body.Attributes)+len(body.Blocks))

	names := make([]string, 0, len(body.Attributes))
	for name := range body.Attributes {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		attr := body.Attributes[name]
		if refs := attr.Expr.Variables(); len(refs) > 0 {
			diags = diags.Append(&hcl.Diagnostic{
				Severity: hcl.DiagError,
				Summary:  "References are not supported",
				Detail:   fmt.Sprintf("Attribute %q refers to %q; only literal values and built-in functions are allowed.", name, refs[0].RootName()),
				Subject:  attr.Expr.Range().Ptr(),
			})
			continue
		}
		val, valDiags := attr.Expr.Value(evalContext)
		diags = append(diags, valDiags...)
		if valDiags.HasErrors() {
			continue
		}
		out[name] = val
	}

	// Blocks of one type are grouped in source order.
	grouped := make(map[string][]cty.Value)
	var order []string
	for _, block := range body.Blocks {
		if _, clash := body.Attributes[block.Type]; clash {
			diags = diags.Append(&hcl.Diagnostic{
				Severity: hcl.DiagError,
				Summary:  "Duplicate argument",
				Detail:   fmt.Sprintf("%q is set both as an attribute and as a block.", block.Type),
				Subject:  block.TypeRange.Ptr(),
			})
			continue
		}
		val, blockDiags := blockValue(block)
		diags = append(diags, blockDiags...)
		if blockDiags.HasErrors() {
			continue
		}
		if _, seen := grouped[block.Type]; !seen {
			order = append(order, block.Type)
		}
		grouped[block.Type] = append(grouped[block.Type], val)
	}
	for _, name := range order {
		vals := grouped[name]
		if len(vals) == 1 {
			out[name] = vals[0]
			continue
		}
		out[name] = cty.TupleVal(vals)
	}

	return out, diags
}

func blockValue(block *hclsyntax.Block) (cty.Value, hcl.Diagnostics) {
	if len(block.Labels) > 1 {
		return cty.NilVal, hcl.Diagnostics{{
			Severity: hcl.DiagError,
			Summary:  "Too many block labels",
			Detail:   fmt.Sprintf("Block %q takes at most one label naming its model type, got %d.", block.Type, len(block.Labels)),
			Subject:  block.LabelRanges[1].Ptr(),
		}}
	}

	attrs, diags := bodyAttributes(block.Body)
	if diags.HasErrors() {
		return cty.NilVal, diags
	}
	if len(block.Labels) == 1 {
		if _, set := attrs[discriminatorKey]; set {
			return cty.NilVal, diags.Append(&hcl.Diagnostic{
				Severity: hcl.DiagError,
				Summary:  "Duplicate model type",
				Detail:   fmt.Sprintf("Block %q has a label and a %s attribute.", block.Type, discriminatorKey),
				Subject:  block.LabelRanges[0].Ptr(),
			})
		}
		attrs[discriminatorKey] = cty.StringVal(block.Labels[0])
	}
	return cty.ObjectVal(attrs), diags
}
