// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package schema

import (
	"slices"
	"strconv"
	"strings"

	"github.com/zclconf/go-cty/cty"
)

// Decoder builds one variant of a closed set from its attributes.
type Decoder[T any] func(val cty.Value) (T, error)

// Variants is a closed set of variants selected by the model_type key.
type Variants[T any] struct {
	// Set names the family in error messages, e.g. "cgrid".
	Set string
	// Default is used when model_type is absent and Infer is nil or gives
	// up. Empty means model_type is required.
	Default string
	// Infer picks a variant from the attributes present.
	Infer    func(attrs map[string]cty.Value) string
	Decoders map[string]Decoder[T]
	// Abstract lists tags that name a base and can never be built.
	Abstract []string
}

// Names returns the constructible tags in order.
func (vs Variants[T]) Names() []string {
	return sortedKeys(vs.Decoders)
}

// Decode selects the variant named by val's model_type and builds it. The
// variant decoder sees every attribute except model_type.
func (vs Variants[T]) Decode(val cty.Value) (T, error) {
	var zero T
	attrs, err := Attributes(vs.Set, val)
	if err != nil {
		return zero, err
	}

	tag, err := vs.tag(attrs)
	if err != nil {
		return zero, err
	}
	if slices.Contains(vs.Abstract, tag) {
		return zero, Errorf(vs.Set, DiscriminatorKey, "abstract component cannot be constructed: %q", tag)
	}
	dec, ok := vs.Decoders[tag]
	if !ok {
		return zero, Errorf(vs.Set, DiscriminatorKey, "unknown model_type %q, expected one of [%s]", tag, strings.Join(vs.Names(), " "))
	}
	if _, ok := attrs[DiscriminatorKey]; ok {
		delete(attrs, DiscriminatorKey)
		val = cty.ObjectVal(attrs)
	}
	return dec(val)
}

func (vs Variants[T]) tag(attrs map[string]cty.Value) (string, error) {
	if v, ok := attrs[DiscriminatorKey]; ok && !v.IsNull() {
		if v.Type() != cty.String {
			return "", Errorf(vs.Set, DiscriminatorKey, "expected string, got %s", v.Type().FriendlyName())
		}
		return v.AsString(), nil
	}
	if vs.Infer != nil {
		if tag := vs.Infer(attrs); tag != "" {
			return tag, nil
		}
	}
	if vs.Default != "" {
		return vs.Default, nil
	}
	return "", Errorf(vs.Set, DiscriminatorKey, "missing required field")
}

// Has reports whether any of keys is set to a non-null value. Infer
// functions use it so an explicit null selects nothing.
func Has(attrs map[string]cty.Value, keys ...string) bool {
	for _, k := range keys {
		if v, ok := attrs[k]; ok && !v.IsNull() {
			return true
		}
	}
	return false
}

// Discriminator returns the model_type of val, or "" when it has none.
func Discriminator(val cty.Value) string {
	if val.IsNull() || !val.Type().IsObjectType() || !val.Type().HasAttribute(DiscriminatorKey) {
		return ""
	}
	v := val.GetAttr(DiscriminatorKey)
	if v.IsNull() || v.Type() != cty.String || !v.IsKnown() {
		return ""
	}
	return v.AsString()
}

// DecodeList builds every element of a list-like value with dec. An object
// is treated as a list of one.
func DecodeList[T any](component, field string, val cty.Value, dec Decoder[T]) ([]T, error) {
	elems, err := Elements(component, field, val)
	if err != nil {
		return nil, err
	}
	out := make([]T, 0, len(elems))
	var errs Errors
	for i, ev := range elems {
		item, err := dec(ev)
		if err != nil {
			errs = append(errs, nest(component, indexed(field, i), err)...)
			continue
		}
		out = append(out, item)
	}
	if len(errs) > 0 {
		return nil, errs
	}
	return out, nil
}

// DecodeField decodes attrs[field] with dec when present. Violations are
// reported under field.
func DecodeField[T any](component, field string, attrs map[string]cty.Value, dec Decoder[T]) (T, bool, error) {
	var zero T
	v, ok := attrs[field]
	if !ok || v.IsNull() {
		return zero, false, nil
	}
	out, err := dec(v)
	if err != nil {
		return zero, true, nest(component, field, err)
	}
	return out, true, nil
}

// Validator is implemented by every buildable value.
type Validator interface {
	Validate() error
}

// Build returns v when it validates and the zero value otherwise, so no
// partially valid value reaches the caller.
func Build[T Validator](v T) (T, error) {
	if err := v.Validate(); err != nil {
		var zero T
		return zero, err
	}
	return v, nil
}

// Decode reads a closed struct over defaults and validates the result.
func Decode[T Validator](component string, val cty.Value, defaults T) (T, error) {
	if err := DecodeClosed(component, val, &defaults); err != nil {
		var zero T
		return zero, err
	}
	return Build(defaults)
}

func indexed(field string, i int) string {
	if field == "" {
		return "[" + strconv.Itoa(i) + "]"
	}
	return field + "[" + strconv.Itoa(i) + "]"
}
