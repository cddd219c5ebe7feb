// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package schema

import (
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
	"github.com/zclconf/go-cty/cty/gocty"
)

// DiscriminatorKey is the key that selects the concrete variant of a set.
const DiscriminatorKey = "model_type"

// tagName is the struct tag carrying the configuration key of a field.
const tagName = "cty"

// CtyDecoder is implemented by field types that know how to read themselves
// from a generic value, such as times and durations.
type CtyDecoder interface {
	DecodeCty(val cty.Value) error
}

var (
	ctyDecoderType = reflect.TypeOf((*CtyDecoder)(nil)).Elem()
	timeType       = reflect.TypeOf(time.Time{})
)

// ParseTag splits a `cty:"name,required"` tag.
func ParseTag(tag string) (name string, required bool) {
	parts := strings.Split(tag, ",")
	for _, opt := range parts[1:] {
		if opt == "required" {
			required = true
		}
	}
	return parts[0], required
}

type fieldInfo struct {
	name     string
	required bool
	index    []int
}

// fieldsOf lists the tagged fields of a struct type, descending into
// anonymous embedded structs.
func fieldsOf(t reflect.Type) map[string]fieldInfo {
	out := make(map[string]fieldInfo)
	var walk func(t reflect.Type, prefix []int)
	walk = func(t reflect.Type, prefix []int) {
		for i := 0; i < t.NumField(); i++ {
			f := t.Field(i)
			index := append(append([]int(nil), prefix...), i)
			if f.Anonymous && f.Type.Kind() == reflect.Struct && f.Tag.Get(tagName) == "" {
				walk(f.Type, index)
				continue
			}
			if !f.IsExported() {
				continue
			}
			name, required := ParseTag(f.Tag.Get(tagName))
			if name == "" || name == "-" {
				continue
			}
			out[name] = fieldInfo{name: name, required: required, index: index}
		}
	}
	walk(t, nil)
	return out
}

// Attributes returns the attributes of an object value.
func Attributes(component string, val cty.Value) (map[string]cty.Value, error) {
	if val.IsNull() {
		return nil, Errorf(component, "", "expected an object, got null")
	}
	ty := val.Type()
	if !ty.IsObjectType() && !ty.IsMapType() {
		return nil, Errorf(component, "", "expected an object, got %s", ty.FriendlyName())
	}
	if !val.IsWhollyKnown() {
		return nil, Errorf(component, "", "value must be fully known")
	}
	attrs := val.AsValueMap()
	if attrs == nil {
		attrs = map[string]cty.Value{}
	}
	return attrs, nil
}

// DecodeObject assigns the attributes of val to the tagged fields of target,
// a pointer to a struct. Fields that are absent keep their current values, so
// callers pre-set defaults before decoding.
//
// Attributes named in nested are not assigned; they are returned for the
// caller to decode, typically because they hold a variant of another closed
// set. Every other attribute must be declared on target.
func DecodeObject(component string, val cty.Value, target any, nested ...string) (map[string]cty.Value, error) {
	rv := reflect.ValueOf(target)
	if rv.Kind() != reflect.Ptr || rv.Elem().Kind() != reflect.Struct {
		panic(fmt.Sprintf("schema: DecodeObject target must be a pointer to a struct, got %T", target))
	}

	attrs, err := Attributes(component, val)
	if err != nil {
		return nil, err
	}

	fields := fieldsOf(rv.Elem().Type())
	nestedSet := make(map[string]bool, len(nested))
	for _, n := range nested {
		nestedSet[n] = true
	}

	var errs Errors
	rest := make(map[string]cty.Value)
	for _, name := range sortedKeys(attrs) {
		v := attrs[name]
		if nestedSet[name] {
			if !v.IsNull() {
				rest[name] = v
			}
			continue
		}

		f, ok := fields[name]
		if !ok {
			errs = append(errs, Errorf(component, name, "unknown field"))
			continue
		}
		if err := assign(component, name, v, rv.Elem().FieldByIndex(f.index)); err != nil {
			errs = append(errs, flatten(component, err)...)
		}
	}

	for _, name := range sortedKeys(fields) {
		if !fields[name].required {
			continue
		}
		if v, ok := attrs[name]; !ok || v.IsNull() {
			errs = append(errs, Errorf(component, name, "missing required field"))
		}
	}

	return rest, errs.Err()
}

// DecodeClosed is DecodeObject for structs that own no nested variants.
func DecodeClosed(component string, val cty.Value, target any) error {
	_, err := DecodeObject(component, val, target)
	return err
}

// assign converts v to the Go type of fv and stores it.
func assign(component, name string, v cty.Value, fv reflect.Value) error {
	if v.IsNull() {
		return nil
	}

	// Self-decoding types, either held directly or behind a pointer.
	if reflect.PointerTo(fv.Type()).Implements(ctyDecoderType) {
		if err := fv.Addr().Interface().(CtyDecoder).DecodeCty(v); err != nil {
			return Errorf(component, name, "%s", reason(err))
		}
		return nil
	}
	if fv.Kind() == reflect.Ptr && fv.Type().Implements(ctyDecoderType) {
		nv := reflect.New(fv.Type().Elem())
		if err := nv.Interface().(CtyDecoder).DecodeCty(v); err != nil {
			return Errorf(component, name, "%s", reason(err))
		}
		fv.Set(nv)
		return nil
	}

	switch {
	case fv.Kind() == reflect.Struct && fv.Type() != timeType:
		return nestErr(component, name, DecodeClosed(component, v, fv.Addr().Interface()))
	case fv.Kind() == reflect.Ptr && fv.Type().Elem().Kind() == reflect.Struct && fv.Type().Elem() != timeType:
		nv := reflect.New(fv.Type().Elem())
		if err := DecodeClosed(component, v, nv.Interface()); err != nil {
			return nestErr(component, name, err)
		}
		fv.Set(nv)
		return nil
	case fv.Kind() == reflect.Slice && reflect.PointerTo(fv.Type().Elem()).Implements(ctyDecoderType):
		return assignDecoderSlice(component, name, v, fv)
	case fv.Kind() == reflect.Slice && fv.Type().Elem().Kind() == reflect.Struct:
		return assignStructSlice(component, name, v, fv)
	}

	ty, err := gocty.ImpliedType(reflect.Zero(fv.Type()).Interface())
	if err != nil {
		panic(fmt.Sprintf("schema: field %q has no cty equivalent: %s", name, err))
	}
	conv, err := convert.Convert(v, ty)
	if err != nil {
		return Errorf(component, name, "expected %s, got %s", ty.FriendlyName(), v.Type().FriendlyName())
	}
	if err := gocty.FromCtyValue(conv, fv.Addr().Interface()); err != nil {
		return Errorf(component, name, "%s", reason(err))
	}
	return nil
}

func assignStructSlice(component, name string, v cty.Value, fv reflect.Value) error {
	elems, err := Elements(component, name, v)
	if err != nil {
		return err
	}
	out := reflect.MakeSlice(fv.Type(), len(elems), len(elems))
	var errs Errors
	for i, ev := range elems {
		if err := DecodeClosed(component, ev, out.Index(i).Addr().Interface()); err != nil {
			errs = append(errs, nest(component, indexed(name, i), err)...)
		}
	}
	if len(errs) > 0 {
		return errs
	}
	fv.Set(out)
	return nil
}

func assignDecoderSlice(component, name string, v cty.Value, fv reflect.Value) error {
	elems, err := Elements(component, name, v)
	if err != nil {
		return err
	}
	out := reflect.MakeSlice(fv.Type(), len(elems), len(elems))
	var errs Errors
	for i, ev := range elems {
		if err := out.Index(i).Addr().Interface().(CtyDecoder).DecodeCty(ev); err != nil {
			errs = append(errs, Errorf(component, indexed(name, i), "%s", reason(err)))
		}
	}
	if len(errs) > 0 {
		return errs
	}
	fv.Set(out)
	return nil
}

func nestErr(component, field string, err error) error {
	if err == nil {
		return nil
	}
	return nest(component, field, err)
}

// reason strips the component prefix of a nested violation so it reads well
// when re-reported under a parent field.
func reason(err error) string {
	if e, ok := err.(*Error); ok {
		return e.Reason
	}
	return err.Error()
}

// Elements returns the items of a list-like value. A single object is
// treated as a list of one, because a lone HCL block decodes that way.
func Elements(component, field string, val cty.Value) ([]cty.Value, error) {
	if val.IsNull() {
		return nil, nil
	}
	ty := val.Type()
	switch {
	case ty.IsTupleType() || ty.IsListType() || ty.IsSetType():
		out := make([]cty.Value, 0, val.LengthInt())
		for it := val.ElementIterator(); it.Next(); {
			_, ev := it.Element()
			out = append(out, ev)
		}
		return out, nil
	case ty.IsObjectType() || ty.IsMapType():
		return []cty.Value{val}, nil
	}
	return nil, Errorf(component, field, "expected a list, got %s", ty.FriendlyName())
}

// OnlyKeys rejects every attribute of val outside allowed and returns the
// allowed attributes that are set.
func OnlyKeys(component string, val cty.Value, allowed ...string) (map[string]cty.Value, error) {
	var none struct{}
	return DecodeObject(component, val, &none, allowed...)
}
