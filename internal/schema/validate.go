// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package schema

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
)

// validate is shared by every component. validator.Validate caches struct
// metadata and is safe for concurrent use.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _ := ParseTag(f.Tag.Get(tagName))
		switch name {
		case "-":
			return ""
		case "":
			return f.Name
		}
		return name
	})
	return v
}

// Struct checks the `validate` tags of v, which must be a struct or a
// pointer to one.
func Struct(component string, v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return &Error{Component: component, Reason: err.Error()}
	}

	out := make(Errors, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		out = append(out, &Error{
			Component: component,
			Field:     fieldPath(fe.Namespace()),
			Reason:    describe(fe),
		})
	}
	return out
}

// fieldPath drops the Go type name validator puts in front of a namespace.
func fieldPath(ns string) string {
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return ns
}

// describe turns a validator failure into a sentence.
func describe(fe validator.FieldError) string {
	param := fe.Param()
	sized := fe.Kind() == reflect.Slice || fe.Kind() == reflect.String || fe.Kind() == reflect.Map
	unit := "element(s)"
	if fe.Kind() == reflect.String {
		unit = "character(s)"
	}

	switch fe.Tag() {
	case "required":
		return "missing required field"
	case "gt":
		if sized {
			return fmt.Sprintf("must have more than %s %s", param, unit)
		}
		return fmt.Sprintf("must be greater than %s, got %v", param, fe.Value())
	case "gte":
		return fmt.Sprintf("must be greater than or equal to %s, got %v", param, fe.Value())
	case "lt":
		return fmt.Sprintf("must be less than %s, got %v", param, fe.Value())
	case "lte":
		return fmt.Sprintf("must be less than or equal to %s, got %v", param, fe.Value())
	case "min":
		if sized {
			return fmt.Sprintf("must have at least %s %s", param, unit)
		}
		return fmt.Sprintf("must be at least %s, got %v", param, fe.Value())
	case "max":
		if sized {
			return fmt.Sprintf("must have at most %s %s", param, unit)
		}
		return fmt.Sprintf("must be at most %s, got %v", param, fe.Value())
	case "len":
		return fmt.Sprintf("must have exactly %s %s", param, unit)
	case "oneof":
		return fmt.Sprintf("must be one of [%s], got %q", param, fmt.Sprint(fe.Value()))
	case "unique":
		return "must not contain duplicates"
	}
	return fmt.Sprintf("failed %q constraint", fe.Tag())
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
