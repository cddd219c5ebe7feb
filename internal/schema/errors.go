// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package schema

import (
	"errors"
	"fmt"
	"strings"
)

// ErrSchema is the category every construction failure belongs to.
var ErrSchema = errors.New("schema violation")

// Error is a single violation detected while building a component.
type Error struct {
	// Component is the variant set or component being built, e.g. "cgrid".
	Component string
	// Field is the dotted key path inside the component. Empty when the
	// violation concerns the component as a whole.
	Field  string
	Reason string
}

// Errorf builds a violation for one field.
func Errorf(component, field, format string, args ...any) *Error {
	return &Error{Component: component, Field: field, Reason: fmt.Sprintf(format, args...)}
}

func (e *Error) Error() string {
	switch {
	case e.Component != "" && e.Field != "":
		return fmt.Sprintf("%s: %s: %s", e.Component, e.Field, e.Reason)
	case e.Component != "":
		return fmt.Sprintf("%s: %s", e.Component, e.Reason)
	case e.Field != "":
		return fmt.Sprintf("%s: %s", e.Field, e.Reason)
	}
	return e.Reason
}

// Unwrap makes errors.Is(err, ErrSchema) true for every violation.
func (e *Error) Unwrap() error {
	return ErrSchema
}

// Errors is a list of violations reported together.
type Errors []*Error

func (es Errors) Error() string {
	if len(es) == 1 {
		return es[0].Error()
	}
	msgs := make([]string, len(es))
	for i, e := range es {
		msgs[i] = e.Error()
	}
	return "validation failed:\n- " + strings.Join(msgs, "\n- ")
}

// Unwrap exposes the individual violations to errors.Is and errors.As.
func (es Errors) Unwrap() []error {
	out := make([]error, len(es))
	for i, e := range es {
		out[i] = e
	}
	return out
}

// Err returns nil for an empty list, and the list otherwise.
func (es Errors) Err() error {
	if len(es) == 0 {
		return nil
	}
	return es
}

// flatten turns any error into violations. Errors that are not violations
// are kept as a reason so nothing is lost.
func flatten(component string, err error) Errors {
	if err == nil {
		return nil
	}
	var list Errors
	if errors.As(err, &list) {
		return list
	}
	var single *Error
	if errors.As(err, &single) {
		return Errors{single}
	}
	return Errors{{Component: component, Reason: err.Error()}}
}

// nest re-parents violations of a child under field of the parent.
func nest(component, field string, err error) Errors {
	child := flatten(component, err)
	out := make(Errors, 0, len(child))
	for _, e := range child {
		path := field
		switch {
		case e.Field == "":
		case field == "" || strings.HasPrefix(e.Field, "["):
			path = field + e.Field
		default:
			path = field + "." + e.Field
		}
		out = append(out, &Error{Component: component, Field: path, Reason: e.Reason})
	}
	return out
}
