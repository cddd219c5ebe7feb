// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package component

import (
	"fmt"

	"github.com/specialistvlad/swangridgo/internal/schema"
	"github.com/specialistvlad/swangridgo/internal/swanfmt"
	"github.com/zclconf/go-cty/cty"
)

// Component is a top-level SWAN command or group of commands.
type Component interface {
	// Cmd returns one entry per emitted command line. Continuation points
	// inside an entry are marked with swanfmt.Break.
	Cmd() []string
	Render() string
	Validate() error
}

// New returns c when it validates.
func New[T Component](c T) (T, error) {
	return schema.Build(c)
}

// render is the Render of every component.
func render(c interface{ Cmd() []string }) string {
	return swanfmt.RenderAll(c.Cmd())
}

// decodeAs decodes a closed variant over defaults and validates it.
func decodeAs[T any, V schema.Validator](component string, defaults V) schema.Decoder[T] {
	return func(v cty.Value) (T, error) {
		var zero T
		out, err := schema.Decode(component, v, defaults)
		if err != nil {
			return zero, err
		}
		return widen[T](out), nil
	}
}

// widen converts a variant to its set.
func widen[T any](v any) T {
	t, ok := v.(T)
	if !ok {
		panic(fmt.Sprintf("component: %T does not belong to the set", v))
	}
	return t
}

// line renders a single-command component.
func line(cmd string) []string {
	return []string{cmd}
}

// check starts a violation list for component.
func check(component string, v any) *schema.Check {
	return schema.NewCheck(component).Struct(v)
}

// indexed names the i-th member of a list.
func indexed(i int) string {
	return fmt.Sprintf("[%d]", i)
}
