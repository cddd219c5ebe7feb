// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// Package schema holds the construction rules shared by every component:
// field constraints, closed decoding from generic values and the single
// schema-violation error category.
//
// # Field constraints
//
// Bounds are declared on the struct fields themselves with `validate` tags
// and checked by go-playground/validator. Struct runs those checks and turns
// validator failures into *Error values whose field names match the keys a
// user writes in a configuration file (the `cty` tag name).
//
// # Closed decoding
//
// DecodeObject reads a cty object into a struct whose fields carry `cty`
// tags. Keys that the struct does not declare are rejected, so a component
// can never be built with a field its variant does not own. Variants maps a
// discriminator tag (the `model_type` key) to the decoder of one concrete
// variant of a closed set and strips the tag before that decoder runs;
// anywhere else model_type is an unknown field like any other.
//
// # Errors
//
// All failures unwrap to ErrSchema. A component that finds several problems
// reports them together as Errors.
package schema
