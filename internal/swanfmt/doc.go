// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// Package swanfmt renders the leaf tokens of the SWAN command grammar: numbers,
// quoted strings, logical flags and key=value pairs, plus the continuation
// marker used when a command spills across lines.
//
// Every component in the module formats its values through this package so the
// same value always produces the same bytes. Floats follow the shortest
// round-trip decimal form with one mandatory decimal digit, so 1 renders as
// "1.0" and 0.04 as "0.04".
package swanfmt
