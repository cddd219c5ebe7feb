// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

// Package component defines the top-level SWAN commands a run is made of.
//
// Every component renders one or more command lines via Cmd, validates its
// own fields and cross-field rules via Validate, and is built from the
// generic value tree by a Decode function or a schema.Variants set. Decoding
// rejects any key a component does not declare and validates before
// returning, so no partially built component escapes.
//
// Families are grouped the way the solver expects them: startup, the
// computational grid, input grids and wind, physics, numerics, boundary
// and initial conditions, output, and the lockup commands.
package component
