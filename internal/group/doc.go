// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

// Package group binds one run period to every time-bearing command of a
// group: the input grids, the output write commands and the lockup
// computations.
//
// Each Apply function derives a new value from an old one. The old value
// is never modified, and applying the same period twice gives the same
// result. Display layouts, units and key suffixes chosen by the user are
// kept; begin, end and step come from the period.
package group
