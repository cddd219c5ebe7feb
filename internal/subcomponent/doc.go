// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

// Package subcomponent holds the building blocks that components embed:
// time selectors, spectral resolution, grid readers and geometries,
// boundary shapes, locations and data, and output quantity names.
//
// Each value renders the keyword form of one SWAN command fragment via Cmd.
// Fragments that span several lines mark the continuation points with
// swanfmt.Break; Render turns them into SWAN continuation markers.
package subcomponent

import "github.com/specialistvlad/swangridgo/internal/swanfmt"

// Renderer is a command fragment.
type Renderer interface {
	Cmd() string
	Render() string
}

// render is the Render of every fragment.
func render(r interface{ Cmd() string }) string {
	return swanfmt.Render(r.Cmd())
}
