// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package subcomponent

import (
	"github.com/specialistvlad/swangridgo/internal/schema"
	"github.com/specialistvlad/swangridgo/internal/swanfmt"
	"github.com/zclconf/go-cty/cty"
)

// Location is where a boundary condition applies.
type Location interface {
	Renderer
	Validate() error
	location()
}

// Side is one side of the computational grid, traversed in Direction.
type Side struct {
	Side      string `cty:"side,required" validate:"oneof=north nw west sw south se east ne"`
	Direction string `cty:"direction" validate:"oneof=ccw clockwise"`
}

func (Side) location()         {}
func (s Side) Validate() error { return schema.Struct("location", s) }
func (s Side) Render() string  { return render(s) }
func (s Side) Cmd() string {
	return swanfmt.NewLine("SIDE", swanfmt.Keyword(s.Side), swanfmt.Keyword(s.Direction)).Text()
}

// SegmentXY is a polyline in problem coordinates.
type SegmentXY struct {
	X []float64 `cty:"x,required" validate:"min=2"`
	Y []float64 `cty:"y,required" validate:"min=2"`
}

func (SegmentXY) location() {}

func (s SegmentXY) Validate() error {
	return schema.NewCheck("location").
		Struct(s).
		SameLen("x", len(s.X), map[string]int{"y": len(s.Y)}).
		Err()
}

func (s SegmentXY) Cmd() string {
	l := swanfmt.NewLine("SEGMENT XY")
	for i := range min(len(s.X), len(s.Y)) {
		l.Break().Add(swanfmt.Float(s.X[i]), swanfmt.Float(s.Y[i]))
	}
	return l.Text()
}

func (s SegmentXY) Render() string { return render(s) }

// SegmentIJ is a polyline of grid indices.
type SegmentIJ struct {
	I []int `cty:"i,required" validate:"min=2,dive,gte=0"`
	J []int `cty:"j,required" validate:"min=2,dive,gte=0"`
}

func (SegmentIJ) location() {}

func (s SegmentIJ) Validate() error {
	return schema.NewCheck("location").
		Struct(s).
		SameLen("i", len(s.I), map[string]int{"j": len(s.J)}).
		Err()
}

func (s SegmentIJ) Cmd() string {
	l := swanfmt.NewLine("SEGMENT IJ")
	for i := range min(len(s.I), len(s.J)) {
		l.Break().Add(swanfmt.Int(s.I[i]), swanfmt.Int(s.J[i]))
	}
	return l.Text()
}

func (s SegmentIJ) Render() string { return render(s) }

// Locations is the closed set of boundary locations.
var Locations = schema.Variants[Location]{
	Set:     "location",
	Decoders: map[string]schema.Decoder[Location]{
		"side":      decodeAs[Location]("location", Side{Direction: "ccw"}),
		"segmentxy": decodeAs[Location]("location", SegmentXY{}),
		"segmentij": decodeAs[Location]("location", SegmentIJ{}),
	},
	Infer: func(attrs map[string]cty.Value) string {
		switch {
		case schema.Has(attrs, "side"):
			return "side"
		case schema.Has(attrs, "x"):
			return "segmentxy"
		case schema.Has(attrs, "i"):
			return "segmentij"
		}
		return ""
	},
	Abstract: []string{"base"},
}
