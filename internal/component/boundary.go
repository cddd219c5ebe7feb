// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package component

import (
	"github.com/specialistvlad/swangridgo/internal/schema"
	"github.com/specialistvlad/swangridgo/internal/subcomponent"
	"github.com/specialistvlad/swangridgo/internal/swanfmt"
	"github.com/zclconf/go-cty/cty"
)

// Bound is one boundary condition.
type Bound interface {
	Component
	bound()
}

// BoundSide imposes a condition along a whole side of the grid.
type BoundSide struct {
	Shapespec subcomponent.Shapespec
	Location  subcomponent.Side
	Data      subcomponent.BoundaryData
}

func (BoundSide) bound() {}

func (b BoundSide) Validate() error {
	return validateBound(b.Shapespec, b.Location, b.Data)
}

func (b BoundSide) Render() string { return render(b) }
func (b BoundSide) Cmd() []string  { return boundCmd(b.Shapespec, b.Location, b.Data) }

// BoundSegment imposes a condition along a polyline, given in problem
// coordinates or grid indices.
type BoundSegment struct {
	Shapespec subcomponent.Shapespec
	Location  subcomponent.Location
	Data      subcomponent.BoundaryData
}

func (BoundSegment) bound() {}

func (b BoundSegment) Validate() error {
	c := schema.NewCheck("boundary")
	switch b.Location.(type) {
	case subcomponent.SegmentXY, subcomponent.SegmentIJ:
	case nil:
	default:
		c.Fieldf("location", "must be a segment, got %T", b.Location)
	}
	return c.Add(validateBound(b.Shapespec, b.Location, b.Data)).Err()
}

func (b BoundSegment) Render() string { return render(b) }
func (b BoundSegment) Cmd() []string  { return boundCmd(b.Shapespec, b.Location, b.Data) }

func validateBound(shape subcomponent.Shapespec, loc subcomponent.Location, data subcomponent.BoundaryData) error {
	c := schema.NewCheck("boundary").Child("shapespec", shape.Validate())
	if loc == nil {
		c.Require("location", false)
	} else {
		c.Child("location", loc.Validate())
	}
	if data == nil {
		c.Require("data", false)
	} else {
		c.Child("data", data.Validate())
	}
	return c.Err()
}

func boundCmd(shape subcomponent.Shapespec, loc subcomponent.Location, data subcomponent.BoundaryData) []string {
	if loc == nil || data == nil {
		return nil
	}
	return []string{shape.Cmd(), swanfmt.NewLine("BOUNDSPEC", loc.Cmd(), data.Cmd()).Text()}
}

// BoundNest reads boundary spectra from a coarser run.
type BoundNest struct {
	Fname     string `cty:"fname,required" validate:"required"`
	Rectangle string `cty:"rectangle" validate:"oneof=closed open"`
}

func (BoundNest) bound()            {}
func (b BoundNest) Validate() error { return schema.Struct("boundary", b) }
func (b BoundNest) Render() string  { return render(b) }
func (b BoundNest) Cmd() []string {
	return line(swanfmt.NewLine("BOUNDNEST1 NEST", swanfmt.StringKV("fname", b.Fname), swanfmt.Keyword(b.Rectangle)).Text())
}

// Segments is the subset of boundary locations a segment accepts.
var Segments = schema.Variants[subcomponent.Location]{
	Set: "location",
	Infer: func(attrs map[string]cty.Value) string {
		if schema.Has(attrs, "i") {
			return "segmentij"
		}
		return "segmentxy"
	},
	Decoders: map[string]schema.Decoder[subcomponent.Location]{
		"segmentxy": subcomponent.Locations.Decoders["segmentxy"],
		"segmentij": subcomponent.Locations.Decoders["segmentij"],
	},
	Abstract: []string{"base"},
}

func decodeSide(v cty.Value) (subcomponent.Side, error) {
	return schema.Decode("location", v, subcomponent.Side{Direction: "ccw"})
}

// decodeSpecBound reads {shapespec, location, data} with the given location
// decoder.
func decodeSpecBound[L any](v cty.Value, loc schema.Decoder[L]) (subcomponent.Shapespec, L, subcomponent.BoundaryData, error) {
	var (
		zero  L
		shape = subcomponent.NewShapespec(subcomponent.Jonswap{Gamma: subcomponent.DefaultGamma})
	)
	attrs, err := schema.OnlyKeys("boundary", v, "shapespec", "location", "data")
	if err != nil {
		return shape, zero, nil, err
	}
	c := schema.NewCheck("boundary")
	if s, ok, err := schema.DecodeField("boundary", "shapespec", attrs, subcomponent.DecodeShapespec); ok {
		c.Add(err)
		shape = s
	}
	l, ok, err := schema.DecodeField("boundary", "location", attrs, loc)
	c.Require("location", ok).Add(err)
	d, ok, err := schema.DecodeField("boundary", "data", attrs, subcomponent.BoundaryDataSet.Decode)
	c.Require("data", ok).Add(err)
	return shape, l, d, c.Err()
}

// Bounds is the closed set of boundary conditions.
var Bounds = schema.Variants[Bound]{
	Set: "boundary",
	Decoders: map[string]schema.Decoder[Bound]{
		"side": func(v cty.Value) (Bound, error) {
			shape, loc, data, err := decodeSpecBound(v, decodeSide)
			if err != nil {
				return nil, err
			}
			return New(BoundSide{Shapespec: shape, Location: loc, Data: data})
		},
		"segment": func(v cty.Value) (Bound, error) {
			shape, loc, data, err := decodeSpecBound(v, Segments.Decode)
			if err != nil {
				return nil, err
			}
			return New(BoundSegment{Shapespec: shape, Location: loc, Data: data})
		},
		"nest": decodeAs[Bound]("boundary", BoundNest{Rectangle: "closed"}),
	},
	Abstract: []string{"base"},
}

// Boundary is the ordered list of boundary conditions.
type Boundary struct {
	Bounds []Bound
}

func (b Boundary) Validate() error {
	c := schema.NewCheck("boundary")
	for i, m := range b.Bounds {
		c.Child(indexed(i), m.Validate())
	}
	return c.Err()
}

func (b Boundary) Render() string { return render(b) }

func (b Boundary) Cmd() []string {
	var out []string
	for _, m := range b.Bounds {
		out = append(out, m.Cmd()...)
	}
	return out
}

// DecodeBoundary reads one boundary condition or a list of them.
func DecodeBoundary(v cty.Value) (Boundary, error) {
	bounds, err := schema.DecodeList("boundary", "", v, Bounds.Decode)
	if err != nil {
		return Boundary{}, err
	}
	return New(Boundary{Bounds: bounds})
}

// Initial is the initial wave field of a run.
type Initial interface {
	Component
	initial()
}

type InitialDefault struct{}

func (InitialDefault) initial()         {}
func (InitialDefault) Validate() error  { return nil }
func (i InitialDefault) Render() string { return render(i) }
func (InitialDefault) Cmd() []string    { return line("INITIAL DEFAULT") }

type InitialZero struct{}

func (InitialZero) initial()         {}
func (InitialZero) Validate() error  { return nil }
func (i InitialZero) Render() string { return render(i) }
func (InitialZero) Cmd() []string    { return line("INITIAL ZERO") }

// InitialPar starts from a uniform field with the given integral parameters.
type InitialPar struct {
	Hs  float64 `cty:"hs,required" validate:"gt=0"`
	Per float64 `cty:"per,required" validate:"gt=0"`
	Dir float64 `cty:"dir,required" validate:"gte=-360,lte=360"`
	Dd  float64 `cty:"dd,required" validate:"gte=0"`
}

func (InitialPar) initial()          {}
func (i InitialPar) Validate() error { return schema.Struct("initial", i) }
func (i InitialPar) Render() string  { return render(i) }
func (i InitialPar) Cmd() []string {
	return line(swanfmt.NewLine("INITIAL PAR",
		swanfmt.FloatKV("hs", i.Hs),
		swanfmt.FloatKV("per", i.Per),
		swanfmt.FloatKV("dir", i.Dir),
		swanfmt.FloatKV("dd", i.Dd),
	).Text())
}

// InitialHotstart starts from the hotfile of an earlier run.
type InitialHotstart struct {
	Fname  string `cty:"fname,required" validate:"required,max=36"`
	Kind   string `cty:"kind" validate:"oneof=single multiple"`
	Format string `cty:"format" validate:"oneof=free unformatted"`
}

func (InitialHotstart) initial()          {}
func (i InitialHotstart) Validate() error { return schema.Struct("initial", i) }
func (i InitialHotstart) Render() string  { return render(i) }
func (i InitialHotstart) Cmd() []string {
	return line(swanfmt.NewLine("INITIAL HOTSTART",
		swanfmt.Keyword(i.Kind),
		swanfmt.StringKV("fname", i.Fname),
		swanfmt.Keyword(i.Format),
	).Text())
}

// Initials is the closed set of initial conditions.
var Initials = schema.Variants[Initial]{
	Set: "initial",
	Decoders: map[string]schema.Decoder[Initial]{
		"default":  decodeAs[Initial]("initial", InitialDefault{}),
		"zero":     decodeAs[Initial]("initial", InitialZero{}),
		"par":      decodeAs[Initial]("initial", InitialPar{}),
		"hotstart": decodeAs[Initial]("initial", InitialHotstart{Kind: "single", Format: "free"}),
	},
	Abstract: []string{"base"},
}
