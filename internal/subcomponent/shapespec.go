// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package subcomponent

import (
	"github.com/specialistvlad/swangridgo/internal/schema"
	"github.com/specialistvlad/swangridgo/internal/swanfmt"
	"github.com/zclconf/go-cty/cty"
)

// DefaultGamma is the JONSWAP peak enhancement factor.
const DefaultGamma = 3.3

// Shape is the spectral shape of a boundary condition.
type Shape interface {
	Renderer
	Validate() error
	shape()
}

// Jonswap is a JONSWAP spectrum.
type Jonswap struct {
	Gamma float64 `cty:"gamma" validate:"gt=0"`
}

func (Jonswap) shape()            {}
func (s Jonswap) Validate() error { return schema.Struct("shape", s) }
func (s Jonswap) Cmd() string     { return "JONSWAP " + swanfmt.FloatKV("gamma", s.Gamma) }
func (s Jonswap) Render() string  { return render(s) }

// PiersonMoskowitz is a Pierson-Moskowitz spectrum.
type PiersonMoskowitz struct{}

func (PiersonMoskowitz) shape()           {}
func (PiersonMoskowitz) Validate() error  { return nil }
func (PiersonMoskowitz) Cmd() string      { return "PM" }
func (s PiersonMoskowitz) Render() string { return render(s) }

// Gauss is a Gaussian-shaped spectrum of width Sigfr.
type Gauss struct {
	Sigfr float64 `cty:"sigfr,required" validate:"gt=0"`
}

func (Gauss) shape()            {}
func (s Gauss) Validate() error { return schema.Struct("shape", s) }
func (s Gauss) Cmd() string     { return "GAUSS " + swanfmt.FloatKV("sigfr", s.Sigfr) }
func (s Gauss) Render() string  { return render(s) }

// Bin puts all energy in one frequency bin.
type Bin struct{}

func (Bin) shape()           {}
func (Bin) Validate() error  { return nil }
func (Bin) Cmd() string      { return "BIN" }
func (s Bin) Render() string { return render(s) }

// TMA is a JONSWAP spectrum limited by depth D.
type TMA struct {
	Gamma float64 `cty:"gamma" validate:"gt=0"`
	D     float64 `cty:"d,required" validate:"gt=0"`
}

func (TMA) shape()            {}
func (s TMA) Validate() error { return schema.Struct("shape", s) }
func (s TMA) Cmd() string {
	return swanfmt.NewLine("TMA", swanfmt.FloatKV("gamma", s.Gamma), swanfmt.FloatKV("d", s.D)).Text()
}
func (s TMA) Render() string { return render(s) }

// Shapes is the closed set of spectral shapes; jonswap is the default.
var Shapes = schema.Variants[Shape]{
	Set:     "shape",
	Default: "jonswap",
	Decoders: map[string]schema.Decoder[Shape]{
		"jonswap": decodeAs[Shape]("shape", Jonswap{Gamma: DefaultGamma}),
		"pm":      decodeAs[Shape]("shape", PiersonMoskowitz{}),
		"gauss":   decodeAs[Shape]("shape", Gauss{}),
		"bin":     decodeAs[Shape]("shape", Bin{}),
		"tma":     decodeAs[Shape]("shape", TMA{Gamma: DefaultGamma}),
	},
	Abstract: []string{"base"},
}

// Shapespec is the spectral shape, period measure and spreading measure
// of boundary spectra.
type Shapespec struct {
	Shape    Shape  `cty:"-"`
	PerType  string `cty:"per_type" validate:"oneof=peak mean"`
	DsprType string `cty:"dspr_type" validate:"oneof=power degrees"`
}

// NewShapespec uses peak period and power spreading.
func NewShapespec(shape Shape) Shapespec {
	return Shapespec{Shape: shape, PerType: "peak", DsprType: "power"}
}

func (s Shapespec) Validate() error {
	c := schema.NewCheck("shapespec").Struct(s)
	if s.Shape == nil {
		return c.Require("shape", false).Err()
	}
	return c.Child("shape", s.Shape.Validate()).Err()
}

func (s Shapespec) Cmd() string {
	var shape string
	if s.Shape != nil {
		shape = s.Shape.Cmd()
	}
	return swanfmt.NewLine("BOUND SHAPESPEC", shape,
		swanfmt.Keyword(s.PerType),
		"DSPR", swanfmt.Keyword(s.DsprType),
	).Text()
}

func (s Shapespec) Render() string { return render(s) }

// DecodeShapespec reads {shape, per_type, dspr_type}; shape defaults to
// jonswap.
func DecodeShapespec(v cty.Value) (Shapespec, error) {
	s := NewShapespec(Jonswap{Gamma: DefaultGamma})
	rest, err := schema.DecodeObject("shapespec", v, &s, "shape")
	if err != nil {
		return Shapespec{}, err
	}
	shape, ok, err := schema.DecodeField("shapespec", "shape", rest, Shapes.Decode)
	if err != nil {
		return Shapespec{}, err
	}
	if ok {
		s.Shape = shape
	}
	return schema.Build(s)
}

// decodeAs decodes a closed variant over defaults.
func decodeAs[T any, V schema.Validator](component string, defaults V) schema.Decoder[T] {
	return geometry[T](component, defaults, nil)
}
