// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package subcomponent

import (
	"slices"

	"github.com/specialistvlad/swangridgo/internal/schema"
	"github.com/specialistvlad/swangridgo/internal/swanfmt"
	"github.com/zclconf/go-cty/cty"
)

// File layouts a reader accepts.
const (
	FormatFree        = "free"
	FormatFixed       = "fixed"
	FormatUnformatted = "unformatted"
)

// formatTokens renders the trailing layout of a reader command.
func formatTokens(format, form string) string {
	switch format {
	case FormatFixed:
		return "FORMAT " + swanfmt.StringKV("form", form)
	case FormatUnformatted:
		return "UNFORMATTED"
	}
	return "FREE"
}

func checkFormat(c *schema.Check, format, form string) {
	switch {
	case format == FormatFixed && form == "":
		c.Fieldf("form", "missing required field for fixed format")
	case format != FormatFixed && form != "":
		c.Fieldf("form", "not allowed unless format is fixed")
	}
}

// ReadCoord reads the coordinates of a curvilinear computational grid.
type ReadCoord struct {
	Fac     float64 `cty:"fac" validate:"gt=0"`
	Fname   string  `cty:"fname,required" validate:"required,max=80"`
	Idla    int     `cty:"idla" validate:"gte=1,lte=6"`
	Nhedf   int     `cty:"nhedf" validate:"gte=0"`
	Nhedvec int     `cty:"nhedvec" validate:"gte=0"`
	Format  string  `cty:"format" validate:"oneof=free fixed unformatted"`
	Form    string  `cty:"form"`
}

// NewReadCoord reads fname with the default layout.
func NewReadCoord(fname string) ReadCoord {
	return ReadCoord{Fac: 1, Fname: fname, Idla: 1, Format: FormatFree}
}

func (r ReadCoord) Validate() error {
	c := schema.NewCheck("readcoord").Struct(r)
	checkFormat(c, r.Format, r.Form)
	return c.Err()
}

func (r ReadCoord) Cmd() string {
	return swanfmt.NewLine("READGRID COORDINATES",
		swanfmt.FloatKV("fac", r.Fac),
		swanfmt.StringKV("fname", r.Fname),
		swanfmt.IntKV("idla", r.Idla),
		swanfmt.IntKV("nhedf", r.Nhedf),
		swanfmt.IntKV("nhedvec", r.Nhedvec),
		formatTokens(r.Format, r.Form),
	).Text()
}

func (r ReadCoord) Render() string { return render(r) }

// DecodeReadCoord reads a readcoord block.
func DecodeReadCoord(v cty.Value) (ReadCoord, error) {
	return schema.Decode("readcoord", v, NewReadCoord(""))
}

// Input grid quantities.
const (
	QuantityBottom     = "bottom"
	QuantityWlevel     = "wlevel"
	QuantityCurrent    = "current"
	QuantityVx         = "vx"
	QuantityVy         = "vy"
	QuantityFriction   = "friction"
	QuantityWind       = "wind"
	QuantityWx         = "wx"
	QuantityWy         = "wy"
	QuantityNplants    = "nplants"
	QuantityTurbheight = "turbheight"
	QuantityTurbvisc   = "turbvisc"
	QuantityAice       = "aice"
	QuantityHice       = "hice"
)

// InputQuantities lists every quantity an input grid may carry.
var InputQuantities = []string{
	QuantityBottom, QuantityWlevel, QuantityCurrent, QuantityVx, QuantityVy,
	QuantityFriction, QuantityWind, QuantityWx, QuantityWy, QuantityNplants,
	QuantityTurbheight, QuantityTurbvisc, QuantityAice, QuantityHice,
}

// VectorQuantity reports whether q has two components, read from one or
// two files.
func VectorQuantity(q string) bool {
	return q == QuantityCurrent || q == QuantityWind
}

// ReadInp reads the values of an input grid. Quantity is bound by the
// owning input grid.
type ReadInp struct {
	Quantity string  `cty:"-"`
	Fac      float64 `cty:"fac" validate:"gt=0"`
	Fname1   string  `cty:"fname1,required" validate:"required,max=80"`
	Fname2   string  `cty:"fname2" validate:"max=80"`
	Idla     int     `cty:"idla" validate:"gte=1,lte=6"`
	Nhedf    int     `cty:"nhedf" validate:"gte=0"`
	Nhedt    int     `cty:"nhedt" validate:"gte=0"`
	Nhedvec  int     `cty:"nhedvec" validate:"gte=0"`
	Format   string  `cty:"format" validate:"oneof=free fixed unformatted"`
	Form     string  `cty:"form"`
}

// NewReadInp reads fname1 with the default layout.
func NewReadInp(fname1 string) ReadInp {
	return ReadInp{Fac: 1, Fname1: fname1, Idla: 1, Format: FormatFree}
}

func (r ReadInp) Validate() error {
	c := schema.NewCheck("readinp").Struct(r)
	checkFormat(c, r.Format, r.Form)
	if !slices.Contains(InputQuantities, r.Quantity) {
		c.Fieldf("quantity", "unknown input quantity %q", r.Quantity)
	}
	c.Forbid("fname2", r.Fname2 != "" && !VectorQuantity(r.Quantity), "for scalar quantity "+r.Quantity)
	return c.Err()
}

func (r ReadInp) Cmd() string {
	return swanfmt.NewLine("READINP", swanfmt.Keyword(r.Quantity),
		swanfmt.FloatKV("fac", r.Fac),
		swanfmt.StringKV("fname1", r.Fname1),
	).
		Quoted("fname2", r.Fname2).
		Add(
			swanfmt.IntKV("idla", r.Idla),
			swanfmt.IntKV("nhedf", r.Nhedf),
			swanfmt.IntKV("nhedt", r.Nhedt),
			swanfmt.IntKV("nhedvec", r.Nhedvec),
			formatTokens(r.Format, r.Form),
		).Text()
}

func (r ReadInp) Render() string { return render(r) }

// DecodeReadInp reads a readinp block for quantity.
func DecodeReadInp(quantity string) schema.Decoder[ReadInp] {
	return func(v cty.Value) (ReadInp, error) {
		r := NewReadInp("")
		r.Quantity = quantity
		return schema.Decode("readinp", v, r)
	}
}
