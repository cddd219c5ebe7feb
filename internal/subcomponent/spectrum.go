// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package subcomponent

import (
	"github.com/specialistvlad/swangridgo/internal/schema"
	"github.com/specialistvlad/swangridgo/internal/swanfmt"
	"github.com/zclconf/go-cty/cty"
)

// Spectrum is the spectral resolution shared by every computational grid.
// A full circle is used unless both sector bounds are given.
type Spectrum struct {
	Mdc   int      `cty:"mdc,required" validate:"gt=0"`
	Flow  *float64 `cty:"flow" validate:"omitempty,gt=0"`
	Fhigh *float64 `cty:"fhigh" validate:"omitempty,gt=0"`
	Msc   *int     `cty:"msc" validate:"omitempty,gte=3"`
	Dir1  *float64 `cty:"dir1" validate:"omitempty,gte=-360,lte=360"`
	Dir2  *float64 `cty:"dir2" validate:"omitempty,gte=-360,lte=360"`
}

// Sector reports whether the spectrum covers a directional sector.
func (s Spectrum) Sector() bool {
	return s.Dir1 != nil && s.Dir2 != nil
}

func (s Spectrum) Validate() error {
	c := schema.NewCheck("spectrum").
		Struct(s).
		Paired("dir1", s.Dir1 != nil, "dir2", s.Dir2 != nil)

	given := 0
	for _, set := range []bool{s.Flow != nil, s.Fhigh != nil, s.Msc != nil} {
		if set {
			given++
		}
	}
	if given < 2 {
		c.Fieldf("flow,fhigh,msc", "at least two of flow, fhigh and msc must be given")
	}
	if s.Flow != nil && s.Fhigh != nil && *s.Flow >= *s.Fhigh {
		c.Fieldf("fhigh", "must be greater than flow (%s), got %s", swanfmt.Float(*s.Flow), swanfmt.Float(*s.Fhigh))
	}
	return c.Err()
}

func (s Spectrum) Cmd() string {
	var l *swanfmt.Line
	if s.Sector() {
		l = swanfmt.NewLine("SECTOR").Float("dir1", s.Dir1).Float("dir2", s.Dir2)
	} else {
		l = swanfmt.NewLine("CIRCLE")
	}
	return l.Add(swanfmt.IntKV("mdc", s.Mdc)).
		Float("flow", s.Flow).
		Float("fhigh", s.Fhigh).
		Int("msc", s.Msc).
		Text()
}

func (s Spectrum) Render() string { return render(s) }

// Spectra decodes a spectrum. "circle" forbids the sector bounds and
// "sector" needs both; the bounds select the variant when model_type is
// absent.
var Spectra = schema.Variants[Spectrum]{
	Set:     "spectrum",
	Default: "circle",
	Infer: func(attrs map[string]cty.Value) string {
		if schema.Has(attrs, "dir1", "dir2") {
			return "sector"
		}
		return ""
	},
	Decoders: map[string]schema.Decoder[Spectrum]{
		"circle": func(v cty.Value) (Spectrum, error) {
			var s Spectrum
			if err := schema.DecodeClosed("spectrum", v, &s); err != nil {
				return Spectrum{}, err
			}
			if err := schema.NewCheck("spectrum").
				Forbid("dir1", s.Dir1 != nil, "for a circle spectrum").
				Forbid("dir2", s.Dir2 != nil, "for a circle spectrum").
				Err(); err != nil {
				return Spectrum{}, err
			}
			return schema.Build(s)
		},
		"sector": func(v cty.Value) (Spectrum, error) {
			var s Spectrum
			if err := schema.DecodeClosed("spectrum", v, &s); err != nil {
				return Spectrum{}, err
			}
			if err := schema.NewCheck("spectrum").
				Require("dir1", s.Dir1 != nil).
				Require("dir2", s.Dir2 != nil).
				Err(); err != nil {
				return Spectrum{}, err
			}
			return schema.Build(s)
		},
	},
	Abstract: []string{"base"},
}
