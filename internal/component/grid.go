// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package component

import (
	"slices"

	"github.com/specialistvlad/swangridgo/internal/schema"
	"github.com/specialistvlad/swangridgo/internal/subcomponent"
	"github.com/specialistvlad/swangridgo/internal/swanfmt"
	"github.com/zclconf/go-cty/cty"
)

// Cgrid is the computational grid: its geometry and spectral resolution.
// Curvilinear and unstructured grids emit a second command that reads the
// grid from file.
type Cgrid struct {
	Geometry subcomponent.CgridGeometry
	Spectrum subcomponent.Spectrum
}

func (g Cgrid) Validate() error {
	c := schema.NewCheck("cgrid")
	if g.Geometry == nil {
		c.Fieldf(schema.DiscriminatorKey, "missing required field")
	} else {
		c.Add(g.Geometry.Validate())
	}
	return c.Child("spectrum", g.Spectrum.Validate()).Err()
}

func (g Cgrid) Render() string { return render(g) }

func (g Cgrid) Cmd() []string {
	if g.Geometry == nil {
		return nil
	}
	out := []string{swanfmt.NewLine("CGRID", g.Geometry.Cmd()).Break().Add(g.Spectrum.Cmd()).Text()}
	if rg := g.Geometry.Readgrid(); rg != "" {
		out = append(out, rg)
	}
	return out
}

// DecodeCgrid reads a computational grid; model_type picks the geometry.
func DecodeCgrid(v cty.Value) (Cgrid, error) {
	geom, err := subcomponent.CgridGeometries("spectrum").Decode(v)
	if err != nil {
		return Cgrid{}, err
	}
	attrs, err := schema.Attributes("cgrid", v)
	if err != nil {
		return Cgrid{}, err
	}
	spec, ok, err := schema.DecodeField("cgrid", "spectrum", attrs, subcomponent.Spectra.Decode)
	if err != nil {
		return Cgrid{}, err
	}
	if !ok {
		return Cgrid{}, schema.Errorf("cgrid", "spectrum", "missing required field")
	}
	return New(Cgrid{Geometry: geom, Spectrum: spec})
}

// Inpgrid is one input grid and the command that reads its values.
type Inpgrid struct {
	Geometry      subcomponent.InpGeometry
	GridType      string
	Excval        *float64
	Nonstationary *subcomponent.TimeRangeClosed
	Readinp       subcomponent.ReadInp
}

// Inpgrid time keys end in this suffix, e.g. tbeginp.
const inpgridSuffix = "inp"

func (g Inpgrid) Validate() error {
	c := schema.NewCheck("inpgrid")
	if !slices.Contains(subcomponent.InputQuantities, g.GridType) {
		c.Fieldf("grid_type", "must be one of %v, got %q", subcomponent.InputQuantities, g.GridType)
	}
	if g.Geometry == nil {
		c.Fieldf(schema.DiscriminatorKey, "missing required field")
	} else {
		c.Add(g.Geometry.Validate())
	}
	if g.Nonstationary != nil {
		c.Child("nonstationary", g.Nonstationary.Validate())
	}
	if g.Readinp.Quantity != g.GridType {
		c.Fieldf("readinp", "reads %q, expected %q", g.Readinp.Quantity, g.GridType)
	}
	return c.Child("readinp", g.Readinp.Validate()).Err()
}

func (g Inpgrid) Render() string { return render(g) }

func (g Inpgrid) Cmd() []string {
	if g.Geometry == nil {
		return nil
	}
	l := swanfmt.NewLine("INPGRID", swanfmt.Keyword(g.GridType), g.Geometry.Cmd())
	if g.Excval != nil {
		l.Add("EXCEPTION").Float("excval", g.Excval)
	}
	if g.Nonstationary != nil {
		l.Break().Add("NONSTATIONARY", g.Nonstationary.Cmd())
	}
	return []string{l.Text(), g.Readinp.Cmd()}
}

// inpgridKeys are the input grid's own keys; everything else belongs to
// its geometry.
var inpgridKeys = []string{"grid_type", "excval", "nonstationary", "readinp"}

var inpGeometryKeys = []string{"xpinp", "ypinp", "alpinp", "mxinp", "myinp", "dxinp", "dyinp", "stagrid_fac"}

// DecodeInpgrid reads one input grid. Its geometry is inferred from the
// fields present when model_type is absent.
func DecodeInpgrid(v cty.Value) (Inpgrid, error) {
	var own struct {
		GridType string   `cty:"grid_type,required"`
		Excval   *float64 `cty:"excval"`
	}
	rest, err := schema.DecodeObject("inpgrid", v, &own, append(slices.Clone(inpGeometryKeys), schema.DiscriminatorKey, "nonstationary", "readinp")...)
	if err != nil {
		return Inpgrid{}, err
	}

	geom, err := subcomponent.InpGeometries(inpgridKeys...).Decode(v)
	if err != nil {
		return Inpgrid{}, err
	}

	g := Inpgrid{Geometry: geom, GridType: own.GridType, Excval: own.Excval}
	c := schema.NewCheck("inpgrid")
	if r, ok, err := schema.DecodeField("inpgrid", "nonstationary", rest, subcomponent.DecodeTimeRangeClosed(inpgridSuffix)); ok {
		c.Add(err)
		g.Nonstationary = &r
	}
	r, ok, err := schema.DecodeField("inpgrid", "readinp", rest, subcomponent.DecodeReadInp(own.GridType))
	c.Require("readinp", ok).Add(err)
	g.Readinp = r
	if err := c.Err(); err != nil {
		return Inpgrid{}, err
	}
	return New(g)
}

// Inpgrids is the ordered list of input grids. Each quantity may be given
// once.
type Inpgrids struct {
	Grids []Inpgrid
}

func (gs Inpgrids) Validate() error {
	c := schema.NewCheck("inpgrid")
	seen := make(map[string]int, len(gs.Grids))
	for i, g := range gs.Grids {
		c.Child(indexed(i), g.Validate())
		if prev, dup := seen[g.GridType]; dup {
			c.Fieldf(indexed(i)+".grid_type", "duplicate grid_type %q, already used by [%d]", g.GridType, prev)
			continue
		}
		seen[g.GridType] = i
	}
	return c.Err()
}

func (gs Inpgrids) Render() string { return render(gs) }

func (gs Inpgrids) Cmd() []string {
	var out []string
	for _, g := range gs.Grids {
		out = append(out, g.Cmd()...)
	}
	return out
}

// Grid returns the input grid for quantity, if any.
func (gs Inpgrids) Grid(quantity string) (Inpgrid, bool) {
	for _, g := range gs.Grids {
		if g.GridType == quantity {
			return g, true
		}
	}
	return Inpgrid{}, false
}

// DecodeInpgrids reads one input grid or a list of them.
func DecodeInpgrids(v cty.Value) (Inpgrids, error) {
	grids, err := schema.DecodeList("inpgrid", "", v, DecodeInpgrid)
	if err != nil {
		return Inpgrids{}, err
	}
	return New(Inpgrids{Grids: grids})
}

// Wind is a uniform wind.
type Wind struct {
	Vel float64 `cty:"vel,required" validate:"gte=0"`
	Dir float64 `cty:"dir,required" validate:"gte=-360,lte=360"`
}

func (w Wind) Validate() error { return schema.Struct("wind", w) }
func (w Wind) Render() string  { return render(w) }
func (w Wind) Cmd() []string {
	return line(swanfmt.NewLine("WIND", swanfmt.FloatKV("vel", w.Vel), swanfmt.FloatKV("dir", w.Dir)).Text())
}

// DecodeWind reads {vel, dir}.
func DecodeWind(v cty.Value) (Wind, error) {
	return schema.Decode("wind", v, Wind{})
}
