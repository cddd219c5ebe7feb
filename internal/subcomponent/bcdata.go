// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package subcomponent

import (
	"github.com/specialistvlad/swangridgo/internal/schema"
	"github.com/specialistvlad/swangridgo/internal/swanfmt"
)

// BoundaryData is the wave condition imposed along a boundary location.
type BoundaryData interface {
	Renderer
	Validate() error
	boundaryData()
}

// ConstantPar imposes one set of integral parameters along the location.
type ConstantPar struct {
	Hs  float64  `cty:"hs,required" validate:"gt=0"`
	Per float64  `cty:"per,required" validate:"gt=0"`
	Dir float64  `cty:"dir,required" validate:"gte=-360,lte=360"`
	Dd  *float64 `cty:"dd" validate:"omitempty,gte=0"`
}

func (ConstantPar) boundaryData()     {}
func (d ConstantPar) Validate() error { return schema.Struct("data", d) }
func (d ConstantPar) Render() string  { return render(d) }
func (d ConstantPar) Cmd() string {
	return swanfmt.NewLine("CONSTANT PAR",
		swanfmt.FloatKV("hs", d.Hs),
		swanfmt.FloatKV("per", d.Per),
		swanfmt.FloatKV("dir", d.Dir),
	).Float("dd", d.Dd).Text()
}

// VariablePar imposes parameters that vary with distance along the
// location. All lists are parallel to Dist.
type VariablePar struct {
	Dist []float64 `cty:"dist,required" validate:"min=1,dive,gte=0"`
	Hs   []float64 `cty:"hs,required" validate:"dive,gt=0"`
	Per  []float64 `cty:"per,required" validate:"dive,gt=0"`
	Dir  []float64 `cty:"dir,required" validate:"dive,gte=-360,lte=360"`
	Dd   []float64 `cty:"dd,required" validate:"dive,gte=0"`
}

func (VariablePar) boundaryData() {}

func (d VariablePar) Validate() error {
	c := schema.NewCheck("data").
		Struct(d).
		SameLen("dist", len(d.Dist), map[string]int{
			"hs": len(d.Hs), "per": len(d.Per), "dir": len(d.Dir), "dd": len(d.Dd),
		})
	checkNonDecreasing(c, "dist", d.Dist)
	return c.Err()
}

func (d VariablePar) Cmd() string {
	l := swanfmt.NewLine("VARIABLE PAR")
	n := min(len(d.Dist), len(d.Hs), len(d.Per), len(d.Dir), len(d.Dd))
	for i := range n {
		l.Break().Add(
			swanfmt.FloatKV("len", d.Dist[i]),
			swanfmt.FloatKV("hs", d.Hs[i]),
			swanfmt.FloatKV("per", d.Per[i]),
			swanfmt.FloatKV("dir", d.Dir[i]),
			swanfmt.FloatKV("dd", d.Dd[i]),
		)
	}
	return l.Text()
}

func (d VariablePar) Render() string { return render(d) }

// ConstantFile reads one boundary spectrum from file.
type ConstantFile struct {
	Fname string `cty:"fname,required" validate:"required,max=80"`
	Seq   *int   `cty:"seq" validate:"omitempty,gte=1"`
}

func (ConstantFile) boundaryData()     {}
func (d ConstantFile) Validate() error { return schema.Struct("data", d) }
func (d ConstantFile) Render() string  { return render(d) }
func (d ConstantFile) Cmd() string {
	return swanfmt.NewLine("CONSTANT FILE", swanfmt.StringKV("fname", d.Fname)).Int("seq", d.Seq).Text()
}

// VariableFile reads spectra that vary with distance along the location.
// Seq defaults to 1 for every entry.
type VariableFile struct {
	Dist  []float64 `cty:"dist,required" validate:"min=1,dive,gte=0"`
	Fname []string  `cty:"fname,required" validate:"dive,required,max=80"`
	Seq   []int     `cty:"seq" validate:"dive,gte=1"`
}

func (VariableFile) boundaryData() {}

func (d VariableFile) Validate() error {
	lists := map[string]int{"fname": len(d.Fname)}
	if d.Seq != nil {
		lists["seq"] = len(d.Seq)
	}
	c := schema.NewCheck("data").
		Struct(d).
		SameLen("dist", len(d.Dist), lists)
	checkNonDecreasing(c, "dist", d.Dist)
	return c.Err()
}

func (d VariableFile) Cmd() string {
	l := swanfmt.NewLine("VARIABLE FILE")
	for i := range min(len(d.Dist), len(d.Fname)) {
		seq := 1
		if i < len(d.Seq) {
			seq = d.Seq[i]
		}
		l.Break().Add(
			swanfmt.FloatKV("len", d.Dist[i]),
			swanfmt.StringKV("fname", d.Fname[i]),
			swanfmt.IntKV("seq", seq),
		)
	}
	return l.Text()
}

func (d VariableFile) Render() string { return render(d) }

func checkNonDecreasing(c *schema.Check, field string, vs []float64) {
	for i := 1; i < len(vs); i++ {
		if vs[i] < vs[i-1] {
			c.Fieldf(field, "must be non-decreasing, got %s after %s", swanfmt.Float(vs[i]), swanfmt.Float(vs[i-1]))
			return
		}
	}
}

// BoundaryDataSet is the closed set of boundary conditions.
var BoundaryDataSet = schema.Variants[BoundaryData]{
	Set: "data",
	Decoders: map[string]schema.Decoder[BoundaryData]{
		"constantpar":  decodeAs[BoundaryData]("data", ConstantPar{}),
		"variablepar":  decodeAs[BoundaryData]("data", VariablePar{}),
		"constantfile": decodeAs[BoundaryData]("data", ConstantFile{}),
		"variablefile": decodeAs[BoundaryData]("data", VariableFile{}),
	},
	Abstract: []string{"base"},
}
