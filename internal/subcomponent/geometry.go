// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package subcomponent

import (
	"github.com/specialistvlad/swangridgo/internal/schema"
	"github.com/specialistvlad/swangridgo/internal/swanfmt"
	"github.com/zclconf/go-cty/cty"
)

// CgridGeometry is the layout of the computational grid.
type CgridGeometry interface {
	Renderer
	Validate() error
	// Readgrid is the command that reads the grid from file, or "" when the
	// grid is fully described inline.
	Readgrid() string
	cgridGeometry()
}

// CgridRegular is a rectangular grid.
type CgridRegular struct {
	Xpc   float64 `cty:"xpc"`
	Ypc   float64 `cty:"ypc"`
	Alpc  float64 `cty:"alpc" validate:"gte=-360,lte=360"`
	Xlenc float64 `cty:"xlenc,required" validate:"gt=0"`
	Ylenc float64 `cty:"ylenc,required" validate:"gte=0"`
	Mxc   int     `cty:"mxc,required" validate:"gt=0"`
	Myc   int     `cty:"myc,required" validate:"gte=0"`
}

func (CgridRegular) cgridGeometry() {}

func (g CgridRegular) Validate() error { return schema.Struct("cgrid", g) }

func (g CgridRegular) Cmd() string {
	return swanfmt.NewLine("REGULAR",
		swanfmt.FloatKV("xpc", g.Xpc),
		swanfmt.FloatKV("ypc", g.Ypc),
		swanfmt.FloatKV("alpc", g.Alpc),
		swanfmt.FloatKV("xlenc", g.Xlenc),
		swanfmt.FloatKV("ylenc", g.Ylenc),
		swanfmt.IntKV("mxc", g.Mxc),
		swanfmt.IntKV("myc", g.Myc),
	).Text()
}

func (g CgridRegular) Render() string   { return render(g) }
func (g CgridRegular) Readgrid() string { return "" }

// CgridCurvilinear is a grid whose coordinates are read from file.
type CgridCurvilinear struct {
	Mxc       int       `cty:"mxc,required" validate:"gt=0"`
	Myc       int       `cty:"myc,required" validate:"gt=0"`
	Xexc      *float64  `cty:"xexc"`
	Yexc      *float64  `cty:"yexc"`
	Readcoord ReadCoord `cty:"readcoord,required" validate:"-"`
}

func (CgridCurvilinear) cgridGeometry() {}

func (g CgridCurvilinear) Validate() error {
	return schema.NewCheck("cgrid").
		Struct(g).
		Paired("xexc", g.Xexc != nil, "yexc", g.Yexc != nil).
		Child("readcoord", g.Readcoord.Validate()).
		Err()
}

func (g CgridCurvilinear) Cmd() string {
	l := swanfmt.NewLine("CURVILINEAR", swanfmt.IntKV("mxc", g.Mxc), swanfmt.IntKV("myc", g.Myc))
	if g.Xexc != nil && g.Yexc != nil {
		l.Add("EXCEPTION").Float("xexc", g.Xexc).Float("yexc", g.Yexc)
	}
	return l.Text()
}

func (g CgridCurvilinear) Render() string   { return render(g) }
func (g CgridCurvilinear) Readgrid() string { return g.Readcoord.Cmd() }

// Unstructured mesh formats.
const (
	MeshAdcirc   = "adcirc"
	MeshTriangle = "triangle"
	MeshEasymesh = "easymesh"
)

// CgridUnstructured is a triangular mesh. ADCIRC meshes are read from the
// fixed fort.14 file; the other formats name their file.
type CgridUnstructured struct {
	Format string `cty:"format" validate:"oneof=adcirc triangle easymesh"`
	Fname  string `cty:"fname" validate:"max=80"`
}

func (CgridUnstructured) cgridGeometry() {}

func (g CgridUnstructured) Validate() error {
	c := schema.NewCheck("cgrid").Struct(g)
	if g.Format == MeshAdcirc {
		c.Forbid("fname", g.Fname != "", "for adcirc meshes")
	} else {
		c.Require("fname", g.Fname != "")
	}
	return c.Err()
}

func (g CgridUnstructured) Cmd() string { return "UNSTRUCTURED" }

func (g CgridUnstructured) Render() string { return render(g) }

func (g CgridUnstructured) Readgrid() string {
	return swanfmt.NewLine("READGRID UNSTRUCTURED", swanfmt.Keyword(g.Format)).
		Quoted("fname", g.Fname).
		Text()
}

// InpGeometry is the layout of an input grid.
type InpGeometry interface {
	Renderer
	Validate() error
	inpGeometry()
}

// InpRegular is a rectangular input grid. Dyinp defaults to Dxinp.
type InpRegular struct {
	Xpinp  float64  `cty:"xpinp"`
	Ypinp  float64  `cty:"ypinp"`
	Alpinp float64  `cty:"alpinp" validate:"gte=-360,lte=360"`
	Mxinp  int      `cty:"mxinp,required" validate:"gt=0"`
	Myinp  int      `cty:"myinp,required" validate:"gte=0"`
	Dxinp  float64  `cty:"dxinp,required" validate:"gt=0"`
	Dyinp  *float64 `cty:"dyinp" validate:"omitempty,gt=0"`
}

func (InpRegular) inpGeometry() {}

func (g InpRegular) Validate() error { return schema.Struct("inpgrid", g) }

func (g InpRegular) Cmd() string {
	dy := g.Dxinp
	if g.Dyinp != nil {
		dy = *g.Dyinp
	}
	return swanfmt.NewLine("REGULAR",
		swanfmt.FloatKV("xpinp", g.Xpinp),
		swanfmt.FloatKV("ypinp", g.Ypinp),
		swanfmt.FloatKV("alpinp", g.Alpinp),
		swanfmt.IntKV("mxinp", g.Mxinp),
		swanfmt.IntKV("myinp", g.Myinp),
		swanfmt.FloatKV("dxinp", g.Dxinp),
		swanfmt.FloatKV("dyinp", dy),
	).Text()
}

func (g InpRegular) Render() string { return render(g) }

// InpCurvilinear is an input grid on the computational grid's
// coordinates.
type InpCurvilinear struct {
	StagridFac *float64 `cty:"stagrid_fac" validate:"omitempty,gt=0"`
	Mxinp      int      `cty:"mxinp,required" validate:"gt=0"`
	Myinp      int      `cty:"myinp,required" validate:"gt=0"`
}

func (InpCurvilinear) inpGeometry() {}

func (g InpCurvilinear) Validate() error { return schema.Struct("inpgrid", g) }

func (g InpCurvilinear) Cmd() string {
	return swanfmt.NewLine("CURVILINEAR").
		Float("stagrid_fac", g.StagridFac).
		Add(swanfmt.IntKV("mxinp", g.Mxinp), swanfmt.IntKV("myinp", g.Myinp)).
		Text()
}

func (g InpCurvilinear) Render() string { return render(g) }

// InpUnstructured is an input grid on the computational mesh.
type InpUnstructured struct{}

func (InpUnstructured) inpGeometry() {}

func (InpUnstructured) Validate() error { return nil }

func (InpUnstructured) Cmd() string { return "UNSTRUCTURED" }

func (g InpUnstructured) Render() string { return render(g) }

// InpGeometries decodes the geometry of an input grid. Without model_type
// the fields present select it: xpinp or dxinp mean regular, mxinp means
// curvilinear, anything else unstructured.
//
// Only geometry fields are decoded here; callers pass the input grid's
// own keys as nested.
func InpGeometries(nested ...string) schema.Variants[InpGeometry] {
	return schema.Variants[InpGeometry]{
		Set:     "inpgrid",
		Default: "unstructured",
		Infer: func(attrs map[string]cty.Value) string {
			switch {
			case schema.Has(attrs, "xpinp", "dxinp"):
				return "regular"
			case schema.Has(attrs, "mxinp"):
				return "curvilinear"
			}
			return ""
		},
		Decoders: map[string]schema.Decoder[InpGeometry]{
			"regular":      geometry[InpGeometry]("inpgrid", InpRegular{}, nested),
			"curvilinear":  geometry[InpGeometry]("inpgrid", InpCurvilinear{}, nested),
			"unstructured": geometry[InpGeometry]("inpgrid", InpUnstructured{}, nested),
		},
		Abstract: []string{"base"},
	}
}

// CgridGeometries decodes the geometry of the computational grid; the
// spectrum stays with the caller.
func CgridGeometries(nested ...string) schema.Variants[CgridGeometry] {
	return schema.Variants[CgridGeometry]{
		Set: "cgrid",
		Decoders: map[string]schema.Decoder[CgridGeometry]{
			"regular":      geometry[CgridGeometry]("cgrid", CgridRegular{}, nested),
			"curvilinear":  geometry[CgridGeometry]("cgrid", CgridCurvilinear{Readcoord: NewReadCoord("")}, nested),
			"unstructured": geometry[CgridGeometry]("cgrid", CgridUnstructured{Format: MeshAdcirc}, nested),
		},
		Abstract: []string{"base"},
	}
}

// geometry decodes a geometry over defaults, leaving nested keys alone.
func geometry[T any, V schema.Validator](component string, defaults V, nested []string) schema.Decoder[T] {
	return func(v cty.Value) (T, error) {
		var zero T
		out := defaults
		if _, err := schema.DecodeObject(component, v, &out, nested...); err != nil {
			return zero, err
		}
		if err := out.Validate(); err != nil {
			return zero, err
		}
		return any(out).(T), nil
	}
}
