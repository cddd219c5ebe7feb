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

// Reserved location names that always exist.
const (
	Compgrid = "COMPGRID"
	Bottgrid = "BOTTGRID"
)

// Time key suffixes of the write commands.
const (
	BlockSuffix   = "blk"
	TableSuffix   = "tbl"
	SpecoutSuffix = "spc"
	NestoutSuffix = "nst"
)

// OutputLocation is a named set of output points.
type OutputLocation interface {
	Component
	Name() string
	outputLocation()
}

// Frame is a regular output grid.
type Frame struct {
	Sname  string  `cty:"sname,required" validate:"required,max=8"`
	Xpfr   float64 `cty:"xpfr"`
	Ypfr   float64 `cty:"ypfr"`
	Alpfr  float64 `cty:"alpfr"`
	Xlenfr float64 `cty:"xlenfr,required" validate:"gt=0"`
	Ylenfr float64 `cty:"ylenfr,required" validate:"gt=0"`
	Mxfr   int     `cty:"mxfr,required" validate:"gt=0"`
	Myfr   int     `cty:"myfr,required" validate:"gt=0"`
}

func (Frame) outputLocation()   {}
func (f Frame) Name() string    { return f.Sname }
func (f Frame) Validate() error { return schema.Struct("frame", f) }
func (f Frame) Render() string  { return render(f) }
func (f Frame) Cmd() []string {
	return line(swanfmt.NewLine("FRAME", swanfmt.Quote(f.Sname),
		swanfmt.FloatKV("xpfr", f.Xpfr),
		swanfmt.FloatKV("ypfr", f.Ypfr),
		swanfmt.FloatKV("alpfr", f.Alpfr),
		swanfmt.FloatKV("xlenfr", f.Xlenfr),
		swanfmt.FloatKV("ylenfr", f.Ylenfr),
		swanfmt.IntKV("mxfr", f.Mxfr),
		swanfmt.IntKV("myfr", f.Myfr),
	).Text())
}

// Group is a subgrid of the computational grid, by index.
type Group struct {
	Sname string `cty:"sname,required" validate:"required,max=8"`
	Ix1   int    `cty:"ix1,required" validate:"gte=0"`
	Ix2   int    `cty:"ix2,required" validate:"gte=0"`
	Iy1   int    `cty:"iy1,required" validate:"gte=0"`
	Iy2   int    `cty:"iy2,required" validate:"gte=0"`
}

func (Group) outputLocation() {}
func (g Group) Name() string  { return g.Sname }

func (g Group) Validate() error {
	c := check("group", g)
	if g.Ix1 > g.Ix2 {
		c.Fieldf("ix2", "must be greater than or equal to ix1 (%d), got %d", g.Ix1, g.Ix2)
	}
	if g.Iy1 > g.Iy2 {
		c.Fieldf("iy2", "must be greater than or equal to iy1 (%d), got %d", g.Iy1, g.Iy2)
	}
	return c.Err()
}

func (g Group) Render() string { return render(g) }
func (g Group) Cmd() []string {
	return line(swanfmt.NewLine("GROUP", swanfmt.Quote(g.Sname), "SUBGRID",
		swanfmt.IntKV("ix1", g.Ix1),
		swanfmt.IntKV("ix2", g.Ix2),
		swanfmt.IntKV("iy1", g.Iy1),
		swanfmt.IntKV("iy2", g.Iy2),
	).Text())
}

// Curve is a polyline starting at (Xp1, Yp1). Segment i ends at (Xp[i],
// Yp[i]) and is divided into Nint[i] intervals.
type Curve struct {
	Sname string    `cty:"sname,required" validate:"required,max=8"`
	Xp1   float64   `cty:"xp1,required"`
	Yp1   float64   `cty:"yp1,required"`
	Nint  []int     `cty:"nint,required" validate:"min=1,dive,gt=0"`
	Xp    []float64 `cty:"xp,required" validate:"min=1"`
	Yp    []float64 `cty:"yp,required" validate:"min=1"`
}

func (Curve) outputLocation() {}
func (c Curve) Name() string  { return c.Sname }

func (c Curve) Validate() error {
	return check("curve", c).SameLen("nint", len(c.Nint), map[string]int{"xp": len(c.Xp), "yp": len(c.Yp)}).Err()
}

func (c Curve) Render() string { return render(c) }
func (c Curve) Cmd() []string {
	l := swanfmt.NewLine("CURVE", swanfmt.Quote(c.Sname), swanfmt.FloatKV("xp1", c.Xp1), swanfmt.FloatKV("yp1", c.Yp1))
	for i := range min(len(c.Nint), len(c.Xp), len(c.Yp)) {
		l.Break().Add(swanfmt.IntKV("int", c.Nint[i]), swanfmt.FloatKV("xp", c.Xp[i]), swanfmt.FloatKV("yp", c.Yp[i]))
	}
	return line(l.Text())
}

// Points is a list of output points.
type Points struct {
	Sname string    `cty:"sname,required" validate:"required,max=8"`
	Xp    []float64 `cty:"xp,required" validate:"min=1"`
	Yp    []float64 `cty:"yp,required" validate:"min=1"`
}

func (Points) outputLocation() {}
func (p Points) Name() string  { return p.Sname }

func (p Points) Validate() error {
	return check("points", p).SameLen("xp", len(p.Xp), map[string]int{"yp": len(p.Yp)}).Err()
}

func (p Points) Render() string { return render(p) }
func (p Points) Cmd() []string {
	l := swanfmt.NewLine("POINTS", swanfmt.Quote(p.Sname))
	for i := range min(len(p.Xp), len(p.Yp)) {
		l.Break().Add(swanfmt.Float(p.Xp[i]), swanfmt.Float(p.Yp[i]))
	}
	return line(l.Text())
}

// PointsFile reads output points from a file.
type PointsFile struct {
	Sname string `cty:"sname,required" validate:"required,max=8"`
	Fname string `cty:"fname,required" validate:"required"`
}

func (PointsFile) outputLocation()   {}
func (p PointsFile) Name() string    { return p.Sname }
func (p PointsFile) Validate() error { return schema.Struct("pointsfile", p) }
func (p PointsFile) Render() string  { return render(p) }
func (p PointsFile) Cmd() []string {
	return line(swanfmt.NewLine("POINTS", swanfmt.Quote(p.Sname), "FILE", swanfmt.StringKV("fname", p.Fname)).Text())
}

// Quantity sets the output properties of one or more quantities.
type Quantity struct {
	Output []string `cty:"output,required" validate:"min=1"`
	Short  string   `cty:"short" validate:"max=16"`
	Long   string   `cty:"long" validate:"max=16"`
	Lexp   *float64 `cty:"lexp"`
	Hexp   *float64 `cty:"hexp"`
	Excv   *float64 `cty:"excv"`
	Power  *float64 `cty:"power"`
	Ref    string   `cty:"ref"`
	Fswell *float64 `cty:"fswell" validate:"omitempty,gt=0"`
	Fmin   *float64 `cty:"fmin" validate:"omitempty,gt=0"`
	Fmax   *float64 `cty:"fmax" validate:"omitempty,gt=0"`
	Coord  string   `cty:"coord" validate:"omitempty,oneof=frame user"`
}

func (q Quantity) Validate() error {
	c := check("quantity", q)
	subcomponent.CheckOutputQuantities(c, "output", q.Output)
	return c.Err()
}

func (q Quantity) Render() string { return render(q) }
func (q Quantity) Cmd() []string {
	return line(swanfmt.NewLine("QUANTITY").
		Add(subcomponent.OutputTokens(q.Output)...).
		Quoted("short", q.Short).
		Quoted("long", q.Long).
		Float("lexp", q.Lexp).
		Float("hexp", q.Hexp).
		Float("excv", q.Excv).
		Float("power", q.Power).
		Quoted("ref", q.Ref).
		Float("fswell", q.Fswell).
		Float("fmin", q.Fmin).
		Float("fmax", q.Fmax).
		Add(swanfmt.Keyword(q.Coord)).
		Text())
}

// OutputOptions sets the layout of table, block and spectral output.
type OutputOptions struct {
	Comment   string `cty:"comment" validate:"len=1"`
	Field     int    `cty:"field" validate:"gte=1,lte=99"`
	NdecBlock int    `cty:"ndec_block" validate:"gte=1,lte=9"`
	Len       int    `cty:"len" validate:"gte=1,lte=9999"`
	NdecSpec  int    `cty:"ndec_spec" validate:"gte=1,lte=9"`
}

// DefaultOutputOptions are the solver defaults.
func DefaultOutputOptions() OutputOptions {
	return OutputOptions{Comment: "$", Field: 12, NdecBlock: 5, Len: 6, NdecSpec: 8}
}

func (o OutputOptions) Validate() error { return schema.Struct("output_options", o) }
func (o OutputOptions) Render() string  { return render(o) }
func (o OutputOptions) Cmd() []string {
	return line(swanfmt.NewLine("OUTPUT OPTIONS", swanfmt.StringKV("comment", o.Comment),
		"TABLE", swanfmt.IntKV("field", o.Field),
		"BLOCK", swanfmt.IntKV("ndec", o.NdecBlock), swanfmt.IntKV("len", o.Len),
		"SPEC", swanfmt.IntKV("ndec", o.NdecSpec),
	).Text())
}

// outputTimes renders the OUTPUT time selector of a write command.
func outputTimes(l *swanfmt.Line, times *subcomponent.TimeRangeOpen) *swanfmt.Line {
	if times != nil {
		l.Add("OUTPUT", times.Cmd())
	}
	return l
}

func checkTimes(c *schema.Check, times *subcomponent.TimeRangeOpen) {
	if times != nil {
		c.Child("times", times.Validate())
	}
}

// Block writes quantities over a frame or the whole grid. Times is only
// used in nonstationary runs.
type Block struct {
	Sname  string                      `cty:"sname,required" validate:"required,max=8"`
	Header bool                        `cty:"header"`
	Fname  string                      `cty:"fname,required" validate:"required"`
	Idla   *int                        `cty:"idla" validate:"omitempty,gte=1,lte=6"`
	Output []string                    `cty:"output,required" validate:"min=1"`
	Unit   *float64                    `cty:"unit"`
	Times  *subcomponent.TimeRangeOpen `cty:"-" validate:"-"`
}

func (b Block) Validate() error {
	c := check("block", b)
	subcomponent.CheckOutputQuantities(c, "output", b.Output)
	checkTimes(c, b.Times)
	return c.Err()
}

func (b Block) Render() string { return render(b) }
func (b Block) Cmd() []string {
	header := "NOHEADER"
	if b.Header {
		header = "HEADER"
	}
	l := swanfmt.NewLine("BLOCK", swanfmt.Quote(b.Sname), header, swanfmt.StringKV("fname", b.Fname))
	if b.Idla != nil {
		l.Add("LAYOUT").Int("idla", b.Idla)
	}
	l.Add(subcomponent.OutputTokens(b.Output)...).Float("unit", b.Unit)
	return line(outputTimes(l, b.Times).Text())
}

// Table writes quantities at the points of a location.
type Table struct {
	Sname  string                      `cty:"sname,required" validate:"required,max=8"`
	Format string                      `cty:"format" validate:"oneof=header noheader indexed"`
	Fname  string                      `cty:"fname,required" validate:"required"`
	Output []string                    `cty:"output,required" validate:"min=1"`
	Times  *subcomponent.TimeRangeOpen `cty:"-" validate:"-"`
}

func (t Table) Validate() error {
	c := check("table", t)
	subcomponent.CheckOutputQuantities(c, "output", t.Output)
	checkTimes(c, t.Times)
	return c.Err()
}

func (t Table) Render() string { return render(t) }
func (t Table) Cmd() []string {
	l := swanfmt.NewLine("TABLE", swanfmt.Quote(t.Sname), swanfmt.Keyword(t.Format), swanfmt.StringKV("fname", t.Fname)).
		Add(subcomponent.OutputTokens(t.Output)...)
	return line(outputTimes(l, t.Times).Text())
}

// Specout writes spectra at the points of a location.
type Specout struct {
	Sname string                      `cty:"sname,required" validate:"required,max=8"`
	Dim   string                      `cty:"dim" validate:"oneof=spec1d spec2d"`
	Freq  string                      `cty:"freq" validate:"oneof=abs rel"`
	Fname string                      `cty:"fname,required" validate:"required"`
	Times *subcomponent.TimeRangeOpen `cty:"-" validate:"-"`
}

func (s Specout) Validate() error {
	c := check("specout", s)
	checkTimes(c, s.Times)
	return c.Err()
}

func (s Specout) Render() string { return render(s) }
func (s Specout) Cmd() []string {
	l := swanfmt.NewLine("SPECOUT", swanfmt.Quote(s.Sname), swanfmt.Keyword(s.Dim), swanfmt.Keyword(s.Freq), swanfmt.StringKV("fname", s.Fname))
	return line(outputTimes(l, s.Times).Text())
}

// Nestout writes boundary spectra for a nested run.
type Nestout struct {
	Sname string                      `cty:"sname,required" validate:"required,max=8"`
	Fname string                      `cty:"fname,required" validate:"required"`
	Times *subcomponent.TimeRangeOpen `cty:"-" validate:"-"`
}

func (n Nestout) Validate() error {
	c := check("nestout", n)
	checkTimes(c, n.Times)
	return c.Err()
}

func (n Nestout) Render() string { return render(n) }
func (n Nestout) Cmd() []string {
	l := swanfmt.NewLine("NESTOUT", swanfmt.Quote(n.Sname), swanfmt.StringKV("fname", n.Fname))
	return line(outputTimes(l, n.Times).Text())
}

// Output holds the output locations, settings and write commands. Write
// commands may only reference declared locations.
type Output struct {
	Locations []OutputLocation
	Quantity  []Quantity
	Options   *OutputOptions
	Blocks    []Block
	Tables    []Table
	Specouts  []Specout
	Nestouts  []Nestout
}

func (o Output) Validate() error {
	c := schema.NewCheck("output")
	names := make(map[string]bool, len(o.Locations))
	for i, l := range o.Locations {
		c.Child("location"+indexed(i), l.Validate())
		switch name := l.Name(); {
		case name == Compgrid || name == Bottgrid:
			c.Fieldf("location"+indexed(i)+".sname", "%q is reserved", name)
		case names[name]:
			c.Fieldf("location"+indexed(i)+".sname", "duplicate location %q", name)
		default:
			names[name] = true
		}
	}
	for i, q := range o.Quantity {
		c.Child("quantity"+indexed(i), q.Validate())
	}
	if o.Options != nil {
		c.Child("output_options", o.Options.Validate())
	}

	ref := func(field string, i int, sname string, grids bool) {
		if names[sname] || (grids && (sname == Compgrid || sname == Bottgrid)) {
			return
		}
		c.Fieldf(field+indexed(i)+".sname", "references undeclared location %q", sname)
	}
	for i, b := range o.Blocks {
		c.Child("block"+indexed(i), b.Validate())
		ref("block", i, b.Sname, true)
	}
	for i, t := range o.Tables {
		c.Child("table"+indexed(i), t.Validate())
		ref("table", i, t.Sname, false)
	}
	for i, s := range o.Specouts {
		c.Child("specout"+indexed(i), s.Validate())
		ref("specout", i, s.Sname, false)
	}
	for i, n := range o.Nestouts {
		c.Child("nestout"+indexed(i), n.Validate())
		ref("nestout", i, n.Sname, false)
	}
	return c.Err()
}

func (o Output) Render() string { return render(o) }

func (o Output) Cmd() []string {
	var out []string
	for _, l := range o.Locations {
		out = append(out, l.Cmd()...)
	}
	for _, q := range o.Quantity {
		out = append(out, q.Cmd()...)
	}
	if o.Options != nil {
		out = append(out, o.Options.Cmd()...)
	}
	for _, b := range o.Blocks {
		out = append(out, b.Cmd()...)
	}
	for _, t := range o.Tables {
		out = append(out, t.Cmd()...)
	}
	for _, s := range o.Specouts {
		out = append(out, s.Cmd()...)
	}
	for _, n := range o.Nestouts {
		out = append(out, n.Cmd()...)
	}
	return out
}

// Locations declared through the output group, in render order.
var outputLocationKeys = []string{"frame", "group", "curve", "points", "pointsfile"}

var outputLocationDecoders = map[string]schema.Decoder[OutputLocation]{
	"frame":      decodeAs[OutputLocation]("frame", Frame{}),
	"group":      decodeAs[OutputLocation]("group", Group{}),
	"curve":      decodeAs[OutputLocation]("curve", Curve{}),
	"points":     decodeAs[OutputLocation]("points", Points{}),
	"pointsfile": decodeAs[OutputLocation]("pointsfile", PointsFile{}),
}

// decodeWrite reads a write command whose optional times carry suffix.
func decodeWrite[T schema.Validator](component, suffix string, defaults T, setTimes func(*T, *subcomponent.TimeRangeOpen)) schema.Decoder[T] {
	return func(v cty.Value) (T, error) {
		var zero T
		out := defaults
		rest, err := schema.DecodeObject(component, v, &out, "times")
		if err != nil {
			return zero, err
		}
		r, ok, err := schema.DecodeField(component, "times", rest, subcomponent.DecodeTimeRangeOpen(suffix))
		if err != nil {
			return zero, err
		}
		if ok {
			setTimes(&out, &r)
		}
		return schema.Build(out)
	}
}

var (
	decodeBlock = decodeWrite("block", BlockSuffix, Block{Header: true},
		func(b *Block, r *subcomponent.TimeRangeOpen) { b.Times = r })
	decodeTable = decodeWrite("table", TableSuffix, Table{Format: "header"},
		func(t *Table, r *subcomponent.TimeRangeOpen) { t.Times = r })
	decodeSpecout = decodeWrite("specout", SpecoutSuffix, Specout{Dim: "spec2d", Freq: "abs"},
		func(s *Specout, r *subcomponent.TimeRangeOpen) { s.Times = r })
	decodeNestout = decodeWrite("nestout", NestoutSuffix, Nestout{},
		func(n *Nestout, r *subcomponent.TimeRangeOpen) { n.Times = r })
)

// DecodeOutput reads the output group. Every key may hold one block or a
// list of them.
func DecodeOutput(v cty.Value) (Output, error) {
	keys := append(slices.Clone(outputLocationKeys), "quantity", "output_options", "block", "table", "specout", "nestout")
	attrs, err := schema.OnlyKeys("output", v, keys...)
	if err != nil {
		return Output{}, err
	}

	var o Output
	c := schema.NewCheck("output")
	for _, key := range outputLocationKeys {
		if av, ok := attrs[key]; ok {
			locs, err := schema.DecodeList("output", key, av, outputLocationDecoders[key])
			c.Add(err)
			o.Locations = append(o.Locations, locs...)
		}
	}
	o.Quantity = decodeOutputList(c, attrs, "quantity", func(v cty.Value) (Quantity, error) {
		return schema.Decode("quantity", v, Quantity{})
	})
	if opts, ok, err := schema.DecodeField("output", "output_options", attrs, decodeValue("output_options", DefaultOutputOptions())); ok {
		c.Add(err)
		o.Options = opts
	}
	o.Blocks = decodeOutputList(c, attrs, "block", decodeBlock)
	o.Tables = decodeOutputList(c, attrs, "table", decodeTable)
	o.Specouts = decodeOutputList(c, attrs, "specout", decodeSpecout)
	o.Nestouts = decodeOutputList(c, attrs, "nestout", decodeNestout)
	if err := c.Err(); err != nil {
		return Output{}, err
	}
	return New(o)
}

func decodeOutputList[T any](c *schema.Check, attrs map[string]cty.Value, key string, dec schema.Decoder[T]) []T {
	av, ok := attrs[key]
	if !ok {
		return nil
	}
	out, err := schema.DecodeList("output", key, av, dec)
	c.Add(err)
	return out
}
