// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package component

import (
	"github.com/specialistvlad/swangridgo/internal/schema"
	"github.com/specialistvlad/swangridgo/internal/subcomponent"
	"github.com/specialistvlad/swangridgo/internal/swanfmt"
	"github.com/zclconf/go-cty/cty"
)

// Prop is the propagation scheme.
type Prop interface {
	Component
	prop()
}

// PropDefault leaves the scheme to the solver.
type PropDefault struct{}

func (PropDefault) prop()            {}
func (PropDefault) Validate() error  { return nil }
func (p PropDefault) Render() string { return render(p) }
func (PropDefault) Cmd() []string    { return line("PROP") }

type PropBsbt struct{}

func (PropBsbt) prop()            {}
func (PropBsbt) Validate() error  { return nil }
func (p PropBsbt) Render() string { return render(p) }
func (PropBsbt) Cmd() []string    { return line("PROP BSBT") }

// PropGse counters the garden-sprinkler effect for swell of the given age.
type PropGse struct {
	Waveage subcomponent.Delt `cty:"waveage,required" validate:"-"`
}

func (PropGse) prop() {}

func (p PropGse) Validate() error {
	return schema.NewCheck("prop").Child("waveage", p.Waveage.Validate()).Err()
}

func (p PropGse) Render() string { return render(p) }
func (p PropGse) Cmd() []string {
	return line("PROP GSE " + swanfmt.KV("waveage", p.Waveage.Cmd()))
}

var Props = schema.Variants[Prop]{
	Set: "prop",
	Decoders: map[string]schema.Decoder[Prop]{
		"default": decodeAs[Prop]("prop", PropDefault{}),
		"bsbt":    decodeAs[Prop]("prop", PropBsbt{}),
		"gse":     decodeAs[Prop]("prop", PropGse{}),
	},
	Abstract: []string{"base"},
}

// Stopc is the convergence criterion. Mode selects which iteration limit
// applies; the other one must not be given.
type Stopc struct {
	Dabs    float64  `cty:"dabs" validate:"gte=0"`
	Drel    float64  `cty:"drel" validate:"gte=0"`
	Curvat  float64  `cty:"curvat" validate:"gte=0"`
	Npnts   float64  `cty:"npnts" validate:"gte=0,lte=100"`
	Mode    string   `cty:"mode" validate:"oneof=stationary nonstationary"`
	Mxitst  *int     `cty:"mxitst" validate:"omitempty,gte=1"`
	Mxitns  *int     `cty:"mxitns" validate:"omitempty,gte=1"`
	Limiter *float64 `cty:"limiter" validate:"omitempty,gte=0"`
}

const (
	defaultMxitst = 50
	defaultMxitns = 1
)

// DefaultStopc is the solver's stationary criterion.
func DefaultStopc() Stopc {
	return Stopc{Dabs: 0.005, Drel: 0.01, Curvat: 0.005, Npnts: 99.5, Mode: "stationary"}
}

func (s Stopc) Validate() error {
	return check("stopc", s).
		Forbid("mxitns", s.Mode == "stationary" && s.Mxitns != nil, "in stationary mode").
		Forbid("mxitst", s.Mode == "nonstationary" && s.Mxitst != nil, "in nonstationary mode").
		Err()
}

func (s Stopc) Cmd() string {
	l := swanfmt.NewLine("STOPC",
		swanfmt.FloatKV("dabs", s.Dabs),
		swanfmt.FloatKV("drel", s.Drel),
		swanfmt.FloatKV("curvat", s.Curvat),
		swanfmt.FloatKV("npnts", s.Npnts),
		swanfmt.Keyword(s.Mode),
	)
	if s.Mode == "nonstationary" {
		l.Add(swanfmt.IntKV("mxitns", orDefault(s.Mxitns, defaultMxitns)))
	} else {
		l.Add(swanfmt.IntKV("mxitst", orDefault(s.Mxitst, defaultMxitst)))
	}
	return l.Float("limiter", s.Limiter).Text()
}

// Numeric sets the iteration stopping criterion.
type Numeric struct {
	Stopc Stopc
}

func (n Numeric) Validate() error { return schema.NewCheck("numeric").Child("stopc", n.Stopc.Validate()).Err() }
func (n Numeric) Render() string  { return render(n) }
func (n Numeric) Cmd() []string   { return line("NUMERIC " + n.Stopc.Cmd()) }

// DecodeNumeric reads {stopc}.
func DecodeNumeric(v cty.Value) (*Numeric, error) {
	attrs, err := schema.OnlyKeys("numeric", v, "stopc")
	if err != nil {
		return nil, err
	}
	n := Numeric{Stopc: DefaultStopc()}
	s, ok, err := schema.DecodeField("numeric", "stopc", attrs, func(v cty.Value) (Stopc, error) {
		return schema.Decode("stopc", v, DefaultStopc())
	})
	if err != nil {
		return nil, err
	}
	if ok {
		n.Stopc = s
	}
	return &n, nil
}

// Numerics holds the propagation scheme and the solver settings.
type Numerics struct {
	Prop    Prop
	Numeric *Numeric
}

func (n Numerics) Validate() error {
	c := schema.NewCheck("numerics")
	if n.Prop != nil {
		c.Add(n.Prop.Validate())
	}
	if n.Numeric != nil {
		c.Add(n.Numeric.Validate())
	}
	return c.Err()
}

func (n Numerics) Render() string { return render(n) }

func (n Numerics) Cmd() []string {
	var out []string
	if n.Prop != nil {
		out = append(out, n.Prop.Cmd()...)
	}
	if n.Numeric != nil {
		out = append(out, n.Numeric.Cmd()...)
	}
	return out
}

// DecodeNumerics reads {prop, numeric}.
func DecodeNumerics(v cty.Value) (Numerics, error) {
	attrs, err := schema.OnlyKeys("numerics", v, "prop", "numeric")
	if err != nil {
		return Numerics{}, err
	}
	var n Numerics
	c := schema.NewCheck("numerics")
	if p, ok, err := schema.DecodeField("numerics", "prop", attrs, Props.Decode); ok {
		c.Add(err)
		n.Prop = p
	}
	if m, ok, err := schema.DecodeField("numerics", "numeric", attrs, DecodeNumeric); ok {
		c.Add(err)
		n.Numeric = m
	}
	if err := c.Err(); err != nil {
		return Numerics{}, err
	}
	return New(n)
}

func orDefault[T any](v *T, def T) T {
	if v == nil {
		return def
	}
	return *v
}
