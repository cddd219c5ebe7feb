// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package component

import (
	"slices"

	"github.com/specialistvlad/swangridgo/internal/schema"
	"github.com/specialistvlad/swangridgo/internal/swanfmt"
	"github.com/zclconf/go-cty/cty"
)

// Gen is the generation mode of the wind input and whitecapping terms.
type Gen interface {
	Component
	gen()
}

type Gen1 struct{}

func (Gen1) gen()             {}
func (Gen1) Validate() error  { return nil }
func (g Gen1) Render() string { return render(g) }
func (Gen1) Cmd() []string    { return line("GEN1") }

type Gen2 struct{}

func (Gen2) gen()             {}
func (Gen2) Validate() error  { return nil }
func (g Gen2) Render() string { return render(g) }
func (Gen2) Cmd() []string    { return line("GEN2") }

// Gen3 is third-generation mode. A scales linear growth and needs Agrow.
type Gen3 struct {
	Source string   `cty:"source" validate:"oneof=komen janssen westhuysen st6"`
	Agrow  bool     `cty:"agrow"`
	A      *float64 `cty:"a" validate:"omitempty,gte=0"`
}

func (Gen3) gen() {}

func (g Gen3) Validate() error {
	return check("gen", g).Forbid("a", g.A != nil && !g.Agrow, "without agrow").Err()
}

func (g Gen3) Render() string { return render(g) }

func (g Gen3) Cmd() []string {
	l := swanfmt.NewLine("GEN3", swanfmt.Keyword(g.Source))
	if g.Agrow {
		l.Add("AGROW").Float("a", g.A)
	}
	return line(l.Text())
}

// Gens is the closed set of generation modes.
var Gens = schema.Variants[Gen]{
	Set: "gen",
	Decoders: map[string]schema.Decoder[Gen]{
		"gen1": decodeAs[Gen]("gen", Gen1{}),
		"gen2": decodeAs[Gen]("gen", Gen2{}),
		"gen3": decodeAs[Gen]("gen", Gen3{Source: "westhuysen"}),
	},
	Abstract: []string{"base"},
}

// Sswell is the swell dissipation term.
type Sswell interface {
	Component
	sswell()
}

type SswellRogers struct {
	Cdsv    float64  `cty:"cdsv" validate:"gte=0"`
	Feswell *float64 `cty:"feswell"`
}

func (SswellRogers) sswell()           {}
func (s SswellRogers) Validate() error { return schema.Struct("sswell", s) }
func (s SswellRogers) Render() string  { return render(s) }
func (s SswellRogers) Cmd() []string {
	return line(swanfmt.NewLine("SSWELL ROGERS", swanfmt.FloatKV("cdsv", s.Cdsv)).Float("feswell", s.Feswell).Text())
}

type SswellArdhuin struct {
	Cdsv float64 `cty:"cdsv" validate:"gte=0"`
}

func (SswellArdhuin) sswell()           {}
func (s SswellArdhuin) Validate() error { return schema.Struct("sswell", s) }
func (s SswellArdhuin) Render() string  { return render(s) }
func (s SswellArdhuin) Cmd() []string {
	return line("SSWELL ARDHUIN " + swanfmt.FloatKV("cdsv", s.Cdsv))
}

type SswellZieger struct {
	B1 float64 `cty:"b1" validate:"gte=0"`
}

func (SswellZieger) sswell()           {}
func (s SswellZieger) Validate() error { return schema.Struct("sswell", s) }
func (s SswellZieger) Render() string  { return render(s) }
func (s SswellZieger) Cmd() []string {
	return line("SSWELL ZIEGER " + swanfmt.FloatKV("b1", s.B1))
}

var Sswells = schema.Variants[Sswell]{
	Set: "sswell",
	Decoders: map[string]schema.Decoder[Sswell]{
		"rogers":  decodeAs[Sswell]("sswell", SswellRogers{Cdsv: 1.2}),
		"ardhuin": decodeAs[Sswell]("sswell", SswellArdhuin{Cdsv: 1.2}),
		"zieger":  decodeAs[Sswell]("sswell", SswellZieger{B1: 0.0025}),
	},
	Abstract: []string{"base"},
}

// Breaking is the depth-induced breaking term.
type Breaking interface {
	Component
	breaking()
}

type BreakingConstant struct {
	Alpha float64 `cty:"alpha" validate:"gte=0"`
	Gamma float64 `cty:"gamma" validate:"gte=0"`
}

func (BreakingConstant) breaking()         {}
func (b BreakingConstant) Validate() error { return schema.Struct("breaking", b) }
func (b BreakingConstant) Render() string  { return render(b) }
func (b BreakingConstant) Cmd() []string {
	return line(swanfmt.NewLine("BREAKING CONSTANT", swanfmt.FloatKV("alpha", b.Alpha), swanfmt.FloatKV("gamma", b.Gamma)).Text())
}

// BreakingBkd scales the breaker index with bottom slope and wave steepness.
type BreakingBkd struct {
	Alpha  float64 `cty:"alpha" validate:"gte=0"`
	Gamma0 float64 `cty:"gamma0" validate:"gte=0"`
	A1     float64 `cty:"a1"`
	A2     float64 `cty:"a2"`
	A3     float64 `cty:"a3"`
}

func (BreakingBkd) breaking()         {}
func (b BreakingBkd) Validate() error { return schema.Struct("breaking", b) }
func (b BreakingBkd) Render() string  { return render(b) }
func (b BreakingBkd) Cmd() []string {
	return line(swanfmt.NewLine("BREAKING BKD",
		swanfmt.FloatKV("alpha", b.Alpha),
		swanfmt.FloatKV("gamma0", b.Gamma0),
		swanfmt.FloatKV("a1", b.A1),
		swanfmt.FloatKV("a2", b.A2),
		swanfmt.FloatKV("a3", b.A3),
	).Text())
}

var Breakings = schema.Variants[Breaking]{
	Set: "breaking",
	Decoders: map[string]schema.Decoder[Breaking]{
		"constant": decodeAs[Breaking]("breaking", BreakingConstant{Alpha: 1.0, Gamma: 0.73}),
		"bkd":      decodeAs[Breaking]("breaking", BreakingBkd{Alpha: 1.0, Gamma0: 0.54, A1: 7.59, A2: -8.06, A3: 8.09}),
	},
	Abstract: []string{"base"},
}

// Friction is the bottom friction term.
type Friction interface {
	Component
	friction()
}

type FrictionJonswap struct {
	Cfjon float64 `cty:"cfjon" validate:"gte=0"`
}

func (FrictionJonswap) friction()         {}
func (f FrictionJonswap) Validate() error { return schema.Struct("friction", f) }
func (f FrictionJonswap) Render() string  { return render(f) }
func (f FrictionJonswap) Cmd() []string {
	return line("FRICTION JONSWAP CONSTANT " + swanfmt.FloatKV("cfjon", f.Cfjon))
}

type FrictionCollins struct {
	Cfw float64 `cty:"cfw" validate:"gte=0"`
}

func (FrictionCollins) friction()         {}
func (f FrictionCollins) Validate() error { return schema.Struct("friction", f) }
func (f FrictionCollins) Render() string  { return render(f) }
func (f FrictionCollins) Cmd() []string {
	return line("FRICTION COLLINS " + swanfmt.FloatKV("cfw", f.Cfw))
}

type FrictionMadsen struct {
	Kn float64 `cty:"kn" validate:"gt=0"`
}

func (FrictionMadsen) friction()         {}
func (f FrictionMadsen) Validate() error { return schema.Struct("friction", f) }
func (f FrictionMadsen) Render() string  { return render(f) }
func (f FrictionMadsen) Cmd() []string {
	return line("FRICTION MADSEN " + swanfmt.FloatKV("kn", f.Kn))
}

// FrictionRipples takes the sediment specific density S and grain size D.
type FrictionRipples struct {
	S float64 `cty:"s" validate:"gt=0"`
	D float64 `cty:"d" validate:"gt=0"`
}

func (FrictionRipples) friction()         {}
func (f FrictionRipples) Validate() error { return schema.Struct("friction", f) }
func (f FrictionRipples) Render() string  { return render(f) }
func (f FrictionRipples) Cmd() []string {
	return line(swanfmt.NewLine("FRICTION RIPPLES", swanfmt.FloatKV("S", f.S), swanfmt.FloatKV("D", f.D)).Text())
}

var Frictions = schema.Variants[Friction]{
	Set: "friction",
	Decoders: map[string]schema.Decoder[Friction]{
		"jonswap": decodeAs[Friction]("friction", FrictionJonswap{Cfjon: 0.038}),
		"collins": decodeAs[Friction]("friction", FrictionCollins{Cfw: 0.015}),
		"madsen":  decodeAs[Friction]("friction", FrictionMadsen{Kn: 0.05}),
		"ripples": decodeAs[Friction]("friction", FrictionRipples{S: 2.65, D: 0.0001}),
	},
	Abstract: []string{"base"},
}

// Triad activates three-wave interactions.
type Triad struct {
	Itriad *int     `cty:"itriad" validate:"omitempty,oneof=1 2"`
	Trfac  *float64 `cty:"trfac" validate:"omitempty,gte=0"`
	Cutfr  *float64 `cty:"cutfr" validate:"omitempty,gt=0"`
}

func (t Triad) Validate() error { return schema.Struct("triad", t) }
func (t Triad) Render() string  { return render(t) }
func (t Triad) Cmd() []string {
	return line(swanfmt.NewLine("TRIAD").Int("itriad", t.Itriad).Float("trfac", t.Trfac).Float("cutfr", t.Cutfr).Text())
}

// Quadrupl configures four-wave interactions.
type Quadrupl struct {
	Iquad *int     `cty:"iquad" validate:"omitempty,gte=0,lte=8"`
	Lambd *float64 `cty:"lambd" validate:"omitempty,gte=0,lte=1"`
	Cnl4  *float64 `cty:"cnl4" validate:"omitempty,gte=0"`
}

func (q Quadrupl) Validate() error { return schema.Struct("quadrupl", q) }
func (q Quadrupl) Render() string  { return render(q) }
func (q Quadrupl) Cmd() []string {
	return line(swanfmt.NewLine("QUADRUPL").Int("iquad", q.Iquad).Float("lambd", q.Lambd).Float("cnl4", q.Cnl4).Text())
}

// Setup activates wave-induced setup.
type Setup struct {
	Supcor *float64 `cty:"supcor"`
}

func (s Setup) Validate() error { return nil }
func (s Setup) Render() string  { return render(s) }
func (s Setup) Cmd() []string {
	return line(swanfmt.NewLine("SETUP").Float("supcor", s.Supcor).Text())
}

type Diffraction struct {
	Idiffr int      `cty:"idiffr" validate:"oneof=0 1"`
	Smpar  *float64 `cty:"smpar" validate:"omitempty,gte=0"`
	Smnum  *int     `cty:"smnum" validate:"omitempty,gte=0"`
}

func (d Diffraction) Validate() error { return schema.Struct("diffraction", d) }
func (d Diffraction) Render() string  { return render(d) }
func (d Diffraction) Cmd() []string {
	return line(swanfmt.NewLine("DIFFRACTION", swanfmt.IntKV("idiffr", d.Idiffr)).
		Float("smpar", d.Smpar).
		Int("smnum", d.Smnum).
		Text())
}

// OffProcesses are the processes that can be switched off.
var OffProcesses = []string{"windgrowth", "quadrupl", "wcapping", "breaking", "refrac", "fshift", "bndchk"}

// Off switches processes off, one command each.
type Off []string

func (o Off) Validate() error {
	c := schema.NewCheck("off")
	seen := make(map[string]bool, len(o))
	for i, p := range o {
		switch {
		case !slices.Contains(OffProcesses, p):
			c.Fieldf(indexed(i), "must be one of %v, got %q", OffProcesses, p)
		case seen[p]:
			c.Fieldf(indexed(i), "duplicate process %q", p)
		}
		seen[p] = true
	}
	return c.Err()
}

func (o Off) Render() string { return render(o) }
func (o Off) Cmd() []string {
	out := make([]string, 0, len(o))
	for _, p := range o {
		out = append(out, "OFF "+swanfmt.Keyword(p))
	}
	return out
}

// Physics holds the source terms, rendered in solver order.
type Physics struct {
	Gen         Gen
	Sswell      Sswell
	Breaking    Breaking
	Friction    Friction
	Triad       *Triad
	Quadrupl    *Quadrupl
	Setup       *Setup
	Diffraction *Diffraction
	Off         Off
}

func (p Physics) members() []Component {
	var out []Component
	add := func(present bool, c Component) {
		if present {
			out = append(out, c)
		}
	}
	add(p.Gen != nil, p.Gen)
	add(p.Sswell != nil, p.Sswell)
	add(p.Breaking != nil, p.Breaking)
	add(p.Friction != nil, p.Friction)
	add(p.Triad != nil, p.Triad)
	add(p.Quadrupl != nil, p.Quadrupl)
	add(p.Setup != nil, p.Setup)
	add(p.Diffraction != nil, p.Diffraction)
	add(len(p.Off) > 0, p.Off)
	return out
}

func (p Physics) Validate() error {
	c := schema.NewCheck("physics")
	for _, m := range p.members() {
		c.Add(m.Validate())
	}
	return c.Err()
}

func (p Physics) Render() string { return render(p) }

func (p Physics) Cmd() []string {
	var out []string
	for _, m := range p.members() {
		out = append(out, m.Cmd()...)
	}
	return out
}

// DecodePhysics reads the physics group. off is a list of process names.
func DecodePhysics(v cty.Value) (Physics, error) {
	attrs, err := schema.OnlyKeys("physics", v,
		"gen", "sswell", "breaking", "friction", "triad", "quadrupl", "setup", "diffraction", "off")
	if err != nil {
		return Physics{}, err
	}

	var p Physics
	c := schema.NewCheck("physics")
	if m, ok, err := schema.DecodeField("physics", "gen", attrs, Gens.Decode); ok {
		c.Add(err)
		p.Gen = m
	}
	if m, ok, err := schema.DecodeField("physics", "sswell", attrs, Sswells.Decode); ok {
		c.Add(err)
		p.Sswell = m
	}
	if m, ok, err := schema.DecodeField("physics", "breaking", attrs, Breakings.Decode); ok {
		c.Add(err)
		p.Breaking = m
	}
	if m, ok, err := schema.DecodeField("physics", "friction", attrs, Frictions.Decode); ok {
		c.Add(err)
		p.Friction = m
	}
	if m, ok, err := schema.DecodeField("physics", "triad", attrs, decodeValue("triad", Triad{})); ok {
		c.Add(err)
		p.Triad = m
	}
	if m, ok, err := schema.DecodeField("physics", "quadrupl", attrs, decodeValue("quadrupl", Quadrupl{})); ok {
		c.Add(err)
		p.Quadrupl = m
	}
	if m, ok, err := schema.DecodeField("physics", "setup", attrs, decodeValue("setup", Setup{})); ok {
		c.Add(err)
		p.Setup = m
	}
	if m, ok, err := schema.DecodeField("physics", "diffraction", attrs, decodeValue("diffraction", Diffraction{Idiffr: 1})); ok {
		c.Add(err)
		p.Diffraction = m
	}
	if m, ok, err := schema.DecodeField("physics", "off", attrs, decodeOff); ok {
		c.Add(err)
		p.Off = m
	}
	if err := c.Err(); err != nil {
		return Physics{}, err
	}
	return New(p)
}

func decodeOff(v cty.Value) (Off, error) {
	elems, err := schema.Elements("off", "", v)
	if err != nil {
		return nil, err
	}
	c := schema.NewCheck("off")
	out := make(Off, 0, len(elems))
	for i, e := range elems {
		if e.IsNull() || e.Type() != cty.String {
			c.Fieldf(indexed(i), "expected string, got %s", e.Type().FriendlyName())
			continue
		}
		out = append(out, e.AsString())
	}
	if err := c.Err(); err != nil {
		return nil, err
	}
	return schema.Build(out)
}
