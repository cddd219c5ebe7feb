// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package component

import (
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/specialistvlad/swangridgo/internal/schema"
	"github.com/specialistvlad/swangridgo/internal/subcomponent"
	"github.com/specialistvlad/swangridgo/internal/swanfmt"
	"github.com/zclconf/go-cty/cty"
)

// ComputeSuffix is the time key suffix of nonstationary computations.
const ComputeSuffix = "c"

// hotfileStamp is appended to the stem of intermediate hotfiles.
const hotfileStamp = "20060102T150405"

// Hotfile writes the wave field for a later hotstart.
type Hotfile struct {
	Fname  string `cty:"fname,required" validate:"required,max=36"`
	Format string `cty:"format" validate:"oneof=free unformatted"`
}

// NewHotfile writes fname in free format.
func NewHotfile(fname string) Hotfile {
	return Hotfile{Fname: fname, Format: "free"}
}

func (h Hotfile) Validate() error { return schema.Struct("hotfile", h) }
func (h Hotfile) Render() string  { return render(h) }
func (h Hotfile) Cmd() []string {
	return line(swanfmt.NewLine("HOTFILE", swanfmt.StringKV("fname", h.Fname), swanfmt.Keyword(h.Format)).Text())
}

// At names the hotfile written at t: the stem gets an _YYYYMMDDTHHMMSS
// suffix and the extension is kept.
func (h Hotfile) At(t time.Time) Hotfile {
	ext := filepath.Ext(h.Fname)
	stem := strings.TrimSuffix(h.Fname, ext)
	return Hotfile{Fname: stem + "_" + t.Format(hotfileStamp) + ext, Format: h.Format}
}

// Compute starts a computation.
type Compute interface {
	Component
	compute()
}

// ComputeStat is a stationary computation, optionally at a given time.
type ComputeStat struct {
	Time *subcomponent.Time `cty:"time" validate:"-"`
}

func (ComputeStat) compute() {}

func (c ComputeStat) Validate() error {
	chk := schema.NewCheck("compute")
	if c.Time != nil {
		chk.Child("time", c.Time.Validate())
	}
	return chk.Err()
}

func (c ComputeStat) Render() string { return render(c) }
func (c ComputeStat) Cmd() []string {
	l := swanfmt.NewLine("COMPUTE STATIONARY")
	if c.Time != nil {
		l.Add(swanfmt.KV("time", c.Time.Cmd()))
	}
	return line(l.Text())
}

// ComputeNonstat is a nonstationary computation over Times. Each of
// Hottimes ends a computation segment followed by a hotfile; Hotfile alone
// is written once at the end.
type ComputeNonstat struct {
	Times    subcomponent.TimeRange
	Hotfile  *Hotfile
	Hottimes []time.Time
}

// NewComputeNonstat sorts and deduplicates hottimes and validates the
// result.
func NewComputeNonstat(times subcomponent.TimeRange, hotfile *Hotfile, hottimes []time.Time) (ComputeNonstat, error) {
	hts := slices.Clone(hottimes)
	slices.SortFunc(hts, func(a, b time.Time) int { return a.Compare(b) })
	hts = slices.CompactFunc(hts, func(a, b time.Time) bool { return a.Equal(b) })
	return New(ComputeNonstat{Times: times, Hotfile: hotfile, Hottimes: hts})
}

func (ComputeNonstat) compute() {}

func (c ComputeNonstat) Validate() error {
	chk := schema.NewCheck("compute")
	if c.Times == nil {
		return chk.Require("times", false).Err()
	}
	chk.Child("times", c.Times.Validate())
	if c.Hotfile != nil {
		chk.Child("hotfile", c.Hotfile.Validate())
	}
	if len(c.Hottimes) == 0 {
		return chk.Err()
	}

	chk.Require("hotfile", c.Hotfile != nil)
	closed, ok := c.Times.(subcomponent.TimeRangeClosed)
	if !ok {
		return chk.Fieldf("hottimes", "requires closed times with tend").Err()
	}
	for i, t := range c.Hottimes {
		if !t.After(closed.Tbeg) || t.After(closed.Tend) {
			chk.Fieldf("hottimes"+indexed(i), "must lie in (%s, %s], got %s",
				closed.Tbeg.Format(time.RFC3339), closed.Tend.Format(time.RFC3339), t.Format(time.RFC3339))
		}
		if i > 0 && !t.After(c.Hottimes[i-1]) {
			chk.Fieldf("hottimes"+indexed(i), "must be after %s, got %s",
				c.Hottimes[i-1].Format(time.RFC3339), t.Format(time.RFC3339))
		}
	}
	return chk.Err()
}

func (c ComputeNonstat) Render() string { return render(c) }

func (c ComputeNonstat) Cmd() []string {
	if c.Times == nil {
		return nil
	}
	closed, ok := c.Times.(subcomponent.TimeRangeClosed)
	if len(c.Hottimes) == 0 || !ok || c.Hotfile == nil {
		out := line(computeNonstat(c.Times))
		if c.Hotfile != nil {
			out = append(out, c.Hotfile.Cmd()...)
		}
		return out
	}

	var out []string
	start := closed.Tbeg
	for _, ht := range c.Hottimes {
		seg := closed
		seg.Tbeg, seg.Tend = start, ht
		out = append(out, computeNonstat(seg))
		out = append(out, c.Hotfile.At(ht).Cmd()...)
		start = ht
	}
	if closed.Tend.After(start) {
		seg := closed
		seg.Tbeg = start
		out = append(out, computeNonstat(seg))
	}
	return out
}

func computeNonstat(r subcomponent.TimeRange) string {
	return "COMPUTE NONSTATIONARY " + r.Cmd()
}

// Computes is the closed set of computations. times selects a
// nonstationary computation when model_type is absent.
var Computes = schema.Variants[Compute]{
	Set:     "compute",
	Default: "stat",
	Infer: func(attrs map[string]cty.Value) string {
		if schema.Has(attrs, "times") {
			return "nonstat"
		}
		return ""
	},
	Decoders: map[string]schema.Decoder[Compute]{
		"stat":    decodeAs[Compute]("compute", ComputeStat{}),
		"nonstat": decodeComputeNonstat,
	},
	Abstract: []string{"base"},
}

func decodeComputeNonstat(v cty.Value) (Compute, error) {
	var own struct {
		Hottimes []subcomponent.Instant `cty:"hottimes"`
	}
	rest, err := schema.DecodeObject("compute", v, &own, "times", "hotfile")
	if err != nil {
		return nil, err
	}
	c := schema.NewCheck("compute")
	times, ok, err := schema.DecodeField("compute", "times", rest, subcomponent.TimeRanges(ComputeSuffix).Decode)
	c.Require("times", ok).Add(err)
	hotfile, _, err := schema.DecodeField("compute", "hotfile", rest, decodeValue("hotfile", NewHotfile("")))
	c.Add(err)
	if err := c.Err(); err != nil {
		return nil, err
	}

	hottimes := make([]time.Time, len(own.Hottimes))
	for i, t := range own.Hottimes {
		hottimes[i] = time.Time(t)
	}
	return NewComputeNonstat(times, hotfile, hottimes)
}

// Lockup runs the computations and stops the solver.
type Lockup struct {
	Compute []Compute
	Hotfile *Hotfile
}

func (l Lockup) Validate() error {
	c := schema.NewCheck("lockup")
	if len(l.Compute) == 0 {
		c.Fieldf("compute", "must have at least 1 element(s)")
	}
	for i, m := range l.Compute {
		c.Child("compute"+indexed(i), m.Validate())
	}
	if l.Hotfile != nil {
		c.Child("hotfile", l.Hotfile.Validate())
	}
	return c.Err()
}

func (l Lockup) Render() string { return render(l) }

func (l Lockup) Cmd() []string {
	var out []string
	for _, m := range l.Compute {
		out = append(out, m.Cmd()...)
	}
	if l.Hotfile != nil {
		out = append(out, l.Hotfile.Cmd()...)
	}
	return append(out, "STOP")
}

// DecodeLockup reads {compute, hotfile}. compute is one computation or a
// list of them.
func DecodeLockup(v cty.Value) (Lockup, error) {
	attrs, err := schema.OnlyKeys("lockup", v, "compute", "hotfile")
	if err != nil {
		return Lockup{}, err
	}
	var l Lockup
	c := schema.NewCheck("lockup")
	if cv, ok := attrs["compute"]; ok {
		computes, err := schema.DecodeList("lockup", "compute", cv, Computes.Decode)
		c.Add(err)
		l.Compute = computes
	}
	if h, ok, err := schema.DecodeField("lockup", "hotfile", attrs, decodeValue("hotfile", NewHotfile(""))); ok {
		c.Add(err)
		l.Hotfile = h
	}
	if err := c.Err(); err != nil {
		return Lockup{}, err
	}
	return New(l)
}
