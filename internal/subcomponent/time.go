// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package subcomponent

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/sosodev/duration"
	"github.com/specialistvlad/swangridgo/internal/schema"
	"github.com/specialistvlad/swangridgo/internal/swanfmt"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/gocty"
)

// Time layouts selected by Tfmt.
var timeLayouts = map[int]string{
	1: "20060102.150405",
	2: "'02-Jan-06 15:04:05'",
	3: "01/02/06 15:04:05",
	4: "15:04:05",
	5: "06/01/02 15:04:05",
	6: "0601021504",
}

// DefaultTfmt is the ISO-like SWAN time layout.
const DefaultTfmt = 1

// Duration units selected by Dfmt.
const (
	DfmtSec = "sec"
	DfmtMin = "min"
	DfmtHr  = "hr"
	DfmtDay = "day"

	DefaultDfmt = DfmtHr
)

var dfmtScale = map[string]time.Duration{
	DfmtSec: time.Second,
	DfmtMin: time.Minute,
	DfmtHr:  time.Hour,
	DfmtDay: 24 * time.Hour,
}

// inputLayouts are tried in order when reading a time from text.
var inputLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"20060102.150405",
}

// ParseTime reads a time in any accepted layout.
func ParseTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range inputLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("cannot parse %q as a time", s)
}

// ParseDuration reads a Go duration (1h30m), a number of seconds or an
// ISO-8601 duration (PT1H30M, P1W). Years and months are rejected.
func ParseDuration(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if d, err := time.ParseDuration(s); err == nil {
		return d, nil
	}
	if secs, err := strconv.ParseFloat(s, 64); err == nil {
		return seconds(secs)
	}
	iso := strings.ToUpper(s)
	body := strings.TrimLeft(iso, "-P")
	if body == "" || !strings.ContainsAny(body[len(body)-1:], "YMWDHS") {
		return 0, fmt.Errorf("cannot parse %q as a duration", s)
	}
	d, err := duration.Parse(iso)
	if err != nil {
		return 0, fmt.Errorf("cannot parse %q as a duration", s)
	}
	if d.Years != 0 || d.Months != 0 {
		return 0, fmt.Errorf("duration %q has years or months, which have no fixed length", s)
	}
	secs := ((d.Weeks*7+d.Days)*24+d.Hours)*3600 + d.Minutes*60 + d.Seconds
	if d.Negative {
		secs = -secs
	}
	return seconds(secs)
}

// seconds converts a number of seconds, rejecting counts a Duration cannot
// hold.
func seconds(secs float64) (time.Duration, error) {
	ns := secs * float64(time.Second)
	if math.IsNaN(ns) || ns >= math.MaxInt64 || ns < math.MinInt64 {
		return 0, fmt.Errorf("%s seconds is out of range for a duration", strconv.FormatFloat(secs, 'g', -1, 64))
	}
	return time.Duration(ns), nil
}

// Instant is a time that decodes from text in any accepted layout.
type Instant time.Time

func (i *Instant) DecodeCty(v cty.Value) error {
	if v.Type() != cty.String {
		return fmt.Errorf("expected a time string, got %s", v.Type().FriendlyName())
	}
	t, err := ParseTime(v.AsString())
	if err != nil {
		return err
	}
	*i = Instant(t)
	return nil
}

// Span is a duration that decodes from text or a number of seconds.
type Span time.Duration

func (s *Span) DecodeCty(v cty.Value) error {
	switch v.Type() {
	case cty.String:
		d, err := ParseDuration(v.AsString())
		if err != nil {
			return err
		}
		*s = Span(d)
		return nil
	case cty.Number:
		var secs float64
		if err := gocty.FromCtyValue(v, &secs); err != nil {
			return err
		}
		d, err := seconds(secs)
		if err != nil {
			return err
		}
		*s = Span(d)
		return nil
	}
	return fmt.Errorf("expected a duration, got %s", v.Type().FriendlyName())
}

// Time is a point in time with its SWAN layout.
type Time struct {
	Time time.Time `cty:"time,required" validate:"required"`
	Tfmt int       `cty:"tfmt" validate:"gte=1,lte=6"`
}

// NewTime uses the default layout.
func NewTime(t time.Time) Time {
	return Time{Time: t, Tfmt: DefaultTfmt}
}

func (t Time) Validate() error {
	return schema.Struct("time", t)
}

func (t Time) Cmd() string {
	layout, ok := timeLayouts[t.Tfmt]
	if !ok {
		layout = timeLayouts[DefaultTfmt]
	}
	return t.Time.Format(layout)
}

func (t Time) Render() string { return render(t) }

// DecodeCty accepts either a time string or {time, tfmt}.
func (t *Time) DecodeCty(v cty.Value) error {
	out := Time{Tfmt: DefaultTfmt}
	if v.Type() == cty.String {
		parsed, err := ParseTime(v.AsString())
		if err != nil {
			return err
		}
		out.Time = parsed
	} else {
		var attrs struct {
			Time Instant `cty:"time,required"`
			Tfmt *int    `cty:"tfmt"`
		}
		if err := schema.DecodeClosed("time", v, &attrs); err != nil {
			return err
		}
		out.Time = time.Time(attrs.Time)
		if attrs.Tfmt != nil {
			out.Tfmt = *attrs.Tfmt
		}
	}
	if err := out.Validate(); err != nil {
		return err
	}
	*t = out
	return nil
}

// Delt is a time step with its SWAN unit.
type Delt struct {
	Delt time.Duration `cty:"delt,required" validate:"gt=0"`
	Dfmt string        `cty:"dfmt" validate:"oneof=sec min hr day"`
}

// NewDelt uses the default unit.
func NewDelt(d time.Duration) Delt {
	return Delt{Delt: d, Dfmt: DefaultDfmt}
}

func (d Delt) Validate() error {
	return schema.Struct("delt", d)
}

func (d Delt) Cmd() string {
	dfmt := d.Dfmt
	scale, ok := dfmtScale[dfmt]
	if !ok {
		dfmt, scale = DefaultDfmt, dfmtScale[DefaultDfmt]
	}
	return swanfmt.Float(d.Delt.Seconds()/scale.Seconds()) + " " + swanfmt.Keyword(dfmt)
}

func (d Delt) Render() string { return render(d) }

// DecodeCty accepts either a duration or {delt, dfmt}.
func (d *Delt) DecodeCty(v cty.Value) error {
	out := Delt{Dfmt: DefaultDfmt}
	if v.Type() == cty.String || v.Type() == cty.Number {
		var s Span
		if err := s.DecodeCty(v); err != nil {
			return err
		}
		out.Delt = time.Duration(s)
	} else {
		var attrs struct {
			Delt Span    `cty:"delt,required"`
			Dfmt *string `cty:"dfmt"`
		}
		if err := schema.DecodeClosed("delt", v, &attrs); err != nil {
			return err
		}
		out.Delt = time.Duration(attrs.Delt)
		if attrs.Dfmt != nil {
			out.Dfmt = *attrs.Dfmt
		}
	}
	if err := out.Validate(); err != nil {
		return err
	}
	*d = out
	return nil
}

// TimeRange selects the times a command applies to: an open range
// (begin and step) or a closed one (begin, step and end).
type TimeRange interface {
	Renderer
	Validate() error
	// Begin is the first time of the range.
	Begin() time.Time
	// Step is the interval between times.
	Step() time.Duration
	// Selectors are the layouts and key suffix of the range.
	Selectors() (tfmt int, dfmt, suffix string)
	timeRange()
}

// TimeRangeOpen renders tbeg<sfx>=.. delt<sfx>=...
type TimeRangeOpen struct {
	Tbeg   time.Time     `cty:"tbeg" validate:"required"`
	Delt   time.Duration `cty:"delt" validate:"gt=0"`
	Tfmt   int           `cty:"tfmt" validate:"gte=1,lte=6"`
	Dfmt   string        `cty:"dfmt" validate:"oneof=sec min hr day"`
	Suffix string        `cty:"-"`
}

func (TimeRangeOpen) timeRange() {}

// NewTimeRangeOpen uses the default layouts.
func NewTimeRangeOpen(tbeg time.Time, delt time.Duration, suffix string) TimeRangeOpen {
	return TimeRangeOpen{Tbeg: tbeg, Delt: delt, Tfmt: DefaultTfmt, Dfmt: DefaultDfmt, Suffix: suffix}
}

func (r TimeRangeOpen) Begin() time.Time    { return r.Tbeg }
func (r TimeRangeOpen) Step() time.Duration { return r.Delt }
func (r TimeRangeOpen) Selectors() (int, string, string) {
	return r.Tfmt, r.Dfmt, r.Suffix
}

func (r TimeRangeOpen) Validate() error {
	return schema.Struct("times", r)
}

func (r TimeRangeOpen) Cmd() string {
	return swanfmt.NewLine(
		swanfmt.KV("tbeg"+r.Suffix, Time{Time: r.Tbeg, Tfmt: r.Tfmt}.Cmd()),
		swanfmt.KV("delt"+r.Suffix, Delt{Delt: r.Delt, Dfmt: r.Dfmt}.Cmd()),
	).Text()
}

func (r TimeRangeOpen) Render() string { return render(r) }

// TimeRangeClosed is TimeRangeOpen with an end time.
type TimeRangeClosed struct {
	Tbeg   time.Time     `cty:"tbeg" validate:"required"`
	Delt   time.Duration `cty:"delt" validate:"gt=0"`
	Tend   time.Time     `cty:"tend" validate:"required"`
	Tfmt   int           `cty:"tfmt" validate:"gte=1,lte=6"`
	Dfmt   string        `cty:"dfmt" validate:"oneof=sec min hr day"`
	Suffix string        `cty:"-"`
}

func (TimeRangeClosed) timeRange() {}

// NewTimeRangeClosed uses the default layouts.
func NewTimeRangeClosed(tbeg time.Time, delt time.Duration, tend time.Time, suffix string) TimeRangeClosed {
	return TimeRangeClosed{Tbeg: tbeg, Delt: delt, Tend: tend, Tfmt: DefaultTfmt, Dfmt: DefaultDfmt, Suffix: suffix}
}

func (r TimeRangeClosed) Begin() time.Time    { return r.Tbeg }
func (r TimeRangeClosed) Step() time.Duration { return r.Delt }
func (r TimeRangeClosed) Selectors() (int, string, string) {
	return r.Tfmt, r.Dfmt, r.Suffix
}

// Open drops the end time.
func (r TimeRangeClosed) Open() TimeRangeOpen {
	return TimeRangeOpen{Tbeg: r.Tbeg, Delt: r.Delt, Tfmt: r.Tfmt, Dfmt: r.Dfmt, Suffix: r.Suffix}
}

func (r TimeRangeClosed) Validate() error {
	c := schema.NewCheck("times").Struct(r)
	if r.Tend.IsZero() || r.Tbeg.IsZero() {
		return c.Err()
	}
	if !r.Tend.After(r.Tbeg) {
		c.Fieldf("tend", "must be after tbeg (%s), got %s", r.Tbeg.Format(time.RFC3339), r.Tend.Format(time.RFC3339))
	} else if span := r.Tend.Sub(r.Tbeg); r.Delt > span {
		c.Fieldf("delt", "must not exceed the range %s, got %s", span, r.Delt)
	}
	return c.Err()
}

func (r TimeRangeClosed) Cmd() string {
	return swanfmt.NewLine(
		r.Open().Cmd(),
		swanfmt.KV("tend"+r.Suffix, Time{Time: r.Tend, Tfmt: r.Tfmt}.Cmd()),
	).Text()
}

func (r TimeRangeClosed) Render() string { return render(r) }

type timeRangeAttrs struct {
	Tbeg Instant  `cty:"tbeg,required"`
	Delt Span     `cty:"delt,required"`
	Tend *Instant `cty:"tend"`
	Tfmt *int     `cty:"tfmt"`
	Dfmt *string  `cty:"dfmt"`
}

func (a timeRangeAttrs) open(suffix string) TimeRangeOpen {
	r := NewTimeRangeOpen(time.Time(a.Tbeg), time.Duration(a.Delt), suffix)
	if a.Tfmt != nil {
		r.Tfmt = *a.Tfmt
	}
	if a.Dfmt != nil {
		r.Dfmt = *a.Dfmt
	}
	return r
}

// DecodeTimeRangeOpen reads {tbeg, delt, tfmt, dfmt}.
func DecodeTimeRangeOpen(suffix string) schema.Decoder[TimeRangeOpen] {
	return func(v cty.Value) (TimeRangeOpen, error) {
		var attrs timeRangeAttrs
		if err := schema.DecodeClosed("times", v, &attrs); err != nil {
			return TimeRangeOpen{}, err
		}
		if attrs.Tend != nil {
			return TimeRangeOpen{}, schema.Errorf("times", "tend", "unknown field")
		}
		return schema.Build(attrs.open(suffix))
	}
}

// DecodeTimeRangeClosed reads {tbeg, delt, tend, tfmt, dfmt}.
func DecodeTimeRangeClosed(suffix string) schema.Decoder[TimeRangeClosed] {
	return func(v cty.Value) (TimeRangeClosed, error) {
		var attrs timeRangeAttrs
		if err := schema.DecodeClosed("times", v, &attrs); err != nil {
			return TimeRangeClosed{}, err
		}
		if attrs.Tend == nil {
			return TimeRangeClosed{}, schema.Errorf("times", "tend", "missing required field")
		}
		o := attrs.open(suffix)
		return schema.Build(TimeRangeClosed{
			Tbeg: o.Tbeg, Delt: o.Delt, Tend: time.Time(*attrs.Tend),
			Tfmt: o.Tfmt, Dfmt: o.Dfmt, Suffix: suffix,
		})
	}
}

// TimeRanges is the set {open, closed}; the presence of tend selects closed
// when model_type is absent.
func TimeRanges(suffix string) schema.Variants[TimeRange] {
	return schema.Variants[TimeRange]{
		Set:     "times",
		Default: "open",
		Infer: func(attrs map[string]cty.Value) string {
			if schema.Has(attrs, "tend") {
				return "closed"
			}
			return ""
		},
		Decoders: map[string]schema.Decoder[TimeRange]{
			"open":   widen[TimeRange](DecodeTimeRangeOpen(suffix)),
			"closed": widen[TimeRange](DecodeTimeRangeClosed(suffix)),
		},
		Abstract: []string{"base"},
	}
}

// widen adapts a decoder of one variant to its set.
func widen[T any, V any](dec schema.Decoder[V]) schema.Decoder[T] {
	return func(v cty.Value) (T, error) {
		var zero T
		out, err := dec(v)
		if err != nil {
			return zero, err
		}
		t, ok := any(out).(T)
		if !ok {
			panic(fmt.Sprintf("subcomponent: %T does not implement the set", out))
		}
		return t, nil
	}
}

// Period is the simulation window supplied to a run.
type Period struct {
	Start    time.Time     `cty:"start,required" validate:"required"`
	End      time.Time     `cty:"end,required" validate:"required"`
	Interval time.Duration `cty:"interval,required" validate:"gt=0"`
}

func (p Period) Validate() error {
	c := schema.NewCheck("period").Struct(p)
	if !p.Start.IsZero() && !p.End.After(p.Start) {
		c.Fieldf("end", "must be after start (%s), got %s", p.Start.Format(time.RFC3339), p.End.Format(time.RFC3339))
	}
	return c.Err()
}

// Contains reports whether t lies in (Start, End].
func (p Period) Contains(t time.Time) bool {
	return t.After(p.Start) && !t.After(p.End)
}

// DecodePeriod reads {start, end, interval}.
func DecodePeriod(v cty.Value) (Period, error) {
	var attrs struct {
		Start    Instant `cty:"start,required"`
		End      Instant `cty:"end,required"`
		Interval Span    `cty:"interval,required"`
	}
	if err := schema.DecodeClosed("period", v, &attrs); err != nil {
		return Period{}, err
	}
	return schema.Build(Period{
		Start:    time.Time(attrs.Start),
		End:      time.Time(attrs.End),
		Interval: time.Duration(attrs.Interval),
	})
}
