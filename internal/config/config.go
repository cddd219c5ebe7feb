// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package config

import (
	"strconv"

	"github.com/specialistvlad/swangridgo/internal/component"
	"github.com/specialistvlad/swangridgo/internal/schema"
	"github.com/specialistvlad/swangridgo/internal/subcomponent"
	"github.com/specialistvlad/swangridgo/internal/swanfmt"
	"github.com/zclconf/go-cty/cty"
)

// Config is one SWAN run, one slot per command family.
type Config struct {
	Startup  *component.Startup
	Cgrid    *component.Cgrid
	Inpgrid  *component.Inpgrids
	Wind     *component.Wind
	Physics  *component.Physics
	Numerics *component.Numerics
	Boundary *component.Boundary
	Initial  component.Initial
	Output   *component.Output
	Lockup   *component.Lockup

	// Period is the run window read from the input, if any. It does not
	// render; callers apply it to the time-bearing slots.
	Period *subcomponent.Period
}

// slot is a populated component under its key.
type slot struct {
	key string
	c   component.Component
}

// slots returns the populated slots in solver order.
func (c Config) slots() []slot {
	var out []slot
	add := func(key string, present bool, comp component.Component) {
		if present {
			out = append(out, slot{key, comp})
		}
	}
	add("startup", c.Startup != nil, c.Startup)
	add("cgrid", c.Cgrid != nil, c.Cgrid)
	add("inpgrid", c.Inpgrid != nil, c.Inpgrid)
	add("wind", c.Wind != nil, c.Wind)
	add("physics", c.Physics != nil, c.Physics)
	add("numerics", c.Numerics != nil, c.Numerics)
	add("boundary", c.Boundary != nil, c.Boundary)
	add("initial", c.Initial != nil, c.Initial)
	add("output", c.Output != nil, c.Output)
	add("lockup", c.Lockup != nil, c.Lockup)
	return out
}

// New returns c when every populated slot validates and the required slots
// are present.
func New(c Config) (Config, error) {
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

func (c Config) Validate() error {
	chk := schema.NewCheck("config").
		Require("startup", c.Startup != nil).
		Require("cgrid", c.Cgrid != nil).
		Require("lockup", c.Lockup != nil)
	for _, s := range c.slots() {
		chk.Add(s.c.Validate())
	}
	if c.Period != nil {
		chk.Add(c.Period.Validate())
	}
	if c.Startup != nil && c.Startup.Mode != nil && !c.Startup.Mode.Nonstationary() && c.Lockup != nil {
		for i, m := range c.Lockup.Compute {
			if _, ok := m.(component.ComputeNonstat); ok {
				chk.Fieldf("lockup.compute["+strconv.Itoa(i)+"]", "nonstationary compute needs startup mode nonstationary")
			}
		}
	}
	return chk.Err()
}

// Render returns the INPUT file body: the populated slots in solver order
// separated by blank lines.
func (c Config) Render() string {
	blocks := make([]string, 0, len(c.slots()))
	for _, s := range c.slots() {
		blocks = append(blocks, s.c.Render())
	}
	return swanfmt.JoinBlocks(blocks...)
}

// Keys lists the top-level keys Decode accepts.
var Keys = []string{
	"startup", "cgrid", "inpgrid", "wind", "physics", "numerics",
	"boundary", "initial", "output", "lockup", "period",
}

// Decode builds a Config from the merged value tree. Unknown top-level
// keys are rejected and every violation is reported.
func Decode(v cty.Value) (Config, error) {
	attrs, err := schema.OnlyKeys("config", v, Keys...)
	if err != nil {
		return Config{}, err
	}

	var c Config
	chk := schema.NewCheck("config")
	if s, ok, err := schema.DecodeField("config", "startup", attrs, ptr(component.DecodeStartup)); ok {
		chk.Add(err)
		c.Startup = s
	}
	if g, ok, err := schema.DecodeField("config", "cgrid", attrs, ptr(component.DecodeCgrid)); ok {
		chk.Add(err)
		c.Cgrid = g
	}
	if g, ok, err := schema.DecodeField("config", "inpgrid", attrs, ptr(component.DecodeInpgrids)); ok {
		chk.Add(err)
		c.Inpgrid = g
	}
	if w, ok, err := schema.DecodeField("config", "wind", attrs, ptr(component.DecodeWind)); ok {
		chk.Add(err)
		c.Wind = w
	}
	if p, ok, err := schema.DecodeField("config", "physics", attrs, ptr(component.DecodePhysics)); ok {
		chk.Add(err)
		c.Physics = p
	}
	if n, ok, err := schema.DecodeField("config", "numerics", attrs, ptr(component.DecodeNumerics)); ok {
		chk.Add(err)
		c.Numerics = n
	}
	if b, ok, err := schema.DecodeField("config", "boundary", attrs, ptr(component.DecodeBoundary)); ok {
		chk.Add(err)
		c.Boundary = b
	}
	if i, ok, err := schema.DecodeField("config", "initial", attrs, component.Initials.Decode); ok {
		chk.Add(err)
		c.Initial = i
	}
	if o, ok, err := schema.DecodeField("config", "output", attrs, ptr(component.DecodeOutput)); ok {
		chk.Add(err)
		c.Output = o
	}
	if l, ok, err := schema.DecodeField("config", "lockup", attrs, ptr(component.DecodeLockup)); ok {
		chk.Add(err)
		c.Lockup = l
	}
	if p, ok, err := schema.DecodeField("config", "period", attrs, ptr(subcomponent.DecodePeriod)); ok {
		chk.Add(err)
		c.Period = p
	}
	if err := chk.Err(); err != nil {
		return Config{}, err
	}
	return New(c)
}

// ptr adapts a value decoder to a slot pointer.
func ptr[T any](dec schema.Decoder[T]) schema.Decoder[*T] {
	return func(v cty.Value) (*T, error) {
		out, err := dec(v)
		if err != nil {
			return nil, err
		}
		return &out, nil
	}
}
