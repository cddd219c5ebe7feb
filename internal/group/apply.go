// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package group

import (
	"slices"
	"strconv"
	"time"

	"github.com/specialistvlad/swangridgo/internal/component"
	"github.com/specialistvlad/swangridgo/internal/config"
	"github.com/specialistvlad/swangridgo/internal/schema"
	"github.com/specialistvlad/swangridgo/internal/subcomponent"
)

// ApplyInpgrids rebinds the nonstationary range of every input grid that
// has one.
func ApplyInpgrids(old component.Inpgrids, p subcomponent.Period) (component.Inpgrids, error) {
	if err := p.Validate(); err != nil {
		return component.Inpgrids{}, err
	}
	grids := slices.Clone(old.Grids)
	for i, g := range grids {
		if g.Nonstationary == nil {
			continue
		}
		r := closed(*g.Nonstationary, p)
		grids[i].Nonstationary = &r
	}
	return component.New(component.Inpgrids{Grids: grids})
}

// ApplyOutput gives every write command an open range starting at the
// period start and stepping by its interval.
func ApplyOutput(old component.Output, p subcomponent.Period) (component.Output, error) {
	if err := p.Validate(); err != nil {
		return component.Output{}, err
	}
	out := old
	out.Blocks = slices.Clone(old.Blocks)
	for i := range out.Blocks {
		out.Blocks[i].Times = open(out.Blocks[i].Times, component.BlockSuffix, p)
	}
	out.Tables = slices.Clone(old.Tables)
	for i := range out.Tables {
		out.Tables[i].Times = open(out.Tables[i].Times, component.TableSuffix, p)
	}
	out.Specouts = slices.Clone(old.Specouts)
	for i := range out.Specouts {
		out.Specouts[i].Times = open(out.Specouts[i].Times, component.SpecoutSuffix, p)
	}
	out.Nestouts = slices.Clone(old.Nestouts)
	for i := range out.Nestouts {
		out.Nestouts[i].Times = open(out.Nestouts[i].Times, component.NestoutSuffix, p)
	}
	return component.New(out)
}

// ApplyLockup rebinds every computation to the period. A nonstationary
// computation keeps the kind of its range; hottimes outside the period are
// dropped. A stationary computation at a set time moves to the period
// start.
func ApplyLockup(old component.Lockup, p subcomponent.Period) (component.Lockup, error) {
	if err := p.Validate(); err != nil {
		return component.Lockup{}, err
	}
	computes := make([]component.Compute, len(old.Compute))
	c := schema.NewCheck("lockup")
	for i, m := range old.Compute {
		switch m := m.(type) {
		case component.ComputeStat:
			if m.Time != nil {
				t := subcomponent.Time{Time: p.Start, Tfmt: m.Time.Tfmt}
				m.Time = &t
			}
			computes[i] = m
		case component.ComputeNonstat:
			next, err := nonstat(m, p)
			c.Child("compute["+strconv.Itoa(i)+"]", err)
			computes[i] = next
		default:
			c.Fieldf("compute["+strconv.Itoa(i)+"]", "cannot bind a period to %T", m)
		}
	}
	if err := c.Err(); err != nil {
		return component.Lockup{}, err
	}
	return component.New(component.Lockup{Compute: computes, Hotfile: old.Hotfile})
}

func nonstat(m component.ComputeNonstat, p subcomponent.Period) (component.ComputeNonstat, error) {
	var times subcomponent.TimeRange
	switch r := m.Times.(type) {
	case subcomponent.TimeRangeClosed:
		times = closed(r, p)
	case subcomponent.TimeRangeOpen:
		r.Tbeg, r.Delt = p.Start, p.Interval
		times = r
	default:
		return component.ComputeNonstat{}, schema.Errorf("compute", "times", "cannot bind a period to %T", m.Times)
	}
	var hottimes []time.Time
	for _, t := range m.Hottimes {
		if p.Contains(t) {
			hottimes = append(hottimes, t)
		}
	}
	return component.NewComputeNonstat(times, m.Hotfile, hottimes)
}

// ApplyConfig applies the period to every time-bearing slot of cfg.
func ApplyConfig(cfg config.Config, p subcomponent.Period) (config.Config, error) {
	out := cfg
	c := schema.NewCheck("config")
	if cfg.Inpgrid != nil {
		g, err := ApplyInpgrids(*cfg.Inpgrid, p)
		c.Add(err)
		out.Inpgrid = &g
	}
	if cfg.Output != nil {
		o, err := ApplyOutput(*cfg.Output, p)
		c.Add(err)
		out.Output = &o
	}
	if cfg.Lockup != nil {
		l, err := ApplyLockup(*cfg.Lockup, p)
		c.Add(err)
		out.Lockup = &l
	}
	if err := c.Err(); err != nil {
		return config.Config{}, err
	}
	out.Period = &p
	return config.New(out)
}

func closed(r subcomponent.TimeRangeClosed, p subcomponent.Period) subcomponent.TimeRangeClosed {
	r.Tbeg, r.Delt, r.Tend = p.Start, p.Interval, p.End
	return r
}

func open(r *subcomponent.TimeRangeOpen, suffix string, p subcomponent.Period) *subcomponent.TimeRangeOpen {
	next := subcomponent.NewTimeRangeOpen(p.Start, p.Interval, suffix)
	if r != nil {
		next.Tfmt, next.Dfmt, next.Suffix = r.Tfmt, r.Dfmt, r.Suffix
	}
	return &next
}
