// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package component

import (
	"github.com/specialistvlad/swangridgo/internal/schema"
	"github.com/specialistvlad/swangridgo/internal/swanfmt"
	"github.com/zclconf/go-cty/cty"
)

// Project names the run and labels its output.
type Project struct {
	Name   string `cty:"name,required" validate:"required,max=16"`
	Nr     string `cty:"nr" validate:"max=4"`
	Title1 string `cty:"title1" validate:"max=72"`
	Title2 string `cty:"title2" validate:"max=72"`
	Title3 string `cty:"title3" validate:"max=72"`
}

func (p Project) Validate() error { return schema.Struct("project", p) }
func (p Project) Render() string  { return render(p) }
func (p Project) Cmd() []string {
	return line(swanfmt.NewLine("PROJECT", swanfmt.StringKV("name", p.Name)).
		Quoted("nr", p.Nr).
		Quoted("title1", p.Title1).
		Quoted("title2", p.Title2).
		Quoted("title3", p.Title3).
		Text())
}

// Set overrides solver constants. Every field is optional.
type Set struct {
	Level               *float64 `cty:"level"`
	Nor                 *float64 `cty:"nor" validate:"omitempty,gte=-360,lte=360"`
	Depmin              *float64 `cty:"depmin" validate:"omitempty,gte=0"`
	Maxmes              *int     `cty:"maxmes" validate:"omitempty,gte=0"`
	Maxerr              *int     `cty:"maxerr" validate:"omitempty,gte=1,lte=3"`
	Grav                *float64 `cty:"grav" validate:"omitempty,gt=0"`
	Rho                 *float64 `cty:"rho" validate:"omitempty,gt=0"`
	Cdcap               *float64 `cty:"cdcap" validate:"omitempty,gte=0"`
	Inrhog              *int     `cty:"inrhog" validate:"omitempty,oneof=0 1"`
	Hsrerr              *float64 `cty:"hsrerr" validate:"omitempty,gte=0"`
	DirectionConvention string   `cty:"direction_convention" validate:"omitempty,oneof=nautical cartesian"`
	Pwtail              *float64 `cty:"pwtail" validate:"omitempty,gt=0"`
	Froudmax            *float64 `cty:"froudmax" validate:"omitempty,gte=0"`
	Icewind             *int     `cty:"icewind" validate:"omitempty,oneof=0 1"`
}

func (s Set) Validate() error { return schema.Struct("set", s) }
func (s Set) Render() string  { return render(s) }
func (s Set) Cmd() []string {
	return line(swanfmt.NewLine("SET").
		Float("level", s.Level).
		Float("nor", s.Nor).
		Float("depmin", s.Depmin).
		Int("maxmes", s.Maxmes).
		Int("maxerr", s.Maxerr).
		Float("grav", s.Grav).
		Float("rho", s.Rho).
		Float("cdcap", s.Cdcap).
		Int("inrhog", s.Inrhog).
		Float("hsrerr", s.Hsrerr).
		Add(swanfmt.Keyword(s.DirectionConvention)).
		Float("pwtail", s.Pwtail).
		Float("froudmax", s.Froudmax).
		Int("icewind", s.Icewind).
		Text())
}

// Mode selects stationary or nonstationary, two- or one-dimensional runs.
type Mode struct {
	Kind string `cty:"kind" validate:"oneof=stationary nonstationary"`
	Dim  string `cty:"dim" validate:"oneof=twodimensional onedimensional"`
}

// DefaultMode is a stationary two-dimensional run.
func DefaultMode() Mode {
	return Mode{Kind: "stationary", Dim: "twodimensional"}
}

// Nonstationary reports whether the run steps through time.
func (m Mode) Nonstationary() bool { return m.Kind == "nonstationary" }

func (m Mode) Validate() error { return schema.Struct("mode", m) }
func (m Mode) Render() string  { return render(m) }
func (m Mode) Cmd() []string {
	return line(swanfmt.NewLine("MODE", swanfmt.Keyword(m.Kind), swanfmt.Keyword(m.Dim)).Text())
}

// Coordinates selects Cartesian or spherical coordinates. Projection applies
// to spherical coordinates only and defaults to ccm.
type Coordinates struct {
	Kind       string `cty:"kind" validate:"oneof=cartesian spherical"`
	Projection string `cty:"projection" validate:"omitempty,oneof=ccm qc"`
	Repeating  bool   `cty:"repeating"`
}

// DefaultCoordinates are Cartesian.
func DefaultCoordinates() Coordinates {
	return Coordinates{Kind: "cartesian"}
}

func (c Coordinates) Validate() error {
	return check("coordinates", c).
		Forbid("projection", c.Kind == "cartesian" && c.Projection != "", "for cartesian coordinates").
		Err()
}

func (c Coordinates) Render() string { return render(c) }
func (c Coordinates) Cmd() []string {
	l := swanfmt.NewLine("COORDINATES", swanfmt.Keyword(c.Kind))
	if c.Kind == "spherical" {
		proj := c.Projection
		if proj == "" {
			proj = "ccm"
		}
		l.Add(swanfmt.Keyword(proj))
	}
	if c.Repeating {
		l.Add("REPEATING")
	}
	return line(l.Text())
}

// Startup holds the run-wide settings, rendered in solver order.
type Startup struct {
	Project     *Project
	Set         *Set
	Mode        *Mode
	Coordinates *Coordinates
}

func (s Startup) Validate() error {
	c := schema.NewCheck("startup")
	if s.Project != nil {
		c.Child("project", s.Project.Validate())
	}
	if s.Set != nil {
		c.Child("set", s.Set.Validate())
	}
	if s.Mode != nil {
		c.Child("mode", s.Mode.Validate())
	}
	if s.Coordinates != nil {
		c.Child("coordinates", s.Coordinates.Validate())
	}
	return c.Err()
}

func (s Startup) Render() string { return render(s) }

func (s Startup) Cmd() []string {
	var out []string
	if s.Project != nil {
		out = append(out, s.Project.Cmd()...)
	}
	if s.Set != nil {
		out = append(out, s.Set.Cmd()...)
	}
	if s.Mode != nil {
		out = append(out, s.Mode.Cmd()...)
	}
	if s.Coordinates != nil {
		out = append(out, s.Coordinates.Cmd()...)
	}
	return out
}

// DecodeStartup reads {project, set, mode, coordinates}.
func DecodeStartup(v cty.Value) (Startup, error) {
	attrs, err := schema.OnlyKeys("startup", v, "project", "set", "mode", "coordinates")
	if err != nil {
		return Startup{}, err
	}

	var s Startup
	errs := schema.NewCheck("startup")
	if p, ok, err := schema.DecodeField("startup", "project", attrs, decodeValue("project", Project{})); ok {
		errs.Add(err)
		s.Project = p
	}
	if p, ok, err := schema.DecodeField("startup", "set", attrs, decodeValue("set", Set{})); ok {
		errs.Add(err)
		s.Set = p
	}
	if p, ok, err := schema.DecodeField("startup", "mode", attrs, decodeValue("mode", DefaultMode())); ok {
		errs.Add(err)
		s.Mode = p
	}
	if p, ok, err := schema.DecodeField("startup", "coordinates", attrs, decodeValue("coordinates", DefaultCoordinates())); ok {
		errs.Add(err)
		s.Coordinates = p
	}
	if err := errs.Err(); err != nil {
		return Startup{}, err
	}
	return s, nil
}

// decodeValue decodes an optional member into a pointer.
func decodeValue[V schema.Validator](component string, defaults V) schema.Decoder[*V] {
	return func(v cty.Value) (*V, error) {
		out, err := schema.Decode(component, v, defaults)
		if err != nil {
			return nil, err
		}
		return &out, nil
	}
}
