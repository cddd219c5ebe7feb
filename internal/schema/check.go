// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package schema

// Check collects the violations of one component. Field constraints and
// cross-field predicates feed the same list so the caller sees everything
// that is wrong at once.
type Check struct {
	component string
	errs      Errors
}

// NewCheck starts a check for the named component.
func NewCheck(component string) *Check {
	return &Check{component: component}
}

// Struct runs the tag constraints of v.
func (c *Check) Struct(v any) *Check {
	c.errs = append(c.errs, flatten(c.component, Struct(c.component, v))...)
	return c
}

// Child records the violations of a nested value under field.
func (c *Check) Child(field string, err error) *Check {
	if err != nil {
		c.errs = append(c.errs, nest(c.component, field, err)...)
	}
	return c
}

// Add records violations as they are.
func (c *Check) Add(err error) *Check {
	c.errs = append(c.errs, flatten(c.component, err)...)
	return c
}

// Fieldf records a violation for one field.
func (c *Check) Fieldf(field, format string, args ...any) *Check {
	c.errs = append(c.errs, Errorf(c.component, field, format, args...))
	return c
}

// Require records a missing-field violation when ok is false.
func (c *Check) Require(field string, ok bool) *Check {
	if !ok {
		c.Fieldf(field, "missing required field")
	}
	return c
}

// Forbid records a violation when a field is set but must not be.
func (c *Check) Forbid(field string, set bool, why string) *Check {
	if set {
		c.Fieldf(field, "not allowed %s", why)
	}
	return c
}

// Paired requires two fields to be both set or both unset.
func (c *Check) Paired(a string, aSet bool, b string, bSet bool) *Check {
	if aSet != bSet {
		c.Fieldf(a+","+b, "must be provided together or not at all")
	}
	return c
}

// SameLen requires each named list to have the reference length.
func (c *Check) SameLen(ref string, refLen int, lists map[string]int) *Check {
	for _, name := range sortedKeys(lists) {
		if n := lists[name]; n != refLen {
			c.Fieldf(name, "has %d element(s), expected %d to match %s", n, refLen, ref)
		}
	}
	return c
}

// Err returns the collected violations, or nil.
func (c *Check) Err() error {
	return c.errs.Err()
}
