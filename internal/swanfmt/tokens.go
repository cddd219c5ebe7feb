// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package swanfmt

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Exponent thresholds for Float. Values whose decimal exponent falls outside
// [minFixedExp, maxFixedExp) are written in exponent notation.
const (
	minFixedExp = -4
	maxFixedExp = 16
)

// Logical tokens understood by the Fortran readers of the solver.
const (
	True  = ".true."
	False = ".false."
)

// Float returns the shortest decimal text that reads back as v. Integral
// values keep a trailing ".0".
func Float(v float64) string {
	switch {
	case math.IsNaN(v):
		return "nan"
	case math.IsInf(v, 1):
		return "inf"
	case math.IsInf(v, -1):
		return "-inf"
	}

	if v != 0 {
		sci := strconv.FormatFloat(v, 'e', -1, 64)
		exp, err := strconv.Atoi(sci[strings.IndexByte(sci, 'e')+1:])
		if err == nil && (exp < minFixedExp || exp >= maxFixedExp) {
			return sci
		}
	}

	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.ContainsRune(s, '.') {
		s += ".0"
	}
	return s
}

// Int returns the base-10 text of v.
func Int(v int) string {
	return strconv.Itoa(v)
}

// Fmt formats v with an explicit format string. It is used for the few
// fields that declare their own display precision.
func Fmt(format string, v any) string {
	return fmt.Sprintf(format, v)
}

// Quote wraps s in single quotes.
func Quote(s string) string {
	return "'" + s + "'"
}

// Bool returns the logical token for b.
func Bool(b bool) string {
	if b {
		return True
	}
	return False
}

// Keyword upper-cases a selector value for use as a grammar keyword.
func Keyword(s string) string {
	return strings.ToUpper(s)
}

// KV joins a key and an already formatted token.
func KV(key, token string) string {
	return key + "=" + token
}

// FloatKV is KV(key, Float(v)).
func FloatKV(key string, v float64) string {
	return KV(key, Float(v))
}

// IntKV is KV(key, Int(v)).
func IntKV(key string, v int) string {
	return KV(key, Int(v))
}

// StringKV is KV(key, Quote(v)).
func StringKV(key, v string) string {
	return KV(key, Quote(v))
}
