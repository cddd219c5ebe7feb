// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package subcomponent

import (
	"slices"
	"strings"

	"github.com/specialistvlad/swangridgo/internal/schema"
)

// OutputQuantities lists every quantity SWAN can write.
var OutputQuantities = []string{
	"HSIGN", "HSWELL", "DIR", "PDIR", "TDIR", "TM01", "RTM01", "RTP",
	"TPS", "PER", "RPER", "TMM10", "RTMM10", "TM02", "FSPR", "DSPR", "QP",
	"DEPTH", "WATLEV", "BOTLEV", "VEL", "FRCOEF", "WIND", "DISSIP", "QB",
	"TRANSP", "FORCE", "UBOT", "URMS", "WLEN", "STEEPNESS", "DHSIGN",
	"DRTM01", "LEAK", "XP", "YP", "DIST", "SETUP", "TSEC",
}

// IsOutputQuantity reports whether name is a known output quantity in any
// case.
func IsOutputQuantity(name string) bool {
	return slices.Contains(OutputQuantities, strings.ToUpper(name))
}

// CheckOutputQuantities records every unknown name of a quantity list.
func CheckOutputQuantities(c *schema.Check, field string, names []string) {
	for i, n := range names {
		if !IsOutputQuantity(n) {
			c.Fieldf(field, "unknown output quantity %q at index %d", n, i)
		}
	}
}

// OutputTokens upper-cases a quantity list for rendering.
func OutputTokens(names []string) []string {
	out := make([]string, len(names))
	for i, n := range names {
		out[i] = strings.ToUpper(n)
	}
	return out
}
