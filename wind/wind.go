/*
Copyright © 2026 the HFire authors.
This file is part of HFire.

HFire is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

HFire is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with HFire.  If not, see <http://www.gnu.org/licenses/>.
*/

// Package wind reduces a reference-height wind speed to the midflame
// height the spread kernel expects, following Albini (1979) and Baughman
// & Albini's logarithmic wind profile approximations.
package wind

import (
	"math"
	"strings"
)

// Method selects a reduction formula.
type Method int

const (
	// AB79 is the Albini (1979) logarithmic profile reduction.
	AB79 Method = iota
	// BHP is the BehavePlus adjustment: a linear fit in 1/ln of the same
	// logarithmic profile term AB79 uses, applied only to positive winds.
	BHP
	// NOWAF passes the reference wind through unchanged.
	NOWAF
)

func (m Method) String() string {
	switch m {
	case BHP:
		return "BHP"
	case NOWAF:
		return "NOWAF"
	default:
		return "AB79"
	}
}

// ParseMethod recognizes the three method names case-insensitively.
// Unrecognized names return AB79 and false.
func ParseMethod(s string) (Method, bool) {
	switch strings.ToUpper(s) {
	case "AB79":
		return AB79, true
	case "BHP":
		return BHP, true
	case "NOWAF":
		return NOWAF, true
	default:
		return AB79, false
	}
}

// RefHeightM is the RAWS reference wind measurement height (20 ft) in
// meters, the h_ref every strategy in package env passes to Reduce.
const RefHeightM = 6.096

// Reduce returns the midflame wind speed given a reference speed uRef
// measured at height hRef, reduced to height hTarget, in whatever units
// uRef was expressed in. Degenerate heights (hTarget <= 0) fall back to
// passthrough rather than dividing by zero or taking log of a
// non-positive argument.
func Reduce(uRef, hRef, hTarget float64, method Method) float64 {
	if method == NOWAF || hTarget <= 0 {
		return uRef
	}
	logArg := (hRef + 0.36*hTarget) / (0.13 * hTarget)
	if logArg <= 1 {
		// ln(x) for x <= 1 is non-positive or zero; spec section 9 requires
		// a passthrough rather than an amplifying or divide-by-zero result.
		return uRef
	}
	lnTerm := math.Log(logArg)
	switch method {
	case BHP:
		if uRef <= 0 {
			return uRef
		}
		waf := 1.371817779/lnTerm + 0.046171831
		return uRef * waf
	default: // AB79
		return uRef / lnTerm
	}
}
