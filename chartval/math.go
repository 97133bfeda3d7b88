// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) Lothar May

package chartval

import (
	"strconv"

	"github.com/ericlagergren/decimal"
	"golang.org/x/exp/constraints"
)

const NearZero = 0.000001

// RoundPrice rounds price z to two digits after decimal point and returns z.
func RoundPrice(z *decimal.Big) *decimal.Big {
	// Call Quantize twice, otherwise one digit may be missing, see https://github.com/ericlagergren/decimal/issues/151
	return z.Quantize(2).Quantize(2)
}

// Returns a new decimal with prepared formatting, enforce a minimum of 2 digits after decimal point.
func PrepareFormattedPrice(z *decimal.Big) *decimal.Big {
	if z.Scale() < 2 {
		// Adding 0.00 will enforce the proper format
		return new(decimal.Big).Add(z, decimal.New(0, 2))
	}
	return new(decimal.Big).Copy(z)
}

// The builtin decimal.Big conversion from float64 is an "exact" conversion, and useless for our cases.
// Therefore, convert using string conversion, even though this requires memory allocation.
// See also https://github.com/ericlagergren/decimal/issues/142

// Convert float to string and then to decimal.
func ConvertFloatToDecimal(v float64) *decimal.Big {
	d, _ := new(decimal.Big).SetString(strconv.FormatFloat(v, 'f', -1, 64))
	return d
}

// FormatPrice formats a price value for axis and overlay labels using exact
// decimal rounding.
func FormatPrice(v float64) string {
	return PrepareFormattedPrice(RoundPrice(ConvertFloatToDecimal(v))).String()
}

func CountDigits(v int64) int {
	var count int
	for ; v != 0; v /= 10 {
		count++
	}
	return count
}

func IsGreenCandle(o, c float64) bool {
	// this may be adjusted based on whether it is considered to be green if open price equals close price.
	return c >= o
}

func Clamp[T constraints.Ordered](v, lo, hi T) T {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Calculate the number of segments for a plot grid
func CalcNumSegments(pos int, margin int, grid int) int {
	if grid == 0 {
		return 0
	}
	return max((pos-margin+grid)/grid, 0)
}
