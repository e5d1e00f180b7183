// Package yearly calculates report metrics for a single calendar year of
// deduplicated facility records. Every function here is a pure transform of
// its inputs, usually applied per year-partition by the summarize package.
//
// Missing values are NaN throughout. A product with a NaN factor contributes
// nothing to a sum (mirroring how unreported cells behave upstream), and a
// rate with a zero denominator is NaN rather than zero or an error.
package yearly

import "math"

// sumSkipNaN accumulates v into sum, ignoring NaN terms. A sum of nothing but
// NaN terms stays 0.
func sumSkipNaN(sum, v float64) float64 {
	if math.IsNaN(v) {
		return sum
	}
	return sum + v
}

// recyclingRate is diverted / (diverted + landfilled) * 100. NaN when the
// denominator is zero.
func recyclingRate(diverted, landfilled float64) float64 {
	return diverted / (diverted + landfilled) * 100
}

// orZero maps NaN to 0. Used where the upstream policy is to treat a missing
// modifier as "fully in-state" or "fully MSW".
func orZero(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return v
}
