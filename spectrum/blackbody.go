// SPDX-FileCopyrightText: © 2025 Galvanized Logic Inc.
// SPDX-License-Identifier: BSD-2-Clause

package spectrum

import (
	"math"
	"sync"
)

// cdfSteps is the resolution of the per-temperature CDF used for
// inverse-CDF wavelength sampling. 1nm matches the tristimulus table.
const cdfSteps = int(maxWavelength-minWavelength) + 1

// blackbodyCache memoizes the normalized CDF for each temperature seen
// so far: a render may draw millions of samples at the same T (a single
// light's wavelength field), and Planck's law is comparatively
// expensive to re-integrate on every draw.
var blackbodyCache sync.Map // float64 -> []float64 (cdf, length cdfSteps)

// BlackbodyWavelength returns a wavelength (nm) in [360,830] sampled
// from the normalized Planck spectral radiance at temperature t kelvin,
// using u (expected uniform in [0,1)) as the inverse-CDF argument. A
// non-positive t yields 0. See spec section 4.3.
func BlackbodyWavelength(t float64, u float64) float64 {
	if t <= 0 {
		return 0
	}
	cdf := cdfFor(t)
	// Binary search for the smallest index whose CDF value is >= u.
	lo, hi := 0, len(cdf)-1
	for lo < hi {
		mid := (lo + hi) / 2
		if cdf[mid] < u {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	return minWavelength + float64(lo)
}

func cdfFor(t float64) []float64 {
	if v, ok := blackbodyCache.Load(t); ok {
		return v.([]float64)
	}
	cdf := buildCDF(t)
	actual, _ := blackbodyCache.LoadOrStore(t, cdf)
	return actual.([]float64)
}

func buildCDF(t float64) []float64 {
	cdf := make([]float64, cdfSteps)
	total := 0.0
	for i := 0; i < cdfSteps; i++ {
		wl := minWavelength + float64(i)
		total += planck(wl*1e-9, t)
		cdf[i] = total
	}
	if total > 0 {
		for i := range cdf {
			cdf[i] /= total
		}
	}
	cdf[cdfSteps-1] = 1.0 // guard against float drift leaving the last bin short of 1.
	return cdf
}

// planck returns Planck's law spectral radiance (unnormalized; the
// physical constants cancel out once the CDF is normalized to 1, so
// only their relative scale across wavelengths matters here).
func planck(wavelengthMeters, t float64) float64 {
	const (
		h = 6.62607015e-34 // Planck constant
		c = 2.99792458e8   // speed of light
		k = 1.380649e-23   // Boltzmann constant
	)
	l5 := math.Pow(wavelengthMeters, 5)
	exponent := (h * c) / (wavelengthMeters * k * t)
	return (2 * h * c * c) / (l5 * (math.Exp(exponent) - 1))
}
