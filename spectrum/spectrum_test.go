// SPDX-FileCopyrightText: © 2025 Galvanized Logic Inc.
// SPDX-License-Identifier: BSD-2-Clause

package spectrum

import "testing"

func TestOutOfBandIsZero(t *testing.T) {
	for _, wl := range []float64{0 - 1, 100, 359, 831, 1200} {
		if wl == 0 {
			continue
		}
		c := ToRGB(wl)
		if wl < minWavelength || wl > maxWavelength {
			if c.Visible() {
				t.Errorf("ToRGB(%v) = %+v, want zero color", wl, c)
			}
		}
	}
}

func TestMonochromeSentinelIsVisible(t *testing.T) {
	c := ToRGB(0)
	if !c.Visible() {
		t.Error("ToRGB(0) should be the visible monochrome-white sentinel")
	}
	if c.R != c.G || c.G != c.B {
		t.Errorf("expected neutral weight, got %+v", c)
	}
}

func TestGreenDominatesAt550(t *testing.T) {
	c := ToRGB(550)
	if c.G <= c.R || c.G <= c.B {
		t.Errorf("expected green to dominate at 550nm, got %+v", c)
	}
}

func TestRedDominatesAt650(t *testing.T) {
	c := ToRGB(650)
	if c.R <= c.G {
		t.Errorf("expected red to dominate over green at 650nm, got %+v", c)
	}
}

func TestBlackbodyWavelengthInRange(t *testing.T) {
	for _, temp := range []float64{2000, 5000, 6500, 9000} {
		for _, u := range []float64{0, 0.25, 0.5, 0.75, 0.999} {
			wl := BlackbodyWavelength(temp, u)
			if wl < minWavelength || wl > maxWavelength {
				t.Errorf("BlackbodyWavelength(%v, %v) = %v, out of range", temp, u, wl)
			}
		}
	}
}

func TestBlackbodyMonotonicInU(t *testing.T) {
	prev := BlackbodyWavelength(5000, 0.01)
	for _, u := range []float64{0.1, 0.3, 0.5, 0.7, 0.9} {
		wl := BlackbodyWavelength(5000, u)
		if wl < prev {
			t.Errorf("expected non-decreasing wavelength as u increases, got %v after %v", wl, prev)
		}
		prev = wl
	}
}

func TestBlackbodyShiftsBluerAsTempRises(t *testing.T) {
	// A hotter blackbody's spectral peak shifts toward shorter
	// (bluer) wavelengths (Wien's law); check the CDF midpoint moves
	// the same direction as a coarse proxy.
	cool := BlackbodyWavelength(2000, 0.5)
	hot := BlackbodyWavelength(10000, 0.5)
	if hot >= cool {
		t.Errorf("expected hotter blackbody median wavelength (%v) < cooler (%v)", hot, cool)
	}
}
