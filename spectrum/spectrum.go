// SPDX-FileCopyrightText: © 2025 Galvanized Logic Inc.
// SPDX-License-Identifier: BSD-2-Clause

// Package spectrum converts wavelengths to linear-RGB photon weights
// and samples blackbody wavelengths, per spec section 4.3.
package spectrum

// RGB is a linear-RGB photon weight, scaled by tableScale and quantized
// to signed integers in roughly [-32768,32767].
type RGB struct {
	R, G, B int32
}

// Visible reports whether any channel of c is nonzero.
func (c RGB) Visible() bool { return c.R != 0 || c.G != 0 || c.B != 0 }

const (
	minWavelength = 360.0
	maxWavelength = 830.0
	// tableScale matches spec section 4.3: the CIE table is scaled by
	// 8192 before being stored as integers, giving the tracer headroom
	// for accumulating many additive bounces without losing precision
	// to rounding on each one.
	tableScale = 8192.0
)

// table holds RGB weights for every integer nanometer from
// minWavelength to maxWavelength inclusive, built once in init().
var table [int(maxWavelength-minWavelength) + 1]RGB

func init() {
	buildTable()
}

// ToRGB converts a wavelength (nm) to a linear-RGB photon weight.
// λ outside [360,830] yields the zero color (spec section 3). The
// sentinel λ==0 means monochromatic white: a neutral, fully visible
// weight independent of the table.
func ToRGB(wavelength float64) RGB {
	if wavelength == 0 {
		return RGB{R: tableScale, G: tableScale, B: tableScale}
	}
	if wavelength < minWavelength || wavelength > maxWavelength {
		return RGB{}
	}
	i := int(wavelength - minWavelength)
	if i < 0 {
		i = 0
	}
	if i > len(table)-1 {
		i = len(table) - 1
	}
	return table[i]
}
