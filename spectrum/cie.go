// SPDX-FileCopyrightText: © 2025 Galvanized Logic Inc.
// SPDX-License-Identifier: BSD-2-Clause

package spectrum

import (
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// buildTable fills the wavelength->RGB lookup with the CIE 1931 2°
// standard observer, converted to sRGB-primary linear RGB and scaled by
// tableScale (spec section 4.3).
//
// Rather than embed the ~470-row tristimulus table verbatim, the
// tristimulus values are evaluated from the Wyman/Sloan/Shirley
// multi-lobe Gaussian fit ("Simple Analytic Approximations to the CIE
// XYZ Color Matching Functions", JCGT 2013), which reproduces the
// standard observer within the precision this renderer needs. The
// XYZ->linear-RGB step reuses go-colorful's sRGB conversion instead of
// hand-rolling the 3x3 primary matrix, the same way
// other_examples/85b282df_allenk-hdr's iCAM06 tone-mapper builds its
// XYZ<->RGB pipeline on top of the same library.
func buildTable() {
	for i := range table {
		wl := minWavelength + float64(i)
		x, y, z := cieXYZ(wl)
		table[i] = xyzToScaledRGB(x, y, z)
	}
}

func xyzToScaledRGB(x, y, z float64) RGB {
	r, g, b := colorful.Xyz(x, y, z).LinearRgb()
	return RGB{
		R: int32(math.Round(r * tableScale)),
		G: int32(math.Round(g * tableScale)),
		B: int32(math.Round(b * tableScale)),
	}
}

// cieXYZ evaluates the CIE 1931 2° observer's tristimulus response at
// wavelength nm.
func cieXYZ(wl float64) (x, y, z float64) {
	return cieX(wl), cieY(wl), cieZ(wl)
}

func gauss(x, mu, sigma1, sigma2 float64) float64 {
	sigma := sigma2
	if x < mu {
		sigma = sigma1
	}
	t := (x - mu) * sigma
	return math.Exp(-0.5 * t * t)
}

func cieX(wl float64) float64 {
	return 0.362*gauss(wl, 442.0, 0.0624, 0.0374) +
		1.056*gauss(wl, 599.8, 0.0264, 0.0323) -
		0.065*gauss(wl, 501.1, 0.0490, 0.0382)
}

func cieY(wl float64) float64 {
	return 0.821*gauss(wl, 568.8, 0.0213, 0.0247) +
		0.286*gauss(wl, 530.9, 0.0613, 0.0322)
}

func cieZ(wl float64) float64 {
	return 1.217*gauss(wl, 437.0, 0.0845, 0.0278) +
		0.681*gauss(wl, 459.0, 0.0385, 0.0725)
}
