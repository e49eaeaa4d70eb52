// SPDX-FileCopyrightText: © 2025 Galvanized Logic Inc.
// SPDX-License-Identifier: BSD-2-Clause

package histogram

import (
	"math"

	"github.com/gazed/hqz/spectrum"
)

// Line draws a Wu antialiased line from (x0,y0) to (x1,y1), depositing
// c weighted by intensity and by a brightness-compensation factor that
// makes total deposited energy track true line length rather than
// horizontal extent (spec section 4.8). All four coordinates are in
// image space (fractional pixel coordinates are expected — the caller
// is responsible for any viewport projection).
func (img *Image) Line(c spectrum.RGB, intensity float64, x0, y0, x1, y1 float64) {
	dxTrue := x1 - x0
	dyTrue := y1 - y0
	length := math.Hypot(dxTrue, dyTrue)
	if length == 0 {
		// Degenerate zero-length line: emit a single point rather than
		// dividing by zero below (spec section 4.8, point 4).
		img.Plot(c, intensity, int(math.Round(x0)), int(math.Round(y0)))
		return
	}

	steep := math.Abs(dyTrue) > math.Abs(dxTrue)
	if steep {
		x0, y0 = y0, x0
		x1, y1 = y1, x1
	}
	if x0 > x1 {
		x0, x1 = x1, x0
		y0, y1 = y1, y0
	}

	dx := x1 - x0
	dy := y1 - y0
	gradient := 1.0
	if dx != 0 {
		gradient = dy / dx
	}

	// Brightness compensation: Wu's natural per-plot brightness is
	// proportional to dx (the major-axis run); scale every plot by
	// length/dx so total energy tracks the true segment length.
	compensation := length / dx

	plot := func(px, py float64, coverage float64) {
		ix, iy := int(px), int(py)
		if steep {
			ix, iy = iy, ix
		}
		img.Plot(c, intensity*compensation*coverage, ix, iy)
	}

	// First endpoint.
	xend := round(x0)
	yend := y0 + gradient*(xend-x0)
	xgap := rfpart(x0 + 0.5)
	xpxl1 := xend
	ypxl1 := ipart(yend)
	plot(xpxl1, ypxl1, rfpart(yend)*xgap)
	plot(xpxl1, ypxl1+1, fpart(yend)*xgap)
	intery := yend + gradient

	// Second endpoint.
	xend2 := round(x1)
	yend2 := y1 + gradient*(xend2-x1)
	xgap2 := fpart(x1 + 0.5)
	xpxl2 := xend2
	ypxl2 := ipart(yend2)
	plot(xpxl2, ypxl2, rfpart(yend2)*xgap2)
	plot(xpxl2, ypxl2+1, fpart(yend2)*xgap2)

	// Inner span.
	for px := xpxl1 + 1; px <= xpxl2-1; px++ {
		plot(px, ipart(intery), rfpart(intery))
		plot(px, ipart(intery)+1, fpart(intery))
		intery += gradient
	}
}

func ipart(x float64) float64  { return math.Floor(x) }
func round(x float64) float64  { return ipart(x + 0.5) }
func fpart(x float64) float64  { return x - math.Floor(x) }
func rfpart(x float64) float64 { return 1 - fpart(x) }
