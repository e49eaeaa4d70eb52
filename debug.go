// SPDX-FileCopyrightText: © 2025 Galvanized Logic Inc.
// SPDX-License-Identifier: BSD-2-Clause

package hqz

import (
	"github.com/gazed/hqz/geom"
	"github.com/gazed/hqz/spectrum"
)

// debugOverlayColor is a dim, fully desaturated weight (spec section
// 9's "faint lines") so the quadtree overlay never competes visually
// with traced light.
var debugOverlayColor = spectrum.RGB{R: 512, G: 512, B: 512}

// drawQuadtreeDebugOverlay draws every internal quadtree node's split
// line into the histogram, restored from
// original_source/hqz/src/zrender.cpp's debug bitfield (bit 0, spec
// section 6's scene.debug field) — dropped from the distillation but
// useful enough during scene authoring to keep.
func (r *Renderer) drawQuadtreeDebugOverlay() {
	if r.scene.Debug&1 == 0 {
		return
	}
	for _, b := range r.tracer.Quadtree.Boundaries() {
		p0 := r.project(geom.Vec2{X: b.X0, Y: b.Y0})
		p1 := r.project(geom.Vec2{X: b.X1, Y: b.Y1})
		r.image.Line(debugOverlayColor, 1.0, p0.X, p0.Y, p1.X, p1.Y)
	}
}
