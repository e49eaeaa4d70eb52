// SPDX-FileCopyrightText: © 2025 Galvanized Logic Inc.
// SPDX-License-Identifier: BSD-2-Clause

package quadtree

import (
	"github.com/gazed/hqz/geom"
	"github.com/gazed/hqz/sample"
	"github.com/gazed/hqz/scene"
)

// sampleGeometry draws the concrete segment (origin, extent, material
// ID) for obj. Every field is independently sampleable (spec section
// 3), so this is called once per query per candidate object rather than
// cached, matching the original implementation's ZObject::rayIntersect.
func sampleGeometry(obj scene.Object, s *sample.Sampler) (p, d geom.Vec2, materialID int) {
	p = geom.Vec2{X: s.Value(obj.X), Y: s.Value(obj.Y)}
	d = geom.Vec2{X: s.Value(obj.DX), Y: s.Value(obj.DY)}
	materialID = int(s.Value(obj.MaterialID))
	return p, d, materialID
}
