// SPDX-FileCopyrightText: © 2025 Galvanized Logic Inc.
// SPDX-License-Identifier: BSD-2-Clause

package quadtree

import (
	"math"

	"github.com/gazed/hqz/geom"
	"github.com/gazed/hqz/sample"
)

// Query finds the closest intersection of ray with the tree's objects,
// excluding the object at index exclude (-1 to exclude none), per spec
// section 4.5: depth-first, front-to-back by clipped tNear, testing
// local objects at each node after both children have been visited.
//
// Implemented recursively rather than with spec section 9's suggested
// explicit-stack iteration — the per-candidate cost here is dominated
// by sampleGeometry's scene.Value draws, not by call overhead, so the
// iterative form wouldn't move the needle and recursion keeps the
// front-to-back ordering rules easy to verify against spec section 4.5.
func (t *Tree) Query(ray geom.Ray, exclude int, s *sample.Sampler) (Hit, bool) {
	best := Hit{T: math.Inf(1)}
	found := t.query(&t.root, ray, exclude, s, &best)
	return best, found
}

func (t *Tree) query(n *node, ray geom.Ray, exclude int, s *sample.Sampler, best *Hit) bool {
	found := false

	if n.left != noChild || n.right != noChild {
		left := &t.nodes[n.left]
		right := &t.nodes[n.right]

		leftNear, _, leftHit := geom.ClipAABB(ray, left.bounds)
		rightNear, _, rightHit := geom.ClipAABB(ray, right.bounds)

		firstNode, secondNode := left, right
		firstHit, secondHit := leftHit, rightHit
		firstNear, secondNear := leftNear, rightNear
		if rightHit && (!leftHit || rightNear < leftNear) {
			firstNode, secondNode = right, left
			firstHit, secondHit = rightHit, leftHit
			firstNear, secondNear = rightNear, leftNear
		}

		if firstHit && firstNear < best.T {
			if t.query(firstNode, ray, exclude, s, best) {
				found = true
			}
		}
		if secondHit && secondNear < best.T {
			if t.query(secondNode, ray, exclude, s, best) {
				found = true
			}
		}
	}

	for _, idx := range n.objects {
		i := int(idx)
		if i == exclude {
			continue
		}
		p, d, materialID := sampleGeometry(t.objects[i], s)
		tt, _, ok := geom.IntersectSegment(ray, p, d)
		if !ok || tt >= best.T {
			continue
		}
		best.T = tt
		best.Point = ray.At(tt)
		best.Normal = d.Normal()
		best.ObjectIndex = i
		best.MaterialID = materialID
		found = true
	}

	return found
}
