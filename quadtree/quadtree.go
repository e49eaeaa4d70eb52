// SPDX-FileCopyrightText: © 2025 Galvanized Logic Inc.
// SPDX-License-Identifier: BSD-2-Clause

// Package quadtree is the static spatial index over scene line-segment
// objects used to accelerate closest-hit queries, per spec section 4.5.
//
// Node ownership follows the "index-based arena" design note from spec
// section 9 rather than the teacher's heap-node-with-pointers style
// (physics/collider.go, physics/gjk.go): nodes live in one flat slice
// with int32 child indices, -1 meaning "no child", so the whole tree is
// one contiguous allocation built once per render and never mutated
// again.
package quadtree

import (
	"github.com/gazed/hqz/geom"
	"github.com/gazed/hqz/sample"
	"github.com/gazed/hqz/scene"
)

// Hit is the result of a successful closest-hit query.
type Hit struct {
	T           float64
	Point       geom.Vec2
	Normal      geom.Vec2
	ObjectIndex int
	MaterialID  int
}

const noChild = -1

// maxObjectsPerLeaf bounds how many objects a node holds before the
// builder tries to split it further.
const maxObjectsPerLeaf = 8

// maxDepth caps recursion depth for pathological inputs (many
// coincident objects that all straddle every split).
const maxDepth = 24

type node struct {
	axisY       bool // true: split partitions Y; false: partitions X.
	split       float64
	left, right int32     // child node indices, noChild if absent.
	bounds      geom.AABB // this node's spatial extent.
	objects     []int32   // indices into Tree.objects straddling this node (or all objects, for a leaf).
}

// Tree is a built, read-only spatial index. The zero value is not
// usable; construct with Build.
type Tree struct {
	objects []scene.Object
	refs    []reference // build-time sampled geometry, used only to decide splits and bounds.
	root    node
	nodes   []node // every non-root node, indexed by node.left/node.right.
}

// reference is one build-time sample of an object's geometry, used
// purely to place it in the spatial index. The live geometry used for
// the actual intersection test is re-sampled at query time (see
// sampleGeometry) so objects with randomized fields still vary per ray,
// matching the original implementation's ZObject::rayIntersect, which
// samples fresh on every query rather than caching a fixed segment.
type reference struct {
	p, d  geom.Vec2
	aabb  geom.AABB
}

// Build constructs a Tree over objects. s supplies one build-time
// sample per object purely to decide where it lands in the spatial
// partition; objects with constant (non-randomized) fields get an
// exact bounds, and objects with randomized fields get a
// representative one, which only affects how quickly a query finds
// them, never correctness — the exact geometry is always re-sampled at
// query time.
func Build(objects []scene.Object, s *sample.Sampler) *Tree {
	t := &Tree{objects: objects}
	t.refs = make([]reference, len(objects))
	worldBounds := geom.AABB{Left: infNeg(), Top: infNeg(), Right: infPos(), Bottom: infPos()}
	allIdx := make([]int32, len(objects))
	for i, obj := range objects {
		p, d, _ := sampleGeometry(obj, s)
		t.refs[i] = reference{p: p, d: d, aabb: segmentAABB(p, d)}
		allIdx[i] = int32(i)
	}
	t.root = t.build(allIdx, worldBounds, false, 0)
	return t
}

// build recursively partitions idx (indices into t.objects) along
// alternating axes, returning the constructed node. Objects whose AABB
// doesn't fit entirely within one side of the split remain at this
// node ("straddling", per spec section 3).
func (t *Tree) build(idx []int32, bounds geom.AABB, axisY bool, depth int) node {
	n := node{axisY: axisY, bounds: bounds}
	if len(idx) <= maxObjectsPerLeaf || depth >= maxDepth {
		n.left, n.right = noChild, noChild
		n.objects = idx
		return n
	}

	split := medianSplit(t.refs, idx, axisY)
	n.split = split

	var leftIdx, rightIdx, hereIdx []int32
	for _, i := range idx {
		b := t.refs[i].aabb
		lo, hi := b.Left, b.Right
		if axisY {
			lo, hi = b.Top, b.Bottom
		}
		switch {
		case hi <= split:
			leftIdx = append(leftIdx, i)
		case lo >= split:
			rightIdx = append(rightIdx, i)
		default:
			hereIdx = append(hereIdx, i)
		}
	}

	// A split that fails to separate anything (e.g. all objects
	// straddle, or are collinear) degenerates to a leaf rather than
	// recursing forever.
	if len(leftIdx) == 0 && len(rightIdx) == 0 {
		n.left, n.right = noChild, noChild
		n.objects = idx
		return n
	}

	n.objects = hereIdx

	leftBounds, rightBounds := bounds, bounds
	if axisY {
		leftBounds.Bottom, rightBounds.Top = split, split
	} else {
		leftBounds.Right, rightBounds.Left = split, split
	}

	leftNode := t.build(leftIdx, leftBounds, !axisY, depth+1)
	t.nodes = append(t.nodes, leftNode)
	n.left = int32(len(t.nodes) - 1)

	rightNode := t.build(rightIdx, rightBounds, !axisY, depth+1)
	t.nodes = append(t.nodes, rightNode)
	n.right = int32(len(t.nodes) - 1)

	return n
}

func medianSplit(refs []reference, idx []int32, axisY bool) float64 {
	sum := 0.0
	for _, i := range idx {
		c := refs[i].aabb
		mid := (c.Left + c.Right) / 2
		if axisY {
			mid = (c.Top + c.Bottom) / 2
		}
		sum += mid
	}
	return sum / float64(len(idx))
}

func segmentAABB(p, d geom.Vec2) geom.AABB {
	q := p.Add(d)
	return geom.AABB{
		Left:   minf(p.X, q.X),
		Top:    minf(p.Y, q.Y),
		Right:  maxf(p.X, q.X),
		Bottom: maxf(p.Y, q.Y),
	}
}

func minf(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

func maxf(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

func infPos() float64 { return 1e18 }
func infNeg() float64 { return -1e18 }
