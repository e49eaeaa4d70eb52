// SPDX-FileCopyrightText: © 2025 Galvanized Logic Inc.
// SPDX-License-Identifier: BSD-2-Clause

// Package geom provides the 2D vector, bounding-box, and ray primitives
// used by the tracer and spatial index. Types are plain values: unlike
// vu/math/lin's pointer-receiver, mutate-in-place vectors, geom favours
// value semantics so a Ray's direction and cached slope can never drift
// out of sync behind a caller's back.
package geom

import "math"

// Vec2 is a 2D point or direction.
type Vec2 struct {
	X, Y float64
}

// Add returns v+a.
func (v Vec2) Add(a Vec2) Vec2 { return Vec2{v.X + a.X, v.Y + a.Y} }

// Sub returns v-a.
func (v Vec2) Sub(a Vec2) Vec2 { return Vec2{v.X - a.X, v.Y - a.Y} }

// Scale returns v scaled by s.
func (v Vec2) Scale(s float64) Vec2 { return Vec2{v.X * s, v.Y * s} }

// Dot returns the dot product of v and a.
func (v Vec2) Dot(a Vec2) float64 { return v.X*a.X + v.Y*a.Y }

// Len returns the Euclidean length of v.
func (v Vec2) Len() float64 { return math.Sqrt(v.Dot(v)) }

// Unit returns v normalized to length 1. The zero vector is returned
// unchanged.
func (v Vec2) Unit() Vec2 {
	l := v.Len()
	if l == 0 {
		return v
	}
	return v.Scale(1 / l)
}

// Normal returns the outward normal of a directed segment with
// direction v: (-dy, dx).
func (v Vec2) Normal() Vec2 { return Vec2{-v.Y, v.X} }

// Reflect returns v reflected about the surface with normal n (n need
// not be unit length; it is normalized internally).
func (v Vec2) Reflect(n Vec2) Vec2 {
	u := n.Unit()
	return v.Sub(u.Scale(2 * v.Dot(u)))
}

// AABB is an axis-aligned bounding box with Left<=Right, Top<=Bottom.
type AABB struct {
	Left, Top, Right, Bottom float64
}

// Contains reports whether p lies within the box, inclusive of edges.
func (b AABB) Contains(p Vec2) bool {
	return p.X >= b.Left && p.X <= b.Right && p.Y >= b.Top && p.Y <= b.Bottom
}

// Width returns Right-Left.
func (b AABB) Width() float64 { return b.Right - b.Left }

// Height returns Bottom-Top.
func (b AABB) Height() float64 { return b.Bottom - b.Top }

// Union returns the smallest box containing both b and a.
func (b AABB) Union(a AABB) AABB {
	return AABB{
		Left:   math.Min(b.Left, a.Left),
		Top:    math.Min(b.Top, a.Top),
		Right:  math.Max(b.Right, a.Right),
		Bottom: math.Max(b.Bottom, a.Bottom),
	}
}

// Ray is a half-line Origin + t*Dir, t>=0. Slope is dy/dx, kept in
// sync with Dir by construction — every Ray is built through NewRay or
// WithDir so the invariant never needs a runtime check.
type Ray struct {
	Origin Vec2
	Dir    Vec2
	Slope  float64
}

// NewRay builds a Ray from an origin and direction, computing Slope.
func NewRay(origin, dir Vec2) Ray {
	return Ray{Origin: origin, Dir: dir, Slope: slopeOf(dir)}
}

// WithDir returns a copy of r with a new direction and recomputed slope.
func (r Ray) WithDir(dir Vec2) Ray {
	r.Dir = dir
	r.Slope = slopeOf(dir)
	return r
}

// WithOrigin returns a copy of r relocated to origin.
func (r Ray) WithOrigin(origin Vec2) Ray {
	r.Origin = origin
	return r
}

// At returns the point at parameter t along the ray.
func (r Ray) At(t float64) Vec2 { return r.Origin.Add(r.Dir.Scale(t)) }

func slopeOf(dir Vec2) float64 {
	if dir.X == 0 {
		return math.Inf(1)
	}
	return dir.Y / dir.X
}

// IntersectSegment solves for the ray/segment intersection where the
// segment runs from p to p+d, parameterized p+alpha*d, alpha in [0,1],
// and the ray is origin+t*dir, t>=0. It follows spec section 4.4: solve
// for alpha first using the ray's cached slope to reject non-hits
// cheaply, then recover t from the x equation.
//
// ok is false when the ray and segment are parallel or the intersection
// falls outside the valid alpha/t ranges.
func IntersectSegment(r Ray, p, d Vec2) (t, alpha float64, ok bool) {
	// Ray: y - r.Origin.Y = slope * (x - r.Origin.X), for dir.X != 0.
	// Using two cases keeps the division well-conditioned regardless of
	// which axis the ray is closer to parallel with.
	if math.Abs(r.Dir.X) >= math.Abs(r.Dir.Y) {
		if r.Dir.X == 0 {
			return 0, 0, false
		}
		denom := d.Y - r.Slope*d.X
		if denom == 0 {
			return 0, 0, false
		}
		alpha = (r.Slope*(p.X-r.Origin.X) - (p.Y - r.Origin.Y)) / denom
		if alpha < 0 || alpha > 1 {
			return 0, 0, false
		}
		hitX := p.X + alpha*d.X
		t = (hitX - r.Origin.X) / r.Dir.X
	} else {
		if r.Dir.Y == 0 {
			return 0, 0, false
		}
		invSlope := r.Dir.X / r.Dir.Y
		denom := d.X - invSlope*d.Y
		if denom == 0 {
			return 0, 0, false
		}
		alpha = (invSlope*(p.Y-r.Origin.Y) - (p.X - r.Origin.X)) / denom
		if alpha < 0 || alpha > 1 {
			return 0, 0, false
		}
		hitY := p.Y + alpha*d.Y
		t = (hitY - r.Origin.Y) / r.Dir.Y
	}
	if t < 0 {
		return 0, 0, false
	}
	return t, alpha, true
}

// IntersectAABB returns whether the ray enters b and, if so, the
// nearest and farthest hit parameters. Implemented by intersecting the
// ray against the box's four bounding segments per spec section 4.4.
func IntersectAABB(r Ray, b AABB) (tNear, tFar float64, ok bool) {
	corners := [4]Vec2{
		{b.Left, b.Top}, {b.Right, b.Top}, {b.Right, b.Bottom}, {b.Left, b.Bottom},
	}
	tNear = math.Inf(1)
	tFar = math.Inf(-1)
	found := false
	for i := 0; i < 4; i++ {
		p := corners[i]
		q := corners[(i+1)%4]
		d := q.Sub(p)
		if t, _, hit := IntersectSegment(r, p, d); hit {
			found = true
			if t < tNear {
				tNear = t
			}
			if t > tFar {
				tFar = t
			}
		}
	}
	if !found {
		// Ray origin may be inside the box with both exit edges
		// collinear to an axis; fall back to the slab test.
		return intersectAABBSlab(r, b)
	}
	return tNear, tFar, true
}

// ClipAABB clips the ray to b with the slab method. Unlike IntersectAABB,
// tNear is 0 when the origin already lies inside b.
func ClipAABB(r Ray, b AABB) (tNear, tFar float64, ok bool) { return intersectAABBSlab(r, b) }

// intersectAABBSlab is the classic slab method, used as a fallback for
// axis-aligned rays where the segment-based sweep above can miss due to
// collinearity with a box edge.
func intersectAABBSlab(r Ray, b AABB) (tNear, tFar float64, ok bool) {
	tMin, tMax := math.Inf(-1), math.Inf(1)
	if r.Dir.X != 0 {
		tx1 := (b.Left - r.Origin.X) / r.Dir.X
		tx2 := (b.Right - r.Origin.X) / r.Dir.X
		tMin, tMax = minmax(tMin, tMax, tx1, tx2)
	} else if r.Origin.X < b.Left || r.Origin.X > b.Right {
		return 0, 0, false
	}
	if r.Dir.Y != 0 {
		ty1 := (b.Top - r.Origin.Y) / r.Dir.Y
		ty2 := (b.Bottom - r.Origin.Y) / r.Dir.Y
		tMin, tMax = minmax(tMin, tMax, ty1, ty2)
	} else if r.Origin.Y < b.Top || r.Origin.Y > b.Bottom {
		return 0, 0, false
	}
	if tMax < math.Max(tMin, 0) {
		return 0, 0, false
	}
	return math.Max(tMin, 0), tMax, true
}

func minmax(tMin, tMax, a, b float64) (float64, float64) {
	lo, hi := a, b
	if lo > hi {
		lo, hi = hi, lo
	}
	return math.Max(tMin, lo), math.Min(tMax, hi)
}
