// SPDX-FileCopyrightText: © 2025 Galvanized Logic Inc.
// SPDX-License-Identifier: BSD-2-Clause

package geom

import (
	"math"
	"testing"
)

func almostEqual(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestVec2Unit(t *testing.T) {
	v := Vec2{3, 4}.Unit()
	if !almostEqual(v.Len(), 1) {
		t.Errorf("expected unit length, got %v", v.Len())
	}
}

func TestVec2UnitZero(t *testing.T) {
	v := Vec2{0, 0}.Unit()
	if v.X != 0 || v.Y != 0 {
		t.Errorf("expected zero vector unchanged, got %v", v)
	}
}

func TestRayWithDirRecomputesSlope(t *testing.T) {
	r := NewRay(Vec2{0, 0}, Vec2{1, 0})
	r = r.WithDir(Vec2{1, 1})
	if !almostEqual(r.Slope, 1) {
		t.Errorf("expected slope 1 after WithDir, got %v", r.Slope)
	}
}

func TestReflect(t *testing.T) {
	d := Vec2{1, -1}
	n := Vec2{0, 1}
	got := d.Reflect(n)
	want := Vec2{1, 1}
	if !almostEqual(got.X, want.X) || !almostEqual(got.Y, want.Y) {
		t.Errorf("reflect(%v, %v) = %v, want %v", d, n, got, want)
	}
}

func TestIntersectSegmentHit(t *testing.T) {
	r := NewRay(Vec2{0, 0}, Vec2{1, 0})
	// vertical segment crossing the ray's path at x=5.
	tt, alpha, ok := IntersectSegment(r, Vec2{5, -5}, Vec2{0, 10})
	if !ok {
		t.Fatal("expected a hit")
	}
	if !almostEqual(tt, 5) {
		t.Errorf("expected t=5, got %v", tt)
	}
	if !almostEqual(alpha, 0.5) {
		t.Errorf("expected alpha=0.5, got %v", alpha)
	}
}

func TestIntersectSegmentParallelMiss(t *testing.T) {
	r := NewRay(Vec2{0, 0}, Vec2{1, 0})
	_, _, ok := IntersectSegment(r, Vec2{0, 1}, Vec2{10, 0})
	if ok {
		t.Error("parallel, non-collinear segment should not report a hit")
	}
}

func TestIntersectSegmentBehindRay(t *testing.T) {
	r := NewRay(Vec2{0, 0}, Vec2{1, 0})
	_, _, ok := IntersectSegment(r, Vec2{-5, -5}, Vec2{0, 10})
	if ok {
		t.Error("segment behind the ray origin should not report a hit")
	}
}

func TestIntersectAABBEntersAndExits(t *testing.T) {
	r := NewRay(Vec2{-5, 0}, Vec2{1, 0})
	box := AABB{Left: -1, Top: -1, Right: 1, Bottom: 1}
	near, far, ok := IntersectAABB(r, box)
	if !ok {
		t.Fatal("expected ray to enter box")
	}
	if !almostEqual(near, 4) || !almostEqual(far, 6) {
		t.Errorf("expected near=4 far=6, got near=%v far=%v", near, far)
	}
}

func TestIntersectAABBMiss(t *testing.T) {
	r := NewRay(Vec2{-5, 10}, Vec2{1, 0})
	box := AABB{Left: -1, Top: -1, Right: 1, Bottom: 1}
	if _, _, ok := IntersectAABB(r, box); ok {
		t.Error("expected ray passing above the box to miss")
	}
}

func TestAABBContains(t *testing.T) {
	box := AABB{Left: 0, Top: 0, Right: 10, Bottom: 10}
	if !box.Contains(Vec2{5, 5}) {
		t.Error("expected center point to be contained")
	}
	if box.Contains(Vec2{11, 5}) {
		t.Error("expected point outside box to not be contained")
	}
}
