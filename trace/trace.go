// SPDX-FileCopyrightText: © 2025 Galvanized Logic Inc.
// SPDX-License-Identifier: BSD-2-Clause

// Package trace implements the per-ray photon path algorithm: light
// selection, origin/direction construction, the bounce loop against a
// quadtree and material model, and the parallel batch dispatch that
// fans a batch of rays across worker goroutines. See spec section 4.7.
package trace

import (
	"math"
	"runtime"
	"sync"

	"github.com/gazed/hqz/geom"
	"github.com/gazed/hqz/material"
	"github.com/gazed/hqz/quadtree"
	"github.com/gazed/hqz/rng"
	"github.com/gazed/hqz/sample"
	"github.com/gazed/hqz/scene"
)

// noHitExtent bounds the "huge box" a ray is clipped against when it
// exits the scene without striking any object (spec section 4.7, point
// 4, and section 9's open question 2): large enough to dwarf any
// reasonable viewport, but finite so the exit point survives projection
// math without overflowing to Inf/NaN.
const noHitExtent = 1e7

// Vertex is one point along a Path: where the ray was when a bounce
// (or the final exit) happened.
type Vertex struct {
	Point geom.Vec2
}

// Path is one traced photon: its origin, sampled wavelength, and the
// ordered polyline of bounce vertices culminating in the scene-exit
// point (spec section 3).
type Path struct {
	Origin     geom.Vec2
	Wavelength float64
	Vertices   []Vertex
}

// Tracer binds a validated scene and its spatial index to the baseSeed
// that traceRays advances batch over batch (spec section 4.7, point 5).
type Tracer struct {
	Scene    *scene.Config
	Quadtree *quadtree.Tree
	BaseSeed uint32

	// Workers bounds how many goroutines a parallel batch is split
	// across. Zero means runtime.GOMAXPROCS(0) at trace time.
	Workers int
}

// New returns a Tracer over scn, whose objects have already been built
// into tree.
func New(scn *scene.Config, tree *quadtree.Tree, baseSeed uint32) *Tracer {
	return &Tracer{Scene: scn, Quadtree: tree, BaseSeed: baseSeed}
}

// TraceRays samples n independent photon paths into out[:n] (out must
// have length >= n), dispatching across worker goroutines when
// Scene.Parallel is set (spec section 4.7 "Parallel batch"), and
// advances t.BaseSeed by n so the next call continues the sequence
// (spec section 4.7, point 5).
func (t *Tracer) TraceRays(out []Path, n int) {
	base := t.BaseSeed
	if t.Scene.Parallel {
		t.traceParallel(out, n, base)
	} else {
		for k := 0; k < n; k++ {
			out[k] = t.traceOne(base + uint32(k))
		}
	}
	t.BaseSeed = base + uint32(n)
}

// traceParallel splits [0,n) into contiguous index ranges, one per
// worker, rather than the teacher's dynamic channel-of-rows (eg/rt.go's
// worker func draining a shared rows channel): spec section 5 requires
// each worker to own a fixed sub-range of ray indices so batch output
// order is independent of goroutine scheduling, which a work-stealing
// channel does not guarantee on its own (a worker could finish row 3
// before row 1 and still write to the correct slot here only because
// each worker owns disjoint, pre-assigned slots — no slot is ever
// written by two goroutines).
func (t *Tracer) traceParallel(out []Path, n int, base uint32) {
	workers := t.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers > n {
		workers = n
	}
	if workers <= 1 {
		for k := 0; k < n; k++ {
			out[k] = t.traceOne(base + uint32(k))
		}
		return
	}

	chunk := (n + workers - 1) / workers
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		lo := w * chunk
		hi := lo + chunk
		if hi > n {
			hi = n
		}
		if lo >= hi {
			continue
		}
		wg.Add(1)
		go func(lo, hi int) {
			defer wg.Done()
			for k := lo; k < hi; k++ {
				out[k] = t.traceOne(base + uint32(k))
			}
		}(lo, hi)
	}
	wg.Wait()
}

// traceOne runs the per-ray algorithm of spec section 4.7 for ray seed.
func (t *Tracer) traceOne(seed uint32) Path {
	s := sample.New(rng.New(seed))

	light := t.selectLight(s)
	origin, ray, wavelength := t.seedRay(light, s)

	path := Path{Origin: origin, Wavelength: wavelength}
	path.Vertices = append(path.Vertices, Vertex{Point: origin})

	exclude := -1
	maxReflection := t.Scene.MaxReflection
	if maxReflection <= 0 {
		maxReflection = 1000
	}

	for bounce := 0; bounce < maxReflection; bounce++ {
		hit, hitPoint, hitNormal, hitMaterial, ok := t.closestHit(ray, exclude, s)
		path.Vertices = append(path.Vertices, Vertex{Point: hitPoint})
		if !ok {
			// Ray exits the scene without striking anything: the
			// vertex above already records the clipped exit point.
			break
		}

		matPoint := material.Point{Position: hitPoint, Normal: hitNormal}
		var materials scene.Material
		if hitMaterial >= 0 && hitMaterial < len(t.Scene.Materials) {
			materials = t.Scene.Materials[hitMaterial]
		}

		next, continues := material.Dispatch(materials, matPoint, ray, s)
		if !continues {
			break
		}
		ray = next
		exclude = hit.ObjectIndex
	}

	return path
}

// selectLight performs power-weighted light selection across
// Scene.Lights (spec section 4.7, point 2): weights are drawn freshly
// from each light's power value so random-variable power is respected,
// with a fast path when there is exactly one light.
func (t *Tracer) selectLight(s *sample.Sampler) scene.Light {
	lights := t.Scene.Lights
	if len(lights) == 1 {
		return lights[0]
	}

	weights := make([]float64, len(lights))
	total := 0.0
	for i, l := range lights {
		w := s.Value(l.Power)
		if w < 0 {
			w = 0
		}
		weights[i] = w
		total += w
	}
	if total <= 0 {
		return lights[0]
	}

	u := s.Source.Uniform(0, total)
	sum := 0.0
	for i, w := range weights {
		sum += w
		if u <= sum {
			return lights[i]
		}
	}
	return lights[len(lights)-1]
}

// seedRay builds the initial ray origin and direction for light (spec
// section 4.7, point 3): a polar offset from the light's (x,y) gives
// the emission point, rayAngleDeg gives the initial direction, and the
// wavelength is sampled once and carried for the path's lifetime.
func (t *Tracer) seedRay(light scene.Light, s *sample.Sampler) (origin geom.Vec2, ray geom.Ray, wavelength float64) {
	x := s.Value(light.X)
	y := s.Value(light.Y)
	polarAngle := s.Value(light.PolarAngleDeg) * math.Pi / 180
	polarDistance := s.Value(light.PolarDistance)
	rayAngle := s.Value(light.RayAngleDeg) * math.Pi / 180

	origin = geom.Vec2{
		X: x + math.Cos(polarAngle)*polarDistance,
		Y: y + math.Sin(polarAngle)*polarDistance,
	}
	dir := geom.Vec2{X: math.Cos(rayAngle), Y: math.Sin(rayAngle)}
	ray = geom.NewRay(origin, dir)

	wavelength = s.Value(light.Wavelength)
	return origin, ray, wavelength
}

// closestHit queries the quadtree and falls back to the finite no-hit
// extension described at the package level when nothing is struck
// (spec section 4.7, point 4, and section 9's open question 2).
func (t *Tracer) closestHit(ray geom.Ray, exclude int, s *sample.Sampler) (hit quadtree.Hit, point, normal geom.Vec2, materialID int, ok bool) {
	hit, found := t.Quadtree.Query(ray, exclude, s)
	if found {
		return hit, hit.Point, hit.Normal, hit.MaterialID, true
	}

	bounds := geom.AABB{
		Left: ray.Origin.X - noHitExtent, Top: ray.Origin.Y - noHitExtent,
		Right: ray.Origin.X + noHitExtent, Bottom: ray.Origin.Y + noHitExtent,
	}
	_, tFar, enters := geom.IntersectAABB(ray, bounds)
	if !enters {
		return quadtree.Hit{}, ray.Origin, geom.Vec2{}, -1, false
	}
	return quadtree.Hit{}, ray.At(tFar), geom.Vec2{}, -1, false
}
