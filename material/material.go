// SPDX-FileCopyrightText: © 2025 Galvanized Logic Inc.
// SPDX-License-Identifier: BSD-2-Clause

// Package material implements the probabilistic per-bounce outcome
// dispatch from spec section 4.6/4.1.
package material

import (
	"math"

	"github.com/gazed/hqz/geom"
	"github.com/gazed/hqz/sample"
	"github.com/gazed/hqz/scene"
)

// Dispatch draws u = sampler.Value's uniform source, walks m's outcomes
// accumulating weight, and applies the first outcome whose running sum
// reaches u. It returns the ray with its origin and direction updated
// for the next bounce, and ok=false if the ray is absorbed (either by
// an explicit absorb outcome, an unrecognized kind, or because no
// outcome fired at all — spec section 4.1/4.6).
func Dispatch(m scene.Material, hit Point, ray geom.Ray, s *sample.Sampler) (geom.Ray, bool) {
	u := s.Source.Float64()
	sum := 0.0
	for _, outcome := range m {
		sum += outcome.Weight
		if u <= sum {
			return applyOutcome(outcome, hit, ray, s)
		}
	}
	return ray, false
}

// Point is the minimal hit information a material outcome needs: the
// point of contact and the surface's outward normal.
type Point struct {
	Position geom.Vec2
	Normal   geom.Vec2
}

func applyOutcome(o scene.Outcome, hit Point, ray geom.Ray, s *sample.Sampler) (geom.Ray, bool) {
	switch o.Kind {
	case scene.KindDiffuse:
		angle := s.Source.Uniform(0, 2*math.Pi)
		dir := geom.Vec2{X: math.Cos(angle), Y: math.Sin(angle)}
		return ray.WithOrigin(hit.Position).WithDir(dir), true
	case scene.KindTransmit:
		return ray.WithOrigin(hit.Position), true
	case scene.KindReflect:
		dir := ray.Dir.Reflect(hit.Normal)
		return ray.WithOrigin(hit.Position).WithDir(dir), true
	case scene.KindRefract:
		return refract(o.Index, hit, ray), true
	default:
		return ray, false
	}
}

// refract applies Snell's law using the angle between the incoming ray
// and the surface normal. Total internal reflection falls back to a
// specular reflection, per spec section 4.6.
func refract(index float64, hit Point, ray geom.Ray) geom.Ray {
	n := hit.Normal.Unit()
	d := ray.Dir.Unit()
	cosI := -d.Dot(n)
	eta := 1 / index
	if cosI < 0 {
		// Ray is exiting the material: flip the normal and invert the
		// relative index so Snell's law applies symmetrically.
		n = n.Scale(-1)
		cosI = -cosI
		eta = index
	}
	sin2T := eta * eta * (1 - cosI*cosI)
	if sin2T > 1 {
		// Total internal reflection.
		dir := ray.Dir.Reflect(hit.Normal)
		return ray.WithOrigin(hit.Position).WithDir(dir)
	}
	cosT := math.Sqrt(1 - sin2T)
	dir := d.Scale(eta).Add(n.Scale(eta*cosI - cosT))
	return ray.WithOrigin(hit.Position).WithDir(dir.Unit())
}
