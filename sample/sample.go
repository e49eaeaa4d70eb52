// SPDX-FileCopyrightText: © 2025 Galvanized Logic Inc.
// SPDX-License-Identifier: BSD-2-Clause

// Package sample draws concrete scalars from scene.Value descriptors
// using a per-ray rng.Source, per spec section 4.2.
package sample

import (
	"github.com/gazed/hqz/rng"
	"github.com/gazed/hqz/scene"
	"github.com/gazed/hqz/spectrum"
)

// Sampler pairs a PRNG with the scalar-drawing grammar scene values use.
// It is not safe for concurrent use — each ray owns one.
type Sampler struct {
	Source *rng.Source
}

// New returns a Sampler backed by the given source.
func New(src *rng.Source) *Sampler {
	return &Sampler{Source: src}
}

// Value draws a concrete scalar from v per spec section 4.2.
func (s *Sampler) Value(v scene.Value) float64 {
	switch t := v.(type) {
	case scene.Num:
		return float64(t)
	case nil, scene.Null:
		return 0
	case scene.Range:
		return s.Source.Uniform(t.A, t.B)
	case scene.Blackbody:
		return s.Blackbody(t.K)
	default:
		return 0
	}
}

// Blackbody draws a wavelength (nm) from the Planck spectrum at
// temperature t kelvin, using this Sampler's uniform draw as the
// inverse-CDF argument.
func (s *Sampler) Blackbody(t float64) float64 {
	return spectrum.BlackbodyWavelength(t, s.Source.Float64())
}
