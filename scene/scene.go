// SPDX-FileCopyrightText: © 2025 Galvanized Logic Inc.
// SPDX-License-Identifier: BSD-2-Clause

// Package scene holds the declarative scene description the tracer
// consumes: a small typed-value grammar (Value), the light/object/
// material descriptors built from it, and the validated renderer-ready
// Config. Parsing scene JSON into this shape is explicitly not this
// package's job — see scene/scenejson — so scene has no encoding/json
// import and no I/O.
package scene

// Value is the sampleable-field grammar from spec section 4.2:
//   - a Num is returned as-is.
//   - Null samples to 0.
//   - a Range samples uniformly in [A, B).
//   - a Blackbody samples a wavelength from the Planck spectrum at
//     temperature K.
//   - any other concrete type is an unknown construct and samples to 0.
type Value interface {
	isValue()
}

// Num is a constant scalar value.
type Num float64

func (Num) isValue() {}

// Null represents the JSON null / absent value, sampling to 0.
type Null struct{}

func (Null) isValue() {}

// Range is a uniform [A, B) sampleable pair.
type Range struct{ A, B float64 }

func (Range) isValue() {}

// Blackbody is a [T, "K"] sampleable pair: a wavelength drawn from the
// Planck spectrum at temperature K kelvin.
type Blackbody struct{ K float64 }

func (Blackbody) isValue() {}

// Unknown wraps any value the grammar above doesn't recognize. It is
// kept (rather than silently discarded at parse time) so Validate can
// log a diagnostic before it is sampled to 0.
type Unknown struct{ Raw any }

func (Unknown) isValue() {}

// Light is a declarative light descriptor; every field is sampled
// independently for each ray. See spec section 3.
type Light struct {
	Power         Value
	X, Y          Value
	PolarAngleDeg Value
	PolarDistance Value
	RayAngleDeg   Value
	Wavelength    Value
}

// Object is a line-segment scene object: (materialID, x, y, dx, dy).
type Object struct {
	MaterialID Value
	X, Y       Value
	DX, DY     Value
}

// OutcomeKind identifies a material outcome's behavior.
type OutcomeKind byte

const (
	// KindAbsorb is the implicit fallback: any outcome kind the
	// grammar doesn't recognize, or no outcome firing at all.
	KindAbsorb OutcomeKind = 0
	KindDiffuse OutcomeKind = 'd'
	KindReflect OutcomeKind = 'r'
	KindTransmit OutcomeKind = 't'
	KindRefract OutcomeKind = 'R' // the "refract" keyword, as decoded by scenejson
)

// Outcome is one weighted branch of a Material's probability
// distribution. Index is only meaningful for KindRefract (the index of
// refraction).
type Outcome struct {
	Weight float64
	Kind   OutcomeKind
	Index  float64
}

// Material is an ordered list of weighted outcomes; any probability
// mass left over after summing Weight is implicit absorption.
type Material []Outcome

// Resolution is the output raster size in pixels.
type Resolution struct{ W, H int }

// Viewport is the world-space rectangle projected onto the raster,
// each component independently sampleable (spec section 6).
type Viewport struct {
	X, Y, W, H Value
}

// StopCondition bounds how long a render runs. A zero value disables
// that particular stop.
type StopCondition struct {
	Rays      int64
	TimeLimit float64 // seconds, 0 disables
}

// Raw is the as-parsed scene tree: everything scenejson.Load fills in
// directly from JSON, before Validate turns it into a Config. Raw
// itself performs no validation, so malformed input (wrong tuple
// lengths, out-of-range material IDs) is all still possible here.
type Raw struct {
	Resolution    [2]int
	Viewport      [4]Value
	Exposure      float64
	Gamma         float64
	Rays          float64
	TimeLimit     float64
	Seed          *int64 // nil means "derive from wall clock"
	MaxReflection int
	Parallel      bool
	Debug         int
	Lights        []Light
	Objects       []Object
	Materials     []Material
}

// Config is the validated, renderer-ready scene. It is built exactly
// once, by Validate, and is read-only for the remainder of the render
// (spec section 3, "Scene values: borrowed read-only by all
// components").
type Config struct {
	Resolution    Resolution
	Viewport      Viewport
	Exposure      float64
	Gamma         float64
	Rays          int64
	TimeLimit     float64
	Seed          int64
	MaxReflection int
	Parallel      bool
	Debug         int
	Lights        []Light
	Objects       []Object
	Materials     []Material

	// TotalPower is the sum of each light's expected power (Num as-is,
	// Range averaged, anything else 0), computed once by Validate and
	// reused by the renderer's intensity tone-map scale (spec section
	// 4.9) so the two don't drift out of sync.
	TotalPower float64
}
