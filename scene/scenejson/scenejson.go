// SPDX-FileCopyrightText: © 2025 Galvanized Logic Inc.
// SPDX-License-Identifier: BSD-2-Clause

// Package scenejson decodes the scene description format from spec
// section 6 into a scene.Raw tree. It is the one place in the module
// that imports encoding/json: scene JSON parsing is explicitly not part
// of the renderer's core (spec section 1, "treated as external
// collaborators"), so none of the core tracing/histogram packages ever
// see a byte of JSON.
//
// Load only fails on malformed JSON syntax. A structurally valid scene
// with semantically wrong values (bad tuple lengths, out-of-range
// material IDs, ...) decodes without error here and is instead reported
// by scene.Validate's diagnostics.
package scenejson

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/gazed/hqz/scene"
)

type doc struct {
	Resolution    []int             `json:"resolution"`
	Viewport      []json.RawMessage `json:"viewport"`
	Exposure      float64           `json:"exposure"`
	Gamma         float64           `json:"gamma"`
	Rays          float64           `json:"rays"`
	TimeLimit     float64           `json:"timelimit"`
	Seed          *int64            `json:"seed"`
	MaxReflection int               `json:"maxReflection"`
	Parallel      bool              `json:"parallel"`
	Debug         int               `json:"debug"`
	Lights        [][]json.RawMessage `json:"lights"`
	Objects       [][]json.RawMessage `json:"objects"`
	Materials     [][][]json.RawMessage `json:"materials"`
}

// Load decodes a scene document from r into a scene.Raw tree.
func Load(r io.Reader) (*scene.Raw, error) {
	var d doc
	if err := json.NewDecoder(r).Decode(&d); err != nil {
		return nil, fmt.Errorf("scenejson: decode scene: %w", err)
	}

	raw := &scene.Raw{
		Exposure:      d.Exposure,
		Gamma:         d.Gamma,
		Rays:          d.Rays,
		TimeLimit:     d.TimeLimit,
		Seed:          d.Seed,
		MaxReflection: d.MaxReflection,
		Parallel:      d.Parallel,
		Debug:         d.Debug,
	}

	if len(d.Resolution) == 2 {
		raw.Resolution = [2]int{d.Resolution[0], d.Resolution[1]}
	}

	for i := 0; i < 4 && i < len(d.Viewport); i++ {
		raw.Viewport[i] = decodeValue(d.Viewport[i])
	}

	for _, l := range d.Lights {
		raw.Lights = append(raw.Lights, decodeLight(l))
	}
	for _, o := range d.Objects {
		raw.Objects = append(raw.Objects, decodeObject(o))
	}
	for _, m := range d.Materials {
		raw.Materials = append(raw.Materials, decodeMaterial(m))
	}

	return raw, nil
}

func tupleValue(t []json.RawMessage, i int) scene.Value {
	if i >= len(t) {
		return scene.Null{}
	}
	return decodeValue(t[i])
}

func decodeLight(t []json.RawMessage) scene.Light {
	return scene.Light{
		Power:         tupleValue(t, 0),
		X:             tupleValue(t, 1),
		Y:             tupleValue(t, 2),
		PolarAngleDeg: tupleValue(t, 3),
		PolarDistance: tupleValue(t, 4),
		RayAngleDeg:   tupleValue(t, 5),
		Wavelength:    tupleValue(t, 6),
	}
}

func decodeObject(t []json.RawMessage) scene.Object {
	return scene.Object{
		MaterialID: tupleValue(t, 0),
		X:          tupleValue(t, 1),
		Y:          tupleValue(t, 2),
		DX:         tupleValue(t, 3),
		DY:         tupleValue(t, 4),
	}
}

func decodeMaterial(outcomes [][]json.RawMessage) scene.Material {
	m := make(scene.Material, 0, len(outcomes))
	for _, o := range outcomes {
		m = append(m, decodeOutcome(o))
	}
	return m
}

func decodeOutcome(o []json.RawMessage) scene.Outcome {
	var weight float64
	if len(o) > 0 {
		json.Unmarshal(o[0], &weight)
	}
	var kindStr string
	if len(o) > 1 {
		json.Unmarshal(o[1], &kindStr)
	}
	out := scene.Outcome{Weight: weight, Kind: decodeKind(kindStr)}
	if out.Kind == scene.KindRefract && len(o) > 2 {
		json.Unmarshal(o[2], &out.Index)
	}
	return out
}

func decodeKind(s string) scene.OutcomeKind {
	switch s {
	case "d":
		return scene.KindDiffuse
	case "r":
		return scene.KindReflect
	case "t":
		return scene.KindTransmit
	case "refract":
		return scene.KindRefract
	default:
		return scene.KindAbsorb
	}
}

// decodeValue implements the Value grammar of spec section 4.2 against
// a single raw JSON element: a number, null, a [a,b] number pair, or a
// [T,"K"] blackbody pair.
func decodeValue(raw json.RawMessage) scene.Value {
	if len(raw) == 0 || string(raw) == "null" {
		return scene.Null{}
	}

	var num float64
	if err := json.Unmarshal(raw, &num); err == nil {
		return scene.Num(num)
	}

	var arr []json.RawMessage
	if err := json.Unmarshal(raw, &arr); err == nil && len(arr) == 2 {
		var a, b float64
		if err := json.Unmarshal(arr[0], &a); err == nil {
			if err := json.Unmarshal(arr[1], &b); err == nil {
				return scene.Range{A: a, B: b}
			}
			var sentinel string
			if err := json.Unmarshal(arr[1], &sentinel); err == nil && sentinel == "K" {
				return scene.Blackbody{K: a}
			}
		}
	}

	var decoded any
	json.Unmarshal(raw, &decoded)
	return scene.Unknown{Raw: decoded}
}
