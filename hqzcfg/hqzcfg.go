// SPDX-FileCopyrightText: © 2025 Galvanized Logic Inc.
// SPDX-License-Identifier: BSD-2-Clause

// Package hqzcfg supplies named renderer presets (engineering knobs
// such as batch size and worker count, never scene content) loaded
// from an embedded YAML document, the same library and decode shape
// load/shd.go uses for shader configuration: Unmarshal a []byte into a
// private config struct and wrap decode errors with fmt.Errorf. The
// teacher's loader additionally supports reading that []byte from disk
// or a packaged zip via its Locator; hqzcfg's presets are few, static,
// and shipped with the binary, so they're read from a go:embed'd file
// instead of a Locator, trading the teacher's pluggable asset-directory
// lookup for the simpler "the presets are always available" guarantee
// a renderer library wants.
package hqzcfg

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed presets.yaml
var presetsYAML []byte

// Preset bundles the renderer's engineering knobs: how fast/precise to
// render, not scene content.
type Preset struct {
	BatchSize  int
	Workers    int
	DitherSeed uint32
}

type presetDoc struct {
	BatchSize  int    `yaml:"batchsize"`
	Workers    int    `yaml:"workers"`
	DitherSeed uint32 `yaml:"ditherseed"`
}

var presets map[string]presetDoc

func init() {
	if err := yaml.Unmarshal(presetsYAML, &presets); err != nil {
		panic(fmt.Errorf("hqzcfg: embedded presets.yaml is malformed: %w", err))
	}
}

// Load returns the named preset. An unknown name is an error rather
// than a silent default, since unlike a scene value a preset name is
// an engineering choice the caller should get right.
func Load(name string) (Preset, error) {
	doc, ok := presets[name]
	if !ok {
		return Preset{}, fmt.Errorf("hqzcfg: unknown preset %q", name)
	}
	return Preset{BatchSize: doc.BatchSize, Workers: doc.Workers, DitherSeed: doc.DitherSeed}, nil
}

// Default returns the "preview" preset, a reasonable balance of speed
// and quality for iterating on a scene.
func Default() Preset {
	p, err := Load("preview")
	if err != nil {
		// presets.yaml is embedded and validated in init(); "preview"
		// missing would be a build-time packaging bug, not a runtime
		// condition callers can recover from.
		panic(err)
	}
	return p
}
