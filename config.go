// SPDX-FileCopyrightText: © 2025 Galvanized Logic Inc.
// SPDX-License-Identifier: BSD-2-Clause

package hqz

// config.go reduces the NewRenderer API footprint using functional
// options. See: http://dave.cheney.net/2014/10/17/functional-options-for-friendly-apis

import (
	"log/slog"

	"github.com/gazed/hqz/hqzcfg"
)

// config holds the renderer's engineering knobs: how fast/precise to
// render and where it logs, never scene content (resolution, viewport,
// lights, materials, and the other scene-level fields live on
// scene.Config instead, set once at Validate and never touched by an
// Attr).
type config struct {
	batchSize  int
	workers    int
	logger     *slog.Logger
	ditherSeed uint32
}

// rendererDefaults provides reasonable defaults so a Renderer runs even
// if no Attr is given.
var rendererDefaults = config{
	batchSize:  100_000, // spec section 4.9's default batch size.
	workers:    0,       // 0 means runtime.GOMAXPROCS(0) at render time.
	logger:     slog.Default(),
	ditherSeed: 0,
}

// Attr defines an optional renderer attribute.
//
//	r := hqz.NewRenderer(scn,
//	   hqz.BatchSize(50_000),
//	   hqz.Workers(4),
//	   hqz.Logger(myLogger),
//	)
type Attr func(*config)

// BatchSize sets how many rays the renderer traces per batch before
// checking stopping conditions (spec section 4.9). Non-positive values
// are ignored.
func BatchSize(n int) Attr {
	return func(c *config) {
		if n > 0 {
			c.batchSize = n
		}
	}
}

// Workers sets how many goroutines a parallel batch is split across
// (spec section 5). Zero means runtime.GOMAXPROCS(0) at render time.
func Workers(n int) Attr {
	return func(c *config) {
		if n >= 0 {
			c.workers = n
		}
	}
}

// Logger sets the structured logger the renderer reports batch
// progress and scene diagnostics through.
func Logger(l *slog.Logger) Attr {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}

// DitherSeed sets the seed the histogram's tone-map dither source
// reseeds to on every Render call. Tests use this to make golden-image
// comparisons deterministic; production renders leave it at 0.
func DitherSeed(s uint32) Attr {
	return func(c *config) { c.ditherSeed = s }
}

// Preset applies a named hqzcfg preset's batch size, worker count, and
// dither seed as a single Attr, e.g.
// hqz.NewRenderer(scn, hqz.Preset(hqzcfg.Default())).
func Preset(p hqzcfg.Preset) Attr {
	return func(c *config) {
		BatchSize(p.BatchSize)(c)
		Workers(p.Workers)(c)
		DitherSeed(p.DitherSeed)(c)
	}
}
