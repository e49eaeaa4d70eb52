// SPDX-FileCopyrightText: © 2025 Galvanized Logic Inc.
// SPDX-License-Identifier: BSD-2-Clause

// Package hqz is a batch, photon-oriented 2D light transport renderer:
// it traces many independent photon paths from a declarative scene's
// lights, accumulates their trajectories as antialiased lines into a
// high-precision image histogram, and tone-maps the result into an
// 8-bit RGB raster.
package hqz

import (
	"context"
	"math"
	"sync/atomic"
	"time"

	"github.com/gazed/hqz/geom"
	"github.com/gazed/hqz/histogram"
	"github.com/gazed/hqz/quadtree"
	"github.com/gazed/hqz/rng"
	"github.com/gazed/hqz/sample"
	"github.com/gazed/hqz/scene"
	"github.com/gazed/hqz/spectrum"
	"github.com/gazed/hqz/trace"
)

// Renderer owns a histogram image and a tracer built over one
// validated scene (spec section 4.9). It is not safe for concurrent
// use by multiple goroutines calling Render simultaneously — the
// tracer's own internal parallelism is the only concurrency a single
// Render call needs.
type Renderer struct {
	cfg      config
	scene    *scene.Config
	viewport geom.AABB
	image    *histogram.Image
	tracer   *trace.Tracer

	interrupted atomic.Bool
}

// NewRenderer validates raw, builds the spatial index and tracer over
// it, and applies any Attr options. Scene diagnostics never block
// construction (spec section 7: validation problems are recoverable
// and non-fatal); they are logged at Warn level through the configured
// logger instead.
func NewRenderer(raw *scene.Raw, opts ...Attr) *Renderer {
	cfg := rendererDefaults
	for _, opt := range opts {
		opt(&cfg)
	}

	cfgScene, diag := scene.Validate(raw)
	for _, msg := range diag.Messages() {
		cfg.logger.Warn("scene diagnostic", "message", msg)
	}

	w, h := cfgScene.Resolution.W, cfgScene.Resolution.H
	if w <= 0 || h <= 0 {
		w, h = 1, 1
	}

	buildSampler := sample.New(rng.New(uint32(cfgScene.Seed)))
	tree := quadtree.Build(cfgScene.Objects, buildSampler)
	tracer := trace.New(cfgScene, tree, uint32(cfgScene.Seed))
	tracer.Workers = cfg.workers

	return &Renderer{
		cfg:      cfg,
		scene:    cfgScene,
		viewport: viewportBounds(cfgScene.Viewport, buildSampler),
		image:    histogram.New(w, h),
		tracer:   tracer,
	}
}

// viewportBounds samples the scene's viewport rectangle once — the
// viewport is cached at construction (spec section 4.9, "caches
// viewport bounds"), unlike object/light fields which resample per ray.
func viewportBounds(v scene.Viewport, s *sample.Sampler) geom.AABB {
	x, y := s.Value(v.X), s.Value(v.Y)
	w, h := s.Value(v.W), s.Value(v.H)
	return geom.AABB{Left: x, Top: y, Right: x + w, Bottom: y + h}
}

// Interrupt requests that the render stop at the next batch boundary
// (spec section 4.9's "rayLimit = -1"); the in-flight batch always
// completes first.
func (r *Renderer) Interrupt() { r.interrupted.Store(true) }

// Render runs the batch loop of spec section 4.9 to completion (or
// until ctx is cancelled, or Interrupt is called) and returns the
// tone-mapped 8-bit RGB raster.
func (r *Renderer) Render(ctx context.Context) ([]byte, error) {
	batchSize := r.cfg.batchSize
	paths := make([]trace.Path, batchSize)

	var numRays int64
	start := time.Now()

	for r.shouldContinue(ctx, numRays, start) {
		n := batchSize
		r.tracer.TraceRays(paths, n)

		for i := 0; i < n; i++ {
			r.drawPath(&paths[i])
		}
		numRays += int64(n)
	}

	r.cfg.logger.Info("render complete",
		"rays", numRays, "elapsed", time.Since(start), "interrupted", r.interrupted.Load())

	r.drawQuadtreeDebugOverlay()

	scale := r.toneMapScale(numRays)
	gamma := r.scene.Gamma
	if gamma <= 0 {
		gamma = 1.0
	}
	return r.image.Render(scale, 1/gamma, r.cfg.ditherSeed), ctx.Err()
}

// shouldContinue evaluates the three stop conditions from spec section
// 4.9: ray limit, wall-clock time limit, and interruption. A zero Rays
// or TimeLimit disables that particular check.
func (r *Renderer) shouldContinue(ctx context.Context, numRays int64, start time.Time) bool {
	if r.interrupted.Load() {
		return false
	}
	if ctx.Err() != nil {
		return false
	}
	if r.scene.Rays > 0 && numRays > r.scene.Rays {
		return false
	}
	if r.scene.TimeLimit > 0 && time.Since(start).Seconds() >= r.scene.TimeLimit {
		return false
	}
	return true
}

// drawPath projects a traced path's vertices into image space and
// draws each segment into the histogram, skipping invisible
// wavelengths at draw time (spec section 9, open question 1: an
// invisible ray still counts against the ray budget, it just isn't
// drawn).
func (r *Renderer) drawPath(p *trace.Path) {
	color := spectrum.ToRGB(p.Wavelength)
	if !color.Visible() {
		return
	}
	if len(p.Vertices) < 2 {
		return
	}

	prev := r.project(p.Vertices[0].Point)
	for i := 1; i < len(p.Vertices); i++ {
		cur := p.Vertices[i].Point
		curScreen := r.project(cur)

		if !r.viewport.Contains(cur) {
			// Clip the final segment to the viewport boundary before
			// drawing so an exiting ray doesn't smear energy across
			// the whole image (spec section 4.9, render loop step 4).
			if clipped, ok := r.clipToViewport(p.Vertices[i-1].Point, cur); ok {
				curScreen = r.project(clipped)
			}
		}

		// Full brightness is 255: toneMapScale divides by 255*8192.
		r.image.Line(color, 255, prev.X, prev.Y, curScreen.X, curScreen.Y)
		prev = curScreen
	}
}

// project maps a world-space point into image pixel space per spec
// section 4.9: x_screen = (x - origin.x) * W / size.x, analogous for y.
func (r *Renderer) project(p geom.Vec2) geom.Vec2 {
	w := float64(r.scene.Resolution.W)
	h := float64(r.scene.Resolution.H)
	sizeX := r.viewport.Width()
	sizeY := r.viewport.Height()
	x, y := p.X, p.Y
	if sizeX != 0 {
		x = (p.X - r.viewport.Left) * w / sizeX
	}
	if sizeY != 0 {
		y = (p.Y - r.viewport.Top) * h / sizeY
	}
	return geom.Vec2{X: x, Y: y}
}

// clipToViewport finds where the segment from -> to crosses the
// viewport boundary, returning the crossing point nearest to.
func (r *Renderer) clipToViewport(from, to geom.Vec2) (geom.Vec2, bool) {
	dir := to.Sub(from)
	ray := geom.NewRay(from, dir)
	_, tFar, ok := geom.IntersectAABB(ray, r.viewport)
	if !ok {
		return geom.Vec2{}, false
	}
	if tFar > 1 {
		tFar = 1
	}
	if tFar < 0 {
		return from, true
	}
	return ray.At(tFar), true
}

// toneMapScale computes spec section 4.9's tone-map scale factor.
func (r *Renderer) toneMapScale(numRays int64) float64 {
	if numRays == 0 {
		return 0
	}
	w := float64(r.scene.Resolution.W)
	h := float64(r.scene.Resolution.H)
	areaScale := math.Sqrt(w * h / (1024 * 576))
	intensityScale := r.scene.TotalPower / (255 * 8192)
	return math.Exp(1+10*r.scene.Exposure) * areaScale * intensityScale / float64(numRays)
}
