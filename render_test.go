// SPDX-FileCopyrightText: © 2025 Galvanized Logic Inc.
// SPDX-License-Identifier: BSD-2-Clause

package hqz

import (
	"context"
	"testing"
	"time"

	"github.com/gazed/hqz/scene"
)

func seedPtr(v int64) *int64 { return &v }

// TestRenderEmptySceneSingleRay covers spec section 8 scenario 1: an
// empty scene with one point light and a single ray should be almost
// entirely black, with light only along the ray from the light to the
// viewport edge.
func TestRenderEmptySceneSingleRay(t *testing.T) {
	raw := &scene.Raw{
		Resolution: [2]int{128, 128},
		Viewport:   [4]scene.Value{scene.Num(-64), scene.Num(-64), scene.Num(128), scene.Num(128)},
		Rays:       1,
		Seed:       seedPtr(1),
		Materials:  []scene.Material{{{Weight: 1, Kind: scene.KindAbsorb}}},
		Lights: []scene.Light{{
			Power: scene.Num(1), X: scene.Num(0), Y: scene.Num(0),
			PolarAngleDeg: scene.Num(0), PolarDistance: scene.Num(0),
			RayAngleDeg: scene.Num(0), Wavelength: scene.Num(550),
		}},
	}
	r := NewRenderer(raw, BatchSize(1))
	out, err := r.Render(context.Background())
	if err != nil {
		t.Fatalf("Render error: %v", err)
	}
	if len(out) != 128*128*3 {
		t.Fatalf("output length = %d, want %d", len(out), 128*128*3)
	}

	nonzero := 0
	for _, b := range out {
		if b != 0 {
			nonzero++
		}
	}
	if nonzero == 0 {
		t.Error("expected some lit pixels along the traced ray")
	}
	if nonzero > 256*3 {
		t.Errorf("expected at most ~256 lit pixel-channels, got %d", nonzero)
	}
}

// TestRenderSquareBoundaryBrightestAtCenter covers spec section 8
// scenario 3: a light at the center of an absorptive square boundary
// should leave the output brightest near the center, decaying with
// radius.
func TestRenderSquareBoundaryBrightestAtCenter(t *testing.T) {
	raw := &scene.Raw{
		Resolution: [2]int{128, 128},
		Viewport:   [4]scene.Value{scene.Num(-64), scene.Num(-64), scene.Num(128), scene.Num(128)},
		Rays:       4000,
		Seed:       seedPtr(1),
		Materials:  []scene.Material{{{Weight: 1, Kind: scene.KindAbsorb}}},
		Objects: []scene.Object{
			{MaterialID: scene.Num(0), X: scene.Num(-50), Y: scene.Num(-50), DX: scene.Num(100), DY: scene.Num(0)},
			{MaterialID: scene.Num(0), X: scene.Num(50), Y: scene.Num(-50), DX: scene.Num(0), DY: scene.Num(100)},
			{MaterialID: scene.Num(0), X: scene.Num(50), Y: scene.Num(50), DX: scene.Num(-100), DY: scene.Num(0)},
			{MaterialID: scene.Num(0), X: scene.Num(-50), Y: scene.Num(50), DX: scene.Num(0), DY: scene.Num(-100)},
		},
		Lights: []scene.Light{{
			Power: scene.Num(1), X: scene.Num(0), Y: scene.Num(0),
			PolarAngleDeg: scene.Num(0), PolarDistance: scene.Num(0),
			RayAngleDeg: scene.Range{A: 0, B: 360}, Wavelength: scene.Num(550),
		}},
	}
	r := NewRenderer(raw, BatchSize(4000))
	out, err := r.Render(context.Background())
	if err != nil {
		t.Fatalf("Render error: %v", err)
	}

	greenAt := func(x, y int) int {
		i := (y*128 + x) * 3
		return int(out[i+1])
	}

	centerSum, centerN := 0, 0
	for y := 60; y < 68; y++ {
		for x := 60; x < 68; x++ {
			centerSum += greenAt(x, y)
			centerN++
		}
	}
	edgeSum, edgeN := 0, 0
	for y := 2; y < 10; y++ {
		for x := 2; x < 10; x++ {
			edgeSum += greenAt(x, y)
			edgeN++
		}
	}

	centerMean := float64(centerSum) / float64(centerN)
	edgeMean := float64(edgeSum) / float64(edgeN)
	if centerMean <= edgeMean {
		t.Errorf("center mean green (%v) should exceed near-corner mean green (%v)", centerMean, edgeMean)
	}
}

// TestRenderStopsOnTimeLimit covers spec section 8 scenario 5: a scene
// with no ray limit but a wall-clock time limit returns after roughly
// that long with a valid raster.
func TestRenderStopsOnTimeLimit(t *testing.T) {
	raw := &scene.Raw{
		Resolution: [2]int{32, 32},
		Viewport:   [4]scene.Value{scene.Num(-16), scene.Num(-16), scene.Num(32), scene.Num(32)},
		TimeLimit:  0.2,
		Seed:       seedPtr(1),
		Materials:  []scene.Material{{{Weight: 1, Kind: scene.KindAbsorb}}},
		Lights: []scene.Light{{
			Power: scene.Num(1), X: scene.Num(0), Y: scene.Num(0),
			PolarAngleDeg: scene.Num(0), PolarDistance: scene.Num(0),
			RayAngleDeg: scene.Range{A: 0, B: 360}, Wavelength: scene.Num(550),
		}},
	}
	r := NewRenderer(raw, BatchSize(200))

	start := time.Now()
	out, err := r.Render(context.Background())
	elapsed := time.Since(start)
	if err != nil {
		t.Fatalf("Render error: %v", err)
	}
	if len(out) != 32*32*3 {
		t.Fatalf("output length = %d, want %d", len(out), 32*32*3)
	}
	if elapsed < 150*time.Millisecond || elapsed > 2*time.Second {
		t.Errorf("elapsed = %v, expected roughly 0.2s plus at most one batch", elapsed)
	}
}

// TestRenderDifferentSeedsDiffer covers spec section 8 scenario 6: the
// same scene rendered with two different seeds should produce
// noticeably different noise patterns.
func TestRenderDifferentSeedsDiffer(t *testing.T) {
	base := func(seed int64) *scene.Raw {
		return &scene.Raw{
			Resolution: [2]int{64, 64},
			Viewport:   [4]scene.Value{scene.Num(-32), scene.Num(-32), scene.Num(64), scene.Num(64)},
			Rays:       500,
			Seed:       seedPtr(seed),
			Materials:  []scene.Material{{{Weight: 1, Kind: scene.KindAbsorb}}},
			Lights: []scene.Light{{
				Power: scene.Num(1), X: scene.Num(0), Y: scene.Num(0),
				PolarAngleDeg: scene.Range{A: 0, B: 360}, PolarDistance: scene.Range{A: 0, B: 20},
				RayAngleDeg: scene.Range{A: 0, B: 360}, Wavelength: scene.Num(550),
			}},
		}
	}

	r0 := NewRenderer(base(0), BatchSize(500))
	out0, err := r0.Render(context.Background())
	if err != nil {
		t.Fatalf("Render error: %v", err)
	}
	r1 := NewRenderer(base(1), BatchSize(500))
	out1, err := r1.Render(context.Background())
	if err != nil {
		t.Fatalf("Render error: %v", err)
	}

	diff := 0
	for i := range out0 {
		if out0[i] != out1[i] {
			diff++
		}
	}
	frac := float64(diff) / float64(len(out0))
	if frac < 0.01 {
		t.Errorf("expected the two seeds to diverge noticeably, diff fraction = %v", frac)
	}
}

// TestRenderInterruptStopsEarly checks that Interrupt halts the batch
// loop at the next boundary rather than running to a ray limit.
func TestRenderInterruptStopsEarly(t *testing.T) {
	raw := &scene.Raw{
		Resolution: [2]int{16, 16},
		Viewport:   [4]scene.Value{scene.Num(-8), scene.Num(-8), scene.Num(16), scene.Num(16)},
		Rays:       1_000_000,
		Seed:       seedPtr(1),
		Materials:  []scene.Material{{{Weight: 1, Kind: scene.KindAbsorb}}},
		Lights: []scene.Light{{
			Power: scene.Num(1), X: scene.Num(0), Y: scene.Num(0),
			RayAngleDeg: scene.Range{A: 0, B: 360}, Wavelength: scene.Num(550),
		}},
	}
	r := NewRenderer(raw, BatchSize(10))
	r.Interrupt()

	out, err := r.Render(context.Background())
	if err != nil {
		t.Fatalf("Render error: %v", err)
	}
	if len(out) != 16*16*3 {
		t.Fatalf("output length = %d, want %d", len(out), 16*16*3)
	}
}

// TestRenderContextCancellationStopsLoop checks ctx cancellation is
// honored at the next batch boundary and surfaces as the returned error.
func TestRenderContextCancellationStopsLoop(t *testing.T) {
	raw := &scene.Raw{
		Resolution: [2]int{16, 16},
		Viewport:   [4]scene.Value{scene.Num(-8), scene.Num(-8), scene.Num(16), scene.Num(16)},
		Rays:       1_000_000,
		Seed:       seedPtr(1),
		Materials:  []scene.Material{{{Weight: 1, Kind: scene.KindAbsorb}}},
		Lights: []scene.Light{{
			Power: scene.Num(1), X: scene.Num(0), Y: scene.Num(0),
			RayAngleDeg: scene.Range{A: 0, B: 360}, Wavelength: scene.Num(550),
		}},
	}
	r := NewRenderer(raw, BatchSize(10))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := r.Render(ctx)
	if err == nil {
		t.Error("expected Render to surface context cancellation")
	}
}
