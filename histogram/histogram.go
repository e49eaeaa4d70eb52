// SPDX-FileCopyrightText: © 2025 Galvanized Logic Inc.
// SPDX-License-Identifier: BSD-2-Clause

// Package histogram is the tiled additive image accumulator: Wu
// antialiased line drawing, deferred per-tile record buffers, and the
// dithered tone-map that produces the final 8-bit raster. See spec
// section 4.8.
package histogram

import (
	"math"

	"github.com/gazed/hqz/rng"
	"github.com/gazed/hqz/spectrum"
)

const (
	tileDim        = 16
	tilePixels     = tileDim * tileDim
	recordsPerTile = 16384
)

// record is one deferred plot: the full-magnitude r,g,b delta and the
// pixel index within the tile. Spec section 4.8 allows either a
// wavelength+intensity packing or an "r,g,b,pixel" packing — HQZ uses
// the latter, but at full int32 precision rather than squeezed into
// signed bytes: channel magnitudes routinely run into the thousands
// (tableScale=8192, see spectrum/spectrum.go), so a +-127 lane would
// clip nearly every plot, not just unusually bright ones.
type record struct {
	r, g, b int32
	pixel   uint16
}

type tile struct {
	samples [tilePixels * 3]int64
	records [recordsPerTile]record
	count   int
}

// Image is the tiled additive accumulator for one render. It is owned
// exclusively by the rendering goroutine: spec section 5 notes the
// histogram is not thread-safe across batches, so all Line/Plot calls
// for a given render happen on one goroutine even when ray tracing
// itself is parallel.
type Image struct {
	W, H       int
	tilesWide  int
	tilesHigh  int
	tiles      []tile
}

// New allocates a histogram image of w x h pixels.
func New(w, h int) *Image {
	tw := (w + tileDim - 1) / tileDim
	th := (h + tileDim - 1) / tileDim
	return &Image{
		W: w, H: h,
		tilesWide: tw, tilesHigh: th,
		tiles: make([]tile, tw*th),
	}
}

// Plot deposits intensity*rgb at pixel (x,y), deferring into the
// owning tile's record buffer and flushing it first if full (spec
// section 4.8).
func (img *Image) Plot(c spectrum.RGB, intensity float64, x, y int) {
	if x < 0 || y < 0 || x >= img.W || y >= img.H {
		return
	}
	tx, ty := x/tileDim, y/tileDim
	ti := ty*img.tilesWide + tx
	t := &img.tiles[ti]

	if t.count >= recordsPerTile {
		img.flushTile(ti)
	}

	px, py := x%tileDim, y%tileDim
	t.records[t.count] = record{
		r:     int32(math.Round(float64(c.R) * intensity)),
		g:     int32(math.Round(float64(c.G) * intensity)),
		b:     int32(math.Round(float64(c.B) * intensity)),
		pixel: uint16(py*tileDim + px),
	}
	t.count++
}

// flushTile drains tile ti's record buffer into its 64-bit sample
// accumulators and resets the fill count.
func (img *Image) flushTile(ti int) {
	t := &img.tiles[ti]
	for i := 0; i < t.count; i++ {
		rec := t.records[i]
		base := int(rec.pixel) * 3
		t.samples[base+0] += int64(rec.r)
		t.samples[base+1] += int64(rec.g)
		t.samples[base+2] += int64(rec.b)
	}
	t.count = 0
}

// Flush drains every tile's record buffer. Render calls this before
// reading accumulators, satisfying the invariant in spec section 3.
func (img *Image) Flush() {
	for i := range img.tiles {
		img.flushTile(i)
	}
}

// sampleAt returns the raw accumulated value for pixel (x,y), channel c
// (0=r,1=g,2=b). Callers must Flush first.
func (img *Image) sampleAt(x, y, c int) int64 {
	tx, ty := x/tileDim, y/tileDim
	ti := ty*img.tilesWide + tx
	px, py := x%tileDim, y%tileDim
	pixel := py*tileDim + px
	return img.tiles[ti].samples[pixel*3+c]
}

// Render flushes all tiles, then tone-maps every accumulator through
// v = (sample*scale)^exponent + dither, producing a W*H*3 byte buffer
// in row-major (y, x, channel) order (spec section 4.8). v lives on the
// same 0-255 scale as the scale/exponent formula itself (spec section
// 4.9's tone-map scale is derived on that scale, matching
// original_source/hqz/src/zrender.cpp), so each channel is clamped
// independently to [0, 255.9] rather than normalized through a [0,1]
// unit clamp, which would saturate almost every lit pixel to white.
// The dither source is reseeded to ditherSeed on every call so repeated
// renders of a stable accumulator are byte-identical (spec section 8,
// "Histogram flush idempotence") — production renders always pass 0; a
// non-zero seed only exists so tests can compare two different dither
// draws against the same accumulator.
func (img *Image) Render(scale, exponent float64, ditherSeed uint32) []byte {
	img.Flush()
	dither := rng.New(ditherSeed)
	out := make([]byte, img.W*img.H*3)
	i := 0
	for y := 0; y < img.H; y++ {
		for x := 0; x < img.W; x++ {
			for c := 0; c < 3; c++ {
				s := float64(img.sampleAt(x, y, c))
				v := math.Pow(s*scale, exponent) + 0.5 + dither.Uniform(0, 0.5)
				out[i+c] = quantize(v)
			}
			i += 3
		}
	}
	return out
}

func quantize(v float64) byte {
	if v < 0 {
		v = 0
	}
	if v > 255.9 {
		v = 255.9
	}
	return byte(v)
}
