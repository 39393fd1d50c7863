/*
DESCRIPTION
  encode.go maps voxel surfaces into per-angle scan-line commands. Each
  voxel's desired height selects the nearest achievable angle/screen/line/
  pixel combination from the lookup table, and the voxel's colour is packed
  into that scan line's pixel slot.

AUTHORS
  Saxon A. Nelson-Milton <saxon@ausocean.org>
  Trek Hopton <trek@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package vdrm

import (
	"sort"
)

// SurfacePixel is one voxel of a pixel surface: grid position, desired
// height and 3-bit colour.
type SurfacePixel struct {
	X, Y  int
	Z     int
	Color PixelColor
}

// PixelSurface is an ordered voxel surface. It is built by a generator and
// never mutated afterwards.
type PixelSurface []SurfacePixel

// lineAddr keys a scan line within one angle during accumulation.
type lineAddr struct {
	screen, addr int
}

// Encode converts a pixel surface into an angle map. pixelOffset shifts
// every emitted scan line horizontally: positive offsets clear the leading
// slots, negative offsets clear the trailing slots. The caller is expected
// to keep pixelOffset within [-63, 63]; Encode does not validate it.
//
// Encoding is deterministic: the same surface and offset produce an
// identical AngleMap. Where two voxels land on the same pixel slot of the
// same line the later voxel's colour wins.
func (c *Codec) Encode(surface PixelSurface, pixelOffset int) AngleMap {
	acc := make(map[int]map[lineAddr]*[WPixels]PixelColor)

	for _, v := range surface {
		col := c.column(v.X, v.Y)
		zi := col[nearestIndex(col, v.Z)]

		lines := acc[zi.angle]
		if lines == nil {
			lines = make(map[lineAddr]*[WPixels]PixelColor)
			acc[zi.angle] = lines
		}
		key := lineAddr{screen: zi.sp.Screen, addr: zi.sp.Addr}
		pixels := lines[key]
		if pixels == nil {
			pixels = new([WPixels]PixelColor)
			for i := range pixels {
				pixels[i] = ColorOff
			}
			lines[key] = pixels
		}
		pixels[zi.sp.Pixel] = v.Color
	}

	m := make(AngleMap, len(acc))
	for angle, lines := range acc {
		keys := make([]lineAddr, 0, len(lines))
		for k := range lines {
			keys = append(keys, k)
		}
		sort.Slice(keys, func(i, j int) bool {
			if keys[i].screen != keys[j].screen {
				return keys[i].screen < keys[j].screen
			}
			return keys[i].addr < keys[j].addr
		})

		out := make([]ScreenLine, 0, len(keys))
		for _, k := range keys {
			l := ScreenLine{Screen: k.screen, Addr: k.addr, Pixels: *lines[k]}
			applyPixelOffset(&l.Pixels, pixelOffset)
			out = append(out, l)
		}
		m[angle] = out
	}
	return m
}

// nearestIndex finds the lookup entry whose quantised height is nearest z.
// An exact match wins; otherwise of the two neighbours of the insertion
// point the closer is chosen, ties going to the higher index.
func nearestIndex(col []pixelZInfo, z int) int {
	i := sort.Search(len(col), func(i int) bool { return col[i].pixel >= z })
	switch {
	case i < len(col) && col[i].pixel == z:
		return i
	case i == 0:
		return 0
	case i == len(col):
		return len(col) - 1
	}
	if 2*z < col[i-1].pixel+col[i].pixel {
		return i - 1
	}
	return i
}

// applyPixelOffset shifts a scan line's pixel slots horizontally. A
// positive offset rotates right and clears the leading slots; a negative
// offset rotates left and clears the trailing slots.
func applyPixelOffset(pixels *[WPixels]PixelColor, offset int) {
	if offset == 0 {
		return
	}
	var shifted [WPixels]PixelColor
	if offset > 0 {
		for i := range shifted {
			shifted[i] = pixels[(i-offset+WPixels)%WPixels]
		}
		for i := 0; i < offset && i < WPixels; i++ {
			shifted[i] = ColorOff
		}
	} else {
		n := -offset
		for i := range shifted {
			shifted[i] = pixels[(i+n)%WPixels]
		}
		for i := WPixels - n; i < WPixels; i++ {
			if i >= 0 {
				shifted[i] = ColorOff
			}
		}
	}
	*pixels = shifted
}

// RotateAngles shifts every angle key by offset, modulo TotalAngles. The
// codec itself emits angle 0 aligned with the lookup table; hosts apply the
// display's physical zero here.
func RotateAngles(m AngleMap, offset int) AngleMap {
	if offset == 0 {
		return m
	}
	out := make(AngleMap, len(m))
	for angle, lines := range m {
		k := (angle + offset) % TotalAngles
		if k < 0 {
			k += TotalAngles
		}
		out[k] = lines
	}
	return out
}
