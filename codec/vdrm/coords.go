/*
DESCRIPTION
  coords.go provides the linear conversions between integer pixel indices,
  normalised cartesian units and rotation angles. These conversions define
  the quantisation grid: the half-cell offset puts the sampling point at the
  voxel centre, not the corner.

AUTHORS
  Saxon A. Nelson-Milton <saxon@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package vdrm

import "math"

// Cell sizes of the quantisation grid.
const (
	cellW = 2 * CircleR / WPixels // Horizontal cell, full diameter over 64.
	cellH = CircleR / HPixels     // Vertical cell, height 0..R over 32.
)

// PixelToV converts a horizontal pixel index to the cartesian coordinate of
// the cell centre.
func PixelToV(p int) float64 {
	return float64(p)*cellW + cellW/2 - CircleR
}

// VToPixel converts a cartesian coordinate to a horizontal pixel index.
// ok is false when v falls outside the 64-cell grid.
func VToPixel(v float64) (p int, ok bool) {
	p = int(math.Floor((v+CircleR)/cellW - 0.5))
	if p < 0 || p >= WPixels {
		return 0, false
	}
	return p, true
}

// PixelToH converts a vertical pixel index to a physical height, measured
// from the volume base up.
func PixelToH(p int) float64 {
	return float64(p)*cellH + cellH/2
}

// HToPixel converts a physical height to a vertical pixel index. Negative
// results clamp to zero; heights above R index past the 32-cell column, so
// callers wanting an on-display slot must keep heights within range.
func HToPixel(h float64) int {
	p := int(math.Floor(h/cellH - 0.5))
	if p < 0 {
		p = 0
	}
	return p
}

// AngleToRadians converts a rotation step to radians.
func AngleToRadians(a int) float64 {
	return float64(a) * 2 * math.Pi / TotalAngles
}
