/*
DESCRIPTION
  preview.go converts encoder output and raw emulator frames into float
  point clouds for the preview widget, and projects clouds for 2D display.

AUTHORS
  Saxon A. Nelson-Milton <saxon@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package preview adapts codec output for on-screen display: point cloud
// conversion, view projection, and a cache of encoded surfaces keyed by
// the preview parameters.
package preview

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/ausocean/vdrm/codec/vdrm"
	"github.com/ausocean/vdrm/device"
)

// Params are the preview widget's view and codec parameters. Pitch and Yaw
// only affect projection; the remaining fields select what is encoded and
// therefore key the surface cache.
type Params struct {
	Pitch, Yaw  float64
	SectionY    int
	PixelOffset int
	AngleOffset int
}

// SectionFilter restricts a surface to voxel rows at or below sectionY,
// the widget's section cut.
func SectionFilter(s vdrm.PixelSurface, sectionY int) vdrm.PixelSurface {
	out := make(vdrm.PixelSurface, 0, len(s))
	for _, v := range s {
		if v.Y <= sectionY {
			out = append(out, v)
		}
	}
	return out
}

// CloudFromFrame converts a decoded emulator frame into unit-cube points.
// Black pixels carry no geometry and are skipped.
func CloudFromFrame(f *device.Frame) []vdrm.ColorPoint3 {
	var out []vdrm.ColorPoint3
	for y := 0; y < device.FrameHeight; y++ {
		for x := 0; x < device.FrameWidth; x++ {
			p := f.At(x, y)
			if p.Z == 0 {
				continue
			}
			out = append(out, vdrm.ColorPoint3{
				Point3: vdrm.Point3{
					X: float64(x) / device.FrameWidth,
					Y: float64(y) / device.FrameHeight,
					Z: float64(p.Z) / math.MaxUint16,
				},
				Color: vdrm.PixelColor(p.R>>7 | p.G>>7<<1 | p.B>>7<<2),
			})
		}
	}
	return out
}

// Project maps 3D points to view coordinates: yaw about the vertical axis
// then pitch about the horizontal. The returned points' X and Y are the
// screen plane; Z is retained as view depth.
func Project(pts []vdrm.Point3, pitch, yaw float64) []vdrm.Point3 {
	sy, cy := math.Sincos(yaw)
	sp, cp := math.Sincos(pitch)
	out := make([]vdrm.Point3, len(pts))
	for i, p := range pts {
		x := p.X*cy - p.Y*sy
		y := p.X*sy + p.Y*cy
		out[i] = vdrm.Point3{
			X: x,
			Y: y*cp - p.Z*sp,
			Z: y*sp + p.Z*cp,
		}
	}
	return out
}

// MeanError reports the mean horizontal distance from each voxel of s to
// its nearest decoded point in cloud. It is a smoke measure of round-trip
// quality for logging, not a guarantee.
func MeanError(s vdrm.PixelSurface, cloud []vdrm.Point3) float64 {
	if len(s) == 0 || len(cloud) == 0 {
		return math.NaN()
	}
	dists := make([]float64, len(s))
	for i, v := range s {
		wantX, wantY := vdrm.PixelToV(v.X), vdrm.PixelToV(v.Y)
		best := math.Inf(1)
		for _, p := range cloud {
			d := math.Hypot(p.X-wantX, p.Y-wantY)
			if d < best {
				best = d
			}
		}
		dists[i] = best
	}
	return stat.Mean(dists, nil)
}
