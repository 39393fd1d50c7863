/*
DESCRIPTION
  surface.go provides synthetic voxel surface generators used to exercise
  the codec and the HUB75 tooling: a quadrant-coloured pyramid, flat and
  striped planes, and two fixed alignment patterns.

AUTHORS
  Trek Hopton <trek@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package vdrm

// Quadrant colours used by Pyramid, keyed by the signs of (x-32, y-32).
const (
	colorQuadPP PixelColor = 7
	colorQuadNP PixelColor = 1
	colorQuadNN PixelColor = 2
	colorQuadPN PixelColor = 5
)

// Pyramid returns a square pyramid apexed at the volume centre. For each
// column the candidate height is 32 minus the manhattan distance from the
// centre; columns whose candidate lies within [low, high] emit a voxel at
// the height's magnitude, coloured by quadrant.
func Pyramid(low, high int) PixelSurface {
	var s PixelSurface
	for x := 0; x < WPixels; x++ {
		for y := 0; y < WPixels; y++ {
			dx, dy := x-WPixels/2, y-WPixels/2
			h := HPixels - (abs(dx) + abs(dy))
			if h < low || h > high {
				continue
			}
			color := colorQuadPP
			switch {
			case dx < 0 && dy >= 0:
				color = colorQuadNP
			case dx < 0 && dy < 0:
				color = colorQuadNN
			case dx >= 0 && dy < 0:
				color = colorQuadPN
			}
			s = append(s, SurfacePixel{X: x, Y: y, Z: abs(h), Color: color})
		}
	}
	return s
}

// Plane returns the full 64x64 grid at a constant height, colour 7.
func Plane(h int) PixelSurface {
	s := make(PixelSurface, 0, WPixels*WPixels)
	for x := 0; x < WPixels; x++ {
		for y := 0; y < WPixels; y++ {
			s = append(s, SurfacePixel{X: x, Y: y, Z: h, Color: 7})
		}
	}
	return s
}

// CrossPlane returns a plane of 8-pixel stripes cycling through three
// height and colour pairs.
func CrossPlane() PixelSurface {
	s := make(PixelSurface, 0, WPixels*WPixels)
	for x := 0; x < WPixels; x++ {
		var z int
		var color PixelColor
		switch (x / 8) % 3 {
		case 0:
			z, color = 32, 1
		case 1:
			z, color = 16, 2
		case 2:
			z, color = 0, 5
		}
		for y := 0; y < WPixels; y++ {
			s = append(s, SurfacePixel{X: x, Y: y, Z: z, Color: color})
		}
	}
	return s
}

// Mock returns an alignment pattern: an 8x8 block in each quadrant corner
// at a distinct height with the quadrant's colour, and a 4x4 block at the
// volume centre at height zero. Useful for checking screen selection and
// angle zero on hardware.
func Mock() PixelSurface {
	var s PixelSurface
	blocks := []struct {
		x, y, size, z int
		color         PixelColor
	}{
		{52, 52, 8, 31, colorQuadPP},
		{4, 52, 8, 24, colorQuadNP},
		{4, 4, 8, 16, colorQuadNN},
		{52, 4, 8, 8, colorQuadPN},
		{30, 30, 4, 0, 7},
	}
	for _, b := range blocks {
		for x := b.x; x < b.x+b.size; x++ {
			for y := b.y; y < b.y+b.size; y++ {
				s = append(s, SurfacePixel{X: x, Y: y, Z: b.z, Color: b.color})
			}
		}
	}
	return s
}

// Mock2 returns a diamond ring at half height, coloured by quadrant. The
// ring's manhattan radius spans 20 to 23 inclusive.
func Mock2() PixelSurface {
	var s PixelSurface
	for x := 0; x < WPixels; x++ {
		for y := 0; y < WPixels; y++ {
			dx, dy := x-WPixels/2, y-WPixels/2
			r := abs(dx) + abs(dy)
			if r < 20 || r > 23 {
				continue
			}
			color := colorQuadPP
			switch {
			case dx < 0 && dy >= 0:
				color = colorQuadNP
			case dx < 0 && dy < 0:
				color = colorQuadNN
			case dx >= 0 && dy < 0:
				color = colorQuadPN
			}
			s = append(s, SurfacePixel{X: x, Y: y, Z: 16, Color: color})
		}
	}
	return s
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
