/*
DESCRIPTION
  vdrm.go provides the Codec type and the construction of the precomputed
  voxel lookup table that maps every voxel column and rotation angle to the
  screen, scan-line address and pixel slot lit when a radial slice of the
  volume passes one of the three LED panels.

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

// Package vdrm implements the geometric encoder and decoder for a
// spinning-mirror volumetric display driven by three flat LED panels. A
// voxel surface is encoded into per-rotation-angle scan-line commands, and
// scan-line commands are decoded back into a float point cloud for preview.
package vdrm

import (
	"fmt"
	"math"
	"sort"

	"github.com/ausocean/vdrm/geom"
)

// Display geometry constants.
const (
	WPixels     = 64  // Voxels per horizontal side, and pixels per scan line.
	HPixels     = 32  // Vertical voxel resolution.
	TotalAngles = 100 // Rotation steps per revolution.
	CircleR     = 1.0 // Normalised half-width of the cylindrical volume.
)

// rayLen is the length of the construction ray used when projecting a voxel
// onto a screen. It is chosen so the ray endpoint always lies outside the
// screen triangle.
const rayLen = 4 * CircleR

// screenLines are the three LED panels as 2D segments inscribed in the
// volume cross-section. Each has euclidean length 2R.
var screenLines = [3]geom.Line{
	geom.NewLine(-1, -1, 1, -1),
	geom.NewLine(1-math.Sqrt2/2, 1+math.Sqrt2/2, 1+math.Sqrt2/2, 1-math.Sqrt2/2),
	geom.NewLine(-1, math.Sqrt(3), -2, 0),
}

// NumScreens is the number of LED panels.
const NumScreens = len(screenLines)

// PixelColor is a 3-bit RGB colour occupying a pixel slot, or ColorOff for
// an unlit slot. Bits above the low three are reserved.
type PixelColor uint8

// ColorOff marks a pixel slot with no LED lit.
const ColorOff PixelColor = 0xff

// Lit reports whether the slot holds a colour.
func (c PixelColor) Lit() bool { return c != ColorOff }

// ScreenPixel locates a single LED: the panel, the scan-line address on the
// panel, and the horizontal pixel slot within the scan line.
type ScreenPixel struct {
	Screen int // Panel index, 0..2.
	Addr   int // Scan-line address, 0..63.
	Pixel  int // Pixel slot within the scan line, 0..63.
}

// pixelZInfo records, for one voxel column at one angle, the physical
// height swept at that angle and the LED that lights it.
type pixelZInfo struct {
	angle  int     // Rotation step at which the column is struck.
	height float64 // Physical height of the lit point.
	pixel  int     // Quantised height index; the lookup sort key.
	sp     ScreenPixel
}

// ScreenLine is one emitted scan line: every lit pixel slot on one panel
// row at one rotation angle.
type ScreenLine struct {
	Screen int
	Addr   int
	Pixels [WPixels]PixelColor
}

// NewScreenLine returns a ScreenLine with all pixel slots unlit.
func NewScreenLine(screen, addr int) ScreenLine {
	l := ScreenLine{Screen: screen, Addr: addr}
	for i := range l.Pixels {
		l.Pixels[i] = ColorOff
	}
	return l
}

// AngleMap is the encoder's primary output: rotation angle to the scan
// lines lit at that angle. Lines are sorted by (screen, addr); iterate
// angles in ascending order via Angles for deterministic output.
type AngleMap map[int][]ScreenLine

// Angles returns the map's keys in ascending order.
func (m AngleMap) Angles() []int {
	angles := make([]int, 0, len(m))
	for a := range m {
		angles = append(angles, a)
	}
	sort.Ints(angles)
	return angles
}

// Codec encodes voxel surfaces into angle maps. The lookup table is built
// once by New and read-only thereafter, so a Codec may be shared between
// goroutines without synchronisation.
type Codec struct {
	// xy holds each voxel column's lookup entries, indexed x*WPixels+y and
	// sorted ascending by quantised height. Columns outside every screen
	// intersection are nil.
	xy [WPixels * WPixels][]pixelZInfo
}

// New returns a Codec with the voxel lookup table fully built.
func New() *Codec {
	c := &Codec{}
	for x := 0; x < WPixels; x++ {
		for y := 0; y < WPixels; y++ {
			var col []pixelZInfo
			for angle := 0; angle < TotalAngles; angle++ {
				zi, ok := calcHeight(angle, x, y)
				if !ok {
					continue
				}
				col = append(col, zi)
			}
			// Sort on the integer pixel key; ties keep angle order.
			sort.SliceStable(col, func(i, j int) bool { return col[i].pixel < col[j].pixel })
			c.xy[x*WPixels+y] = col
		}
	}
	return c
}

// column returns the lookup entries for voxel column (x, y). An absent
// column is a programmer error: callers feed the codec voxels on its own
// grid, and every grid column within the volume has entries.
func (c *Codec) column(x, y int) []pixelZInfo {
	if x < 0 || x >= WPixels || y < 0 || y >= WPixels {
		panic(fmt.Sprintf("vdrm: voxel (%d,%d) outside codec grid", x, y))
	}
	col := c.xy[x*WPixels+y]
	if col == nil {
		panic(fmt.Sprintf("vdrm: voxel column (%d,%d) has no screen intersection", x, y))
	}
	return col
}

// calcHeight computes the lookup entry for voxel column (x, y) at the given
// rotation step, or ok=false when the column misses every screen or the
// resulting address or pixel slot falls off the panel.
//
// The construction: A is a point on the rotation ray well outside the
// screen triangle and A' its opposite. The segment from the voxel P towards
// P+A strikes the first screen at S. The line through P parallel to the ray
// meets the perpendicular through the origin at Q, the voxel's projection
// onto the rotating scan plane.
func calcHeight(angle, x, y int) (pixelZInfo, bool) {
	phi := AngleToRadians(angle)
	a := geom.Coord{X: rayLen * math.Cos(phi), Y: rayLen * math.Sin(phi)}
	a1 := a.Scale(-1)
	p := geom.Coord{X: PixelToV(x), Y: PixelToV(y)}
	b := a.Add(p)
	b1 := a1.Add(p)

	pb := geom.Line{Start: p, End: b}
	var (
		s      geom.Coord
		screen int
		start  geom.Coord
		found  bool
	)
	for i, line := range screenLines {
		pt, kind := geom.Intersect(line, pb)
		if kind == geom.IntersectPoint {
			s, screen, start, found = pt, i, line.Start, true
			break
		}
	}
	if !found {
		return pixelZInfo{}, false
	}

	bb := geom.Line{Start: b, End: b1}
	cc := geom.Line{
		Start: geom.Coord{X: a.Y, Y: -a.X},
		End:   geom.Coord{X: -a.Y, Y: a.X},
	}
	q, kind := geom.Intersect(bb, cc)
	if kind != geom.IntersectPoint {
		panic("vdrm: scan plane projection undefined")
	}

	h := 2*CircleR - geom.Dist(q, s)

	// Signed offset of the voxel along the scan line; negative when the
	// voxel sits between the screen and the scan plane.
	hScreen := geom.Dist(p, q)
	if geom.Dot(p.Sub(q), s.Sub(q)) >= 0 {
		hScreen = -hScreen
	}

	lenAddr := geom.Dist(start, s) - CircleR
	addr, ok := VToPixel(lenAddr)
	if !ok {
		return pixelZInfo{}, false
	}
	pixel, ok := VToPixel(hScreen)
	if !ok {
		return pixelZInfo{}, false
	}

	return pixelZInfo{
		angle:  angle,
		height: h,
		pixel:  HToPixel(h),
		sp:     ScreenPixel{Screen: screen, Addr: addr, Pixel: pixel},
	}, true
}
