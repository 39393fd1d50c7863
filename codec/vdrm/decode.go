/*
DESCRIPTION
  decode.go reconstructs a floating-point point cloud from per-angle
  scan-line commands, inverting the encoder's projection up to quantisation
  loss. The decoder is used by the software preview; the physical display
  consumes the packed form instead.

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

import (
	"math"

	"github.com/ausocean/vdrm/geom"
)

// Point3 is a reconstructed 3D point in normalised volume units.
type Point3 struct {
	X, Y, Z float64
}

// ColorPoint3 is a reconstructed point with its pixel slot's colour.
type ColorPoint3 struct {
	Point3
	Color PixelColor
}

// Decode reconstructs the float point cloud represented by an angle map.
func Decode(m AngleMap) []Point3 {
	pts := DecodeColors(m)
	out := make([]Point3, len(pts))
	for i, p := range pts {
		out[i] = p.Point3
	}
	return out
}

// DecodeColors is Decode retaining each point's colour.
func DecodeColors(m AngleMap) []ColorPoint3 {
	var out []ColorPoint3
	for _, angle := range m.Angles() {
		phi := AngleToRadians(angle)
		a := geom.Coord{X: rayLen * math.Cos(phi), Y: rayLen * math.Sin(phi)}
		a1 := a.Scale(-1)
		cc := geom.Line{
			Start: geom.Coord{X: a.Y, Y: -a.X},
			End:   geom.Coord{X: -a.Y, Y: a.X},
		}

		for _, line := range m[angle] {
			if line.Screen < 0 || line.Screen >= NumScreens {
				panic("vdrm: screen index out of range")
			}
			// Recover the screen strike point from the line address.
			t := (PixelToV(line.Addr) + CircleR) / (2 * CircleR)
			s := screenLines[line.Screen].Interpolate(t)

			// The scan plane's horizontal extent through this address.
			s1 := s.Sub(a).Add(a1)
			s2 := s.Add(a)
			q, kind := geom.Intersect(geom.Line{Start: s1, End: s2}, cc)
			if kind != geom.IntersectPoint {
				panic("vdrm: scan plane reconstruction undefined")
			}

			z := 2*CircleR - geom.Dist(q, s)

			for idx, color := range line.Pixels {
				if !color.Lit() {
					continue
				}
				// Signed displacement of the point from Q along the ray.
				d := PixelToV(idx)
				disp := geom.Line{Start: geom.Coord{}, End: a1}.Interpolate(math.Abs(d) / rayLen)
				p := q.Add(disp)
				if d < 0 {
					p = q.Sub(disp)
				}
				out = append(out, ColorPoint3{
					Point3: Point3{X: p.X, Y: p.Y, Z: z},
					Color:  color,
				})
			}
		}
	}
	return out
}
