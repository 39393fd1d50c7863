/*
DESCRIPTION
  geom.go provides the small set of 2D geometric primitives used by the VDRM
  codec: coordinates, line segments, segment intersection, distance and
  interpolation.

AUTHORS
  Saxon A. Nelson-Milton <saxon@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package geom provides 2D geometric primitives over float64 coordinates.
package geom

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// Coord is a 2D cartesian coordinate.
type Coord = r2.Vec

// Line is a 2D line segment from Start to End.
type Line struct {
	Start, End Coord
}

// NewLine returns the line segment from (sx,sy) to (ex,ey).
func NewLine(sx, sy, ex, ey float64) Line {
	return Line{Start: Coord{X: sx, Y: sy}, End: Coord{X: ex, Y: ey}}
}

// IntersectKind describes the result of intersecting two segments.
type IntersectKind int

const (
	IntersectNone      IntersectKind = iota // The segments do not meet.
	IntersectPoint                          // The segments meet in a single point.
	IntersectCollinear                      // The segments lie on the same line.
)

// f64Eps is the distance between 1.0 and the next representable float64.
var f64Eps = math.Nextafter(1, 2) - 1

// Intersect returns the intersection of segments a and b. The returned
// coordinate is meaningful only when the kind is IntersectPoint. Parallelism
// is decided against the platform epsilon scaled by the segment magnitudes.
func Intersect(a, b Line) (Coord, IntersectKind) {
	r := a.End.Sub(a.Start)
	s := b.End.Sub(b.Start)
	qp := b.Start.Sub(a.Start)

	rxs := r2.Cross(r, s)
	qpxr := r2.Cross(qp, r)

	eps := f64Eps * r2.Norm(r) * r2.Norm(s)
	if math.Abs(rxs) <= eps {
		if math.Abs(qpxr) <= eps*r2.Norm(qp) || qpxr == 0 {
			return Coord{}, IntersectCollinear
		}
		return Coord{}, IntersectNone
	}

	t := r2.Cross(qp, s) / rxs
	u := qpxr / rxs
	if t < 0 || t > 1 || u < 0 || u > 1 {
		return Coord{}, IntersectNone
	}
	return a.Start.Add(r.Scale(t)), IntersectPoint
}

// Dist returns the euclidean distance between a and b.
func Dist(a, b Coord) float64 {
	return r2.Norm(a.Sub(b))
}

// Dot returns the dot product of a and b.
func Dot(a, b Coord) float64 {
	return r2.Dot(a, b)
}

// Length returns the euclidean length of l.
func (l Line) Length() float64 {
	return Dist(l.Start, l.End)
}

// Interpolate returns the point a fraction t along l from Start, so t = 0
// gives Start and t = 1 gives End.
func (l Line) Interpolate(t float64) Coord {
	return l.Start.Add(l.End.Sub(l.Start).Scale(t))
}
