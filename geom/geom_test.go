/*
DESCRIPTION
  geom_test.go contains tests for the geom package.

AUTHORS
  Saxon A. Nelson-Milton <saxon@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package geom

import (
	"math"
	"testing"
)

const tol = 1e-12

func coordNear(a, b Coord) bool {
	return math.Abs(a.X-b.X) < tol && math.Abs(a.Y-b.Y) < tol
}

func TestIntersect(t *testing.T) {
	tests := []struct {
		name string
		a, b Line
		want Coord
		kind IntersectKind
	}{
		{
			name: "crossing at origin",
			a:    NewLine(-1, 0, 1, 0),
			b:    NewLine(0, -1, 0, 1),
			want: Coord{X: 0, Y: 0},
			kind: IntersectPoint,
		},
		{
			name: "crossing off axis",
			a:    NewLine(0, 0, 2, 2),
			b:    NewLine(0, 2, 2, 0),
			want: Coord{X: 1, Y: 1},
			kind: IntersectPoint,
		},
		{
			name: "touching at endpoint",
			a:    NewLine(0, 0, 1, 0),
			b:    NewLine(1, 0, 1, 1),
			want: Coord{X: 1, Y: 0},
			kind: IntersectPoint,
		},
		{
			name: "parallel",
			a:    NewLine(0, 0, 1, 0),
			b:    NewLine(0, 1, 1, 1),
			kind: IntersectNone,
		},
		{
			name: "collinear overlapping",
			a:    NewLine(0, 0, 2, 0),
			b:    NewLine(1, 0, 3, 0),
			kind: IntersectCollinear,
		},
		{
			name: "segments too short to meet",
			a:    NewLine(0, 0, 1, 0),
			b:    NewLine(2, -1, 2, 1),
			kind: IntersectNone,
		},
	}

	for _, test := range tests {
		got, kind := Intersect(test.a, test.b)
		if kind != test.kind {
			t.Errorf("%s: got kind %v, want %v", test.name, kind, test.kind)
			continue
		}
		if kind == IntersectPoint && !coordNear(got, test.want) {
			t.Errorf("%s: got point %v, want %v", test.name, got, test.want)
		}
	}
}

func TestDist(t *testing.T) {
	got := Dist(Coord{X: 0, Y: 0}, Coord{X: 3, Y: 4})
	if math.Abs(got-5) > tol {
		t.Errorf("got %v, want 5", got)
	}
}

func TestLength(t *testing.T) {
	l := NewLine(1-math.Sqrt(0.5), 1+math.Sqrt(0.5), 1+math.Sqrt(0.5), 1-math.Sqrt(0.5))
	if math.Abs(l.Length()-2) > tol {
		t.Errorf("got %v, want 2", l.Length())
	}
}

func TestInterpolate(t *testing.T) {
	l := NewLine(0, 0, 2, 4)
	tests := []struct {
		t    float64
		want Coord
	}{
		{0, Coord{X: 0, Y: 0}},
		{0.5, Coord{X: 1, Y: 2}},
		{1, Coord{X: 2, Y: 4}},
	}
	for _, test := range tests {
		if got := l.Interpolate(test.t); !coordNear(got, test.want) {
			t.Errorf("t=%v: got %v, want %v", test.t, got, test.want)
		}
	}
}

func TestDot(t *testing.T) {
	if got := Dot(Coord{X: 1, Y: 2}, Coord{X: 3, Y: -1}); got != 1 {
		t.Errorf("got %v, want 1", got)
	}
}
