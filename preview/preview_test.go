/*
DESCRIPTION
  preview_test.go contains tests for the preview adapters and the surface
  cache.

AUTHORS
  Saxon A. Nelson-Milton <saxon@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package preview

import (
	"math"
	"reflect"
	"sync"
	"testing"

	"github.com/ausocean/vdrm/codec/vdrm"
	"github.com/ausocean/vdrm/device"
)

var (
	codecOnce sync.Once
	codec     *vdrm.Codec
)

func testCodec() *vdrm.Codec {
	codecOnce.Do(func() { codec = vdrm.New() })
	return codec
}

func TestSectionFilter(t *testing.T) {
	s := vdrm.Plane(16)
	cut := SectionFilter(s, 10)
	if len(cut) != vdrm.WPixels*11 {
		t.Errorf("section at 10 kept %d voxels, want %d", len(cut), vdrm.WPixels*11)
	}
	for _, v := range cut {
		if v.Y > 10 {
			t.Fatalf("voxel with y=%d survived section at 10", v.Y)
		}
	}
	if got := SectionFilter(s, vdrm.WPixels-1); len(got) != len(s) {
		t.Errorf("full section kept %d voxels, want %d", len(got), len(s))
	}
}

func TestProjectIdentity(t *testing.T) {
	pts := []vdrm.Point3{{X: 0.1, Y: 0.2, Z: 0.3}, {X: -0.5, Y: 0, Z: 1}}
	got := Project(pts, 0, 0)
	if !reflect.DeepEqual(got, pts) {
		t.Errorf("zero pitch and yaw changed points: %v", got)
	}
}

func TestProjectPitch(t *testing.T) {
	// A quarter-turn pitch maps height onto the view's vertical axis.
	got := Project([]vdrm.Point3{{X: 0, Y: 0, Z: 1}}, math.Pi/2, 0)
	want := vdrm.Point3{X: 0, Y: -1, Z: 0}
	if math.Abs(got[0].X-want.X) > 1e-12 ||
		math.Abs(got[0].Y-want.Y) > 1e-12 ||
		math.Abs(got[0].Z-want.Z) > 1e-12 {
		t.Errorf("got %v, want %v", got[0], want)
	}
}

func TestCloudFromFrame(t *testing.T) {
	f := &device.Frame{Timestamp: 1}
	f.Pixels[3] = device.FramePixel{R: 0xff, Z: 0x8000} // Column 3, row 0.
	pts := CloudFromFrame(f)
	if len(pts) != 1 {
		t.Fatalf("got %d points, want 1", len(pts))
	}
	p := pts[0]
	if math.Abs(p.X-3.0/device.FrameWidth) > 1e-12 || p.Y != 0 {
		t.Errorf("point at (%v,%v), want (%v,0)", p.X, p.Y, 3.0/device.FrameWidth)
	}
	if math.Abs(p.Z-float64(0x8000)/math.MaxUint16) > 1e-12 {
		t.Errorf("depth %v, want %v", p.Z, float64(0x8000)/math.MaxUint16)
	}
	if p.Color != 1 {
		t.Errorf("colour %d, want red bit only", p.Color)
	}
}

func TestSurfacesCache(t *testing.T) {
	s := NewSurfaces(testCodec(), vdrm.Pyramid(0, 32))

	p := Params{SectionY: 63, PixelOffset: 0, AngleOffset: 0}
	first := s.Render(p)
	if len(first) == 0 {
		t.Fatal("render produced no points")
	}
	m1 := s.AngleMap(p)

	// Same tuple: the cached angle map is reused.
	s.Render(Params{SectionY: 63, PixelOffset: 0, AngleOffset: 0, Pitch: 1})
	m2 := s.AngleMap(p)
	if !sameAngleMap(m1, m2) {
		t.Error("view-only parameter change recomputed the surface")
	}

	// Changed tuple: recompute with fewer voxels.
	cut := s.Render(Params{SectionY: 10})
	if len(cut) >= len(first) {
		t.Errorf("section cut did not shrink cloud: %d -> %d", len(first), len(cut))
	}
}

// sameAngleMap reports whether two angle maps share underlying line slices,
// i.e. no recompute happened between the two lookups.
func sameAngleMap(a, b vdrm.AngleMap) bool {
	if len(a) != len(b) {
		return false
	}
	for k, lines := range a {
		other, ok := b[k]
		if !ok || len(lines) != len(other) {
			return false
		}
		if len(lines) > 0 && &lines[0] != &other[0] {
			return false
		}
	}
	return true
}

func TestMeanError(t *testing.T) {
	surface := vdrm.Plane(16)
	cloud := vdrm.Decode(testCodec().Encode(surface, 0))
	err := MeanError(surface, cloud)
	if math.IsNaN(err) || err > 2.0/vdrm.WPixels {
		t.Errorf("mean horizontal error %v, want <= %v", err, 2.0/vdrm.WPixels)
	}
}
