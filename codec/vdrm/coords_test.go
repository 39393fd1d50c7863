/*
DESCRIPTION
  coords_test.go contains tests for the coordinate mapping functions.

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
	"testing"
)

func TestPixelVRoundTrip(t *testing.T) {
	for p := 0; p < WPixels; p++ {
		v := PixelToV(p)
		if v < -CircleR || v >= CircleR {
			t.Errorf("PixelToV(%d) = %v outside volume", p, v)
		}
		got, ok := VToPixel(v)
		if !ok || got != p {
			t.Errorf("VToPixel(PixelToV(%d)) = %d, %v; want %d, true", p, got, ok, p)
		}
	}
}

func TestVToPixelOutOfRange(t *testing.T) {
	for _, v := range []float64{-1.1, -2, 1.02, 5} {
		if p, ok := VToPixel(v); ok {
			t.Errorf("VToPixel(%v) = %d, true; want out of range", v, p)
		}
	}
}

func TestPixelHRoundTrip(t *testing.T) {
	for p := 0; p < HPixels; p++ {
		h := PixelToH(p)
		if got := HToPixel(h); got != p {
			t.Errorf("HToPixel(PixelToH(%d)) = %d; want %d", p, got, p)
		}
	}
}

func TestHToPixelClamp(t *testing.T) {
	if got := HToPixel(0); got != 0 {
		t.Errorf("HToPixel(0) = %d; want 0", got)
	}
	if got := HToPixel(-0.5); got != 0 {
		t.Errorf("HToPixel(-0.5) = %d; want 0", got)
	}
}

func TestHalfCellOffset(t *testing.T) {
	// The sampling point is the voxel centre, so pixel 0 maps to half a
	// cell above the lower bound on both axes.
	if got, want := PixelToV(0), -CircleR+CircleR/WPixels; math.Abs(got-want) > 1e-15 {
		t.Errorf("PixelToV(0) = %v; want %v", got, want)
	}
	if got, want := PixelToH(0), CircleR/(2*HPixels); math.Abs(got-want) > 1e-15 {
		t.Errorf("PixelToH(0) = %v; want %v", got, want)
	}
}

func TestAngleToRadians(t *testing.T) {
	if got := AngleToRadians(0); got != 0 {
		t.Errorf("AngleToRadians(0) = %v; want 0", got)
	}
	if got, want := AngleToRadians(25), math.Pi/2; math.Abs(got-want) > 1e-12 {
		t.Errorf("AngleToRadians(25) = %v; want %v", got, want)
	}
	if got, want := AngleToRadians(TotalAngles), 2*math.Pi; math.Abs(got-want) > 1e-12 {
		t.Errorf("AngleToRadians(TotalAngles) = %v; want %v", got, want)
	}
}
