//go:build withcv
// +build withcv

/*
DESCRIPTION
  imgsurface.go provides a voxel surface generator that builds a height
  field from an image file, using OpenCV for reading and resizing.

AUTHORS
  Scott Barnard <scott@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package vdrm

import (
	"image"

	"gocv.io/x/gocv"

	"github.com/pkg/errors"
)

// ImageSurface reads the image at path, resizes it to the voxel grid and
// returns a surface whose heights follow the image luminance. Black pixels
// emit no voxel; everything else maps to heights 1..31 with colour 7.
func ImageSurface(path string) (PixelSurface, error) {
	img := gocv.IMRead(path, gocv.IMReadGrayScale)
	if img.Empty() {
		return nil, errors.Errorf("could not read image: %s", path)
	}
	defer img.Close()

	resized := gocv.NewMat()
	defer resized.Close()
	gocv.Resize(img, &resized, image.Pt(WPixels, WPixels), 0, 0, gocv.InterpolationArea)

	var s PixelSurface
	for x := 0; x < WPixels; x++ {
		for y := 0; y < WPixels; y++ {
			lum := resized.GetUCharAt(y, x)
			if lum == 0 {
				continue
			}
			z := int(lum) >> 3
			if z < 1 {
				z = 1
			}
			s = append(s, SurfacePixel{X: x, Y: y, Z: z, Color: 7})
		}
	}
	return s, nil
}
