//go:build !withcv
// +build !withcv

/*
DESCRIPTION
  Replaces the image surface generator when the codec is built without
  OpenCV. This is needed because build machines do not all have a copy of
  Open CV installed.

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

import "github.com/pkg/errors"

// ImageSurface is unavailable without the withcv build tag.
func ImageSurface(path string) (PixelSurface, error) {
	return nil, errors.New("image surfaces require building with the withcv tag")
}
