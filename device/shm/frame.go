/*
DESCRIPTION
  frame.go provides decoding of the raw emulator z-buffer region into
  device.Frame values. The region layout is a u64 timestamp followed by one
  u64 per pixel; all fields are decoded explicitly as little-endian.

AUTHORS
  Saxon A. Nelson-Milton <saxon@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package shm provides frame sources reading the emulator's z-buffer,
// either live from a shared memory region or from a dumped frame file.
package shm

import (
	"encoding/binary"

	"github.com/pkg/errors"

	"github.com/ausocean/vdrm/device"
)

// RegionSize is the byte size of a z-buffer region: a u64 timestamp then
// one u64 per pixel.
const RegionSize = 8 + 8*device.FrameWidth*device.FrameHeight

// ErrRegionSize is returned when a region or file is not exactly one frame.
var ErrRegionSize = errors.New("region is not a whole frame")

// decodeFrame decodes a raw z-buffer region. Each pixel word carries the
// rgba bytes in its upper half and the depth in its low 16 bits; fully
// black pixels force depth zero so cleared background does not register.
func decodeFrame(b []byte) (*device.Frame, error) {
	if len(b) != RegionSize {
		return nil, ErrRegionSize
	}
	f := &device.Frame{Timestamp: binary.LittleEndian.Uint64(b[:8])}
	for i := range f.Pixels {
		word := binary.LittleEndian.Uint64(b[8+8*i:])
		rgba := uint32(word >> 32)
		p := device.FramePixel{
			R: uint8(rgba),
			G: uint8(rgba >> 8),
			B: uint8(rgba >> 16),
			A: uint8(rgba >> 24),
			Z: uint16(word),
		}
		if rgba&0x00ffffff == 0 {
			p.Z = 0
		}
		f.Pixels[i] = p
	}
	return f, nil
}
