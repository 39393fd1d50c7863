/*
DESCRIPTION
  device.go provides FrameSource, an interface that describes a source of
  emulator z-buffer frames that can be started and stopped and polled for
  new frames, together with the decoded frame representation.

AUTHORS
  Saxon A. Nelson-Milton <saxon@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package device provides an interface and implementations for input
// sources from which preview frame data can be obtained.
package device

// Frame dimensions of the emulator z-buffer.
const (
	FrameWidth  = 256
	FrameHeight = 192
)

// FramePixel is one decoded z-buffer pixel: colour channels and depth.
type FramePixel struct {
	R, G, B, A uint8
	Z          uint16
}

// Frame is a decoded z-buffer frame. Pixels are in row-major order,
// FrameWidth per row.
type Frame struct {
	Timestamp uint64
	Pixels    [FrameWidth * FrameHeight]FramePixel
}

// At returns the pixel at column x, row y.
func (f *Frame) At(x, y int) FramePixel {
	return f.Pixels[y*FrameWidth+x]
}

// FrameSource describes a source of z-buffer frames. A FrameSource must be
// started before reading and stopped to release its resources.
type FrameSource interface {
	// Name returns the name of the FrameSource.
	Name() string

	// Start acquires the source's resources; after which ReadIfNewer may be
	// called to obtain frames.
	Start() error

	// Stop releases the source's resources. From this point reads will no
	// longer be successful.
	Stop() error

	// IsRunning is used to determine if the source is running.
	IsRunning() bool

	// ReadIfNewer returns the current frame, or nil when the frame
	// timestamp has not advanced since the previous read.
	ReadIfNewer() (*Frame, error)
}
