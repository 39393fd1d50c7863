/*
DESCRIPTION
  file_test.go contains tests for z-buffer frame decoding and the file
  frame source.

AUTHORS
  Saxon A. Nelson-Milton <saxon@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package shm

import (
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/ausocean/vdrm/device"
)

// testRegion builds a region with the given timestamp and two interesting
// pixels: a coloured pixel with depth at (1, 0), and a black pixel with a
// non-zero stored depth at (2, 0) that must decode as depth zero.
func testRegion(ts uint64) []byte {
	b := make([]byte, RegionSize)
	binary.LittleEndian.PutUint64(b[:8], ts)

	colored := uint64(0x04030201)<<32 | 0x1234
	binary.LittleEndian.PutUint64(b[8+8*1:], colored)

	black := uint64(0xff000000)<<32 | 0x4321
	binary.LittleEndian.PutUint64(b[8+8*2:], black)
	return b
}

func TestDecodeFrame(t *testing.T) {
	f, err := decodeFrame(testRegion(77))
	if err != nil {
		t.Fatalf("unexpected error from decodeFrame: %v", err)
	}
	if f.Timestamp != 77 {
		t.Errorf("timestamp = %d, want 77", f.Timestamp)
	}

	got := f.At(1, 0)
	want := device.FramePixel{R: 1, G: 2, B: 3, A: 4, Z: 0x1234}
	if got != want {
		t.Errorf("coloured pixel = %+v, want %+v", got, want)
	}

	if z := f.At(2, 0).Z; z != 0 {
		t.Errorf("black pixel depth = %d, want 0", z)
	}
}

func TestDecodeFrameShort(t *testing.T) {
	_, err := decodeFrame(make([]byte, 16))
	if err != ErrRegionSize {
		t.Errorf("got error %v, want ErrRegionSize", err)
	}
}

func TestFileSource(t *testing.T) {
	path := filepath.Join(t.TempDir(), "frame")
	err := os.WriteFile(path, testRegion(1), 0644)
	if err != nil {
		t.Fatalf("could not write dump: %v", err)
	}

	s := NewFileSource(path)
	if _, err := s.ReadIfNewer(); err == nil {
		t.Error("read before Start did not fail")
	}

	err = s.Start()
	if err != nil {
		t.Fatalf("unexpected error from Start: %v", err)
	}
	if !s.IsRunning() {
		t.Error("source not running after Start")
	}

	f, err := s.ReadIfNewer()
	if err != nil {
		t.Fatalf("unexpected error from ReadIfNewer: %v", err)
	}
	if f == nil || f.Timestamp != 1 {
		t.Fatalf("first read = %+v, want frame with timestamp 1", f)
	}

	// Unchanged file: no new frame.
	f, err = s.ReadIfNewer()
	if err != nil {
		t.Fatalf("unexpected error from repeat ReadIfNewer: %v", err)
	}
	if f != nil {
		t.Error("unchanged dump reported a new frame")
	}

	// Rewritten file with a future modification time: new frame.
	err = os.WriteFile(path, testRegion(2), 0644)
	if err != nil {
		t.Fatalf("could not rewrite dump: %v", err)
	}
	future := time.Now().Add(time.Second)
	err = os.Chtimes(path, future, future)
	if err != nil {
		t.Fatalf("could not bump dump mtime: %v", err)
	}
	f, err = s.ReadIfNewer()
	if err != nil {
		t.Fatalf("unexpected error from post-rewrite ReadIfNewer: %v", err)
	}
	if f == nil || f.Timestamp != 2 {
		t.Fatalf("post-rewrite read = %+v, want frame with timestamp 2", f)
	}

	err = s.Stop()
	if err != nil {
		t.Fatalf("unexpected error from Stop: %v", err)
	}
	if s.IsRunning() {
		t.Error("source still running after Stop")
	}
}

func TestFileSourceWrongSize(t *testing.T) {
	path := filepath.Join(t.TempDir(), "frame")
	err := os.WriteFile(path, make([]byte, 100), 0644)
	if err != nil {
		t.Fatalf("could not write dump: %v", err)
	}
	if err := NewFileSource(path).Start(); err != ErrRegionSize {
		t.Errorf("got error %v, want ErrRegionSize", err)
	}
}
