//go:build linux && (amd64 || arm64)
// +build linux,amd64 linux,arm64

/*
DESCRIPTION
  shm_linux.go provides Source, a FrameSource reading the emulator's
  z-buffer live from a System V shared memory region. Reads snapshot the
  whole region under the region's semaphore and are reported only when the
  leading timestamp has advanced.

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
	"unsafe"

	"github.com/pkg/errors"
	"golang.org/x/sys/unix"

	"github.com/ausocean/vdrm/device"
)

// DefaultKey is the shared memory key published by the emulator.
const DefaultKey = 2334

// Source is a FrameSource attached to a System V shared memory region.
type Source struct {
	key     int
	region  []byte
	semID   int
	last    uint64
	haveOne bool
	running bool
}

// NewSource returns a Source for the region at the given IPC key.
func NewSource(key int) *Source {
	return &Source{key: key}
}

// Name returns the name of the source.
func (s *Source) Name() string { return "SHMSource" }

// Start attaches the shared memory region and opens its semaphore.
func (s *Source) Start() error {
	id, err := unix.SysvShmGet(s.key, RegionSize, 0)
	if err != nil {
		return errors.Wrapf(err, "could not get shm segment for key %d", s.key)
	}
	region, err := unix.SysvShmAttach(id, 0, unix.SHM_RDONLY)
	if err != nil {
		return errors.Wrap(err, "could not attach shm segment")
	}
	if len(region) < RegionSize {
		unix.SysvShmDetach(region)
		return ErrRegionSize
	}

	semID, err := semGet(s.key)
	if err != nil {
		unix.SysvShmDetach(region)
		return errors.Wrapf(err, "could not get semaphore for key %d", s.key)
	}

	s.region = region
	s.semID = semID
	s.haveOne = false
	s.running = true
	return nil
}

// Stop detaches the region.
func (s *Source) Stop() error {
	s.running = false
	if s.region == nil {
		return nil
	}
	err := unix.SysvShmDetach(s.region)
	s.region = nil
	return errors.Wrap(err, "could not detach shm segment")
}

// IsRunning reports whether the source is attached.
func (s *Source) IsRunning() bool { return s.running }

// ReadIfNewer snapshots the region under the semaphore and decodes it. It
// returns nil when the region's timestamp has not advanced since the last
// successful read.
func (s *Source) ReadIfNewer() (*device.Frame, error) {
	if !s.running {
		return nil, errors.New("shm source has not been started, can't read")
	}

	err := semOp(s.semID, -1)
	if err != nil {
		return nil, errors.Wrap(err, "could not acquire region semaphore")
	}
	snapshot := make([]byte, RegionSize)
	copy(snapshot, s.region)
	err = semOp(s.semID, 1)
	if err != nil {
		return nil, errors.Wrap(err, "could not release region semaphore")
	}

	ts := binary.LittleEndian.Uint64(snapshot[:8])
	if s.haveOne && ts == s.last {
		return nil, nil
	}

	f, err := decodeFrame(snapshot)
	if err != nil {
		return nil, err
	}
	s.last = ts
	s.haveOne = true
	return f, nil
}

// sembuf mirrors the kernel's struct sembuf.
type sembuf struct {
	num uint16
	op  int16
	flg int16
}

// semGet opens the existing single-semaphore set at key.
func semGet(key int) (int, error) {
	id, _, errno := unix.Syscall(unix.SYS_SEMGET, uintptr(key), 1, 0)
	if errno != 0 {
		return 0, errno
	}
	return int(id), nil
}

// semOp applies op to the set's only semaphore.
func semOp(id int, op int16) error {
	sb := sembuf{num: 0, op: op, flg: 0}
	_, _, errno := unix.Syscall(unix.SYS_SEMOP, uintptr(id), uintptr(unsafe.Pointer(&sb)), 1)
	if errno != 0 {
		return errno
	}
	return nil
}
