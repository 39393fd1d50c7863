/*
DESCRIPTION
  file.go provides FileSource, a FrameSource reading dumped z-buffer frames
  from a file. A dump is the raw region bytes; the source reports a frame
  when the file's modification time advances, so it pairs naturally with a
  directory watcher.

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
	"os"
	"time"

	"github.com/pkg/errors"

	"github.com/ausocean/vdrm/device"
)

// FileSource is a FrameSource reading a dumped z-buffer frame file.
type FileSource struct {
	path    string
	mod     time.Time
	haveOne bool
	running bool
}

// NewFileSource returns a FileSource for the dump at path.
func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

// Name returns the name of the source.
func (s *FileSource) Name() string { return "FileSource" }

// Start checks the dump exists and has a whole frame in it.
func (s *FileSource) Start() error {
	info, err := os.Stat(s.path)
	if err != nil {
		return errors.Wrap(err, "could not stat frame dump")
	}
	if info.Size() != RegionSize {
		return ErrRegionSize
	}
	s.haveOne = false
	s.running = true
	return nil
}

// Stop marks the source stopped.
func (s *FileSource) Stop() error {
	s.running = false
	return nil
}

// IsRunning is used to determine if the source is running.
func (s *FileSource) IsRunning() bool { return s.running }

// ReadIfNewer decodes the dump, or returns nil when the file has not been
// modified since the previous read.
func (s *FileSource) ReadIfNewer() (*device.Frame, error) {
	if !s.running {
		return nil, errors.New("file source has not been started, can't read")
	}

	info, err := os.Stat(s.path)
	if err != nil {
		return nil, errors.Wrap(err, "could not stat frame dump")
	}
	if s.haveOne && !info.ModTime().After(s.mod) {
		return nil, nil
	}

	b, err := os.ReadFile(s.path)
	if err != nil {
		return nil, errors.Wrap(err, "could not read frame dump")
	}
	f, err := decodeFrame(b)
	if err != nil {
		return nil, err
	}
	s.mod = info.ModTime()
	s.haveOne = true
	return f, nil
}
