/*
DESCRIPTION
  cache.go provides the Surfaces cache: one encoded-and-decoded surface
  held per parameter tuple, recomputed when the tuple changes. The preview
  widget owns a Surfaces handle; redraws only pay for encoding when a
  codec-relevant parameter moved.

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
	"sync"

	"github.com/ausocean/vdrm/codec/vdrm"
)

// cacheKey is the subset of Params that changes what gets encoded.
type cacheKey struct {
	sectionY    int
	pixelOffset int
	angleOffset int
}

// Surfaces caches the encode/decode of one surface per parameter tuple.
// The mutex exists because redraws may be requested from multiple event
// sources; there is no eviction beyond replacement.
type Surfaces struct {
	mu      sync.Mutex
	codec   *vdrm.Codec
	surface vdrm.PixelSurface

	valid bool
	key   cacheKey
	m     vdrm.AngleMap
	cloud []vdrm.Point3
}

// NewSurfaces returns a Surfaces cache over the given codec and source
// surface.
func NewSurfaces(c *vdrm.Codec, s vdrm.PixelSurface) *Surfaces {
	return &Surfaces{codec: c, surface: s}
}

// Render returns the projected point cloud for p, re-encoding only when
// p's codec-relevant parameters differ from the cached tuple.
func (s *Surfaces) Render(p Params) []vdrm.Point3 {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := cacheKey{sectionY: p.SectionY, pixelOffset: p.PixelOffset, angleOffset: p.AngleOffset}
	if !s.valid || key != s.key {
		m := s.codec.Encode(SectionFilter(s.surface, p.SectionY), p.PixelOffset)
		s.m = vdrm.RotateAngles(m, p.AngleOffset)
		s.cloud = vdrm.Decode(s.m)
		s.key = key
		s.valid = true
	}
	return Project(s.cloud, p.Pitch, p.Yaw)
}

// AngleMap returns the cached angle map for p, recomputing as Render does.
func (s *Surfaces) AngleMap(p Params) vdrm.AngleMap {
	s.Render(p)
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.m
}
