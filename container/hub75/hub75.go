/*
DESCRIPTION
  hub75.go provides the HUB75 frame packer. It flattens an encoded angle
  map into the three packed byte buffers consumed by the display's
  microcontroller firmware: a pixel buffer of scan-line bytes, an address
  buffer of delay-address words, and an angle index table.

AUTHORS
  Saxon A. Nelson-Milton <saxon@ausocean.org>
  Trek Hopton <trek@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package hub75 packs encoded VDRM angle maps into the flat buffer layout
// of a HUB75 LED controller driving three screens multiplexed onto a
// 32-row dual-bank panel.
package hub75

import (
	"encoding/binary"
	"math/bits"
	"os"
	"path/filepath"
	"sort"

	"github.com/pkg/errors"

	"github.com/ausocean/utils/logging"
	"github.com/ausocean/vdrm/codec/vdrm"
)

// Addressing constants. The panel is dual-bank: scan-line addresses fold
// in half, with the upper bank selected by the colour bit position rather
// than the address.
const (
	AddrMax       = vdrm.WPixels / 2 // 32 physical row addresses.
	colorBits     = 3                // 3-bit RGB per bank.
	totalAddrBits = 13               // Width of the address field in a delay word.
	delayCount    = 256              // Latch-delay count packed above the address field.
	angleInfoSize = 8                // Packed size of one AngleInfo record.
	lineBytes     = vdrm.WPixels     // Pixel bytes per packed scan line.
	delayWordSize = 4                // Bytes per delay-address word.
	screenMask    = 1<<vdrm.NumScreens - 1
)

// addrBits is the bit width of a folded row address.
var addrBits = bits.Len(uint(AddrMax)) - 1

// AngleInfo indexes one angle's span within the packed buffers.
type AngleInfo struct {
	PixelBufIdx uint32 // Byte offset of the angle's first scan line in the pixel buffer.
	AddrBufIdx  uint16 // Byte offset of the angle's first delay word in the address buffer.
	Lines       uint16 // Number of packed scan lines at this angle.
}

// Buffers holds the three packed buffers in the layout consumed by the
// display firmware.
type Buffers struct {
	Angle []byte // vdrm.TotalAngles AngleInfo records, little-endian.
	Pixel []byte // Concatenated 64-byte scan lines.
	Addr  []byte // Concatenated 4-byte delay-address words.
}

// Packer flattens angle maps. Configure with option functions passed to
// NewPacker.
type Packer struct {
	lo, hi int // Half-open angle range to include.
	log    logging.Logger
}

// NewPacker returns a Packer including the full angle range by default.
func NewPacker(l logging.Logger, opts ...func(*Packer) error) (*Packer, error) {
	p := &Packer{lo: 0, hi: vdrm.TotalAngles, log: l}
	for _, opt := range opts {
		err := opt(p)
		if err != nil {
			return nil, err
		}
	}
	return p, nil
}

// ErrAngleRange is returned for an option angle range outside [0, TotalAngles].
var ErrAngleRange = errors.New("angle range outside total angles")

// WithAngleRange is an option that can be passed to NewPacker to restrict
// packing to angles within the half-open range [lo, hi). Buffer offsets
// then index the included subset, but relative ordering is preserved, so
// runs with overlapping ranges produce matching buffer regions.
func WithAngleRange(lo, hi int) func(*Packer) error {
	return func(p *Packer) error {
		if lo < 0 || hi > vdrm.TotalAngles || lo > hi {
			return ErrAngleRange
		}
		p.lo, p.hi = lo, hi
		p.log.Debug("configured angle range", "lo", lo, "hi", hi)
		return nil
	}
}

// Pack flattens m into firmware buffers. For each included angle the scan
// lines are coalesced per physical row address: the enable mask for the two
// inactive screens is folded into the address's high bits, the 64-row
// logical address folds onto 32 physical rows, and each pixel byte carries
// both banks' RGB bits.
func (p *Packer) Pack(m vdrm.AngleMap) *Buffers {
	bufs := &Buffers{Angle: make([]byte, angleInfoSize*vdrm.TotalAngles)}

	for _, angle := range m.Angles() {
		if angle < p.lo || angle >= p.hi {
			continue
		}

		rows := make(map[uint32]*[lineBytes]byte)
		for _, line := range m[angle] {
			if line.Addr >= vdrm.WPixels {
				panic("hub75: scan line address out of range")
			}
			// Active-low enable bits for the two other screens.
			screenAddr := uint32(^(1<<line.Screen)&screenMask) << addrBits
			realAddr := screenAddr | uint32(line.Addr%AddrMax)

			row := rows[realAddr]
			if row == nil {
				row = new([lineBytes]byte)
				rows[realAddr] = row
			}

			// Pixel bytes run opposite to slot order: bit column k of the
			// packed line is slot 63-k of the scan line.
			for k := 0; k < lineBytes; k++ {
				c := line.Pixels[lineBytes-1-k]
				if !c.Lit() {
					continue
				}
				masked := byte(c) & (1<<colorBits - 1)
				if line.Addr >= AddrMax {
					masked <<= colorBits
				}
				row[k] |= masked
			}
		}

		info := AngleInfo{
			PixelBufIdx: uint32(len(bufs.Pixel)),
			AddrBufIdx:  uint16(len(bufs.Addr)),
			Lines:       uint16(len(rows)),
		}
		off := angle * angleInfoSize
		binary.LittleEndian.PutUint32(bufs.Angle[off:], info.PixelBufIdx)
		binary.LittleEndian.PutUint16(bufs.Angle[off+4:], info.AddrBufIdx)
		binary.LittleEndian.PutUint16(bufs.Angle[off+6:], info.Lines)

		addrs := make([]uint32, 0, len(rows))
		for a := range rows {
			addrs = append(addrs, a)
		}
		sort.Slice(addrs, func(i, j int) bool { return addrs[i] < addrs[j] })

		var word [delayWordSize]byte
		for _, a := range addrs {
			bufs.Pixel = append(bufs.Pixel, rows[a][:]...)
			delayAddr := uint32(delayCount)<<totalAddrBits | a<<addrBits | a&(AddrMax-1)
			binary.LittleEndian.PutUint32(word[:], delayAddr)
			bufs.Addr = append(bufs.Addr, word[:]...)
		}
		p.log.Debug("packed angle", "angle", angle, "lines", len(rows))
	}
	return bufs
}

// Output file names within the buffer directory.
const (
	AngleBufName = "angle_buf.bin"
	PixelBufName = "pixel_buf.bin"
	AddrBufName  = "addr_buf.bin"
)

// WriteFiles writes the three buffers into dir, creating it if needed.
func (b *Buffers) WriteFiles(dir string) error {
	err := os.MkdirAll(dir, 0755)
	if err != nil {
		return errors.Wrap(err, "could not create buffer directory")
	}
	files := []struct {
		name string
		data []byte
	}{
		{AngleBufName, b.Angle},
		{PixelBufName, b.Pixel},
		{AddrBufName, b.Addr},
	}
	for _, f := range files {
		err = os.WriteFile(filepath.Join(dir, f.name), f.data, 0644)
		if err != nil {
			return errors.Wrapf(err, "could not write %s", f.name)
		}
	}
	return nil
}
