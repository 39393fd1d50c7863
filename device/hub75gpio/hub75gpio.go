/*
DESCRIPTION
  hub75gpio.go provides a playback driver that clocks packed VDRM buffers
  out of GPIO to a chain of HUB75 panels. It exists for bench testing the
  packed buffer layout on a Raspberry Pi without the display's
  microcontroller; the flash tooling remains the production path.

AUTHORS
  Trek Hopton <trek@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package hub75gpio drives HUB75 panels directly from GPIO using packed
// VDRM buffers.
package hub75gpio

import (
	"encoding/binary"
	"time"

	"github.com/kidoman/embd"
	_ "github.com/kidoman/embd/host/rpi"
	"github.com/pkg/errors"

	"github.com/ausocean/utils/logging"
	"github.com/ausocean/vdrm/codec/vdrm"
	"github.com/ausocean/vdrm/container/hub75"
)

// Pins is the GPIO pin assignment for the panel chain. Data pins carry the
// two banks' RGB bits; Addr carries the five folded row address bits plus
// the three active-low screen enable bits.
type Pins struct {
	R1, G1, B1 int // Lower bank colour data.
	R2, G2, B2 int // Upper bank colour data.
	Clk        int // Pixel clock.
	Lat        int // Row latch.
	OE         int // Output enable, active low.
	Addr       [8]int
}

// DefaultPins is the bench harness wiring.
var DefaultPins = Pins{
	R1: 17, G1: 18, B1: 22,
	R2: 23, G2: 24, B2: 25,
	Clk: 11, Lat: 27, OE: 4,
	Addr: [8]int{5, 6, 12, 13, 16, 19, 20, 21},
}

// rowHold is how long a latched row stays lit before the next row is
// shifted. It stands in for the firmware's delay counter.
const rowHold = 50 * time.Microsecond

// Driver plays packed buffers on the panel chain.
type Driver struct {
	pins    Pins
	log     logging.Logger
	running bool

	data [6]embd.DigitalPin
	clk  embd.DigitalPin
	lat  embd.DigitalPin
	oe   embd.DigitalPin
	addr [8]embd.DigitalPin
}

// NewDriver returns a Driver using the given pin assignment.
func NewDriver(pins Pins, l logging.Logger) *Driver {
	return &Driver{pins: pins, log: l}
}

// Name returns the name of the driver.
func (d *Driver) Name() string { return "HUB75GPIO" }

// Start initialises GPIO and claims the panel pins as outputs.
func (d *Driver) Start() error {
	err := embd.InitGPIO()
	if err != nil {
		return errors.Wrap(err, "could not initialise GPIO")
	}

	claim := func(num int) (embd.DigitalPin, error) {
		pin, err := embd.NewDigitalPin(num)
		if err != nil {
			return nil, errors.Wrapf(err, "could not claim GPIO %d", num)
		}
		err = pin.SetDirection(embd.Out)
		if err != nil {
			return nil, errors.Wrapf(err, "could not set GPIO %d as output", num)
		}
		return pin, nil
	}

	for i, num := range []int{d.pins.R1, d.pins.G1, d.pins.B1, d.pins.R2, d.pins.G2, d.pins.B2} {
		d.data[i], err = claim(num)
		if err != nil {
			return err
		}
	}
	if d.clk, err = claim(d.pins.Clk); err != nil {
		return err
	}
	if d.lat, err = claim(d.pins.Lat); err != nil {
		return err
	}
	if d.oe, err = claim(d.pins.OE); err != nil {
		return err
	}
	for i, num := range d.pins.Addr {
		d.addr[i], err = claim(num)
		if err != nil {
			return err
		}
	}

	// Panels blank until the first row is latched.
	err = d.oe.Write(embd.High)
	if err != nil {
		return errors.Wrap(err, "could not blank panels")
	}
	d.running = true
	d.log.Info("HUB75 GPIO driver started")
	return nil
}

// Stop blanks the panels and releases GPIO.
func (d *Driver) Stop() error {
	if !d.running {
		return nil
	}
	d.running = false
	d.oe.Write(embd.High)
	for _, pin := range d.data {
		pin.Close()
	}
	d.clk.Close()
	d.lat.Close()
	d.oe.Close()
	for _, pin := range d.addr {
		pin.Close()
	}
	return errors.Wrap(embd.CloseGPIO(), "could not close GPIO")
}

// IsRunning is used to determine if the driver is running.
func (d *Driver) IsRunning() bool { return d.running }

// PlayFrame plays every packed angle once, in ascending angle order. The
// caller loops it for continuous display, ideally synchronised to the
// mirror's rotation index.
func (d *Driver) PlayFrame(bufs *hub75.Buffers) error {
	if !d.running {
		return errors.New("driver has not been started, can't play")
	}
	for angle := 0; angle < vdrm.TotalAngles; angle++ {
		off := angle * 8
		pixIdx := binary.LittleEndian.Uint32(bufs.Angle[off:])
		addrIdx := binary.LittleEndian.Uint16(bufs.Angle[off+4:])
		lines := binary.LittleEndian.Uint16(bufs.Angle[off+6:])

		for l := 0; l < int(lines); l++ {
			row := bufs.Pixel[int(pixIdx)+l*vdrm.WPixels:]
			word := binary.LittleEndian.Uint32(bufs.Addr[int(addrIdx)+l*4:])
			err := d.shiftRow(row[:vdrm.WPixels], word)
			if err != nil {
				return err
			}
		}
	}
	return nil
}

// shiftRow clocks one packed row out to the panels and latches it at the
// delay word's address.
func (d *Driver) shiftRow(row []byte, word uint32) error {
	for _, b := range row {
		for bit := 0; bit < 6; bit++ {
			v := embd.Low
			if b&(1<<bit) != 0 {
				v = embd.High
			}
			err := d.data[bit].Write(v)
			if err != nil {
				return errors.Wrap(err, "could not write colour data")
			}
		}
		err := d.pulse(d.clk)
		if err != nil {
			return errors.Wrap(err, "could not clock pixel")
		}
	}

	// Blank while switching rows, then present the new row.
	err := d.oe.Write(embd.High)
	if err != nil {
		return errors.Wrap(err, "could not blank for latch")
	}
	realAddr := word >> 5 & 0xff
	for i, pin := range d.addr {
		v := embd.Low
		if realAddr&(1<<i) != 0 {
			v = embd.High
		}
		err = pin.Write(v)
		if err != nil {
			return errors.Wrap(err, "could not write row address")
		}
	}
	err = d.pulse(d.lat)
	if err != nil {
		return errors.Wrap(err, "could not latch row")
	}
	err = d.oe.Write(embd.Low)
	if err != nil {
		return errors.Wrap(err, "could not enable output")
	}
	time.Sleep(rowHold)
	return nil
}

// pulse raises then lowers a strobe pin.
func (d *Driver) pulse(pin embd.DigitalPin) error {
	err := pin.Write(embd.High)
	if err != nil {
		return err
	}
	return pin.Write(embd.Low)
}
