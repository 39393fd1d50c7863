/*
DESCRIPTION
  vdrm-pack generates HUB75 buffer files for the volumetric display. A
  synthetic surface is generated, encoded into per-angle scan lines and
  packed into the three buffer files consumed by the display firmware.

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

// Package main is the HUB75 packer tool. Usage:
//
//	vdrm-pack [flags] [pixel_offset [height [kind]]]
//
// kind selects the surface generator: cross, plane, mock, mock2 or
// pyramid; unknown kinds fall back to plane.
package main

import (
	"flag"
	"io"
	"os"
	"strconv"

	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/ausocean/utils/logging"
	"github.com/ausocean/vdrm/codec/vdrm"
	"github.com/ausocean/vdrm/container/hub75"
)

// Logging configuration.
const (
	logPath      = "/var/log/vdrm/vdrm-pack.log"
	logMaxSize   = 500 // MB
	logMaxBackup = 10
	logMaxAge    = 28 // days
	logVerbosity = logging.Info
	logSuppress  = true
)

// Positional argument defaults.
const (
	defaultPixelOffset = 5
	defaultHeight      = 32
	defaultKind        = "plane"
	defaultOutDir      = "hub75_bufs"
)

func main() {
	outDir := flag.String("out", defaultOutDir, "Directory the buffer files are written into.")
	angleLo := flag.Int("anglelo", 0, "First angle to pack.")
	angleHi := flag.Int("anglehi", vdrm.TotalAngles, "One past the last angle to pack.")
	angleOffset := flag.Int("angleoff", 0, "Rotation applied to angle indices before packing.")
	imagePath := flag.String("image", "", "Build the surface from this image instead of a generator (needs withcv build).")
	flag.Parse()

	// Create lumberjack logger to handle logging to file.
	fileLog := &lumberjack.Logger{
		Filename:   logPath,
		MaxSize:    logMaxSize,
		MaxBackups: logMaxBackup,
		MaxAge:     logMaxAge,
	}
	log := logging.New(logVerbosity, io.MultiWriter(fileLog, os.Stderr), logSuppress)

	pixelOffset, height, kind := positionalArgs(flag.Args(), log)

	var surface vdrm.PixelSurface
	if *imagePath != "" {
		var err error
		surface, err = vdrm.ImageSurface(*imagePath)
		if err != nil {
			log.Fatal("could not build image surface", "error", err)
		}
	} else {
		surface = genSurface(kind, height)
	}
	log.Info("surface generated", "kind", kind, "voxels", len(surface))

	codec := vdrm.New()
	m := vdrm.RotateAngles(codec.Encode(surface, pixelOffset), *angleOffset)
	log.Info("surface encoded", "angles", len(m))

	packer, err := hub75.NewPacker(log, hub75.WithAngleRange(*angleLo, *angleHi))
	if err != nil {
		log.Fatal("could not create packer", "error", err)
	}
	bufs := packer.Pack(m)

	err = bufs.WriteFiles(*outDir)
	if err != nil {
		log.Error("could not write buffer files", "error", err)
		os.Exit(1)
	}
	log.Info("buffer files written", "dir", *outDir,
		"pixel", len(bufs.Pixel), "addr", len(bufs.Addr), "angle", len(bufs.Angle))
}

// positionalArgs parses the optional <pixel_offset> <height> <kind>
// positional arguments.
func positionalArgs(args []string, log logging.Logger) (pixelOffset, height int, kind string) {
	pixelOffset, height, kind = defaultPixelOffset, defaultHeight, defaultKind
	if len(args) > 0 {
		v, err := strconv.Atoi(args[0])
		if err != nil {
			log.Fatal("invalid pixel offset", "arg", args[0])
		}
		pixelOffset = v
	}
	if len(args) > 1 {
		v, err := strconv.Atoi(args[1])
		if err != nil || v < 0 {
			log.Fatal("invalid height", "arg", args[1])
		}
		height = v
	}
	if len(args) > 2 {
		kind = args[2]
	}
	return
}

// genSurface selects the surface generator by kind. Unknown kinds fall
// back to a plane.
func genSurface(kind string, height int) vdrm.PixelSurface {
	switch kind {
	case "cross":
		return vdrm.CrossPlane()
	case "mock":
		return vdrm.Mock()
	case "mock2":
		return vdrm.Mock2()
	case "pyramid":
		return vdrm.Pyramid(0, height)
	default:
		return vdrm.Plane(height)
	}
}
