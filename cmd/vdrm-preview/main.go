/*
DESCRIPTION
  vdrm-preview renders a software preview of what the volumetric display
  will show: a surface is encoded and decoded through the codec and the
  resulting point cloud is plotted to a PNG. With -watch the tool instead
  follows a directory of dumped emulator frames and re-renders as frames
  arrive.

AUTHORS
  Saxon A. Nelson-Milton <saxon@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package main is the software preview renderer for the volumetric
// display codec.
package main

import (
	"flag"
	"io"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/ausocean/utils/logging"
	"github.com/ausocean/vdrm/codec/vdrm"
	"github.com/ausocean/vdrm/device/shm"
	"github.com/ausocean/vdrm/preview"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// Logging configuration.
const (
	logPath      = "/var/log/vdrm/vdrm-preview.log"
	logMaxSize   = 500 // MB
	logMaxBackup = 10
	logMaxAge    = 28 // days
	logVerbosity = logging.Info
	logSuppress  = true
)

func main() {
	kind := flag.String("kind", "pyramid", "Surface generator: cross, plane, mock, mock2 or pyramid.")
	height := flag.Int("height", 32, "Height passed to the surface generator.")
	pixelOffset := flag.Int("pixeloffset", 0, "Horizontal pixel offset applied when encoding.")
	angleOffset := flag.Int("angleoff", 0, "Rotation applied to angle indices.")
	sectionY := flag.Int("sectiony", vdrm.WPixels-1, "Keep voxel rows at or below this index.")
	pitch := flag.Float64("pitch", 0.4, "View pitch in radians.")
	yaw := flag.Float64("yaw", 0.8, "View yaw in radians.")
	out := flag.String("o", "preview.png", "Output image path.")
	watch := flag.String("watch", "", "Watch this directory for dumped emulator frames instead of generating a surface.")
	flag.Parse()

	// Create lumberjack logger to handle logging to file.
	fileLog := &lumberjack.Logger{
		Filename:   logPath,
		MaxSize:    logMaxSize,
		MaxBackups: logMaxBackup,
		MaxAge:     logMaxAge,
	}
	log := logging.New(logVerbosity, io.MultiWriter(fileLog, os.Stderr), logSuppress)

	if *watch != "" {
		watchFrames(*watch, *pitch, *yaw, *out, log)
		return
	}

	var surface vdrm.PixelSurface
	switch *kind {
	case "cross":
		surface = vdrm.CrossPlane()
	case "plane":
		surface = vdrm.Plane(*height)
	case "mock":
		surface = vdrm.Mock()
	case "mock2":
		surface = vdrm.Mock2()
	default:
		surface = vdrm.Pyramid(0, *height)
	}

	codec := vdrm.New()
	surfaces := preview.NewSurfaces(codec, surface)
	pts := surfaces.Render(preview.Params{
		Pitch:       *pitch,
		Yaw:         *yaw,
		SectionY:    *sectionY,
		PixelOffset: *pixelOffset,
		AngleOffset: *angleOffset,
	})
	log.Info("surface rendered", "kind", *kind, "points", len(pts))
	log.Debug("round trip quality", "meanerr", preview.MeanError(surface, vdrm.Decode(surfaces.AngleMap(preview.Params{
		SectionY:    *sectionY,
		PixelOffset: *pixelOffset,
		AngleOffset: *angleOffset,
	}))))

	err := savePlot(pts, *out)
	if err != nil {
		log.Fatal("could not save preview", "error", err)
	}
	log.Info("preview written", "path", *out)
}

// watchFrames follows dir for new frame dumps and re-renders the preview
// for each one.
func watchFrames(dir string, pitch, yaw float64, out string, log logging.Logger) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		log.Fatal("could not create watcher", "error", err)
	}
	defer watcher.Close()

	err = watcher.Add(dir)
	if err != nil {
		log.Fatal("could not watch frame directory", "dir", dir, "error", err)
	}
	log.Info("watching for frames", "dir", dir)

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
				continue
			}
			renderDump(event.Name, pitch, yaw, out, log)
		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			log.Error("watch error", "error", err)
		}
	}
}

// renderDump renders one dumped frame, skipping partial or foreign files.
func renderDump(path string, pitch, yaw float64, out string, log logging.Logger) {
	src := shm.NewFileSource(path)
	err := src.Start()
	if err != nil {
		log.Debug("skipping dump", "path", path, "error", err)
		return
	}
	defer src.Stop()

	f, err := src.ReadIfNewer()
	if err != nil || f == nil {
		log.Debug("no frame from dump", "path", path, "error", err)
		return
	}

	colored := preview.CloudFromFrame(f)
	pts := make([]vdrm.Point3, len(colored))
	for i, p := range colored {
		pts[i] = p.Point3
	}
	err = savePlot(preview.Project(pts, pitch, yaw), out)
	if err != nil {
		log.Error("could not save preview", "path", out, "error", err)
		return
	}
	log.Info("frame rendered", "dump", filepath.Base(path), "points", len(pts), "path", out)
}

// savePlot writes the projected points as a scatter plot PNG.
func savePlot(pts []vdrm.Point3, path string) error {
	p := plot.New()
	p.Title.Text = "VDRM preview"
	p.X.Label.Text = "x"
	p.Y.Label.Text = "y"

	xys := make(plotter.XYs, len(pts))
	for i, pt := range pts {
		xys[i].X = pt.X
		xys[i].Y = pt.Y
	}
	s, err := plotter.NewScatter(xys)
	if err != nil {
		return err
	}
	s.GlyphStyle.Radius = vg.Points(1)
	p.Add(s)

	return p.Save(6*vg.Inch, 6*vg.Inch, path)
}
