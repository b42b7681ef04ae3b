// Command liquify applies liquify paths to an image.
//
// The paths come from a params blob written by the editor (-params) or
// from a built-in demo set scaled to the image. The warped image is
// written to -out; -overlay additionally writes the result with the node
// editor overlay on top.
//
//	liquify -in photo.jpg -out warped.png -overlay edit.png
//	liquify -in photo.jpg -params warps.bin -scale 0.5 -interp lanczos3
package main

import (
	"errors"
	"flag"
	"fmt"
	"image"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/anthonynsimon/bild/blend"
	"github.com/anthonynsimon/bild/imgio"
	"github.com/anthonynsimon/bild/transform"

	"github.com/gogpu/liquify"
	"github.com/gogpu/liquify/config"
	"github.com/gogpu/liquify/edit"
	"github.com/gogpu/liquify/surface"

	_ "github.com/gogpu/liquify/gpu"
)

func main() {
	if err := run(os.Args[1:], os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, "liquify:", err)
		os.Exit(1)
	}
}

type options struct {
	in, out, params, saveParams, overlay, config string
	interp                                       string
	scale                                        float64
	accelerate, verbose                          bool
}

func parseFlags(args []string, stderr io.Writer) (options, error) {
	var o options
	fs := flag.NewFlagSet("liquify", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&o.in, "in", "", "input image (required)")
	fs.StringVar(&o.out, "out", "liquify.png", "output image, .png or .jpg")
	fs.StringVar(&o.params, "params", "", "params blob; the demo paths are used when empty")
	fs.StringVar(&o.saveParams, "save-params", "", "write the params blob that was applied")
	fs.StringVar(&o.overlay, "overlay", "", "also write the result with the editor overlay")
	fs.StringVar(&o.config, "config", "", "settings file (TOML)")
	fs.StringVar(&o.interp, "interp", "", "override interpolation: bilinear, bicubic, lanczos2, lanczos3")
	fs.Float64Var(&o.scale, "scale", 1, "process a scaled preview of the input")
	fs.BoolVar(&o.accelerate, "gpu", false, "resample on the GPU when available")
	fs.BoolVar(&o.verbose, "v", false, "debug logging")
	if err := fs.Parse(args); err != nil {
		return o, err
	}
	if o.in == "" {
		fs.Usage()
		return o, errors.New("missing -in")
	}
	if o.scale <= 0 || o.scale > 1 {
		return o, fmt.Errorf("scale %g out of (0, 1]", o.scale)
	}
	return o, nil
}

func run(args []string, stderr io.Writer) error {
	o, err := parseFlags(args, stderr)
	if err != nil {
		return err
	}

	level := slog.LevelInfo
	if o.verbose {
		level = slog.LevelDebug
	}
	liquify.SetLogger(slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level})))
	log := liquify.Logger()

	store, err := config.Open(o.config)
	if err != nil {
		return err
	}
	cfg := store.Config()
	if o.interp != "" {
		cfg.Interpolation = o.interp
	}
	cfg.Accelerate = cfg.Accelerate || o.accelerate
	if err := cfg.Validate(); err != nil {
		return err
	}

	src, err := imgio.Open(o.in)
	if err != nil {
		return err
	}
	full := src.Bounds().Size()
	if o.scale != 1 {
		w := max(int(float64(full.X)*o.scale), 1)
		h := max(int(float64(full.Y)*o.scale), 1)
		src = transform.Resize(src, w, h, transform.Linear)
	}

	blob, err := loadParams(o.params, full)
	if err != nil {
		return err
	}

	view := &edit.PipelineView{Pipeline: liquify.IdentityPipeline{}, RawScale: 1, Zoom: o.scale}
	engine := edit.NewEngine(view,
		edit.WithDefaults(cfg.EditDefaults()),
		edit.WithRadiusStore(store))
	engine.Load(blob)
	paths := engine.Snapshot()
	log.Info("loaded paths", "paths", engine.Count(), "warps", paths.Warps())

	pr := liquify.NewProcessor(cfg.ProcessorOptions()...)
	defer pr.Close()

	start := time.Now()
	result, err := process(pr, paths, src, o.scale)
	if err != nil {
		return err
	}
	log.Info("processed", "size", result.Bounds().Size(), "interpolation", pr.Interpolation(),
		"elapsed", time.Since(start))

	if err := save(o.out, result); err != nil {
		return err
	}
	if o.saveParams != "" {
		if err := os.WriteFile(o.saveParams, engine.Params(), 0o644); err != nil {
			return err
		}
	}
	if o.overlay != "" {
		engine.SetTool(edit.ToolNode)
		s := surface.NewImageSurface(result.Bounds().Dx(), result.Bounds().Dy())
		if err := engine.Draw(s); err != nil {
			return err
		}
		if err := save(o.overlay, blend.Normal(result, s.Image())); err != nil {
			return err
		}
	}
	return nil
}

// loadParams reads the blob at path, or encodes the demo paths for an
// image of the given size.
func loadParams(path string, size image.Point) ([]byte, error) {
	if path == "" {
		return liquify.Encode(demoPaths(size)), nil
	}
	return os.ReadFile(path)
}

// process warps the whole of img, which is the full input at scale.
func process(pr *liquify.Processor, paths liquify.Paths, img image.Image, scale float64) (image.Image, error) {
	in := liquify.FromImage(img)
	roi := liquify.ROI{Width: in.Width, Height: in.Height, Scale: scale}
	out := liquify.NewBuffer(in.Width, in.Height)
	if err := pr.Process(paths, in, roi, out, roi); err != nil {
		return nil, err
	}
	return out.ToImage(), nil
}

func save(path string, img image.Image) error {
	var enc imgio.Encoder
	switch strings.ToLower(filepath.Ext(path)) {
	case ".jpg", ".jpeg":
		enc = imgio.JPEGEncoder(95)
	case ".png":
		enc = imgio.PNGEncoder()
	default:
		return fmt.Errorf("unsupported output format %q", filepath.Ext(path))
	}
	return imgio.Save(path, img, enc)
}
