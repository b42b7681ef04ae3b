package main

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gogpu/liquify"
)

func writeChecker(t *testing.T, path string, w, h int) {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := range h {
		for x := range w {
			v := uint8(0x20)
			if (x/8+y/8)%2 == 0 {
				v = 0xe0
			}
			img.SetNRGBA(x, y, color.NRGBA{R: v, G: v, B: 0x80, A: 0xff})
		}
	}
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, img))
}

func readPNG(t *testing.T, path string) image.Image {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	img, err := png.Decode(f)
	require.NoError(t, err)
	return img
}

func differs(a, b image.Image) bool {
	for y := a.Bounds().Min.Y; y < a.Bounds().Max.Y; y++ {
		for x := a.Bounds().Min.X; x < a.Bounds().Max.X; x++ {
			r1, g1, b1, _ := a.At(x, y).RGBA()
			r2, g2, b2, _ := b.At(x, y).RGBA()
			if r1>>8 != r2>>8 || g1>>8 != g2>>8 || b1>>8 != b2>>8 {
				return true
			}
		}
	}
	return false
}

func TestRunDemo(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in.png")
	writeChecker(t, in, 96, 64)

	out := filepath.Join(dir, "out.png")
	overlay := filepath.Join(dir, "overlay.png")
	params := filepath.Join(dir, "params.bin")
	var log bytes.Buffer
	require.NoError(t, run([]string{
		"-in", in, "-out", out, "-overlay", overlay, "-save-params", params,
		"-config", filepath.Join(dir, "liquify.toml"), "-interp", "bilinear",
	}, &log))

	src, got := readPNG(t, in), readPNG(t, out)
	assert.Equal(t, src.Bounds(), got.Bounds())
	assert.True(t, differs(src, got), "demo paths warp the image")
	assert.True(t, differs(got, readPNG(t, overlay)), "overlay draws on top")

	blob, err := os.ReadFile(params)
	require.NoError(t, err)
	assert.Len(t, liquify.Decode(blob), 3)
	assert.Contains(t, log.String(), "processed")
}

func TestRunParamsAtScale(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in.png")
	writeChecker(t, in, 80, 80)
	params := filepath.Join(dir, "params.bin")
	require.NoError(t, os.WriteFile(params, liquify.Encode(demoPaths(image.Pt(80, 80))), 0o644))

	out := filepath.Join(dir, "out.png")
	require.NoError(t, run([]string{"-in", in, "-out", out, "-params", params, "-scale", "0.5"}, &bytes.Buffer{}))
	assert.Equal(t, image.Rect(0, 0, 40, 40), readPNG(t, out).Bounds())
}

func TestRunErrors(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in.png")
	writeChecker(t, in, 16, 16)

	for name, args := range map[string][]string{
		"missing input": {"-out", filepath.Join(dir, "x.png")},
		"bad scale":     {"-in", in, "-scale", "2"},
		"bad interp":    {"-in", in, "-interp", "nearest"},
		"bad format":    {"-in", in, "-out", filepath.Join(dir, "x.gif")},
		"no such file":  {"-in", filepath.Join(dir, "nope.png")},
	} {
		t.Run(name, func(t *testing.T) {
			assert.Error(t, run(args, &bytes.Buffer{}))
		})
	}
}

func TestDemoPaths(t *testing.T) {
	paths := demoPaths(image.Pt(600, 300))
	require.Len(t, paths, 3)
	assert.Equal(t, 4, paths.Warps())
	for _, p := range paths {
		_, ok := p[0].(*liquify.MoveTo)
		assert.True(t, ok, "paths start with a MoveTo")
	}
}
