package liquify

import (
	"image"
	"image/color"
	"math"
)

// Buffer is a four channel float32 image, row major, channels in RGBA
// order. Values are straight alpha, nominally in [0, 1].
type Buffer struct {
	Width, Height int
	Pix           []float32
}

// NewBuffer allocates a zeroed buffer.
func NewBuffer(width, height int) *Buffer {
	return &Buffer{Width: width, Height: height, Pix: make([]float32, 4*width*height)}
}

// FromImage converts img into a buffer whose origin is img.Bounds().Min.
func FromImage(img image.Image) *Buffer {
	b := img.Bounds()
	buf := NewBuffer(b.Dx(), b.Dy())
	for y := range buf.Height {
		for x := range buf.Width {
			c := color.NRGBA64Model.Convert(img.At(b.Min.X+x, b.Min.Y+y)).(color.NRGBA64)
			px := buf.Pixel(x, y)
			px[0] = float32(c.R) / 0xffff
			px[1] = float32(c.G) / 0xffff
			px[2] = float32(c.B) / 0xffff
			px[3] = float32(c.A) / 0xffff
		}
	}
	return buf
}

// Pixel returns the four channels of (x, y). The slice aliases Pix.
func (b *Buffer) Pixel(x, y int) []float32 {
	i := 4 * (y*b.Width + x)
	return b.Pix[i : i+4 : i+4]
}

// ToImage converts the buffer to a 16 bit image, clamping channels.
func (b *Buffer) ToImage() *image.NRGBA64 {
	img := image.NewNRGBA64(image.Rect(0, 0, b.Width, b.Height))
	for y := range b.Height {
		for x := range b.Width {
			img.SetNRGBA64(x, y, b.color(x, y))
		}
	}
	return img
}

func (b *Buffer) color(x, y int) color.NRGBA64 {
	px := b.Pixel(x, y)
	q := func(v float32) uint16 {
		return uint16(math.Round(float64(min(max(v, 0), 1)) * 0xffff))
	}
	return color.NRGBA64{R: q(px[0]), G: q(px[1]), B: q(px[2]), A: q(px[3])}
}

// At implements image.Image.
func (b *Buffer) At(x, y int) color.Color {
	if x < 0 || y < 0 || x >= b.Width || y >= b.Height {
		return color.NRGBA64{}
	}
	return b.color(x, y)
}

// Bounds implements image.Image.
func (b *Buffer) Bounds() image.Rectangle {
	return image.Rect(0, 0, b.Width, b.Height)
}

// ColorModel implements image.Image.
func (b *Buffer) ColorModel() color.Model {
	return color.NRGBA64Model
}

// ROI is a region of interest in a processing stage: the rectangle a
// buffer covers, in pixels of that stage at Scale.
type ROI struct {
	X, Y          int
	Width, Height int
	Scale         float64
}

// Rect returns the region as a rectangle.
func (r ROI) Rect() image.Rectangle {
	return image.Rect(r.X, r.Y, r.X+r.Width, r.Y+r.Height)
}

// WithRect returns r moved and resized to rect, keeping the scale.
func (r ROI) WithRect(rect image.Rectangle) ROI {
	r.X, r.Y = rect.Min.X, rect.Min.Y
	r.Width, r.Height = rect.Dx(), rect.Dy()
	return r
}
