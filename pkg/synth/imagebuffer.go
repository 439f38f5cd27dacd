package synth

import(
	"fmt"
	"image"
	"image/color"

	"github.com/mdouchement/hdr/hdrcolor"

	"github.com/abworrall/noisesynth/pkg/emath"
)

// An ImageBuffer is a width x height x channels grid of floats, stored
// row-major with interleaved channels: pixel (x,y) channel c lives at
// y*width*channels + x*channels + c. Values loaded from an image are
// in [0,1]. Implements image.Image and hdr.Image (3 channel buffers only).
type ImageBuffer struct {
	data     []float64
	width    int
	height   int
	channels int
}

func NewImageBuffer(w, h, c int) *ImageBuffer {
	return &ImageBuffer{
		data:     make([]float64, w*h*c),
		width:    w,
		height:   h,
		channels: c,
	}
}

// NewImageBufferFromData wraps a copy of `data`.
func NewImageBufferFromData(w, h, c int, data []float64) (*ImageBuffer, error) {
	if w < 0 || h < 0 || c < 1 || len(data) != w*h*c {
		return nil, fmt.Errorf("image buffer %dx%dx%d needs %d values, got %d", w, h, c, w*h*c, len(data))
	}
	ib := NewImageBuffer(w, h, c)
	copy(ib.data, data)
	return ib, nil
}

// NewImageBufferFromImage converts an image into a 3 channel buffer,
// mapping each channel from [0, 0xFFFF] to [0.0, 1.0]. Alpha is dropped.
func NewImageBufferFromImage(img image.Image) *ImageBuffer {
	b := img.Bounds()
	ib := NewImageBuffer(b.Dx(), b.Dy(), 3)

	for y:=0; y<b.Dy(); y++ {
		for x:=0; x<b.Dx(); x++ {
			c := color.NRGBA64Model.Convert(img.At(b.Min.X + x, b.Min.Y + y)).(color.NRGBA64)
			ib.SetColorAt(x, y, emath.Vec3{
				float64(c.R) / float64(0xFFFF),
				float64(c.G) / float64(0xFFFF),
				float64(c.B) / float64(0xFFFF),
			})
		}
	}

	return ib
}

func (ib *ImageBuffer)Width() int     { return ib.width }
func (ib *ImageBuffer)Height() int    { return ib.height }
func (ib *ImageBuffer)Channels() int  { return ib.channels }
func (ib *ImageBuffer)NumPixels() int { return ib.width * ib.height }

// Data is the backing slice; treat it as read-only.
func (ib *ImageBuffer)Data() []float64 { return ib.data }

func (ib *ImageBuffer)index(x, y, c int) int { return y*ib.width*ib.channels + x*ib.channels + c }

func (ib *ImageBuffer)Pixel(x, y, c int) float64       { return ib.data[ib.index(x,y,c)] }
func (ib *ImageBuffer)SetPixel(x, y, c int, v float64) { ib.data[ib.index(x,y,c)] = v }

func (ib *ImageBuffer)ColorAt(x, y int) emath.Vec3 {
	i := ib.index(x, y, 0)
	return emath.Vec3{ib.data[i], ib.data[i+1], ib.data[i+2]}
}

func (ib *ImageBuffer)SetColorAt(x, y int, v emath.Vec3) {
	i := ib.index(x, y, 0)
	ib.data[i], ib.data[i+1], ib.data[i+2] = v[0], v[1], v[2]
}

// Channel copies out a single channel.
func (ib *ImageBuffer)Channel(c int) emath.FloatGrid {
	fg := emath.NewFloatGrid(ib.width, ib.height)
	for y:=0; y<ib.height; y++ {
		for x:=0; x<ib.width; x++ {
			fg.Set(x, y, ib.Pixel(x, y, c))
		}
	}
	return fg
}

// ChannelValues copies out a single channel, in pixel order.
func (ib *ImageBuffer)ChannelValues(c int) []float64 {
	vals := make([]float64, 0, ib.NumPixels())
	for i:=c; i<len(ib.data); i+=ib.channels {
		vals = append(vals, ib.data[i])
	}
	return vals
}

// SetChannelValues is the inverse of ChannelValues: it writes one value
// per pixel, in pixel order, into channel c.
func (ib *ImageBuffer)SetChannelValues(c int, vals []float64) {
	for i:=0; i<len(vals) && i<ib.NumPixels(); i++ {
		ib.data[i*ib.channels + c] = vals[i]
	}
}

func (ib *ImageBuffer)String() string {
	return fmt.Sprintf("ImageBuffer[%dx%dx%d]", ib.width, ib.height, ib.channels)
}

// Implement image.Image
func (ib *ImageBuffer)ColorModel() color.Model { return hdrcolor.RGBModel }
func (ib *ImageBuffer)Bounds() image.Rectangle { return image.Rect(0, 0, ib.width, ib.height) }
func (ib *ImageBuffer)At(x, y int) color.Color { return ib.HDRAt(x, y) }

// Implement hdr.Image
func (ib *ImageBuffer)HDRAt(x, y int) hdrcolor.Color {
	v := ib.ColorAt(x, y)
	return hdrcolor.RGB{R: v[0], G: v[1], B: v[2]}
}
func (ib *ImageBuffer)Size() int { return ib.NumPixels() }
