package synth

import(
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/rwcarlsen/goexif/exif"
	"golang.org/x/image/draw"
	"golang.org/x/image/tiff"
)

// LoadImage decodes a PNG, JPEG or TIFF into an ImageBuffer, applying
// the EXIF orientation and the resize from the config.
func LoadImage(filename string, cfg Config) (*ImageBuffer, error) {
	img, err := decodeFile(filename)
	if err != nil {
		return nil, err
	}

	if cfg.ResizeTo > 0 {
		img = Resize(img, cfg.ResizeTo, cfg.ResizeTo)
		log.Printf("Resized %s to %dx%d\n", filepath.Base(filename), cfg.ResizeTo, cfg.ResizeTo)
	}

	ib := NewImageBufferFromImage(img)

	if cfg.ApplyOrientation {
		if o := readOrientation(filename); o > 1 {
			ib = ib.Orient(o)
			if cfg.Verbosity > 0 {
				log.Printf("Applied EXIF orientation %d to %s\n", o, filepath.Base(filename))
			}
		}
	}

	log.Printf("Loaded %s as %s\n", filename, ib)
	return ib, nil
}

func decodeFile(filename string) (image.Image, error) {
	reader, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("open+r img '%s': %v", filename, err)
	}
	defer reader.Close()

	var decode func(io.Reader) (image.Image, error)
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".png":           decode = png.Decode
	case ".jpg", ".jpeg":  decode = jpeg.Decode
	case ".tif", ".tiff":  decode = tiff.Decode
	default:
		return nil, fmt.Errorf("load '%s': unhandled file type", filename)
	}

	img, err := decode(reader)
	if err != nil {
		return nil, fmt.Errorf("decode '%s': %v", filename, err)
	}
	return img, nil
}

// readOrientation returns the EXIF orientation tag (1-8), or 0 if the
// file doesn't have one.
func readOrientation(filename string) int {
	reader, err := os.Open(filename)
	if err != nil {
		return 0
	}
	defer reader.Close()

	ex, err := exif.Decode(reader)
	if err != nil {
		return 0
	}
	tag, err := ex.Get(exif.Orientation)
	if err != nil {
		return 0
	}
	o, err := tag.Int(0)
	if err != nil || o < 1 || o > 8 {
		return 0
	}
	return o
}

// Resize scales the image to w x h, using Catmull-Rom.
func Resize(src image.Image, w, h int) image.Image {
	dst := image.NewNRGBA64(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)
	return dst
}

// Orient returns a copy of the buffer, transformed so that an image
// with EXIF orientation `o` comes out upright. Orientations 5-8 swap
// width and height.
func (ib *ImageBuffer)Orient(o int) *ImageBuffer {
	w, h := ib.width, ib.height
	ow, oh := w, h
	if o >= 5 {
		ow, oh = h, w
	}
	out := NewImageBuffer(ow, oh, ib.channels)

	for y:=0; y<h; y++ {
		for x:=0; x<w; x++ {
			var dx, dy int
			switch o {
			case 2: dx, dy = w-1-x, y        // mirrored
			case 3: dx, dy = w-1-x, h-1-y    // rotated 180
			case 4: dx, dy = x, h-1-y        // mirrored vertically
			case 5: dx, dy = y, x            // transposed
			case 6: dx, dy = h-1-y, x        // rotate 90 CW to fix
			case 7: dx, dy = h-1-y, w-1-x    // transverse
			case 8: dx, dy = y, w-1-x        // rotate 90 CCW to fix
			default: dx, dy = x, y
			}
			for c:=0; c<ib.channels; c++ {
				out.SetPixel(dx, dy, c, ib.Pixel(x, y, c))
			}
		}
	}
	return out
}
