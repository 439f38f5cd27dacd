package synth

import(
	"encoding/binary"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io/ioutil"
	"log"
	"math"
	"os"
	"path/filepath"

	"github.com/mdouchement/hdr"
	"github.com/mdouchement/hdr/codec/rgbe"
	"gopkg.in/yaml.v2"

	"github.com/abworrall/noisesynth/pkg/ecolor"
	"github.com/abworrall/noisesynth/pkg/emath"
)

// BasisFile is the YAML summary of a run, enough for a renderer to set
// its uniforms and interpret the LUT files.
type BasisFile struct {
	Origin       [3]float64
	Axes         [3][3]float64
	Eigenvalues  [3]float64
	Mins         [3]float64
	Maxs         [3]float64

	LUTWidth     int
	LUTLevels    int
	GaussianMean float64
	GaussianStd  float64
}

func NewBasisFile(res *Result, cfg Config) BasisFile {
	bf := BasisFile{
		Origin:       res.Basis.Origin,
		Eigenvalues:  res.Decorrelation.Eigen.Values,
		Mins:         res.Decorrelation.Mins,
		Maxs:         res.Decorrelation.Maxs,
		LUTWidth:     res.LUT.Width(),
		LUTLevels:    res.LUT.Levels(),
		GaussianMean: cfg.GaussianMean,
		GaussianStd:  cfg.GaussianStd,
	}
	for c:=0; c<3; c++ {
		bf.Axes[c] = res.Basis.Axes[c]
	}
	return bf
}

// Basis rebuilds the colour basis the file was written from.
func (bf BasisFile)Basis() ecolor.Basis {
	b := ecolor.Basis{Origin: bf.Origin}
	for c:=0; c<3; c++ {
		b.Axes[c] = bf.Axes[c]
	}
	return b
}

// WriteOutputs writes all the files for a result into cfg.OutputDir.
func WriteOutputs(res *Result, cfg Config) error {
	dir := cfg.OutputDir
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("mkdir '%s': %v", dir, err)
	}
	path := func(name string) string { return filepath.Join(dir, name) }

	if err := WriteHDR(res.LUT, path("lut.hdr")); err != nil {
		return err
	} else if err := WriteRaw(res.LUT, path("lut.f32")); err != nil {
		return err
	} else if err := WritePNG(res.LUT.ToRGBA64(), path("lut.png")); err != nil {
		return err
	} else if err := WriteHDR(res.Gaussianized, path("gaussianized.hdr")); err != nil {
		return err
	} else if err := WritePNG(res.Gaussianized.ToRGBA64(), path("gaussianized.png")); err != nil {
		return err
	} else if err := WriteBasisYaml(NewBasisFile(res, cfg), path("basis.yaml")); err != nil {
		return err
	} else if err := PlotLUT(res.LUT, "inverse CDF per level", path("lut-plot.png")); err != nil {
		return err
	}

	if cfg.Verbosity > 0 {
		for c:=0; c<3; c++ {
			grid := res.Decorrelation.Image.Channel(c)
			log.Printf("decorrelated ch%d: %s\n", c, grid.Stats())
			title := fmt.Sprintf("decorrelated ch%d, eigenvalue %g", c, res.Decorrelation.Eigen.Values[c])
			if err := grid.ToImg(title, path(fmt.Sprintf("decorrelated-%d.png", c))); err != nil {
				return fmt.Errorf("dump ch%d: %v", c, err)
			}
		}
	}

	log.Printf("Outputs written to '%s'\n", dir)
	return nil
}

func WritePNG(img image.Image, filename string) error {
	if writer, err := os.Create(filename); err != nil {
		return fmt.Errorf("open+w '%s': %v", filename, err)
	} else {
		defer writer.Close()
		return png.Encode(writer, img)
	}
}

// WriteHDR writes a Radiance RGBE file, which keeps the float values
// (to ~1% precision) that a PNG would quantize away.
func WriteHDR(img hdr.Image, filename string) error {
	if writer, err := os.Create(filename); err != nil {
		return fmt.Errorf("open+w '%s': %v", filename, err)
	} else {
		defer writer.Close()
		if err := rgbe.Encode(writer, img); err != nil {
			return fmt.Errorf("rgbe encode '%s': %v", filename, err)
		}
		return nil
	}
}

// WriteRaw dumps the LUT as little-endian float32s, width x levels x 3
// interleaved (the same layout as the buffer), ready for a glTexImage2D
// with GL_RGB/GL_FLOAT.
func WriteRaw(l LUT, filename string) error {
	f32 := make([]float32, len(l.Data()))
	for i, v := range l.Data() {
		f32[i] = float32(v)
	}

	if writer, err := os.Create(filename); err != nil {
		return fmt.Errorf("open+w '%s': %v", filename, err)
	} else {
		defer writer.Close()
		return binary.Write(writer, binary.LittleEndian, f32)
	}
}

func WriteBasisYaml(bf BasisFile, filename string) error {
	b, err := yaml.Marshal(bf)
	if err != nil {
		return fmt.Errorf("marshal basis: %v", err)
	}
	return ioutil.WriteFile(filename, b, 0644)
}

func LoadBasisYaml(filename string) (BasisFile, error) {
	bf := BasisFile{}
	if contents, err := ioutil.ReadFile(filename); err != nil {
		return bf, fmt.Errorf("read '%s': %v", filename, err)
	} else if err := yaml.Unmarshal(contents, &bf); err != nil {
		return bf, fmt.Errorf("parse '%s': %v", filename, err)
	}
	return bf, nil
}

// ToRGBA64 clamps the first three channels into [0,1], for 16 bit previews.
func (ib *ImageBuffer)ToRGBA64() *image.RGBA64 {
	img := image.NewRGBA64(ib.Bounds())
	toU16 := func(f float64) uint16 {
		return uint16(math.Round(emath.Clamp(f, 0.0, 1.0) * float64(0xFFFF)))
	}
	for y:=0; y<ib.height; y++ {
		for x:=0; x<ib.width; x++ {
			v := ib.ColorAt(x, y)
			img.SetRGBA64(x, y, color.RGBA64{toU16(v[0]), toU16(v[1]), toU16(v[2]), 0xFFFF})
		}
	}
	return img
}
