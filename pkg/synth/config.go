package synth

import(
	"fmt"
	"io/ioutil"
	"log"

	"gopkg.in/yaml.v2"

	"github.com/abworrall/noisesynth/pkg/emath"
)

/* Example config file ...

verbosity: 1
lutwidth: 128
gaussianmean: 0.5
gaussianstd: 0.16666666666666666
filtersamples: 256
resizeto: 256
strictdegenerate: false
outputdir: out

*/

type Config struct {
	Verbosity         int

	// The LUT, and the Gaussian it is indexed by
	LUTWidth          int      // quantile resolution of the LUT
	GaussianMean      float64
	GaussianStd       float64
	FilterSamples     int      // samples per texel when prefiltering; 0 means 2*LUTWidth
	Levels            int      // LUT rows; 0 means floor(log2(image width))

	// Decorrelation
	EigenTolerance    float64
	EigenMaxSweeps    int
	DegenerateRange   float64  // a decorrelated channel with range <= this is degenerate
	StrictDegenerate  bool     // if true, a degenerate channel aborts the run

	Parallel          bool     // one goroutine per channel

	// Input handling
	ResizeTo          int      // if >0, resize input to ResizeTo x ResizeTo first (power of two)
	ApplyOrientation  bool     // rotate/flip input upright, according to its EXIF orientation

	OutputDir         string
}

func NewConfig() Config {
	return Config{
		LUTWidth:         128,
		GaussianMean:     0.5,
		GaussianStd:      1.0 / 6.0,
		EigenTolerance:   1e-12,
		EigenMaxSweeps:   50,
		DegenerateRange:  1e-9,
		Parallel:         true,
		ApplyOrientation: true,
		OutputDir:        ".",
	}
}

func NewConfigFromYaml(b []byte) (Config, error) {
	c := NewConfig()
	if err := yaml.Unmarshal(b, &c); err != nil {
		return c, fmt.Errorf("parse config yaml: %v", err)
	}
	return c, c.Validate()
}

func LoadConfig(filename string) (Config, error) {
	contents, err := ioutil.ReadFile(filename)
	if err != nil {
		return NewConfig(), fmt.Errorf("config read %s: %v", filename, err)
	}

	return NewConfigFromYaml(contents)
}

func (c Config)AsYaml() string {
	b, err := yaml.Marshal(c)
	if err != nil {
		log.Fatalf("Can't marshal config yaml: %v\n", err)
	}
	return string(b)
}

// Validate does sanity checks on the values
func (c Config)Validate() error {
	switch {
	case c.LUTWidth < 1:
		return fmt.Errorf("%w: lutwidth %d < 1", ErrInvalidConfig, c.LUTWidth)
	case c.GaussianStd <= 0:
		return fmt.Errorf("%w: gaussianstd %g <= 0", ErrInvalidConfig, c.GaussianStd)
	case c.FilterSamples < 0:
		return fmt.Errorf("%w: filtersamples %d < 0", ErrInvalidConfig, c.FilterSamples)
	case c.Levels < 0:
		return fmt.Errorf("%w: levels %d < 0", ErrInvalidConfig, c.Levels)
	case c.EigenMaxSweeps < 1:
		return fmt.Errorf("%w: eigenmaxsweeps %d < 1", ErrInvalidConfig, c.EigenMaxSweeps)
	case c.EigenTolerance < 0:
		return fmt.Errorf("%w: eigentolerance %g < 0", ErrInvalidConfig, c.EigenTolerance)
	case c.DegenerateRange < 0:
		return fmt.Errorf("%w: degeneraterange %g < 0", ErrInvalidConfig, c.DegenerateRange)
	case c.ResizeTo != 0 && !emath.IsPowerOfTwo(c.ResizeTo):
		return fmt.Errorf("%w: resizeto %d is not a power of two", ErrInvalidConfig, c.ResizeTo)
	}
	return nil
}

func (c Config)Gaussian() emath.Gaussian {
	return emath.Gaussian{Mean: c.GaussianMean, Std: c.GaussianStd}
}

func (c Config)NumFilterSamples() int {
	if c.FilterSamples == 0 {
		return 2 * c.LUTWidth
	}
	return c.FilterSamples
}

// NumLevels is how many LUT rows to build for an image of the given width.
func (c Config)NumLevels(imageWidth int) int {
	n := c.Levels
	if n == 0 {
		n = emath.Log2Floor(imageWidth)
	}
	if n < 1 {
		n = 1 // always have the unfiltered row
	}
	return n
}

func (c Config)EigenSolver() emath.JacobiSolver {
	return emath.JacobiSolver{Tolerance: c.EigenTolerance, MaxSweeps: c.EigenMaxSweeps}
}
