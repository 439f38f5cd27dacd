package synth

import(
	"errors"
	"fmt"
	"log"
	"sync"

	"github.com/abworrall/noisesynth/pkg/ecolor"
)

// Result is everything a renderer needs to synthesize the input
// texture: the basis to get from LUT output back to RGB, the LUT stack,
// and the Gaussianized input to tile & blend.
type Result struct {
	Basis           ecolor.Basis
	LUT             LUT
	Gaussianized   *ImageBuffer

	Decorrelation   Decorrelation
	WindowVariances [3][]float64  // per channel, per level
	Warnings        []error       // soft failures; the result is still usable
}

// A Pipeline runs the precompute for one image at a time. It holds no
// state between runs.
type Pipeline struct {
	Config
}

func NewPipeline(cfg Config) *Pipeline {
	return &Pipeline{Config: cfg}
}

type channelResult struct {
	rows        [][]float64
	variances   []float64
	gaussianized []float64
	err         error
}

// Run does decorrelation, then the per channel inverse-CDF tables,
// prefiltering and Gaussianization. The output only depends on the
// pixels and the config; parallel and serial runs are bit identical.
func (p *Pipeline)Run(img *ImageBuffer) (*Result, error) {
	if err := p.Config.Validate(); err != nil {
		return nil, err
	} else if img.Channels() != 3 {
		return nil, fmt.Errorf("pipeline: %w (got %d)", ErrInvalidChannelCount, img.Channels())
	}

	res := Result{}

	log.Printf("Decorrelating %s", img)
	dec, err := Decorrelate(img, p.Config)
	var degen *DegenerateChannelError
	switch {
	case errors.As(err, &degen):
		if p.StrictDegenerate {
			return nil, fmt.Errorf("pipeline: %w", err)
		}
		log.Printf("Warning: %v; continuing with flat channels\n", err)
		res.Warnings = append(res.Warnings, err)
	case err != nil:
		return nil, fmt.Errorf("pipeline: %w", err)
	}

	if !dec.Eigen.Converged {
		w := fmt.Errorf("%w after %d sweeps (off-diagonal norm %g); using best estimate",
			ErrEigenNoConvergence, dec.Eigen.Sweeps, dec.Eigen.OffNorm)
		log.Printf("Warning: %v\n", w)
		res.Warnings = append(res.Warnings, w)
	}

	res.Decorrelation = dec
	res.Basis = dec.Basis

	levels := p.NumLevels(img.Width())
	log.Printf("Building %dx%d LUTs (%d filter samples)", p.LUTWidth, levels, p.NumFilterSamples())

	results := [3]channelResult{}
	if p.Parallel {
		var wg sync.WaitGroup
		for c:=0; c<3; c++ {
			wg.Add(1)
			go func(c int) {
				defer wg.Done()
				results[c] = p.runChannel(dec.Image, c, levels)
			}(c)
		}
		wg.Wait()
	} else {
		for c:=0; c<3; c++ {
			results[c] = p.runChannel(dec.Image, c, levels)
		}
	}

	res.LUT = NewLUT(p.LUTWidth, levels)
	res.Gaussianized = NewImageBuffer(img.Width(), img.Height(), 3)
	for c:=0; c<3; c++ {
		if results[c].err != nil {
			return nil, fmt.Errorf("pipeline: %w", results[c].err)
		}
		for l, row := range results[c].rows {
			res.LUT.SetRow(c, l, row)
		}
		res.Gaussianized.SetChannelValues(c, results[c].gaussianized)
		res.WindowVariances[c] = results[c].variances
	}

	if p.Verbosity > 0 {
		log.Printf("Basis:-\n%s", res.Basis)
	}

	return &res, nil
}

func (p *Pipeline)runChannel(dec *ImageBuffer, c, levels int) channelResult {
	cr := channelResult{}

	base, err := BuildInverseCDF(dec, c, p.LUTWidth, p.Gaussian())
	if err != nil {
		cr.err = err
		return cr
	}

	if cr.rows, cr.variances, err = Prefilter(base, dec, c, levels, p.NumFilterSamples()); err != nil {
		cr.err = err
		return cr
	}

	cr.gaussianized, cr.err = Gaussianize(dec, c, p.Gaussian())
	return cr
}
