package main

import(
	"flag"
	"log"

	"github.com/abworrall/noisesynth/pkg/synth"
)

var(
	fVerbosity int
	fConfigFile string
	fOutputDir string
	fLUTWidth int
	fResizeTo int
	fStrict bool
	fSerial bool
	fShowBasis string
)

func init() {
	flag.IntVar(&fVerbosity, "v", 0, "how verbose to get")
	flag.StringVar(&fConfigFile, "config", "", "yaml config file (flags override it)")
	flag.StringVar(&fOutputDir, "o", "", "directory to write the LUT, basis and gaussianized image into")
	flag.IntVar(&fLUTWidth, "lutwidth", 0, "quantile resolution of the LUT (default 128)")
	flag.IntVar(&fResizeTo, "resize", 0, "resize the input to NxN first (power of two)")
	flag.BoolVar(&fStrict, "strict", false, "fail if any decorrelated channel is flat")
	flag.BoolVar(&fSerial, "serial", false, "process the channels one at a time")
	flag.StringVar(&fShowBasis, "showbasis", "", "just print a previously written basis.yaml, with its swatches")
	flag.Parse()

	log.Printf("noisesynth starting\n")
}

func main() {
	if fShowBasis != "" {
		showBasis(fShowBasis)
		return
	}

	cfg := synth.NewConfig()
	if fConfigFile != "" {
		var err error
		if cfg, err = synth.LoadConfig(fConfigFile); err != nil {
			log.Fatal(err)
		}
		log.Printf("Loaded base configuration from %s\n", fConfigFile)
	}

	// Override the config file with command line args, if relevant
	if fVerbosity > 0 { cfg.Verbosity = fVerbosity }
	if fOutputDir != "" { cfg.OutputDir = fOutputDir }
	if fLUTWidth > 0 { cfg.LUTWidth = fLUTWidth }
	if fResizeTo > 0 { cfg.ResizeTo = fResizeTo }
	if fStrict { cfg.StrictDegenerate = true }
	if fSerial { cfg.Parallel = false }

	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}
	if cfg.Verbosity > 0 {
		log.Printf("Final configuration:-\n\n%s\n", cfg.AsYaml())
	}

	if flag.NArg() != 1 {
		log.Fatalf("usage: noisesynth [flags] image.{png,jpg,tif}")
	}

	img, err := synth.LoadImage(flag.Arg(0), cfg)
	if err != nil {
		log.Fatal(err)
	}

	res, err := synth.NewPipeline(cfg).Run(img)
	if err != nil {
		log.Fatalf("precompute of %s failed: %v\n", flag.Arg(0), err)
	}

	report := synth.NewReport(res)
	log.Printf("%s", report)
	if cfg.Verbosity > 0 {
		log.Printf("Decorrelated histograms:-\n%s", report.Histograms())
	}

	if err := synth.WriteOutputs(res, cfg); err != nil {
		log.Fatal(err)
	}
}

func showBasis(filename string) {
	bf, err := synth.LoadBasisYaml(filename)
	if err != nil {
		log.Fatal(err)
	}
	log.Printf("%s: %dx%d LUT, gaussian(%g, %g)\n", filename, bf.LUTWidth, bf.LUTLevels, bf.GaussianMean, bf.GaussianStd)
	log.Printf("Basis:-\n%s", bf.Basis())
	for i, sw := range bf.Basis().Swatches() {
		log.Printf("  swatch %d: %s\n", i, sw.Hex())
	}
}
