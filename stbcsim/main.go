// Command stbcsim sweeps the bit error rate of the Alamouti 2xNRx link over Eb/N0 and
// compares it with the closed form curve.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"

	log "github.com/sirupsen/logrus"

	"github.com/wiless/alamouti/sweep"
	"github.com/wiless/alamouti/theory"
	"github.com/wiless/vlib"
)

var (
	indir      string
	outdir     string
	currentdir string
)

// CheckDirs resolves indir and outdir to absolute paths. indir must be an existing directory,
// a missing outdir is created.
func CheckDirs() error {
	finfo, err := os.Stat(indir)
	if err != nil {
		return fmt.Errorf("input dir %s: %w", indir, err)
	}
	if !finfo.IsDir() {
		return fmt.Errorf("input dir %s is not a directory", indir)
	}

	finfo, err = os.Stat(outdir)
	switch {
	case os.IsNotExist(err):
		log.Info("Creating OUTPUT directory : ", outdir)
		if err := os.MkdirAll(outdir, os.ModePerm); err != nil {
			return fmt.Errorf("creating output dir %s: %w", outdir, err)
		}
	case err != nil:
		return fmt.Errorf("output dir %s: %w", outdir, err)
	case !finfo.IsDir():
		return fmt.Errorf("output dir %s is not a directory", outdir)
	}

	if indir, err = filepath.Abs(indir); err != nil {
		return err
	}
	outdir, err = filepath.Abs(outdir)
	return err
}

func SwitchOutput() error {
	pwd, err := os.Getwd()
	if err != nil {
		return err
	}
	currentdir = pwd
	log.Debugf("Switching to OUTPUT %s to %s ", pwd, outdir)
	return os.Chdir(outdir)
}

func SwitchBack() error {
	log.Debugf("Switching to DEFAULT %s", currentdir)
	return os.Chdir(currentdir)
}

func main() {
	setting := sweep.NewSetting()

	flag.StringVar(&outdir, "outdir", ".", "Directory where all the output files are generated..")
	flag.StringVar(&indir, "indir", ".", "Directory where stbcsim.{json,yaml,toml} is read from..")
	bits := flag.Int("bits", setting.Bits, "bits per Eb/N0 point (even)")
	start := flag.Float64("start", setting.StartDb, "first Eb/N0 in dB")
	end := flag.Float64("end", setting.EndDb, "last Eb/N0 in dB (inclusive)")
	step := flag.Float64("step", setting.StepDb, "Eb/N0 step in dB")
	nrx := flag.Int("nrx", setting.NRx, "number of receive antennas")
	seed := flag.Uint64("seed", setting.Seed, "random seed, 0 picks one from the clock")
	workers := flag.Int("workers", setting.Workers, "Eb/N0 points simulated concurrently")
	batch := flag.Int("batch", setting.BatchSize, "codewords per batch")
	name := flag.String("o", "alamouti_ber", "base name of the generated .json and .m files")
	help := flag.Bool("help", false, "prints this help")
	verbose := flag.Bool("v", false, "Print debug logs")
	quiet := flag.Bool("q", false, "Print warnings and errors only")
	flag.Parse()

	if *help {
		flag.PrintDefaults()
		os.Exit(0)
	}
	switch {
	case *verbose:
		log.SetLevel(log.DebugLevel)
	case *quiet:
		log.SetLevel(log.WarnLevel)
	}
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})

	if err := CheckDirs(); err != nil {
		log.Fatalf("stbcsim: %v", err)
	}
	if err := ReadAppConfig(setting); err != nil {
		log.Fatalf("stbcsim: config: %v", err)
	}
	// explicit flags win over the config file
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "bits":
			setting.Bits = *bits
		case "start":
			setting.StartDb = *start
		case "end":
			setting.EndDb = *end
		case "step":
			setting.StepDb = *step
		case "nrx":
			setting.NRx = *nrx
		case "seed":
			setting.Seed = *seed
		case "workers":
			setting.Workers = *workers
		case "batch":
			setting.BatchSize = *batch
		}
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	curve, err := sweep.Run(ctx, *setting)
	if err != nil && len(curve) == 0 {
		log.Fatalf("stbcsim: %v", err)
	}
	if err != nil {
		log.Warnf("stbcsim: partial curve (%d points): %v", len(curve), err)
	}

	model, err := theory.NewModel(theory.NewModelSetting(theory.Alamouti, setting.NRx))
	if err != nil {
		log.Fatalf("stbcsim: %v", err)
	}
	rows := sweep.Compare(curve, model, 0.95)
	PrintTable(os.Stdout, rows)
	log.WithField("meanLog10Deviation", sweep.LogDeviation(rows)).Info("stbcsim: compared with theory")

	if err := SwitchOutput(); err != nil {
		log.Fatalf("stbcsim: %v", err)
	}
	defer func() {
		if err := SwitchBack(); err != nil {
			log.Errorf("stbcsim: %v", err)
		}
	}()
	vlib.SaveStructure(rows, *name+".json", true)
	if err := WritePlot(*name+".m", curve, setting.NRx); err != nil {
		log.Errorf("stbcsim: plot: %v", err)
	}
}
