package main

import (
	"flag"
	"fmt"
	"os"

	"mangle/internal/logger"
	"mangle/internal/util"
	"mangle/pkg/audio"
	"mangle/pkg/config"
	"mangle/pkg/mangle"
)

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: %s [flags] input [output]\n\n", os.Args[0])
	fmt.Fprintln(os.Stderr, "Mangle an audio file using cut-up techniques based on dadaist and surrealist art.")
	fmt.Fprintln(os.Stderr, "Output defaults to output.wav.")
	fmt.Fprintln(os.Stderr)
	flag.PrintDefaults()
}

func main() {
	configPath := flag.String("config", "mangle.yaml", "Path to configuration file")
	hpm := flag.Int("hpm", 0, "Hits/cuts to make per minute (overrides config)")
	hps := flag.Int("hps", 0, "Hits/cuts to make per second (overrides config and -hpm)")
	limit := flag.Int("limit", 0, "Only mangle the first N seconds of input")
	seed := flag.Int64("seed", 0, "RNG seed for a reproducible mangle (0 = time-derived)")
	play := flag.Bool("play", false, "Preview the result through the default output device")
	logLevel := flag.String("log-level", "", "Log level: debug, info, warn, error")
	writeConfig := flag.Bool("write-config", false, "Write the default configuration to -config and exit")
	flag.Usage = usage
	flag.Parse()

	if *writeConfig {
		if err := config.SaveConfig(config.DefaultConfig(), *configPath); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		fmt.Println("Wrote default configuration to", *configPath)
		return
	}

	if flag.NArg() < 1 || flag.NArg() > 2 {
		usage()
		os.Exit(1)
	}
	inputFile := flag.Arg(0)
	outputFile := "output.wav"
	if flag.NArg() == 2 {
		outputFile = flag.Arg(1)
	}

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	// Flags override file values
	if *hpm > 0 {
		cfg.Mangle.HitsPerMinute = *hpm
		cfg.Mangle.HitsPerSecond = 0
	}
	if *hps > 0 {
		cfg.Mangle.HitsPerSecond = *hps
	}
	if *limit > 0 {
		cfg.Audio.LimitSeconds = *limit
	}
	if *seed != 0 {
		cfg.Mangle.Seed = *seed
	}
	if *play {
		cfg.Audio.Play = true
	}
	if *logLevel != "" {
		cfg.Log.Level = *logLevel
	}

	log := newLogger(cfg)
	defer log.Close()

	if err := run(cfg, inputFile, outputFile, log); err != nil {
		log.Error(err)
		os.Exit(1)
	}
}

func newLogger(cfg *config.Config) *logger.Logger {
	if cfg.Log.File != "" {
		log, err := logger.NewMultiLogger(cfg.Log.Level, cfg.Log.File)
		if err == nil {
			return log
		}
		fmt.Fprintln(os.Stderr, err)
	}
	return logger.NewLogger(cfg.Log.Level)
}

func run(cfg *config.Config, inputFile, outputFile string, log *logger.Logger) error {
	stream, err := audio.Decode(inputFile)
	if err != nil {
		return err
	}
	stream.Stereoify()
	if cfg.Audio.LimitSeconds > 0 {
		stream.Limit(cfg.Audio.LimitSeconds)
	}
	log.Infof("Loaded %s: %d channels, %d Hz, %s",
		inputFile, stream.NumChannels(), stream.SampleRate, util.FormatDuration(stream.Duration()))

	m, err := mangle.New(stream, mangle.Options{
		BlockSize:       int(float64(stream.SampleRate) * cfg.Mangle.BlockRatio),
		Seed:            cfg.Mangle.Seed,
		Weights:         cfg.Mangle.Weights,
		RetryFailedHits: cfg.Mangle.RetryFailedHits,
		Logger:          log,
	})
	if err != nil {
		return err
	}

	numHits := mangle.NumHits(cfg.Mangle.HitsPerMinute, cfg.Mangle.HitsPerSecond, stream.Len(), stream.SampleRate)
	log.Infof("Mangling with %d hits, block size %d samples", numHits, m.BlockSize())

	if err := m.Run(numHits); err != nil {
		return err
	}

	if err := audio.Encode(outputFile, stream); err != nil {
		return err
	}
	log.Infof("Wrote %s", outputFile)

	if cfg.Audio.Play {
		log.Info("Playing preview...")
		if err := audio.Play(stream, cfg.Audio.Volume); err != nil {
			// A missing output device should not fail the run
			log.Warnf("preview playback failed: %v", err)
		}
	}
	return nil
}
