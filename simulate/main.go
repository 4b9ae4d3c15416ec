package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	mbevts "github.com/miniball-daq/mbevts_go/pkg"
	"github.com/miniball-daq/mbevts_go/pkg/h5"
)

var logger mbevts.SlogLogger

func init() {
	logger = mbevts.NewSlogLogger(os.Stdout, os.Stderr)
}

func main() {
	nWindows := flag.Int("windows", 1000, "Number of windows to generate")
	seed := flag.Int64("seed", 1, "Random seed")
	levels := flag.String("levels", "0,4,9", "Comma separated deflate levels to measure")
	outDir := flag.String("out", ".", "Output directory")
	multiplicity := flag.Int("multiplicity", 8, "Maximum events per kind and window")
	verbosity := flag.Int("verbosity", 0, "Verbosity level")
	flag.Parse()

	compressionLevels, err := parseLevels(*levels)
	if err != nil {
		logger.Error(err.Error())
		os.Exit(1)
	}

	mbevts.SetLogger(logger)

	simulator := mbevts.NewSimulator(*seed)
	simulator.MaxMultiplicity = *multiplicity
	windows := make([]*mbevts.MiniballEvts, 0, *nWindows)
	nEvents := 0
	for i := 0; i < *nWindows; i++ {
		evts := simulator.Window()
		nEvents += evts.Len()
		windows = append(windows, evts)
	}
	logger.Info(fmt.Sprintf("Generated %d windows, %d events", len(windows), nEvents), "main")

	for _, level := range compressionLevels {
		config := mbevts.DefaultConfiguration()
		config.CompressionLevel = level
		config.Verbosity = *verbosity
		mbevts.SetConfiguration(config)

		filename := filepath.Join(*outDir, fmt.Sprintf("simulated_deflate%d.h5", level))
		duration, err := writeWindows(filename, windows)
		if err != nil {
			logger.Error(fmt.Errorf("deflate level %d: %w", level, err).Error())
			continue
		}

		info, err := os.Stat(filename)
		if err != nil {
			logger.Error(err.Error())
			continue
		}
		message := fmt.Sprintf("Deflate level %d: %d ms, %d bytes", level, duration.Milliseconds(), info.Size())
		logger.Info(message, "main")
	}
}

func writeWindows(filename string, windows []*mbevts.MiniballEvts) (time.Duration, error) {
	start := time.Now()
	writer, err := h5.NewWriter(filename, 0)
	if err != nil {
		return 0, err
	}
	for _, evts := range windows {
		if err := writer.WriteWindow(evts); err != nil {
			writer.Close()
			return 0, err
		}
	}
	if err := writer.Close(); err != nil {
		return 0, err
	}
	return time.Since(start), nil
}

func parseLevels(levels string) ([]int, error) {
	result := make([]int, 0)
	for _, field := range strings.Split(levels, ",") {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}
		level, err := strconv.Atoi(field)
		if err != nil {
			return nil, fmt.Errorf("invalid deflate level %q: %w", field, err)
		}
		if level < 0 || level > 9 {
			return nil, fmt.Errorf("deflate level %d out of range 0-9", level)
		}
		result = append(result, level)
	}
	return result, nil
}
