package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"time"

	mbevts "github.com/miniball-daq/mbevts_go/pkg"
	"github.com/miniball-daq/mbevts_go/pkg/h5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var configuration mbevts.Configuration

var (
	logger         mbevts.SlogLogger
	VerbosityLevel int
)

func init() {
	logger = mbevts.NewSlogLogger(os.Stdout, os.Stderr)
}

func main() {
	configFilename := flag.String("config", "", "Configuration file path")
	flag.Parse()

	var err error
	configuration, err = LoadConfiguration(*configFilename)
	if err != nil {
		message := fmt.Errorf("Error reading configuration file: %w", err)
		logger.Error(message.Error())
		os.Exit(1)
	}
	mbevts.SetConfiguration(configuration)
	mbevts.SetLogger(logger)

	VerbosityLevel = configuration.Verbosity
	if VerbosityLevel > 0 {
		logger.Info(fmt.Sprintf("Reading configuration file: %s", *configFilename), "main")
		printConfiguration(configuration, logger)
	}

	if err := run(); err != nil {
		logger.Error(err.Error())
		os.Exit(1)
	}
}

func run() error {
	file, err := os.Open(configuration.FileIn)
	if err != nil {
		return fmt.Errorf("Error opening file: %w", err)
	}
	defer file.Close()

	sink := &windowSink{}

	if configuration.WriteData {
		sink.writer, err = h5.NewWriter(configuration.FileOut, configuration.RunNumber)
		if err != nil {
			return fmt.Errorf("Error creating output file: %w", err)
		}
		defer func() {
			if err := sink.writer.Close(); err != nil {
				logger.Error(err.Error())
			}
		}()
	}

	if configuration.UseCatalog {
		sink.catalog, err = openCatalog(configuration)
		if err != nil {
			return err
		}
		defer sink.catalog.Close()
		if err := sink.catalog.Init(); err != nil {
			return err
		}
	}

	registry := prometheus.NewRegistry()
	sink.metrics = mbevts.NewMetrics(registry)
	if configuration.MetricsAddr != "" {
		server := &http.Server{
			Addr:              configuration.MetricsAddr,
			Handler:           promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
			ReadHeaderTimeout: 5 * time.Second,
		}
		go func() {
			if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error(fmt.Errorf("metrics server: %w", err).Error())
			}
		}()
		defer server.Close()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	start := time.Now()
	builder := mbevts.NewWindowBuilder(configuration.BufferSize, configuration.ResetTimestamps)
	builderErr := make(chan error, 1)
	go func() {
		builderErr <- builder.Run(ctx, mbevts.NewStreamReader(file))
	}()

	written := processWindows(builder.Windows(), cancel, sink)

	if err := <-builderErr; err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("error reading events: %w", err)
	}

	duration := time.Since(start)
	logger.Info(fmt.Sprintf("Windows written: %d of %d in %d ms", written, builder.Closed(), duration.Milliseconds()), "main")
	return nil
}

func openCatalog(config mbevts.Configuration) (*mbevts.Catalog, error) {
	if config.CatalogDriver == "mysql" && config.CatalogDSN == "" {
		db, err := mbevts.ConnectToDatabase(config.User, config.Passwd, config.Host, config.DBName)
		if err != nil {
			return nil, fmt.Errorf("Error connection to database: %w", err)
		}
		return mbevts.NewCatalog(db), nil
	}
	return mbevts.OpenCatalog(config.CatalogDriver, config.CatalogDSN)
}
