package main

import (
	"encoding/json"
	"fmt"
	"os"

	mbevts "github.com/miniball-daq/mbevts_go/pkg"
)

func LoadConfiguration(filename string) (mbevts.Configuration, error) {
	config := mbevts.DefaultConfiguration()

	data, err := os.ReadFile(filename)
	if err != nil {
		return config, err
	}
	err = json.Unmarshal(data, &config)
	if err != nil {
		return config, err
	}
	return config, nil
}

func printConfiguration(config mbevts.Configuration, logger mbevts.Logger) {
	logger.Info(fmt.Sprintf("File in: %s", config.FileIn), "config")
	logger.Info(fmt.Sprintf("File out: %s", config.FileOut), "config")
	logger.Info(fmt.Sprintf("Run number: %d", config.RunNumber), "config")
	logger.Info(fmt.Sprintf("Verbosity: %d", config.Verbosity), "config")
	logger.Info(fmt.Sprintf("Skip: %d", config.Skip), "config")
	logger.Info(fmt.Sprintf("Max windows: %d", config.MaxWindows), "config")
	logger.Info(fmt.Sprintf("Reset timestamps: %t", config.ResetTimestamps), "config")
	logger.Info(fmt.Sprintf("Write data: %t", config.WriteData), "config")
	logger.Info(fmt.Sprintf("Compression level: %d", config.CompressionLevel), "config")
	logger.Info(fmt.Sprintf("Chunk size: %d", config.ChunkSize), "config")
	logger.Info(fmt.Sprintf("Buffer size: %d", config.BufferSize), "config")
	logger.Info(fmt.Sprintf("Use catalog: %t", config.UseCatalog), "config")
	logger.Info(fmt.Sprintf("Catalog driver: %s", config.CatalogDriver), "config")
	logger.Info(fmt.Sprintf("Host: %s", config.Host), "config")
	logger.Info(fmt.Sprintf("DB name: %s", config.DBName), "config")
	logger.Info(fmt.Sprintf("Metrics address: %s", config.MetricsAddr), "config")
}
