package main

import (
	"context"
	"path/filepath"
	"testing"

	mbevts "github.com/miniball-daq/mbevts_go/pkg"
	"github.com/miniball-daq/mbevts_go/pkg/h5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func feed(windows []*mbevts.MiniballEvts) <-chan *mbevts.MiniballEvts {
	ch := make(chan *mbevts.MiniballEvts, len(windows))
	for _, w := range windows {
		ch <- w
	}
	close(ch)
	return ch
}

func simulated(n int) []*mbevts.MiniballEvts {
	sim := mbevts.NewSimulator(5)
	windows := make([]*mbevts.MiniballEvts, n)
	for i := range windows {
		windows[i] = sim.Window()
	}
	return windows
}

func TestProcessWindowsSkipAndMax(t *testing.T) {
	configuration = mbevts.DefaultConfiguration()
	configuration.Skip = 2
	configuration.MaxWindows = 3
	t.Cleanup(func() { configuration = mbevts.DefaultConfiguration() })

	sink := &windowSink{metrics: mbevts.NewMetrics(prometheus.NewRegistry())}
	cancelled := false
	written := processWindows(feed(simulated(8)), func() { cancelled = true }, sink)

	assert.Equal(t, 3, written)
	assert.True(t, cancelled)
	assert.Equal(t, float64(3), testutil.ToFloat64(sink.metrics.WindowsTotal))
}

func TestProcessWindowsAllSinks(t *testing.T) {
	configuration = mbevts.DefaultConfiguration()
	configuration.RunNumber = 77
	mbevts.SetConfiguration(configuration)
	t.Cleanup(func() {
		configuration = mbevts.DefaultConfiguration()
		mbevts.SetConfiguration(configuration)
	})

	dir := t.TempDir()
	writer, err := h5.NewWriter(filepath.Join(dir, "run77.h5"), 77)
	require.NoError(t, err)
	catalog, err := mbevts.OpenCatalog("sqlite", filepath.Join(dir, "catalog.db"))
	require.NoError(t, err)
	defer catalog.Close()
	require.NoError(t, catalog.Init())

	sink := &windowSink{writer: writer, catalog: catalog}
	windows := simulated(4)
	_, cancel := context.WithCancel(context.Background())
	defer cancel()
	written := processWindows(feed(windows), cancel, sink)
	require.NoError(t, writer.Close())
	assert.Equal(t, 4, written)

	summaries, err := catalog.Windows(77)
	require.NoError(t, err)
	require.Len(t, summaries, 4)
	for i, s := range summaries {
		assert.Equal(t, i, s.Window)
		assert.Equal(t, int64(windows[i].GetEBIS()), s.EBIS)
		assert.Equal(t, windows[i].GetParticleMultiplicity(), s.NParticle)
		assert.Equal(t, writer.Filename, s.File)
	}

	run, read, err := h5.ReadFile(writer.Filename)
	require.NoError(t, err)
	assert.Equal(t, uint32(77), run)
	assert.Len(t, read, 4)
}

func TestOpenCatalogSqlite(t *testing.T) {
	config := mbevts.DefaultConfiguration()
	config.CatalogDriver = "sqlite"
	config.CatalogDSN = filepath.Join(t.TempDir(), "c.db")

	catalog, err := openCatalog(config)
	require.NoError(t, err)
	assert.NoError(t, catalog.Close())
}
