package main

import (
	"context"
	"fmt"

	mbevts "github.com/miniball-daq/mbevts_go/pkg"
	"github.com/miniball-daq/mbevts_go/pkg/h5"
)

// windowSink receives the windows closed by the builder. Any of its members may be nil.
type windowSink struct {
	writer  *h5.Writer
	catalog *mbevts.Catalog
	metrics *mbevts.Metrics
	written int
}

func (s *windowSink) handle(evts *mbevts.MiniballEvts) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("recovered from panic writing window %d: %v", s.written, r)
		}
	}()

	if s.writer != nil {
		if err := s.writer.WriteWindow(evts); err != nil {
			return err
		}
	}
	if s.catalog != nil {
		file := ""
		if s.writer != nil {
			file = s.writer.Filename
		}
		if err := s.catalog.RecordWindow(configuration.RunNumber, s.written, file, evts); err != nil {
			return err
		}
	}
	if s.metrics != nil {
		s.metrics.ObserveWindow(evts)
	}
	s.written++
	return nil
}

// processWindows consumes windows until the channel is closed. Once
// maxWindows windows have been handled, cancel stops the builder.
func processWindows(windows <-chan *mbevts.MiniballEvts, cancel context.CancelFunc, sink *windowSink) int {
	received := 0
	for evts := range windows {
		received++
		if received <= configuration.Skip {
			if VerbosityLevel > 1 {
				logger.Info(fmt.Sprintf("Skipping window %d", received-1), "workers")
			}
			continue
		}
		if sink.written >= configuration.MaxWindows {
			cancel()
			continue
		}

		if err := sink.handle(evts); err != nil {
			logger.Error(fmt.Errorf("discarding window %d: %w", received-1, err).Error())
			continue
		}
		if VerbosityLevel > 0 {
			message := fmt.Sprintf("Window %d: EBIS %d, %d events", received-1, evts.GetEBIS(), evts.Len())
			logger.Info(message, "workers")
		}
		if sink.written >= configuration.MaxWindows {
			if VerbosityLevel > 0 {
				logger.Info("Max windows reached", "workers")
			}
			cancel()
		}
	}
	return sink.written
}
