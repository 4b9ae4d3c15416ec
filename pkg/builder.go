package mbevts

import (
	"context"
	"errors"
	"fmt"
	"io"
)

// WindowBuilder groups a stream of records into event windows. An EBIS mark
// arriving while the current window holds events closes that window, as does
// an explicit flush record. Closed windows are sent on Windows(); the builder
// keeps no reference to a window once it has been sent.
type WindowBuilder struct {
	window          *MiniballEvts
	out             chan *MiniballEvts
	resetTimestamps bool
	closed          int
}

func NewWindowBuilder(bufferSize int, resetTimestamps bool) *WindowBuilder {
	if bufferSize < 0 {
		bufferSize = 0
	}
	return &WindowBuilder{
		window:          NewMiniballEvts(),
		out:             make(chan *MiniballEvts, bufferSize),
		resetTimestamps: resetTimestamps,
	}
}

func (b *WindowBuilder) Windows() <-chan *MiniballEvts {
	return b.out
}

// Closed returns the number of windows sent so far.
func (b *WindowBuilder) Closed() int {
	return b.closed
}

// Push adds one record to the current window.
func (b *WindowBuilder) Push(ctx context.Context, rec InputRecord) error {
	switch rec.Kind {
	case RecordEBIS:
		if !b.window.Empty() {
			if err := b.emit(ctx); err != nil {
				return err
			}
		}
		b.window.SetEBIS(rec.Time)
		return nil
	case RecordT1:
		b.window.SetT1(rec.Time)
		return nil
	case RecordFlush:
		return b.emit(ctx)
	}

	evt, err := rec.Evt()
	if err != nil {
		return err
	}
	return b.window.AddEvt(evt)
}

func (b *WindowBuilder) emit(ctx context.Context) error {
	if b.window.Empty() {
		return nil
	}
	select {
	case b.out <- b.window.Clone():
	case <-ctx.Done():
		return ctx.Err()
	}
	b.closed++
	if configuration.Verbosity > 1 {
		message := fmt.Sprintf("Window %d closed, EBIS %d", b.closed-1, b.window.GetEBIS())
		logger.Info(message, "builder")
	}
	if b.resetTimestamps {
		b.window.Reset()
	} else {
		b.window.ClearEvt()
	}
	return nil
}

// Run pushes every record of r until the stream ends, sends the last
// non-empty window and closes the output channel.
func (b *WindowBuilder) Run(ctx context.Context, r *StreamReader) error {
	defer close(b.out)
	for {
		rec, err := r.Next()
		if errors.Is(err, io.EOF) {
			return b.emit(ctx)
		}
		if err != nil {
			return err
		}
		if err := b.Push(ctx, rec); err != nil {
			return fmt.Errorf("line %d: %w", r.Line(), err)
		}
	}
}
