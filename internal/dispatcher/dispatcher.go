// Package dispatcher slices self-describing records out of an
// arbitrarily-chunked byte buffer and routes each to its registered
// handler. Record lengths come from the stream's own payload
// descriptor; there are no separators on the wire.
package dispatcher

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// ErrUnknownCommand is returned when a record's command byte has no
// registered length. There is no safe way to skip a record of unknown
// size, so this aborts the stream.
var ErrUnknownCommand = errors.New("unknown command with no registered length")

// Action is a handler's signal back to the feed loop.
type Action int

const (
	// ActionNone continues consuming the buffer.
	ActionNone Action = iota
	// ActionFrameComplete stops the feed after the current record so
	// the caller can finalize the in-progress frame.
	ActionFrameComplete
)

// HandlerFunc decodes one complete record.
type HandlerFunc func(rec []byte) (Action, error)

// BoundaryFunc inspects a complete record before it is dispatched.
// Returning true stops the feed with the record unconsumed, so it is
// redelivered on the next call. Legacy bookend synthesis uses this to
// close a frame before the transitioning record is folded in.
type BoundaryFunc func(rec []byte) bool

// Dispatcher routes event records to registered handlers.
type Dispatcher struct {
	logger     *slog.Logger
	sizes      SizeTable
	handlers   map[byte]HandlerFunc
	boundaries map[byte]BoundaryFunc

	records metric.Int64Counter
	frames  metric.Int64Counter
}

// New creates a Dispatcher. Metrics use the global OTel meter, which
// is a no-op unless the host configured a provider.
func New(logger *slog.Logger) (*Dispatcher, error) {
	d := &Dispatcher{
		logger:     logger,
		handlers:   make(map[byte]HandlerFunc),
		boundaries: make(map[byte]BoundaryFunc),
	}

	m := meter()

	var err error
	d.records, err = m.Int64Counter(
		"decoder.records.processed",
		metric.WithDescription("Total event records dispatched"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating records counter: %w", err)
	}

	d.frames, err = m.Int64Counter(
		"decoder.frames.completed",
		metric.WithDescription("Total frame-completion signals"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating frames counter: %w", err)
	}

	return d, nil
}

// Register adds a handler for the given command. Commands with a
// registered length but no handler are consumed for length only.
func (d *Dispatcher) Register(cmd byte, h HandlerFunc) {
	d.handlers[cmd] = h
}

// SetBoundary installs a pre-dispatch boundary check for a command.
func (d *Dispatcher) SetBoundary(cmd byte, fn BoundaryFunc) {
	d.boundaries[cmd] = fn
}

// Sizes exposes the size table for inspection in tests.
func (d *Dispatcher) Sizes() *SizeTable {
	return &d.sizes
}

// Feed consumes as many complete records from buf as possible.
// It returns the number of bytes consumed and whether a frame
// completed. consumed < len(buf) with no error and no completion means
// the tail is a partial record: await more input and resupply it.
func (d *Dispatcher) Feed(buf []byte) (consumed int, complete bool, err error) {
	ctx := context.Background()
	cursor := 0

	for cursor < len(buf) {
		cmd := buf[cursor]

		if cmd == CmdEventPayloads {
			n, err := d.consumeDescriptor(buf[cursor:])
			if err != nil {
				return cursor, false, err
			}
			if n == 0 {
				return cursor, false, nil
			}
			cursor += n
			continue
		}

		size, ok := d.sizes.Lookup(cmd)
		if !ok {
			return cursor, false, fmt.Errorf("%w: 0x%02x", ErrUnknownCommand, cmd)
		}
		if len(buf)-cursor < size {
			// Partial record: not an error, transports may split
			// records across deliveries.
			return cursor, false, nil
		}
		rec := buf[cursor : cursor+size]

		if boundary, ok := d.boundaries[cmd]; ok && boundary(rec) {
			d.frames.Add(ctx, 1)
			return cursor, true, nil
		}

		cursor += size

		h, ok := d.handlers[cmd]
		if !ok {
			continue
		}

		action, err := h(rec)
		if err != nil {
			return cursor, false, err
		}
		d.records.Add(ctx, 1, metric.WithAttributes(attribute.Int("command", int(cmd))))

		if action == ActionFrameComplete {
			d.frames.Add(ctx, 1)
			return cursor, true, nil
		}
	}

	return cursor, false, nil
}

// consumeDescriptor handles the payload descriptor record, the only
// record whose length is self-described rather than table-driven. It
// returns 0 when the buffer does not yet hold the whole descriptor.
func (d *Dispatcher) consumeDescriptor(buf []byte) (int, error) {
	if len(buf) < 2 {
		return 0, nil
	}
	payloadSize := int(buf[1])
	total := payloadSize + 1
	if len(buf) < total {
		return 0, nil
	}

	pairs := (payloadSize - 1) / 3
	cursor := 2
	for i := 0; i < pairs; i++ {
		cmd := buf[cursor]
		length := uint16(buf[cursor+1])<<8 | uint16(buf[cursor+2])
		d.sizes.Set(cmd, length)
		cursor += 3
	}

	d.logger.Debug("payload descriptor", "commands", pairs)
	return total, nil
}
