// Package stream supplies raw event bytes to the decode engine. A
// Source hands out opaque chunks; chunk boundaries carry no meaning
// and never line up with record boundaries.
package stream

import "context"

// Source is a transport delivering the event stream in chunks.
//
// NextChunk blocks until data is available, the stream ends (io.EOF),
// or ctx is done. A polling source instead returns (nil, nil)
// immediately when nothing is buffered.
type Source interface {
	NextChunk(ctx context.Context) ([]byte, error)
	Close() error
}
