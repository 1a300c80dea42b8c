package stream

import (
	"context"
	"fmt"
	"io"
	"os"
)

const fileChunkSize = 4096

// FileSource replays a pre-recorded raw event stream from disk. It
// deliberately reads in fixed chunks so the engine exercises the same
// partial-record paths a live transport does.
type FileSource struct {
	f   *os.File
	buf [fileChunkSize]byte
}

// OpenFile opens a recorded event stream.
func OpenFile(path string) (*FileSource, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening stream file: %w", err)
	}
	return &FileSource{f: f}, nil
}

// NextChunk returns the next chunk of the recording, or io.EOF at the
// end of the file.
func (s *FileSource) NextChunk(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	n, err := s.f.Read(s.buf[:])
	if n > 0 {
		out := make([]byte, n)
		copy(out, s.buf[:n])
		return out, nil
	}
	if err == nil {
		err = io.EOF
	}
	return nil, err
}

// Close closes the underlying file.
func (s *FileSource) Close() error {
	return s.f.Close()
}
