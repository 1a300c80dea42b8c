package logging

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/Graylog2/go-gelf/gelf"
)

// NewGelfHandler returns a handler shipping records to a Graylog GELF
// endpoint. The returned closer tears down the UDP writer.
func NewGelfHandler(addr string, opts *slog.HandlerOptions) (slog.Handler, io.Closer, error) {
	w, err := gelf.NewWriter(addr)
	if err != nil {
		return nil, nil, fmt.Errorf("connecting to graylog %s: %w", addr, err)
	}
	return slog.NewJSONHandler(w, opts), w, nil
}
