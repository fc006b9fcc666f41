package logging

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/Graylog2/go-gelf/gelf"
)

// NewGraylogHandler sends JSON records to a Graylog GELF UDP input. Each record
// becomes one GELF message. The returned closer releases the UDP socket.
func NewGraylogHandler(address string, opts *slog.HandlerOptions) (slog.Handler, io.Closer, error) {
	w, err := gelf.NewWriter(address)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create GELF writer for %s: %w", address, err)
	}
	w.Facility = InstrumentationName
	return slog.NewJSONHandler(w, opts), w, nil
}
