package output

import (
	"fmt"
	"io"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/schollz/progressbar/v3"
)

type saver struct {
	progress bool
	total    int64
}

type SaveOption func(*saver)

// WithProgress shows a byte progress bar while the body streams to disk.
// A negative total renders an indeterminate bar.
func WithProgress(total int64) SaveOption {
	return func(s *saver) {
		s.progress = true
		s.total = total
	}
}

// SaveBody streams a response body into path and returns the bytes written.
// The file is closed (and therefore flushed) before returning, so callers
// can exit immediately afterwards without truncating output.
func SaveBody(r io.Reader, path string, opts ...SaveOption) (int64, error) {
	s := &saver{}
	for _, opt := range opts {
		opt(s)
	}

	file, err := os.Create(path)
	if err != nil {
		return 0, fmt.Errorf("cannot create output file %s: %w", path, err)
	}

	writer := io.Writer(file)
	if s.progress {
		bar := progressbar.DefaultBytes(s.total, "Saving")
		writer = io.MultiWriter(file, bar)
	}

	written, copyErr := io.Copy(writer, r)
	closeErr := file.Close()

	if copyErr != nil {
		return written, fmt.Errorf("write to %s failed: %w", path, copyErr)
	}
	if closeErr != nil {
		return written, fmt.Errorf("closing %s failed: %w", path, closeErr)
	}
	return written, nil
}

func humanBytes(n int64) string {
	if n < 0 {
		return "unknown size"
	}
	return humanize.Bytes(uint64(n))
}
