package sampledata

import (
	"bufio"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/golang/snappy"
	"github.com/okian/bikeshare/pkg/logger"
)

// File permission constants.
const (
	directoryPermission = 0o750
	filePermission      = 0o644
)

// countingWriter counts bytes passed to the underlying writer.
type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}

// Write generates the dataset described by cfg and writes it to w as CSV,
// compressed when cfg.Compress is set.
func Write(ctx context.Context, w io.Writer, cfg Config) (Stats, error) {
	if err := cfg.normalize(); err != nil {
		return Stats{}, err
	}

	rows, err := generateRows(ctx, cfg)
	if err != nil {
		return Stats{}, err
	}

	cw := &countingWriter{w: w}
	var sink io.Writer = cw
	var sw *snappy.Writer
	if cfg.Compress {
		sw = snappy.NewBufferedWriter(cw)
		sink = sw
	}

	enc := csv.NewWriter(sink)
	if err := enc.Write(Header(cfg.City)); err != nil {
		return Stats{}, fmt.Errorf("%w: header: %w", ErrWrite, err)
	}
	if err := enc.WriteAll(rows); err != nil {
		return Stats{}, fmt.Errorf("%w: rows: %w", ErrWrite, err)
	}
	if sw != nil {
		if err := sw.Close(); err != nil {
			return Stats{}, fmt.Errorf("%w: snappy: %w", ErrWrite, err)
		}
	}

	return Stats{Rows: len(rows), Bytes: cw.n}, nil
}

// WriteFile writes the dataset of cfg to dir/name, creating dir as needed.
func WriteFile(ctx context.Context, dir, name string, cfg Config) (Stats, error) {
	if err := os.MkdirAll(dir, directoryPermission); err != nil {
		return Stats{}, fmt.Errorf("%w: %w", ErrWrite, err)
	}

	path := filepath.Join(dir, name)
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, filePermission)
	if err != nil {
		return Stats{}, fmt.Errorf("%w: %w", ErrWrite, err)
	}

	bw := bufio.NewWriter(f)
	stats, err := Write(ctx, bw, cfg)
	if err == nil {
		err = bw.Flush()
	}
	if cerr := f.Close(); err == nil && cerr != nil {
		err = fmt.Errorf("%w: %w", ErrWrite, cerr)
	}
	if err != nil {
		return Stats{}, err
	}

	stats.Path = path
	logger.Get().Info(ctx, "sample dataset written",
		logger.String("path", path),
		logger.Int("rows", stats.Rows),
		logger.Any("bytes", stats.Bytes))
	return stats, nil
}
