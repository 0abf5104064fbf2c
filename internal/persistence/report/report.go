package report

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/zstd"

	"profilefix/internal/repair"
)

// JSONLWriter writes one JSON value per line, zstd-compressed when the file
// name ends in ".zst".
type JSONLWriter struct {
	f   *os.File
	enc *zstd.Encoder
	w   *bufio.Writer
}

func Create(path string) (*JSONLWriter, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return nil, err
	}
	w := &JSONLWriter{f: f}
	if strings.HasSuffix(path, ".zst") {
		enc, err := zstd.NewWriter(f, zstd.WithEncoderLevel(zstd.SpeedFastest))
		if err != nil {
			_ = f.Close()
			return nil, err
		}
		w.enc = enc
		w.w = bufio.NewWriterSize(enc, 64*1024)
	} else {
		w.w = bufio.NewWriterSize(f, 64*1024)
	}
	return w, nil
}

func (w *JSONLWriter) Write(v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	if _, err := w.w.Write(b); err != nil {
		return err
	}
	return w.w.WriteByte('\n')
}

func (w *JSONLWriter) Close() error {
	var first error
	if err := w.w.Flush(); err != nil {
		first = err
	}
	if w.enc != nil {
		if err := w.enc.Close(); err != nil && first == nil {
			first = err
		}
	}
	if err := w.f.Close(); err != nil && first == nil {
		first = err
	}
	return first
}

// Line is one report record.
type Line struct {
	File    string `json:"file"`
	Message string `json:"message"`
	Success bool   `json:"success"`
}

// WriteEntries writes a change log to path, one line per entry.
func WriteEntries(path, file string, entries []repair.Entry) error {
	w, err := Create(path)
	if err != nil {
		return err
	}
	for _, e := range entries {
		if err := w.Write(Line{File: file, Message: e.Message, Success: e.Success}); err != nil {
			_ = w.Close()
			return err
		}
	}
	return w.Close()
}
