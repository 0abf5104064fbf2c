package profilefile

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/klauspost/compress/zstd"
)

var zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}

// File is a profile document as read from disk.
type File struct {
	Name       string
	Data       []byte
	Compressed bool
}

// IsCompressed reports whether b starts with a zstd frame.
func IsCompressed(b []byte) bool { return bytes.HasPrefix(b, zstdMagic) }

// Read loads a profile, transparently decompressing zstd input.
func Read(path string) (File, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return File{}, err
	}
	return Decode(filepath.Base(path), raw)
}

// ReadFrom is Read for standard input and other streams.
func ReadFrom(name string, r io.Reader) (File, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return File{}, err
	}
	return Decode(name, raw)
}

func Decode(name string, raw []byte) (File, error) {
	if !IsCompressed(raw) {
		return File{Name: name, Data: raw}, nil
	}
	dec, err := zstd.NewReader(nil)
	if err != nil {
		return File{}, err
	}
	defer dec.Close()
	data, err := dec.DecodeAll(raw, nil)
	if err != nil {
		return File{}, fmt.Errorf("zstd decode %s: %w", name, err)
	}
	return File{Name: name, Data: data, Compressed: true}, nil
}

// Write stores data at path, compressing when compressed is set. The file is
// written next to its destination and renamed into place.
func Write(path string, data []byte, compressed bool) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), ".profilefix-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if err := encodeTo(tmp, data, compressed); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}

// WriteTo streams data to w, compressing when compressed is set.
func WriteTo(w io.Writer, data []byte, compressed bool) error {
	return encodeTo(w, data, compressed)
}

func encodeTo(w io.Writer, data []byte, compressed bool) error {
	if !compressed {
		_, err := w.Write(data)
		return err
	}
	enc, err := zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return err
	}
	bw := bufio.NewWriterSize(enc, 256*1024)
	if _, err := bw.Write(data); err != nil {
		_ = enc.Close()
		return err
	}
	if err := bw.Flush(); err != nil {
		_ = enc.Close()
		return err
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("zstd encode: %w", err)
	}
	return nil
}
