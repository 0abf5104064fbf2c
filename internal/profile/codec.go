package profile

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// ErrNotProfile marks input that is not a repairable profile. It is not a
// pipeline failure; callers pass such input through unchanged.
var ErrNotProfile = errors.New("not a profile")

// Decode parses raw JSON into a Profile and checks the minimal shape.
// Numbers keep their literal text.
func Decode(raw []byte) (*Profile, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, fmt.Errorf("%w: decode: %v", ErrNotProfile, err)
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, fmt.Errorf("%w: trailing data after document", ErrNotProfile)
	}
	if err := CheckShape(v); err != nil {
		return nil, err
	}
	root, _ := AsObject(v)
	return New(root), nil
}

// Encode serializes the profile with tab indentation and sorted keys.
func Encode(p *Profile) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "\t")
	if err := enc.Encode(p.Root); err != nil {
		return nil, fmt.Errorf("encode profile: %w", err)
	}
	return buf.Bytes(), nil
}
