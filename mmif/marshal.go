// Copyright 2026 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

package mmif

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"reflect"
	"strings"

	"github.com/ugorji/go/codec"
)

// JSONHandle returns a codec handle configured for MMIF: embedded
// objects decode as map[string]interface{} and integers as int64.
func JSONHandle() *codec.JsonHandle {
	h := &codec.JsonHandle{}
	h.MapType = reflect.TypeOf(map[string]interface{}(nil))
	h.SignedInteger = true
	return h
}

// Encode writes v as JSON, optionally indented.
func Encode(v interface{}, pretty bool) ([]byte, error) {
	var out []byte
	encoder := codec.NewEncoderBytes(&out, JSONHandle())
	if err := encoder.Encode(v); err != nil {
		return nil, err
	}
	if !pretty {
		return out, nil
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, out, "", "  "); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Serialize returns the JSON form of the container.
func (m *Mmif) Serialize(pretty bool) ([]byte, error) {
	m.normalize()
	return Encode(m, pretty)
}

// String returns the compact JSON form, or "" if it cannot be encoded.
func (m *Mmif) String() string {
	b, err := m.Serialize(false)
	if err != nil {
		return ""
	}
	return string(b)
}

// Parse reads and validates a serialized container.  Decoding
// failures are reported as ErrMalformed; invariant violations as the
// specific error from Validate().
func Parse(r io.Reader) (*Mmif, error) {
	m := &Mmif{}
	decoder := codec.NewDecoder(r, JSONHandle())
	if err := decoder.Decode(m); err != nil {
		return nil, ErrMalformed{Err: err}
	}
	if err := m.checkEntries(); err != nil {
		return nil, ErrMalformed{Err: err}
	}
	m.normalize()
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return m, nil
}

// checkEntries rejects null entries in the document, view, and
// annotation lists.
func (m *Mmif) checkEntries() error {
	for i, d := range m.Documents {
		if d == nil {
			return fmt.Errorf("documents[%d] is null", i)
		}
	}
	for i, v := range m.Views {
		if v == nil {
			return fmt.Errorf("views[%d] is null", i)
		}
		for j, a := range v.Annotations {
			if a == nil {
				return fmt.Errorf("views[%d].annotations[%d] is null", i, j)
			}
		}
	}
	return nil
}

// FromBytes parses a serialized container held in memory.
func FromBytes(b []byte) (*Mmif, error) {
	return Parse(bytes.NewReader(b))
}

// FromString parses a serialized container held in a string.
func FromString(s string) (*Mmif, error) {
	return Parse(strings.NewReader(s))
}
