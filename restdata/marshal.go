// Copyright 2015-2026 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

package restdata

import (
	"io"
	"mime"

	"github.com/diffeo/go-clams/mmif"
	"github.com/ugorji/go/codec"
)

// mmifBodyTypes lists the request Content-Type: values whose bodies
// are read as MMIF JSON.  Clients such as curl -d send the generic
// ones even when the body is JSON.
var mmifBodyTypes = map[string]bool{
	"application/json":                  true,
	"text/json":                         true,
	"text/plain":                        true,
	"application/octet-stream":          true,
	"application/x-www-form-urlencoded": true,
}

// checkMediaType parses a Content-Type: header and fails with
// ErrUnsupportedMediaType unless it is one that can carry JSON.  An
// empty header is accepted.
func checkMediaType(contentType string, allowed map[string]bool) error {
	if contentType == "" {
		return nil
	}
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return ErrBadRequest{Err: err}
	}
	if !allowed[mediaType] {
		return ErrUnsupportedMediaType{Type: mediaType}
	}
	return nil
}

// Decode tries to decode a restdata object from a reader, such as an
// HTTP response.  out must be a pointer type.
func Decode(contentType string, r io.Reader, out interface{}) error {
	err := checkMediaType(contentType, map[string]bool{
		"application/json": true,
		"text/json":        true,
	})
	if err != nil {
		return err
	}
	decoder := codec.NewDecoder(r, mmif.JSONHandle())
	return decoder.Decode(out)
}

// DecodeMmif reads an MMIF container from a request body.  An
// unrecognized Content-Type: fails with ErrUnsupportedMediaType; a
// body that does not parse fails with ErrBadRequest.
func DecodeMmif(contentType string, r io.Reader) (*mmif.Mmif, error) {
	if err := checkMediaType(contentType, mmifBodyTypes); err != nil {
		return nil, err
	}
	m, err := mmif.Parse(r)
	if err != nil {
		return nil, ErrBadRequest{Err: err}
	}
	return m, nil
}
