// Copyright 2026 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

package mmif

import (
	"errors"
	"fmt"
)

// ErrNoVersion is returned from Parse() if the input has no
// "metadata.mmif" version string.
var ErrNoVersion = errors.New("MMIF has no metadata.mmif version")

// ErrNoLocation is returned from Document.LocationPath() if the
// document does not have a location property.
var ErrNoLocation = errors.New("Document has no location")

// ErrDuplicateID is returned when adding an object whose identifier
// is already in use in its container.
type ErrDuplicateID struct {
	// Kind is "document", "view", or "annotation".
	Kind string
	ID   string
}

func (e ErrDuplicateID) Error() string {
	return fmt.Sprintf("Duplicate %s id %q", e.Kind, e.ID)
}

// ErrUndeclaredType is returned when an annotation's type does not
// appear in its view's "contains" declaration.
type ErrUndeclaredType struct {
	View string
	Type string
}

func (e ErrUndeclaredType) Error() string {
	return fmt.Sprintf("View %q does not declare type %v", e.View, e.Type)
}

// ErrMalformed wraps an error from decoding serialized MMIF.
type ErrMalformed struct {
	Err error
}

func (e ErrMalformed) Error() string {
	return "Malformed MMIF: " + e.Err.Error()
}

func (e ErrMalformed) Unwrap() error {
	return e.Err
}

// ErrUnsupportedLocation is returned from Document.LocationPath() if
// the location is not a local file path or file:// URI.
type ErrUnsupportedLocation struct {
	Location string
}

func (e ErrUnsupportedLocation) Error() string {
	return fmt.Sprintf("Unsupported document location %q", e.Location)
}
