// Copyright 2026 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

package clams

import (
	"fmt"
)

// ErrUnsupportedParameter is returned from Annotate() if the caller
// supplied a parameter the app does not declare.
type ErrUnsupportedParameter struct {
	Name string
}

func (e ErrUnsupportedParameter) Error() string {
	return fmt.Sprintf("Unsupported parameter %q", e.Name)
}

// ErrBadParameter is returned from Annotate() if a declared parameter
// has a value that cannot be converted to its type, is not one of its
// choices, or is repeated when it is not multivalued.
type ErrBadParameter struct {
	Name   string
	Value  string
	Reason string
}

func (e ErrBadParameter) Error() string {
	return fmt.Sprintf("Bad value %q for parameter %q: %s", e.Value, e.Name, e.Reason)
}

// ErrBadInput is returned from Annotate() if the input container
// cannot be parsed.
type ErrBadInput struct {
	Err error
}

func (e ErrBadInput) Error() string {
	return e.Err.Error()
}

func (e ErrBadInput) Unwrap() error {
	return e.Err
}

// ErrAppFailure is returned from Annotate() if the app itself failed.
// It is terminal for the request; nothing retries it.
type ErrAppFailure struct {
	App string
	Err error
}

func (e ErrAppFailure) Error() string {
	if e.App == "" {
		return "App failed: " + e.Err.Error()
	}
	return fmt.Sprintf("App %v failed: %v", e.App, e.Err)
}

func (e ErrAppFailure) Unwrap() error {
	return e.Err
}
