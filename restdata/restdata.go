// Copyright 2015-2026 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

// Package restdata defines common data structures shared between the
// restserver and restclient packages.
//
// API Usage
//
// A CLAMS app service has a single resource, its root URL.
//
//     GET /
//
// returns the app metadata as JSON (see the appmetadata package).
//
//     PUT /
//     POST /
//
// take a serialized MMIF container as the request body, run the app
// over it, and return the resulting container as the response body.
// The two verbs are interchangeable.  Any query parameter other than
// the reserved ones below is passed to the app as a runtime parameter;
// it must be one the app declares in its metadata.
//
// Reserved query parameters
//
//     pretty
//
// If true-ish (1, t, y, true, on, yes), indent the JSON response.  It
// is never passed to the app.
//
// Encoding Considerations
//
// Request bodies are accepted with a JSON Content-Type: (application/json
// or text/json), with a generic one (text/plain,
// application/octet-stream, application/x-www-form-urlencoded), or with
// none at all; in every case the body must be MMIF JSON.  Any other
// Content-Type: produces 415 Unsupported Media Type.  Responses are
// always application/json.
//
// Errors
//
// Errors are returned as encodings of the ErrorResponse type with a
// failing HTTP status:
//
//     400 Bad Request             ErrBadInput, ErrBadParameter, ErrBadRequest
//     405 Method Not Allowed      any verb other than GET, HEAD, PUT, POST
//     406 Not Acceptable          Accept: names no JSON type
//     415 Unsupported Media Type  ErrUnsupportedParameter, ErrUnsupportedMediaType
//     499 (client went away)      ErrCanceled, never seen by the client
//     500 Internal Server Error   ErrAppFailure, ErrInvalidMetadata, panic
//
// A parameter the app does not declare is a caller error, and is kept
// distinct from failures inside the app.  If Go server code panics,
// this is captured and returned with error code "panic".  No response
// is ever partially written.
package restdata

// JSONMediaType is the MIME type of every response body.
const JSONMediaType = "application/json"

// ReservedParams lists the query parameters the REST layer consumes
// itself; these are never passed to an app.
var ReservedParams = []string{"pretty"}

// ErrorResponse can be a response to any method, generally accompanied
// by a failing HTTP status code.
type ErrorResponse struct {
	// Error is a short description of the failure.  This may be
	// the name of a clams error type, the string "panic", or the
	// string "error" for some other kind of error.
	Error string `json:"error"`

	// Message is a human-readable description of the failure.
	Message string `json:"message"`

	// Value is an extra parameter to the error if applicable.
	Value string `json:"value,omitempty"`

	// Stack holds a formatted backtrace, if the method failed
	// due to a panic.
	Stack string `json:"stack,omitempty"`
}
