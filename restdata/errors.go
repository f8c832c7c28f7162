// Copyright 2015-2026 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

package restdata

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"runtime"

	"github.com/diffeo/go-clams/appmetadata"
	"github.com/diffeo/go-clams/clams"
)

// ErrorStatus describes errors that correspond to specific HTTP status
// codes.
type ErrorStatus interface {
	// HTTPStatus returns the HTTP status code for this error.
	HTTPStatus() int
}

// ErrUnsupportedMediaType is returned from Decode() if the provided
// Content-Type: is unrecognized.  This translates directly into the
// equivalent HTTP 415 error.
type ErrUnsupportedMediaType struct {
	Type string
}

func (e ErrUnsupportedMediaType) Error() string {
	return fmt.Sprintf("Unsupported media type %q", e.Type)
}

// HTTPStatus returns a fixed 415 Unsupported Media Type error code.
func (e ErrUnsupportedMediaType) HTTPStatus() int {
	return http.StatusUnsupportedMediaType
}

// ErrBadRequest is returned as an error when there is an error decoding
// HTTP headers or the request body.
type ErrBadRequest struct {
	Err error
}

func (e ErrBadRequest) Error() string {
	return e.Err.Error()
}

func (e ErrBadRequest) Unwrap() error {
	return e.Err
}

// HTTPStatus returns a fixed 400 Bad Request HTTP status code.
func (e ErrBadRequest) HTTPStatus() int {
	return http.StatusBadRequest
}

// StatusClientClosedRequest is the status recorded when the client
// went away before the response was ready.  Nothing is actually sent.
const StatusClientClosedRequest = 499

// HTTPStatus picks the response status for an error.  A canceled
// request is StatusClientClosedRequest; app failures are 500; errors
// implementing ErrorStatus choose their own; undeclared parameters
// are 415; bad parameter values and unparseable input are 400;
// anything else is 500.
func HTTPStatus(err error) int {
	var (
		failure     clams.ErrAppFailure
		status      ErrorStatus
		unsupported clams.ErrUnsupportedParameter
		badParam    clams.ErrBadParameter
		badInput    clams.ErrBadInput
	)
	switch {
	case errors.Is(err, context.Canceled):
		return StatusClientClosedRequest
	case errors.As(err, &failure):
		return http.StatusInternalServerError
	case errors.As(err, &status):
		return status.HTTPStatus()
	case errors.As(err, &unsupported):
		return http.StatusUnsupportedMediaType
	case errors.As(err, &badParam), errors.As(err, &badInput):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// FromError populates an ErrorResponse to fill in its fields based
// on an error value.  This remaps the well-known clams errors to
// specific e.Error codes, looking through wrapped errors; the checks
// run in the same order as HTTPStatus().
func (e *ErrorResponse) FromError(err error) {
	var (
		failure     clams.ErrAppFailure
		unsupported clams.ErrUnsupportedParameter
		badParam    clams.ErrBadParameter
		badInput    clams.ErrBadInput
		invalid     appmetadata.ErrInvalid
		mediaType   ErrUnsupportedMediaType
		badRequest  ErrBadRequest
	)
	e.Message = err.Error()
	e.Error = "error"
	switch {
	case errors.Is(err, context.Canceled):
		e.Error = "ErrCanceled"
	case errors.As(err, &failure):
		e.Error = "ErrAppFailure"
		e.Value = failure.App
	case errors.As(err, &unsupported):
		e.Error = "ErrUnsupportedParameter"
		e.Value = unsupported.Name
	case errors.As(err, &badParam):
		e.Error = "ErrBadParameter"
		e.Value = badParam.Name
	case errors.As(err, &badInput):
		e.Error = "ErrBadInput"
	case errors.As(err, &invalid):
		e.Error = "ErrInvalidMetadata"
	case errors.As(err, &mediaType):
		e.Error = "ErrUnsupportedMediaType"
		e.Value = mediaType.Type
	case errors.As(err, &badRequest):
		e.Error = "ErrBadRequest"
	}
}

// ToError converts e back to an error of the same kind, if that is
// possible.  If not, returns a plain error with e.Message text.
func (e *ErrorResponse) ToError() error {
	switch e.Error {
	case "ErrUnsupportedParameter":
		return clams.ErrUnsupportedParameter{Name: e.Value}
	case "ErrBadParameter":
		return clams.ErrBadParameter{Name: e.Value, Reason: e.Message}
	case "ErrBadInput":
		return clams.ErrBadInput{Err: errors.New(e.Message)}
	case "ErrAppFailure":
		return clams.ErrAppFailure{App: e.Value, Err: errors.New(e.Message)}
	case "ErrInvalidMetadata":
		return appmetadata.ErrInvalid{Err: errors.New(e.Message)}
	case "ErrUnsupportedMediaType":
		return ErrUnsupportedMediaType{Type: e.Value}
	case "ErrBadRequest":
		return ErrBadRequest{Err: errors.New(e.Message)}
	case "ErrCanceled":
		return context.Canceled
	default:
		return errors.New(e.Message)
	}
}

// FromPanic populates an error response based on a panic.  Typical use
// is:
//
//     defer func() {
//         if obj := recover(); obj != nil {
//             resp := restdata.ErrorResponse{}
//             resp.FromPanic(obj)
//             // write resp out as makes sense
//         }
//    }
func (e *ErrorResponse) FromPanic(obj interface{}) {
	e.Error = "panic"
	if recoveredError, isError := obj.(error); isError {
		e.Message = recoveredError.Error()
	} else {
		e.Message = fmt.Sprintf("%+v", obj)
	}
	var stack [4096]byte
	len := runtime.Stack(stack[:], false)
	e.Stack = string(stack[:len])
}
