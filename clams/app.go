// Copyright 2026 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

// Package clams defines the contract every CLAMS annotation app
// implements, and the generic operations built on top of it.
//
// An app declares what it consumes (InputSpec), what it produces
// (OutputSpec), which runtime parameters it understands (Parameters),
// and describes itself (AppMetadata).  Its single transformation,
// Annotate, receives a parsed MMIF container and returns it with one
// new view appended.
//
// Callers should not invoke App.Annotate directly.  The package-level
// Annotate function parses serialized input, checks the supplied
// parameters against the declared set, applies defaults, and only then
// calls the app.  A parameter the app did not declare produces
// ErrUnsupportedParameter, which is a caller error and never an app
// failure.
//
// Concurrency
//
// A single App value is shared by every request served for it.  The
// app is responsible for making Annotate safe for concurrent use, for
// instance by treating any loaded model as read-only or by taking its
// own lock; nothing in this package or the REST adapter serializes
// calls.
package clams

import (
	"context"

	"github.com/diffeo/go-clams/appmetadata"
	"github.com/diffeo/go-clams/mmif"
)

// App is the interface every annotation app implements.
type App interface {
	// AppMetadata describes the app.  Implementations may compute
	// this once and return the same value afterwards.  If the
	// returned metadata leaves input, output, or parameters empty,
	// Metadata() fills them in from the other methods.
	AppMetadata() (*appmetadata.AppMetadata, error)

	// InputSpec returns the types the app consumes, in order.  It
	// must be deterministic and have no side effects.
	InputSpec() []appmetadata.Input

	// OutputSpec returns the types the app produces, in order.  It
	// must be deterministic and have no side effects.
	OutputSpec() []appmetadata.Output

	// Parameters returns the complete set of runtime parameters
	// Annotate accepts.  Any other parameter is rejected before
	// Annotate is called.
	Parameters() []appmetadata.Parameter

	// Annotate adds a new view to in and returns the container.
	// Existing views must not be modified.  params contains only
	// declared parameters, converted to their declared types, with
	// defaults filled in.
	Annotate(ctx context.Context, in *mmif.Mmif, params Params) (*mmif.Mmif, error)
}
