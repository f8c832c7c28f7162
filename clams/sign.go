// Copyright 2026 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

package clams

import (
	"time"

	"github.com/benbjohnson/clock"
	"github.com/diffeo/go-clams/appmetadata"
	"github.com/diffeo/go-clams/mmif"
)

// SignView records in view's metadata which app produced it, when, and
// with what parameters.  Apps call this on the view they create in
// Annotate.
func SignView(view *mmif.View, md *appmetadata.AppMetadata, params Params) {
	SignViewWithClock(view, md, params, clock.New())
}

// SignViewWithClock is SignView with an alternate time source.  Only
// test code should need this.
func SignViewWithClock(view *mmif.View, md *appmetadata.AppMetadata, params Params, clk clock.Clock) {
	if md != nil {
		view.Metadata.App = md.URL
	}
	view.Metadata.Timestamp = clk.Now().UTC().Format(time.RFC3339Nano)
	view.Metadata.Parameters = params.Strings()
}
