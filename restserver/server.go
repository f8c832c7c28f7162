// Copyright 2015-2026 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

package restserver

import (
	"net/http"
	"time"

	"github.com/diffeo/go-clams/clams"
	"github.com/diffeo/go-clams/mmif"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

// Options holds optional settings for PopulateRouterWithOptions.
type Options struct {
	// Logger receives app failures and panics.  If nil, the
	// logrus standard logger is used.
	Logger *logrus.Logger

	// RequestLogger, if non-nil, receives a debug-level entry
	// for every request and response.
	RequestLogger *logrus.Logger
}

// NewRouter creates a new HTTP handler that serves app.  The app is
// exposed at the URL path root.  For more control over this setup,
// create a mux.Router and call PopulateRouter instead.
func NewRouter(app clams.App) http.Handler {
	r := mux.NewRouter()
	PopulateRouter(r, app)
	return r
}

// PopulateRouter adds the app routes to an existing
// github.com/gorilla/mux router object.  This can be used, for
// instance, to place the app under a subpath:
//
//     r := mux.NewRouter()
//     s := r.PathPrefix("/myapp").Subrouter()
//     PopulateRouter(s, myapp.New())
func PopulateRouter(r *mux.Router, app clams.App) {
	PopulateRouterWithOptions(r, app, Options{})
}

// PopulateRouterWithOptions is PopulateRouter with explicit logging
// settings.
func PopulateRouterWithOptions(r *mux.Router, app clams.App, opts Options) {
	api := &restAPI{App: app, Logger: opts.Logger, RequestLogger: opts.RequestLogger}
	if api.Logger == nil {
		api.Logger = logrus.StandardLogger()
	}
	api.PopulateRouter(r)
}

// restAPI holds the persistent state for the REST API.
type restAPI struct {
	App           clams.App
	Logger        *logrus.Logger
	RequestLogger *logrus.Logger
}

// PopulateRouter adds all app URL paths to a router.
func (api *restAPI) PopulateRouter(r *mux.Router) {
	r.Path("/").Name("root").Handler(&resourceHandler{
		API:     api,
		Context: api.Context,
		Get:     api.MetadataGet,
		Put:     api.Annotate,
		Post:    api.Annotate,
	})
}

// MetadataGet returns the app metadata.
func (api *restAPI) MetadataGet(ctx *requestContext) (interface{}, error) {
	return clams.Metadata(api.App)
}

// Annotate runs the app over the request container, with the
// non-reserved query parameters as runtime parameters.
func (api *restAPI) Annotate(ctx *requestContext, in *mmif.Mmif) (interface{}, error) {
	start := time.Now()
	out, err := clams.Annotate(ctx.Ctx, api.App, in, ctx.AppParams)
	outcome := "ok"
	if err != nil {
		outcome = errorCode(err)
	}
	annotateDuration.WithLabelValues(outcome).Observe(time.Since(start).Seconds())
	if err != nil {
		return nil, err
	}
	return out, nil
}
