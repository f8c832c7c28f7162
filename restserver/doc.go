// Copyright 2015-2026 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

// Package restserver publishes a clams.App as a REST service.  The
// restclient package is a matching client.
//
// The complete REST API is defined in the restdata package.
//
// HTTP Considerations
//
// The service has one resource, at the root of the router it is
// installed in.  GET (and HEAD) return the app metadata; PUT and POST
// annotate the MMIF container in the request body.  All responses are
// JSON; clients may use the standard HTTP Accept: header, but only
// JSON media types (or wildcards) are acceptable.
//
// The app instance is supplied once, when the router is built, and is
// shared by every request.  The adapter keeps no per-request state
// between requests and takes no locks around the app; each request
// parses its own copy of the container.  See the clams package for the
// app's side of this contract.
//
// This interface does not support HTTP caching or authentication
// headers, and imposes no timeouts of its own beyond the http.Server
// settings Serve() applies.
package restserver
