// Copyright 2015-2026 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

package restserver

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/diffeo/go-clams/restdata"
	"github.com/satori/go.uuid"
)

// requestContext holds all of the information and objects that can be
// extracted from the request URL.
type requestContext struct {
	// Ctx is the request's context, canceled if the client goes
	// away.
	Ctx context.Context

	// RequestID identifies the request in logs and in the
	// X-Request-Id response header.
	RequestID string

	// QueryParams holds every query parameter.
	QueryParams url.Values

	// AppParams holds the query parameters that are passed to the
	// app, that is, all but the reserved ones.
	AppParams url.Values

	// Pretty is set if the response should be indented.
	Pretty bool
}

func (api *restAPI) Context(req *http.Request) (*requestContext, error) {
	ctx := &requestContext{
		Ctx:         req.Context(),
		RequestID:   req.Header.Get("X-Request-Id"),
		QueryParams: req.URL.Query(),
		AppParams:   make(url.Values),
	}
	if ctx.RequestID == "" {
		ctx.RequestID = uuid.NewV4().String()
	}
	ctx.Pretty = ctx.BoolParam("pretty", false)

	reserved := make(map[string]bool, len(restdata.ReservedParams))
	for _, name := range restdata.ReservedParams {
		reserved[name] = true
	}
	for name, values := range ctx.QueryParams {
		if !reserved[name] {
			ctx.AppParams[name] = values
		}
	}
	return ctx, nil
}

// BoolParam looks at ctx.QueryParams for a parameter named name.  If
// it has a normally-truthy value (1, on, false, no, ...) then return
// that value.  Otherwise (empty string, foo, ...) return def.
func (ctx *requestContext) BoolParam(name string, def bool) bool {
	switch strings.ToLower(ctx.QueryParams.Get(name)) {
	case "0", "f", "n", "false", "off", "no":
		return false
	case "1", "t", "y", "true", "on", "yes":
		return true
	default:
		return def
	}
}
