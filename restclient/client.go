// Copyright 2015-2026 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

// Package restclient provides a Go client for a CLAMS app served over
// HTTP, such as one published with the restserver package.
//
// Errors the server reports are converted back into the matching
// clams or restdata error values where possible, so
//
//     _, err := client.Annotate(ctx, m, url.Values{"random": {"1"}})
//     var unsupported clams.ErrUnsupportedParameter
//     errors.As(err, &unsupported) // true
//
// works the same as calling clams.Annotate locally.
package restclient

import (
	"bytes"
	"context"
	"net/http"
	"net/url"

	"github.com/diffeo/go-clams/appmetadata"
	"github.com/diffeo/go-clams/mmif"
	"github.com/diffeo/go-clams/restdata"
)

// rootTemplate is the URI template for the app resource.
const rootTemplate = "{?pretty}"

// Client talks to one app service.
type Client struct {
	resource
}

// New creates a client for the app service at baseURL.
func New(baseURL string) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, err
	}
	return &Client{resource{URL: u}}, nil
}

// NewWithClient is New with an alternate HTTP client.
func NewWithClient(baseURL string, client *http.Client) (*Client, error) {
	c, err := New(baseURL)
	if err != nil {
		return nil, err
	}
	c.Client = client
	return c, nil
}

// annotateURL builds the request URL for an annotate call.
func (c *Client) annotateURL(params url.Values, pretty bool) (*url.URL, error) {
	vars := map[string]interface{}{}
	if pretty {
		vars["pretty"] = "true"
	}
	u, err := c.Template(rootTemplate, vars)
	if err != nil {
		return nil, err
	}
	if len(params) > 0 {
		query := u.Query()
		for name, values := range params {
			query[name] = append(query[name], values...)
		}
		u.RawQuery = query.Encode()
	}
	return u, nil
}

// MetadataJSON fetches the app's serialized metadata.
func (c *Client) MetadataJSON(ctx context.Context, pretty bool) ([]byte, error) {
	u, err := c.annotateURL(nil, pretty)
	if err != nil {
		return nil, err
	}
	return c.Do(ctx, http.MethodGet, u, nil)
}

// Metadata fetches and decodes the app's metadata.
func (c *Client) Metadata(ctx context.Context) (*appmetadata.AppMetadata, error) {
	body, err := c.MetadataJSON(ctx, false)
	if err != nil {
		return nil, err
	}
	md := &appmetadata.AppMetadata{}
	err = restdata.Decode(restdata.JSONMediaType, bytes.NewReader(body), md)
	if err != nil {
		return nil, err
	}
	return md, nil
}

// AnnotateJSON sends a serialized container to the app and returns
// the serialized result.  params must only name parameters the app
// declares.
func (c *Client) AnnotateJSON(ctx context.Context, in []byte, params url.Values, pretty bool) ([]byte, error) {
	u, err := c.annotateURL(params, pretty)
	if err != nil {
		return nil, err
	}
	return c.Do(ctx, http.MethodPut, u, in)
}

// Annotate sends in to the app and returns the parsed result.  in
// itself is not modified.
func (c *Client) Annotate(ctx context.Context, in *mmif.Mmif, params url.Values) (*mmif.Mmif, error) {
	body, err := in.Serialize(false)
	if err != nil {
		return nil, err
	}
	out, err := c.AnnotateJSON(ctx, body, params, false)
	if err != nil {
		return nil, err
	}
	return mmif.FromBytes(out)
}
