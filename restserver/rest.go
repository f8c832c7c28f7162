// Copyright 2015-2026 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

package restserver

// This file contains a REST skeleton framework.
//
// The bulk of this is dealing with HTTP content type negotiation, and
// providing a standard way to deal with input and output values.
// Responses are always fully encoded into memory before the status
// line goes out, so a serialization failure still produces a clean
// 500 response.

import (
	"errors"
	"fmt"
	"mime"
	"net/http"
	"strconv"
	"strings"

	"github.com/diffeo/go-clams/mmif"
	"github.com/diffeo/go-clams/restdata"
	"github.com/sirupsen/logrus"
)

var typeMap = map[string]string{
	"text/json":            restdata.JSONMediaType,
	restdata.JSONMediaType: restdata.JSONMediaType,
}

// errBadAccept is returned from negotiateResponse() if the Accept:
// header is malformed (and no more specific error applies).
var errBadAccept = errors.New("Invalid Accept: header")

// errNotAcceptable is returned from negotiateResponse() if the Accept:
// header does not mention any media types we can actually return.
type errNotAcceptable struct{}

func (e errNotAcceptable) Error() string {
	return "No acceptable representation for response"
}

func (e errNotAcceptable) HTTPStatus() int {
	return http.StatusNotAcceptable
}

// errMethodNotAllowed is used within the resourceHandler implementation
// to flag an error if a particular HTTP method is not allowed.  This
// corresponds exactly to the 405 Method Not Allowed HTTP status code.
type errMethodNotAllowed struct {
	Method string
}

func (e errMethodNotAllowed) Error() string {
	return fmt.Sprintf("Method %v not allowed", e.Method)
}

func (e errMethodNotAllowed) HTTPStatus() int {
	return http.StatusMethodNotAllowed
}

// serializer is implemented by response objects that know their own
// JSON form, such as *mmif.Mmif and *appmetadata.AppMetadata.
type serializer interface {
	Serialize(pretty bool) ([]byte, error)
}

type resourceHandler struct {
	// API receives log messages.
	API *restAPI

	// Context reads an HTTP request and produces a context object.
	Context func(req *http.Request) (*requestContext, error)

	// Get, if non-nil, returns a representation of the object.
	Get func(*requestContext) (interface{}, error)

	// Put, if non-nil, handles a PUT request with an MMIF body.
	Put func(*requestContext, *mmif.Mmif) (interface{}, error)

	// Post, if non-nil, handles a POST request with an MMIF body.
	Post func(*requestContext, *mmif.Mmif) (interface{}, error)
}

func (h *resourceHandler) ServeHTTP(resp http.ResponseWriter, req *http.Request) {
	var (
		ctx          *requestContext
		in           *mmif.Mmif
		out          interface{}
		err          error
		status       int
		responseType string
		pretty       bool
	)

	// Recover from panics by sending an HTTP error.
	defer func() {
		if recovered := recover(); recovered != nil {
			response := restdata.ErrorResponse{}
			response.FromPanic(recovered)
			h.logger(ctx, req).WithField("stack", response.Stack).Error("panic in handler: " + response.Message)
			body, encErr := mmif.Encode(response, false)
			if encErr != nil {
				body = []byte(`{"error":"panic"}`)
			}
			h.send(resp, req, ctx, http.StatusInternalServerError, restdata.JSONMediaType, body)
		}
	}()

	// Start by trying to come up with a response type, even before
	// trying to parse the input.  This determines what format an
	// error message could be sent back as.
	responseType, err = negotiateResponse(req)
	if err != nil {
		// Gotta pick something
		responseType = restdata.JSONMediaType
		if _, isStatus := err.(restdata.ErrorStatus); !isStatus {
			err = restdata.ErrBadRequest{Err: err}
		}
	}

	// Get bits from URL parameters
	if err == nil {
		ctx, err = h.Context(req)
	}
	if ctx != nil {
		pretty = ctx.Pretty
		resp.Header().Set("X-Request-Id", ctx.RequestID)
	}

	// Read the MMIF body, if it's there
	if err == nil && (req.Method == http.MethodPut || req.Method == http.MethodPost) {
		in, err = restdata.DecodeMmif(req.Header.Get("Content-Type"), req.Body)
	}

	// Actually call the handler method
	if err == nil {
		// We will return this if the method is unexpected or
		// we don't have a handler for it
		err = errMethodNotAllowed{Method: req.Method}
		switch req.Method {
		case http.MethodGet, http.MethodHead:
			if h.Get != nil {
				out, err = h.Get(ctx)
			}
		case http.MethodPut:
			if h.Put != nil {
				out, err = h.Put(ctx, in)
			}
		case http.MethodPost:
			if h.Post != nil {
				out, err = h.Post(ctx, in)
			}
		}
		if _, notAllowed := err.(errMethodNotAllowed); notAllowed {
			resp.Header().Set("Allow", h.allow())
		}
	}

	// Fix up the final result based on what we know.
	if err != nil {
		status = restdata.HTTPStatus(err)
		if status == restdata.StatusClientClosedRequest {
			h.logger(ctx, req).WithError(err).Info("client went away")
		} else if status >= http.StatusInternalServerError {
			h.logger(ctx, req).WithError(err).Error("request failed")
		}
		errResp := restdata.ErrorResponse{}
		errResp.FromError(err)
		out = errResp
	} else {
		status = http.StatusOK
	}

	body, err := encodeResponse(out, pretty)
	if err != nil {
		h.logger(ctx, req).WithError(err).Error("could not encode response")
		status = http.StatusInternalServerError
		errResp := restdata.ErrorResponse{}
		errResp.FromError(err)
		body, err = mmif.Encode(errResp, false)
		if err != nil {
			panic(err)
		}
	}
	if req.Method == http.MethodHead {
		body = nil
	}
	h.send(resp, req, ctx, status, typeMap[responseType], body)
}

// send writes a complete response.  A failure writing the body is
// only logged, since the status line has already gone out.
func (h *resourceHandler) send(resp http.ResponseWriter, req *http.Request, ctx *requestContext, status int, contentType string, body []byte) {
	requestCounter.WithLabelValues(req.Method, strconv.Itoa(status)).Inc()
	if h.API != nil && h.API.RequestLogger != nil {
		h.API.RequestLogger.WithFields(logrus.Fields{
			"method": req.Method,
			"url":    req.URL.String(),
			"status": status,
			"bytes":  len(body),
		}).Debug("response")
	}
	if contentType == "" {
		contentType = restdata.JSONMediaType
	}
	resp.Header().Set("Content-Type", contentType)
	resp.WriteHeader(status)
	if len(body) > 0 {
		if _, err := resp.Write(body); err != nil {
			h.logger(ctx, req).WithError(err).Warn("could not write response")
		}
	}
}

func (h *resourceHandler) logger(ctx *requestContext, req *http.Request) *logrus.Entry {
	logger := logrus.StandardLogger()
	if h.API != nil && h.API.Logger != nil {
		logger = h.API.Logger
	}
	fields := logrus.Fields{
		"method": req.Method,
		"path":   req.URL.Path,
	}
	if ctx != nil {
		fields["request_id"] = ctx.RequestID
	}
	return logger.WithFields(fields)
}

func (h *resourceHandler) allow() string {
	var methods []string
	if h.Get != nil {
		methods = append(methods, http.MethodGet, http.MethodHead)
	}
	if h.Put != nil {
		methods = append(methods, http.MethodPut)
	}
	if h.Post != nil {
		methods = append(methods, http.MethodPost)
	}
	return strings.Join(methods, ", ")
}

// encodeResponse produces the complete JSON body for out.
func encodeResponse(out interface{}, pretty bool) ([]byte, error) {
	if s, ok := out.(serializer); ok {
		return s.Serialize(pretty)
	}
	return mmif.Encode(out, pretty)
}

// negotiateResponse returns a supported MIME type for the response
// body, following the path laid out in RFC 7231 section 5.3.
func negotiateResponse(req *http.Request) (string, error) {
	accept := req.Header.Get("Accept")
	if accept == "" {
		accept = "*/*"
	}
	bestType := ""
	bestQ := 0.0
	mediaRanges := strings.Split(accept, ",")
	for _, mediaRange := range mediaRanges {
		mediaRange = strings.TrimSpace(mediaRange)
		mediaType, params, err := mime.ParseMediaType(mediaRange)
		if err != nil {
			return "", err
		}

		// What is the "q" ("quality") parameter for this type?
		// If it is less than the best known so far, skip it
		q := 1.0
		if qStr, haveQ := params["q"]; haveQ {
			q, err = strconv.ParseFloat(qStr, 64)
			if err != nil {
				return "", err
			}
			if q < 0.0 || q > 1.0 {
				return "", errBadAccept
			}
		}
		if q < bestQ {
			continue
		}

		// This is acceptable if it's listed in the type
		// map; or it's one of a couple of specific wildcards.
		// Also need to handle wildcard precedence.  So:
		if mediaType == "*/*" {
			// Doesn't override anything.
			if q > bestQ {
				bestType = mediaType
				bestQ = q
			}
		} else if mediaType == "text/*" || mediaType == "application/*" {
			// Only overrides "*/*".
			if q > bestQ || bestType == "*/*" {
				bestType = mediaType
				bestQ = q
			}
		} else if _, knownType := typeMap[mediaType]; knownType {
			// Overrides any wildcard.  We want the first one
			// at a given q to win.
			if q > bestQ || bestType == "*/*" || bestType == "text/*" || bestType == "application/*" {
				bestType = mediaType
				bestQ = q
			}
		}
		// Otherwise we don't recognize this type at all, so
		// just drop it.
	}
	// If this failed to win, return an error
	if bestQ == 0.0 {
		return "", errNotAcceptable{}
	}
	switch bestType {
	case "*/*", "application/*":
		return restdata.JSONMediaType, nil
	case "text/*":
		return "text/json", nil
	default:
		return bestType, nil
	}
}
