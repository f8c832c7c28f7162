// Copyright 2026 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

package clams

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/diffeo/go-clams/appmetadata"
	"github.com/diffeo/go-clams/mmif"
)

// ErrNoMetadata is returned from Metadata() if the app returns nil
// metadata without an error.
var ErrNoMetadata = errors.New("App did not provide metadata")

// errNoOutput is wrapped in ErrAppFailure if an app returns neither a
// container nor an error.
var errNoOutput = errors.New("Annotate returned no container")

// Metadata returns the app's metadata, with empty input, output, and
// parameter lists filled in from InputSpec(), OutputSpec(), and
// Parameters().  The result is validated against the AppMetadata
// schema.  The app's own value is not modified.
func Metadata(app App) (*appmetadata.AppMetadata, error) {
	md, err := app.AppMetadata()
	if err != nil {
		return nil, err
	}
	if md == nil {
		return nil, ErrNoMetadata
	}
	filled := *md
	if len(filled.Input) == 0 {
		filled.Input = app.InputSpec()
	}
	if len(filled.Output) == 0 {
		filled.Output = app.OutputSpec()
	}
	if len(filled.Parameters) == 0 {
		filled.Parameters = app.Parameters()
	}
	filled.Normalize()
	if err = filled.Validate(); err != nil {
		return nil, err
	}
	return &filled, nil
}

// SerializeMetadata returns the JSON form of Metadata(app).
func SerializeMetadata(app App, pretty bool) ([]byte, error) {
	md, err := Metadata(app)
	if err != nil {
		return nil, err
	}
	return md.Serialize(pretty)
}

// Annotate runs app over input.  input may be a *mmif.Mmif, or a
// serialized container as a string, []byte, or io.Reader; serialized
// input is parsed first.  raw holds caller-supplied parameters, which
// are checked against app.Parameters() before the app runs.
//
// Errors are ErrUnsupportedParameter or ErrBadParameter for bad
// parameters, ErrBadInput for unparseable input, the context's error
// if ctx is already done, and ErrAppFailure for anything the app
// itself returns.
func Annotate(ctx context.Context, app App, input interface{}, raw url.Values) (*mmif.Mmif, error) {
	params, err := ParseParameters(app.Parameters(), raw)
	if err != nil {
		return nil, err
	}
	in, err := toMmif(input)
	if err != nil {
		return nil, err
	}
	if err = ctx.Err(); err != nil {
		return nil, err
	}
	out, err := app.Annotate(ctx, in, params)
	if err != nil {
		var failure ErrAppFailure
		if errors.As(err, &failure) {
			return nil, err
		}
		return nil, ErrAppFailure{App: fmt.Sprintf("%T", app), Err: err}
	}
	if out == nil {
		return nil, ErrAppFailure{App: fmt.Sprintf("%T", app), Err: errNoOutput}
	}
	return out, nil
}

func toMmif(input interface{}) (*mmif.Mmif, error) {
	var (
		m   *mmif.Mmif
		err error
	)
	switch in := input.(type) {
	case *mmif.Mmif:
		if in == nil {
			return nil, ErrBadInput{Err: errors.New("nil container")}
		}
		return in, nil
	case string:
		m, err = mmif.Parse(strings.NewReader(in))
	case []byte:
		m, err = mmif.Parse(bytes.NewReader(in))
	case io.Reader:
		m, err = mmif.Parse(in)
	default:
		err = fmt.Errorf("cannot annotate a %T", input)
	}
	if err != nil {
		return nil, ErrBadInput{Err: err}
	}
	return m, nil
}
