// Copyright 2026 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

package restserver

import (
	"context"
	"errors"

	"github.com/diffeo/go-clams/appmetadata"
	"github.com/diffeo/go-clams/clams"
	"github.com/diffeo/go-clams/mmif"
)

// testApp adds a view with one TimeFrame, recording the threshold it
// was given.
type testApp struct{}

func (app testApp) AppMetadata() (*appmetadata.AppMetadata, error) {
	return &appmetadata.AppMetadata{
		Name:        "REST test app",
		Description: "Adds one TimeFrame",
		AppVersion:  "1.2.3",
		License:     "MIT",
		URL:         "https://apps.clams.ai/resttest/1.2.3",
	}, nil
}

func (app testApp) InputSpec() []appmetadata.Input {
	return []appmetadata.Input{{AtType: mmif.VideoDocument, Required: true}}
}

func (app testApp) OutputSpec() []appmetadata.Output {
	return []appmetadata.Output{{AtType: mmif.TimeFrame}}
}

func (app testApp) Parameters() []appmetadata.Parameter {
	return []appmetadata.Parameter{
		{
			Name:        "threshold",
			Type:        appmetadata.TypeNumber,
			Description: "minimum score",
			Default:     0.5,
		},
	}
}

func (app testApp) Annotate(ctx context.Context, in *mmif.Mmif, params clams.Params) (*mmif.Mmif, error) {
	md, err := app.AppMetadata()
	if err != nil {
		return nil, err
	}
	view := in.NewView()
	clams.SignView(view, md, params)
	view.NewContain(mmif.TimeFrame, nil)
	ann, err := view.NewAnnotation("tf1", mmif.TimeFrame)
	if err != nil {
		return nil, err
	}
	ann.AddProperty("threshold", params["threshold"])
	return in, nil
}

var errTestFailure = errors.New("model exploded")

type failingApp struct {
	testApp
}

func (app failingApp) Annotate(ctx context.Context, in *mmif.Mmif, params clams.Params) (*mmif.Mmif, error) {
	return nil, errTestFailure
}

type panickingApp struct {
	testApp
}

func (app panickingApp) Annotate(ctx context.Context, in *mmif.Mmif, params clams.Params) (*mmif.Mmif, error) {
	panic("oops")
}

// badMetadataApp reports metadata that does not validate.
type badMetadataApp struct {
	testApp
}

func (app badMetadataApp) AppMetadata() (*appmetadata.AppMetadata, error) {
	return &appmetadata.AppMetadata{Name: "no version"}, nil
}
