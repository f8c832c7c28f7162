// Copyright 2016-2026 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

package main

import (
	"context"
	"fmt"

	"github.com/benbjohnson/clock"
	"github.com/diffeo/go-clams/appmetadata"
	"github.com/diffeo/go-clams/clams"
	"github.com/diffeo/go-clams/mmif"
	"github.com/diffeo/go-clams/openers"
	"github.com/sirupsen/logrus"
)

// Labels a segment may carry.
var segmentLabels = []interface{}{"speech", "music", "silence"}

// segmenter splits every time-based document into fixed-length
// TimeFrames, and marks the full extent of every image it can read
// with a BoundingBox.  It keeps no per-request state.
type segmenter struct {
	metadata *appmetadata.AppMetadata
	Clock    clock.Clock
	Logger   *logrus.Logger
}

// settings holds the decoded runtime parameters.
type settings struct {
	FrameLength float64 `mapstructure:"frame_length"`
	Count       int     `mapstructure:"count"`
	Label       string  `mapstructure:"label"`
}

func newSegmenter(logger *logrus.Logger) *segmenter {
	app := &segmenter{Clock: clock.New(), Logger: logger}
	app.metadata = &appmetadata.AppMetadata{
		Name:        "Fixed Segmenter",
		Description: "Splits audio and video into fixed-length segments and measures images",
		AppVersion:  "1.0.0",
		MMIFVersion: mmif.SpecVersion,
		License:     "MIT",
		URL:         "https://apps.clams.ai/fixed-segmenter/1.0.0",
	}
	return app
}

func (app *segmenter) AppMetadata() (*appmetadata.AppMetadata, error) {
	return app.metadata, nil
}

func (app *segmenter) InputSpec() []appmetadata.Input {
	return []appmetadata.Input{
		{AtType: mmif.VideoDocument},
		{AtType: mmif.AudioDocument},
		{AtType: mmif.ImageDocument},
	}
}

func (app *segmenter) OutputSpec() []appmetadata.Output {
	return []appmetadata.Output{
		{AtType: mmif.TimeFrame, Properties: mmif.Properties{"timeUnit": "milliseconds"}},
		{AtType: mmif.BoundingBox},
	}
}

func (app *segmenter) Parameters() []appmetadata.Parameter {
	return []appmetadata.Parameter{
		{
			Name:        "frame_length",
			Type:        appmetadata.TypeNumber,
			Description: "segment length in seconds",
			Default:     1.0,
		},
		{
			Name:        "count",
			Type:        appmetadata.TypeInteger,
			Description: "number of segments per document",
			Default:     3,
		},
		{
			Name:        "label",
			Type:        appmetadata.TypeString,
			Description: "frame type recorded on every segment",
			Choices:     segmentLabels,
			Default:     "speech",
		},
	}
}

func (app *segmenter) Annotate(ctx context.Context, in *mmif.Mmif, params clams.Params) (*mmif.Mmif, error) {
	var s settings
	if err := params.Decode(&s); err != nil {
		return nil, err
	}
	if s.FrameLength <= 0 {
		return nil, clams.ErrBadParameter{Name: "frame_length", Value: fmt.Sprint(s.FrameLength), Reason: "must be positive"}
	}
	if s.Count < 0 {
		return nil, clams.ErrBadParameter{Name: "count", Value: fmt.Sprint(s.Count), Reason: "must not be negative"}
	}

	view := in.NewView()
	clams.SignViewWithClock(view, app.metadata, params, app.Clock)
	for _, out := range app.OutputSpec() {
		view.NewContain(out.AtType, out.Properties)
	}

	n := 0
	frameMillis := int64(s.FrameLength * 1000)
	for _, docType := range []string{mmif.VideoDocument, mmif.AudioDocument} {
		for _, doc := range in.DocumentsOfType(docType) {
			for i := 0; i < s.Count; i++ {
				n++
				ann, err := view.NewAnnotation(fmt.Sprintf("tf_%d", n), mmif.TimeFrame)
				if err != nil {
					return nil, err
				}
				ann.AddProperty("document", doc.ID())
				ann.AddProperty("start", int64(i)*frameMillis)
				ann.AddProperty("end", int64(i+1)*frameMillis)
				ann.AddProperty("frameType", s.Label)
			}
		}
	}

	n = 0
	for _, doc := range in.DocumentsOfType(mmif.ImageDocument) {
		var width, height int
		err := clams.OpenDocumentLocation[*openers.ImageHandle](ctx, doc, openers.Image, func(img *openers.ImageHandle) error {
			width, height = img.Size()
			return nil
		})
		if err != nil {
			app.logger().WithFields(logrus.Fields{
				"document": doc.ID(),
				"location": doc.Location(),
			}).WithError(err).Warn("skipping unreadable image")
			continue
		}
		n++
		ann, err := view.NewAnnotation(fmt.Sprintf("bb_%d", n), mmif.BoundingBox)
		if err != nil {
			return nil, err
		}
		ann.AddProperty("document", doc.ID())
		ann.AddProperty("coordinates", [][]int{{0, 0}, {width, 0}, {0, height}, {width, height}})
		ann.AddProperty("width", width)
		ann.AddProperty("height", height)
	}
	return in, nil
}

func (app *segmenter) logger() *logrus.Logger {
	if app.Logger == nil {
		return logrus.StandardLogger()
	}
	return app.Logger
}
