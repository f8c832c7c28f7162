// Copyright 2026 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

// Package clamstest provides generic conformance tests for the
// clams.App interface.  A typical app test module wraps Suite to
// supply its app:
//
//     package myapp
//
//     import (
//             "testing"
//             "github.com/diffeo/go-clams/clams/clamstest"
//             "github.com/stretchr/testify/suite"
//     )
//
//     // Suite is the generic app test suite.
//     type Suite struct{
//             clamstest.Suite
//     }
//
//     // SetupSuite does global setup for the test suite.
//     func (s *Suite) SetupSuite() {
//             s.Suite.SetupSuite()
//             s.App = New()
//     }
//
//     // TestApp runs the generic app tests.
//     func TestApp(t *testing.T) {
//             suite.Run(t, &Suite{})
//     }
package clamstest

import (
	"context"
	"net/url"

	"github.com/benbjohnson/clock"
	"github.com/diffeo/go-clams/appmetadata"
	"github.com/diffeo/go-clams/clams"
	"github.com/diffeo/go-clams/mmif"
	"github.com/stretchr/testify/suite"
)

// undeclaredParameter is a parameter name no app should declare.
const undeclaredParameter = "clamstest_undeclared"

// Suite is the generic App test suite.
type Suite struct {
	suite.Suite

	// Clock contains an alternate time source apps may use for
	// signing views.  It is pre-initialized to a mock clock.
	Clock *clock.Mock

	// App is the app under test.  It is set by importing packages.
	App clams.App

	// Input, if set, builds the container each annotate test
	// starts from.  Otherwise DefaultInput() is used.
	Input func() *mmif.Mmif
}

// SetupSuite does one-time initialization for the test suite.
func (s *Suite) SetupSuite() {
	s.Clock = clock.NewMock()
}

// DefaultInput returns a container with one video, one image, and one
// inline text document, and no views.  The media locations do not
// exist.
func DefaultInput() *mmif.Mmif {
	m := mmif.New()
	_ = m.AddDocument(mmif.NewDocument(mmif.VideoDocument, "v1", "/dummy/dir/dummy.file.mp4"))
	_ = m.AddDocument(mmif.NewDocument(mmif.ImageDocument, "i1", "/dummy/dir/dummy.file.png"))
	text := mmif.NewDocument(mmif.TextDocument, "t1", "")
	text.SetText("this is a temp file.", "en")
	_ = m.AddDocument(text)
	return m
}

func (s *Suite) input() *mmif.Mmif {
	if s.Input != nil {
		return s.Input()
	}
	return DefaultInput()
}

// serializedInput returns the input container in serialized form.
func (s *Suite) serializedInput() []byte {
	b, err := s.input().Serialize(false)
	s.Require().NoError(err)
	return b
}

// TestMetadataValidates checks that the app's metadata passes the
// AppMetadata schema, directly and after serialization.
func (s *Suite) TestMetadataValidates() {
	md, err := clams.Metadata(s.App)
	s.Require().NoError(err)
	s.NotEmpty(md.Name)

	for _, pretty := range []bool{false, true} {
		b, err := clams.SerializeMetadata(s.App, pretty)
		if s.NoError(err) {
			s.NoError(appmetadata.ValidateJSON(b))
		}
	}
}

// TestMetadataMatchesSpecs checks that declared outputs show up in
// the metadata.
func (s *Suite) TestMetadataMatchesSpecs() {
	md, err := clams.Metadata(s.App)
	s.Require().NoError(err)
	for _, out := range s.App.OutputSpec() {
		found := false
		for _, declared := range md.Output {
			if mmif.SameType(declared.AtType, out.AtType) {
				found = true
			}
		}
		s.True(found, "output %v missing from metadata", out.AtType)
	}
}

// TestAnnotateAddsOneView checks that annotating adds exactly one
// view, and that it declares every output type.
func (s *Suite) TestAnnotateAddsOneView() {
	in := s.serializedInput()
	before, err := mmif.FromBytes(in)
	s.Require().NoError(err)

	out, err := clams.Annotate(context.Background(), s.App, in, nil)
	s.Require().NoError(err)
	s.Require().Len(out.Views, len(before.Views)+1)

	view := out.Views[len(out.Views)-1]
	for _, spec := range s.App.OutputSpec() {
		s.True(view.Contains(spec.AtType), "new view does not contain %v", spec.AtType)
	}
	s.NoError(out.Validate())
}

// TestAnnotateKeepsExistingViews checks that views already in the
// input come back unchanged.
func (s *Suite) TestAnnotateKeepsExistingViews() {
	in := s.input()
	prior := in.NewView()
	prior.NewContain(mmif.TimePoint, mmif.Properties{"producer": "clamstest"})
	tp, err := prior.NewAnnotation("tp1", mmif.TimePoint)
	s.Require().NoError(err)
	tp.AddProperty("timePoint", 42)
	b, err := in.Serialize(false)
	s.Require().NoError(err)

	out, err := clams.Annotate(context.Background(), s.App, b, nil)
	s.Require().NoError(err)
	s.Require().Len(out.Views, 2)
	kept := out.View(prior.ID)
	s.Require().NotNil(kept)
	s.Equal(prior.Metadata.Contains, kept.Metadata.Contains)
	s.Require().Len(kept.Annotations, 1)
	s.Equal(int64(42), kept.Annotations[0].Properties["timePoint"])
}

// TestAnnotateRoundTrip checks that annotation output serializes into
// a container that parses again.
func (s *Suite) TestAnnotateRoundTrip() {
	out, err := clams.Annotate(context.Background(), s.App, string(s.serializedInput()), nil)
	s.Require().NoError(err)
	for _, pretty := range []bool{false, true} {
		b, err := out.Serialize(pretty)
		s.Require().NoError(err)
		again, err := mmif.FromBytes(b)
		if s.NoError(err) {
			s.Len(again.Views, len(out.Views))
		}
	}
}

// TestUnsupportedParameter checks that a parameter the app does not
// declare is rejected as a caller error.
func (s *Suite) TestUnsupportedParameter() {
	params := url.Values{undeclaredParameter: []string{"random"}}
	_, err := clams.Annotate(context.Background(), s.App, s.serializedInput(), params)
	s.Equal(clams.ErrUnsupportedParameter{Name: undeclaredParameter}, err)
}

// TestBadInput checks that unparseable input is rejected before the
// app runs.
func (s *Suite) TestBadInput() {
	_, err := clams.Annotate(context.Background(), s.App, "{not mmif", nil)
	s.IsType(clams.ErrBadInput{}, err)
}
