// Copyright 2026 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

package main

import (
	"context"
	"image"
	"image/png"
	"io/ioutil"
	"net/url"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/diffeo/go-clams/clams"
	"github.com/diffeo/go-clams/clams/clamstest"
	"github.com/diffeo/go-clams/config"
	"github.com/diffeo/go-clams/mmif"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/urfave/cli"
)

// Suite runs the generic app tests against the segmenter.
type Suite struct {
	clamstest.Suite
}

func (s *Suite) SetupSuite() {
	s.Suite.SetupSuite()
	logger, _ := logtest.NewNullLogger()
	app := newSegmenter(logger)
	app.Clock = s.Clock
	s.App = app
}

func TestSegmenter(t *testing.T) {
	suite.Run(t, &Suite{})
}

func TestSegments(t *testing.T) {
	dir := t.TempDir()
	imgPath := filepath.Join(dir, "frame.png")
	f, err := os.Create(imgPath)
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, image.NewGray(image.Rect(0, 0, 64, 48))))
	require.NoError(t, f.Close())

	in := mmif.New()
	require.NoError(t, in.AddDocument(mmif.NewDocument(mmif.VideoDocument, "v1", "/dummy/video.mp4")))
	require.NoError(t, in.AddDocument(mmif.NewDocument(mmif.AudioDocument, "a1", "/dummy/audio.wav")))
	require.NoError(t, in.AddDocument(mmif.NewDocument(mmif.ImageDocument, "i1", "file://"+imgPath)))
	require.NoError(t, in.AddDocument(mmif.NewDocument(mmif.ImageDocument, "i2", "/dummy/missing.png")))

	logger, hook := logtest.NewNullLogger()
	app := newSegmenter(logger)
	out, err := clams.Annotate(context.Background(), app, in, url.Values{
		"frame_length": {"0.5"},
		"count":        {"2"},
		"label":        {"music"},
	})
	require.NoError(t, err)
	require.Len(t, out.Views, 1)
	view := out.Views[0]
	assert.Equal(t, app.metadata.URL, view.Metadata.App)
	assert.Equal(t, "music", view.Metadata.Parameters["label"])

	frames := view.AnnotationsOfType(mmif.TimeFrame)
	require.Len(t, frames, 4)
	assert.Equal(t, "v1", frames[0].Properties["document"])
	assert.Equal(t, int64(500), frames[1].Properties["start"])
	assert.Equal(t, int64(1000), frames[1].Properties["end"])
	assert.Equal(t, "a1", frames[3].Properties["document"])
	assert.Equal(t, "music", frames[3].Properties["frameType"])

	boxes := view.AnnotationsOfType(mmif.BoundingBox)
	require.Len(t, boxes, 1)
	assert.Equal(t, "i1", boxes[0].Properties["document"])
	assert.Equal(t, 64, boxes[0].Properties["width"])
	assert.Equal(t, 48, boxes[0].Properties["height"])

	entry := hook.LastEntry()
	if assert.NotNil(t, entry) {
		assert.Equal(t, "i2", entry.Data["document"])
	}
}

func TestSegmentsBadParameters(t *testing.T) {
	app := newSegmenter(nil)
	_, err := clams.Annotate(context.Background(), app, clamstest.DefaultInput(), url.Values{"label": {"noise"}})
	assert.IsType(t, clams.ErrBadParameter{}, err)

	_, err = clams.Annotate(context.Background(), app, clamstest.DefaultInput(), url.Values{"frame_length": {"0"}})
	assert.IsType(t, clams.ErrAppFailure{}, err)
}

// runConfig runs the command line with args and returns the resulting
// configuration without serving anything.
func runConfig(t *testing.T, args ...string) (config.Config, error) {
	app := newApp()
	var cfg config.Config
	app.Action = func(c *cli.Context) error {
		var err error
		cfg, err = loadConfig(c)
		return err
	}
	err := app.Run(append([]string{"demoapp"}, args...))
	return cfg, err
}

func TestLoadConfigFlags(t *testing.T) {
	cfg, err := runConfig(t)
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)

	cfg, err = runConfig(t, "--bind", ":6000", "--metrics=false", "--log-level", "debug", "--shutdown-timeout", "2s")
	require.NoError(t, err)
	assert.Equal(t, ":6000", cfg.Bind)
	assert.False(t, cfg.Metrics)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, config.Duration(2*time.Second), cfg.ShutdownTimeout)

	_, err = runConfig(t, "--log-format", "xml")
	assert.Error(t, err)
}

func TestLoadConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "demoapp.yaml")
	require.NoError(t, ioutil.WriteFile(path, []byte("bind: \":7000\"\nlog_requests: true\n"), 0644))

	cfg, err := runConfig(t, "--config", path, "--log-requests=false")
	require.NoError(t, err)
	assert.Equal(t, ":7000", cfg.Bind)
	assert.False(t, cfg.LogRequests)
}
