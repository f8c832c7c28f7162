// Copyright 2026 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

package mmif

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleMmif(t *testing.T) *Mmif {
	m := New()
	require.NoError(t, m.AddDocument(NewDocument(VideoDocument, "v1", "/dummy/dir/dummy.file.mp4")))
	require.NoError(t, m.AddDocument(NewDocument(ImageDocument, "i1", "/dummy/dir/logo.png")))
	text := NewDocument(TextDocument, "t1", "")
	text.SetText("this is a temp file.", "en")
	require.NoError(t, m.AddDocument(text))
	return m
}

// TestEmptyViewsRoundTrip checks that a container with no views
// comes back with no views.
func TestEmptyViewsRoundTrip(t *testing.T) {
	m := sampleMmif(t)
	b, err := m.Serialize(false)
	require.NoError(t, err)

	parsed, err := FromBytes(b)
	require.NoError(t, err)
	assert.Len(t, parsed.Views, 0)
	assert.Len(t, parsed.Documents, 3)
	assert.Equal(t, "this is a temp file.", parsed.Document("t1").Text())
	assert.Equal(t, VideoDocument, parsed.Document("v1").Type)
	assert.Equal(t, "/dummy/dir/dummy.file.mp4", parsed.Document("v1").Location())
}

func TestSerializeEmitsArrays(t *testing.T) {
	b, err := New().Serialize(false)
	require.NoError(t, err)
	assert.Contains(t, string(b), `"documents":[]`)
	assert.Contains(t, string(b), `"views":[]`)
}

func TestPrettyRoundTrip(t *testing.T) {
	m := sampleMmif(t)
	v := m.NewView()
	v.NewContain(TimeFrame, Properties{"producer": "dummy-producer"})
	a, err := v.NewAnnotation("a1", TimeFrame)
	require.NoError(t, err)
	a.AddProperty("f1", "hello_world")
	a.AddProperty("start", 10)

	pretty, err := m.Serialize(true)
	require.NoError(t, err)
	assert.Contains(t, string(pretty), "\n  ")

	parsed, err := FromBytes(pretty)
	require.NoError(t, err)
	require.Len(t, parsed.Views, 1)
	pv := parsed.View("v_0")
	require.NotNil(t, pv)
	assert.True(t, pv.Contains(TimeFrame))
	assert.Equal(t, "dummy-producer", pv.Metadata.Contains[TimeFrame].GetString("producer"))
	pa := pv.Annotation("a1")
	require.NotNil(t, pa)
	assert.Equal(t, "hello_world", pa.Properties.GetString("f1"))
	assert.Equal(t, int64(10), pa.Properties["start"])
}

func TestDuplicateDocument(t *testing.T) {
	m := sampleMmif(t)
	err := m.AddDocument(NewDocument(TextDocument, "t1", "/tmp/x"))
	assert.Equal(t, ErrDuplicateID{Kind: "document", ID: "t1"}, err)
	assert.Len(t, m.Documents, 3)
}

func TestNewViewIDs(t *testing.T) {
	m := New()
	v0 := m.NewView()
	v1 := m.NewView()
	assert.Equal(t, "v_0", v0.ID)
	assert.Equal(t, "v_1", v1.ID)

	// Simulate a gap left by some other producer
	m.Views = []*View{v1}
	v2 := m.NewView()
	assert.Equal(t, "v_2", v2.ID)
	assert.Len(t, m.Views, 2)
}

func TestNewAnnotationRequiresContains(t *testing.T) {
	v := New().NewView()
	_, err := v.NewAnnotation("a1", TimeFrame)
	assert.Equal(t, ErrUndeclaredType{View: "v_0", Type: TimeFrame}, err)

	v.NewContain(TimeFrame, nil)
	_, err = v.NewAnnotation("a1", TimeFrame)
	assert.NoError(t, err)
	_, err = v.NewAnnotation("a1", TimeFrame)
	assert.Equal(t, ErrDuplicateID{Kind: "annotation", ID: "a1"}, err)

	// A different version of the same type is accepted
	_, err = v.NewAnnotation("a2", strings.Replace(TimeFrame, "/v5", "/v4", 1))
	assert.NoError(t, err)
}

func TestAnnotationIDImmutable(t *testing.T) {
	v := New().NewView()
	v.NewContain(TimePoint, nil)
	a, err := v.NewAnnotation("tp1", TimePoint)
	require.NoError(t, err)
	a.AddProperty("id", "other")
	assert.Equal(t, "tp1", a.ID())
}

func TestParseRejectsUndeclaredAnnotation(t *testing.T) {
	in := `{"metadata": {"mmif": "http://mmif.clams.ai/1.0.0"},
		"documents": [],
		"views": [{"id": "v1", "metadata": {"contains": {}},
			"annotations": [{"@type": "` + TimeFrame + `", "properties": {"id": "a1"}}]}]}`
	_, err := FromString(in)
	assert.Equal(t, ErrUndeclaredType{View: "v1", Type: TimeFrame}, err)
}

func TestParseRejectsDuplicateDocuments(t *testing.T) {
	in := `{"metadata": {"mmif": "http://mmif.clams.ai/1.0.0"},
		"documents": [
			{"@type": "` + TextDocument + `", "properties": {"id": "d"}},
			{"@type": "` + TextDocument + `", "properties": {"id": "d"}}],
		"views": []}`
	_, err := FromString(in)
	assert.Equal(t, ErrDuplicateID{Kind: "document", ID: "d"}, err)
}

func TestParseMalformed(t *testing.T) {
	_, err := FromString("this is not json")
	assert.IsType(t, ErrMalformed{}, err)

	_, err = FromString("")
	assert.IsType(t, ErrMalformed{}, err)

	_, err = FromString("{}")
	assert.Equal(t, ErrNoVersion, err)

	for _, in := range []string{
		`{"metadata": {"mmif": "http://mmif.clams.ai/1.0.0"}, "documents": [null], "views": []}`,
		`{"metadata": {"mmif": "http://mmif.clams.ai/1.0.0"}, "documents": [], "views": [null]}`,
		`{"metadata": {"mmif": "http://mmif.clams.ai/1.0.0"}, "documents": [],
			"views": [{"id": "v_0", "metadata": {"contains": {}}, "annotations": [null]}]}`,
	} {
		var err error
		assert.NotPanics(t, func() { _, err = FromString(in) }, in)
		assert.IsType(t, ErrMalformed{}, err, in)
	}
}

func TestUnknownPropertiesSurvive(t *testing.T) {
	in := `{"metadata": {"mmif": "http://mmif.clams.ai/1.0.0"},
		"documents": [{"@type": "` + VideoDocument + `",
			"properties": {"id": "v1", "location": "file:///a.mp4", "fps": 29.97, "extra": {"k": "v"}}}],
		"views": []}`
	m, err := FromString(in)
	require.NoError(t, err)
	out, err := FromString(m.String())
	require.NoError(t, err)
	d := out.Document("v1")
	require.NotNil(t, d)
	assert.Equal(t, 29.97, d.Properties["fps"])
	assert.Equal(t, map[string]interface{}{"k": "v"}, d.Properties["extra"])
}

func TestLocationPath(t *testing.T) {
	tests := []struct {
		location string
		path     string
		err      error
	}{
		{"/tmp/a.txt", filepath.FromSlash("/tmp/a.txt"), nil},
		{"file:///tmp/a.txt", filepath.FromSlash("/tmp/a.txt"), nil},
		{"file://localhost/tmp/a.txt", filepath.FromSlash("/tmp/a.txt"), nil},
		{"relative/b.txt", filepath.FromSlash("relative/b.txt"), nil},
		{"http://example.com/a.mp4", "", ErrUnsupportedLocation{Location: "http://example.com/a.mp4"}},
		{"", "", ErrNoLocation},
	}
	for _, test := range tests {
		d := NewDocument(TextDocument, "d", test.location)
		path, err := d.LocationPath()
		assert.Equal(t, test.err, err, "location %q", test.location)
		assert.Equal(t, test.path, path, "location %q", test.location)
	}
}

func TestDocumentsOfType(t *testing.T) {
	m := sampleMmif(t)
	videos := m.DocumentsOfType(VideoDocument)
	require.Len(t, videos, 1)
	assert.Equal(t, "v1", videos[0].ID())
	assert.Empty(t, m.DocumentsOfType(AudioDocument))
}

func TestShortName(t *testing.T) {
	assert.Equal(t, "TimeFrame", ShortName(TimeFrame))
	assert.Equal(t, "VideoDocument", ShortName(VideoDocument))
	assert.True(t, SameType(TimeFrame, "http://mmif.clams.ai/vocabulary/TimeFrame/v1"))
	assert.False(t, SameType(TimeFrame, TimePoint))
}

func TestNewDocumentFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "note.txt")
	require.NoError(t, os.WriteFile(path, []byte("plain old text\n"), 0o644))

	d, err := NewDocumentFromFile("t1", path)
	require.NoError(t, err)
	assert.Equal(t, TextDocument, d.Type)
	assert.Equal(t, "text/plain", d.MIME())
	local, err := d.LocationPath()
	require.NoError(t, err)
	assert.Equal(t, path, local)

	// An explicit prefix overrides detection
	d, err = NewDocumentFromFile("v1", "video:"+path)
	require.NoError(t, err)
	assert.Equal(t, VideoDocument, d.Type)

	_, err = NewDocumentFromFile("x", filepath.Join(dir, "missing"))
	assert.Error(t, err)
}
