// Copyright 2026 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

package appmetadata

import (
	"testing"

	"github.com/diffeo/go-clams/mmif"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func exampleMetadata() *AppMetadata {
	return &AppMetadata{
		Name:        "Example CLAMS App for testing",
		Description: "This app doesn't do anything",
		AppVersion:  "0.0.1",
		License:     "MIT",
		URL:         "https://apps.clams.ai/example/0.0.1",
	}
}

func TestSchemaExport(t *testing.T) {
	b, err := SchemaJSON(true)
	require.NoError(t, err)
	assert.Contains(t, string(b), `"app_version"`)
	assert.Contains(t, string(b), `"AppMetadata"`)

	s, err := Schema()
	require.NoError(t, err)
	assert.Contains(t, s.Required, "name")
	assert.Contains(t, s.Required, "url")
	assert.NotContains(t, s.Required, "parameters")
}

func TestValidMetadata(t *testing.T) {
	md := exampleMetadata()
	assert.NoError(t, md.Validate())

	md.AddInput(mmif.VideoDocument, nil)
	md.AddOutput(mmif.TimeFrame, mmif.Properties{"frameType": "slate"})
	md.AddParameter(Parameter{
		Name:        "threshold",
		Type:        TypeNumber,
		Description: "minimum score",
		Default:     0.5,
	})
	md.AddParameter(Parameter{
		Name:        "mode",
		Type:        TypeString,
		Description: "detection mode",
		Choices:     []interface{}{"fast", "slow"},
		Default:     "fast",
	})
	assert.NoError(t, md.Validate())

	p, ok := md.Parameter("mode")
	assert.True(t, ok)
	assert.Equal(t, TypeString, p.Type)
	_, ok = md.Parameter("nope")
	assert.False(t, ok)
}

func TestInvalidMetadata(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*AppMetadata)
	}{
		{"empty name", func(md *AppMetadata) { md.Name = "" }},
		{"bad version", func(md *AppMetadata) { md.AppVersion = "one point oh" }},
		{"bad url", func(md *AppMetadata) { md.URL = "apps.clams.ai" }},
		{"empty license", func(md *AppMetadata) { md.License = "" }},
		{"bad parameter type", func(md *AppMetadata) {
			md.AddParameter(Parameter{Name: "p", Type: "list", Description: "d"})
		}},
		{"untyped output", func(md *AppMetadata) { md.AddOutput("", nil) }},
	}
	for _, test := range tests {
		md := exampleMetadata()
		test.mutate(md)
		err := md.Validate()
		assert.IsType(t, ErrInvalid{}, err, test.name)
	}
}

func TestValidateJSONMissingField(t *testing.T) {
	err := ValidateJSON([]byte(`{"name": "x", "description": "y", "app_version": "1.0.0",
		"license": "MIT", "input": [], "output": []}`))
	assert.IsType(t, ErrInvalid{}, err)

	err = ValidateJSON([]byte(`not json`))
	assert.IsType(t, ErrInvalid{}, err)
}

func TestSerializeNormalizes(t *testing.T) {
	md := exampleMetadata()
	b, err := md.Serialize(false)
	require.NoError(t, err)
	assert.Contains(t, string(b), `"input":[]`)
	assert.Contains(t, string(b), `"output":[]`)
	assert.NotContains(t, string(b), `"parameters"`)

	pretty, err := md.Serialize(true)
	require.NoError(t, err)
	assert.NoError(t, ValidateJSON(pretty))
}
