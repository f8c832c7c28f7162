// Copyright 2026 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

package clams

import (
	"net/url"
	"testing"

	"github.com/diffeo/go-clams/appmetadata"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var declared = []appmetadata.Parameter{
	{Name: "threshold", Type: appmetadata.TypeNumber, Description: "score cutoff", Default: 0.5},
	{Name: "sampleRate", Type: appmetadata.TypeInteger, Description: "frames per second"},
	{Name: "mode", Type: appmetadata.TypeString, Description: "mode", Choices: []interface{}{"fast", "slow"}, Default: "fast"},
	{Name: "verbose", Type: appmetadata.TypeBoolean, Description: "chatty output", Default: false},
	{Name: "label", Type: appmetadata.TypeString, Description: "labels", MultiValued: true, Default: []interface{}{"a"}},
	{Name: "count", Type: appmetadata.TypeInteger, Description: "count", Choices: []interface{}{int64(1), 2, 3.0}},
}

func TestParseParametersDefaults(t *testing.T) {
	params, err := ParseParameters(declared, nil)
	require.NoError(t, err)
	assert.Equal(t, Params{
		"threshold": 0.5,
		"mode":      "fast",
		"verbose":   false,
		"label":     []interface{}{"a"},
	}, params)
}

func TestParseParametersConversion(t *testing.T) {
	params, err := ParseParameters(declared, url.Values{
		"threshold":  {"0.75"},
		"sampleRate": {"30"},
		"mode":       {"slow"},
		"verbose":    {"true"},
		"label":      {"x", "y"},
		"count":      {"2"},
	})
	require.NoError(t, err)
	assert.Equal(t, Params{
		"threshold":  0.75,
		"sampleRate": int64(30),
		"mode":       "slow",
		"verbose":    true,
		"label":      []interface{}{"x", "y"},
		"count":      int64(2),
	}, params)

	var decoded struct {
		Threshold  float64
		SampleRate int `mapstructure:"sampleRate"`
		Mode       string
		Verbose    bool
		Label      []string
	}
	require.NoError(t, params.Decode(&decoded))
	assert.Equal(t, 0.75, decoded.Threshold)
	assert.Equal(t, 30, decoded.SampleRate)
	assert.Equal(t, "slow", decoded.Mode)
	assert.True(t, decoded.Verbose)
	assert.Equal(t, []string{"x", "y"}, decoded.Label)

	assert.Equal(t, "x,y", params.Strings()["label"])
	assert.Equal(t, "30", params.Strings()["sampleRate"])
}

func TestParseParametersErrors(t *testing.T) {
	tests := []struct {
		raw url.Values
		err error
	}{
		{url.Values{"random": {"random"}}, ErrUnsupportedParameter{Name: "random"}},
		{url.Values{"mode": {"fast"}, "zzz": {"1"}}, ErrUnsupportedParameter{Name: "zzz"}},
		{url.Values{"sampleRate": {"fast"}}, nil},
		{url.Values{"sampleRate": {"1", "2"}}, ErrBadParameter{Name: "sampleRate", Value: "1,2", Reason: "repeated"}},
		{url.Values{"mode": {"medium"}}, ErrBadParameter{Name: "mode", Value: "medium", Reason: "not one of the allowed choices"}},
		{url.Values{"count": {"4"}}, ErrBadParameter{Name: "count", Value: "4", Reason: "not one of the allowed choices"}},
	}
	for _, test := range tests {
		_, err := ParseParameters(declared, test.raw)
		if test.err == nil {
			assert.IsType(t, ErrBadParameter{}, err, "%v", test.raw)
		} else {
			assert.Equal(t, test.err, err, "%v", test.raw)
		}
	}
}

func TestParseParametersNoneDeclared(t *testing.T) {
	params, err := ParseParameters(nil, url.Values{})
	require.NoError(t, err)
	assert.Empty(t, params)

	_, err = ParseParameters(nil, url.Values{"pretty": {"true"}})
	assert.Equal(t, ErrUnsupportedParameter{Name: "pretty"}, err)
}
