// Copyright 2026 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

// Package appmetadata describes a CLAMS app: who it is, what it
// consumes, what it produces, and which runtime parameters it accepts.
// Every app's metadata must validate against the JSON schema returned
// by Schema().
package appmetadata

import (
	"github.com/diffeo/go-clams/mmif"
)

// Parameter types.  These are the only values allowed in
// Parameter.Type.
const (
	TypeInteger = "integer"
	TypeNumber  = "number"
	TypeString  = "string"
	TypeBoolean = "boolean"
)

// AppMetadata is the structured description of an app.
type AppMetadata struct {
	Name            string      `json:"name" jsonschema:"human-readable name of the app"`
	Description     string      `json:"description" jsonschema:"what the app does"`
	AppVersion      string      `json:"app_version" jsonschema:"semantic version of the app"`
	MMIFVersion     string      `json:"mmif_version,omitempty" jsonschema:"MMIF specification version the app targets"`
	AnalyzerVersion string      `json:"analyzer_version,omitempty" jsonschema:"version of the wrapped analyzer, if any"`
	License         string      `json:"license" jsonschema:"license identifier of the app"`
	AnalyzerLicense string      `json:"analyzer_license,omitempty" jsonschema:"license identifier of the wrapped analyzer"`
	URL             string      `json:"url" jsonschema:"canonical URL of the app"`
	Input           []Input     `json:"input" jsonschema:"document or annotation types the app consumes"`
	Output          []Output    `json:"output" jsonschema:"annotation types the app produces"`
	Parameters      []Parameter `json:"parameters,omitempty" jsonschema:"runtime parameters accepted by annotate"`
}

// Input declares one type an app consumes.
type Input struct {
	AtType     string          `json:"@type" jsonschema:"type URI"`
	Properties mmif.Properties `json:"properties,omitempty" jsonschema:"required property values"`
	Required   bool            `json:"required" jsonschema:"whether input of this type must be present"`
}

// Output declares one type an app produces.
type Output struct {
	AtType     string          `json:"@type" jsonschema:"type URI"`
	Properties mmif.Properties `json:"properties,omitempty" jsonschema:"property values shared by all outputs of this type"`
}

// Parameter declares one runtime parameter that annotate accepts.
// The declared set is the complete list: any other parameter is
// rejected before the app runs.
type Parameter struct {
	Name        string        `json:"name" jsonschema:"parameter name as it appears in a query string"`
	Type        string        `json:"type" jsonschema:"one of integer, number, string, boolean"`
	Description string        `json:"description" jsonschema:"what the parameter controls"`
	Choices     []interface{} `json:"choices,omitempty" jsonschema:"allowed values, if restricted"`
	Default     interface{}   `json:"default,omitempty" jsonschema:"value used when the parameter is absent"`
	MultiValued bool          `json:"multivalued,omitempty" jsonschema:"whether the parameter may be repeated"`
}

// AddInput appends a required input type.
func (md *AppMetadata) AddInput(atType string, props mmif.Properties) {
	md.Input = append(md.Input, Input{AtType: atType, Properties: props, Required: true})
}

// AddOutput appends an output type.
func (md *AppMetadata) AddOutput(atType string, props mmif.Properties) {
	md.Output = append(md.Output, Output{AtType: atType, Properties: props})
}

// AddParameter appends a runtime parameter declaration.
func (md *AppMetadata) AddParameter(p Parameter) {
	md.Parameters = append(md.Parameters, p)
}

// Parameter finds a declared parameter by name.
func (md *AppMetadata) Parameter(name string) (Parameter, bool) {
	for _, p := range md.Parameters {
		if p.Name == name {
			return p, true
		}
	}
	return Parameter{}, false
}

// Normalize replaces nil capability lists with empty ones, so the
// serialized form carries arrays and not null.
func (md *AppMetadata) Normalize() {
	if md.Input == nil {
		md.Input = []Input{}
	}
	if md.Output == nil {
		md.Output = []Output{}
	}
}

// Serialize returns the JSON form of md, optionally indented.
func (md *AppMetadata) Serialize(pretty bool) ([]byte, error) {
	md.Normalize()
	return mmif.Encode(md, pretty)
}
