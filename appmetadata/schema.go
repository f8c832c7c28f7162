// Copyright 2026 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

package appmetadata

import (
	"bytes"
	"encoding/json"
	"sync"

	"github.com/diffeo/go-clams/mmif"
	"github.com/google/jsonschema-go/jsonschema"
	"github.com/ugorji/go/codec"
)

// semverPattern accepts a semantic version with optional "v" prefix,
// pre-release, and build metadata.
const semverPattern = `^v?(0|[1-9][0-9]*)\.(0|[1-9][0-9]*)\.(0|[1-9][0-9]*)(-[0-9A-Za-z.-]+)?(\+[0-9A-Za-z.-]+)?$`

// ErrInvalid wraps a schema validation failure.
type ErrInvalid struct {
	Err error
}

func (e ErrInvalid) Error() string {
	return "Invalid app metadata: " + e.Err.Error()
}

func (e ErrInvalid) Unwrap() error {
	return e.Err
}

var (
	schemaOnce     sync.Once
	schema         *jsonschema.Schema
	resolvedSchema *jsonschema.Resolved
	schemaErr      error
)

func buildSchema() {
	schema, schemaErr = jsonschema.For[AppMetadata](nil)
	if schemaErr != nil {
		return
	}
	schema.Schema = "https://json-schema.org/draft/2020-12/schema"
	schema.Title = "AppMetadata"
	schema.Description = "Metadata describing a CLAMS app"

	one := 1
	if name := schema.Properties["name"]; name != nil {
		name.MinLength = &one
	}
	if version := schema.Properties["app_version"]; version != nil {
		version.Pattern = semverPattern
	}
	if url := schema.Properties["url"]; url != nil {
		url.Pattern = `^https?://`
	}
	if license := schema.Properties["license"]; license != nil {
		license.MinLength = &one
	}
	if params := schema.Properties["parameters"]; params != nil && params.Items != nil {
		if ptype := params.Items.Properties["type"]; ptype != nil {
			ptype.Enum = []interface{}{TypeInteger, TypeNumber, TypeString, TypeBoolean}
		}
		if pname := params.Items.Properties["name"]; pname != nil {
			pname.MinLength = &one
		}
	}
	for _, list := range []string{"input", "output"} {
		if l := schema.Properties[list]; l != nil && l.Items != nil {
			if atType := l.Items.Properties["@type"]; atType != nil {
				atType.MinLength = &one
			}
		}
	}

	resolvedSchema, schemaErr = schema.Resolve(nil)
}

// Schema returns the JSON schema every app's metadata must satisfy.
// The returned object is shared; callers must not modify it.
func Schema() (*jsonschema.Schema, error) {
	schemaOnce.Do(buildSchema)
	return schema, schemaErr
}

// SchemaJSON returns the serialized JSON schema.
func SchemaJSON(pretty bool) ([]byte, error) {
	s, err := Schema()
	if err != nil {
		return nil, err
	}
	// Schema has its own MarshalJSON, which the codec would bypass
	b, err := json.Marshal(s)
	if err != nil || !pretty {
		return b, err
	}
	var buf bytes.Buffer
	err = json.Indent(&buf, b, "", "  ")
	return buf.Bytes(), err
}

// ValidateJSON checks a serialized metadata document against the
// schema.
func ValidateJSON(b []byte) error {
	if _, err := Schema(); err != nil {
		return err
	}
	var instance interface{}
	decoder := codec.NewDecoderBytes(b, mmif.JSONHandle())
	if err := decoder.Decode(&instance); err != nil {
		return ErrInvalid{Err: err}
	}
	if err := resolvedSchema.Validate(instance); err != nil {
		return ErrInvalid{Err: err}
	}
	return nil
}

// Validate checks md against the schema, in its serialized form.
func (md *AppMetadata) Validate() error {
	b, err := md.Serialize(false)
	if err != nil {
		return err
	}
	return ValidateJSON(b)
}
