// Copyright 2026 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

package mmif

import (
	"net/url"
	"path/filepath"
)

// Document is a reference to a source media or text resource.
type Document struct {
	// Type is the document type URI, e.g. VideoDocument.
	Type string `json:"@type"`

	// Properties holds "id", "location", "mime", "text", and any
	// other properties.  Unknown properties survive a round trip.
	Properties Properties `json:"properties"`
}

// NewDocument creates a document of the given type pointing at
// location.  location may be empty for text documents whose content
// is inline.
func NewDocument(docType, id, location string) *Document {
	d := &Document{Type: docType, Properties: Properties{"id": id}}
	if location != "" {
		d.Properties["location"] = location
	}
	return d
}

// ID returns the document identifier.
func (d *Document) ID() string {
	return d.Properties.GetString("id")
}

// Location returns the raw location property.
func (d *Document) Location() string {
	return d.Properties.GetString("location")
}

// SetLocation changes the location property.
func (d *Document) SetLocation(location string) {
	d.Properties.Set("location", location)
}

// MIME returns the declared MIME type, if any.
func (d *Document) MIME() string {
	return d.Properties.GetString("mime")
}

// Text returns the inline text value of a text document, if any.
func (d *Document) Text() string {
	if text, ok := d.Properties["text"].(map[string]interface{}); ok {
		if value, ok := text["@value"].(string); ok {
			return value
		}
	}
	return ""
}

// SetText sets the inline text value of a text document.
func (d *Document) SetText(value, language string) {
	text := map[string]interface{}{"@value": value}
	if language != "" {
		text["@language"] = language
	}
	d.Properties.Set("text", text)
}

// LocationPath resolves the document location to a local filesystem
// path.  Both plain paths and file:// URIs are understood.
func (d *Document) LocationPath() (string, error) {
	location := d.Location()
	if location == "" {
		return "", ErrNoLocation
	}
	u, err := url.Parse(location)
	if err != nil || u.Scheme == "" {
		// Plain filesystem path
		return filepath.Clean(location), nil
	}
	if u.Scheme != "file" || (u.Host != "" && u.Host != "localhost") {
		return "", ErrUnsupportedLocation{Location: location}
	}
	return filepath.FromSlash(u.Path), nil
}
