// Copyright 2026 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

package mmif

// Properties holds the key/value properties of a document, annotation,
// or "contains" declaration.  Values are anything the JSON codec can
// round-trip.
type Properties map[string]interface{}

// GetString returns the string value of key, or "" if it is absent or
// not a string.
func (p Properties) GetString(key string) string {
	if s, ok := p[key].(string); ok {
		return s
	}
	return ""
}

// Set sets a property value.
func (p Properties) Set(key string, value interface{}) {
	p[key] = value
}
