// Copyright 2026 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

package mmif

import (
	"regexp"
	"strings"
)

// SpecVersion is the version of the MMIF interchange format this
// package reads and writes.
const SpecVersion = "1.0.0"

// vocabularyBase prefixes every type URI in the CLAMS vocabulary.
const vocabularyBase = "http://mmif.clams.ai/vocabulary/"

// Document types.
const (
	VideoDocument = vocabularyBase + "VideoDocument/v1"
	AudioDocument = vocabularyBase + "AudioDocument/v1"
	ImageDocument = vocabularyBase + "ImageDocument/v1"
	TextDocument  = vocabularyBase + "TextDocument/v1"
)

// Annotation types.
const (
	BaseAnnotation = vocabularyBase + "Annotation/v5"
	Region         = vocabularyBase + "Region/v5"
	TimePoint      = vocabularyBase + "TimePoint/v4"
	TimeFrame      = vocabularyBase + "TimeFrame/v5"
	Interval       = vocabularyBase + "Interval/v5"
	Span           = vocabularyBase + "Span/v5"
	Chapter        = vocabularyBase + "Chapter/v5"
	Polygon        = vocabularyBase + "Polygon/v5"
	BoundingBox    = vocabularyBase + "BoundingBox/v4"
	VideoObject    = vocabularyBase + "VideoObject/v4"
	Relation       = vocabularyBase + "Relation/v5"
	Alignment      = vocabularyBase + "Alignment/v1"
)

var typeVersion = regexp.MustCompile(`/v[0-9]+$`)

// SameType reports whether two type URIs name the same type, ignoring
// any trailing "/vN" version component.
func SameType(a, b string) bool {
	return typeVersion.ReplaceAllString(a, "") == typeVersion.ReplaceAllString(b, "")
}

// ShortName returns the bare type name of a vocabulary URI, e.g.
// "TimeFrame" for ".../vocabulary/TimeFrame/v5".
func ShortName(uri string) string {
	uri = typeVersion.ReplaceAllString(uri, "")
	if i := strings.LastIndex(uri, "/"); i >= 0 {
		return uri[i+1:]
	}
	return uri
}
