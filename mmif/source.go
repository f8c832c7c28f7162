// Copyright 2026 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

package mmif

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// documentPrefixes maps the short type names accepted by
// NewDocumentFromFile() to document type URIs.
var documentPrefixes = map[string]string{
	"video": VideoDocument,
	"audio": AudioDocument,
	"image": ImageDocument,
	"text":  TextDocument,
}

// NewDocumentFromFile builds a document for a local file.  source is
// either "type:path", where type is one of video, audio, image, or
// text, or a bare path; in the latter case the type is guessed from
// the file content.  The location is stored as an absolute file://
// URI and the detected MIME type is recorded.
func NewDocumentFromFile(id, source string) (*Document, error) {
	var docType string
	path := source
	if i := strings.Index(source, ":"); i > 0 {
		if t, known := documentPrefixes[strings.ToLower(source[:i])]; known {
			docType = t
			path = source[i+1:]
		}
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	mtype, err := mimetype.DetectFile(abs)
	if err != nil {
		return nil, err
	}
	if docType == "" {
		top := strings.SplitN(mtype.String(), "/", 2)[0]
		t, known := documentPrefixes[top]
		if !known {
			return nil, fmt.Errorf("cannot guess document type of %v (%v)", path, mtype.String())
		}
		docType = t
	}

	d := NewDocument(docType, id, "file://"+filepath.ToSlash(abs))
	d.Properties.Set("mime", strings.SplitN(mtype.String(), ";", 2)[0])
	return d, nil
}
