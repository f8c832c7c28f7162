// Copyright 2026 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

// Package mmif holds the minimal MMIF container model needed by CLAMS
// apps: a list of source documents plus the annotation views apps
// produce over them.  It reads and writes the JSON interchange format
// but does not attempt to check annotations against the MMIF
// vocabulary.
//
// A container owns its documents and views.  Document identifiers are
// unique within a container, view identifiers are unique within a
// container, and each view's annotations must be of a type declared in
// that view's "contains" metadata.  Parse() enforces all of these;
// AddDocument(), NewView(), and View.NewAnnotation() preserve them.
package mmif

import (
	"fmt"
)

// Metadata is the container-level metadata block.
type Metadata struct {
	// MMIF is the URI of the MMIF specification version.
	MMIF string `json:"mmif"`
}

// Mmif is a multimedia interchange container.
type Mmif struct {
	Metadata  Metadata    `json:"metadata"`
	Documents []*Document `json:"documents"`
	Views     []*View     `json:"views"`
}

// New creates an empty container at the current specification version.
func New() *Mmif {
	return &Mmif{
		Metadata:  Metadata{MMIF: "http://mmif.clams.ai/" + SpecVersion},
		Documents: []*Document{},
		Views:     []*View{},
	}
}

// AddDocument appends a document.  Fails with ErrDuplicateID if its
// id is already in use.
func (m *Mmif) AddDocument(d *Document) error {
	if m.Document(d.ID()) != nil {
		return ErrDuplicateID{Kind: "document", ID: d.ID()}
	}
	if d.Properties == nil {
		d.Properties = Properties{}
	}
	m.Documents = append(m.Documents, d)
	return nil
}

// Document finds a document by id, or returns nil.
func (m *Mmif) Document(id string) *Document {
	for _, d := range m.Documents {
		if d.ID() == id {
			return d
		}
	}
	return nil
}

// DocumentsOfType returns every document of docType, ignoring type
// versions, in order.
func (m *Mmif) DocumentsOfType(docType string) []*Document {
	var result []*Document
	for _, d := range m.Documents {
		if SameType(d.Type, docType) {
			result = append(result, d)
		}
	}
	return result
}

// NewView appends a new, empty view with a fresh "v_N" identifier.
// Existing views are not touched.
func (m *Mmif) NewView() *View {
	n := len(m.Views)
	id := fmt.Sprintf("v_%d", n)
	for m.View(id) != nil {
		n++
		id = fmt.Sprintf("v_%d", n)
	}
	v := &View{
		ID:          id,
		Metadata:    ViewMetadata{Contains: make(map[string]Properties)},
		Annotations: []*Annotation{},
	}
	m.Views = append(m.Views, v)
	return v
}

// View finds a view by id, or returns nil.
func (m *Mmif) View(id string) *View {
	for _, v := range m.Views {
		if v.ID == id {
			return v
		}
	}
	return nil
}

// ViewsContaining returns every view that declares atType.
func (m *Mmif) ViewsContaining(atType string) []*View {
	var result []*View
	for _, v := range m.Views {
		if v.Contains(atType) {
			result = append(result, v)
		}
	}
	return result
}

// Validate checks the container invariants: unique document ids,
// unique view ids, and annotations conforming to their view's
// declared types.
func (m *Mmif) Validate() error {
	if m.Metadata.MMIF == "" {
		return ErrNoVersion
	}
	docs := make(map[string]struct{}, len(m.Documents))
	for _, d := range m.Documents {
		id := d.ID()
		if _, dup := docs[id]; dup {
			return ErrDuplicateID{Kind: "document", ID: id}
		}
		docs[id] = struct{}{}
	}
	views := make(map[string]struct{}, len(m.Views))
	for _, v := range m.Views {
		if _, dup := views[v.ID]; dup {
			return ErrDuplicateID{Kind: "view", ID: v.ID}
		}
		views[v.ID] = struct{}{}
		if err := v.validate(); err != nil {
			return err
		}
	}
	return nil
}

// normalize replaces nil collections with empty ones so that the
// serialized form always carries arrays and objects, never null.
func (m *Mmif) normalize() {
	if m.Documents == nil {
		m.Documents = []*Document{}
	}
	if m.Views == nil {
		m.Views = []*View{}
	}
	for _, d := range m.Documents {
		if d.Properties == nil {
			d.Properties = Properties{}
		}
	}
	for _, v := range m.Views {
		if v.Metadata.Contains == nil {
			v.Metadata.Contains = make(map[string]Properties)
		}
		if v.Annotations == nil {
			v.Annotations = []*Annotation{}
		}
		for _, a := range v.Annotations {
			if a.Properties == nil {
				a.Properties = Properties{}
			}
		}
	}
}
