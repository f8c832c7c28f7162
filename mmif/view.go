// Copyright 2026 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

package mmif

// View is an annotation layer produced by one annotation step.
type View struct {
	ID          string        `json:"id"`
	Metadata    ViewMetadata  `json:"metadata"`
	Annotations []*Annotation `json:"annotations"`
}

// ViewMetadata describes who produced a view and what it contains.
type ViewMetadata struct {
	// App is the URL of the app that produced this view.
	App string `json:"app,omitempty"`

	// Timestamp is an RFC 3339 time at which the view was produced.
	Timestamp string `json:"timestamp,omitempty"`

	// Contains maps each annotation type URI in this view to
	// properties shared by all annotations of that type.
	Contains map[string]Properties `json:"contains"`

	// Parameters records the runtime parameters the app was
	// invoked with.
	Parameters map[string]string `json:"parameters,omitempty"`
}

// Annotation is a single typed annotation record.
type Annotation struct {
	Type       string     `json:"@type"`
	Properties Properties `json:"properties"`
}

// ID returns the annotation identifier.
func (a *Annotation) ID() string {
	return a.Properties.GetString("id")
}

// AddProperty sets a property on the annotation.  "id" cannot be
// changed this way.
func (a *Annotation) AddProperty(key string, value interface{}) {
	if key == "id" {
		return
	}
	a.Properties.Set(key, value)
}

// NewContain declares that this view contains annotations of type
// atType, with shared properties props, and returns the stored
// properties.  Declaring the same type twice merges the properties.
func (v *View) NewContain(atType string, props Properties) Properties {
	if v.Metadata.Contains == nil {
		v.Metadata.Contains = make(map[string]Properties)
	}
	existing, present := v.Metadata.Contains[atType]
	if !present || existing == nil {
		existing = Properties{}
		v.Metadata.Contains[atType] = existing
	}
	for k, val := range props {
		existing[k] = val
	}
	return existing
}

// Contains reports whether atType is declared in this view,
// ignoring type versions.
func (v *View) Contains(atType string) bool {
	for declared := range v.Metadata.Contains {
		if SameType(declared, atType) {
			return true
		}
	}
	return false
}

// NewAnnotation appends an annotation of type atType with identifier
// id.  atType must already be declared with NewContain(), and id must
// be unique within the view.
func (v *View) NewAnnotation(id, atType string) (*Annotation, error) {
	if !v.Contains(atType) {
		return nil, ErrUndeclaredType{View: v.ID, Type: atType}
	}
	if v.Annotation(id) != nil {
		return nil, ErrDuplicateID{Kind: "annotation", ID: id}
	}
	a := &Annotation{Type: atType, Properties: Properties{"id": id}}
	v.Annotations = append(v.Annotations, a)
	return a, nil
}

// Annotation finds an annotation by id, or returns nil.
func (v *View) Annotation(id string) *Annotation {
	for _, a := range v.Annotations {
		if a.ID() == id {
			return a
		}
	}
	return nil
}

// AnnotationsOfType returns all annotations matching atType, ignoring
// type versions, in order.
func (v *View) AnnotationsOfType(atType string) []*Annotation {
	var result []*Annotation
	for _, a := range v.Annotations {
		if SameType(a.Type, atType) {
			result = append(result, a)
		}
	}
	return result
}

// validate checks the view-level invariants.
func (v *View) validate() error {
	seen := make(map[string]struct{}, len(v.Annotations))
	for _, a := range v.Annotations {
		if !v.Contains(a.Type) {
			return ErrUndeclaredType{View: v.ID, Type: a.Type}
		}
		id := a.ID()
		if _, dup := seen[id]; dup {
			return ErrDuplicateID{Kind: "annotation", ID: id}
		}
		seen[id] = struct{}{}
	}
	return nil
}
