// Copyright 2026 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

package clams

import (
	"fmt"
	"net/url"
	"sort"
	"strings"

	"github.com/diffeo/go-clams/appmetadata"
	"github.com/mitchellh/mapstructure"
)

// Params holds runtime parameters after checking against the declared
// set.  Values have the Go type matching their declared type: int64,
// float64, string, or bool; multivalued parameters hold a slice of
// these.
type Params map[string]interface{}

// Decode copies the parameters into an app-defined struct, using
// "mapstructure" field tags.  Loose conversions are allowed, so an
// int64 parameter can land in an int field.
func (p Params) Decode(out interface{}) error {
	config := mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           out,
	}
	decoder, err := mapstructure.NewDecoder(&config)
	if err != nil {
		return err
	}
	return decoder.Decode(map[string]interface{}(p))
}

// Strings renders each parameter as a string, suitable for recording
// in view metadata.
func (p Params) Strings() map[string]string {
	if len(p) == 0 {
		return nil
	}
	result := make(map[string]string, len(p))
	for k, v := range p {
		if vs, ok := v.([]interface{}); ok {
			parts := make([]string, len(vs))
			for i, vv := range vs {
				parts[i] = fmt.Sprint(vv)
			}
			result[k] = strings.Join(parts, ",")
		} else {
			result[k] = fmt.Sprint(v)
		}
	}
	return result
}

// ParseParameters checks raw against declared and converts each value
// to its declared type.  Undeclared names fail with
// ErrUnsupportedParameter; bad values with ErrBadParameter.  Declared
// parameters that are absent take their default, if they have one.
func ParseParameters(declared []appmetadata.Parameter, raw url.Values) (Params, error) {
	byName := make(map[string]appmetadata.Parameter, len(declared))
	for _, p := range declared {
		byName[p.Name] = p
	}

	// Check in sorted order so the reported error is stable
	names := make([]string, 0, len(raw))
	for name := range raw {
		names = append(names, name)
	}
	sort.Strings(names)

	params := make(Params)
	for _, name := range names {
		p, known := byName[name]
		if !known {
			return nil, ErrUnsupportedParameter{Name: name}
		}
		values := raw[name]
		if len(values) > 1 && !p.MultiValued {
			return nil, ErrBadParameter{Name: name, Value: strings.Join(values, ","), Reason: "repeated"}
		}
		converted := make([]interface{}, len(values))
		for i, s := range values {
			v, err := convertParameter(p, s)
			if err != nil {
				return nil, ErrBadParameter{Name: name, Value: s, Reason: err.Error()}
			}
			if !inChoices(p, v) {
				return nil, ErrBadParameter{Name: name, Value: s, Reason: "not one of the allowed choices"}
			}
			converted[i] = v
		}
		if p.MultiValued {
			params[name] = converted
		} else if len(converted) == 1 {
			params[name] = converted[0]
		}
	}

	for _, p := range declared {
		if _, present := params[p.Name]; present || p.Default == nil {
			continue
		}
		defaults, isList := p.Default.([]interface{})
		if !isList {
			defaults = []interface{}{p.Default}
		} else if len(defaults) == 0 {
			continue
		}
		converted := make([]interface{}, len(defaults))
		for i, d := range defaults {
			v, err := convertParameter(p, d)
			if err != nil {
				return nil, ErrBadParameter{Name: p.Name, Value: fmt.Sprint(d), Reason: "bad default: " + err.Error()}
			}
			converted[i] = v
		}
		if p.MultiValued {
			params[p.Name] = converted
		} else {
			params[p.Name] = converted[0]
		}
	}
	return params, nil
}

func convertParameter(p appmetadata.Parameter, in interface{}) (interface{}, error) {
	var err error
	switch p.Type {
	case appmetadata.TypeInteger:
		var i int64
		err = mapstructure.WeakDecode(in, &i)
		return i, err
	case appmetadata.TypeNumber:
		var f float64
		err = mapstructure.WeakDecode(in, &f)
		return f, err
	case appmetadata.TypeBoolean:
		var b bool
		err = mapstructure.WeakDecode(in, &b)
		return b, err
	default:
		var s string
		err = mapstructure.WeakDecode(in, &s)
		return s, err
	}
}

func inChoices(p appmetadata.Parameter, v interface{}) bool {
	if len(p.Choices) == 0 {
		return true
	}
	want := fmt.Sprint(v)
	for _, choice := range p.Choices {
		if fmt.Sprint(choice) == want {
			return true
		}
	}
	return false
}
