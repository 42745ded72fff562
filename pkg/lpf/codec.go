// Package lpf implements the object model and codec for the Linked
// Places Format (LPF), a GeoJSON-derived interchange format for
// historical places defined by
// https://github.com/LinkedPasts/linked-places-format.
//
// Decoding is strict: the first shape violation aborts the whole decode
// with a ValidationError carrying the offending field path. Malformed
// JSON text is always reported as a ParseError. The package never logs.
package lpf

import (
	"encoding/json"
	"errors"
	"io"
)

// Object is implemented by the LPF types that can be serialized:
// Geometry, Feature, and FeatureCollection.
type Object interface {
	Structure() map[string]any
}

// Unmarshal parses LPF JSON text into a FeatureCollection. It returns a
// ParseError if data is not valid JSON and a ValidationError if the
// document violates the LPF/GeoJSON shape rules.
func Unmarshal(data []byte) (*FeatureCollection, error) {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, &ParseError{Err: err}
	}
	return DecodeFeatureCollection(v)
}

// Marshal serializes an LPF object to JSON text.
func Marshal(obj Object) ([]byte, error) {
	if obj == nil {
		return nil, errors.New("lpf: cannot marshal nil object")
	}
	return json.Marshal(obj.Structure())
}

// MarshalIndent is like Marshal but applies the given indentation.
func MarshalIndent(obj Object, prefix, indent string) ([]byte, error) {
	if obj == nil {
		return nil, errors.New("lpf: cannot marshal nil object")
	}
	return json.MarshalIndent(obj.Structure(), prefix, indent)
}

// Decode reads all LPF JSON text from r and parses it into a
// FeatureCollection. The reader is not retained beyond the call.
func Decode(r io.Reader) (*FeatureCollection, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return Unmarshal(data)
}

// Encode serializes an LPF object and writes the JSON text to w.
func Encode(w io.Writer, obj Object) error {
	data, err := Marshal(obj)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}
