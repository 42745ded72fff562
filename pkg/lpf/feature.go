package lpf

import "encoding/json"

// Feature represents a GeoJSON/LPF feature: one place record combining a
// geometry and an open property mapping. A nil Geometry means the place's
// location is unknown, which LPF permits. The "Feature" type tag is not a
// field; it is emitted by Structure and enforced on decode.
type Feature struct {
	// ID is the optional feature identifier, a string or a number.
	// LPF serializes it as "@id".
	ID any

	Geometry   *Geometry
	Properties map[string]any
}

// NewFeature creates a feature with the given geometry and an empty
// property mapping. geometry may be nil.
func NewFeature(geometry *Geometry) *Feature {
	return &Feature{
		Geometry:   geometry,
		Properties: make(map[string]any),
	}
}

// NewPointFeature creates a feature with a Point geometry at the given position.
func NewPointFeature(position []float64) *Feature {
	return NewFeature(NewPointGeometry(position))
}

// Property returns the value for key, or nil if the key is absent.
func (f *Feature) Property(key string) any {
	if f.Properties == nil {
		return nil
	}
	return f.Properties[key]
}

// SetProperty inserts or replaces the value for key.
func (f *Feature) SetProperty(key string, value any) {
	if f.Properties == nil {
		f.Properties = make(map[string]any)
	}
	f.Properties[key] = value
}

// DeleteProperty removes key from the property mapping.
func (f *Feature) DeleteProperty(key string) {
	delete(f.Properties, key)
}

// Structure returns the generic structural value for the feature.
// Properties are shallow-copied so later edits to the feature do not
// alias the returned mapping.
func (f *Feature) Structure() map[string]any {
	properties := make(map[string]any, len(f.Properties))
	for k, v := range f.Properties {
		properties[k] = v
	}

	m := map[string]any{
		"type":       "Feature",
		"properties": properties,
	}
	if f.Geometry != nil {
		m["geometry"] = f.Geometry.Structure()
	} else {
		m["geometry"] = nil
	}
	if f.ID != nil {
		m["@id"] = f.ID
	}
	return m
}

// MarshalJSON converts the feature into LPF conformant JSON.
func (f *Feature) MarshalJSON() ([]byte, error) {
	return json.Marshal(f.Structure())
}

// UnmarshalJSON decodes JSON into the feature, validating its shape.
func (f *Feature) UnmarshalJSON(data []byte) error {
	decoded, err := UnmarshalFeature(data)
	if err != nil {
		return err
	}
	*f = *decoded
	return nil
}

// UnmarshalFeature decodes the data into a validated feature.
func UnmarshalFeature(data []byte) (*Feature, error) {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, &ParseError{Err: err}
	}
	return DecodeFeature(v)
}

// DecodeFeature maps a generic structural value into a Feature.
func DecodeFeature(v any) (*Feature, error) {
	return decodeFeature(v, "")
}

func decodeFeature(v any, path string) (*Feature, error) {
	m, ok := v.(map[string]any)
	if !ok {
		return nil, errAt(path, "feature must be an object, got %s", describe(v))
	}

	rawType, present := m["type"]
	if !present {
		return nil, errAt(joinPath(path, "type"), "missing required field")
	}
	typeName, ok := rawType.(string)
	if !ok {
		return nil, errAt(joinPath(path, "type"), "must be a string, got %s", describe(rawType))
	}
	if typeName != "Feature" {
		return nil, errAt(joinPath(path, "type"), "expected %q, got %q", "Feature", typeName)
	}

	f := &Feature{Properties: make(map[string]any)}

	if raw, present := m["properties"]; present && raw != nil {
		properties, ok := raw.(map[string]any)
		if !ok {
			return nil, errAt(joinPath(path, "properties"), "must be an object, got %s", describe(raw))
		}
		f.Properties = properties
	}

	if raw, present := m["geometry"]; present && raw != nil {
		geometry, err := decodeGeometry(raw, joinPath(path, "geometry"))
		if err != nil {
			return nil, err
		}
		f.Geometry = geometry
	}

	if id, present := m["@id"]; present {
		f.ID = id
	} else if id, present := m["id"]; present {
		f.ID = id
	}

	return f, nil
}
