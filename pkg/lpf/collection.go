package lpf

import "encoding/json"

// DefaultContext is the canonical LPF JSON-LD context document.
const DefaultContext = "https://raw.githubusercontent.com/LinkedPasts/linked-places/master/linkedplaces-context-v1.1.jsonld"

// FeatureCollection represents an ordered set of features plus an
// optional JSON-LD context. Feature order is meaningful and preserved
// through encode and decode. The "FeatureCollection" type tag is
// emitted by Structure and enforced on decode.
type FeatureCollection struct {
	// Context is the JSON-LD context: a string URI or a structured
	// context value. nil means unset.
	Context any

	Features []*Feature
}

// NewFeatureCollection creates an empty collection with the default LPF context.
func NewFeatureCollection() *FeatureCollection {
	return &FeatureCollection{
		Context:  DefaultContext,
		Features: make([]*Feature, 0),
	}
}

// AddFeature appends a feature to the collection, preserving order.
func (fc *FeatureCollection) AddFeature(f *Feature) *FeatureCollection {
	fc.Features = append(fc.Features, f)
	return fc
}

// RemoveFeature removes and returns the feature at index i, keeping the
// order of the remaining features. It returns nil if i is out of range.
func (fc *FeatureCollection) RemoveFeature(i int) *Feature {
	if i < 0 || i >= len(fc.Features) {
		return nil
	}
	f := fc.Features[i]
	fc.Features = append(fc.Features[:i], fc.Features[i+1:]...)
	return f
}

// Len returns the number of features in the collection.
func (fc *FeatureCollection) Len() int {
	return len(fc.Features)
}

// Structure returns the generic structural value for the collection.
func (fc *FeatureCollection) Structure() map[string]any {
	features := make([]any, len(fc.Features))
	for i, f := range fc.Features {
		features[i] = f.Structure()
	}
	m := map[string]any{
		"type":     "FeatureCollection",
		"features": features,
	}
	if fc.Context != nil {
		m["@context"] = fc.Context
	}
	return m
}

// MarshalJSON converts the collection into LPF conformant JSON.
func (fc *FeatureCollection) MarshalJSON() ([]byte, error) {
	return json.Marshal(fc.Structure())
}

// UnmarshalJSON decodes JSON into the collection, validating its shape.
func (fc *FeatureCollection) UnmarshalJSON(data []byte) error {
	decoded, err := Unmarshal(data)
	if err != nil {
		return err
	}
	*fc = *decoded
	return nil
}

// DecodeFeatureCollection maps a generic structural value into a
// FeatureCollection. The first shape violation aborts the whole decode;
// no partial collection is ever returned.
func DecodeFeatureCollection(v any) (*FeatureCollection, error) {
	m, ok := v.(map[string]any)
	if !ok {
		return nil, errAt("", "document must be an object, got %s", describe(v))
	}

	rawType, present := m["type"]
	if !present {
		return nil, errAt("type", "missing required field")
	}
	typeName, ok := rawType.(string)
	if !ok {
		return nil, errAt("type", "must be a string, got %s", describe(rawType))
	}
	if typeName != "FeatureCollection" {
		return nil, errAt("type", "expected %q, got %q", "FeatureCollection", typeName)
	}

	rawFeatures, present := m["features"]
	if !present {
		return nil, errAt("features", "missing required field")
	}
	items, ok := rawFeatures.([]any)
	if !ok {
		return nil, errAt("features", "must be an array, got %s", describe(rawFeatures))
	}

	fc := &FeatureCollection{Features: make([]*Feature, len(items))}
	for i, item := range items {
		f, err := decodeFeature(item, indexPath("features", i))
		if err != nil {
			return nil, err
		}
		fc.Features[i] = f
	}

	// "@context" is the LPF spelling; plain "context" is accepted as a
	// fallback when "@context" is absent.
	if ctx, present := m["@context"]; present {
		fc.Context = ctx
	} else if ctx, present := m["context"]; present {
		fc.Context = ctx
	}

	return fc, nil
}
