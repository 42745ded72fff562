package lpf

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeFeature(t *testing.T) {
	f, err := UnmarshalFeature([]byte(`{
		"type": "Feature",
		"@id": "https://pleiades.stoa.org/places/423025",
		"properties": {"title": "Roma", "ccodes": ["IT"]},
		"geometry": {"type": "Point", "coordinates": [12.48, 41.89]}
	}`))
	require.NoError(t, err)

	assert.Equal(t, "https://pleiades.stoa.org/places/423025", f.ID)
	assert.Equal(t, "Roma", f.Property("title"))
	require.NotNil(t, f.Geometry)
	assert.Equal(t, TypePoint, f.Geometry.Type)
	assert.Equal(t, []float64{12.48, 41.89}, f.Geometry.Point)
}

func TestDecodeFeatureWithoutGeometry(t *testing.T) {
	// LPF permits features whose location is unknown.
	testCases := []struct {
		name string
		json string
	}{
		{"absent", `{"type":"Feature","properties":{}}`},
		{"null", `{"type":"Feature","properties":{},"geometry":null}`},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			f, err := UnmarshalFeature([]byte(tc.json))
			require.NoError(t, err)
			assert.Nil(t, f.Geometry)
		})
	}
}

func TestDecodeFeatureDefaultsProperties(t *testing.T) {
	f, err := UnmarshalFeature([]byte(`{"type":"Feature"}`))
	require.NoError(t, err)
	assert.NotNil(t, f.Properties)
	assert.Empty(t, f.Properties)
}

func TestDecodeFeatureRejections(t *testing.T) {
	testCases := []struct {
		name    string
		json    string
		path    string
		message string
	}{
		{"wrong type tag", `{"type":"Place","properties":{}}`, "type", `"Place"`},
		{"missing type", `{"properties":{}}`, "type", "missing"},
		{"properties array", `{"type":"Feature","properties":[1,2,3]}`, "properties", "array"},
		{"properties string", `{"type":"Feature","properties":"x"}`, "properties", "string"},
		{"bad geometry", `{"type":"Feature","properties":{},"geometry":{"type":"Point","coordinates":[1]}}`, "geometry.coordinates", "coordinates"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := UnmarshalFeature([]byte(tc.json))
			require.Error(t, err)

			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tc.path, verr.Path)
			assert.Contains(t, verr.Message, tc.message)
		})
	}
}

func TestDecodeFeatureNumericID(t *testing.T) {
	f, err := UnmarshalFeature([]byte(`{"type":"Feature","id":423025,"properties":{}}`))
	require.NoError(t, err)
	assert.Equal(t, float64(423025), f.ID)
}

func TestFeaturePropertyAccess(t *testing.T) {
	f := NewFeature(nil)

	assert.Nil(t, f.Property("title"))

	f.SetProperty("title", "Roma")
	assert.Equal(t, "Roma", f.Property("title"))

	f.SetProperty("title", "Rome")
	assert.Equal(t, "Rome", f.Property("title"))

	f.DeleteProperty("title")
	assert.Nil(t, f.Property("title"))
}

func TestFeatureStructureCopiesProperties(t *testing.T) {
	f := NewPointFeature([]float64{12.48, 41.89})
	f.SetProperty("title", "Roma")

	m := f.Structure()
	properties := m["properties"].(map[string]any)
	properties["title"] = "mutated"

	assert.Equal(t, "Roma", f.Property("title"))
}

func TestFeatureRoundTrip(t *testing.T) {
	original := NewPointFeature([]float64{12.48, 41.89})
	original.ID = "roma-1"
	original.SetProperty("title", "Roma")

	data, err := Marshal(original)
	require.NoError(t, err)

	decoded, err := UnmarshalFeature(data)
	require.NoError(t, err)
	assert.Equal(t, original, decoded)
}
