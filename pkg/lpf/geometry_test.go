package lpf

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeGeometryKinds(t *testing.T) {
	testCases := []struct {
		name string
		json string
		kind GeometryType
	}{
		{"point", `{"type":"Point","coordinates":[12.48,41.89]}`, TypePoint},
		{"point with altitude", `{"type":"Point","coordinates":[12.48,41.89,21.0]}`, TypePoint},
		{"multipoint", `{"type":"MultiPoint","coordinates":[[12.48,41.89],[23.72,37.98]]}`, TypeMultiPoint},
		{"linestring", `{"type":"LineString","coordinates":[[12.48,41.89],[23.72,37.98]]}`, TypeLineString},
		{"multilinestring", `{"type":"MultiLineString","coordinates":[[[12.48,41.89],[23.72,37.98]]]}`, TypeMultiLineString},
		{"polygon", `{"type":"Polygon","coordinates":[[[0,0],[4,0],[4,4],[0,0]]]}`, TypePolygon},
		{"multipolygon", `{"type":"MultiPolygon","coordinates":[[[[0,0],[4,0],[4,4],[0,0]]]]}`, TypeMultiPolygon},
		{"collection", `{"type":"GeometryCollection","geometries":[{"type":"Point","coordinates":[1,2]}]}`, TypeGeometryCollection},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			g, err := UnmarshalGeometry([]byte(tc.json))
			require.NoError(t, err)
			assert.Equal(t, tc.kind, g.Type)
		})
	}
}

func TestDecodeGeometryRejections(t *testing.T) {
	testCases := []struct {
		name string
		json string
		path string
	}{
		{"missing type", `{"coordinates":[1,2]}`, "geometry.type"},
		{"unrecognized type", `{"type":"Circle","coordinates":[1,2]}`, "geometry.type"},
		{"missing coordinates", `{"type":"Point"}`, "geometry.coordinates"},
		{"too few coordinates", `{"type":"Point","coordinates":[1]}`, "geometry.coordinates"},
		{"too many coordinates", `{"type":"Point","coordinates":[1,2,3,4]}`, "geometry.coordinates"},
		{"non-numeric coordinate", `{"type":"Point","coordinates":[1,"x"]}`, "geometry.coordinates[1]"},
		{"coordinates not array", `{"type":"Point","coordinates":"1,2"}`, "geometry.coordinates"},
		{"single position linestring", `{"type":"LineString","coordinates":[[1,2]]}`, "geometry.coordinates"},
		{"unclosed ring", `{"type":"Polygon","coordinates":[[[0,0],[4,0],[4,4],[0,1]]]}`, "geometry.coordinates[0]"},
		{"short ring", `{"type":"Polygon","coordinates":[[[0,0],[4,0],[0,0]]]}`, "geometry.coordinates[0]"},
		{"collection missing geometries", `{"type":"GeometryCollection"}`, "geometry.geometries"},
		{"bad nested geometry", `{"type":"GeometryCollection","geometries":[{"type":"Point","coordinates":[1]}]}`, "geometry.geometries[0].coordinates"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := UnmarshalGeometry([]byte(tc.json))
			require.Error(t, err)

			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tc.path, verr.Path)
		})
	}
}

func TestGeometryRoundTrip(t *testing.T) {
	original := NewPolygonGeometry([][][]float64{
		{{0, 0}, {4, 0}, {4, 4}, {0, 4}, {0, 0}},
	})
	require.NoError(t, original.Validate())

	data, err := Marshal(original)
	require.NoError(t, err)

	decoded, err := UnmarshalGeometry(data)
	require.NoError(t, err)
	assert.Equal(t, original, decoded)
}

func TestGeometryCollectionRoundTrip(t *testing.T) {
	original := NewCollectionGeometry(
		NewPointGeometry([]float64{12.48, 41.89}),
		NewLineStringGeometry([][]float64{{0, 0}, {1, 1}}),
	)
	require.NoError(t, original.Validate())

	data, err := Marshal(original)
	require.NoError(t, err)

	decoded, err := UnmarshalGeometry(data)
	require.NoError(t, err)
	assert.Equal(t, original, decoded)
}

func TestGeometryValidate(t *testing.T) {
	valid := NewPointGeometry([]float64{12.48, 41.89, 21.0})
	assert.NoError(t, valid.Validate())

	invalid := NewPointGeometry([]float64{12.48})
	err := invalid.Validate()
	require.Error(t, err)

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "geometry.coordinates", verr.Path)
}

func TestGeometryParseError(t *testing.T) {
	_, err := UnmarshalGeometry([]byte(`{"type":"Point",`))
	require.Error(t, err)

	var perr *ParseError
	assert.ErrorAs(t, err, &perr)
}
