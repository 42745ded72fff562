package citation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMakeIdentifier(t *testing.T) {
	url, err := MakeIdentifier("https://www.wikidata.org/wiki/Q486972")
	require.NoError(t, err)
	assert.Equal(t, KindURL, url.Kind)
	assert.Equal(t, "https://www.wikidata.org/wiki/Q486972", url.String())

	alnum, err := MakeIdentifier("cite-001")
	require.NoError(t, err)
	assert.Equal(t, KindAlphanumeric, alnum.Kind)

	_, err = MakeIdentifier("no spaces allowed")
	assert.Error(t, err)
}

func TestNewIdentifierRejections(t *testing.T) {
	_, err := NewIdentifier(KindURL, "not-a-url")
	assert.Error(t, err)

	_, err = NewIdentifier(KindAlphanumeric, "")
	assert.Error(t, err)

	_, err = NewIdentifier(IdentifierKind("uuid"), "abc")
	assert.Error(t, err)
}

func TestNewCitation(t *testing.T) {
	c, err := New("cite-001", "")
	require.NoError(t, err)
	assert.Equal(t, "cites", c.Reason)

	c, err = New("cite-002", "dataSource")
	require.NoError(t, err)
	assert.Equal(t, "dataSource", c.Reason)

	_, err = New("cite-003", "disputes")
	assert.Error(t, err)
}

func TestCitationValidate(t *testing.T) {
	c, err := New("cite-001", "evidence")
	require.NoError(t, err)
	assert.NoError(t, c.Validate())

	c.AccessURL = "not a url"
	assert.Error(t, c.Validate())

	c.AccessURL = "https://www.wikidata.org/wiki/Q486972"
	assert.NoError(t, c.Validate())
}

func TestCitationStructure(t *testing.T) {
	c, err := New("https://www.wikidata.org/wiki/Q486972", "cites")
	require.NoError(t, err)
	c.ShortTitle = "Wikidata"
	c.CitationDetail = "  human settlement   (Q486972)"

	m := c.Structure()
	assert.Equal(t, "https://www.wikidata.org/wiki/Q486972", m["@id"])
	assert.Equal(t, "cites", m["reason"])
	assert.Equal(t, "Wikidata", m["short_title"])
	assert.Equal(t, "human settlement (Q486972)", m["citation_detail"])
	assert.NotContains(t, m, "access_url")
	assert.NotContains(t, m, "formatted_citation")
}

func TestDecodeCitation(t *testing.T) {
	c, err := Decode(map[string]any{
		"@id":               "https://www.wikidata.org/wiki/Q486972",
		"reason":            "dataSource",
		"short_title":       "Wikidata",
		"access_url":        "https://www.wikidata.org/wiki/Q486972",
		"bibliographic_url": "http://www.geonames.org/about.html",
		"citation_detail":   "human settlement (Q486972)",
	})
	require.NoError(t, err)
	assert.Equal(t, "dataSource", c.Reason)
	assert.Equal(t, "Wikidata", c.ShortTitle)
	assert.Equal(t, KindURL, c.ID.Kind)
}

func TestDecodeCitationRejections(t *testing.T) {
	testCases := []struct {
		name  string
		value any
	}{
		{"not an object", []any{1, 2}},
		{"missing id", map[string]any{"reason": "cites"}},
		{"bad reason", map[string]any{"@id": "cite-001", "reason": "disputes"}},
		{"bad access url", map[string]any{"@id": "cite-001", "access_url": "nope"}},
		{"non-string field", map[string]any{"@id": "cite-001", "short_title": 7.0}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Decode(tc.value)
			assert.Error(t, err)
		})
	}
}

func TestCitationRoundTrip(t *testing.T) {
	original, err := New("cite-001", "related")
	require.NoError(t, err)
	original.ShortTitle = "Pleiades"
	original.AccessURL = "https://pleiades.stoa.org/places/423025"

	decoded, err := Decode(original.Structure())
	require.NoError(t, err)
	assert.Equal(t, original, decoded)
}
