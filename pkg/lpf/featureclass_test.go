package lpf

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kass/go-lpf/pkg/citation"
)

func TestNewFeatureClass(t *testing.T) {
	fc, err := NewFeatureClass("https://www.wikidata.org/wiki/Q486972", "human settlement@en")
	require.NoError(t, err)

	assert.Equal(t, "https://www.wikidata.org/wiki/Q486972", fc.ID())
	assert.Equal(t, "human settlement", fc.Label().Text)
	assert.Equal(t, "en", fc.Label().Lang)
}

func TestFeatureClassUntaggedLabel(t *testing.T) {
	fc, err := NewFeatureClass("settlement01", "asentamiento")
	require.NoError(t, err)
	assert.Equal(t, "und", fc.Label().Lang)

	require.NoError(t, fc.SetLabel("asentamiento", "es"))
	assert.Equal(t, "es", fc.Label().Lang)
}

func TestFeatureClassLabelTagMismatch(t *testing.T) {
	fc, err := NewFeatureClass("settlement01", "inhabited place@en")
	require.NoError(t, err)

	err = fc.SetLabel("asentamiento@es", "en")
	assert.Error(t, err)
}

func TestFeatureClassAliases(t *testing.T) {
	fc, err := NewFeatureClass("settlement01", "human settlement@en")
	require.NoError(t, err)

	require.NoError(t, fc.AddAlias("inhabited place@en"))
	require.NoError(t, fc.AddAlias("asentamiento@es"))
	require.NoError(t, fc.AddAlias("inhabited place@en")) // duplicate ignored

	aliases := fc.Aliases()
	require.Len(t, aliases, 2)
	assert.Equal(t, "inhabited place", aliases[0].Text)
	assert.Equal(t, "asentamiento", aliases[1].Text)
	assert.Equal(t, "es", aliases[1].Lang)
}

func TestFeatureClassCitations(t *testing.T) {
	fc, err := NewFeatureClass("https://www.wikidata.org/wiki/Q486972", "human settlement@en")
	require.NoError(t, err)

	cite, err := citation.New("https://www.wikidata.org/wiki/Q486972", "cites")
	require.NoError(t, err)
	cite.ShortTitle = "Wikidata"
	cite.AccessURL = "https://www.wikidata.org/wiki/Q486972"
	cite.CitationDetail = "human settlement (Q486972)"

	require.NoError(t, fc.AddCitation(cite))
	require.Len(t, fc.Citations, 1)

	bad := &citation.Citation{Reason: "disagrees"}
	assert.Error(t, fc.AddCitation(bad))
}

func TestFeatureClassStructure(t *testing.T) {
	fc, err := NewFeatureClass("https://www.wikidata.org/wiki/Q486972", "human settlement@en")
	require.NoError(t, err)
	require.NoError(t, fc.AddAlias("asentamiento@es"))
	fc.When = &When{Earliest: "-0750", Latest: "0476"}

	m := fc.Structure()
	assert.Equal(t, "https://www.wikidata.org/wiki/Q486972", m["@id"])
	assert.Equal(t, map[string]any{"text": "human settlement", "lang": "en"}, m["label"])
	assert.Equal(t, []any{map[string]any{"text": "asentamiento", "lang": "es"}}, m["aliases"])
	assert.Equal(t, map[string]any{"earliest": "-0750", "latest": "0476"}, m["when"])
}
