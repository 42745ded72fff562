// Package citation implements the LPF citation model: references to
// addressable components of bibliographic works, each with a CiTO-backed
// citation reason.
package citation

import (
	"fmt"

	"github.com/kass/go-lpf/pkg/text"
)

// Reasons maps the valid citation reason keywords to their CiTO
// property URIs.
var Reasons = map[string]string{
	"dataSource": "http://purl.org/spar/cito/citesAsDataSource",
	"evidence":   "http://purl.org/spar/cito/citesAsEvidence",
	"related":    "http://purl.org/spar/cito/citesAsRelated",
	"cites":      "http://purl.org/spar/cito/cites",
}

// Citation cites a single addressable component of a bibliographic work
// or other reference. Only ID and Reason are required.
type Citation struct {
	ID                Identifier
	ShortTitle        string
	FormattedCitation string
	AccessURL         string
	BibliographicURL  string
	CitationDetail    string
	Reason            string
}

// New creates a citation with the given identifier and reason. An empty
// reason defaults to "cites".
func New(id, reason string) (*Citation, error) {
	identifier, err := MakeIdentifier(id)
	if err != nil {
		return nil, err
	}
	if reason == "" {
		reason = "cites"
	}
	if _, ok := Reasons[reason]; !ok {
		return nil, fmt.Errorf("citation: invalid reason %q", reason)
	}
	return &Citation{ID: identifier, Reason: reason}, nil
}

// Validate checks the reason against the CiTO reason set and the URL
// fields against the URL identifier rules.
func (c *Citation) Validate() error {
	if c.ID.Value == "" {
		return fmt.Errorf("citation: missing identifier")
	}
	if _, ok := Reasons[c.Reason]; !ok {
		return fmt.Errorf("citation: invalid reason %q", c.Reason)
	}
	for _, u := range []string{c.AccessURL, c.BibliographicURL} {
		if u == "" {
			continue
		}
		if _, err := NewIdentifier(KindURL, u); err != nil {
			return err
		}
	}
	return nil
}

// Structure returns the generic structural value for the citation,
// normalizing the free-text fields and omitting empty ones.
func (c *Citation) Structure() map[string]any {
	m := map[string]any{
		"@id":    c.ID.Value,
		"reason": c.Reason,
	}
	optional := map[string]string{
		"short_title":        c.ShortTitle,
		"formatted_citation": c.FormattedCitation,
		"access_url":         c.AccessURL,
		"bibliographic_url":  c.BibliographicURL,
		"citation_detail":    c.CitationDetail,
	}
	for key, value := range optional {
		if normalized := text.Normalize(value); normalized != "" {
			m[key] = normalized
		}
	}
	return m
}

// Decode maps a generic structural value into a validated citation.
func Decode(v any) (*Citation, error) {
	m, ok := v.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("citation: must be an object")
	}
	id, err := stringField(m, "@id")
	if err != nil {
		return nil, err
	}
	reason, err := stringField(m, "reason")
	if err != nil {
		return nil, err
	}
	c, err := New(id, reason)
	if err != nil {
		return nil, err
	}
	if c.ShortTitle, err = stringField(m, "short_title"); err != nil {
		return nil, err
	}
	if c.FormattedCitation, err = stringField(m, "formatted_citation"); err != nil {
		return nil, err
	}
	if c.AccessURL, err = stringField(m, "access_url"); err != nil {
		return nil, err
	}
	if c.BibliographicURL, err = stringField(m, "bibliographic_url"); err != nil {
		return nil, err
	}
	if c.CitationDetail, err = stringField(m, "citation_detail"); err != nil {
		return nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func stringField(m map[string]any, key string) (string, error) {
	raw, present := m[key]
	if !present {
		if key == "@id" {
			return "", fmt.Errorf("citation: missing required field %q", key)
		}
		return "", nil
	}
	s, ok := raw.(string)
	if !ok {
		return "", fmt.Errorf("citation: field %q must be a string", key)
	}
	return s, nil
}
