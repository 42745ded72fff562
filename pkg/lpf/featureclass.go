package lpf

import (
	"fmt"

	"github.com/kass/go-lpf/pkg/citation"
	"github.com/kass/go-lpf/pkg/lang"
)

// When bounds the validity of a record in time. Values are ISO 8601
// year or date strings; either bound may be empty.
type When struct {
	Earliest string
	Latest   string
}

// FeatureClass is an LPF feature-type authority record: an identified
// place category with a language-tagged label, aliases in other
// languages, supporting citations, and an optional temporal bound.
type FeatureClass struct {
	id      citation.Identifier
	label   lang.String
	aliases lang.MultiString

	Citations []*citation.Citation
	When      *When
}

// NewFeatureClass creates a feature class from an identifier string and
// a label in "label@lang" shorthand (bare labels are tagged "und").
func NewFeatureClass(id, label string) (*FeatureClass, error) {
	identifier, err := citation.MakeIdentifier(id)
	if err != nil {
		return nil, err
	}
	fc := &FeatureClass{id: identifier}
	if err := fc.SetLabel(label, ""); err != nil {
		return nil, err
	}
	return fc, nil
}

// ID returns the feature class identifier value.
func (fc *FeatureClass) ID() string {
	return fc.id.Value
}

// Label returns the language-tagged label.
func (fc *FeatureClass) Label() lang.String {
	return fc.label
}

// SetLabel sets the label. The label may carry a "label@lang" suffix; an
// explicit tag argument must agree with any suffix tag, and supplies the
// language when the label itself is untagged.
func (fc *FeatureClass) SetLabel(label, tag string) error {
	parsed, err := lang.Parse(label)
	if err != nil {
		return err
	}
	if tag != "" && tag != lang.Und {
		if parsed.Lang != lang.Und && parsed.Lang != tag {
			return fmt.Errorf("lpf: label language %q does not match tag %q", parsed.Lang, tag)
		}
		if parsed, err = lang.New(parsed.Text, tag); err != nil {
			return err
		}
	}
	fc.label = parsed
	return nil
}

// Aliases returns the alias strings in insertion order.
func (fc *FeatureClass) Aliases() []lang.String {
	return fc.aliases.Strings()
}

// AddAlias adds a single alias in "alias@lang" shorthand.
func (fc *FeatureClass) AddAlias(alias string) error {
	return fc.aliases.AddText(alias)
}

// SetAliases replaces all aliases.
func (fc *FeatureClass) SetAliases(aliases []lang.String) {
	fc.aliases = lang.MultiString{}
	for _, a := range aliases {
		fc.aliases.Add(a)
	}
}

// AddCitation validates and appends a supporting citation.
func (fc *FeatureClass) AddCitation(c *citation.Citation) error {
	if err := c.Validate(); err != nil {
		return err
	}
	fc.Citations = append(fc.Citations, c)
	return nil
}

// Structure returns the generic structural value for the feature class.
func (fc *FeatureClass) Structure() map[string]any {
	m := map[string]any{
		"@id":   fc.id.Value,
		"label": map[string]any{"text": fc.label.Text, "lang": fc.label.Lang},
	}
	if fc.aliases.Len() > 0 {
		aliases := make([]any, 0, fc.aliases.Len())
		for _, a := range fc.aliases.Strings() {
			aliases = append(aliases, map[string]any{"text": a.Text, "lang": a.Lang})
		}
		m["aliases"] = aliases
	}
	if len(fc.Citations) > 0 {
		citations := make([]any, len(fc.Citations))
		for i, c := range fc.Citations {
			citations[i] = c.Structure()
		}
		m["citations"] = citations
	}
	if fc.When != nil {
		when := map[string]any{}
		if fc.When.Earliest != "" {
			when["earliest"] = fc.When.Earliest
		}
		if fc.When.Latest != "" {
			when["latest"] = fc.When.Latest
		}
		m["when"] = when
	}
	return m
}
