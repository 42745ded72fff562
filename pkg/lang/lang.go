// Package lang implements language-tagged strings for LPF labels and
// aliases, including the "text@lang" shorthand used in gazetteer input.
package lang

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"golang.org/x/text/language"

	"github.com/kass/go-lpf/pkg/text"
)

// Und is the tag used when the language of a string is unknown.
const Und = "und"

// String is a text value paired with a lowercase BCP 47 language tag.
type String struct {
	Text string
	Lang string
}

var taggedString = regexp.MustCompile(`^(?P<text>[^@]+?)(@(?P<lang>[a-zA-Z-]+))?$`)

// New builds a language-tagged string. The text is normalized and must
// be non-empty; the tag is validated against BCP 47 and lowercased, with
// an empty tag mapped to "und".
func New(value, tag string) (String, error) {
	value = text.Normalize(value)
	if value == "" {
		return String{}, errors.New("lang: text must not be empty")
	}
	if tag == "" || tag == Und {
		return String{Text: value, Lang: Und}, nil
	}
	parsed, err := language.Parse(tag)
	if err != nil {
		return String{}, fmt.Errorf("lang: invalid language tag %q: %w", tag, err)
	}
	return String{Text: value, Lang: strings.ToLower(parsed.String())}, nil
}

// Parse builds a language-tagged string from the "text@lang" shorthand.
// Input without an @-suffix yields an "und"-tagged string.
func Parse(s string) (String, error) {
	m := taggedString.FindStringSubmatch(s)
	if m == nil {
		return New(s, "")
	}
	return New(m[1], m[3])
}

// String renders the value in "text@lang" shorthand.
func (s String) String() string {
	if s.Lang == "" || s.Lang == Und {
		return s.Text
	}
	return s.Text + "@" + s.Lang
}

// MultiString is an ordered set of language-tagged strings. Duplicate
// text/lang pairs are ignored on insert; insertion order is preserved.
type MultiString struct {
	values []String
}

// Add inserts a tagged string, ignoring exact duplicates.
func (m *MultiString) Add(s String) {
	for _, existing := range m.values {
		if existing == s {
			return
		}
	}
	m.values = append(m.values, s)
}

// AddText parses "text@lang" shorthand and inserts the result.
func (m *MultiString) AddText(s string) error {
	parsed, err := Parse(s)
	if err != nil {
		return err
	}
	m.Add(parsed)
	return nil
}

// Strings returns the tagged strings in insertion order.
func (m *MultiString) Strings() []String {
	out := make([]String, len(m.values))
	copy(out, m.values)
	return out
}

// ByLang returns the strings tagged with the given language.
func (m *MultiString) ByLang(tag string) []String {
	var out []String
	for _, s := range m.values {
		if s.Lang == strings.ToLower(tag) {
			out = append(out, s)
		}
	}
	return out
}

// Len returns the number of stored strings.
func (m *MultiString) Len() int {
	return len(m.values)
}
