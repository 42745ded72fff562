package citation

import (
	"fmt"
	"net/url"
	"unicode"

	"github.com/kass/go-lpf/pkg/text"
)

// IdentifierKind names the two identifier forms LPF records use.
type IdentifierKind string

const (
	KindURL          IdentifierKind = "url"
	KindAlphanumeric IdentifierKind = "alphanumeric"
)

// Identifier is a string value of a particular kind. URL identifiers
// must parse as absolute URLs; alphanumeric identifiers may contain only
// letters, digits, and hyphens.
type Identifier struct {
	Kind  IdentifierKind
	Value string
}

// NewIdentifier builds an identifier of the given kind, validating the
// value against the kind's rules.
func NewIdentifier(kind IdentifierKind, value string) (Identifier, error) {
	value = text.Normalize(value)
	switch kind {
	case KindURL:
		if !validURL(value) {
			return Identifier{}, fmt.Errorf("citation: %q is not a valid URL", value)
		}
	case KindAlphanumeric:
		if !alphanumeric(value) {
			return Identifier{}, fmt.Errorf("citation: alphanumeric identifier %q must contain only letters, digits, and hyphens", value)
		}
	default:
		return Identifier{}, fmt.Errorf("citation: invalid identifier kind %q", string(kind))
	}
	return Identifier{Kind: kind, Value: value}, nil
}

// MakeIdentifier builds an identifier from a bare string: values that
// parse as absolute URLs become URL identifiers, anything else must be
// alphanumeric.
func MakeIdentifier(value string) (Identifier, error) {
	if validURL(text.Normalize(value)) {
		return NewIdentifier(KindURL, value)
	}
	return NewIdentifier(KindAlphanumeric, value)
}

func (id Identifier) String() string {
	return id.Value
}

func validURL(value string) bool {
	u, err := url.Parse(value)
	return err == nil && u.Scheme != "" && u.Host != ""
}

func alphanumeric(value string) bool {
	if value == "" {
		return false
	}
	for _, r := range value {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '-' {
			return false
		}
	}
	return true
}
