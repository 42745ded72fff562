// Package aat matches gazetteer labels against Getty Art and
// Architecture Thesaurus (AAT) terms for feature-class augmentation.
package aat

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/kass/go-lpf/pkg/lang"
)

// Label is one term label in the terms file.
type Label struct {
	Text string `json:"text"`
	Lang string `json:"lang,omitempty"`
}

// Term is a matched AAT term: its identifier and a display name,
// English-preferred.
type Term struct {
	ID   string
	Name string
}

// Matcher looks up AAT term ids by label text. Matching is
// case-insensitive on the normalized label text.
type Matcher struct {
	terms map[string][]string // lowercased label text -> term ids
	names map[string]string   // term id -> preferred display name
}

// NewMatcher builds a matcher from raw term data: a mapping from term id
// to the term's labels. The first English label becomes the display
// name; terms without one fall back to their first label.
func NewMatcher(raw map[string][]Label) *Matcher {
	m := &Matcher{
		terms: make(map[string][]string),
		names: make(map[string]string),
	}
	for termID, labels := range raw {
		for _, label := range labels {
			key := strings.ToLower(strings.TrimSpace(label.Text))
			if key == "" {
				continue
			}
			if !containsString(m.terms[key], termID) {
				m.terms[key] = append(m.terms[key], termID)
			}
			if label.Lang == "en" {
				if _, ok := m.names[termID]; !ok {
					m.names[termID] = key
				}
			}
		}
		if _, ok := m.names[termID]; !ok && len(labels) > 0 {
			m.names[termID] = strings.ToLower(strings.TrimSpace(labels[0].Text))
		}
	}
	return m
}

// LoadMatcher reads a terms JSON file (term id -> list of labels) and
// builds a matcher from it.
func LoadMatcher(path string) (*Matcher, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read terms file: %w", err)
	}
	var raw map[string][]Label
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse terms file: %w", err)
	}
	return NewMatcher(raw), nil
}

// Match returns the AAT terms whose labels match the given label or any
// of the aliases. Results are sorted by term id for stable output.
func (m *Matcher) Match(label lang.String, aliases ...lang.String) []Term {
	candidates := []string{strings.ToLower(strings.TrimSpace(label.Text))}
	for _, alias := range aliases {
		candidates = append(candidates, strings.ToLower(strings.TrimSpace(alias.Text)))
	}

	hits := make(map[string]bool)
	for _, candidate := range candidates {
		for _, termID := range m.terms[candidate] {
			hits[termID] = true
		}
	}

	results := make([]Term, 0, len(hits))
	for termID := range hits {
		results = append(results, Term{ID: termID, Name: m.names[termID]})
	}
	sort.Slice(results, func(i, j int) bool { return results[i].ID < results[j].ID })
	return results
}

// Size returns the number of distinct label keys in the matcher.
func (m *Matcher) Size() int {
	return len(m.terms)
}

func containsString(items []string, s string) bool {
	for _, item := range items {
		if item == s {
			return true
		}
	}
	return false
}
