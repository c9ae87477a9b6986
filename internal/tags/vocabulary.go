// Package tags implements the controlled tag vocabulary for catalog books.
package tags

import "strings"

// Vocabulary is a fixed set of allowed book tags. Matching is exact and
// case-sensitive; the canonical spellings come from configuration.
type Vocabulary struct {
	allowed map[string]struct{}
	ordered []string
}

// NewVocabulary builds a vocabulary from the configured tag list.
func NewVocabulary(allowed []string) *Vocabulary {
	v := &Vocabulary{
		allowed: make(map[string]struct{}, len(allowed)),
		ordered: make([]string, 0, len(allowed)),
	}
	for _, tag := range allowed {
		tag = strings.TrimSpace(tag)
		if tag == "" {
			continue
		}
		if _, ok := v.allowed[tag]; ok {
			continue
		}
		v.allowed[tag] = struct{}{}
		v.ordered = append(v.ordered, tag)
	}
	return v
}

// Contains reports whether the tag is part of the vocabulary.
func (v *Vocabulary) Contains(tag string) bool {
	_, ok := v.allowed[tag]
	return ok
}

// All returns the vocabulary in its configured order.
func (v *Vocabulary) All() []string {
	out := make([]string, len(v.ordered))
	copy(out, v.ordered)
	return out
}

// Normalize filters a tag list down to known vocabulary entries.
// Unknown tags are dropped silently, duplicates are collapsed, and the
// caller's order is preserved. Always returns a non-nil slice.
func (v *Vocabulary) Normalize(in []string) []string {
	out := make([]string, 0, len(in))
	seen := make(map[string]struct{}, len(in))
	for _, tag := range in {
		tag = strings.TrimSpace(tag)
		if !v.Contains(tag) {
			continue
		}
		if _, dup := seen[tag]; dup {
			continue
		}
		seen[tag] = struct{}{}
		out = append(out, tag)
	}
	return out
}
