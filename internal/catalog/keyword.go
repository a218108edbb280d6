// Copyright (c) 2026 Tripgate. All rights reserved.

package catalog

import (
	"sort"
	"strings"

	"github.com/nguyenvo/tripgate/internal/cms"
	"github.com/nguyenvo/tripgate/pkg/slug"
)

// # Keyword Category Matching
//
// Fallback classification for tours that carry no explicit taxonomy
// assignment: a tour is matched to a category when any normalized keyword
// variant of the category appears in the lowercased tour title. Keywords are
// tried longest-first so specific multi-word categories win over short
// generic substrings ("city food tour" must match before "tour").

// keywordEntry binds one normalized keyword variant to its source category.
type keywordEntry struct {
	keyword string
	term    cms.TaxonomyTerm
}

// KeywordMatcher classifies tour titles into taxonomy categories.
//
// It is immutable after construction and safe for concurrent use.
type KeywordMatcher struct {
	entries []keywordEntry
}

// NewKeywordMatcher builds the keyword table for the given categories.
//
// # Variants
//
// Each category contributes its lowercased name, its slug, the slug with
// hyphens as spaces, the slug with hyphens removed, and the ASCII-normalized
// slug of its name (covers accented source names). Duplicate variants keep
// the first category, matching the first-wins lookup contract.
func NewKeywordMatcher(categories []cms.TaxonomyTerm) *KeywordMatcher {
	seen := make(map[string]struct{})
	var entries []keywordEntry

	add := func(keyword string, term cms.TaxonomyTerm) {
		keyword = strings.TrimSpace(keyword)
		if keyword == "" {
			return
		}
		if _, dup := seen[keyword]; dup {
			return
		}
		seen[keyword] = struct{}{}
		entries = append(entries, keywordEntry{keyword: keyword, term: term})
	}

	for _, category := range categories {
		add(strings.ToLower(category.Name), category)
		add(strings.ToLower(category.Slug), category)
		add(strings.ReplaceAll(strings.ToLower(category.Slug), "-", " "), category)
		add(strings.ReplaceAll(strings.ToLower(category.Slug), "-", ""), category)
		add(slug.From(category.Name), category)
	}

	// Longest keyword first; ties break lexicographically for determinism.
	sort.SliceStable(entries, func(i, j int) bool {
		if len(entries[i].keyword) != len(entries[j].keyword) {
			return len(entries[i].keyword) > len(entries[j].keyword)
		}
		return entries[i].keyword < entries[j].keyword
	})

	return &KeywordMatcher{entries: entries}
}

// Match classifies a tour title.
//
// The first (longest) keyword contained in the lowercased title wins. No
// match reports false — the tour is "uncategorized", which is a normal
// state, not an error.
func (m *KeywordMatcher) Match(title string) (cms.TaxonomyTerm, bool) {
	lowered := strings.ToLower(title)

	for _, entry := range m.entries {
		if strings.Contains(lowered, entry.keyword) {
			return entry.term, true
		}
	}

	return cms.TaxonomyTerm{}, false
}
