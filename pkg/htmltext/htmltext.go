// Copyright (c) 2026 Tripgate. All rights reserved.

// Package htmltext flattens HTML fragments returned by the content source
// into plain text.
//
// # Usage
//
// The CMS stores rendered fragments ("<p>Ha Long Bay &amp; beyond</p>\n")
// in every free-text field. Handlers never expose raw markup, so each field
// is passed through [Clean] at the fetching boundary.
package htmltext

import (
	"html"
	"regexp"
	"strings"
)

var (
	// tagPattern matches any HTML/XML tag, including self-closing ones.
	tagPattern = regexp.MustCompile(`<[^>]*>`)
	// spacePattern collapses runs of whitespace (including newlines) left
	// behind by removed block tags.
	spacePattern = regexp.MustCompile(`\s+`)
)

// Clean strips markup from an HTML fragment and decodes HTML entities.
//
// # Transformation Pipeline
//
// 1. Removes every tag ("<p>", "<br />", "[gallery]"-style tags are kept —
// only angle-bracket markup is stripped).
// 2. Decodes entities (&amp; → &, &#8217; → ’).
// 3. Collapses whitespace runs and trims the result.
func Clean(fragment string) string {
	if fragment == "" {
		return ""
	}

	// 1. Strip tags before decoding so encoded brackets survive
	text := tagPattern.ReplaceAllString(fragment, " ")

	// 2. Decode entities
	text = html.UnescapeString(text)

	// 3. Normalize whitespace
	text = spacePattern.ReplaceAllString(text, " ")

	return strings.TrimSpace(text)
}

// CleanAll applies [Clean] to every element of fragments, returning a new slice.
func CleanAll(fragments []string) []string {
	if fragments == nil {
		return nil
	}

	result := make([]string, len(fragments))
	for i, fragment := range fragments {
		result[i] = Clean(fragment)
	}

	return result
}
