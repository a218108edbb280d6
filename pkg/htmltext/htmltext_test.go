// Copyright (c) 2026 Tripgate. All rights reserved.

package htmltext_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nguyenvo/tripgate/pkg/htmltext"
)

/*
TestClean verifies tag stripping, entity decoding, and whitespace collapsing.
*/
func TestClean(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"empty", "", ""},
		{"plain_text", "Ha Long Bay", "Ha Long Bay"},
		{"paragraph", "<p>Ha Long Bay cruise</p>\n", "Ha Long Bay cruise"},
		{"ampersand", "Bay &amp; beyond", "Bay & beyond"},
		{"curly_quote", "Vietnam&#8217;s coast", "Vietnam’s coast"},
		{"nested_tags", "<div><strong>3 days</strong> / <em>2 nights</em></div>", "3 days / 2 nights"},
		{"self_closing", "line one<br />line two", "line one line two"},
		{"encoded_brackets_survive", "a &lt;b&gt; c", "a <b> c"},
		{"whitespace_runs", "<p>one</p>\n\n<p>two</p>", "one two"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, htmltext.Clean(tt.input))
		})
	}
}

/*
TestCleanAll verifies element-wise cleaning and nil passthrough.
*/
func TestCleanAll(t *testing.T) {
	assert.Nil(t, htmltext.CleanAll(nil))

	cleaned := htmltext.CleanAll([]string{"<p>one</p>", "two &amp; three"})
	assert.Equal(t, []string{"one", "two & three"}, cleaned)
}
