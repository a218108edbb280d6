// Copyright (c) 2026 Tripgate. All rights reserved.

package i18n_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nguyenvo/tripgate/internal/i18n"
)

/*
TestParse verifies the closed locale set.
*/
func TestParse(t *testing.T) {
	tests := []struct {
		raw      string
		expected i18n.Locale
		ok       bool
	}{
		{"en", i18n.LocaleEN, true},
		{"zh", i18n.LocaleZH, true},
		{"fr", "", false},
		{"", "", false},
		{"EN", "", false},
	}

	for _, tt := range tests {
		t.Run("parse_"+tt.raw, func(t *testing.T) {
			locale, ok := i18n.Parse(tt.raw)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.expected, locale)
			}
		})
	}
}

/*
TestPathPrefix verifies the canonical prefix invariant: empty for the
default locale, a single fixed prefix otherwise.
*/
func TestPathPrefix(t *testing.T) {
	assert.Equal(t, "", i18n.LocaleEN.PathPrefix())
	assert.Equal(t, "/zh", i18n.LocaleZH.PathPrefix())
	assert.True(t, i18n.LocaleEN.IsDefault())
	assert.False(t, i18n.LocaleZH.IsDefault())
	assert.Equal(t, i18n.LocaleEN, i18n.Default())
}

/*
TestDisplayName verifies dictionary lookup and the no-op fallback contract.
*/
func TestDisplayName(t *testing.T) {
	name, ok := i18n.DisplayName(i18n.LocaleZH, i18n.TaxonomyDestination, "ha-long-bay")
	assert.True(t, ok)
	assert.Equal(t, "下龙湾", name)

	// Missing slug: absence is a fallback signal, never an error.
	_, ok = i18n.DisplayName(i18n.LocaleZH, i18n.TaxonomyActivity, "no-such-activity")
	assert.False(t, ok)

	// The default locale has no dictionary at all: same signal.
	_, ok = i18n.DisplayName(i18n.LocaleEN, i18n.TaxonomyActivity, "city-tours")
	assert.False(t, ok)
}
