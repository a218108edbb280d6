// Copyright (c) 2026 Tripgate. All rights reserved.

/*
Package i18n defines the closed locale set served by the gateway and the
locale dictionaries used to derive taxonomy display names.

Architecture:

  - Locale: a small closed enumeration ("en" default, "zh"), each with
    exactly one canonical path prefix.
  - Dictionary: static per-locale taxonomy tables. A term's display name is
    computed per request from slug + locale; the source name is the fallback.

No CMS round-trip is involved: the dictionaries ship with the binary, so a
missing translation can never fail a render.
*/
package i18n

// Locale identifies one supported site language.
type Locale string

const (
	// LocaleEN is the default locale, served at the bare path (no prefix).
	LocaleEN Locale = "en"

	// LocaleZH is the secondary locale, served under the /zh prefix.
	LocaleZH Locale = "zh"
)

// Default returns the locale served at unprefixed paths.
func Default() Locale { return LocaleEN }

// All returns every supported locale, default first.
func All() []Locale { return []Locale{LocaleEN, LocaleZH} }

// Parse maps a raw string to a supported [Locale].
//
// It reports false for anything outside the closed set — callers fall back
// to [Default] rather than serving an unknown language.
func Parse(raw string) (Locale, bool) {
	switch Locale(raw) {
	case LocaleEN:
		return LocaleEN, true
	case LocaleZH:
		return LocaleZH, true
	default:
		return "", false
	}
}

// String returns the locale code ("en", "zh").
func (l Locale) String() string { return string(l) }

// IsDefault reports whether l is the default locale.
func (l Locale) IsDefault() bool { return l == Default() }

// PathPrefix returns the canonical URL prefix for the locale.
//
// # Invariant
//
// Exactly one prefix form exists per locale: "" for the default locale,
// "/zh" otherwise. No path is ever served under two prefix representations.
func (l Locale) PathPrefix() string {
	if l.IsDefault() {
		return ""
	}
	return "/" + string(l)
}
