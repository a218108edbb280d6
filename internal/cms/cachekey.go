// Copyright (c) 2026 Tripgate. All rights reserved.

package cms

import (
	"net/url"
	"sort"
	"strings"
)

// CacheKey derives the canonical dedup key for one content read.
//
// # Canonical Form
//
// The key is "endpoint?k1=v1&k2=v2&..." with parameter keys sorted
// lexicographically, so two calls built from structurally identical but
// differently-ordered parameter sets collide to the same key. Multi-valued
// parameters keep their value order — it is part of the request's meaning
// (e.g. orderby precedence).
func CacheKey(endpoint string, params url.Values) string {
	if len(params) == 0 {
		return endpoint
	}

	keys := make([]string, 0, len(params))
	for key := range params {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var builder strings.Builder
	builder.WriteString(endpoint)
	builder.WriteByte('?')

	first := true
	for _, key := range keys {
		for _, value := range params[key] {
			if !first {
				builder.WriteByte('&')
			}
			first = false
			builder.WriteString(url.QueryEscape(key))
			builder.WriteByte('=')
			builder.WriteString(url.QueryEscape(value))
		}
	}

	return builder.String()
}
