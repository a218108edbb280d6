// Copyright (c) 2026 Tripgate. All rights reserved.

package mediaproxy

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

/*
TestValidateTarget runs the admission pipeline over representative attacker
and operator inputs. The uploads-prefix check fires before the host check, so
even an allow-listed host cannot be used to reach arbitrary paths.
*/
func TestValidateTarget(t *testing.T) {
	options := Options{
		OriginHosts:       []string{"cms.example.com"},
		AllowedHostSuffix: ".trycloudflare.com",
	}

	tests := []struct {
		name string
		raw  string
		ok   bool
	}{
		{"allow_listed_origin", "https://cms.example.com/wp-content/uploads/2024/a.jpg", true},
		{"tunnel_suffix", "https://media-tunnel.trycloudflare.com/wp-content/uploads/b.png", true},
		{"http_scheme", "http://cms.example.com/wp-content/uploads/c.webp", true},
		{"host_case_insensitive", "https://CMS.Example.COM/wp-content/uploads/d.jpg", true},

		{"missing", "", false},
		{"relative", "/wp-content/uploads/a.jpg", false},
		{"bad_scheme", "ftp://cms.example.com/wp-content/uploads/a.jpg", false},
		{"unknown_host", "https://cdn.other.com/wp-content/uploads/a.jpg", false},
		{"suffix_not_at_end", "https://trycloudflare.com.evil.net/wp-content/uploads/a.jpg", false},
		{"outside_uploads", "https://cms.example.com/wp-admin/secret.php", false},
		{"local_file_probe", "https://evil.example.com/etc/passwd", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := options.validateTarget(tt.raw)
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}
