// Copyright 2026 The Warden Authors
// SPDX-License-Identifier: Apache-2.0

package permission

import "testing"

func TestMatchTarget(t *testing.T) {
	tests := []struct {
		name    string
		pattern string
		target  string
		want    bool
	}{
		// Exact matches.
		{"exact match", "/tmp/scratch", "/tmp/scratch", true},
		{"exact mismatch", "/tmp/scratch", "/tmp/other", false},
		{"exact nested", "/var/lib/data", "/var/lib/data", true},
		{"exact nested mismatch", "/var/lib/data", "/var/lib/logs", false},

		// Universal match.
		{"double star matches anything", "**", "/tmp", true},
		{"double star matches nested", "**", "/var/lib/data", true},
		{"double star matches hostname targets", "**", "localhost:9200", true},

		// Single-segment wildcard (does not cross /).
		{"star matches single segment", "/tmp/*", "/tmp/x", true},
		{"star does not cross slash", "/tmp/*", "/tmp/a/b", false},
		{"star in middle", "/var/*/data", "/var/lib/data", true},
		{"star in middle no match", "/var/*/data", "/var/lib/logs", false},
		{"star in middle too deep", "/var/*/data", "/var/lib/sub/data", false},

		// Suffix double star: "prefix/**".
		{"suffix doublestar matches child", "/tmp/**", "/tmp/x", true},
		{"suffix doublestar matches deep", "/tmp/**", "/tmp/a/b/c", true},
		{"suffix doublestar matches exact prefix", "/tmp/**", "/tmp", true},
		{"suffix doublestar no match different prefix", "/tmp/**", "/var/x", false},
		{"suffix doublestar no match partial prefix", "/tmp/**", "/tmpfile/x", false},

		// Prefix double star: "**/suffix".
		{"prefix doublestar matches child", "**/data", "/var/data", true},
		{"prefix doublestar matches deep", "**/data", "/var/lib/data", true},
		{"prefix doublestar matches exact", "**/data", "data", true},
		{"prefix doublestar no match", "**/data", "/var/logs", false},

		// Interior double star: "prefix/**/suffix".
		{"interior doublestar zero segments", "/var/**/log", "/var/log", true},
		{"interior doublestar one segment", "/var/**/log", "/var/lib/log", true},
		{"interior doublestar two segments", "/var/**/log", "/var/a/b/log", true},
		{"interior doublestar no match suffix", "/var/**/log", "/var/lib/data", false},
		{"interior doublestar no match prefix", "/var/**/log", "/opt/lib/log", false},
		{"interior doublestar rejects empty segment", "/var/**/log", "/var//log", false},

		// Question mark wildcard.
		{"question mark matches single char", "/tmp/file-?", "/tmp/file-a", true},
		{"question mark does not match slash", "/tmp?file", "/tmp/file", false},
		{"question mark too short", "/tmp/file-?", "/tmp/file-", false},

		// Edge cases.
		{"empty pattern", "", "", true},
		{"empty pattern nonempty target", "", "/x", false},
		{"empty target nonempty pattern", "/x", "", false},
		{"malformed bracket pattern denies", "[invalid", "x", false},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got := MatchTarget(test.pattern, test.target)
			if got != test.want {
				t.Errorf("MatchTarget(%q, %q) = %v, want %v",
					test.pattern, test.target, got, test.want)
			}
		})
	}
}
