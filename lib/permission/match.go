// Copyright 2026 The Warden Authors
// SPDX-License-Identifier: Apache-2.0

package permission

import (
	"path"
	"strings"
)

// MatchTarget checks whether a concrete target matches a grant's
// target pattern. Targets are hierarchical "/"-separated strings and
// patterns use glob conventions:
//
//   - Exact match: "/tmp/scratch" matches only "/tmp/scratch"
//   - Single-segment wildcard: "/tmp/*" matches "/tmp/x" but not "/tmp/a/b"
//   - Recursive wildcard: "/tmp/**" matches "/tmp/x", "/tmp/a/b", etc.
//   - Universal: "**" matches any target
//   - Interior recursive: "/var/**/log" matches "/var/log", "/var/a/log"
//   - Character wildcard: "?" matches a single non-slash character
//
// The single-segment wildcard "*" does not match "/" — this is
// path.Match behavior. Use "**" to match across hierarchy boundaries.
//
// Returns false for malformed patterns (unmatched brackets, etc.)
// rather than propagating errors — a malformed pattern must never
// widen access.
func MatchTarget(pattern, target string) bool {
	// Universal match.
	if pattern == "**" {
		return true
	}

	// No ** in the pattern — path.Match handles single-segment * and ?
	// correctly (neither matches /).
	if !strings.Contains(pattern, "**") {
		matched, err := path.Match(pattern, target)
		if err != nil {
			return false
		}
		return matched
	}

	// Pattern contains **. Handle the three placements: suffix, prefix,
	// interior.

	// Suffix: "/tmp/**" — match the prefix (with glob wildcards), then
	// anything after.
	if strings.HasSuffix(pattern, "/**") {
		prefix := pattern[:len(pattern)-3]
		// ** matches zero additional segments: the entire target is the
		// prefix.
		if matchGlob(prefix, target) {
			return true
		}
		// ** matches one or more additional segments.
		return hasMatchingPrefix(prefix, target)
	}

	// Prefix: "**/log" — match anything before, then the suffix (with
	// glob wildcards).
	if strings.HasPrefix(pattern, "**/") {
		suffix := pattern[3:]
		if matchGlob(suffix, target) {
			return true
		}
		return hasMatchingSuffix(suffix, target)
	}

	// Interior: "/var/**/log" — split on the first /**, match prefix
	// and suffix independently.
	separatorIndex := strings.Index(pattern, "/**/")
	if separatorIndex >= 0 {
		prefix := pattern[:separatorIndex]
		suffix := pattern[separatorIndex+4:]

		// Zero-segment case: ** consumes nothing, prefix and suffix are
		// adjacent. "/var/**/log" matches "/var/log".
		if matchGlob(prefix+"/"+suffix, target) {
			return true
		}

		// Multi-segment case: prefix matches the start, suffix matches
		// the end, with at least one segment between for ** to consume.
		prefixDepth := strings.Count(prefix, "/") + 1
		suffixDepth := strings.Count(suffix, "/") + 1
		segments := strings.Split(target, "/")

		if len(segments) < prefixDepth+1+suffixDepth {
			return false
		}

		prefixCandidate := strings.Join(segments[:prefixDepth], "/")
		if !matchGlob(prefix, prefixCandidate) {
			return false
		}

		suffixCandidate := strings.Join(segments[len(segments)-suffixDepth:], "/")
		if !matchGlob(suffix, suffixCandidate) {
			return false
		}

		// Segments consumed by ** must be non-empty (reject targets
		// with consecutive slashes between prefix and suffix).
		for _, segment := range segments[prefixDepth : len(segments)-suffixDepth] {
			if segment == "" {
				return false
			}
		}
		return true
	}

	// Multiple ** segments or other complex patterns — not supported.
	// Deny by default.
	return false
}

// matchGlob matches a pattern against a string using path.Match
// semantics (wildcards * and ? do not cross / boundaries). Returns
// false for malformed patterns.
func matchGlob(pattern, s string) bool {
	matched, err := path.Match(pattern, s)
	return err == nil && matched
}

// hasMatchingPrefix reports whether the target starts with segments
// that match the given glob pattern, with at least one additional
// segment after the matched portion.
func hasMatchingPrefix(pattern, target string) bool {
	depth := strings.Count(pattern, "/") + 1
	segments := strings.SplitN(target, "/", depth+1)
	if len(segments) <= depth {
		return false
	}
	candidate := strings.Join(segments[:depth], "/")
	return matchGlob(pattern, candidate)
}

// hasMatchingSuffix reports whether the target ends with segments that
// match the given glob pattern, with at least one additional segment
// before the matched portion.
func hasMatchingSuffix(pattern, target string) bool {
	depth := strings.Count(pattern, "/") + 1
	segments := strings.Split(target, "/")
	if len(segments) <= depth {
		return false
	}
	candidate := strings.Join(segments[len(segments)-depth:], "/")
	return matchGlob(pattern, candidate)
}
