// Copyright 2026 The Warden Authors
// SPDX-License-Identifier: Apache-2.0

package policy

import (
	"regexp"
	"strings"
)

// propertyReference matches ${name} references in codebases and
// permission targets.
var propertyReference = regexp.MustCompile(`\$\{([^}]+)\}`)

// expand substitutes every ${name} reference in s with its value from
// the property snapshot. Returns the expanded string and true when all
// references resolved; returns the original string and false when any
// reference is missing. Callers decide what a failed expansion means:
// a grant block is dropped, a permission target is kept verbatim.
func expand(s string, snapshot map[string]string) (string, bool) {
	if !strings.Contains(s, "${") {
		return s, true
	}

	resolved := true
	expanded := propertyReference.ReplaceAllStringFunc(s, func(reference string) string {
		name := reference[2 : len(reference)-1]
		value, ok := snapshot[name]
		if !ok {
			resolved = false
			return reference
		}
		return value
	})

	if !resolved {
		return s, false
	}
	return expanded, true
}
