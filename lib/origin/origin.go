// Copyright 2026 The Warden Authors
// SPDX-License-Identifier: Apache-2.0

package origin

import (
	"fmt"
	"sort"
	"strings"
)

// Origin identifies a unit of executing code: a location (typically a
// file: or jar: URL-style string) plus the fingerprints of whatever
// certificates signed the code. Origins are compared structurally, not
// by reference — two Origins with the same location and the same
// fingerprint set are the same origin regardless of where they were
// constructed.
//
// The zero Origin represents an unknown code source (code with no
// attributable location). It is valid as an access-check input: it
// matches neither the exclusion set nor the generated-test heuristic,
// so it falls through to delta evaluation.
type Origin struct {
	location     string
	fingerprints []Fingerprint
}

// New creates a validated Origin. The location must be non-empty; use
// the zero Origin for code with no attributable source. Fingerprints
// are sorted so structural equality is independent of signer order.
func New(location string, fingerprints ...Fingerprint) (Origin, error) {
	if location == "" {
		return Origin{}, fmt.Errorf("origin location is empty")
	}
	sorted := make([]Fingerprint, len(fingerprints))
	copy(sorted, fingerprints)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Less(sorted[j])
	})
	return Origin{location: location, fingerprints: sorted}, nil
}

// MustNew is New for statically known inputs. Panics on error.
func MustNew(location string, fingerprints ...Fingerprint) Origin {
	o, err := New(location, fingerprints...)
	if err != nil {
		panic(err)
	}
	return o
}

// Location returns the origin's location string. Empty for the zero
// Origin.
func (o Origin) Location() string {
	return o.location
}

// Fingerprints returns a copy of the sorted signer fingerprints.
func (o Origin) Fingerprints() []Fingerprint {
	if o.fingerprints == nil {
		return nil
	}
	out := make([]Fingerprint, len(o.fingerprints))
	copy(out, o.fingerprints)
	return out
}

// IsZero reports whether the Origin is the zero value (unknown code
// source).
func (o Origin) IsZero() bool {
	return o.location == "" && len(o.fingerprints) == 0
}

// Equal reports structural equality: same location and same signer
// fingerprint set.
func (o Origin) Equal(other Origin) bool {
	if o.location != other.location {
		return false
	}
	if len(o.fingerprints) != len(other.fingerprints) {
		return false
	}
	for i := range o.fingerprints {
		if o.fingerprints[i] != other.fingerprints[i] {
			return false
		}
	}
	return true
}

// Key returns a canonical identity string for map keying.
func (o Origin) Key() string {
	if len(o.fingerprints) == 0 {
		return o.location
	}
	parts := make([]string, 0, len(o.fingerprints)+1)
	parts = append(parts, o.location)
	for _, fp := range o.fingerprints {
		parts = append(parts, fp.String())
	}
	return strings.Join(parts, "\x00")
}

// String formats the origin for logs: the location, with a signer
// count when certificates are present.
func (o Origin) String() string {
	if o.IsZero() {
		return "(unknown)"
	}
	if len(o.fingerprints) == 0 {
		return o.location
	}
	return fmt.Sprintf("%s (%d signers)", o.location, len(o.fingerprints))
}
