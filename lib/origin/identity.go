// Copyright 2026 The Warden Authors
// SPDX-License-Identifier: Apache-2.0

package origin

import "fmt"

// ScriptLocation is the synthetic location used as a stand-in for
// dynamically generated scripts, which have no stable on-disk origin.
// The engine always adds this origin to its exclusion set.
const ScriptLocation = "file:///generated/script"

// ScriptOrigin returns the synthetic origin for dynamically generated
// scripts.
func ScriptOrigin() Origin {
	return Origin{location: ScriptLocation}
}

// IdentitySource supplies the concrete origins of trusted
// infrastructure code: the engine itself, the test framework, the
// test runner, the assertion library, and so on. The decision gate
// never grants delta permissions to these origins; they are evaluated
// strictly under the baseline policy.
//
// Implementations must be deterministic: each call resolves the same
// stable set of origins, usable for structural equality comparison.
type IdentitySource interface {
	// TrustedOrigins returns the trusted-infrastructure origins. An
	// error means an identity could not be resolved; the engine treats
	// this as fatal, since an incomplete exclusion set would be
	// silently under-protective.
	TrustedOrigins() ([]Origin, error)
}

// StaticSource is an IdentitySource over a fixed origin list.
type StaticSource []Origin

// TrustedOrigins returns the list. Returns an error if any entry is
// the zero Origin — a placeholder that was never resolved must not
// silently shrink the exclusion set.
func (s StaticSource) TrustedOrigins() ([]Origin, error) {
	out := make([]Origin, len(s))
	for i, o := range s {
		if o.IsZero() {
			return nil, fmt.Errorf("trusted origin %d is unresolved", i)
		}
		out[i] = o
	}
	return out, nil
}
