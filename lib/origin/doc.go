// Copyright 2026 The Warden Authors
// SPDX-License-Identifier: Apache-2.0

// Package origin defines the identity of a unit of executing code: a
// location plus optional signer certificate fingerprints.
//
// Origins are plain value types compared by structure, never by
// reference, so identity comparisons are reproducible across process
// boundaries and serialization. Certificates are represented by their
// BLAKE3 fingerprints rather than carried whole.
//
// The package also defines IdentitySource, the narrow interface
// through which the decision engine obtains the origins of trusted
// infrastructure code for its exclusion set.
package origin
