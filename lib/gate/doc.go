// Copyright 2026 The Warden Authors
// SPDX-License-Identifier: Apache-2.0

// Package gate implements Warden's differential access-control
// decision engine.
//
// The engine exists for degraded environments — test harnesses — where
// all code appears to originate from the same location, so per-plugin
// grants cannot be applied to the plugin's real codebase. Instead, the
// engine computes at construction the delta of permissions uniquely
// attributable to a synthetic "insecure plugin" origin: it builds the
// baseline policy twice, once with a marker property bound and once
// without, and diffs what the generic origin receives. The delta is
// then extended to every caller except trusted infrastructure.
//
// Each access check runs in a fixed order, and the order is
// load-bearing:
//
//  1. Baseline policy implies the permission → allow.
//  2. Caller is in the exclusion set (trusted infrastructure,
//     structural equality) → deny. Infrastructure code is evaluated
//     strictly under the baseline.
//  3. Caller's location matches a generated-test-output heuristic →
//     deny. Same rationale as (2) for a class of origins that cannot
//     be individually enumerated. The heuristic is deliberately fuzzy
//     (substring patterns) and runs last among the denials because it
//     is the least precise signal.
//  4. Delta implies the permission → allow; otherwise deny.
//
// Delta computation compares permissions by equality; the final grant
// check in step 4 uses implication. Conflating the two changes
// observable behavior — equality preserves unresolved placeholder
// permissions through the diff, implication lets the delta cover
// anything it subsumes at check time.
//
// A constructed Engine is immutable: Check and Implies are pure,
// lock-free reads, callable concurrently from any number of callers.
package gate
