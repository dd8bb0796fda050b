// Copyright 2026 The Warden Authors
// SPDX-License-Identifier: Apache-2.0

package gate

import (
	"github.com/warden-project/warden/lib/origin"
	"github.com/warden-project/warden/lib/permission"
)

// Decision is the outcome of an access check.
type Decision int

const (
	// Deny means the permission is not granted.
	Deny Decision = iota

	// Allow means the permission is granted.
	Allow
)

// String returns "allow" or "deny".
func (d Decision) String() string {
	if d == Allow {
		return "allow"
	}
	return "deny"
}

// Reason identifies which evaluation stage produced the decision.
type Reason int

const (
	// ReasonBaseline means the baseline policy granted the permission.
	ReasonBaseline Reason = iota

	// ReasonExcluded means the caller is trusted infrastructure
	// (exclusion set member) and the baseline did not grant the
	// permission. Trusted code never receives delta permissions.
	ReasonExcluded

	// ReasonGeneratedTest means the caller's location matched a
	// generated-test-output heuristic pattern and the baseline did
	// not grant the permission.
	ReasonGeneratedTest

	// ReasonDelta means the delta permission set granted the
	// permission.
	ReasonDelta

	// ReasonNoGrant means neither the baseline nor the delta covers
	// the permission.
	ReasonNoGrant
)

// String returns a human-readable reason.
func (r Reason) String() string {
	switch r {
	case ReasonBaseline:
		return "granted by baseline policy"
	case ReasonExcluded:
		return "trusted infrastructure origin, baseline only"
	case ReasonGeneratedTest:
		return "generated test code, baseline only"
	case ReasonDelta:
		return "granted by delta permissions"
	case ReasonNoGrant:
		return "no matching grant"
	default:
		return "unknown"
	}
}

// Result describes the outcome of an access check: the decision and
// the stage that produced it. The trace supports the warden-check CLI
// and audit logging.
type Result struct {
	// Decision is Allow or Deny.
	Decision Decision

	// Reason identifies the evaluation stage that decided.
	Reason Reason
}

// Check evaluates an access query and returns the full result. Pure
// and lock-free over the engine's immutable state; safe for arbitrary
// concurrent callers. Total over its input domain: any origin
// (including the zero origin for unknown code sources) and any
// permission produce a decision, never an error.
//
// Evaluation order (first match wins):
//
//  1. Baseline policy implies the permission → allow.
//  2. Caller in the exclusion set → deny.
//  3. Caller location matches a generated-test heuristic → deny.
//  4. Delta implies the permission → allow; otherwise deny.
//
// Baseline denial is not final until the exclusion and heuristic
// checks run, and the heuristic runs after exact exclusion because it
// is the less precise signal — it must not mask a legitimate baseline
// or exclusion match.
func (e *Engine) Check(caller origin.Origin, request permission.Permission) Result {
	if e.baseline.Implies(caller, request) {
		return Result{Decision: Allow, Reason: ReasonBaseline}
	}

	if _, ok := e.excluded[caller.Key()]; ok {
		return Result{Decision: Deny, Reason: ReasonExcluded}
	}

	if e.matchesHeuristic(caller.Location()) {
		return Result{Decision: Deny, Reason: ReasonGeneratedTest}
	}

	// Implication, not equality: the caller is granted anything the
	// delta covers or subsumes.
	if e.delta.Implies(request) {
		return Result{Decision: Allow, Reason: ReasonDelta}
	}

	return Result{Decision: Deny, Reason: ReasonNoGrant}
}

// Implies is the boolean view of Check.
func (e *Engine) Implies(caller origin.Origin, request permission.Permission) bool {
	return e.Check(caller, request).Decision == Allow
}
