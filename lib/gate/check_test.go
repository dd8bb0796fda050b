// Copyright 2026 The Warden Authors
// SPDX-License-Identifier: Apache-2.0

package gate

import (
	"testing"

	"github.com/warden-project/warden/lib/origin"
	"github.com/warden-project/warden/lib/permission"
	"github.com/warden-project/warden/lib/testutil"
)

func TestCheckDecisionStages(t *testing.T) {
	trusted := origin.MustNew("file:///opt/warden/core.jar")
	engine := newTestEngine(t, trusted)

	plugin := origin.MustNew("file:///plugins/extra.jar")
	generated := origin.MustNew("file:///build/test-classes/probe.jar")

	readTmp := permission.MustNew("file", "/tmp/scratch", "read")
	writeVar := permission.MustNew("file", "/var/data", "write")
	execBin := permission.MustNew("file", "/bin/sh", "execute")

	tests := []struct {
		name    string
		caller  origin.Origin
		request permission.Permission
		want    Result
	}{
		{
			name:    "baseline grant for ordinary plugin",
			caller:  plugin,
			request: readTmp,
			want:    Result{Decision: Allow, Reason: ReasonBaseline},
		},
		{
			name:    "delta grant for ordinary plugin",
			caller:  plugin,
			request: writeVar,
			want:    Result{Decision: Allow, Reason: ReasonDelta},
		},
		{
			name:    "ungranted permission denied",
			caller:  plugin,
			request: execBin,
			want:    Result{Decision: Deny, Reason: ReasonNoGrant},
		},
		{
			name:    "trusted origin keeps baseline grants",
			caller:  trusted,
			request: readTmp,
			want:    Result{Decision: Allow, Reason: ReasonBaseline},
		},
		{
			name:    "trusted origin denied delta permissions",
			caller:  trusted,
			request: writeVar,
			want:    Result{Decision: Deny, Reason: ReasonExcluded},
		},
		{
			name:    "script origin denied delta permissions",
			caller:  origin.ScriptOrigin(),
			request: writeVar,
			want:    Result{Decision: Deny, Reason: ReasonExcluded},
		},
		{
			name:    "generated test code keeps baseline grants",
			caller:  generated,
			request: readTmp,
			want:    Result{Decision: Allow, Reason: ReasonBaseline},
		},
		{
			name:    "generated test code denied delta permissions",
			caller:  generated,
			request: writeVar,
			want:    Result{Decision: Deny, Reason: ReasonGeneratedTest},
		},
		{
			name:    "zero origin receives baseline grants",
			caller:  origin.Origin{},
			request: readTmp,
			want:    Result{Decision: Allow, Reason: ReasonBaseline},
		},
		{
			name:    "zero origin receives delta grants",
			caller:  origin.Origin{},
			request: writeVar,
			want:    Result{Decision: Allow, Reason: ReasonDelta},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := engine.Check(tt.caller, tt.request)
			if got != tt.want {
				t.Errorf("Check(%s, %s) = %v/%v, want %v/%v",
					tt.caller, tt.request,
					got.Decision, got.Reason, tt.want.Decision, tt.want.Reason)
			}
		})
	}
}

func TestDeltaImplicationSubsumesFinerRequests(t *testing.T) {
	// The delta grants write on /var/**; a request for a single file
	// under /var with a subset of actions must be allowed.
	engine := newTestEngine(t)

	caller := origin.MustNew("file:///plugins/extra.jar")
	request := permission.MustNew("file", "/var/log/warden.log", "write")
	if !engine.Implies(caller, request) {
		t.Errorf("delta should subsume %s", request)
	}
}

func TestEmptyDeltaBehavesLikeBaseline(t *testing.T) {
	document := testutil.Document(
		testutil.Generic(testutil.Spec("file", "/tmp/**", "read")),
	)
	engine, err := New(Config{
		Document:   document,
		Marker:     testMarker,
		Identities: origin.StaticSource(nil),
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	caller := origin.MustNew("file:///plugins/extra.jar")
	if !engine.Implies(caller, permission.MustNew("file", "/tmp/x", "read")) {
		t.Error("baseline grant should still allow")
	}
	got := engine.Check(caller, permission.MustNew("file", "/var/x", "write"))
	if got.Decision != Deny || got.Reason != ReasonNoGrant {
		t.Errorf("Check = %v/%v, want deny with no matching grant", got.Decision, got.Reason)
	}
}

func TestDisabledHeuristics(t *testing.T) {
	document := testutil.Document(
		testutil.Scoped("${"+testMarker+"}", testutil.Spec("file", "/var/**", "write")),
	)
	engine, err := New(Config{
		Document:   document,
		Marker:     testMarker,
		Identities: origin.StaticSource(nil),
		Heuristics: []string{},
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	generated := origin.MustNew("file:///build/test-classes/probe.jar")
	if !engine.Implies(generated, permission.MustNew("file", "/var/x", "write")) {
		t.Error("with heuristics disabled, generated test code should receive delta grants")
	}
}

func TestHeuristicIgnoresEmptyLocation(t *testing.T) {
	engine := newTestEngine(t)

	// The zero origin has no location; it must never match a heuristic.
	got := engine.Check(origin.Origin{}, permission.MustNew("file", "/var/x", "write"))
	if got.Reason == ReasonGeneratedTest {
		t.Error("zero origin matched a location heuristic")
	}
}

func TestExclusionRunsBeforeHeuristic(t *testing.T) {
	// An origin both trusted and heuristic-matching is denied with the
	// exclusion reason: the exact signal wins over the fuzzy one.
	trusted := origin.MustNew("file:///build/test-classes/core.jar")
	engine := newTestEngine(t, trusted)

	got := engine.Check(trusted, permission.MustNew("file", "/var/x", "write"))
	if got.Reason != ReasonExcluded {
		t.Errorf("reason = %v, want exclusion before heuristic", got.Reason)
	}
}

func TestFingerprintDistinguishesExcludedOrigins(t *testing.T) {
	// Same location, different certificate fingerprints: only the
	// exact trusted identity is excluded.
	fp := origin.FingerprintCertificate([]byte("trusted-cert"))
	trusted := origin.MustNew("file:///opt/warden/core.jar", fp)
	engine := newTestEngine(t, trusted)

	writeVar := permission.MustNew("file", "/var/data", "write")

	if got := engine.Check(trusted, writeVar); got.Reason != ReasonExcluded {
		t.Errorf("trusted identity reason = %v, want exclusion", got.Reason)
	}

	impostor := origin.MustNew("file:///opt/warden/core.jar")
	if got := engine.Check(impostor, writeVar); got.Reason != ReasonDelta {
		t.Errorf("same-location impostor reason = %v, want delta grant", got.Reason)
	}
}

func TestDecisionAndReasonStrings(t *testing.T) {
	if Allow.String() != "allow" || Deny.String() != "deny" {
		t.Errorf("decision strings: %q, %q", Allow, Deny)
	}
	reasons := []Reason{ReasonBaseline, ReasonExcluded, ReasonGeneratedTest, ReasonDelta, ReasonNoGrant}
	seen := map[string]bool{}
	for _, r := range reasons {
		s := r.String()
		if s == "" || s == "unknown" || seen[s] {
			t.Errorf("reason %d has bad string %q", r, s)
		}
		seen[s] = true
	}
}
