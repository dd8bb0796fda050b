// Copyright 2026 The Warden Authors
// SPDX-License-Identifier: Apache-2.0

package gate

import (
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/warden-project/warden/lib/origin"
	"github.com/warden-project/warden/lib/permission"
	"github.com/warden-project/warden/lib/policy"
	"github.com/warden-project/warden/lib/propstore"
	"github.com/warden-project/warden/lib/schema"
)

// Sentinel errors wrapped by New. Both are fatal configuration
// failures: the engine never retries or degrades.
var (
	// ErrConfiguration means the baseline policy failed to construct
	// (malformed document or invalid engine configuration).
	ErrConfiguration = errors.New("configuration error")

	// ErrIdentity means a trusted-infrastructure origin could not be
	// resolved. Fatal because an incomplete exclusion set would be
	// silently under-protective.
	ErrIdentity = errors.New("identity resolution error")
)

// DefaultSyntheticLocation is the "any old codebase" location the
// delta is computed for: a location that matches no declared grant
// block, so it receives only generic grants plus whatever the marker
// adds.
const DefaultSyntheticLocation = "file:///any-old-plugin"

// DefaultHeuristics are the location substring patterns identifying
// generated test-compilation output. Origins matching any pattern are
// denied delta permissions even when not in the exclusion set.
var DefaultHeuristics = []string{"test-classes"}

// Config carries everything New needs to build an Engine.
type Config struct {
	// Document is the baseline policy document. Required.
	Document *schema.PolicyDocument

	// Marker is the property key whose presence during policy
	// construction triggers the augmented grant for the synthetic
	// origin. Required.
	Marker string

	// SyntheticLocation overrides DefaultSyntheticLocation.
	SyntheticLocation string

	// Properties is the process property table used for policy
	// expansion. If nil, an empty table is used.
	Properties *propstore.Store

	// Identities supplies the trusted-infrastructure origins for the
	// exclusion set. Required.
	Identities origin.IdentitySource

	// Heuristics overrides DefaultHeuristics. An explicit empty slice
	// disables the heuristic layer.
	Heuristics []string

	// Logger receives a construction-time diagnostic record (the
	// computed delta and exclusion set). If nil, slog.Default() is
	// used. Diagnostic only — never affects decisions.
	Logger *slog.Logger
}

// Engine is the differential decision engine. Immutable after New;
// see the package documentation for the evaluation model.
type Engine struct {
	baseline          *policy.Policy
	delta             *permission.Set
	excluded          map[string]origin.Origin
	heuristics        []string
	marker            string
	syntheticLocation string
}

// New builds an Engine: it resolves the delta permission set by
// constructing the policy document with and without the marker bound,
// then assembles the exclusion set from the identity source plus the
// synthetic generated-script origin.
//
// The marker binding is scoped: it is set only inside the augmented
// construction and is guaranteed cleared before New returns, on every
// exit path. No concurrent or subsequent policy construction can
// observe it.
//
// Errors wrap ErrConfiguration (policy failed to build) or
// ErrIdentity (a trusted origin could not be resolved).
func New(cfg Config) (*Engine, error) {
	if cfg.Document == nil {
		return nil, fmt.Errorf("%w: policy document is nil", ErrConfiguration)
	}
	if cfg.Marker == "" {
		return nil, fmt.Errorf("%w: marker key is empty", ErrConfiguration)
	}
	if cfg.Identities == nil {
		return nil, fmt.Errorf("%w: identity source is nil", ErrIdentity)
	}

	properties := cfg.Properties
	if properties == nil {
		properties = propstore.New(nil)
	}
	syntheticLocation := cfg.SyntheticLocation
	if syntheticLocation == "" {
		syntheticLocation = DefaultSyntheticLocation
	}
	synthetic, err := origin.New(syntheticLocation)
	if err != nil {
		return nil, fmt.Errorf("%w: synthetic origin: %v", ErrConfiguration, err)
	}
	heuristics := cfg.Heuristics
	if heuristics == nil {
		heuristics = DefaultHeuristics
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	// Baseline construction, marker absent. What the generic origin
	// receives here is everything it would get anyway.
	baseline, err := policy.New(cfg.Document, properties)
	if err != nil {
		return nil, fmt.Errorf("%w: baseline policy: %v", ErrConfiguration, err)
	}
	small := baseline.GrantedTo(synthetic)

	// Augmented construction inside the scoped marker binding. The
	// marker is bound to the synthetic location so grant blocks whose
	// codebase references it now address the synthetic origin.
	var big *permission.Set
	err = properties.WithValue(cfg.Marker, syntheticLocation, func() error {
		augmented, err := policy.New(cfg.Document, properties)
		if err != nil {
			return err
		}
		big = augmented.GrantedTo(synthetic)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: augmented policy: %v", ErrConfiguration, err)
	}

	// Equality difference, not implication: a permission whose target
	// is an unresolved placeholder must survive the diff verbatim
	// instead of being collapsed into a resolved permission that
	// happens to subsume it.
	delta := big.Difference(small)

	trusted, err := cfg.Identities.TrustedOrigins()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrIdentity, err)
	}
	excluded := make(map[string]origin.Origin, len(trusted)+1)
	for _, o := range trusted {
		if o.IsZero() {
			return nil, fmt.Errorf("%w: identity source returned an unresolved origin", ErrIdentity)
		}
		excluded[o.Key()] = o
	}
	// Dynamically generated scripts have no stable codebase; their
	// synthetic placeholder is always excluded.
	script := origin.ScriptOrigin()
	excluded[script.Key()] = script

	engine := &Engine{
		baseline:          baseline,
		delta:             delta,
		excluded:          excluded,
		heuristics:        heuristics,
		marker:            cfg.Marker,
		syntheticLocation: syntheticLocation,
	}

	logger.Debug("delta policy engine constructed",
		"marker", cfg.Marker,
		"delta", delta.String(),
		"excluded", engine.excludedLocations(),
		"heuristics", heuristics)

	return engine, nil
}

// Delta returns a copy of the computed delta permission set.
func (e *Engine) Delta() *permission.Set {
	return e.delta.Clone()
}

// Excluded returns the exclusion set origins in location order.
func (e *Engine) Excluded() []origin.Origin {
	out := make([]origin.Origin, 0, len(e.excluded))
	for _, o := range e.excluded {
		out = append(out, o)
	}
	sortOrigins(out)
	return out
}

// Heuristics returns a copy of the active heuristic patterns.
func (e *Engine) Heuristics() []string {
	out := make([]string, len(e.heuristics))
	copy(out, e.heuristics)
	return out
}

// Snapshot returns the audit record of this engine's construction:
// the delta, the exclusion set, and the heuristic patterns.
func (e *Engine) Snapshot() schema.EngineSnapshot {
	deltaSpecs := make([]schema.PermissionSpec, 0, e.delta.Len())
	for _, p := range e.delta.Permissions() {
		deltaSpecs = append(deltaSpecs, schema.PermissionSpec{
			Type:    p.Type(),
			Target:  p.Target(),
			Actions: p.Actions(),
		})
	}
	return schema.EngineSnapshot{
		Marker:            e.marker,
		SyntheticLocation: e.syntheticLocation,
		Delta:             deltaSpecs,
		Excluded:          e.excludedLocations(),
		Heuristics:        e.Heuristics(),
		CreatedAt:         time.Now().UTC().Format(time.RFC3339),
	}
}

// excludedLocations returns the sorted locations of excluded origins,
// for logging and snapshots.
func (e *Engine) excludedLocations() []string {
	origins := e.Excluded()
	out := make([]string, len(origins))
	for i, o := range origins {
		out[i] = o.Location()
	}
	return out
}

// sortOrigins orders origins by canonical key.
func sortOrigins(origins []origin.Origin) {
	sort.Slice(origins, func(i, j int) bool {
		return origins[i].Key() < origins[j].Key()
	})
}

// matchesHeuristic reports whether a location superficially resembles
// generated test-compilation output. Substring containment, not
// pattern matching — the signal is inherently fuzzy and is kept that
// way rather than given false precision.
func (e *Engine) matchesHeuristic(location string) bool {
	if location == "" {
		return false
	}
	for _, pattern := range e.heuristics {
		if pattern != "" && strings.Contains(location, pattern) {
			return true
		}
	}
	return false
}
