// Copyright 2026 The Warden Authors
// SPDX-License-Identifier: Apache-2.0

package policy

import (
	"fmt"

	"github.com/warden-project/warden/lib/origin"
	"github.com/warden-project/warden/lib/permission"
	"github.com/warden-project/warden/lib/propstore"
	"github.com/warden-project/warden/lib/schema"
)

// Policy maps origins to permission sets. It is built once from a
// declarative document and a snapshot of the process property table,
// and is immutable afterward: all read methods are safe for concurrent
// use without synchronization.
type Policy struct {
	// generic holds permissions granted to every origin (blocks with
	// no codebase).
	generic *permission.Set

	// scoped holds permissions granted to one specific codebase,
	// keyed by expanded codebase location.
	scoped map[string]*permission.Set
}

// New builds a Policy from a document, expanding ${property}
// references against a snapshot of the given property table.
//
// Expansion rules:
//
//   - A grant block whose codebase contains an unresolvable property
//     reference is dropped entirely: the grant addresses a codebase
//     that does not exist in this process.
//   - A permission whose target contains an unresolvable property
//     reference is kept verbatim as an unresolved permission.
//
// Returns an error for structurally invalid documents (a permission
// with an empty type). Malformed input is fatal — the caller gets no
// partial policy.
func New(document *schema.PolicyDocument, properties *propstore.Store) (*Policy, error) {
	if document == nil {
		return nil, fmt.Errorf("policy document is nil")
	}
	if properties == nil {
		properties = propstore.New(nil)
	}

	snapshot := properties.Snapshot()
	p := &Policy{
		generic: permission.NewSet(),
		scoped:  make(map[string]*permission.Set),
	}

	for i, block := range document.Grants {
		codebase := block.Codebase
		if codebase != "" {
			expanded, ok := expand(codebase, snapshot)
			if !ok {
				// The grant is addressed to a codebase this process
				// does not define. Skip the whole block.
				continue
			}
			codebase = expanded
		}

		target := p.generic
		if codebase != "" {
			if p.scoped[codebase] == nil {
				p.scoped[codebase] = permission.NewSet()
			}
			target = p.scoped[codebase]
		}

		for j, spec := range block.Permissions {
			perm, err := fromSpec(spec, snapshot)
			if err != nil {
				return nil, fmt.Errorf("grant block %d, permission %d: %w", i, j, err)
			}
			target.Add(perm)
		}
	}

	return p, nil
}

// fromSpec converts a PermissionSpec into a Permission, expanding the
// target when possible and preserving it verbatim when not.
func fromSpec(spec schema.PermissionSpec, snapshot map[string]string) (permission.Permission, error) {
	target := spec.Target
	if expanded, ok := expand(target, snapshot); ok {
		target = expanded
	}
	return permission.New(spec.Type, target, spec.Actions...)
}

// GrantedTo returns the permission set granted to an origin: the
// generic grants plus any grants scoped to the origin's exact
// location. The returned set is an independent copy.
//
// Codebase matching is by exact location equality — scoping a grant
// to a codebase names one concrete location, it is not a pattern.
// Pattern semantics live in permission targets, not in codebases.
func (p *Policy) GrantedTo(o origin.Origin) *permission.Set {
	granted := p.generic.Clone()
	if scoped := p.scoped[o.Location()]; scoped != nil {
		granted.AddAll(scoped)
	}
	return granted
}

// Implies reports whether the policy grants the requested permission
// to the origin, by the implication relation (a coarser grant covers
// a finer request).
func (p *Policy) Implies(o origin.Origin, request permission.Permission) bool {
	if p.generic.Implies(request) {
		return true
	}
	if scoped := p.scoped[o.Location()]; scoped != nil {
		return scoped.Implies(request)
	}
	return false
}
