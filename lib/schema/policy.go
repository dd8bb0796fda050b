// Copyright 2026 The Warden Authors
// SPDX-License-Identifier: Apache-2.0

package schema

// PolicyDocument is the declarative form of a security policy: a list
// of grant blocks, each giving a set of permissions to either every
// origin (no codebase) or to one specific codebase.
//
// Documents are authored on disk as JSONC (see lib/grantfile) and may
// be carried on the wire as CBOR (see lib/codec), hence the dual
// struct tags.
type PolicyDocument struct {
	// Grants is the ordered list of grant blocks. Order does not
	// affect evaluation — granted permission sets are unions — but is
	// preserved for faithful round-tripping and diagnostics.
	Grants []GrantBlock `json:"grants" cbor:"1,keyasint"`
}

// GrantBlock gives a list of permissions to a codebase.
type GrantBlock struct {
	// Codebase is the origin location the block applies to. Empty
	// means the block is generic: its permissions go to every origin.
	//
	// The value may be a ${property} reference. It is expanded against
	// the process property table at policy construction; a block whose
	// codebase cannot be expanded is dropped entirely (the grant is
	// addressed to a codebase that does not exist in this process).
	Codebase string `json:"codebase,omitempty" cbor:"1,keyasint,omitempty"`

	// Permissions are the capabilities granted to the codebase.
	Permissions []PermissionSpec `json:"permissions" cbor:"2,keyasint"`
}

// PermissionSpec is the declarative form of a single permission.
type PermissionSpec struct {
	// Type is the capability class (e.g. "file", "net", "runtime").
	Type string `json:"type" cbor:"1,keyasint"`

	// Target names what the capability applies to. May contain glob
	// wildcards and ${property} references. A target whose property
	// reference cannot be expanded is preserved verbatim as an
	// unresolved permission rather than dropped — downstream consumers
	// may be able to resolve it later.
	Target string `json:"target,omitempty" cbor:"2,keyasint,omitempty"`

	// Actions lists the operations covered (e.g. "read", "write").
	Actions []string `json:"actions,omitempty" cbor:"3,keyasint,omitempty"`
}
