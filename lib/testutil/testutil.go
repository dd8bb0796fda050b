// Copyright 2026 The Warden Authors
// SPDX-License-Identifier: Apache-2.0

// Package testutil provides shared test helpers for Warden packages.
//
// All helpers call t.Fatalf on failure rather than returning errors,
// since test setup failures are not recoverable.
//
// This package has no Warden-internal dependencies beyond lib/schema.
package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/warden-project/warden/lib/schema"
)

// WriteFile writes content to name inside a fresh temp directory and
// returns the full path. The directory is removed when the test
// completes.
func WriteFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing %s: %v", name, err)
	}
	return path
}

// Document builds a policy document from grant blocks.
func Document(blocks ...schema.GrantBlock) *schema.PolicyDocument {
	return &schema.PolicyDocument{Grants: blocks}
}

// Generic builds a grant block with no codebase: its permissions go
// to every origin.
func Generic(permissions ...schema.PermissionSpec) schema.GrantBlock {
	return schema.GrantBlock{Permissions: permissions}
}

// Scoped builds a grant block addressed to one codebase. The codebase
// may be a ${property} reference.
func Scoped(codebase string, permissions ...schema.PermissionSpec) schema.GrantBlock {
	return schema.GrantBlock{Codebase: codebase, Permissions: permissions}
}

// Spec builds a permission spec.
func Spec(permissionType, target string, actions ...string) schema.PermissionSpec {
	return schema.PermissionSpec{Type: permissionType, Target: target, Actions: actions}
}
