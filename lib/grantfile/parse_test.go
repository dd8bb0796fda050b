// Copyright 2026 The Warden Authors
// SPDX-License-Identifier: Apache-2.0

package grantfile

import (
	"strings"
	"testing"

	"github.com/warden-project/warden/lib/testutil"
)

const samplePolicy = `{
	// Generic grants: every origin receives these.
	"grants": [
		{
			"permissions": [
				{"type": "file", "target": "/tmp/**", "actions": ["read"]},
			],
		},
		/* The insecure plugin block. Addressed through the marker
		   property, so it is dropped for baseline constructions. */
		{
			"codebase": "${warden.insecure.plugin}",
			"permissions": [
				{"type": "file", "target": "/var/**", "actions": ["read", "write"]},
			],
		},
	],
}`

func TestParseJSONC(t *testing.T) {
	document, err := Parse([]byte(samplePolicy))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	if len(document.Grants) != 2 {
		t.Fatalf("got %d grant blocks, want 2", len(document.Grants))
	}
	if document.Grants[0].Codebase != "" {
		t.Errorf("first block codebase = %q, want generic", document.Grants[0].Codebase)
	}
	if document.Grants[1].Codebase != "${warden.insecure.plugin}" {
		t.Errorf("second block codebase = %q", document.Grants[1].Codebase)
	}
	if document.Grants[1].Permissions[0].Actions[1] != "write" {
		t.Errorf("permissions not parsed: %+v", document.Grants[1].Permissions)
	}
}

func TestParseRejectsMalformedJSON(t *testing.T) {
	_, err := Parse([]byte(`{"grants": [`))
	if err == nil {
		t.Error("malformed JSON should fail")
	}
}

func TestParseRejectsEmptyPermissionType(t *testing.T) {
	_, err := Parse([]byte(`{"grants": [{"permissions": [{"target": "/tmp"}]}]}`))
	if err == nil {
		t.Fatal("missing permission type should fail")
	}
	if !strings.Contains(err.Error(), "type is empty") {
		t.Errorf("error %q should name the missing type", err)
	}
}

func TestParseRejectsEmptyBlock(t *testing.T) {
	_, err := Parse([]byte(`{"grants": [{"codebase": "file:///x", "permissions": []}]}`))
	if err == nil {
		t.Fatal("block without permissions should fail")
	}
	if !strings.Contains(err.Error(), "no permissions") {
		t.Errorf("error %q should name the empty block", err)
	}
}

func TestReadFile(t *testing.T) {
	path := testutil.WriteFile(t, "policy.jsonc", samplePolicy)

	document, err := ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if len(document.Grants) != 2 {
		t.Errorf("got %d grant blocks, want 2", len(document.Grants))
	}
}

func TestReadFileMissing(t *testing.T) {
	_, err := ReadFile("/nonexistent/policy.jsonc")
	if err == nil {
		t.Error("missing file should fail")
	}
}
