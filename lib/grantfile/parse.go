// Copyright 2026 The Warden Authors
// SPDX-License-Identifier: Apache-2.0

// Package grantfile provides parsing and validation for Warden policy
// documents authored as JSONC files (JSON extended with comments and
// trailing commas).
//
// The typical flow:
//
//  1. ReadFile or Parse: JSONC bytes → schema.PolicyDocument
//  2. Validate: structural checks (non-empty permission types, blocks
//     with at least one permission)
//  3. policy.New: document + property table → evaluable Policy
package grantfile

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/tidwall/jsonc"

	"github.com/warden-project/warden/lib/schema"
)

// Parse strips JSONC comments and trailing commas from data, then
// unmarshals the result into a PolicyDocument. The input format is
// plain JSON extended with // line comments, /* block comments */,
// and trailing commas.
func Parse(data []byte) (*schema.PolicyDocument, error) {
	stripped := jsonc.ToJSON(data)

	var document schema.PolicyDocument
	if err := json.Unmarshal(stripped, &document); err != nil {
		return nil, fmt.Errorf("parsing policy document: %w", err)
	}

	if err := Validate(&document); err != nil {
		return nil, err
	}
	return &document, nil
}

// ReadFile reads a JSONC policy file from disk and parses it. Returns
// a descriptive error if the file cannot be read or is malformed.
func ReadFile(path string) (*schema.PolicyDocument, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	document, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return document, nil
}

// Validate performs structural checks on a policy document: every
// grant block must carry at least one permission, and every permission
// must name a type. Targets and actions are not validated here —
// placeholder targets are legitimate and action vocabularies are
// capability-class specific.
func Validate(document *schema.PolicyDocument) error {
	for i, block := range document.Grants {
		if len(block.Permissions) == 0 {
			return fmt.Errorf("grant block %d: no permissions", i)
		}
		for j, spec := range block.Permissions {
			if spec.Type == "" {
				return fmt.Errorf("grant block %d, permission %d: type is empty", i, j)
			}
		}
	}
	return nil
}
