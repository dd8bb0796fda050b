// Copyright 2026 The Warden Authors
// SPDX-License-Identifier: Apache-2.0

// Package schema defines Warden's wire types: the declarative policy
// document format and the audit snapshot record.
//
// Types carry both json tags (for JSONC policy files and CLI output)
// and cbor tags with integer keys (for compact deterministic encoding
// via lib/codec). Field numbers in cbor tags are stable identifiers —
// never renumber an existing field.
package schema
