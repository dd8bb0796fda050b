// Copyright 2026 The Warden Authors
// SPDX-License-Identifier: Apache-2.0

// Package policy turns a declarative policy document into an evaluable
// origin → permission-set mapping.
//
// Construction is sensitive to the process property table: codebases
// and permission targets may contain ${property} references, expanded
// against a snapshot taken at construction time. This sensitivity is
// what the delta resolver in lib/gate exploits — building the same
// document twice, with and without a marker property bound, yields two
// policies whose difference is exactly the marker's contribution.
//
// A constructed Policy is immutable and safe for concurrent reads.
package policy
