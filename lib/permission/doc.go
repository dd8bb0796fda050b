// Copyright 2026 The Warden Authors
// SPDX-License-Identifier: Apache-2.0

// Package permission defines Warden's capability model: the Permission
// value type and the Set collection over it.
//
// A Permission is a (type, target, actions) tuple. Two relations are
// defined over permissions and the distinction between them is
// load-bearing throughout Warden:
//
//   - Equality: exact tuple comparison on the canonical form. Used for
//     set membership and set difference, so that a permission whose
//     target is an unexpanded ${...} placeholder stays distinct from a
//     resolved permission and survives delta computation verbatim.
//
//   - Implication: a coarser grant covers a finer request (same type,
//     action superset, glob target match). Used for access checks, so
//     a caller is granted anything a grant subsumes.
//
// Target patterns use the same "/"-hierarchical glob conventions as
// the rest of Warden: "*" matches one segment, "**" matches any number
// of segments, "?" matches a single non-slash character.
package permission
