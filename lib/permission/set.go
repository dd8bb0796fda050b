// Copyright 2026 The Warden Authors
// SPDX-License-Identifier: Apache-2.0

package permission

import (
	"sort"
	"strings"
)

// Set is an unordered collection of unique permissions, keyed by exact
// equality. The zero value is an empty set ready for use.
//
// A Set is mutable during construction (Add) and should be treated as
// immutable once shared: the decision engine builds its delta set once
// and then serves concurrent reads from it without synchronization.
type Set struct {
	members map[string]Permission
}

// NewSet creates a set containing the given permissions.
func NewSet(permissions ...Permission) *Set {
	s := &Set{}
	for _, p := range permissions {
		s.Add(p)
	}
	return s
}

// Add inserts a permission. Adding an equal permission twice is a
// no-op. Zero permissions are ignored.
func (s *Set) Add(p Permission) {
	if p.IsZero() {
		return
	}
	if s.members == nil {
		s.members = make(map[string]Permission)
	}
	s.members[p.Key()] = p
}

// AddAll inserts every permission from other.
func (s *Set) AddAll(other *Set) {
	if other == nil {
		return
	}
	for _, p := range other.members {
		s.Add(p)
	}
}

// Len returns the number of permissions in the set.
func (s *Set) Len() int {
	if s == nil {
		return 0
	}
	return len(s.members)
}

// Contains reports membership by exact equality.
func (s *Set) Contains(p Permission) bool {
	if s == nil || s.members == nil {
		return false
	}
	_, ok := s.members[p.Key()]
	return ok
}

// Implies reports whether any member of the set implies the requested
// permission (the implication relation, not equality). This is the
// relation used for access checks: a caller should be granted anything
// the set covers or subsumes.
func (s *Set) Implies(request Permission) bool {
	if s == nil {
		return false
	}
	for _, member := range s.members {
		if member.Implies(request) {
			return true
		}
	}
	return false
}

// Difference returns the permissions present in this set but not in
// other, compared by exact equality. Equality (not implication) keeps
// a permission whose target is an unresolved placeholder distinct from
// a resolved permission that would otherwise subsume it — the
// placeholder must be passed through verbatim, not collapsed.
func (s *Set) Difference(other *Set) *Set {
	result := NewSet()
	if s == nil {
		return result
	}
	for key, p := range s.members {
		if other != nil && other.members != nil {
			if _, ok := other.members[key]; ok {
				continue
			}
		}
		result.Add(p)
	}
	return result
}

// Clone returns an independent copy of the set.
func (s *Set) Clone() *Set {
	result := NewSet()
	result.AddAll(s)
	return result
}

// Permissions returns the members sorted by canonical key, for
// deterministic logs, snapshots, and CLI output.
func (s *Set) Permissions() []Permission {
	if s == nil || len(s.members) == 0 {
		return nil
	}
	keys := make([]string, 0, len(s.members))
	for key := range s.members {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	out := make([]Permission, len(keys))
	for i, key := range keys {
		out[i] = s.members[key]
	}
	return out
}

// String formats the set for logs: "{file:/tmp/** [read], net:* [connect]}".
func (s *Set) String() string {
	members := s.Permissions()
	parts := make([]string, len(members))
	for i, p := range members {
		parts[i] = p.String()
	}
	return "{" + strings.Join(parts, ", ") + "}"
}
