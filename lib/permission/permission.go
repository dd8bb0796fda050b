// Copyright 2026 The Warden Authors
// SPDX-License-Identifier: Apache-2.0

package permission

import (
	"fmt"
	"sort"
	"strings"
)

// Permission is an atomic grantable capability: a (type, target,
// actions) tuple. Type names a capability class ("file", "net",
// "runtime"), Target names what the capability applies to (a
// "/"-separated path, possibly containing glob wildcards when the
// permission is used as a grant), and Actions lists the operations
// covered ("read", "write", "resolve", ...).
//
// Permissions are immutable after construction. Actions are
// canonicalized (deduplicated, sorted) by New, so two permissions
// constructed from the same logical tuple are equal regardless of
// action ordering in the input.
//
// Equality and implication are distinct relations and both matter:
// equality is exact tuple comparison on the canonical form, while
// implication lets a coarser grant cover a finer request (see Implies).
// Delta computation uses equality; access checks use implication.
type Permission struct {
	permissionType string
	target         string
	actions        []string
}

// New constructs a canonical Permission. The type must be non-empty.
// Actions are deduplicated and sorted; an empty action list is valid
// and means the permission covers the target itself with no specific
// operation (e.g. a marker capability).
func New(permissionType, target string, actions ...string) (Permission, error) {
	if permissionType == "" {
		return Permission{}, fmt.Errorf("permission type is empty")
	}
	return Permission{
		permissionType: permissionType,
		target:         target,
		actions:        canonicalActions(actions),
	}, nil
}

// MustNew is New for statically known inputs. Panics on error.
func MustNew(permissionType, target string, actions ...string) Permission {
	p, err := New(permissionType, target, actions...)
	if err != nil {
		panic(err)
	}
	return p
}

// Type returns the capability class.
func (p Permission) Type() string {
	return p.permissionType
}

// Target returns the target string.
func (p Permission) Target() string {
	return p.target
}

// Actions returns a copy of the canonical action list.
func (p Permission) Actions() []string {
	if p.actions == nil {
		return nil
	}
	out := make([]string, len(p.actions))
	copy(out, p.actions)
	return out
}

// IsZero reports whether the permission is the zero value.
func (p Permission) IsZero() bool {
	return p.permissionType == ""
}

// Unresolved reports whether the permission's target contains an
// unexpanded ${...} placeholder. Unresolved permissions are preserved
// verbatim through set arithmetic (they compare by equality like any
// other permission) but never imply anything: a placeholder target
// cannot be reasoned about until it is resolved.
func (p Permission) Unresolved() bool {
	return strings.Contains(p.target, "${")
}

// Equal reports exact tuple equality on the canonical form.
func (p Permission) Equal(other Permission) bool {
	return p.Key() == other.Key()
}

// Implies reports whether this permission (as a grant) covers the
// requested permission. A grant implies a request when:
//
//   - both have the same type,
//   - the grant's actions are a superset of the request's actions,
//   - the grant's target pattern matches the request's target
//     (glob semantics, see MatchTarget), and
//   - neither side is unresolved.
//
// Equal permissions always imply each other, unresolved ones included:
// an identical grant covers an identical request even when its target
// is a verbatim placeholder.
func (p Permission) Implies(request Permission) bool {
	if p.Equal(request) {
		return true
	}
	if p.Unresolved() || request.Unresolved() {
		return false
	}
	if p.permissionType != request.permissionType {
		return false
	}
	if !actionsSuperset(p.actions, request.actions) {
		return false
	}
	return MatchTarget(p.target, request.target)
}

// Key returns the canonical identity string used for set membership
// and map keying. The separator is unlikely to appear in real targets
// or actions; collisions would require NUL bytes in the input.
func (p Permission) Key() string {
	return p.permissionType + "\x00" + p.target + "\x00" + strings.Join(p.actions, "\x00")
}

// String formats the permission for logs and CLI output:
// "file:/tmp/** [read, write]".
func (p Permission) String() string {
	if len(p.actions) == 0 {
		return fmt.Sprintf("%s:%s", p.permissionType, p.target)
	}
	return fmt.Sprintf("%s:%s [%s]", p.permissionType, p.target, strings.Join(p.actions, ", "))
}

// canonicalActions deduplicates and sorts an action list. Returns nil
// for an empty input so that zero-action permissions compare equal
// regardless of whether the caller passed nil or an empty slice.
func canonicalActions(actions []string) []string {
	if len(actions) == 0 {
		return nil
	}
	seen := make(map[string]bool, len(actions))
	out := make([]string, 0, len(actions))
	for _, action := range actions {
		if action == "" || seen[action] {
			continue
		}
		seen[action] = true
		out = append(out, action)
	}
	if len(out) == 0 {
		return nil
	}
	sort.Strings(out)
	return out
}

// actionsSuperset reports whether grant (canonical, sorted) contains
// every action in request (canonical, sorted).
func actionsSuperset(grant, request []string) bool {
	if len(request) > len(grant) {
		return false
	}
	i := 0
	for _, want := range request {
		for i < len(grant) && grant[i] < want {
			i++
		}
		if i >= len(grant) || grant[i] != want {
			return false
		}
		i++
	}
	return true
}
