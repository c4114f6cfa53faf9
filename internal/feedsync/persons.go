// Copyright (c) 2026 PodCentral. All rights reserved.

package feedsync

import (
	"net/url"
	"strings"
)

// # Person Reconciliation

// Canonical contributor roles. Every directory-supplied role collapses onto
// one of these four before storage, so (name, role) stays a usable dedup key.
const (
	RoleHost     = "host"
	RoleGuest    = "guest"
	RoleEditor   = "editor"
	RoleProducer = "producer"
)

// canonicalRoles is checked in declaration order; the first substring match
// wins.
var canonicalRoles = []string{RoleHost, RoleGuest, RoleEditor, RoleProducer}

/*
NormalizeRole collapses a free-form directory role onto a canonical role.

Description: Case-insensitive substring match, so "Co-Host", "HOST", and
"hosting" all normalize to "host". Anything unrecognized defaults to
"guest" rather than polluting storage with arbitrary role strings.

Parameters:
  - role: The directory-supplied role text.

Returns:
  - string: One of the canonical role constants.
*/
func NormalizeRole(role string) string {
	lowered := strings.ToLower(role)

	for _, canonical := range canonicalRoles {
		if strings.Contains(lowered, canonical) {
			return canonical
		}
	}

	return RoleGuest
}

// PlaceholderAvatar returns a deterministic avatar URL for a contributor
// without a supplied image. Deterministic by name, so repeated syncs keep
// the same placeholder instead of churning the row.
func PlaceholderAvatar(name string) string {
	return "https://i.pravatar.cc/150?u=" + url.QueryEscape(name)
}
