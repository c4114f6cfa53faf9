// Copyright (c) 2026 PodCentral. All rights reserved.

package feedsync_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/podcentral/api/internal/feedsync"
)

/*
TestNormalizeRole verifies the case-insensitive substring mapping onto the
four canonical roles with its guest default.
*/
func TestNormalizeRole(t *testing.T) {
	tests := []struct {
		name string
		role string
		want string
	}{
		{"exact_host", "host", "host"},
		{"uppercase", "HOST", "host"},
		{"substring_cohost", "Co-Host", "host"},
		{"guest", "Guest speaker", "guest"},
		{"editor", "Audio Editor", "editor"},
		{"producer", "Executive Producer", "producer"},
		{"unknown_defaults_to_guest", "sound engineer", "guest"},
		{"empty_defaults_to_guest", "", "guest"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, feedsync.NormalizeRole(tt.role))
		})
	}
}

/*
TestPlaceholderAvatar checks determinism and URL safety of generated
placeholder avatars.
*/
func TestPlaceholderAvatar(t *testing.T) {
	first := feedsync.PlaceholderAvatar("Jane Doe")
	second := feedsync.PlaceholderAvatar("Jane Doe")

	// Same name, same placeholder: repeated syncs must not churn the row
	assert.Equal(t, first, second)
	assert.Contains(t, first, "Jane+Doe")

	assert.NotEqual(t, first, feedsync.PlaceholderAvatar("John Smith"))
}
