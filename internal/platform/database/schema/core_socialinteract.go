// Copyright (c) 2026 PodCentral. All rights reserved.

package schema

// CoreSocialInteractTable represents the 'core.social_interact' table
type CoreSocialInteractTable struct {
	Table      string
	ID         string
	EpisodeID  string
	URI        string
	Protocol   string
	AccountURL string
}

// CoreSocialInteract is the schema definition for core.social_interact.
var CoreSocialInteract = CoreSocialInteractTable{
	Table:      "core.social_interact",
	ID:         "id",
	EpisodeID:  "episode_id",
	URI:        "uri",
	Protocol:   "protocol",
	AccountURL: "account_url",
}
