// Copyright (c) 2026 PodCentral. All rights reserved.

package schema

// CorePodcastFundingTable represents the 'core.podcast_funding' table
type CorePodcastFundingTable struct {
	Table     string
	PodcastID string
	URL       string
	Message   string
}

// CorePodcastFunding is the schema definition for core.podcast_funding.
//
// One funding link per podcast; replaced on conflict during sync.
var CorePodcastFunding = CorePodcastFundingTable{
	Table:     "core.podcast_funding",
	PodcastID: "podcast_id",
	URL:       "url",
	Message:   "message",
}
