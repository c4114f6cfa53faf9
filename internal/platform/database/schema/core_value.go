// Copyright (c) 2026 PodCentral. All rights reserved.

package schema

// CoreValueConfigTable represents the 'core.value_config' table
type CoreValueConfigTable struct {
	Table     string
	ID        string
	PodcastID string
	EpisodeID string
	Type      string
	Method    string
}

// CoreValueConfig is the schema definition for core.value_config.
//
// A value config belongs to either a podcast or an episode, never both.
var CoreValueConfig = CoreValueConfigTable{
	Table:     "core.value_config",
	ID:        "id",
	PodcastID: "podcast_id",
	EpisodeID: "episode_id",
	Type:      "type",
	Method:    "method",
}

// CoreValueRecipientTable represents the 'core.value_recipient' table
type CoreValueRecipientTable struct {
	Table         string
	ID            string
	ValueConfigID string
	Name          string
	Type          string
	Address       string
	Split         string
	Position      string
}

// CoreValueRecipient is the schema definition for core.value_recipient.
//
// Recipients are deleted and reinserted whenever the owning config changes;
// position preserves the declared split order.
var CoreValueRecipient = CoreValueRecipientTable{
	Table:         "core.value_recipient",
	ID:            "id",
	ValueConfigID: "value_config_id",
	Name:          "name",
	Type:          "type",
	Address:       "address",
	Split:         "split",
	Position:      "position",
}
