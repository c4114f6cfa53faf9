// Copyright (c) 2026 PodCentral. All rights reserved.

package schema

// CorePersonTable represents the 'core.person' table
type CorePersonTable struct {
	Table     string
	ID        string
	Name      string
	Role      string
	GroupName string
	Img       string
	Href      string
	CreatedAt string
}

// CorePerson is the schema definition for core.person.
//
// (name, role) is the natural dedup key: the same contributor appearing on
// many episodes maps to a single row.
var CorePerson = CorePersonTable{
	Table:     "core.person",
	ID:        "id",
	Name:      "name",
	Role:      "role",
	GroupName: "group_name",
	Img:       "img",
	Href:      "href",
	CreatedAt: "created_at",
}

// CoreEpisodePersonTable represents the 'core.episode_person' join table
type CoreEpisodePersonTable struct {
	Table     string
	EpisodeID string
	PersonID  string
}

// CoreEpisodePerson is the schema definition for core.episode_person.
var CoreEpisodePerson = CoreEpisodePersonTable{
	Table:     "core.episode_person",
	EpisodeID: "episode_id",
	PersonID:  "person_id",
}
