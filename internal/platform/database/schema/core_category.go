// Copyright (c) 2026 PodCentral. All rights reserved.

package schema

// CoreCategoryTable represents the 'core.category' table
type CoreCategoryTable struct {
	Table string
	ID    string
	Name  string
	Icon  string
}

// CoreCategory is the schema definition for core.category.
//
// Category ids are normalized labels ("truecrime"), matching the values
// stored in core.podcast.categories.
var CoreCategory = CoreCategoryTable{
	Table: "core.category",
	ID:    "id",
	Name:  "name",
	Icon:  "icon",
}
