// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package reference manages the catalog taxonomies: categories and genres.

Both are flat name/slug terms addressed by slug, so a single [Service] and
[Handler] serve either one; the concrete table is chosen at construction.

# Access Control

  - Public: listing and searching.
  - Admin: creation and deletion.
*/
package reference

import "github.com/taibuivan/yamdb/internal/platform/database/schema"

// Term is a category or a genre.
type Term struct {
	ID   int64  `json:"-"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// Kind describes which taxonomy a [Service] operates on.
type Kind struct {
	// Resource names the taxonomy in client-facing errors ("Category").
	Resource string
	Table    schema.TermTable
}

var (
	// Categories is the one-per-title taxonomy.
	Categories = Kind{Resource: "Category", Table: schema.CoreCategory}
	// Genres is the many-per-title taxonomy.
	Genres = Kind{Resource: "Genre", Table: schema.CoreGenre}
)

// Filter holds the list parameters of a taxonomy.
type Filter struct {
	// Search is a case-insensitive substring of the name.
	Search string
}

// Field names and limits used in validation details.
const (
	FieldName = "name"
	FieldSlug = "slug"

	MaxNameLength = 256
)
