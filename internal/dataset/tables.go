// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package dataset loads the bundled CSV fixtures into PostgreSQL and wipes the
content tables again.

Each fixture file maps onto exactly one table. Headers are checked against a
whitelist so a stray column never reaches the generated SQL, and the two
legacy header names ('category' on titles, 'author' on reviews and comments)
are renamed to their foreign key columns.
*/
package dataset

import (
	"fmt"
	"strings"

	"github.com/taibuivan/yamdb/internal/platform/database/schema"
)

// Column binds a CSV header to a table column and the SQL type its text
// value is cast to.
type Column struct {
	Header   string
	Name     string
	Cast     string
	Nullable bool
}

// Table describes one fixture file.
type Table struct {
	// Label is the model name printed by the CLI.
	Label   string
	File    string
	Name    string
	Columns []Column
}

// Tables lists the fixtures in load order. Parents come before children.
var Tables = []Table{
	{
		Label: "User",
		File:  "users.csv",
		Name:  schema.UserAccount.Table,
		Columns: []Column{
			{Header: "id", Name: schema.UserAccount.ID, Cast: "bigint"},
			{Header: "username", Name: schema.UserAccount.Username, Cast: "text"},
			{Header: "email", Name: schema.UserAccount.Email, Cast: "text"},
			{Header: "role", Name: schema.UserAccount.Role, Cast: "text"},
			{Header: "bio", Name: schema.UserAccount.Bio, Cast: "text"},
			{Header: "first_name", Name: schema.UserAccount.FirstName, Cast: "text"},
			{Header: "last_name", Name: schema.UserAccount.LastName, Cast: "text"},
		},
	},
	{
		Label:   "Category",
		File:    "category.csv",
		Name:    schema.CoreCategory.Table,
		Columns: termColumns(schema.CoreCategory),
	},
	{
		Label:   "Genre",
		File:    "genre.csv",
		Name:    schema.CoreGenre.Table,
		Columns: termColumns(schema.CoreGenre),
	},
	{
		Label: "Title",
		File:  "titles.csv",
		Name:  schema.CoreTitle.Table,
		Columns: []Column{
			{Header: "id", Name: schema.CoreTitle.ID, Cast: "bigint"},
			{Header: "name", Name: schema.CoreTitle.Name, Cast: "text"},
			{Header: "year", Name: schema.CoreTitle.Year, Cast: "integer"},
			{Header: "description", Name: schema.CoreTitle.Description, Cast: "text"},
			{Header: "category", Name: schema.CoreTitle.CategoryID, Cast: "bigint", Nullable: true},
		},
	},
	{
		Label: "GenreTitle",
		File:  "genre_title.csv",
		Name:  schema.GenreTitle.Table,
		Columns: []Column{
			{Header: "id", Name: schema.GenreTitle.ID, Cast: "bigint"},
			{Header: "title_id", Name: schema.GenreTitle.TitleID, Cast: "bigint"},
			{Header: "genre_id", Name: schema.GenreTitle.GenreID, Cast: "bigint"},
		},
	},
	{
		Label: "Review",
		File:  "review.csv",
		Name:  schema.SocialReview.Table,
		Columns: []Column{
			{Header: "id", Name: schema.SocialReview.ID, Cast: "bigint"},
			{Header: "title_id", Name: schema.SocialReview.TitleID, Cast: "bigint"},
			{Header: "text", Name: schema.SocialReview.Text, Cast: "text"},
			{Header: "author", Name: schema.SocialReview.AuthorID, Cast: "bigint"},
			{Header: "score", Name: schema.SocialReview.Score, Cast: "integer"},
			{Header: "pub_date", Name: schema.SocialReview.PubDate, Cast: "timestamptz"},
		},
	},
	{
		Label: "Comment",
		File:  "comments.csv",
		Name:  schema.SocialComment.Table,
		Columns: []Column{
			{Header: "id", Name: schema.SocialComment.ID, Cast: "bigint"},
			{Header: "review_id", Name: schema.SocialComment.ReviewID, Cast: "bigint"},
			{Header: "text", Name: schema.SocialComment.Text, Cast: "text"},
			{Header: "author", Name: schema.SocialComment.AuthorID, Cast: "bigint"},
			{Header: "pub_date", Name: schema.SocialComment.PubDate, Cast: "timestamptz"},
		},
	},
}

func termColumns(term schema.TermTable) []Column {
	return []Column{
		{Header: "id", Name: term.ID, Cast: "bigint"},
		{Header: "name", Name: term.Name, Cast: "text"},
		{Header: "slug", Name: term.Slug, Cast: "text"},
	}
}

// Map resolves a CSV header row against the whitelist, preserving the
// header order. Unknown or repeated headers are rejected.
func (t Table) Map(header []string) ([]Column, error) {
	known := make(map[string]Column, len(t.Columns))
	for _, column := range t.Columns {
		known[column.Header] = column
	}

	seen := make(map[string]bool, len(header))
	mapped := make([]Column, 0, len(header))
	for _, raw := range header {
		name := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(raw, "\ufeff")))
		column, ok := known[name]
		if !ok {
			return nil, fmt.Errorf("dataset: %s: unknown column %q", t.File, raw)
		}
		if seen[name] {
			return nil, fmt.Errorf("dataset: %s: duplicate column %q", t.File, raw)
		}
		seen[name] = true
		mapped = append(mapped, column)
	}

	if !seen["id"] {
		return nil, fmt.Errorf("dataset: %s: missing id column", t.File)
	}
	return mapped, nil
}

// InsertSQL builds the idempotent insert statement for the mapped columns.
// Every parameter travels as text and is cast server side.
func (t Table) InsertSQL(columns []Column) string {
	names := make([]string, len(columns))
	values := make([]string, len(columns))
	for i, column := range columns {
		names[i] = column.Name
		if column.Nullable {
			values[i] = fmt.Sprintf("NULLIF($%d::text, '')::%s", i+1, column.Cast)
		} else {
			values[i] = fmt.Sprintf("$%d::text::%s", i+1, column.Cast)
		}
	}

	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s) ON CONFLICT DO NOTHING",
		t.Name, strings.Join(names, ", "), strings.Join(values, ", "))
}
