// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package dataset_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/yamdb/internal/dataset"
)

func table(t *testing.T, file string) dataset.Table {
	t.Helper()
	for _, candidate := range dataset.Tables {
		if candidate.File == file {
			return candidate
		}
	}
	t.Fatalf("no table for %s", file)
	return dataset.Table{}
}

/*
TestTables_LoadOrder keeps parents ahead of the rows that reference them.
*/
func TestTables_LoadOrder(t *testing.T) {
	labels := make([]string, 0, len(dataset.Tables))
	for _, candidate := range dataset.Tables {
		labels = append(labels, candidate.Label)
	}

	assert.Equal(t, []string{"User", "Category", "Genre", "Title", "GenreTitle", "Review", "Comment"}, labels)
}

/*
TestMap_RenamesLegacyHeaders maps the author and category headers onto their
foreign key columns.
*/
func TestMap_RenamesLegacyHeaders(t *testing.T) {
	tests := []struct {
		file   string
		header []string
		want   []string
	}{
		{"titles.csv", []string{"id", "name", "year", "category"}, []string{"id", "name", "year", "category_id"}},
		{"review.csv", []string{"id", "title_id", "text", "author", "score", "pub_date"}, []string{"id", "title_id", "text", "author_id", "score", "pub_date"}},
		{"comments.csv", []string{"id", "review_id", "text", "author", "pub_date"}, []string{"id", "review_id", "text", "author_id", "pub_date"}},
		{"genre.csv", []string{"\ufeffid", " Name ", "slug"}, []string{"id", "name", "slug"}},
	}

	for _, tt := range tests {
		t.Run(tt.file, func(t *testing.T) {
			columns, err := table(t, tt.file).Map(tt.header)
			require.NoError(t, err)

			names := make([]string, len(columns))
			for i, column := range columns {
				names[i] = column.Name
			}
			assert.Equal(t, tt.want, names)
		})
	}
}

/*
TestMap_Rejects covers headers that must never reach the generated SQL.
*/
func TestMap_Rejects(t *testing.T) {
	tests := []struct {
		name   string
		header []string
		msg    string
	}{
		{"unknown", []string{"id", "name", "slug", "password"}, "unknown column"},
		{"injection", []string{"id", "name); DROP TABLE core.genre; --"}, "unknown column"},
		{"duplicate", []string{"id", "slug", "slug"}, "duplicate column"},
		{"missing_id", []string{"name", "slug"}, "missing id"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := table(t, "genre.csv").Map(tt.header)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.msg)
		})
	}
}

/*
TestInsertSQL casts text parameters and treats empty nullable values as NULL.
*/
func TestInsertSQL(t *testing.T) {
	titles := table(t, "titles.csv")
	columns, err := titles.Map([]string{"id", "name", "year", "category"})
	require.NoError(t, err)

	assert.Equal(t,
		"INSERT INTO core.title (id, name, year, category_id) "+
			"VALUES ($1::text::bigint, $2::text::text, $3::text::integer, NULLIF($4::text, '')::bigint) "+
			"ON CONFLICT DO NOTHING",
		titles.InsertSQL(columns),
	)
}

/*
TestParse reads quoted fields and reports ragged input.
*/
func TestParse(t *testing.T) {
	reviews := table(t, "review.csv")

	t.Run("ok", func(t *testing.T) {
		input := "id,title_id,text,author,score,pub_date\n" +
			"1,1,\"Great, really great\",100,10,2019-09-24T21:08:21.567Z\n"

		columns, records, err := dataset.Parse(reviews, strings.NewReader(input))
		require.NoError(t, err)
		assert.Len(t, columns, 6)
		require.Len(t, records, 1)
		assert.Equal(t, "Great, really great", records[0][2])
	})

	t.Run("empty", func(t *testing.T) {
		_, _, err := dataset.Parse(reviews, strings.NewReader(""))
		assert.ErrorContains(t, err, "empty file")
	})

	t.Run("ragged", func(t *testing.T) {
		input := "id,title_id,text\n1,2\n"
		_, _, err := dataset.Parse(reviews, strings.NewReader(input))
		assert.Error(t, err)
	})
}
