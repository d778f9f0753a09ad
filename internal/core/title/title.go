// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package title manages the works of the catalog.

A title belongs to at most one category and to any number of genres. Its
rating is never stored: it is the mean review score, computed in the same
statement that reads the title.

# Representations

  - [Title] is the read model: category and genres are nested objects and
    the rating is filled.
  - [WriteView] answers writes: category and genres are slugs and the
    rating is always null.
*/
package title

import (
	"strconv"

	"github.com/taibuivan/yamdb/internal/core/reference"
)

// Title is the read model of a catalog work.
type Title struct {
	ID          int64            `json:"id"`
	Name        string           `json:"name"`
	Year        int              `json:"year"`
	Rating      *float64         `json:"rating"`
	Description string           `json:"description"`
	Category    *reference.Term  `json:"category"`
	Genre       []reference.Term `json:"genre"`
}

// WriteView is returned by create and update operations.
type WriteView struct {
	ID          int64    `json:"id"`
	Name        string   `json:"name"`
	Year        int      `json:"year"`
	Rating      *float64 `json:"rating"`
	Description string   `json:"description"`
	Category    *string  `json:"category"`
	Genre       []string `json:"genre"`
}

// Record is the persisted shape of a title.
type Record struct {
	ID          int64
	Name        string
	Year        int
	Description string
	CategoryID  *int64
	GenreIDs    []int64
}

// Filter holds the list parameters of titles. Empty fields do not filter.
type Filter struct {
	// Category is a category slug.
	Category string
	// Genre is a genre slug.
	Genre string
	// Name is a case-insensitive substring of the title name.
	Name string
	Year *int
}

// Field names used in validation details.
const (
	FieldName        = "name"
	FieldYear        = "year"
	FieldDescription = "description"
	FieldCategory    = "category"
	FieldGenre       = "genre"

	MaxNameLength = 256
)

// RoundRating rounds a mean score to one decimal. Exact binary ties round to
// even, so 7.25 becomes 7.2. A nil mean (no reviews) stays nil.
func RoundRating(mean *float64) *float64 {
	if mean == nil {
		return nil
	}
	rounded, err := strconv.ParseFloat(strconv.FormatFloat(*mean, 'f', 1, 64), 64)
	if err != nil {
		return nil
	}
	return &rounded
}
