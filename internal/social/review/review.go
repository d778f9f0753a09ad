// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package review manages user reviews of titles.

A user writes at most one review per title. Reviews feed the title rating
and carry the comment threads of package comment.

# Access Control

  - Public: listing and reading.
  - Authenticated: creating.
  - Author: editing and deleting; a moderator may delete any review.
*/
package review

import "time"

// Review is a scored opinion on a title.
type Review struct {
	ID       int64     `json:"id"`
	TitleID  int64     `json:"-"`
	AuthorID int64     `json:"-"`
	Author   string    `json:"author"`
	Text     string    `json:"text"`
	Score    int       `json:"score"`
	PubDate  time.Time `json:"pub_date"`
}

// Input is a full review payload (create and PUT).
type Input struct {
	Text  string `json:"text"`
	Score *int   `json:"score"`
}

// Patch is a partial review payload.
type Patch struct {
	Text  *string `json:"text"`
	Score *int    `json:"score"`
}

// Field names and bounds used in validation.
const (
	FieldText  = "text"
	FieldScore = "score"

	MinScore = 1
	MaxScore = 10
)
