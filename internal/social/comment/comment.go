// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package comment manages discussion threads attached to reviews.
//
// A comment is addressed as /titles/{title_id}/reviews/{review_id}/comments
// and only exists under the review's own title.
package comment

import "time"

// Comment is a reply to a review.
type Comment struct {
	ID       int64     `json:"id"`
	ReviewID int64     `json:"-"`
	AuthorID int64     `json:"-"`
	Author   string    `json:"author"`
	Text     string    `json:"text"`
	PubDate  time.Time `json:"pub_date"`
}

// Input is a full comment payload (create and PUT).
type Input struct {
	Text string `json:"text"`
}

// Patch is a partial comment payload.
type Patch struct {
	Text *string `json:"text"`
}

const FieldText = "text"
