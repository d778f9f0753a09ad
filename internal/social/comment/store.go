// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package comment

import "context"

// Repository defines the persistence contract for comments.
type Repository interface {
	/*
		ReviewTitleID resolves the title a review belongs to.

		Returns:
		  - int64: The owning title id
		  - bool: False when the review does not exist
		  - error: Storage failures
	*/
	ReviewTitleID(ctx context.Context, reviewID int64) (int64, bool, error)

	/*
		List returns a page of the comments of a review, newest first.
	*/
	List(ctx context.Context, reviewID int64, limit, offset int) ([]*Comment, int, error)

	/*
		Get returns a comment of the given review.

		Returns:
		  - error: NOT_FOUND when the comment does not exist under that review
	*/
	Get(ctx context.Context, reviewID, id int64) (*Comment, error)

	// Create inserts the comment, filling ID and PubDate.
	Create(ctx context.Context, comment *Comment) error

	Update(ctx context.Context, comment *Comment) error

	Delete(ctx context.Context, id int64) error
}
