// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package review

import "context"

// Repository defines the persistence contract for reviews.
type Repository interface {
	/*
		TitleExists reports whether the title a review would attach to exists.
	*/
	TitleExists(ctx context.Context, titleID int64) (bool, error)

	/*
		List returns a page of the reviews of a title, newest first.

		Returns:
		  - []*Review: Page with author usernames
		  - int: Total reviews of the title
		  - error: Storage failures
	*/
	List(ctx context.Context, titleID int64, limit, offset int) ([]*Review, int, error)

	/*
		Get returns a review of the given title.

		Returns:
		  - error: NOT_FOUND when the review does not exist under that title
	*/
	Get(ctx context.Context, titleID, id int64) (*Review, error)

	/*
		HasReviewed reports whether the author already reviewed the title.
	*/
	HasReviewed(ctx context.Context, titleID, authorID int64) (bool, error)

	/*
		Create inserts the review, filling ID and PubDate.

		Returns:
		  - error: CONFLICT when the author already reviewed the title
	*/
	Create(ctx context.Context, review *Review) error

	/*
		Update stores new text and score for an existing review.
	*/
	Update(ctx context.Context, review *Review) error

	/*
		Delete removes a review together with its comments.
	*/
	Delete(ctx context.Context, id int64) error
}
