// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package reference

import "context"

// Repository defines the persistence contract of one taxonomy table.
type Repository interface {
	/*
		List returns a page of terms ordered by newest first and the total count.

		Returns:
		  - []*Term: Page of terms
		  - int: Total count matching the filter
		  - error: Storage failures
	*/
	List(ctx context.Context, filter Filter, limit, offset int) ([]*Term, int, error)

	/*
		Create inserts a new term and fills its ID.

		Returns:
		  - error: CONFLICT when the slug is taken
	*/
	Create(ctx context.Context, term *Term) error

	/*
		DeleteBySlug removes a term. Titles pointing at a deleted category keep
		existing with no category; genre links are removed.

		Returns:
		  - error: NOT_FOUND when no term has that slug
	*/
	DeleteBySlug(ctx context.Context, slug string) error
}
