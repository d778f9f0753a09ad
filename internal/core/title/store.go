// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package title

import "context"

// Repository defines the persistence contract for titles and their genre links.
type Repository interface {
	/*
		List returns a filtered page of titles, newest first, with ratings.

		Returns:
		  - []*Title: Hydrated read models
		  - int: Total count matching the filter
		  - error: Storage failures
	*/
	List(ctx context.Context, filter Filter, limit, offset int) ([]*Title, int, error)

	/*
		Get returns one hydrated title.

		Returns:
		  - error: NOT_FOUND when the id is unknown
	*/
	Get(ctx context.Context, id int64) (*Title, error)

	/*
		CategoryID resolves a category slug.

		Returns:
		  - int64: The category id
		  - bool: false when no category has the slug
	*/
	CategoryID(ctx context.Context, slug string) (int64, bool, error)

	/*
		GenreIDs resolves genre slugs. Unknown slugs are absent from the map.
	*/
	GenreIDs(ctx context.Context, slugs []string) (map[string]int64, error)

	/*
		Create inserts the title and its genre links atomically and fills ID.
	*/
	Create(ctx context.Context, record *Record) error

	/*
		Update rewrites the title row and replaces its genre links atomically.

		Returns:
		  - error: NOT_FOUND when the id is unknown
	*/
	Update(ctx context.Context, record *Record) error

	/*
		Delete removes a title together with its genre links, reviews and comments.

		Returns:
		  - error: NOT_FOUND when the id is unknown
	*/
	Delete(ctx context.Context, id int64) error
}
