// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package account

import (
	"context"
	"time"
)

// Repository defines the persistence contract for accounts.
type Repository interface {
	/*
		List returns a page of accounts ordered by username.

		Parameters:
		  - ctx: context.Context
		  - filter: Filter (Search matches usernames case-insensitively)
		  - limit, offset: int

		Returns:
		  - []*User: The page
		  - int: Total matching accounts
		  - error: Storage failures
	*/
	List(ctx context.Context, filter Filter, limit, offset int) ([]*User, int, error)

	/*
		GetByID loads an account by its numeric id.

		Returns:
		  - error: NOT_FOUND if the account does not exist
	*/
	GetByID(ctx context.Context, id int64) (*User, error)

	/*
		GetByUsername loads an account by its exact username.

		Returns:
		  - error: NOT_FOUND if the account does not exist
	*/
	GetByUsername(ctx context.Context, username string) (*User, error)

	/*
		Create inserts a new account, filling ID and DateJoined.

		Returns:
		  - error: CONFLICT when the username or the email is taken
	*/
	Create(ctx context.Context, user *User) error

	/*
		Update stores every mutable column of an existing account.

		Returns:
		  - error: CONFLICT when the new username or email is taken
	*/
	Update(ctx context.Context, user *User) error

	// Delete removes an account with its reviews and comments.
	Delete(ctx context.Context, id int64) error

	/*
		GetOrCreate returns the account owning exactly (username, email),
		creating it when neither value is in use.

		Returns:
		  - *User: The existing or new account
		  - bool: True if the account was created
		  - error: CONFLICT when the username or the email belongs to another account
	*/
	GetOrCreate(ctx context.Context, username, email string) (*User, bool, error)

	// RecordLogin stamps last_login, which invalidates outstanding confirmation codes.
	RecordLogin(ctx context.Context, id int64, at time.Time) error

	/*
		UpsertSuperuser creates or promotes an account to admin with the
		superuser flag. A nil passwordHash keeps the current password.
	*/
	UpsertSuperuser(ctx context.Context, username, email string, passwordHash *string) (*User, error)
}
