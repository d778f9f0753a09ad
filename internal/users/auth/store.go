// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"time"

	"github.com/taibuivan/yamdb/internal/users/account"
)

// UserRepository is the slice of the account store the sign-in flow needs.
// [account.PostgresRepository] satisfies it.
type UserRepository interface {
	/*
		GetOrCreate returns the account owning exactly (username, email).

		Returns:
		  - error: CONFLICT when either value belongs to another account
	*/
	GetOrCreate(ctx context.Context, username, email string) (*account.User, bool, error)

	GetByUsername(ctx context.Context, username string) (*account.User, error)

	// RecordLogin stamps last_login.
	RecordLogin(ctx context.Context, id int64, at time.Time) error
}

// CodeLedger remembers consumed confirmation codes.
type CodeLedger interface {
	/*
		Consume marks code as used for ttl.

		Returns:
		  - bool: False if the code had already been consumed
		  - error: Ledger failures
	*/
	Consume(ctx context.Context, code string, ttl time.Duration) (bool, error)
}
