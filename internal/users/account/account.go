// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package account owns user accounts: the profile, the role and the state a
confirmation code is bound to.

# Access Control

  - Admin: list, search, create, read, update and delete any account.
  - Authenticated: read and update the own profile via /users/me. Only a
    superuser may change their own role there.

The package also resolves authenticated callers for the request pipeline
(see [Service.LoadActor]).
*/
package account

import (
	"time"

	"github.com/taibuivan/yamdb/internal/platform/sec"
)

// # Domain Entities

// User is a registered account.
type User struct {
	ID           int64        `json:"-"`
	Username     string       `json:"username"`
	Email        string       `json:"email"`
	FirstName    string       `json:"first_name"`
	LastName     string       `json:"last_name"`
	Bio          string       `json:"bio"`
	Role         sec.UserRole `json:"role"`
	IsSuperuser  bool         `json:"-"`
	PasswordHash string       `json:"-"`
	LastLogin    *time.Time   `json:"-"`
	DateJoined   time.Time    `json:"-"`
}

// Actor returns the request-scoped view of the user.
func (user *User) Actor() *sec.Actor {
	return &sec.Actor{
		ID:          user.ID,
		Username:    user.Username,
		Role:        user.Role,
		IsSuperuser: user.IsSuperuser,
	}
}

// State returns the fields a confirmation code is bound to.
func (user *User) State() sec.UserState {
	return sec.UserState{
		ID:           user.ID,
		Email:        user.Email,
		PasswordHash: user.PasswordHash,
		LastLogin:    user.LastLogin,
	}
}

// Input is the payload of an admin account creation.
type Input struct {
	Username  string       `json:"username"`
	Email     string       `json:"email"`
	FirstName string       `json:"first_name"`
	LastName  string       `json:"last_name"`
	Bio       string       `json:"bio"`
	Role      sec.UserRole `json:"role"`
}

// Patch is a partial account update. Nil fields are left untouched.
type Patch struct {
	Username  *string       `json:"username"`
	Email     *string       `json:"email"`
	FirstName *string       `json:"first_name"`
	LastName  *string       `json:"last_name"`
	Bio       *string       `json:"bio"`
	Role      *sec.UserRole `json:"role"`
}

// Filter narrows an account listing.
type Filter struct {
	Search string
}

// # Field Identifiers

const (
	FieldUsername  = "username"
	FieldEmail     = "email"
	FieldFirstName = "first_name"
	FieldLastName  = "last_name"
	FieldBio       = "bio"
	FieldRole      = "role"
)

// Column limits of users.account.
const (
	MaxUsernameLength = 150
	MaxEmailLength    = 254
	MaxNameLength     = 150
	MaxBioLength      = 500
)
