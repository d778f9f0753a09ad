// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package auth implements passwordless sign-in by confirmation code.

# Flow

 1. POST /auth/signup registers (or re-uses) the (username, email) pair and
    emails a confirmation code bound to the account's current state.
 2. POST /auth/token exchanges username and code for an access token. The
    code is consumed: a Redis marker rejects a replay, and the recorded
    login changes the state every older code was bound to.

Codes are stateless HMACs (see [sec.CodeGenerator]); nothing but the
consumption marker is stored.
*/
package auth

// SignupInput is the payload of POST /auth/signup.
type SignupInput struct {
	Username string `json:"username" validate:"required,max=150,username,ne=me"`
	Email    string `json:"email" validate:"required,max=254,email"`
}

// TokenInput is the payload of POST /auth/token.
type TokenInput struct {
	Username         string `json:"username" validate:"required,max=150"`
	ConfirmationCode string `json:"confirmation_code" validate:"required"`
}

const FieldConfirmationCode = "confirmation_code"
