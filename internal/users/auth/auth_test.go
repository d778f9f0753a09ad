// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth_test

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"errors"
	"io"
	"log/slog"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/taibuivan/yamdb/internal/platform/apperr"
	"github.com/taibuivan/yamdb/internal/platform/mail"
	"github.com/taibuivan/yamdb/internal/platform/sec"
	"github.com/taibuivan/yamdb/internal/users/account"
	"github.com/taibuivan/yamdb/internal/users/auth"
)

// memoryUsers is an in-memory [auth.UserRepository].
type memoryUsers struct {
	users    []*account.User
	logins   int
	loginErr error
}

func (repo *memoryUsers) GetOrCreate(_ context.Context, username, email string) (*account.User, bool, error) {
	for _, user := range repo.users {
		switch {
		case user.Username == username && user.Email == email:
			copied := *user
			return &copied, false, nil
		case user.Username == username:
			return nil, false, account.ErrUsernameTaken
		case user.Email == email:
			return nil, false, account.ErrEmailTaken
		}
	}
	user := &account.User{ID: int64(len(repo.users) + 1), Username: username, Email: email, Role: sec.RoleUser}
	repo.users = append(repo.users, user)
	copied := *user
	return &copied, true, nil
}

func (repo *memoryUsers) GetByUsername(_ context.Context, username string) (*account.User, error) {
	for _, user := range repo.users {
		if user.Username == username {
			copied := *user
			return &copied, nil
		}
	}
	return nil, apperr.NotFound("User")
}

func (repo *memoryUsers) RecordLogin(_ context.Context, id int64, at time.Time) error {
	if repo.loginErr != nil {
		return repo.loginErr
	}
	for _, user := range repo.users {
		if user.ID == id {
			user.LastLogin = &at
			repo.logins++
			return nil
		}
	}
	return apperr.NotFound("User")
}

// memoryLedger is an in-memory [auth.CodeLedger].
type memoryLedger struct {
	used map[string]bool
	err  error
}

func (ledger *memoryLedger) Consume(_ context.Context, code string, _ time.Duration) (bool, error) {
	if ledger.err != nil {
		return false, ledger.err
	}
	if ledger.used[code] {
		return false, nil
	}
	ledger.used[code] = true
	return true, nil
}

// outbox records sent mail.
type outbox struct {
	sent []mail.Message
	err  error
}

func (box *outbox) Send(_ context.Context, message mail.Message) error {
	if box.err != nil {
		return box.err
	}
	box.sent = append(box.sent, message)
	return nil
}

var codePattern = regexp.MustCompile(`[0-9a-z]+-[0-9a-f]{20}`)

// lastCode extracts the confirmation code from the newest email.
func (box *outbox) lastCode(t *testing.T) string {
	t.Helper()
	require.NotEmpty(t, box.sent)
	code := codePattern.FindString(box.sent[len(box.sent)-1].Body)
	require.NotEmpty(t, code)
	return code
}

// fixture wires a Service to in-memory collaborators and a movable clock.
type fixture struct {
	users   *memoryUsers
	ledger  *memoryLedger
	outbox  *outbox
	tokens  *sec.TokenService
	now     time.Time
	service *auth.Service
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	f := &fixture{
		users:  &memoryUsers{},
		ledger: &memoryLedger{used: map[string]bool{}},
		outbox: &outbox{},
		tokens: sec.NewTokenServiceFromKey(key, &key.PublicKey, "yamdb"),
		now:    time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC),
	}
	clock := func() time.Time { return f.now }

	codes, err := sec.NewCodeGenerator("test-secret", time.Hour)
	require.NoError(t, err)

	f.service = auth.NewService(
		f.users, f.ledger, codes.WithClock(clock), f.tokens, f.outbox,
		time.Hour, slog.New(slog.NewJSONHandler(io.Discard, nil)),
	).WithClock(clock)
	return f
}

var errSMTPDown = errors.New("smtp down")
