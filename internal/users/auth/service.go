// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/taibuivan/yamdb/internal/platform/apperr"
	"github.com/taibuivan/yamdb/internal/platform/constants"
	"github.com/taibuivan/yamdb/internal/platform/mail"
	"github.com/taibuivan/yamdb/internal/platform/metrics"
	"github.com/taibuivan/yamdb/internal/platform/sec"
	"github.com/taibuivan/yamdb/internal/platform/validate"
	"github.com/taibuivan/yamdb/internal/users/account"
)

// ErrInvalidCode is returned for a malformed, expired, foreign or reused code.
var ErrInvalidCode = validate.RequiredError(FieldConfirmationCode, "Invalid or expired confirmation code")

// TokenProvider signs access tokens. [sec.TokenService] satisfies it.
type TokenProvider interface {
	GenerateAccessToken(userID int64, username, role string, timeToLive time.Duration) (string, error)
}

// Service implements the signup and token use cases.
type Service struct {
	users     UserRepository
	ledger    CodeLedger
	codes     *sec.CodeGenerator
	tokens    TokenProvider
	mailer    mail.Sender
	accessTTL time.Duration
	logger    *slog.Logger
	now       func() time.Time
}

// NewService constructs the sign-in [Service].
func NewService(
	users UserRepository,
	ledger CodeLedger,
	codes *sec.CodeGenerator,
	tokens TokenProvider,
	mailer mail.Sender,
	accessTTL time.Duration,
	logger *slog.Logger,
) *Service {
	return &Service{
		users:     users,
		ledger:    ledger,
		codes:     codes,
		tokens:    tokens,
		mailer:    mailer,
		accessTTL: accessTTL,
		logger:    logger,
		now:       time.Now,
	}
}

// WithClock replaces the time source used for last_login. Intended for tests.
func (service *Service) WithClock(now func() time.Time) *Service {
	clone := *service
	clone.now = now
	return &clone
}

// # Signup

/*
Signup registers the (username, email) pair, or finds it again, and emails
a fresh confirmation code.

Returns:
  - *account.User: The account the code was issued for
  - error: VALIDATION_ERROR, CONFLICT, or a delivery failure
*/
func (service *Service) Signup(ctx context.Context, input SignupInput) (*account.User, error) {
	if err := validate.Struct(input); err != nil {
		return nil, err
	}

	user, created, err := service.users.GetOrCreate(ctx, input.Username, input.Email)
	if err != nil {
		if apperr.IsCode(err, "CONFLICT") {
			metrics.SignupsTotal.WithLabelValues("conflict").Inc()
		}
		return nil, err
	}

	code := service.codes.Make(user.State())
	message, err := mail.ConfirmationMessage(user.Email, user.Username, code, service.codes.TTL())
	if err != nil {
		return nil, err
	}

	sendCtx, cancel := context.WithTimeout(ctx, constants.MailSendTimeout)
	defer cancel()

	if err := service.mailer.Send(sendCtx, message); err != nil {
		metrics.SignupsTotal.WithLabelValues("mail_failed").Inc()
		return nil, fmt.Errorf("auth_signup_send_code_failed: %w", err)
	}

	metrics.SignupsTotal.WithLabelValues("sent").Inc()
	service.logger.InfoContext(ctx, "confirmation_code_sent",
		slog.Int64("user_id", user.ID),
		slog.Bool("created", created),
	)
	return user, nil
}

// # Token Exchange

/*
Token consumes a confirmation code and issues an access token.

Returns:
  - string: Signed JWT
  - error: VALIDATION_ERROR, NOT_FOUND for an unknown username, or
    [ErrInvalidCode]
*/
func (service *Service) Token(ctx context.Context, input TokenInput) (string, error) {
	if err := validate.Struct(input); err != nil {
		return "", err
	}

	user, err := service.users.GetByUsername(ctx, input.Username)
	if err != nil {
		return "", err
	}

	if !service.codes.Check(user.State(), input.ConfirmationCode) {
		metrics.TokensTotal.WithLabelValues("invalid_code").Inc()
		return "", ErrInvalidCode
	}

	// Every code minted before this moment stops matching the account state.
	// The login is stamped before the ledger claim so a failed write leaves
	// the code usable for a retry.
	if err := service.users.RecordLogin(ctx, user.ID, service.now().UTC()); err != nil {
		return "", err
	}

	fresh, err := service.ledger.Consume(ctx, input.ConfirmationCode, service.codes.TTL())
	if err != nil {
		return "", err
	}
	if !fresh {
		metrics.TokensTotal.WithLabelValues("reused_code").Inc()
		service.logger.WarnContext(ctx, "confirmation_code_reused", slog.Int64("user_id", user.ID))
		return "", ErrInvalidCode
	}

	token, err := service.tokens.GenerateAccessToken(user.ID, user.Username, string(user.Role), service.accessTTL)
	if err != nil {
		return "", fmt.Errorf("auth_token_sign_failed: %w", err)
	}

	metrics.TokensTotal.WithLabelValues("issued").Inc()
	service.logger.InfoContext(ctx, "access_token_issued", slog.Int64("user_id", user.ID))
	return token, nil
}
