// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package account

import (
	"context"
	"log/slog"

	"github.com/taibuivan/yamdb/internal/platform/apperr"
	"github.com/taibuivan/yamdb/internal/platform/constants"
	"github.com/taibuivan/yamdb/internal/platform/sec"
	"github.com/taibuivan/yamdb/internal/platform/validate"
	"github.com/taibuivan/yamdb/pkg/pointer"
)

// Service implements account management and caller resolution.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

// NewService constructs an account [Service].
func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// # Caller Resolution

// LoadActor resolves the caller of an authenticated request. A deleted
// account yields NOT_FOUND, which the middleware reports as 401.
func (service *Service) LoadActor(ctx context.Context, userID int64) (*sec.Actor, error) {
	user, err := service.repo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return user.Actor(), nil
}

// # Administration

func (service *Service) List(ctx context.Context, filter Filter, limit, offset int) ([]*User, int, error) {
	return service.repo.List(ctx, filter, limit, offset)
}

func (service *Service) Get(ctx context.Context, username string) (*User, error) {
	return service.repo.GetByUsername(ctx, username)
}

// Create registers an account on behalf of an admin. The account has no
// usable password and signs in through the confirmation code flow.
func (service *Service) Create(ctx context.Context, input Input) (*User, error) {
	user := &User{
		Username:     input.Username,
		Email:        input.Email,
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		Bio:          input.Bio,
		Role:         input.Role,
		PasswordHash: sec.UnusablePassword,
	}
	if user.Role == "" {
		user.Role = sec.RoleUser
	}

	if err := Validate(user); err != nil {
		return nil, err
	}

	if err := service.repo.Create(ctx, user); err != nil {
		return nil, err
	}

	service.logger.InfoContext(ctx, "user_created", slog.String("username", user.Username))
	return user, nil
}

// Update applies an admin's partial update, role included.
func (service *Service) Update(ctx context.Context, username string, patch Patch) (*User, error) {
	user, err := service.repo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	return service.apply(ctx, user, patch)
}

func (service *Service) Delete(ctx context.Context, username string) error {
	user, err := service.repo.GetByUsername(ctx, username)
	if err != nil {
		return err
	}

	if err := service.repo.Delete(ctx, user.ID); err != nil {
		return err
	}

	service.logger.WarnContext(ctx, "user_deleted", slog.String("username", username))
	return nil
}

// # Self Service

// Me returns the caller's own account.
func (service *Service) Me(ctx context.Context, actor *sec.Actor) (*User, error) {
	if actor == nil {
		return nil, apperr.Unauthorized("Authentication required")
	}
	return service.repo.GetByID(ctx, actor.ID)
}

// UpdateMe applies a partial update to the caller's own account. The role
// stays as it was unless the caller is a superuser.
func (service *Service) UpdateMe(ctx context.Context, actor *sec.Actor, patch Patch) (*User, error) {
	user, err := service.Me(ctx, actor)
	if err != nil {
		return nil, err
	}

	if !actor.IsSuperuser {
		patch.Role = nil
	}
	return service.apply(ctx, user, patch)
}

// # Operations

// EnsureSuperuser creates or promotes a superuser. An empty password keeps
// the current one, or leaves a new account without a usable password.
func (service *Service) EnsureSuperuser(ctx context.Context, username, email, password string) (*User, error) {
	candidate := &User{Username: username, Email: email, Role: sec.RoleAdmin}
	if err := Validate(candidate); err != nil {
		return nil, err
	}

	var passwordHash *string
	if password != "" {
		hashed, err := sec.HashPassword(password)
		if err != nil {
			return nil, err
		}
		passwordHash = pointer.To(hashed)
	}

	user, err := service.repo.UpsertSuperuser(ctx, username, email, passwordHash)
	if err != nil {
		return nil, err
	}

	service.logger.InfoContext(ctx, "superuser_ensured", slog.String("username", username))
	return user, nil
}

func (service *Service) apply(ctx context.Context, user *User, patch Patch) (*User, error) {
	if patch.Username != nil {
		user.Username = *patch.Username
	}
	if patch.Email != nil {
		user.Email = *patch.Email
	}
	if patch.FirstName != nil {
		user.FirstName = *patch.FirstName
	}
	if patch.LastName != nil {
		user.LastName = *patch.LastName
	}
	if patch.Bio != nil {
		user.Bio = *patch.Bio
	}
	if patch.Role != nil {
		user.Role = *patch.Role
	}

	if err := Validate(user); err != nil {
		return nil, err
	}

	if err := service.repo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Validate checks the profile columns of an account.
func Validate(user *User) error {
	validator := &validate.Validator{}

	validator.Required(FieldUsername, user.Username).MaxLen(FieldUsername, user.Username, MaxUsernameLength)
	if user.Username != "" {
		validator.Username(FieldUsername, user.Username)
	}
	validator.Custom(FieldUsername, user.Username == constants.ReservedUsername,
		"The username \"me\" is reserved")

	validator.Required(FieldEmail, user.Email).MaxLen(FieldEmail, user.Email, MaxEmailLength)
	if user.Email != "" {
		validator.Email(FieldEmail, user.Email)
	}

	validator.MaxLen(FieldFirstName, user.FirstName, MaxNameLength)
	validator.MaxLen(FieldLastName, user.LastName, MaxNameLength)
	validator.MaxLen(FieldBio, user.Bio, MaxBioLength)
	validator.OneOf(FieldRole, string(user.Role), sec.RoleNames()...)

	return validator.Err()
}
