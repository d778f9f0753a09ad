// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package account_test

import (
	"context"
	"io"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/taibuivan/yamdb/internal/platform/apperr"
	"github.com/taibuivan/yamdb/internal/platform/sec"
	"github.com/taibuivan/yamdb/internal/users/account"
)

// memoryRepository is an in-memory [account.Repository] enforcing the
// username and email uniqueness of the real table.
type memoryRepository struct {
	users  map[int64]*account.User
	nextID int64
}

func newMemoryRepository() *memoryRepository {
	return &memoryRepository{users: map[int64]*account.User{}}
}

func (repo *memoryRepository) seed(user account.User) *account.User {
	repo.nextID++
	user.ID = repo.nextID
	if user.Role == "" {
		user.Role = sec.RoleUser
	}
	repo.users[user.ID] = &user
	copied := user
	return &copied
}

func (repo *memoryRepository) conflict(user *account.User) error {
	for _, stored := range repo.users {
		if stored.ID == user.ID {
			continue
		}
		if stored.Username == user.Username {
			return account.ErrUsernameTaken
		}
		if stored.Email == user.Email {
			return account.ErrEmailTaken
		}
	}
	return nil
}

func (repo *memoryRepository) List(_ context.Context, filter account.Filter, limit, offset int) ([]*account.User, int, error) {
	var matched []*account.User
	for _, stored := range repo.users {
		if strings.Contains(strings.ToLower(stored.Username), strings.ToLower(filter.Search)) {
			copied := *stored
			matched = append(matched, &copied)
		}
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].Username < matched[j].Username })
	total := len(matched)
	if offset >= total {
		return []*account.User{}, total, nil
	}
	return matched[offset:min(offset+limit, total)], total, nil
}

func (repo *memoryRepository) GetByID(_ context.Context, id int64) (*account.User, error) {
	stored, ok := repo.users[id]
	if !ok {
		return nil, apperr.NotFound("User")
	}
	copied := *stored
	return &copied, nil
}

func (repo *memoryRepository) GetByUsername(_ context.Context, username string) (*account.User, error) {
	for _, stored := range repo.users {
		if stored.Username == username {
			copied := *stored
			return &copied, nil
		}
	}
	return nil, apperr.NotFound("User")
}

func (repo *memoryRepository) Create(_ context.Context, user *account.User) error {
	if err := repo.conflict(user); err != nil {
		return err
	}
	created := repo.seed(*user)
	user.ID = created.ID
	user.DateJoined = time.Now()
	return nil
}

func (repo *memoryRepository) Update(_ context.Context, user *account.User) error {
	if err := repo.conflict(user); err != nil {
		return err
	}
	copied := *user
	repo.users[user.ID] = &copied
	return nil
}

func (repo *memoryRepository) Delete(_ context.Context, id int64) error {
	delete(repo.users, id)
	return nil
}

func (repo *memoryRepository) GetOrCreate(ctx context.Context, username, email string) (*account.User, bool, error) {
	for _, stored := range repo.users {
		if stored.Username == username && stored.Email == email {
			copied := *stored
			return &copied, false, nil
		}
	}
	user := &account.User{Username: username, Email: email, Role: sec.RoleUser}
	if err := repo.Create(ctx, user); err != nil {
		return nil, false, err
	}
	return user, true, nil
}

func (repo *memoryRepository) RecordLogin(_ context.Context, id int64, at time.Time) error {
	stored, ok := repo.users[id]
	if !ok {
		return apperr.NotFound("User")
	}
	stored.LastLogin = &at
	return nil
}

func (repo *memoryRepository) UpsertSuperuser(_ context.Context, username, email string, passwordHash *string) (*account.User, error) {
	for _, stored := range repo.users {
		if stored.Username == username {
			stored.Email = email
			stored.Role = sec.RoleAdmin
			stored.IsSuperuser = true
			if passwordHash != nil {
				stored.PasswordHash = *passwordHash
			}
			copied := *stored
			return &copied, nil
		}
	}
	user := account.User{Username: username, Email: email, Role: sec.RoleAdmin, IsSuperuser: true}
	if passwordHash != nil {
		user.PasswordHash = *passwordHash
	}
	if err := repo.conflict(&user); err != nil {
		return nil, err
	}
	return repo.seed(user), nil
}

func newService(repo *memoryRepository) *account.Service {
	return account.NewService(repo, slog.New(slog.NewJSONHandler(io.Discard, nil)))
}

