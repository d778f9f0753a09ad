// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package review

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/taibuivan/yamdb/internal/platform/apperr"
	"github.com/taibuivan/yamdb/internal/platform/metrics"
	"github.com/taibuivan/yamdb/internal/platform/sec"
	"github.com/taibuivan/yamdb/internal/platform/validate"
)

// Service implements the business rules of reviews.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

// NewService constructs a review [Service].
func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// List returns the reviews of an existing title.
func (service *Service) List(ctx context.Context, titleID int64, limit, offset int) ([]*Review, int, error) {
	if err := service.requireTitle(ctx, titleID); err != nil {
		return nil, 0, err
	}
	return service.repo.List(ctx, titleID, limit, offset)
}

// Get returns one review, scoped to its title so ids from another title 404.
func (service *Service) Get(ctx context.Context, titleID, id int64) (*Review, error) {
	return service.repo.Get(ctx, titleID, id)
}

// Create stores the caller's review of a title. Author and title come from
// the request context, never from the payload.
func (service *Service) Create(ctx context.Context, actor *sec.Actor, titleID int64, input Input) (*Review, error) {
	if actor == nil {
		return nil, apperr.Unauthorized("Authentication required")
	}

	if err := validateInput(input.Text, input.Score); err != nil {
		return nil, err
	}

	if err := service.requireTitle(ctx, titleID); err != nil {
		return nil, err
	}

	reviewed, err := service.repo.HasReviewed(ctx, titleID, actor.ID)
	if err != nil {
		return nil, err
	}
	if reviewed {
		return nil, ErrAlreadyReviewed
	}

	review := &Review{
		TitleID:  titleID,
		AuthorID: actor.ID,
		Author:   actor.Username,
		Text:     input.Text,
		Score:    *input.Score,
	}
	if err := service.repo.Create(ctx, review); err != nil {
		return nil, err
	}

	metrics.ReviewsCreatedTotal.Inc()
	service.logger.InfoContext(ctx, "review_created",
		slog.Int64("review_id", review.ID),
		slog.Int64("title_id", titleID),
	)
	return review, nil
}

// Replace rewrites text and score (PUT). Only the author may do so.
func (service *Service) Replace(ctx context.Context, actor *sec.Actor, titleID, id int64, input Input) (*Review, error) {
	review, err := service.authorize(ctx, http.MethodPut, actor, titleID, id)
	if err != nil {
		return nil, err
	}

	if err := validateInput(input.Text, input.Score); err != nil {
		return nil, err
	}

	review.Text = input.Text
	review.Score = *input.Score
	if err := service.repo.Update(ctx, review); err != nil {
		return nil, err
	}
	return review, nil
}

// Update applies a partial update (PATCH). Only the author may do so.
func (service *Service) Update(ctx context.Context, actor *sec.Actor, titleID, id int64, patch Patch) (*Review, error) {
	review, err := service.authorize(ctx, http.MethodPatch, actor, titleID, id)
	if err != nil {
		return nil, err
	}

	if patch.Text != nil {
		review.Text = *patch.Text
	}
	if patch.Score != nil {
		review.Score = *patch.Score
	}

	score := review.Score
	if err := validateInput(review.Text, &score); err != nil {
		return nil, err
	}

	if err := service.repo.Update(ctx, review); err != nil {
		return nil, err
	}
	return review, nil
}

// Delete removes a review. The author or a moderator may do so.
func (service *Service) Delete(ctx context.Context, actor *sec.Actor, titleID, id int64) error {
	if _, err := service.authorize(ctx, http.MethodDelete, actor, titleID, id); err != nil {
		return err
	}

	if err := service.repo.Delete(ctx, id); err != nil {
		return err
	}

	service.logger.WarnContext(ctx, "review_deleted", slog.Int64("review_id", id), slog.Int64("actor_id", actor.ID))
	return nil
}

// authorize loads the review under its title and applies the object-level rule.
func (service *Service) authorize(ctx context.Context, method string, actor *sec.Actor, titleID, id int64) (*Review, error) {
	if actor == nil {
		return nil, apperr.Unauthorized("Authentication required")
	}

	review, err := service.repo.Get(ctx, titleID, id)
	if err != nil {
		return nil, err
	}

	if !sec.ReviewCommentObject(method, actor, review.AuthorID) {
		return nil, apperr.Forbidden("You can only modify your own reviews")
	}
	return review, nil
}

func (service *Service) requireTitle(ctx context.Context, titleID int64) error {
	exists, err := service.repo.TitleExists(ctx, titleID)
	if err != nil {
		return err
	}
	if !exists {
		return apperr.NotFound("Title")
	}
	return nil
}

func validateInput(text string, score *int) error {
	validator := &validate.Validator{}
	validator.Required(FieldText, text)

	if score == nil {
		validator.Custom(FieldScore, true, "This field is required")
	} else {
		validator.Range(FieldScore, *score, MinScore, MaxScore)
	}

	return validator.Err()
}
