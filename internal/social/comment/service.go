// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package comment

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/taibuivan/yamdb/internal/platform/apperr"
	"github.com/taibuivan/yamdb/internal/platform/sec"
	"github.com/taibuivan/yamdb/internal/platform/validate"
)

// Service implements the business rules of comments.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

// NewService constructs a comment [Service].
func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// List returns the comments of a review addressed under its title.
func (service *Service) List(ctx context.Context, titleID, reviewID int64, limit, offset int) ([]*Comment, int, error) {
	if err := service.requireReview(ctx, titleID, reviewID); err != nil {
		return nil, 0, err
	}
	return service.repo.List(ctx, reviewID, limit, offset)
}

func (service *Service) Get(ctx context.Context, titleID, reviewID, id int64) (*Comment, error) {
	if err := service.requireReview(ctx, titleID, reviewID); err != nil {
		return nil, err
	}
	return service.repo.Get(ctx, reviewID, id)
}

// Create stores a comment by the caller on a review.
func (service *Service) Create(ctx context.Context, actor *sec.Actor, titleID, reviewID int64, input Input) (*Comment, error) {
	if actor == nil {
		return nil, apperr.Unauthorized("Authentication required")
	}

	if err := validateText(input.Text); err != nil {
		return nil, err
	}

	if err := service.requireReview(ctx, titleID, reviewID); err != nil {
		return nil, err
	}

	comment := &Comment{
		ReviewID: reviewID,
		AuthorID: actor.ID,
		Author:   actor.Username,
		Text:     input.Text,
	}
	if err := service.repo.Create(ctx, comment); err != nil {
		return nil, err
	}

	service.logger.InfoContext(ctx, "comment_created",
		slog.Int64("comment_id", comment.ID),
		slog.Int64("review_id", reviewID),
	)
	return comment, nil
}

// Replace rewrites the text (PUT). Only the author may do so.
func (service *Service) Replace(ctx context.Context, actor *sec.Actor, titleID, reviewID, id int64, input Input) (*Comment, error) {
	return service.edit(ctx, http.MethodPut, actor, titleID, reviewID, id, &input.Text)
}

// Update applies a partial update (PATCH). Only the author may do so.
func (service *Service) Update(ctx context.Context, actor *sec.Actor, titleID, reviewID, id int64, patch Patch) (*Comment, error) {
	return service.edit(ctx, http.MethodPatch, actor, titleID, reviewID, id, patch.Text)
}

// Delete removes a comment. The author or a moderator may do so.
func (service *Service) Delete(ctx context.Context, actor *sec.Actor, titleID, reviewID, id int64) error {
	if _, err := service.authorize(ctx, http.MethodDelete, actor, titleID, reviewID, id); err != nil {
		return err
	}

	if err := service.repo.Delete(ctx, id); err != nil {
		return err
	}

	service.logger.WarnContext(ctx, "comment_deleted", slog.Int64("comment_id", id), slog.Int64("actor_id", actor.ID))
	return nil
}

func (service *Service) edit(ctx context.Context, method string, actor *sec.Actor, titleID, reviewID, id int64, text *string) (*Comment, error) {
	comment, err := service.authorize(ctx, method, actor, titleID, reviewID, id)
	if err != nil {
		return nil, err
	}

	if text != nil {
		comment.Text = *text
	}
	if err := validateText(comment.Text); err != nil {
		return nil, err
	}

	if err := service.repo.Update(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

func (service *Service) authorize(ctx context.Context, method string, actor *sec.Actor, titleID, reviewID, id int64) (*Comment, error) {
	if actor == nil {
		return nil, apperr.Unauthorized("Authentication required")
	}

	if err := service.requireReview(ctx, titleID, reviewID); err != nil {
		return nil, err
	}

	comment, err := service.repo.Get(ctx, reviewID, id)
	if err != nil {
		return nil, err
	}

	if !sec.ReviewCommentObject(method, actor, comment.AuthorID) {
		return nil, apperr.Forbidden("You can only modify your own comments")
	}
	return comment, nil
}

// requireReview checks that the review exists under the title in the URL.
// A review reached through the wrong title is reported as missing.
func (service *Service) requireReview(ctx context.Context, titleID, reviewID int64) error {
	owner, found, err := service.repo.ReviewTitleID(ctx, reviewID)
	if err != nil {
		return err
	}
	if !found || owner != titleID {
		return apperr.NotFound("Review")
	}
	return nil
}

func validateText(text string) error {
	validator := &validate.Validator{}
	validator.Required(FieldText, text)
	return validator.Err()
}
