// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package reference

import (
	"context"
	"log/slog"
	"strings"

	"github.com/taibuivan/yamdb/internal/platform/validate"
	"github.com/taibuivan/yamdb/pkg/slug"
)

// Service implements the business rules of one taxonomy.
type Service struct {
	repo   Repository
	kind   Kind
	logger *slog.Logger
}

// NewService constructs a taxonomy [Service].
func NewService(repo Repository, kind Kind, logger *slog.Logger) *Service {
	return &Service{repo: repo, kind: kind, logger: logger}
}

// Kind returns the taxonomy served.
func (service *Service) Kind() Kind {
	return service.kind
}

func (service *Service) List(ctx context.Context, filter Filter, limit, offset int) ([]*Term, int, error) {
	return service.repo.List(ctx, filter, limit, offset)
}

// Create validates and stores a term. A missing slug is derived from the name.
func (service *Service) Create(ctx context.Context, term *Term) error {
	term.Name = strings.TrimSpace(term.Name)
	term.Slug = strings.TrimSpace(term.Slug)
	if term.Slug == "" {
		term.Slug = slug.From(term.Name)
	}

	validator := &validate.Validator{}
	validator.Required(FieldName, term.Name).MaxLen(FieldName, term.Name, MaxNameLength)
	validator.Required(FieldSlug, term.Slug).MaxLen(FieldSlug, term.Slug, slug.MaxLength).Slug(FieldSlug, term.Slug)
	if err := validator.Err(); err != nil {
		return err
	}

	if err := service.repo.Create(ctx, term); err != nil {
		return err
	}

	service.logger.InfoContext(ctx, "term_created",
		slog.String("kind", service.kind.Resource),
		slog.String("slug", term.Slug),
	)
	return nil
}

func (service *Service) Delete(ctx context.Context, termSlug string) error {
	if err := service.repo.DeleteBySlug(ctx, termSlug); err != nil {
		return err
	}

	service.logger.WarnContext(ctx, "term_deleted",
		slog.String("kind", service.kind.Resource),
		slog.String("slug", termSlug),
	)
	return nil
}
