// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package title

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/taibuivan/yamdb/internal/platform/apperr"
	"github.com/taibuivan/yamdb/internal/platform/validate"
	"github.com/taibuivan/yamdb/pkg/pointer"
	"github.com/taibuivan/yamdb/pkg/slice"
)

// Input is a full title payload (create and PUT).
type Input struct {
	Name        string   `json:"name"`
	Year        *int     `json:"year"`
	Description string   `json:"description"`
	Category    *string  `json:"category"`
	Genre       []string `json:"genre"`
}

// Patch is a partial title payload. Nil fields keep their value; ClearCategory
// detaches the category.
type Patch struct {
	Name          *string
	Year          *int
	Description   *string
	Category      *string
	ClearCategory bool
	Genre         []string
	GenreSet      bool
}

// Service implements the business rules of the title catalog.
type Service struct {
	repo   Repository
	logger *slog.Logger
	now    func() time.Time
}

// NewService constructs a title [Service].
func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger, now: time.Now}
}

// WithClock overrides the clock used for the year check.
func (service *Service) WithClock(now func() time.Time) *Service {
	service.now = now
	return service
}

// List returns a filtered page of titles and the total match count.
func (service *Service) List(ctx context.Context, filter Filter, limit, offset int) ([]*Title, int, error) {
	return service.repo.List(ctx, filter, limit, offset)
}

// Get returns one title with its rating, category and genres.
func (service *Service) Get(ctx context.Context, id int64) (*Title, error) {
	return service.repo.Get(ctx, id)
}

// Create validates the payload, resolves the slugs and stores the title.
func (service *Service) Create(ctx context.Context, input Input) (*WriteView, error) {
	record, view, err := service.prepare(ctx, input)
	if err != nil {
		return nil, err
	}

	if err := service.repo.Create(ctx, record); err != nil {
		return nil, err
	}

	view.ID = record.ID
	service.logger.InfoContext(ctx, "title_created", slog.Int64("title_id", record.ID))
	return view, nil
}

// Replace rewrites every field of an existing title (PUT).
func (service *Service) Replace(ctx context.Context, id int64, input Input) (*WriteView, error) {
	if _, err := service.repo.Get(ctx, id); err != nil {
		return nil, err
	}

	record, view, err := service.prepare(ctx, input)
	if err != nil {
		return nil, err
	}

	record.ID = id
	if err := service.repo.Update(ctx, record); err != nil {
		return nil, err
	}

	view.ID = id
	service.logger.InfoContext(ctx, "title_replaced", slog.Int64("title_id", id))
	return view, nil
}

// Update applies a partial update (PATCH) on top of the stored title.
func (service *Service) Update(ctx context.Context, id int64, patch Patch) (*WriteView, error) {
	current, err := service.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	// Merge the patch over the current state, then validate the whole.
	input := Input{
		Name:        current.Name,
		Year:        &current.Year,
		Description: current.Description,
		Genre:       make([]string, 0, len(current.Genre)),
	}
	if current.Category != nil {
		input.Category = &current.Category.Slug
	}
	for _, genre := range current.Genre {
		input.Genre = append(input.Genre, genre.Slug)
	}

	if patch.Name != nil {
		input.Name = *patch.Name
	}
	if patch.Year != nil {
		input.Year = patch.Year
	}
	if patch.Description != nil {
		input.Description = *patch.Description
	}
	if patch.ClearCategory {
		input.Category = nil
	} else if patch.Category != nil {
		input.Category = patch.Category
	}
	if patch.GenreSet {
		input.Genre = patch.Genre
	}

	record, view, err := service.prepare(ctx, input)
	if err != nil {
		return nil, err
	}

	record.ID = id
	if err := service.repo.Update(ctx, record); err != nil {
		return nil, err
	}

	view.ID = id
	service.logger.InfoContext(ctx, "title_updated", slog.Int64("title_id", id))
	return view, nil
}

// Delete removes a title. Its reviews and comments cascade.
func (service *Service) Delete(ctx context.Context, id int64) error {
	if err := service.repo.Delete(ctx, id); err != nil {
		return err
	}

	service.logger.WarnContext(ctx, "title_deleted", slog.Int64("title_id", id))
	return nil
}

// prepare validates input and resolves its slugs into a storable record and
// the write response. Unknown slugs are validation errors.
func (service *Service) prepare(ctx context.Context, input Input) (*Record, *WriteView, error) {
	input.Name = strings.TrimSpace(input.Name)
	genres := slice.Unique(input.Genre)

	validator := &validate.Validator{}
	validator.Required(FieldName, input.Name).MaxLen(FieldName, input.Name, MaxNameLength)

	if input.Year == nil {
		validator.Custom(FieldYear, true, "This field is required")
	} else {
		validator.Max(FieldYear, *input.Year, service.now().Year())
	}

	validator.Custom(FieldGenre, len(genres) == 0, "At least one genre is required")

	// Slugs are resolved only for an otherwise valid payload.
	if validator.HasErrors() {
		return nil, nil, validator.Err()
	}

	record := &Record{
		Name:        input.Name,
		Year:        *input.Year,
		Description: input.Description,
	}

	// Resolve the category slug
	if slug := pointer.Val(input.Category); slug != "" {
		categoryID, found, err := service.repo.CategoryID(ctx, slug)
		if err != nil {
			return nil, nil, err
		}
		validator.Custom(FieldCategory, !found, fmt.Sprintf("Category %q does not exist", slug))
		record.CategoryID = &categoryID
	}

	// Resolve the genre slugs
	genreIDs, err := service.repo.GenreIDs(ctx, genres)
	if err != nil {
		return nil, nil, err
	}
	for _, genre := range genres {
		genreID, found := genreIDs[genre]
		if !found {
			validator.Custom(FieldGenre, true, fmt.Sprintf("Genre %q does not exist", genre))
			continue
		}
		record.GenreIDs = append(record.GenreIDs, genreID)
	}

	if err := validator.Err(); err != nil {
		return nil, nil, err
	}

	view := &WriteView{
		Name:        record.Name,
		Year:        record.Year,
		Description: record.Description,
		Genre:       genres,
	}
	if record.CategoryID != nil {
		view.Category = input.Category
	}

	return record, view, nil
}

// ParseYear converts the "year" query parameter. An empty value does not filter.
func ParseYear(raw string) (*int, error) {
	if raw == "" {
		return nil, nil
	}
	year, err := strconv.Atoi(raw)
	if err != nil {
		return nil, apperr.ValidationError("Invalid filter", apperr.FieldError{Field: FieldYear, Message: "Enter a whole number"})
	}
	return &year, nil
}
