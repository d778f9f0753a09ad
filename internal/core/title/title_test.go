// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package title_test

import (
	"context"
	"io"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/taibuivan/yamdb/internal/core/reference"
	"github.com/taibuivan/yamdb/internal/core/title"
	"github.com/taibuivan/yamdb/internal/platform/apperr"
)

// memoryRepository is an in-memory [title.Repository] seeded with
// categories, genres and review scores.
type memoryRepository struct {
	categories map[string]int64
	genres     map[string]int64
	records    map[int64]*title.Record
	scores     map[int64][]int
	nextID     int64
}

func newMemoryRepository() *memoryRepository {
	return &memoryRepository{
		categories: map[string]int64{"movie": 1, "book": 2},
		genres:     map[string]int64{"drama": 10, "comedy": 11, "horror": 12},
		records:    map[int64]*title.Record{},
		scores:     map[int64][]int{},
	}
}

func (repo *memoryRepository) hydrate(record *title.Record) *title.Title {
	hydrated := &title.Title{
		ID:          record.ID,
		Name:        record.Name,
		Year:        record.Year,
		Description: record.Description,
		Genre:       []reference.Term{},
	}
	if record.CategoryID != nil {
		for slug, id := range repo.categories {
			if id == *record.CategoryID {
				hydrated.Category = &reference.Term{Name: strings.ToUpper(slug), Slug: slug}
			}
		}
	}
	for _, genreID := range record.GenreIDs {
		for slug, id := range repo.genres {
			if id == genreID {
				hydrated.Genre = append(hydrated.Genre, reference.Term{Name: strings.ToUpper(slug), Slug: slug})
			}
		}
	}
	if scores := repo.scores[record.ID]; len(scores) > 0 {
		sum := 0
		for _, score := range scores {
			sum += score
		}
		mean := float64(sum) / float64(len(scores))
		hydrated.Rating = title.RoundRating(&mean)
	}
	return hydrated
}

func (repo *memoryRepository) List(_ context.Context, filter title.Filter, limit, offset int) ([]*title.Title, int, error) {
	ids := make([]int64, 0, len(repo.records))
	for id := range repo.records {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] > ids[j] })

	var matched []*title.Title
	for _, id := range ids {
		hydrated := repo.hydrate(repo.records[id])
		if filter.Year != nil && hydrated.Year != *filter.Year {
			continue
		}
		if filter.Name != "" && !strings.Contains(strings.ToLower(hydrated.Name), strings.ToLower(filter.Name)) {
			continue
		}
		if filter.Category != "" && (hydrated.Category == nil || hydrated.Category.Slug != filter.Category) {
			continue
		}
		if filter.Genre != "" {
			found := false
			for _, genre := range hydrated.Genre {
				found = found || genre.Slug == filter.Genre
			}
			if !found {
				continue
			}
		}
		matched = append(matched, hydrated)
	}

	total := len(matched)
	if offset >= total {
		return []*title.Title{}, total, nil
	}
	return matched[offset:min(offset+limit, total)], total, nil
}

func (repo *memoryRepository) Get(_ context.Context, id int64) (*title.Title, error) {
	record, ok := repo.records[id]
	if !ok {
		return nil, apperr.NotFound("Title")
	}
	return repo.hydrate(record), nil
}

func (repo *memoryRepository) CategoryID(_ context.Context, slug string) (int64, bool, error) {
	id, ok := repo.categories[slug]
	return id, ok, nil
}

func (repo *memoryRepository) GenreIDs(_ context.Context, slugs []string) (map[string]int64, error) {
	ids := map[string]int64{}
	for _, slug := range slugs {
		if id, ok := repo.genres[slug]; ok {
			ids[slug] = id
		}
	}
	return ids, nil
}

func (repo *memoryRepository) Create(_ context.Context, record *title.Record) error {
	repo.nextID++
	record.ID = repo.nextID
	stored := *record
	repo.records[record.ID] = &stored
	return nil
}

func (repo *memoryRepository) Update(_ context.Context, record *title.Record) error {
	if _, ok := repo.records[record.ID]; !ok {
		return apperr.NotFound("Title")
	}
	stored := *record
	repo.records[record.ID] = &stored
	return nil
}

func (repo *memoryRepository) Delete(_ context.Context, id int64) error {
	if _, ok := repo.records[id]; !ok {
		return apperr.NotFound("Title")
	}
	delete(repo.records, id)
	return nil
}

// fixedNow pins the year check to 2026.
func fixedNow() time.Time {
	return time.Date(2026, time.June, 1, 0, 0, 0, 0, time.UTC)
}

func newService(repo *memoryRepository) *title.Service {
	return title.NewService(repo, slog.New(slog.NewJSONHandler(io.Discard, nil))).WithClock(fixedNow)
}
