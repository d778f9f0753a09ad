// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package title_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/yamdb/internal/core/title"
	"github.com/taibuivan/yamdb/internal/platform/apperr"
	"github.com/taibuivan/yamdb/pkg/pointer"
)

/*
TestService_Create_Validation covers the write rules of a title.
*/
func TestService_Create_Validation(t *testing.T) {
	tests := []struct {
		name  string
		input title.Input
		field string
	}{
		{"future_year", title.Input{Name: "X", Year: pointer.To(2027), Genre: []string{"drama"}}, title.FieldYear},
		{"missing_year", title.Input{Name: "X", Genre: []string{"drama"}}, title.FieldYear},
		{"missing_name", title.Input{Name: "  ", Year: pointer.To(2000), Genre: []string{"drama"}}, title.FieldName},
		{"missing_genre", title.Input{Name: "X", Year: pointer.To(2000)}, title.FieldGenre},
		{"unknown_genre", title.Input{Name: "X", Year: pointer.To(2000), Genre: []string{"western"}}, title.FieldGenre},
		{"unknown_category", title.Input{Name: "X", Year: pointer.To(2000), Category: pointer.To("game"), Genre: []string{"drama"}}, title.FieldCategory},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newMemoryRepository()

			_, err := newService(repo).Create(context.Background(), tt.input)

			ae := apperr.As(err)
			require.NotNil(t, ae)
			assert.Equal(t, "VALIDATION_ERROR", ae.Code)
			require.NotEmpty(t, ae.Details)
			assert.Equal(t, tt.field, ae.Details[0].Field)
			assert.Empty(t, repo.records)
		})
	}
}

/*
TestService_Create_WriteView returns slugs and a null rating.
*/
func TestService_Create_WriteView(t *testing.T) {
	repo := newMemoryRepository()
	service := newService(repo)

	view, err := service.Create(context.Background(), title.Input{
		Name:     "The Godfather",
		Year:     pointer.To(1972),
		Category: pointer.To("movie"),
		Genre:    []string{"drama", "drama", "comedy"},
	})
	require.NoError(t, err)

	assert.NotZero(t, view.ID)
	assert.Nil(t, view.Rating)
	assert.Equal(t, "movie", *view.Category)
	assert.Equal(t, []string{"drama", "comedy"}, view.Genre)
	assert.Equal(t, []int64{10, 11}, repo.records[view.ID].GenreIDs)

	// The current year itself is allowed.
	_, err = service.Create(context.Background(), title.Input{Name: "New", Year: pointer.To(2026), Genre: []string{"drama"}})
	assert.NoError(t, err)
}

/*
TestService_Get_Rating exposes the rounded mean of reviews.
*/
func TestService_Get_Rating(t *testing.T) {
	repo := newMemoryRepository()
	service := newService(repo)

	rated, err := service.Create(context.Background(), title.Input{Name: "A", Year: pointer.To(2000), Genre: []string{"drama"}})
	require.NoError(t, err)
	unrated, err := service.Create(context.Background(), title.Input{Name: "B", Year: pointer.To(2000), Genre: []string{"drama"}})
	require.NoError(t, err)

	repo.scores[rated.ID] = []int{7, 8, 8}

	got, err := service.Get(context.Background(), rated.ID)
	require.NoError(t, err)
	require.NotNil(t, got.Rating)
	assert.InDelta(t, 7.7, *got.Rating, 1e-9)

	got, err = service.Get(context.Background(), unrated.ID)
	require.NoError(t, err)
	assert.Nil(t, got.Rating)
}

/*
TestService_Update_Partial merges the patch over the stored state.
*/
func TestService_Update_Partial(t *testing.T) {
	repo := newMemoryRepository()
	service := newService(repo)

	created, err := service.Create(context.Background(), title.Input{
		Name: "Old", Year: pointer.To(1999), Description: "keep", Category: pointer.To("movie"), Genre: []string{"horror"},
	})
	require.NoError(t, err)

	view, err := service.Update(context.Background(), created.ID, title.Patch{Name: pointer.To("New")})
	require.NoError(t, err)
	assert.Equal(t, "New", view.Name)
	assert.Equal(t, 1999, view.Year)
	assert.Equal(t, "keep", view.Description)
	assert.Equal(t, "movie", *view.Category)
	assert.Equal(t, []string{"horror"}, view.Genre)

	view, err = service.Update(context.Background(), created.ID, title.Patch{ClearCategory: true, Genre: []string{"comedy"}, GenreSet: true})
	require.NoError(t, err)
	assert.Nil(t, view.Category)
	assert.Nil(t, repo.records[created.ID].CategoryID)
	assert.Equal(t, []string{"comedy"}, view.Genre)

	_, err = service.Update(context.Background(), created.ID, title.Patch{Year: pointer.To(3000)})
	assert.True(t, apperr.IsCode(err, "VALIDATION_ERROR"))

	_, err = service.Update(context.Background(), 999, title.Patch{Name: pointer.To("x")})
	assert.True(t, apperr.IsCode(err, "NOT_FOUND"))
}

/*
TestService_Replace requires the full payload and an existing title.
*/
func TestService_Replace(t *testing.T) {
	repo := newMemoryRepository()
	service := newService(repo)

	_, err := service.Replace(context.Background(), 42, title.Input{Name: "X", Year: pointer.To(2000), Genre: []string{"drama"}})
	assert.True(t, apperr.IsCode(err, "NOT_FOUND"))

	created, err := service.Create(context.Background(), title.Input{Name: "X", Year: pointer.To(2000), Category: pointer.To("book"), Genre: []string{"drama"}})
	require.NoError(t, err)

	view, err := service.Replace(context.Background(), created.ID, title.Input{Name: "Y", Year: pointer.To(2001), Genre: []string{"comedy"}})
	require.NoError(t, err)
	assert.Equal(t, created.ID, view.ID)
	assert.Nil(t, view.Category)
}

/*
TestParseYear rejects non-numeric filters.
*/
func TestParseYear(t *testing.T) {
	year, err := title.ParseYear("")
	require.NoError(t, err)
	assert.Nil(t, year)

	year, err = title.ParseYear("1994")
	require.NoError(t, err)
	assert.Equal(t, 1994, *year)

	_, err = title.ParseYear("nineteen")
	assert.True(t, apperr.IsCode(err, "VALIDATION_ERROR"))
}
