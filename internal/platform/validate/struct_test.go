// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package validate_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/yamdb/internal/platform/apperr"
	"github.com/taibuivan/yamdb/internal/platform/validate"
)

type signupProbe struct {
	Username string `json:"username" validate:"required,max=150,username,ne=me"`
	Email    string `json:"email" validate:"required,max=254,email"`
	Score    *int   `json:"score" validate:"omitempty,min=1,max=10"`
	Slug     string `json:"slug" validate:"omitempty,slug"`
}

/*
TestStruct_ReportsJSONFieldNames ensures details use the wire names.
*/
func TestStruct_ReportsJSONFieldNames(t *testing.T) {
	err := validate.Struct(&signupProbe{Username: "me", Email: "nope"})
	require.Error(t, err)

	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "VALIDATION_ERROR", ae.Code)

	fields := map[string]string{}
	for _, detail := range ae.Details {
		fields[detail.Field] = detail.Message
	}
	assert.Contains(t, fields, "username")
	assert.Contains(t, fields, "email")
}

/*
TestStruct_Cases table-tests the custom and built-in tags.
*/
func TestStruct_Cases(t *testing.T) {
	eleven := 11
	five := 5

	tests := []struct {
		name    string
		probe   signupProbe
		isValid bool
	}{
		{"valid", signupProbe{Username: "ann", Email: "ann@example.com"}, true},
		{"valid_with_score", signupProbe{Username: "ann", Email: "ann@example.com", Score: &five}, true},
		{"missing_username", signupProbe{Email: "ann@example.com"}, false},
		{"reserved_username", signupProbe{Username: "me", Email: "ann@example.com"}, false},
		{"bad_username_chars", signupProbe{Username: "a b", Email: "ann@example.com"}, false},
		{"score_out_of_range", signupProbe{Username: "ann", Email: "ann@example.com", Score: &eleven}, false},
		{"bad_slug", signupProbe{Username: "ann", Email: "ann@example.com", Slug: "no spaces"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validate.Struct(&tt.probe)
			if tt.isValid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}
