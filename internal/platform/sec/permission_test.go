// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/yamdb/internal/platform/sec"
)

var (
	anonymous  *sec.Actor
	plainUser  = &sec.Actor{ID: 1, Username: "reader", Role: sec.RoleUser}
	moderator  = &sec.Actor{ID: 2, Username: "mod", Role: sec.RoleModerator}
	admin      = &sec.Actor{ID: 3, Username: "boss", Role: sec.RoleAdmin}
	superuser  = &sec.Actor{ID: 4, Username: "root", Role: sec.RoleUser, IsSuperuser: true}
	staffLabel = &sec.Actor{ID: 5, Username: "legacy", Role: sec.RoleSuperAdmin}
)

/*
TestActor_DerivedPredicates checks is_admin and is_moderator.
*/
func TestActor_DerivedPredicates(t *testing.T) {
	assert.False(t, anonymous.IsAdmin())
	assert.False(t, anonymous.IsModerator())
	assert.False(t, plainUser.IsAdmin())
	assert.True(t, moderator.IsModerator())
	assert.False(t, moderator.IsAdmin())
	assert.True(t, admin.IsAdmin())
	assert.True(t, superuser.IsAdmin())
	assert.False(t, staffLabel.IsAdmin())
}

/*
TestCatalogWrite verifies public reads and admin-only writes.
*/
func TestCatalogWrite(t *testing.T) {
	tests := []struct {
		name   string
		method string
		actor  *sec.Actor
		want   bool
	}{
		{"anonymous_get", http.MethodGet, anonymous, true},
		{"anonymous_head", http.MethodHead, anonymous, true},
		{"anonymous_options", http.MethodOptions, anonymous, true},
		{"anonymous_post", http.MethodPost, anonymous, false},
		{"user_post", http.MethodPost, plainUser, false},
		{"moderator_delete", http.MethodDelete, moderator, false},
		{"admin_post", http.MethodPost, admin, true},
		{"superuser_patch", http.MethodPatch, superuser, true},
		{"sadmin_label_delete", http.MethodDelete, staffLabel, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, sec.CatalogWrite(tt.method, tt.actor))
		})
	}
}

/*
TestReviewComment verifies collection-level gating.
*/
func TestReviewComment(t *testing.T) {
	assert.True(t, sec.ReviewComment(http.MethodGet, anonymous))
	assert.False(t, sec.ReviewComment(http.MethodPost, anonymous))
	assert.True(t, sec.ReviewComment(http.MethodPost, plainUser))
	assert.True(t, sec.ReviewComment(http.MethodDelete, moderator))
}

/*
TestReviewCommentObject verifies ownership and moderator rules.
*/
func TestReviewCommentObject(t *testing.T) {
	const authorID = int64(1)

	tests := []struct {
		name   string
		method string
		actor  *sec.Actor
		want   bool
	}{
		{"anyone_reads", http.MethodGet, anonymous, true},
		{"author_patches", http.MethodPatch, plainUser, true},
		{"author_deletes", http.MethodDelete, plainUser, true},
		{"moderator_deletes_foreign", http.MethodDelete, moderator, true},
		{"moderator_cannot_patch_foreign", http.MethodPatch, moderator, false},
		{"admin_cannot_patch_foreign", http.MethodPatch, admin, false},
		{"admin_cannot_delete_foreign", http.MethodDelete, admin, false},
		{"anonymous_cannot_delete", http.MethodDelete, anonymous, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, sec.ReviewCommentObject(tt.method, tt.actor, authorID))
		})
	}
}

/*
TestAdminOnly ignores the method entirely.
*/
func TestAdminOnly(t *testing.T) {
	assert.False(t, sec.AdminOnly(http.MethodGet, anonymous))
	assert.False(t, sec.AdminOnly(http.MethodGet, plainUser))
	assert.False(t, sec.AdminOnly(http.MethodGet, moderator))
	assert.True(t, sec.AdminOnly(http.MethodDelete, admin))
	assert.True(t, sec.AdminOnly(http.MethodGet, superuser))
}

/*
TestRoles lists the assignable roles in display order.
*/
func TestRoles(t *testing.T) {
	assert.Equal(t, []string{"user", "moderator", "admin", "sadmin"}, sec.RoleNames())
}
