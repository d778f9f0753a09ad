// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec

// # User Roles

// UserRole represents the authorization label granted to an account.
//
// Roles are labels, not a ladder: only [RoleAdmin] (or the superuser flag)
// grants catalog and user management, and only [RoleModerator] may delete
// other people's reviews and comments.
type UserRole string

const (
	// Default role for accounts created by signup
	RoleUser UserRole = "user"

	// May delete any review or comment
	RoleModerator UserRole = "moderator"

	// Manages the catalog and user accounts
	RoleAdmin UserRole = "admin"

	// Legacy staff label; carries no privileges on its own
	RoleSuperAdmin UserRole = "sadmin"
)

// Roles lists every assignable role in display order.
var Roles = []UserRole{RoleUser, RoleModerator, RoleAdmin, RoleSuperAdmin}

// RoleNames returns [Roles] as plain strings, for validators and messages.
func RoleNames() []string {
	names := make([]string, len(Roles))
	for i, role := range Roles {
		names[i] = string(role)
	}
	return names
}
