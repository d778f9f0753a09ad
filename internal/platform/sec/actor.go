// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec

// Actor is the authenticated caller of a request.
//
// It is loaded from storage on every authenticated request, so role and
// superuser changes take effect without waiting for token expiry. A nil
// *Actor means the request is anonymous.
type Actor struct {
	ID          int64
	Username    string
	Role        UserRole
	IsSuperuser bool
}

// IsAdmin reports whether the actor may manage the catalog and users.
func (a *Actor) IsAdmin() bool {
	return a != nil && (a.IsSuperuser || a.Role == RoleAdmin)
}

// IsModerator reports whether the actor holds the moderator role.
func (a *Actor) IsModerator() bool {
	return a != nil && a.Role == RoleModerator
}
